package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/logger"
	"github.com/Zombiepro89/socialmedia/shared/middleware"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	Register(context.Context, cqrs.RegisterAccountCommand) (*models.Account, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (*models.Account, error)
}

// AccountHandler handles registration and login.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// AccountRequest is the body of both /register and /login.
type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the account endpoints on r.
func (h *AccountHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.commands.Register(c.Request.Context(), cqrs.RegisterAccountCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		var verr *apperrors.ValidationError
		switch {
		case errors.Is(err, apperrors.ErrDuplicateUsername):
			middleware.RespondWithError(c, http.StatusConflict, "Username is already taken")
		case errors.As(err, &verr):
			middleware.RespondWithValidationError(c, verr.Fields)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account details")
		default:
			logger.Log.Error("register_failed", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to register account")
		}
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.Log.Error("login_failed", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, account)
}
