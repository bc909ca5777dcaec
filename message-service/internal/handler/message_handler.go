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
	"github.com/Zombiepro89/socialmedia/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageCommander defines the write-side operations used by MessageHandler.
type MessageCommander interface {
	CreateMessage(context.Context, cqrs.CreateMessageCommand) (*models.Message, error)
	UpdateMessageText(context.Context, cqrs.UpdateMessageTextCommand) (*models.Message, error)
	DeleteMessage(context.Context, cqrs.DeleteMessageCommand) (int64, error)
}

// MessageQuerier defines the read-side operations used by MessageHandler.
type MessageQuerier interface {
	ListMessages(context.Context) ([]models.Message, error)
	GetMessage(context.Context, cqrs.GetMessageQuery) (*models.Message, error)
	ListAccountMessages(context.Context, cqrs.ListAccountMessagesQuery) ([]models.Message, error)
}

type MessageHandler struct {
	commands MessageCommander
	queries  MessageQuerier
}

type CreateMessageRequest struct {
	PostedBy        int64  `json:"postedBy"`
	MessageText     string `json:"messageText"`
	TimePostedEpoch int64  `json:"timePostedEpoch"`
}

type UpdateMessageRequest struct {
	MessageText string `json:"messageText"`
}

func NewMessageHandler(commands MessageCommander, queries MessageQuerier) *MessageHandler {
	return &MessageHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the message endpoints on r.
func (h *MessageHandler) RegisterRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	{
		messages.POST("", h.CreateMessage)
		messages.GET("", h.ListMessages)
		messages.GET("/:messageId", h.GetMessage)
		messages.PATCH("/:messageId", h.UpdateMessage)
		messages.DELETE("/:messageId", h.DeleteMessage)
	}
	r.GET("/accounts/:accountId/messages", h.ListAccountMessages)
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.commands.CreateMessage(c.Request.Context(), cqrs.CreateMessageCommand{
		PostedBy:        req.PostedBy,
		MessageText:     req.MessageText,
		TimePostedEpoch: req.TimePostedEpoch,
	})
	if err != nil {
		var verr *apperrors.ValidationError
		switch {
		case errors.As(err, &verr):
			middleware.RespondWithValidationError(c, verr.Fields)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message")
		default:
			h.internalError(c, "create_message_failed", err, "Failed to create message")
		}
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.queries.ListMessages(c.Request.Context())
	if err != nil {
		h.internalError(c, "list_messages_failed", err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage answers 200 with an empty body when the message does not exist.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("messageId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	message, err := h.queries.GetMessage(c.Request.Context(), cqrs.GetMessageQuery{MessageID: id})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.Status(http.StatusOK)
			return
		}
		h.internalError(c, "get_message_failed", err, "Failed to get message")
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) ListAccountMessages(c *gin.Context) {
	accountID, ok := utils.ParseID(c.Param("accountId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	messages, err := h.queries.ListAccountMessages(c.Request.Context(), cqrs.ListAccountMessagesQuery{AccountID: accountID})
	if err != nil {
		h.internalError(c, "list_account_messages_failed", err, "Failed to list messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UpdateMessage answers with the number of updated rows, always 1 on success.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("messageId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.commands.UpdateMessageText(c.Request.Context(), cqrs.UpdateMessageTextCommand{
		MessageID:   id,
		MessageText: req.MessageText,
	})
	if err != nil {
		var verr *apperrors.ValidationError
		switch {
		case errors.As(err, &verr):
			middleware.RespondWithValidationError(c, verr.Fields)
		case errors.Is(err, apperrors.ErrInvalidArgument):
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message")
		case errors.Is(err, apperrors.ErrNotFound):
			middleware.RespondWithError(c, http.StatusBadRequest, "Message not found")
		default:
			h.internalError(c, "update_message_failed", err, "Failed to update message")
		}
		return
	}

	c.JSON(http.StatusOK, 1)
}

// DeleteMessage answers with the number of deleted rows, 0 or 1.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("messageId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid message id")
		return
	}

	n, err := h.commands.DeleteMessage(c.Request.Context(), cqrs.DeleteMessageCommand{MessageID: id})
	if err != nil {
		h.internalError(c, "delete_message_failed", err, "Failed to delete message")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *MessageHandler) internalError(c *gin.Context, event string, err error, msg string) {
	logger.Log.Error(event, zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	middleware.RespondWithError(c, http.StatusInternalServerError, msg)
}
