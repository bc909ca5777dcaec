package command

import (
	"context"

	"github.com/Zombiepro89/socialmedia/account-service/internal/repository"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/events"
	"github.com/Zombiepro89/socialmedia/shared/logger"
	"github.com/Zombiepro89/socialmedia/shared/metrics"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/Zombiepro89/socialmedia/shared/validation"
	"go.uber.org/zap"
)

// AccountCommandService validates and persists new accounts.
type AccountCommandService struct {
	store     repository.AccountStore
	publisher events.Publisher
}

func NewAccountCommandService(store repository.AccountStore, publisher events.Publisher) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		publisher: publisher,
	}
}

// Register rejects a blank username or a password shorter than four
// characters, then inserts the account. A taken username surfaces from the
// store as apperrors.ErrDuplicateUsername; there is no separate pre-check.
func (s *AccountCommandService) Register(ctx context.Context, cmd cqrs.RegisterAccountCommand) (*models.Account, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	account, err := s.store.Create(ctx, models.Account{
		Username: cmd.Username,
		Password: cmd.Password,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRegistration()
	logger.Log.Info("account_registered", zap.Int64("account_id", account.ID), zap.String("username", account.Username))

	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountRegistered, events.AccountRegisteredEvent{
		AccountID: account.ID,
		Username:  account.Username,
	}); err != nil {
		logger.Log.Warn("publish_failed", zap.String("event", events.AccountRegistered), zap.Error(err))
	}
	return account, nil
}
