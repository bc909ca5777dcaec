package query

import (
	"context"
	"errors"

	"github.com/Zombiepro89/socialmedia/account-service/internal/repository"
	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/metrics"
	"github.com/Zombiepro89/socialmedia/shared/models"
)

// AccountQueryService handles login. There's no CommandService for login
// because it doesn't mutate application state.
type AccountQueryService struct {
	store repository.AccountStore
}

func NewAccountQueryService(store repository.AccountStore) *AccountQueryService {
	return &AccountQueryService{store: store}
}

// Login returns the account matching both username and password exactly,
// or an error matching apperrors.ErrNotFound.
func (s *AccountQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*models.Account, error) {
	account, err := s.store.GetByCredentials(ctx, cmd.Username, cmd.Password)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		metrics.RecordLogin("rejected")
		return nil, err
	case err != nil:
		metrics.RecordLogin("error")
		return nil, err
	}
	metrics.RecordLogin("success")
	return account, nil
}
