package query

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Zombiepro89/socialmedia/account-service/internal/repository"
	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/database"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	err error
}

func (s failingStore) Create(context.Context, models.Account) (*models.Account, error) {
	return nil, s.err
}

func (s failingStore) GetByCredentials(context.Context, string, string) (*models.Account, error) {
	return nil, s.err
}

func seededService(t *testing.T) (*AccountQueryService, *models.Account, *models.Account) {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, repository.Migrations, repository.MigrationsTable))

	repo := repository.NewAccountRepository(db)
	alice, err := repo.Create(context.Background(), models.Account{Username: "alice", Password: "alicepw"})
	require.NoError(t, err)
	bob, err := repo.Create(context.Background(), models.Account{Username: "bob", Password: "bobpw"})
	require.NoError(t, err)
	return NewAccountQueryService(repo), alice, bob
}

func TestLogin(t *testing.T) {
	svc, alice, bob := seededService(t)

	tests := []struct {
		name string
		cmd  cqrs.LoginCommand
		want *models.Account
	}{
		{name: "alice logs in", cmd: cqrs.LoginCommand{Username: "alice", Password: "alicepw"}, want: alice},
		{name: "bob logs in", cmd: cqrs.LoginCommand{Username: "bob", Password: "bobpw"}, want: bob},
		{name: "wrong password", cmd: cqrs.LoginCommand{Username: "alice", Password: "wrong"}},
		{name: "another account's password", cmd: cqrs.LoginCommand{Username: "alice", Password: "bobpw"}},
		{name: "password is case sensitive", cmd: cqrs.LoginCommand{Username: "alice", Password: "ALICEPW"}},
		{name: "unknown username", cmd: cqrs.LoginCommand{Username: "carol", Password: "alicepw"}},
		{name: "empty credentials", cmd: cqrs.LoginCommand{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Login(context.Background(), tt.cmd)
			if tt.want == nil {
				assert.ErrorIs(t, err, apperrors.ErrNotFound)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoginStoreFault(t *testing.T) {
	fault := errors.New("connection refused")
	svc := NewAccountQueryService(failingStore{err: fault})

	_, err := svc.Login(context.Background(), cqrs.LoginCommand{Username: "alice", Password: "alicepw"})
	assert.ErrorIs(t, err, fault)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}
