package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/database"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *AccountRepository {
	t.Helper()
	db, err := database.Open(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, Migrations, MigrationsTable))
	return NewAccountRepository(db)
}

func newMockRepo(t *testing.T) (*AccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewAccountRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestCreateAssignsIDs(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, models.Account{Username: "bob", Password: "pass2"})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "pass1", first.Password)
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.Account{Username: "alice", Password: "other"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateUsername))

	got, err := repo.GetByCredentials(ctx, "alice", "pass1")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestGetByCredentials(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	alice, err := repo.Create(ctx, models.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, models.Account{Username: "bob", Password: "pass2"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		want     *models.Account
	}{
		{name: "exact match", username: "alice", password: "pass1", want: alice},
		{name: "wrong password", username: "alice", password: "pass2"},
		{name: "password of a different account", username: "bob", password: "pass1"},
		{name: "case differs", username: "Alice", password: "pass1"},
		{name: "unknown user", username: "carol", password: "pass1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByCredentials(ctx, tt.username, tt.password)
			if tt.want == nil {
				assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatePostgresUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO account").
		WithArgs("alice", "pass1").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "account_username_key"})

	_, err := repo.Create(context.Background(), models.Account{Username: "alice", Password: "pass1"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateUsername))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFaultsAreNotDomainErrors(t *testing.T) {
	repo, mock := newMockRepo(t)
	fault := errors.New("connection reset")

	mock.ExpectQuery("INSERT INTO account").WillReturnError(fault)
	mock.ExpectQuery("SELECT account_id, username, password").WillReturnError(fault)

	_, err := repo.Create(context.Background(), models.Account{Username: "alice", Password: "pass1"})
	assert.ErrorIs(t, err, fault)
	assert.False(t, errors.Is(err, apperrors.ErrDuplicateUsername))

	_, err = repo.GetByCredentials(context.Background(), "alice", "pass1")
	assert.ErrorIs(t, err, fault)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostgresReturnsID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO account").
		WithArgs("alice", "pass1").
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(int64(42)))

	got, err := repo.Create(context.Background(), models.Account{Username: "alice", Password: "pass1"})
	require.NoError(t, err)
	assert.Equal(t, &models.Account{ID: 42, Username: "alice", Password: "pass1"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
