package repository

import (
	"context"
	"embed"
	"fmt"

	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/database"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/jmoiron/sqlx"
)

// Migrations holds the account schema, one directory per driver.
//
//go:embed migrations
var Migrations embed.FS

// MigrationsTable tracks the account schema version.
const MigrationsTable = "account_schema_migrations"

// AccountStore persists accounts.
type AccountStore interface {
	// Create inserts the account and returns it with its assigned ID.
	// A taken username yields apperrors.ErrDuplicateUsername.
	Create(ctx context.Context, account models.Account) (*models.Account, error)
	// GetByCredentials returns the account whose username and password both
	// match exactly, or apperrors.ErrNotFound.
	GetByCredentials(ctx context.Context, username, password string) (*models.Account, error)
}

var _ AccountStore = (*AccountRepository)(nil)

// AccountRepository is the SQL implementation of AccountStore. Username
// uniqueness is enforced by the table's UNIQUE constraint.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account models.Account) (*models.Account, error) {
	query := `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`
	if err := r.db.QueryRowxContext(ctx, query, account.Username, account.Password).Scan(&account.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateUsername, account.Username)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) GetByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1 AND password = $2
	`
	var account models.Account
	err := r.db.GetContext(ctx, &account, query, username, password)
	if database.IsNoRows(err) {
		return nil, fmt.Errorf("account %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
