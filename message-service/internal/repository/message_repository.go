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

// Migrations holds the message schema, one directory per driver.
//
//go:embed migrations
var Migrations embed.FS

// MigrationsTable tracks the message schema version.
const MigrationsTable = "message_schema_migrations"

// MessageWriter mutates stored messages. Each call is a single statement.
type MessageWriter interface {
	Create(ctx context.Context, message models.Message) (*models.Message, error)
	// UpdateText replaces the text of an existing message and returns the
	// updated row, or apperrors.ErrNotFound.
	UpdateText(ctx context.Context, id int64, text string) (*models.Message, error)
	// Delete reports how many rows were removed (0 or 1).
	Delete(ctx context.Context, id int64) (int64, error)
}

var _ MessageWriter = (*MessageWriteRepository)(nil)

// MessageWriteRepository handles all state-mutating operations for messages.
// It operates exclusively against the SQL store (source of truth).
type MessageWriteRepository struct {
	db *sqlx.DB
}

func NewMessageWriteRepository(db *sqlx.DB) *MessageWriteRepository {
	return &MessageWriteRepository{db: db}
}

func (r *MessageWriteRepository) Create(ctx context.Context, message models.Message) (*models.Message, error) {
	query := `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`
	err := r.db.QueryRowxContext(ctx, query, message.PostedBy, message.MessageText, message.TimePostedEpoch).Scan(&message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &message, nil
}

func (r *MessageWriteRepository) UpdateText(ctx context.Context, id int64, text string) (*models.Message, error) {
	query := `
		UPDATE message
		SET message_text = $1
		WHERE message_id = $2
		RETURNING message_id, posted_by, message_text, time_posted_epoch
	`
	var message models.Message
	err := r.db.GetContext(ctx, &message, query, text, id)
	if database.IsNoRows(err) {
		return nil, fmt.Errorf("message %d %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return &message, nil
}

func (r *MessageWriteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM message WHERE message_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted messages: %w", err)
	}
	return n, nil
}
