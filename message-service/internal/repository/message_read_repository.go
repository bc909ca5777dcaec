package repository

import (
	"context"
	"fmt"

	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/database"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/jmoiron/sqlx"
)

const messageViewKeyPrefix = "message:view:"

// MessageCache is the read-model cache; *redis.ViewCache[models.Message]
// satisfies it. Implementations swallow their own failures.
type MessageCache interface {
	Get(ctx context.Context, key string) (*models.Message, bool)
	Set(ctx context.Context, key string, value *models.Message)
	Delete(ctx context.Context, key string)
}

// MessageReader serves message reads.
type MessageReader interface {
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	// ListAll returns every message ordered by ID.
	ListAll(ctx context.Context) ([]models.Message, error)
	// ListByAccount returns a non-nil, possibly empty slice.
	ListByAccount(ctx context.Context, accountID int64) ([]models.Message, error)
}

// MessageViews keeps the read model in step with writes.
type MessageViews interface {
	CacheMessage(ctx context.Context, message *models.Message)
	EvictMessage(ctx context.Context, id int64)
}

var (
	_ MessageReader = (*MessageReadRepository)(nil)
	_ MessageViews  = (*MessageReadRepository)(nil)
)

// MessageReadRepository handles all read operations for messages.
// Single messages are served from the cache when present, falling back to SQL.
type MessageReadRepository struct {
	db    *sqlx.DB
	cache MessageCache
}

// NewMessageReadRepository builds a read repository. A nil cache disables
// caching.
func NewMessageReadRepository(db *sqlx.DB, cache MessageCache) *MessageReadRepository {
	if cache == nil {
		cache = noCache{}
	}
	return &MessageReadRepository{db: db, cache: cache}
}

func messageKey(id int64) string {
	return fmt.Sprintf("%s%d", messageViewKeyPrefix, id)
}

// GetByID returns a message by attempting the cache first, then SQL.
func (r *MessageReadRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	if message, ok := r.cache.Get(ctx, messageKey(id)); ok {
		return message, nil
	}

	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`
	var message models.Message
	err := r.db.GetContext(ctx, &message, query, id)
	if database.IsNoRows(err) {
		return nil, fmt.Errorf("message %d %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	// Warm the cache
	r.CacheMessage(ctx, &message)
	return &message, nil
}

func (r *MessageReadRepository) ListAll(ctx context.Context) ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		ORDER BY message_id
	`
	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *MessageReadRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
		ORDER BY message_id
	`
	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list messages for account %d: %w", accountID, err)
	}
	return messages, nil
}

// CacheMessage stores the read model for a message.
// Called by the command service after a successful create or update.
func (r *MessageReadRepository) CacheMessage(ctx context.Context, message *models.Message) {
	r.cache.Set(ctx, messageKey(message.ID), message)
}

// EvictMessage drops a deleted message from the read model.
func (r *MessageReadRepository) EvictMessage(ctx context.Context, id int64) {
	r.cache.Delete(ctx, messageKey(id))
}

type noCache struct{}

func (noCache) Get(context.Context, string) (*models.Message, bool) { return nil, false }
func (noCache) Set(context.Context, string, *models.Message)        {}
func (noCache) Delete(context.Context, string)                      {}
