package command

import (
	"context"
	"errors"

	"github.com/Zombiepro89/socialmedia/message-service/internal/repository"
	"github.com/Zombiepro89/socialmedia/shared/apperrors"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/events"
	"github.com/Zombiepro89/socialmedia/shared/logger"
	"github.com/Zombiepro89/socialmedia/shared/metrics"
	"github.com/Zombiepro89/socialmedia/shared/models"
	"github.com/Zombiepro89/socialmedia/shared/validation"
	"go.uber.org/zap"
)

// MessageCommandService validates and applies message writes and publishes an
// event per successful write. Creates warm the read model; updates and
// deletes evict from it.
type MessageCommandService struct {
	writer    repository.MessageWriter
	views     repository.MessageViews
	publisher events.Publisher
}

func NewMessageCommandService(
	writer repository.MessageWriter,
	views repository.MessageViews,
	publisher events.Publisher,
) *MessageCommandService {
	return &MessageCommandService{
		writer:    writer,
		views:     views,
		publisher: publisher,
	}
}

// CreateMessage stores a message whose text is 1-255 characters. The poster
// is not checked against the account table.
func (s *MessageCommandService) CreateMessage(ctx context.Context, cmd cqrs.CreateMessageCommand) (*models.Message, error) {
	if err := validation.Struct(cmd); err != nil {
		metrics.RecordMessageOp("create", "invalid")
		return nil, err
	}

	message, err := s.writer.Create(ctx, models.Message{
		PostedBy:        cmd.PostedBy,
		MessageText:     cmd.MessageText,
		TimePostedEpoch: cmd.TimePostedEpoch,
	})
	if err != nil {
		metrics.RecordMessageOp("create", "error")
		return nil, err
	}
	metrics.RecordMessageOp("create", "success")

	s.views.CacheMessage(ctx, message)
	s.publish(ctx, events.MessageCreated, events.MessageCreatedEvent{
		MessageID: message.ID,
		PostedBy:  message.PostedBy,
	})
	return message, nil
}

// UpdateMessageText checks the new text before touching the store, so an
// invalid text on an unknown ID is reported as invalid rather than missing.
func (s *MessageCommandService) UpdateMessageText(ctx context.Context, cmd cqrs.UpdateMessageTextCommand) (*models.Message, error) {
	if err := validation.Struct(cmd); err != nil {
		metrics.RecordMessageOp("update", "invalid")
		return nil, err
	}

	message, err := s.writer.UpdateText(ctx, cmd.MessageID, cmd.MessageText)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.RecordMessageOp("update", "not_found")
		} else {
			metrics.RecordMessageOp("update", "error")
		}
		return nil, err
	}
	metrics.RecordMessageOp("update", "success")

	// next read reloads the committed row
	s.views.EvictMessage(ctx, message.ID)
	s.publish(ctx, events.MessageUpdated, events.MessageUpdatedEvent{
		MessageID: message.ID,
		PostedBy:  message.PostedBy,
	})
	return message, nil
}

// DeleteMessage returns 1 when a message was removed and 0 when none
// existed. Only store faults are errors.
func (s *MessageCommandService) DeleteMessage(ctx context.Context, cmd cqrs.DeleteMessageCommand) (int64, error) {
	n, err := s.writer.Delete(ctx, cmd.MessageID)
	if err != nil {
		metrics.RecordMessageOp("delete", "error")
		return 0, err
	}
	if n == 0 {
		metrics.RecordMessageOp("delete", "not_found")
		return 0, nil
	}
	metrics.RecordMessageOp("delete", "success")

	s.views.EvictMessage(ctx, cmd.MessageID)
	s.publish(ctx, events.MessageDeleted, events.MessageDeletedEvent{MessageID: cmd.MessageID})
	return n, nil
}

func (s *MessageCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.MessageEventsStream, eventType, data); err != nil {
		logger.Log.Warn("publish_failed", zap.String("event", eventType), zap.Error(err))
	}
}
