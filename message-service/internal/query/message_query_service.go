package query

import (
	"context"

	"github.com/Zombiepro89/socialmedia/message-service/internal/repository"
	"github.com/Zombiepro89/socialmedia/shared/cqrs"
	"github.com/Zombiepro89/socialmedia/shared/models"
)

// MessageQueryService serves message reads.
type MessageQueryService struct {
	reader repository.MessageReader
}

func NewMessageQueryService(reader repository.MessageReader) *MessageQueryService {
	return &MessageQueryService{reader: reader}
}

func (s *MessageQueryService) ListMessages(ctx context.Context) ([]models.Message, error) {
	return s.reader.ListAll(ctx)
}

// GetMessage returns the message or an error matching apperrors.ErrNotFound.
func (s *MessageQueryService) GetMessage(ctx context.Context, q cqrs.GetMessageQuery) (*models.Message, error) {
	return s.reader.GetByID(ctx, q.MessageID)
}

// ListAccountMessages never returns a nil slice on success.
func (s *MessageQueryService) ListAccountMessages(ctx context.Context, q cqrs.ListAccountMessagesQuery) ([]models.Message, error) {
	messages, err := s.reader.ListByAccount(ctx, q.AccountID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}
