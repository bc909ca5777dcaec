package cqrs

// GetMessageQuery fetches a single message by ID.
type GetMessageQuery struct {
	MessageID int64
}

// ListAccountMessagesQuery fetches every message posted by an account.
type ListAccountMessagesQuery struct {
	AccountID int64
}
