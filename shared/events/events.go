package events

import (
	"context"
	"time"
)

// Event types
const (
	AccountRegistered = "account.registered"

	MessageCreated = "message.created"
	MessageUpdated = "message.updated"
	MessageDeleted = "message.deleted"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	MessageEventsStream = "message.events"
)

// Publisher emits domain events after a write has been committed.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountRegisteredEvent struct {
	AccountID int64  `json:"accountId"`
	Username  string `json:"username"`
}

// Message events
type MessageCreatedEvent struct {
	MessageID int64 `json:"messageId"`
	PostedBy  int64 `json:"postedBy"`
}

type MessageUpdatedEvent struct {
	MessageID int64 `json:"messageId"`
	PostedBy  int64 `json:"postedBy"`
}

type MessageDeletedEvent struct {
	MessageID int64 `json:"messageId"`
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
