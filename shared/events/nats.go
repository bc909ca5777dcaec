package events

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes events on core NATS. The subject is the event type,
// so consumers subscribe to "message.*" or "account.*".
type NatsPublisher struct {
	conn *nats.Conn
}

// NewNatsPublisher connects to the NATS server at url.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("socialmedia-events"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, _ string, eventType string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	eventJSON, err := encodeEvent(eventType, data)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(eventType, eventJSON); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close flushes pending publishes and closes the connection.
func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
