package events

import (
	"fmt"

	"github.com/Zombiepro89/socialmedia/shared/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the publisher selected by backend. rdb is required for the
// redis backend. The returned func releases anything Open connected.
func Open(backend string, rdb *redis.Client, natsURL string) (Publisher, func(), error) {
	switch backend {
	case config.EventsRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("redis events backend needs a redis client")
		}
		return NewRedisPublisher(rdb), func() {}, nil
	case config.EventsNats:
		p, err := NewNatsPublisher(natsURL)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case config.EventsNone:
		return NopPublisher{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events backend %q", backend)
	}
}
