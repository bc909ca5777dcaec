// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Event backends accepted by EVENTS_BACKEND.
const (
	EventsRedis = "redis"
	EventsNats  = "nats"
	EventsNone  = "none"
)

// Base holds the settings every service shares.
type Base struct {
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	LogFormat       string        `env:"LOG_FORMAT,default=json"`
	RedisAddr       string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB,default=0"`
	EventsBackend   string        `env:"EVENTS_BACKEND,default=redis"`
	NatsURL         string        `env:"NATS_URL,default=nats://127.0.0.1:4222"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Validate rejects values envdecode cannot check on its own.
func (b Base) Validate() error {
	switch b.EventsBackend {
	case EventsRedis, EventsNats, EventsNone:
		return nil
	default:
		return fmt.Errorf("unsupported EVENTS_BACKEND %q", b.EventsBackend)
	}
}

// Load reads an optional .env file and decodes the environment into target,
// which must be a pointer to a struct with `env` tags.
func Load(target any) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}
	if err := envdecode.Decode(target); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode environment: %w", err)
	}
	return nil
}
