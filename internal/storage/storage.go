// Package storage provides named durable slots, the local-storage analogue
// the session and cart stores persist into. A slot holds one opaque record;
// the medium behind it (file, sqlite, redis) is chosen by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gurpreet/minishop/internal/config"
)

// Slot is a single named persistent record.
// Load reports found=false when the slot has never been written.
type Slot interface {
	Load(ctx context.Context) (data []byte, found bool, err error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Store hands out named slots over one backing medium.
type Store interface {
	Slot(name string) Slot
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		st, err := openSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return st, nil
	case "file":
		return newFileStore(cfg.Path)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return &redisStore{client: client}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
