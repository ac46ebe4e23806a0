package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore keeps slots as plain redis keys with no TTL; slots are durable
// state, not a cache.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client, mainly for tests.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Slot(name string) Slot {
	return &redisSlot{client: s.client, key: slotKey(name)}
}

func (s *redisStore) Close() error { return s.client.Close() }

type redisSlot struct {
	client *redis.Client
	key    string
}

func (s *redisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

func (s *redisSlot) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(name string) string {
	return fmt.Sprintf("minishop:slot:%s", name)
}
