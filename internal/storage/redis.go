package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

// RedisStore keeps the counter under a single Redis key. INCR gives it a
// native atomic increment, so concurrent callers never lose updates.
type RedisStore struct {
	rdb *redis.Client
	key string
}

var (
	_ usage.Store       = (*RedisStore)(nil)
	_ usage.Incrementer = (*RedisStore)(nil)
)

// RedisOption customizes a RedisStore.
type RedisOption func(*RedisStore)

// WithKey overrides the counter key.
func WithKey(key string) RedisOption {
	return func(s *RedisStore) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			s.key = trimmed
		}
	}
}

// NewRedisStore constructs a RedisStore over an existing client.
func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{rdb: rdb, key: "healthyweight:usage:count"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements usage.Store, mapping an absent key to
// usage.ErrNotInitialized.
func (s *RedisStore) Load(ctx context.Context) (int64, error) {
	count, err := s.rdb.Get(ctx, s.key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, usage.ErrNotInitialized
		}
		return 0, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return count, nil
}

// Save implements usage.Store.
func (s *RedisStore) Save(ctx context.Context, count int64) error {
	if err := s.rdb.Set(ctx, s.key, count, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Increment implements usage.Incrementer via INCR, which also creates the
// key at 1 when it does not exist yet.
func (s *RedisStore) Increment(ctx context.Context) (int64, error) {
	count, err := s.rdb.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", s.key, err)
	}
	return count, nil
}
