package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by redis. Expiry is left to redis.
type RedisStore struct {
	cache  ecache.Cache
	client *redis.Client
}

// NewRedisStore wraps client. Every key is prefixed with namespace.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		cache: &ecache.NamespaceCache{
			C:         eredis.NewCache(client),
			Namespace: namespace,
		},
		client: client,
	}
}

// Set implements Store
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.cache.Set(ctx, key, string(value), ttl); err != nil {
		return fmt.Errorf("failed to store session key %s: %w", key, err)
	}
	return nil
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val := s.cache.Get(ctx, key)
	if val.KeyNotFound() {
		return nil, ErrNotFound
	}
	if val.Err != nil {
		return nil, fmt.Errorf("failed to read session key %s: %w", key, val.Err)
	}
	str, err := val.String()
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key %s: %w", key, err)
	}
	return []byte(str), nil
}

// Delete implements Store
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if _, err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete session key %s: %w", key, err)
	}
	return nil
}

// Close closes the redis client
func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
