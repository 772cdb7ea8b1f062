// Package session keeps loaded profiles, jobs, match results and customized
// resumes between requests. Entries expire after a TTL.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound is returned for keys that were never stored or have expired
var ErrNotFound = errors.New("session: not found")

// Store is a byte-oriented key value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns ErrNotFound when the key is missing or expired
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by cfg. The redis backend is pinged before
// it is returned.
func Open(ctx context.Context, cfg config.SessionConfig, metrics *Metrics, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("session store ready", zap.String("backend", cfg.Backend), zap.String("addr", cfg.RedisAddr))
		return NewRedisStore(client, cfg.Namespace), nil
	case config.SessionBackendMemory, "":
		logger.Info("session store ready", zap.String("backend", config.SessionBackendMemory),
			zap.Duration("cleanup_interval", cfg.CleanupInterval))
		return NewMemoryStore(cfg.CleanupInterval, WithMetrics(metrics)), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
