package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/session"
	"go.uber.org/zap"
)

// ResponseCache keeps raw model responses. session.Store satisfies it.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RemoteOptions configures calls to the language model
type RemoteOptions struct {
	// MaxRetries is the number of retries after the first attempt. Zero
	// disables retrying.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Timeout bounds one logical call, retries included. Zero means none.
	Timeout time.Duration
	// Cache is optional. Responses are kept for CacheTTL.
	Cache    ResponseCache
	CacheTTL time.Duration
	Metrics  *Metrics
	Logger   *zap.Logger
}

// DefaultRemoteOptions returns three retries with 1s to 8s backoff and no cache
func DefaultRemoteOptions() RemoteOptions {
	return RemoteOptions{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     8 * time.Second,
		Timeout:        time.Minute,
	}
}

// remote wraps an llm.Client with retry, timeout and response caching
type remote struct {
	client llm.Client
	opts   RemoteOptions
	logger *zap.Logger
}

func newRemote(client llm.Client, opts RemoteOptions) (*remote, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be non-negative, got %d", opts.MaxRetries)
	}
	if opts.MaxRetries > 0 {
		// validate once so a bad policy fails at construction
		if _, err := retry.NewExponentialBackoffRetryStrategy(opts.InitialBackoff, opts.MaxBackoff, int32(opts.MaxRetries)); err != nil {
			return nil, fmt.Errorf("invalid retry policy: %w", err)
		}
	}
	return &remote{client: client, opts: opts, logger: logger.OrNop(opts.Logger)}, nil
}

// cacheKey identifies a request by model tier and prompt
func cacheKey(tier llm.ModelTier, prompt string) string {
	sum := sha256.Sum256([]byte(string(tier) + "\x00" + prompt))
	return "llm:" + hex.EncodeToString(sum[:])
}

func (r *remote) cached(ctx context.Context, key string) (string, bool) {
	if r.opts.Cache == nil {
		return "", false
	}
	data, err := r.opts.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			r.logger.Warn("llm cache read failed", zap.Error(err))
		}
		r.opts.Metrics.cache(false)
		return "", false
	}
	r.opts.Metrics.cache(true)
	return string(data), true
}

func (r *remote) remember(ctx context.Context, key, response string) {
	if r.opts.Cache == nil {
		return
	}
	if err := r.opts.Cache.Set(ctx, key, []byte(response), r.opts.CacheTTL); err != nil {
		r.logger.Warn("llm cache write failed", zap.Error(err))
	}
}

// generate calls the model, retrying failures with exponential backoff
func (r *remote) generate(ctx context.Context, kind string, prompt string, tier llm.ModelTier, jsonOutput bool) (string, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	var strategy *retry.ExponentialBackoffRetryStrategy
	if r.opts.MaxRetries > 0 {
		s, err := retry.NewExponentialBackoffRetryStrategy(r.opts.InitialBackoff, r.opts.MaxBackoff, int32(r.opts.MaxRetries))
		if err != nil {
			return "", fmt.Errorf("invalid retry policy: %w", err)
		}
		strategy = s
	}

	for attempt := 1; ; attempt++ {
		var text string
		var err error
		if jsonOutput {
			text, err = r.client.GenerateJSON(ctx, prompt, tier)
		} else {
			text, err = r.client.GenerateContent(ctx, prompt, tier)
		}
		if err == nil {
			r.opts.Metrics.request(kind, "success")
			return text, nil
		}
		r.opts.Metrics.request(kind, "error")

		if ctx.Err() != nil || strategy == nil {
			return "", err
		}
		wait, ok := strategy.Next()
		if !ok {
			return "", fmt.Errorf("model call failed after %d attempts: %w", attempt, err)
		}
		r.logger.Warn("model call failed, retrying",
			zap.String("kind", kind),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.String("prompt", logger.TruncateForLog(prompt, 80)),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("model call abandoned after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
	}
}
