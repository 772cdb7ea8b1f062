package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// Kind names the type of a stored value
type Kind string

// Stored kinds
const (
	KindProfile       Kind = "profile"
	KindJob           Kind = "job"
	KindMatch         Kind = "match"
	KindCustomization Kind = "customization"
)

// Key returns the store key for an entry
func Key(kind Kind, id string) string {
	return string(kind) + ":" + id
}

// Sessions stores domain values as JSON in a Store
type Sessions struct {
	store   Store
	ttl     time.Duration
	metrics *Metrics
	logger  *zap.Logger
}

// NewSessions wraps store. Every entry lives for ttl.
func NewSessions(store Store, ttl time.Duration, metrics *Metrics, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{store: store, ttl: ttl, metrics: metrics, logger: logger}
}

// SaveProfile stores a profile under its ProfileID
func (s *Sessions) SaveProfile(ctx context.Context, profile *types.UserProfile) error {
	return s.put(ctx, KindProfile, profile.ProfileID, profile)
}

// Profile loads a stored profile
func (s *Sessions) Profile(ctx context.Context, id string) (*types.UserProfile, error) {
	return load[types.UserProfile](ctx, s, KindProfile, id)
}

// SaveJob stores a job under its JobID
func (s *Sessions) SaveJob(ctx context.Context, job *types.JobDescription) error {
	return s.put(ctx, KindJob, job.JobID, job)
}

// Job loads a stored job
func (s *Sessions) Job(ctx context.Context, id string) (*types.JobDescription, error) {
	return load[types.JobDescription](ctx, s, KindJob, id)
}

// SaveMatch stores a match result under its MatchID
func (s *Sessions) SaveMatch(ctx context.Context, match *types.MatchResult) error {
	return s.put(ctx, KindMatch, match.MatchID, match)
}

// Match loads a stored match result
func (s *Sessions) Match(ctx context.Context, id string) (*types.MatchResult, error) {
	return load[types.MatchResult](ctx, s, KindMatch, id)
}

// SaveCustomization stores a customized resume under its customization id
func (s *Sessions) SaveCustomization(ctx context.Context, resume *types.CustomizedResume) error {
	return s.put(ctx, KindCustomization, resume.ID(), resume)
}

// Customization loads a stored customized resume
func (s *Sessions) Customization(ctx context.Context, id string) (*types.CustomizedResume, error) {
	return load[types.CustomizedResume](ctx, s, KindCustomization, id)
}

// Delete removes one entry
func (s *Sessions) Delete(ctx context.Context, kind Kind, id string) error {
	return s.store.Delete(ctx, Key(kind, id))
}

// Close closes the underlying store
func (s *Sessions) Close() error {
	return s.store.Close()
}

func (s *Sessions) put(ctx context.Context, kind Kind, id string, value any) error {
	if id == "" {
		return fmt.Errorf("cannot store %s without an id", kind)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", kind, id, err)
	}
	if err := s.store.Set(ctx, Key(kind, id), data, s.ttl); err != nil {
		return err
	}
	s.metrics.stored(kind)
	s.logger.Debug("session entry stored", zap.String("kind", string(kind)), zap.String("id", id))
	return nil
}

func load[T any](ctx context.Context, s *Sessions, kind Kind, id string) (*T, error) {
	data, err := s.store.Get(ctx, Key(kind, id))
	if errors.Is(err, ErrNotFound) {
		s.metrics.miss(kind)
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.metrics.hit(kind)

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", kind, id, err)
	}
	return &out, nil
}
