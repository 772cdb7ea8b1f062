package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T) (*Sessions, *Metrics, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	metrics := NewMetrics(prometheus.NewRegistry())
	store := NewMemoryStore(0, WithClock(clock.Now), WithMetrics(metrics))
	sessions := NewSessions(store, time.Hour, metrics, nil)
	t.Cleanup(func() { _ = sessions.Close() })
	return sessions, metrics, clock
}

func TestSessions_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sessions, metrics, _ := newTestSessions(t)

	profile := &types.UserProfile{
		ProfileID: "p-1",
		Name:      "Jane Doe",
		Skills:    []types.Skill{{Name: "Go", Proficiency: types.ProficiencyExpert}},
	}
	require.NoError(t, sessions.SaveProfile(ctx, profile))

	got, err := sessions.Profile(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	job := &types.JobDescription{JobID: "j-1", Title: "Engineer", Company: "Acme"}
	require.NoError(t, sessions.SaveJob(ctx, job))
	gotJob, err := sessions.Job(ctx, "j-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", gotJob.Company)

	match := &types.MatchResult{MatchID: "m-1", ProfileID: "p-1", JobID: "j-1", OverallScore: 72}
	require.NoError(t, sessions.SaveMatch(ctx, match))
	gotMatch, err := sessions.Match(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, 72, gotMatch.OverallScore)

	resume := &types.CustomizedResume{ProfileID: "p-1", Metadata: types.CustomizationMetadata{CustomizationID: "c-1"}}
	require.NoError(t, sessions.SaveCustomization(ctx, resume))
	gotResume, err := sessions.Customization(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", gotResume.ID())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.hits.WithLabelValues(string(KindProfile))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.stores.WithLabelValues(string(KindCustomization))))
}

func TestSessions_MissAndExpiry(t *testing.T) {
	ctx := context.Background()
	sessions, metrics, clock := newTestSessions(t)

	_, err := sessions.Profile(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "profile nope")

	require.NoError(t, sessions.SaveJob(ctx, &types.JobDescription{JobID: "j-1", Title: "T", Company: "C"}))
	clock.Advance(2 * time.Hour)
	_, err = sessions.Job(ctx, "j-1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.misses.WithLabelValues(string(KindProfile))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.misses.WithLabelValues(string(KindJob))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.expired))
}

func TestSessions_Delete(t *testing.T) {
	ctx := context.Background()
	sessions, _, _ := newTestSessions(t)

	require.NoError(t, sessions.SaveMatch(ctx, &types.MatchResult{MatchID: "m-1"}))
	require.NoError(t, sessions.Delete(ctx, KindMatch, "m-1"))
	_, err := sessions.Match(ctx, "m-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessions_RequiresID(t *testing.T) {
	sessions, _, _ := newTestSessions(t)
	err := sessions.SaveProfile(context.Background(), &types.UserProfile{Name: "No ID"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without an id")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "match:abc", Key(KindMatch, "abc"))
}

func TestOpen(t *testing.T) {
	store, err := Open(context.Background(), config.SessionConfig{Backend: config.SessionBackendMemory, CleanupInterval: time.Minute}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open(context.Background(), config.SessionConfig{Backend: "etcd"}, nil, nil)
	assert.Error(t, err)
}
