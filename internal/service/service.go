// Package service wires loading, matching, customization, rendering and
// storage into the operations exposed by the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/customization"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/session"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// DefaultConcurrency bounds AnalyzeJobs when Options leaves it unset
const DefaultConcurrency = 4

// ErrPersistenceDisabled is returned by history operations when no database
// is configured
var ErrPersistenceDisabled = errors.New("persistence is not configured")

// Repository is the durable store behind the session cache. *db.DB
// implements it.
type Repository interface {
	SaveProfile(ctx context.Context, profile *types.UserProfile) error
	GetProfile(ctx context.Context, id string) (*types.UserProfile, error)
	SaveJob(ctx context.Context, job *types.JobDescription) error
	GetJob(ctx context.Context, id string) (*types.JobDescription, error)
	SaveMatch(ctx context.Context, match *types.MatchResult) error
	GetMatch(ctx context.Context, id string) (*types.MatchResult, error)
	SaveCustomization(ctx context.Context, resume *types.CustomizedResume, job *types.JobDescription) error
	GetCustomization(ctx context.Context, id string) (*types.CustomizedResume, error)
	ListCustomizations(ctx context.Context, filter db.CustomizationFilter) ([]db.CustomizationRecord, error)
	GetAnalytics(ctx context.Context) (*db.Analytics, error)
}

// Options configures a Service. Scorer and Sessions are required.
type Options struct {
	Scorer    *matching.Scorer
	Engine    *customization.Engine
	Loader    *ingestion.Loader
	Extractor extraction.KeywordExtractor
	// Summaries is optional; without it the profile summary is kept
	Summaries   extraction.SummaryGenerator
	Sessions    *session.Sessions
	Repository  Repository
	Defaults    types.CustomizationPreferences
	Concurrency int
	Logger      *zap.Logger
}

// Service implements the resume matcher operations
type Service struct {
	scorer      *matching.Scorer
	engine      *customization.Engine
	loader      *ingestion.Loader
	extractor   extraction.KeywordExtractor
	summaries   extraction.SummaryGenerator
	sessions    *session.Sessions
	repo        Repository
	defaults    types.CustomizationPreferences
	concurrency int
	newID       func() string
	now         func() time.Time
	logger      *zap.Logger
}

// New validates opts and fills defaults
func New(opts Options) (*Service, error) {
	if opts.Scorer == nil {
		return nil, errors.New("service: scorer is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("service: sessions are required")
	}
	defaults, err := customization.ResolvePreferences(opts.Defaults)
	if err != nil {
		return nil, err
	}

	s := &Service{
		scorer:      opts.Scorer,
		engine:      opts.Engine,
		loader:      opts.Loader,
		extractor:   opts.Extractor,
		summaries:   opts.Summaries,
		sessions:    opts.Sessions,
		repo:        opts.Repository,
		defaults:    defaults,
		concurrency: opts.Concurrency,
		newID:       uuid.NewString,
		now:         time.Now,
		logger:      logger.OrNop(opts.Logger),
	}
	if s.engine == nil {
		s.engine = customization.NewEngine()
	}
	if s.loader == nil {
		s.loader = ingestion.NewLoader()
	}
	if s.extractor == nil {
		s.extractor = extraction.NewLocalExtractor(opts.Scorer.Matcher())
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	return s, nil
}

// Defaults returns the resolved default customization preferences
func (s *Service) Defaults() types.CustomizationPreferences {
	return s.defaults
}

// PersistenceEnabled reports whether a repository is configured
func (s *Service) PersistenceEnabled() bool {
	return s.repo != nil
}

// Close releases the session store
func (s *Service) Close() error {
	return s.sessions.Close()
}
