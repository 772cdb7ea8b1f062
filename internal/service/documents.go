package service

import (
	"context"
	"errors"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/session"
	"github.com/jonathan/resume-matcher/internal/types"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadProfileFile loads, validates and stores a profile from a JSON or
// markdown file
func (s *Service) LoadProfileFile(ctx context.Context, path string) (*types.UserProfile, error) {
	profile, meta, err := s.loader.LoadProfile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load profile %s", path)
	}
	return s.storeProfile(ctx, profile, meta)
}

// LoadProfile validates and stores a profile from raw JSON
func (s *Service) LoadProfile(ctx context.Context, data []byte) (*types.UserProfile, error) {
	profile, meta, err := s.loader.DecodeProfile(data, "")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load profile")
	}
	return s.storeProfile(ctx, profile, meta)
}

func (s *Service) storeProfile(ctx context.Context, profile *types.UserProfile, meta *ingestion.Metadata) (*types.UserProfile, error) {
	if err := s.sessions.SaveProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(err, "store profile")
	}
	if s.repo != nil {
		if err := s.repo.SaveProfile(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(err, "persist profile")
		}
	}
	s.logger.Info("profile loaded",
		zap.String("profile_id", profile.ProfileID),
		zap.Bool("assigned_id", meta.AssignedID),
		zap.String("hash", meta.Hash),
		zap.Int("experiences", len(profile.Experiences)),
		zap.Int("skills", len(profile.Skills)),
	)
	return profile, nil
}

// LoadJobFile loads, validates, enriches with keywords and stores a job
// description from a JSON or markdown file
func (s *Service) LoadJobFile(ctx context.Context, path string) (*types.JobDescription, error) {
	job, meta, err := s.loader.LoadJob(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load job %s", path)
	}
	return s.storeJob(ctx, job, meta)
}

// LoadJob validates, enriches and stores a job description from raw JSON
func (s *Service) LoadJob(ctx context.Context, data []byte) (*types.JobDescription, error) {
	job, meta, err := s.loader.DecodeJob(data, "")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load job")
	}
	return s.storeJob(ctx, job, meta)
}

func (s *Service) storeJob(ctx context.Context, job *types.JobDescription, meta *ingestion.Metadata) (*types.JobDescription, error) {
	enriched, err := extraction.Enrich(ctx, s.extractor, job)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "extract job keywords")
	}
	if err := s.sessions.SaveJob(ctx, enriched); err != nil {
		return nil, pkgerrors.Wrap(err, "store job")
	}
	if s.repo != nil {
		if err := s.repo.SaveJob(ctx, enriched); err != nil {
			return nil, pkgerrors.Wrap(err, "persist job")
		}
	}
	s.logger.Info("job loaded",
		zap.String("job_id", enriched.JobID),
		zap.String("title", enriched.Title),
		zap.String("company", enriched.Company),
		zap.Bool("assigned_id", meta.AssignedID),
		zap.Int("keywords", len(enriched.Keywords.All())),
	)
	return enriched, nil
}

// Profile returns a stored profile
func (s *Service) Profile(ctx context.Context, id string) (*types.UserProfile, error) {
	return lookup[types.UserProfile](ctx, s, "profile", id, s.sessions.Profile, repoGetter(s, Repository.GetProfile), s.sessions.SaveProfile)
}

// Job returns a stored job description
func (s *Service) Job(ctx context.Context, id string) (*types.JobDescription, error) {
	return lookup[types.JobDescription](ctx, s, "job", id, s.sessions.Job, repoGetter(s, Repository.GetJob), s.sessions.SaveJob)
}

// Match returns a stored match result
func (s *Service) Match(ctx context.Context, id string) (*types.MatchResult, error) {
	return lookup[types.MatchResult](ctx, s, "match", id, s.sessions.Match, repoGetter(s, Repository.GetMatch), s.sessions.SaveMatch)
}

// Customization returns a stored customized resume
func (s *Service) Customization(ctx context.Context, id string) (*types.CustomizedResume, error) {
	return lookup[types.CustomizedResume](ctx, s, "customization", id, s.sessions.Customization, repoGetter(s, Repository.GetCustomization), s.sessions.SaveCustomization)
}

type getter[T any] func(ctx context.Context, id string) (*T, error)

func repoGetter[T any](s *Service, get func(Repository, context.Context, string) (*T, error)) getter[T] {
	if s.repo == nil {
		return nil
	}
	return func(ctx context.Context, id string) (*T, error) {
		return get(s.repo, ctx, id)
	}
}

// lookup reads from the session store first, then from the repository,
// re-caching repository hits in the session store
func lookup[T any](ctx context.Context, s *Service, kind, id string, fromSession, fromRepo getter[T], cache func(context.Context, *T) error) (*T, error) {
	if id == "" {
		return nil, &InputError{Message: kind + " id is required"}
	}

	value, err := fromSession(ctx, id)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		return nil, pkgerrors.Wrapf(err, "read %s %s", kind, id)
	}
	if fromRepo == nil {
		return nil, pkgerrors.Wrapf(ErrNotFound, "%s %s", kind, id)
	}

	value, err = fromRepo(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, pkgerrors.Wrapf(ErrNotFound, "%s %s", kind, id)
		}
		return nil, pkgerrors.Wrapf(err, "read %s %s", kind, id)
	}
	if err := cache(ctx, value); err != nil {
		s.logger.Warn("failed to cache record", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	}
	return value, nil
}
