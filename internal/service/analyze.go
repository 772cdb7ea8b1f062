package service

import (
	"context"
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyze scores a stored profile against a stored job and stores the result
func (s *Service) Analyze(ctx context.Context, profileID, jobID string) (*types.MatchResult, error) {
	profile, err := s.Profile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	job, err := s.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, profile, job)
}

func (s *Service) analyze(ctx context.Context, profile *types.UserProfile, job *types.JobDescription) (*types.MatchResult, error) {
	match, err := s.scorer.Analyze(profile, job)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "analyze profile %s against job %s", profile.ProfileID, job.JobID)
	}
	match.MatchID = s.newID()

	if err := s.sessions.SaveMatch(ctx, match); err != nil {
		return nil, pkgerrors.Wrap(err, "store match")
	}
	if s.repo != nil {
		if err := s.repo.SaveMatch(ctx, match); err != nil {
			return nil, pkgerrors.Wrap(err, "persist match")
		}
	}

	s.logger.Info("match analyzed",
		zap.String("match_id", match.MatchID),
		zap.String("profile_id", match.ProfileID),
		zap.String("job_id", match.JobID),
		zap.Int("score", match.OverallScore),
		zap.Int("missing_required", len(match.MissingRequiredSkills)),
	)
	return match, nil
}

// RankAchievements scores every achievement of a stored profile against a
// stored job, best first
func (s *Service) RankAchievements(ctx context.Context, profileID, jobID string) ([]types.ScoredAchievement, error) {
	profile, err := s.Profile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	job, err := s.Job(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.scorer.Ranker().RankProfile(profile, job), nil
}

// JobRanking is one row of AnalyzeJobs
type JobRanking struct {
	JobID                 string   `json:"job_id"`
	Title                 string   `json:"title"`
	Company               string   `json:"company"`
	MatchID               string   `json:"match_id"`
	OverallScore          int      `json:"overall_score"`
	MissingRequiredSkills []string `json:"missing_required_skills"`
}

// AnalyzeJobs analyzes one profile against several jobs concurrently and
// returns the results best match first. Ties keep the input order.
func (s *Service) AnalyzeJobs(ctx context.Context, profileID string, jobIDs []string) ([]JobRanking, error) {
	profile, err := s.Profile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	results := make([]JobRanking, len(jobIDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, jobID := range jobIDs {
		g.Go(func() error {
			job, err := s.Job(gCtx, jobID)
			if err != nil {
				return err
			}
			match, err := s.analyze(gCtx, profile, job)
			if err != nil {
				return err
			}
			results[i] = JobRanking{
				JobID:                 job.JobID,
				Title:                 job.Title,
				Company:               job.Company,
				MatchID:               match.MatchID,
				OverallScore:          match.OverallScore,
				MissingRequiredSkills: match.MissingRequiredSkills,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	return results, nil
}
