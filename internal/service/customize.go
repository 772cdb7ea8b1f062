package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/customization"
	"github.com/jonathan/resume-matcher/internal/rendering"
	"github.com/jonathan/resume-matcher/internal/types"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// CustomizeRequest selects a match and how to customize it. Preferences
// replaces the service defaults when set; Overrides are then applied on top
// as key=value settings.
type CustomizeRequest struct {
	MatchID     string                          `json:"match_id"`
	Preferences *types.CustomizationPreferences `json:"preferences,omitempty"`
	Overrides   map[string]string               `json:"overrides,omitempty"`
}

// CustomizeResult is a customized resume with its summary and statistics
type CustomizeResult struct {
	Resume     *types.CustomizedResume  `json:"customized_resume"`
	Summary    customization.Summary    `json:"summary"`
	Statistics customization.Statistics `json:"statistics"`
}

// Customize builds, validates and stores a customized resume for a match
func (s *Service) Customize(ctx context.Context, req CustomizeRequest) (*CustomizeResult, error) {
	prefs := s.defaults
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	prefs, err := config.DecodePreferences(prefs, req.Overrides)
	if err != nil {
		return nil, &InputError{Message: "invalid preferences", Cause: err}
	}

	match, err := s.Match(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	profile, err := s.Profile(ctx, match.ProfileID)
	if err != nil {
		return nil, err
	}
	job, err := s.Job(ctx, match.JobID)
	if err != nil {
		return nil, err
	}

	summary := ""
	if prefs.IncludeSummary {
		summary = s.generateSummary(ctx, profile, job, match)
	}

	resume, err := s.engine.Customize(profile, match, prefs, summary)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "customize match %s", match.MatchID)
	}

	if err := s.sessions.SaveCustomization(ctx, resume); err != nil {
		return nil, pkgerrors.Wrap(err, "store customization")
	}
	if s.repo != nil {
		if err := s.repo.SaveCustomization(ctx, resume, job); err != nil {
			return nil, pkgerrors.Wrap(err, "persist customization")
		}
	}

	log := resume.Metadata.ChangesLog
	s.logger.Info("resume customized",
		zap.String("customization_id", resume.ID()),
		zap.String("match_id", match.MatchID),
		zap.Int("achievements_kept", log.AchievementsKept),
		zap.Int("achievements_removed", log.AchievementsRemoved),
		zap.Int("skills_kept", log.SkillsKept),
		zap.Bool("custom_summary", resume.SummaryCustomized),
	)
	return &CustomizeResult{
		Resume:     resume,
		Summary:    customization.Summarize(resume),
		Statistics: customization.ComputeStatistics(profile, match, resume),
	}, nil
}

// generateSummary asks the summary generator for a tailored summary. Any
// failure leaves the profile summary in place.
func (s *Service) generateSummary(ctx context.Context, profile *types.UserProfile, job *types.JobDescription, match *types.MatchResult) string {
	if s.summaries == nil {
		return ""
	}
	summary, err := s.summaries.GenerateSummary(ctx, profile, job, match)
	if err != nil {
		s.logger.Warn("summary generation failed, keeping profile summary",
			zap.String("match_id", match.MatchID), zap.Error(err))
		return ""
	}
	return summary
}

// Generate renders a stored customization and verifies that every
// achievement and skill survived rendering verbatim
func (s *Service) Generate(ctx context.Context, customizationID string, format rendering.Format, templateName string) (string, error) {
	resume, err := s.Customization(ctx, customizationID)
	if err != nil {
		return "", err
	}
	doc, err := rendering.Render(resume, format, templateName)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "render customization %s", customizationID)
	}
	if err := rendering.VerifyRendered(resume, format, doc); err != nil {
		return "", pkgerrors.Wrapf(err, "render customization %s", customizationID)
	}
	return doc, nil
}

// GenerateFiles renders a stored customization in every format into dir and
// returns the written paths
func (s *Service) GenerateFiles(ctx context.Context, customizationID, dir, templateName string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(err, "create output directory")
	}

	var paths []string
	for _, format := range rendering.Formats {
		doc, err := s.Generate(ctx, customizationID, format, templateName)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("resume_%s.%s", customizationID, format.Extension()))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return nil, pkgerrors.Wrapf(err, "write %s", path)
		}
		paths = append(paths, path)
	}
	s.logger.Info("resume files written", zap.String("customization_id", customizationID), zap.Strings("paths", paths))
	return paths, nil
}
