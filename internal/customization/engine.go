// Package customization builds job-targeted resumes from a profile and its
// match result.
package customization

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/selection"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
)

// Templates accepted in CustomizationPreferences.Template
var Templates = []string{"modern", "classic", "ats"}

// DefaultTemplate is used when preferences leave the template empty
const DefaultTemplate = "modern"

// maxSkillsMinRelevance is the relevance floor applied when MaxSkills is set
const maxSkillsMinRelevance = 50.0

// Engine produces CustomizedResumes. It holds no per-call state.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides how customization ids are generated
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolvePreferences fills defaults and validates preferences. Invalid
// settings return a *selection.ConfigError.
func ResolvePreferences(prefs types.CustomizationPreferences) (types.CustomizationPreferences, error) {
	if prefs.AchievementsPerRole < 0 {
		return prefs, &selection.ConfigError{Field: "achievements_per_role", Message: "must not be negative"}
	}
	if prefs.MaxSkills != nil && *prefs.MaxSkills < 0 {
		return prefs, &selection.ConfigError{Field: "max_skills", Message: "must not be negative"}
	}
	if prefs.Template == "" {
		prefs.Template = DefaultTemplate
	}
	if !knownTemplate(prefs.Template) {
		return prefs, &selection.ConfigError{
			Field:   "template",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(Templates, ", "), prefs.Template),
		}
	}
	if prefs.AchievementStrategy != nil && prefs.AchievementStrategy.TopN < 0 {
		return prefs, &selection.ConfigError{Field: "achievement_strategy.top_n", Message: "must not be negative"}
	}
	if prefs.SkillsStrategy != nil && prefs.SkillsStrategy.TopN != nil && *prefs.SkillsStrategy.TopN < 0 {
		return prefs, &selection.ConfigError{Field: "skills_strategy.top_n", Message: "must not be negative"}
	}
	return prefs, nil
}

func knownTemplate(name string) bool {
	for _, t := range Templates {
		if t == name {
			return true
		}
	}
	return false
}

// achievementStrategy returns the explicit strategy or one derived from
// AchievementsPerRole.
func achievementStrategy(prefs types.CustomizationPreferences) types.AchievementSelection {
	if prefs.AchievementStrategy != nil {
		return *prefs.AchievementStrategy
	}
	s := types.DefaultAchievementSelection()
	s.TopN = prefs.AchievementsPerRole
	return s
}

// skillsStrategy returns the explicit strategy, or shows every skill unless
// MaxSkills caps the list to relevant ones.
func skillsStrategy(prefs types.CustomizationPreferences) types.SkillsDisplayStrategy {
	if prefs.SkillsStrategy != nil {
		return *prefs.SkillsStrategy
	}
	s := types.DefaultSkillsDisplayStrategy()
	if prefs.MaxSkills != nil {
		limit := *prefs.MaxSkills
		s.TopN = &limit
		s.MinRelevanceScore = maxSkillsMinRelevance
		return s
	}
	s.ShowAll = true
	return s
}

// Customize builds a CustomizedResume for the match. summary is an optional
// generated summary; when empty, or when IncludeSummary is off, the profile's
// own summary is used. Any truthfulness or data loss violation is returned as
// an error and no resume is produced.
func (e *Engine) Customize(profile *types.UserProfile, match *types.MatchResult, prefs types.CustomizationPreferences, summary string) (*types.CustomizedResume, error) {
	prefs, err := ResolvePreferences(prefs)
	if err != nil {
		return nil, err
	}
	if profile == nil || match == nil {
		return nil, &selection.Error{Message: "profile and match result are required"}
	}
	if match.ProfileID != profile.ProfileID {
		return nil, &selection.Error{Message: fmt.Sprintf("match %s was computed for profile %q, not %q", match.MatchID, match.ProfileID, profile.ProfileID)}
	}

	experiences, err := selection.ReorderAchievements(profile, match, achievementStrategy(prefs))
	if err != nil {
		return nil, err
	}
	optimized, err := selection.OptimizeSkills(profile, match, skillsStrategy(prefs))
	if err != nil {
		return nil, err
	}

	resume := &types.CustomizedResume{
		ProfileID:      match.ProfileID,
		JobID:          match.JobID,
		MatchID:        match.MatchID,
		Name:           profile.Name,
		Contact:        profile.Contact,
		Summary:        profile.Summary,
		Experiences:    experiences,
		Skills:         optimized,
		Education:      append([]types.Education(nil), profile.Education...),
		Certifications: append([]types.Certification(nil), profile.Certifications...),
		Projects:       append([]types.Project(nil), profile.Projects...),
	}
	if prefs.IncludeSummary && strings.TrimSpace(summary) != "" {
		resume.Summary = summary
		resume.SummaryCustomized = true
	}

	resume.Metadata = types.CustomizationMetadata{
		CustomizationID: e.newID(),
		CreatedAt:       e.now().UTC().Format(time.RFC3339),
		Template:        prefs.Template,
		ProfileID:       match.ProfileID,
		JobID:           match.JobID,
		MatchScore:      match.OverallScore,
		ExperienceCount: len(experiences),

		OriginalAchievementCount:   profile.AchievementCount(),
		CustomizedAchievementCount: resume.AchievementCount(),
		OriginalSkillCount:         len(profile.Skills),
		CustomizedSkillCount:       len(optimized),

		ChangesLog:  BuildChangesLog(profile, experiences, optimized),
		Preferences: prefs,
	}
	return e.finish(profile, match, resume)
}

// finish releases resume only if it passes truthfulness and data loss checks
func (e *Engine) finish(profile *types.UserProfile, match *types.MatchResult, resume *types.CustomizedResume) (*types.CustomizedResume, error) {
	if err := validation.ValidateCustomizedResume(profile, match, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// BuildChangesLog records what customization removed or reordered
func BuildChangesLog(profile *types.UserProfile, experiences []types.Experience, optimized []types.Skill) types.ChangesLog {
	log := types.ChangesLog{
		ByExperience:     make([]types.ExperienceChange, 0),
		SkillsKept:       len(optimized),
		SkillsRemoved:    len(profile.Skills) - len(optimized),
		ExperiencesCount: len(experiences),
	}

	for i, orig := range profile.Experiences {
		kept := 0
		if i < len(experiences) {
			kept = len(experiences[i].Achievements)
		}
		log.AchievementsKept += kept
		log.AchievementsRemoved += len(orig.Achievements) - kept
		if kept != len(orig.Achievements) {
			log.ByExperience = append(log.ByExperience, types.ExperienceChange{
				Company:         orig.Company,
				Title:           orig.Title,
				OriginalCount:   len(orig.Achievements),
				CustomizedCount: kept,
				RemovedCount:    len(orig.Achievements) - kept,
			})
		}
	}

	log.SkillsReordered = len(optimized) != len(profile.Skills)
	if !log.SkillsReordered {
		for i := range optimized {
			if optimized[i].Name != profile.Skills[i].Name {
				log.SkillsReordered = true
				break
			}
		}
	}
	return log
}
