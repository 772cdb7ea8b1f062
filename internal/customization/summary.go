package customization

import (
	"github.com/jonathan/resume-matcher/internal/selection"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Changes is the short form of a ChangesLog
type Changes struct {
	AchievementsRemoved int  `json:"achievements_removed"`
	SkillsRemoved       int  `json:"skills_removed"`
	SkillsReordered     bool `json:"skills_reordered"`
}

// Summary is a compact description of one customization
type Summary struct {
	CustomizationID   string                         `json:"customization_id"`
	CreatedAt         string                         `json:"created_at"`
	MatchScore        int                            `json:"match_score"`
	Template          string                         `json:"template"`
	HasCustomSummary  bool                           `json:"has_custom_summary"`
	ExperiencesCount  int                            `json:"experiences_count"`
	AchievementsCount int                            `json:"achievements_count"`
	SkillsCount       int                            `json:"skills_count"`
	Changes           Changes                        `json:"changes"`
	Preferences       types.CustomizationPreferences `json:"preferences"`
}

// Summarize describes a customized resume
func Summarize(resume *types.CustomizedResume) Summary {
	md := resume.Metadata
	return Summary{
		CustomizationID:   md.CustomizationID,
		CreatedAt:         md.CreatedAt,
		MatchScore:        md.MatchScore,
		Template:          md.Template,
		HasCustomSummary:  resume.SummaryCustomized,
		ExperiencesCount:  len(resume.Experiences),
		AchievementsCount: resume.AchievementCount(),
		SkillsCount:       len(resume.Skills),
		Changes: Changes{
			AchievementsRemoved: md.ChangesLog.AchievementsRemoved,
			SkillsRemoved:       md.ChangesLog.SkillsRemoved,
			SkillsReordered:     md.ChangesLog.SkillsReordered,
		},
		Preferences: md.Preferences,
	}
}

// Statistics groups the selection statistics of one customization
type Statistics struct {
	Achievements selection.AchievementStatistics `json:"achievements"`
	Skills       selection.SkillStatistics       `json:"skills"`
}

// ComputeStatistics compares a customized resume with its sources
func ComputeStatistics(profile *types.UserProfile, match *types.MatchResult, resume *types.CustomizedResume) Statistics {
	return Statistics{
		Achievements: selection.GetAchievementStatistics(profile, resume.Experiences),
		Skills:       selection.GetSkillStatistics(profile, resume.Skills, match),
	}
}
