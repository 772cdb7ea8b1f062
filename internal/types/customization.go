package types

// AchievementSelection controls which achievements survive customization
type AchievementSelection struct {
	TopN                 int     `json:"top_n" mapstructure:"top_n"`
	EnsureDiversity      bool    `json:"ensure_diversity" mapstructure:"ensure_diversity"`
	PrioritizeLeadership bool    `json:"prioritize_leadership" mapstructure:"prioritize_leadership"`
	IncludeMetrics       bool    `json:"include_metrics" mapstructure:"include_metrics"`
	MinRelevanceScore    float64 `json:"min_relevance_score" mapstructure:"min_relevance_score"`
}

// DefaultAchievementSelection returns the default achievement selection strategy
func DefaultAchievementSelection() AchievementSelection {
	return AchievementSelection{
		TopN:                 3,
		EnsureDiversity:      true,
		PrioritizeLeadership: true,
		IncludeMetrics:       true,
	}
}

// SkillsDisplayStrategy controls which skills are shown and in what order
type SkillsDisplayStrategy struct {
	ShowAll           bool    `json:"show_all" mapstructure:"show_all"`
	TopN              *int    `json:"top_n,omitempty" mapstructure:"top_n"`
	GroupByCategory   bool    `json:"group_by_category" mapstructure:"group_by_category"`
	MinRelevanceScore float64 `json:"min_relevance_score" mapstructure:"min_relevance_score"`
	PrioritizeMatched bool    `json:"prioritize_matched" mapstructure:"prioritize_matched"`
}

// DefaultSkillsDisplayStrategy returns the default skills strategy
func DefaultSkillsDisplayStrategy() SkillsDisplayStrategy {
	return SkillsDisplayStrategy{
		GroupByCategory:   true,
		PrioritizeMatched: true,
	}
}

// CustomizationPreferences are the caller's choices for one customization pass
type CustomizationPreferences struct {
	AchievementsPerRole int                    `json:"achievements_per_role" mapstructure:"achievements_per_role"`
	MaxSkills           *int                   `json:"max_skills,omitempty" mapstructure:"max_skills"`
	Template            string                 `json:"template" mapstructure:"template"`
	IncludeSummary      bool                   `json:"include_summary" mapstructure:"include_summary"`
	AchievementStrategy *AchievementSelection  `json:"achievement_strategy,omitempty" mapstructure:"achievement_strategy"`
	SkillsStrategy      *SkillsDisplayStrategy `json:"skills_strategy,omitempty" mapstructure:"skills_strategy"`
}

// DefaultCustomizationPreferences returns preferences used when the caller gives none
func DefaultCustomizationPreferences() CustomizationPreferences {
	return CustomizationPreferences{
		AchievementsPerRole: 3,
		Template:            "modern",
		IncludeSummary:      true,
	}
}

// ExperienceChange records how many achievements one experience lost
type ExperienceChange struct {
	Company         string `json:"company"`
	Title           string `json:"title"`
	OriginalCount   int    `json:"original_count"`
	CustomizedCount int    `json:"customized_count"`
	RemovedCount    int    `json:"removed_count"`
}

// ChangesLog is the audit record of one customization pass
type ChangesLog struct {
	AchievementsKept    int                `json:"achievements_kept"`
	AchievementsRemoved int                `json:"achievements_removed"`
	ByExperience        []ExperienceChange `json:"achievement_changes_by_experience"`
	SkillsKept          int                `json:"skills_kept"`
	SkillsRemoved       int                `json:"skills_removed"`
	SkillsReordered     bool               `json:"skills_reordered"`
	ExperiencesCount    int                `json:"experiences_count"`
}

// CustomizationMetadata describes how a customized resume was produced
type CustomizationMetadata struct {
	CustomizationID string                   `json:"customization_id"`
	CreatedAt       string                   `json:"created_at"`
	Template        string                   `json:"template"`
	ProfileID       string                   `json:"profile_id"`
	JobID           string                   `json:"job_id"`
	MatchScore      int                      `json:"match_score"`
	ExperienceCount int                      `json:"experience_count"`

	OriginalAchievementCount   int `json:"original_achievement_count"`
	CustomizedAchievementCount int `json:"customized_achievement_count"`
	OriginalSkillCount         int `json:"original_skill_count"`
	CustomizedSkillCount       int `json:"customized_skill_count"`

	ChangesLog  ChangesLog               `json:"changes_log"`
	Preferences CustomizationPreferences `json:"preferences"`
}

// CustomizedResume is a job-targeted view of a profile. Every achievement and
// skill it carries exists verbatim in the source profile.
type CustomizedResume struct {
	ProfileID         string                `json:"profile_id"`
	JobID             string                `json:"job_id"`
	MatchID           string                `json:"match_id,omitempty"`
	Name              string                `json:"name"`
	Contact           ContactInfo           `json:"contact"`
	Summary           string                `json:"summary,omitempty"`
	SummaryCustomized bool                  `json:"summary_customized"`
	Experiences       []Experience          `json:"experiences"`
	Skills            []Skill               `json:"skills"`
	Education         []Education           `json:"education,omitempty"`
	Certifications    []Certification       `json:"certifications,omitempty"`
	Projects          []Project             `json:"projects,omitempty"`
	Metadata          CustomizationMetadata `json:"metadata"`
}

// ID returns the customization id
func (r *CustomizedResume) ID() string {
	return r.Metadata.CustomizationID
}

// AchievementCount returns the number of achievements kept across experiences
func (r *CustomizedResume) AchievementCount() int {
	count := 0
	for _, exp := range r.Experiences {
		count += len(exp.Achievements)
	}
	return count
}
