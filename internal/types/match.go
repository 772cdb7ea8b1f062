package types

import "time"

// MatchType records how a job skill was satisfied
type MatchType string

// Match types in priority order
const (
	MatchExact     MatchType = "exact"
	MatchSynonym   MatchType = "synonym"
	MatchHierarchy MatchType = "hierarchy"
	MatchFuzzy     MatchType = "fuzzy"
)

// Priority returns a sort key where lower is stronger
func (m MatchType) Priority() int {
	switch m {
	case MatchExact:
		return 0
	case MatchSynonym:
		return 1
	case MatchHierarchy:
		return 2
	case MatchFuzzy:
		return 3
	default:
		return 4
	}
}

// Skill categories used on SkillMatch
const (
	SkillCategoryRequired  = "required"
	SkillCategoryPreferred = "preferred"
)

// SkillMatch is the per-job-skill outcome of skill matching
type SkillMatch struct {
	Skill           string      `json:"skill"`
	Matched         bool        `json:"matched"`
	Category        string      `json:"category"`
	MatchType       MatchType   `json:"match_type,omitempty"`
	UserSkill       string      `json:"user_skill,omitempty"`
	UserProficiency Proficiency `json:"user_proficiency,omitempty"`
}

// MatchBreakdown holds the four weighted sub-scores and their total
type MatchBreakdown struct {
	TechnicalSkills float64 `json:"technical_skills_score"`
	Experience      float64 `json:"experience_score"`
	Domain          float64 `json:"domain_score"`
	KeywordCoverage float64 `json:"keyword_coverage_score"`
	TotalScore      int     `json:"total_score"`
}

// Gap kinds
const (
	GapRequiredSkill  = "required_skill"
	GapPreferredSkill = "preferred_skill"
	GapDomain         = "domain"
	GapKeyword        = "keyword"
	GapExperience     = "experience"
)

// Gap is a single shortfall between profile and job
type Gap struct {
	Item   string `json:"item"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// GapAnalysis splits gaps by severity
type GapAnalysis struct {
	Critical    []Gap `json:"critical"`
	Recommended []Gap `json:"recommended"`
}

// ScoredAchievement is an achievement with its job relevance score and explanation
type ScoredAchievement struct {
	Achievement      Achievement `json:"achievement"`
	Score            float64     `json:"score"`
	MatchedKeywords  []string    `json:"matched_keywords"`
	Reasons          []string    `json:"reasons,omitempty"`
	ExperienceIndex  int         `json:"experience_index"`
	AchievementIndex int         `json:"achievement_index"`
}

// MatchResult is the outcome of analyzing one profile against one job
type MatchResult struct {
	MatchID                string              `json:"match_id,omitempty"`
	ProfileID              string              `json:"profile_id"`
	JobID                  string              `json:"job_id"`
	OverallScore           int                 `json:"overall_score"`
	Breakdown              MatchBreakdown      `json:"breakdown"`
	MatchedSkills          []SkillMatch        `json:"matched_skills"`
	MissingRequiredSkills  []string            `json:"missing_required_skills"`
	MissingPreferredSkills []string            `json:"missing_preferred_skills"`
	JobKeywords            []string            `json:"job_keywords,omitempty"`
	Gaps                   GapAnalysis         `json:"gaps"`
	RankedAchievements     []ScoredAchievement `json:"ranked_achievements"`
	Suggestions            []string            `json:"suggestions"`
	CreatedAt              time.Time           `json:"created_at"`
}
