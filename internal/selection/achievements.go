package selection

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	leadershipBonus = 10.0
	metricsBonus    = 5.0
	// A new company and a new title each earn half of the diversity bonus
	diversityBonusPerAxis = 2.5
)

// leadershipIndicators are matched as whole words, so inflections are listed
var leadershipIndicators = []string{
	"led", "lead", "leads", "leading", "leadership",
	"managed", "manage", "manages", "managing",
	"directed", "coordinated", "supervised",
	"mentored", "mentoring", "coached", "guided",
	"spearheaded", "drove", "initiated", "founded",
	"established", "built team", "hired", "hiring", "onboarded",
	"team of", "cross-functional", "stakeholder", "stakeholders",
}

// HasLeadershipIndicators reports whether the text mentions leading, managing
// or growing people. Indicators inside longer words ("handled") do not count.
func HasLeadershipIndicators(text string) bool {
	tokens := skills.Tokenize(text)
	for _, indicator := range leadershipIndicators {
		if skills.ContainsTerm(tokens, indicator) {
			return true
		}
	}
	return false
}

func hasMetrics(a types.Achievement) bool {
	return len(a.Metrics) > 0 || ranking.HasMetrics(a.Text)
}

func validateAchievementSelection(strategy types.AchievementSelection) error {
	if strategy.TopN < 0 {
		return &ConfigError{Field: "top_n", Message: "must not be negative"}
	}
	return nil
}

type candidate struct {
	achievement types.Achievement
	base        float64
	final       float64
}

// ReorderAchievements selects the top achievements of each experience for the
// matched job. Experiences keep their source order and metadata; only the
// achievement subset and its order change. Selected achievements carry their
// ranker score in RelevanceScore. The profile is not modified.
func ReorderAchievements(profile *types.UserProfile, match *types.MatchResult, strategy types.AchievementSelection) ([]types.Experience, error) {
	if err := validateAchievementSelection(strategy); err != nil {
		return nil, err
	}
	if profile == nil || match == nil {
		return nil, &Error{Message: "profile and match result are required"}
	}

	baseScores := make(map[string]float64, len(match.RankedAchievements))
	for _, ra := range match.RankedAchievements {
		if _, seen := baseScores[ra.Achievement.Text]; !seen {
			baseScores[ra.Achievement.Text] = ra.Score
		}
	}

	selectedCompanies := make(map[string]bool)
	selectedTitles := make(map[string]bool)
	out := make([]types.Experience, 0, len(profile.Experiences))

	for _, exp := range profile.Experiences {
		custom := copyExperience(exp)
		if len(exp.Achievements) == 0 {
			out = append(out, custom)
			continue
		}

		candidates := make([]candidate, 0, len(exp.Achievements))
		for _, a := range exp.Achievements {
			base := baseScores[a.Text]
			if base < strategy.MinRelevanceScore {
				continue
			}
			final := base
			if strategy.PrioritizeLeadership && HasLeadershipIndicators(a.Text) {
				final += leadershipBonus
			}
			if strategy.IncludeMetrics && hasMetrics(a) {
				final += metricsBonus
			}
			if strategy.EnsureDiversity {
				if !selectedCompanies[exp.Company] {
					final += diversityBonusPerAxis
				}
				if !selectedTitles[exp.Title] {
					final += diversityBonusPerAxis
				}
			}
			candidates = append(candidates, candidate{achievement: a, base: base, final: final})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].final > candidates[j].final
		})
		if len(candidates) > strategy.TopN {
			candidates = candidates[:strategy.TopN]
		}

		selected := make([]types.Achievement, 0, len(candidates))
		for _, c := range candidates {
			a := copyAchievement(c.achievement)
			score := c.base
			a.RelevanceScore = &score
			selected = append(selected, a)
		}
		custom.Achievements = selected

		if len(selected) > 0 {
			selectedCompanies[exp.Company] = true
			selectedTitles[exp.Title] = true
		}
		out = append(out, custom)
	}

	return out, nil
}

func copyExperience(exp types.Experience) types.Experience {
	c := exp
	c.Achievements = make([]types.Achievement, len(exp.Achievements))
	for i, a := range exp.Achievements {
		c.Achievements[i] = copyAchievement(a)
	}
	c.Technologies = append([]string(nil), exp.Technologies...)
	return c
}

func copyAchievement(a types.Achievement) types.Achievement {
	c := a
	c.Technologies = append([]string(nil), a.Technologies...)
	c.Metrics = append([]string(nil), a.Metrics...)
	if a.RelevanceScore != nil {
		score := *a.RelevanceScore
		c.RelevanceScore = &score
	}
	return c
}

// AchievementStatistics summarizes how much of the profile survived selection
type AchievementStatistics struct {
	TotalOriginal        int     `json:"total_original"`
	TotalSelected        int     `json:"total_selected"`
	SelectionRate        float64 `json:"selection_rate"`
	CompaniesOriginal    int     `json:"companies_original"`
	CompaniesRepresented int     `json:"companies_represented"`
	DiversityRate        float64 `json:"diversity_rate"`
}

// GetAchievementStatistics compares selected experiences with the source profile
func GetAchievementStatistics(profile *types.UserProfile, experiences []types.Experience) AchievementStatistics {
	stats := AchievementStatistics{TotalOriginal: profile.AchievementCount()}

	companies := make(map[string]bool)
	for _, exp := range profile.Experiences {
		companies[exp.Company] = true
	}
	represented := make(map[string]bool)
	for _, exp := range experiences {
		stats.TotalSelected += len(exp.Achievements)
		if len(exp.Achievements) > 0 {
			represented[exp.Company] = true
		}
	}

	stats.CompaniesOriginal = len(companies)
	stats.CompaniesRepresented = len(represented)
	if stats.TotalOriginal > 0 {
		stats.SelectionRate = float64(stats.TotalSelected) / float64(stats.TotalOriginal)
	}
	if stats.CompaniesOriginal > 0 {
		stats.DiversityRate = float64(stats.CompaniesRepresented) / float64(stats.CompaniesOriginal)
	}
	return stats
}
