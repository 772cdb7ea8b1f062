package selection

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Skill relevance buckets
const (
	SkillScoreRequired  = 100.0
	SkillScorePreferred = 80.0
	SkillScoreKeyword   = 60.0
	SkillScoreUnmatched = 20.0
)

// DefaultCategory is used for skills without a category when grouping
const DefaultCategory = "General"

type scoredSkill struct {
	skill types.Skill
	score float64
}

func validateSkillsStrategy(strategy types.SkillsDisplayStrategy) error {
	if strategy.TopN != nil && *strategy.TopN < 0 {
		return &ConfigError{Field: "top_n", Message: "must not be negative"}
	}
	return nil
}

// SkillRelevance buckets a profile skill by how the matched job refers to it
func SkillRelevance(skill types.Skill, match *types.MatchResult) float64 {
	best := SkillScoreUnmatched
	for _, sm := range match.MatchedSkills {
		if !sm.Matched || !refersTo(sm, skill.Name) {
			continue
		}
		switch sm.Category {
		case types.SkillCategoryRequired:
			return SkillScoreRequired
		case types.SkillCategoryPreferred:
			best = max(best, SkillScorePreferred)
		default:
			best = max(best, SkillScoreKeyword)
		}
	}
	if best > SkillScoreUnmatched {
		return best
	}

	name := skills.Normalize(skill.Name)
	for _, kw := range match.JobKeywords {
		if name != "" && skills.Normalize(kw) == name {
			return SkillScoreKeyword
		}
	}
	return SkillScoreUnmatched
}

func refersTo(sm types.SkillMatch, name string) bool {
	return strings.EqualFold(sm.UserSkill, name) || strings.EqualFold(sm.Skill, name)
}

// OptimizeSkills filters and orders profile skills for the matched job. Names,
// proficiencies and years are copied unchanged. The profile is not modified.
func OptimizeSkills(profile *types.UserProfile, match *types.MatchResult, strategy types.SkillsDisplayStrategy) ([]types.Skill, error) {
	if err := validateSkillsStrategy(strategy); err != nil {
		return nil, err
	}
	if profile == nil || match == nil {
		return nil, &Error{Message: "profile and match result are required"}
	}

	scored := make([]scoredSkill, 0, len(profile.Skills))
	for _, sk := range profile.Skills {
		score := SkillRelevance(sk, match)
		if !strategy.ShowAll && score <= SkillScoreUnmatched {
			continue
		}
		if score < strategy.MinRelevanceScore {
			continue
		}
		scored = append(scored, scoredSkill{skill: copySkill(sk), score: score})
	}

	if strategy.PrioritizeMatched {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})
	}
	if strategy.TopN != nil && len(scored) > *strategy.TopN {
		scored = scored[:*strategy.TopN]
	}
	if strategy.GroupByCategory {
		scored = groupByCategory(scored)
	}

	out := make([]types.Skill, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.skill)
	}
	return out, nil
}

// groupByCategory orders categories by average relevance, highest first, and
// keeps member order within each category. Equal averages keep the order in
// which the categories first appear.
func groupByCategory(scored []scoredSkill) []scoredSkill {
	var order []string
	groups := make(map[string][]scoredSkill)
	for _, s := range scored {
		cat := s.skill.Category
		if cat == "" {
			cat = DefaultCategory
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], s)
	}

	avg := make(map[string]float64, len(groups))
	for cat, members := range groups {
		sum := 0.0
		for _, m := range members {
			sum += m.score
		}
		avg[cat] = sum / float64(len(members))
	}
	sort.SliceStable(order, func(i, j int) bool {
		return avg[order[i]] > avg[order[j]]
	})

	out := make([]scoredSkill, 0, len(scored))
	for _, cat := range order {
		out = append(out, groups[cat]...)
	}
	return out
}

func copySkill(s types.Skill) types.Skill {
	c := s
	if s.Years != nil {
		years := *s.Years
		c.Years = &years
	}
	return c
}

// SkillStatistics summarizes the optimized skills list
type SkillStatistics struct {
	TotalOriginal        int     `json:"total_original"`
	TotalDisplayed       int     `json:"total_displayed"`
	ReductionRate        float64 `json:"reduction_rate"`
	MatchedSkillsShown   int     `json:"matched_skills_shown"`
	RequiredSkillsShown  int     `json:"required_skills_shown"`
	PreferredSkillsShown int     `json:"preferred_skills_shown"`
	CategoriesCount      int     `json:"categories_count"`
}

// GetSkillStatistics compares optimized skills with the source profile
func GetSkillStatistics(profile *types.UserProfile, optimized []types.Skill, match *types.MatchResult) SkillStatistics {
	stats := SkillStatistics{
		TotalOriginal:  len(profile.Skills),
		TotalDisplayed: len(optimized),
	}
	if stats.TotalOriginal > 0 {
		stats.ReductionRate = 1.0 - float64(stats.TotalDisplayed)/float64(stats.TotalOriginal)
	}

	categories := make(map[string]bool)
	for _, sk := range optimized {
		categories[sk.Category] = true
		switch SkillRelevance(sk, match) {
		case SkillScoreRequired:
			stats.MatchedSkillsShown++
			stats.RequiredSkillsShown++
		case SkillScorePreferred:
			stats.MatchedSkillsShown++
			stats.PreferredSkillsShown++
		}
	}
	stats.CategoriesCount = len(categories)
	return stats
}
