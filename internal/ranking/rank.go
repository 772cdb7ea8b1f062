package ranking

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Ranker scores achievements by relevance to a job. It holds no mutable state.
type Ranker struct {
	matcher *skills.Matcher
	weights Weights
}

// NewRanker creates a Ranker using the matcher's normalization for technology lookup
func NewRanker(matcher *skills.Matcher, weights Weights) (*Ranker, error) {
	if matcher == nil {
		return nil, fmt.Errorf("skill matcher is required")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Ranker{matcher: matcher, weights: weights}, nil
}

// Weights returns the ranker's component weights
func (r *Ranker) Weights() Weights {
	return r.weights
}

// jobTerms is the per-job lookup data shared across all achievements in a call
type jobTerms struct {
	keywords  []string
	jobSkills []string
}

func newJobTerms(job *types.JobDescription) jobTerms {
	return jobTerms{
		keywords:  job.Keywords.TechnicalAndDomain(),
		jobSkills: dedupeFold(job.Requirements.RequiredSkills, job.Requirements.PreferredSkills),
	}
}

// ScoreAchievement scores a single achievement on a 0-100 scale
func (r *Ranker) ScoreAchievement(achievement types.Achievement, job *types.JobDescription) types.ScoredAchievement {
	return r.score(achievement, newJobTerms(job))
}

func (r *Ranker) score(achievement types.Achievement, terms jobTerms) types.ScoredAchievement {
	tokens := skills.Tokenize(achievement.Text)

	keywordOverlap, keywordsFound := computeKeywordOverlap(tokens, terms.keywords)
	techMatch, techFound := computeTechnologyMatch(r.matcher, tokens, terms.jobSkills)
	metrics := ExtractMetrics(achievement.Text)
	metricsScore := 0.0
	if len(metrics) > 0 {
		metricsScore = 1.0
	}

	score := 100 * (r.weights.KeywordOverlap*keywordOverlap +
		r.weights.TechnologyMatch*techMatch +
		r.weights.Metrics*metricsScore +
		r.weights.Residual)

	return types.ScoredAchievement{
		Achievement:     achievement,
		Score:           round2(min(max(score, 0), 100)),
		MatchedKeywords: dedupeFold(keywordsFound, techFound),
		Reasons:         generateReasons(keywordsFound, techFound, metrics),
	}
}

// RankAchievements scores achievements and returns them sorted by score,
// highest first. Ties keep their input order. The input is not modified.
func (r *Ranker) RankAchievements(achievements []types.Achievement, job *types.JobDescription) []types.ScoredAchievement {
	terms := newJobTerms(job)
	ranked := make([]types.ScoredAchievement, 0, len(achievements))
	for i, a := range achievements {
		scored := r.score(a, terms)
		scored.ExperienceIndex = -1
		scored.AchievementIndex = i
		ranked = append(ranked, scored)
	}
	sortByScore(ranked)
	return ranked
}

// RankProfile ranks every achievement in the profile, recording which
// experience each came from. Ties keep profile order.
func (r *Ranker) RankProfile(profile *types.UserProfile, job *types.JobDescription) []types.ScoredAchievement {
	terms := newJobTerms(job)
	ranked := make([]types.ScoredAchievement, 0, profile.AchievementCount())
	for ei, exp := range profile.Experiences {
		for ai, a := range exp.Achievements {
			scored := r.score(a, terms)
			scored.ExperienceIndex = ei
			scored.AchievementIndex = ai
			ranked = append(ranked, scored)
		}
	}
	sortByScore(ranked)
	return ranked
}

func sortByScore(ranked []types.ScoredAchievement) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}
