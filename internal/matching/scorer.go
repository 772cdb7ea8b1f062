// Package matching scores how well a user profile fits a job description.
package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Weights for the four match sub-scores. They must sum to 1.
type Weights struct {
	TechnicalSkills float64 `mapstructure:"technical_skills"`
	Experience      float64 `mapstructure:"experience"`
	Domain          float64 `mapstructure:"domain"`
	KeywordCoverage float64 `mapstructure:"keyword_coverage"`
}

// DefaultWeights returns the 40/25/20/15 split
func DefaultWeights() Weights {
	return Weights{
		TechnicalSkills: 0.40,
		Experience:      0.25,
		Domain:          0.20,
		KeywordCoverage: 0.15,
	}
}

// Validate checks the weights are non-negative and sum to 1
func (w Weights) Validate() error {
	components := []struct {
		name  string
		value float64
	}{
		{"technical_skills", w.TechnicalSkills},
		{"experience", w.Experience},
		{"domain", w.Domain},
		{"keyword_coverage", w.KeywordCoverage},
	}
	for _, c := range components {
		if c.value < 0 {
			return fmt.Errorf("match weight %s must be non-negative, got %.2f", c.name, c.value)
		}
	}
	sum := w.TechnicalSkills + w.Experience + w.Domain + w.KeywordCoverage
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("match weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// MaxSuggestions caps the suggestion list on a MatchResult
const MaxSuggestions = 5

// Scorer computes MatchResults. It is safe for concurrent use.
type Scorer struct {
	matcher *skills.Matcher
	ranker  *ranking.Ranker
	weights Weights
	now     func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithClock overrides the clock used for "present" end dates and CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScorer creates a Scorer
func NewScorer(matcher *skills.Matcher, ranker *ranking.Ranker, weights Weights, opts ...Option) (*Scorer, error) {
	if matcher == nil {
		return nil, fmt.Errorf("skill matcher is required")
	}
	if ranker == nil {
		return nil, fmt.Errorf("achievement ranker is required")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{matcher: matcher, ranker: ranker, weights: weights, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewDefaultScorer builds a Scorer on the embedded taxonomy with default weights
func NewDefaultScorer(opts ...Option) (*Scorer, error) {
	m, err := skills.NewDefaultMatcher()
	if err != nil {
		return nil, err
	}
	r, err := ranking.NewRanker(m, ranking.DefaultWeights())
	if err != nil {
		return nil, err
	}
	return NewScorer(m, r, DefaultWeights(), opts...)
}

// Matcher returns the scorer's skill matcher
func (s *Scorer) Matcher() *skills.Matcher {
	return s.matcher
}

// Ranker returns the scorer's achievement ranker
func (s *Scorer) Ranker() *ranking.Ranker {
	return s.ranker
}

// Analyze scores profile against job. Both inputs are validated before any
// scoring happens. MatchID is left empty for the caller to assign.
func (s *Scorer) Analyze(profile *types.UserProfile, job *types.JobDescription) (*types.MatchResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	req := job.Requirements

	matchedRequired, missingRequired := s.matcher.MatchSkills(profile.Skills, req.RequiredSkills)
	matchedPreferred, missingPreferred := s.matcher.MatchPreferredSkills(profile.Skills, req.PreferredSkills)

	techScore := s.matcher.CalculateRequiredSkillsMatch(profile.Skills, req.RequiredSkills)
	years := TotalYears(profile.Experiences, now)
	expScore := experienceScore(years, req.RequiredExperienceYears)
	domScore, missingDomain := domainScore(profile, job.Keywords.Domain)
	kwScore, missingKeywords := keywordScore(profile, job.Keywords.All())

	total := s.weights.TechnicalSkills*techScore +
		s.weights.Experience*expScore +
		s.weights.Domain*domScore +
		s.weights.KeywordCoverage*kwScore
	overall := int(math.Round(min(max(total, 0), 100)))

	breakdown := types.MatchBreakdown{
		TechnicalSkills: round1(techScore),
		Experience:      round1(expScore),
		Domain:          round1(domScore),
		KeywordCoverage: round1(kwScore),
		TotalScore:      overall,
	}

	missingKeywords = s.withoutSkills(missingKeywords, missingRequired, missingPreferred)
	gaps := buildGaps(missingRequired, missingPreferred, missingDomain, missingKeywords, years, req.RequiredExperienceYears)

	return &types.MatchResult{
		ProfileID:              profile.ProfileID,
		JobID:                  job.JobID,
		OverallScore:           overall,
		Breakdown:              breakdown,
		MatchedSkills:          append(matchedRequired, matchedPreferred...),
		MissingRequiredSkills:  missingRequired,
		MissingPreferredSkills: missingPreferred,
		JobKeywords:            job.Keywords.All(),
		Gaps:                   gaps,
		RankedAchievements:     s.ranker.RankProfile(profile, job),
		Suggestions:            buildSuggestions(breakdown, missingRequired, missingPreferred, missingDomain, missingKeywords),
		CreatedAt:              now.UTC(),
	}, nil
}

// withoutSkills drops keywords that are already reported as missing skills
func (s *Scorer) withoutSkills(keywords []string, skillLists ...[]string) []string {
	reported := make(map[string]bool)
	for _, list := range skillLists {
		for _, sk := range list {
			reported[s.matcher.Canonical(sk)] = true
		}
	}
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !reported[s.matcher.Canonical(kw)] {
			out = append(out, kw)
		}
	}
	return out
}

// domainScore compares declared domain expertise and experience descriptions
// with the job's domain keywords. A job without domain keywords scores 100.
func domainScore(profile *types.UserProfile, domainKeywords []string) (float64, []string) {
	keywords := nonEmpty(domainKeywords)
	if len(keywords) == 0 {
		return 100.0, nil
	}

	tags := make([][]string, 0, len(profile.DomainExpertise))
	for _, d := range profile.DomainExpertise {
		if tokens := skills.Tokenize(d); len(tokens) > 0 {
			tags = append(tags, tokens)
		}
	}
	var descriptions [][]string
	for _, exp := range profile.Experiences {
		if exp.Description != "" {
			descriptions = append(descriptions, skills.Tokenize(exp.Description))
		}
	}

	var missing []string
	matched := 0
	for _, kw := range keywords {
		if domainCovered(skills.Tokenize(kw), tags, descriptions) {
			matched++
		} else {
			missing = append(missing, kw)
		}
	}
	return float64(matched) / float64(len(keywords)) * 100.0, missing
}

// domainCovered matches whole words only: a tag covers a keyword when either
// phrase contains the other, and a description covers it when it contains the
// keyword phrase.
func domainCovered(keyword []string, tags, descriptions [][]string) bool {
	if len(keyword) == 0 {
		return false
	}
	for _, tag := range tags {
		if skills.ContainsPhrase(tag, keyword) || skills.ContainsPhrase(keyword, tag) {
			return true
		}
	}
	for _, d := range descriptions {
		if skills.ContainsPhrase(d, keyword) {
			return true
		}
	}
	return false
}

// keywordScore returns the percentage of job keywords found anywhere in the
// profile's summary, achievements, skill names or titles.
func keywordScore(profile *types.UserProfile, keywords []string) (float64, []string) {
	keywords = nonEmpty(keywords)
	if len(keywords) == 0 {
		return 100.0, nil
	}

	tokens := skills.Tokenize(profileText(profile))
	var missing []string
	found := 0
	for _, kw := range keywords {
		if skills.ContainsTerm(tokens, kw) {
			found++
		} else {
			missing = append(missing, kw)
		}
	}
	return float64(found) / float64(len(keywords)) * 100.0, missing
}

// profileText flattens the searchable parts of a profile
func profileText(profile *types.UserProfile) string {
	var sb strings.Builder
	sb.WriteString(profile.Summary)
	for _, exp := range profile.Experiences {
		sb.WriteString("\n")
		sb.WriteString(exp.Title)
		for _, a := range exp.Achievements {
			sb.WriteString("\n")
			sb.WriteString(a.Text)
		}
	}
	for _, sk := range profile.Skills {
		sb.WriteString("\n")
		sb.WriteString(sk.Name)
	}
	return sb.String()
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
