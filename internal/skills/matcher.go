package skills

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultFuzzyThreshold is the minimum similarity ratio (0-100) for a fuzzy match
const DefaultFuzzyThreshold = 85.0

// Matcher decides whether profile skills satisfy job skills. A Matcher is
// immutable after construction and safe for concurrent use.
type Matcher struct {
	idx            *index
	fuzzyThreshold float64
}

// Option configures a Matcher
type Option func(*Matcher)

// WithFuzzyThreshold overrides the fuzzy similarity threshold
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// NewMatcher builds a Matcher from a taxonomy. A nil taxonomy disables synonym
// and hierarchy matching.
func NewMatcher(t *Taxonomy, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		idx:            newIndex(t),
		fuzzyThreshold: DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fuzzyThreshold < 0 || m.fuzzyThreshold > 100 {
		return nil, fmt.Errorf("fuzzy threshold must be within [0, 100], got %.1f", m.fuzzyThreshold)
	}
	return m, nil
}

// NewDefaultMatcher builds a Matcher from the embedded taxonomy
func NewDefaultMatcher(opts ...Option) (*Matcher, error) {
	t, err := DefaultTaxonomy()
	if err != nil {
		return nil, err
	}
	return NewMatcher(t, opts...)
}

// Vocabulary returns the taxonomy skills in file order
func (m *Matcher) Vocabulary() []Term {
	return m.idx.terms()
}

// FuzzyThreshold returns the configured fuzzy threshold
func (m *Matcher) FuzzyThreshold() float64 {
	return m.fuzzyThreshold
}

// Canonical returns the canonical name for a skill
func (m *Matcher) Canonical(name string) string {
	return m.idx.resolve(Normalize(name))
}

// Category returns the taxonomy category of a skill, or "" when unknown
func (m *Matcher) Category(name string) string {
	return m.idx.category[m.Canonical(name)]
}

// MatchSkill reports whether userSkill satisfies jobSkill and how. Rules are
// tried in order and the first success wins: exact, synonym, hierarchy, fuzzy.
func (m *Matcher) MatchSkill(userSkill, jobSkill string) (types.MatchType, bool) {
	user := Normalize(userSkill)
	job := Normalize(jobSkill)
	if user == "" || job == "" {
		return "", false
	}

	if user == job {
		return types.MatchExact, true
	}

	userCanon := m.idx.resolve(user)
	jobCanon := m.idx.resolve(job)
	if userCanon == jobCanon {
		return types.MatchSynonym, true
	}

	// a specific skill implies its parents, never the other way around
	if m.idx.isAncestor(userCanon, jobCanon) {
		return types.MatchHierarchy, true
	}

	// two distinct known skills are never typos of each other
	if m.idx.known(user) && m.idx.known(job) {
		return "", false
	}
	if Similarity(user, job) >= m.fuzzyThreshold {
		return types.MatchFuzzy, true
	}
	return "", false
}

// MatchSkills matches every job skill against the profile. For each job skill
// the strongest match type across the profile wins; among equally strong
// matches the earliest profile skill is reported. Empty names are skipped.
func (m *Matcher) MatchSkills(userSkills []types.Skill, jobSkills []string) ([]types.SkillMatch, []string) {
	return m.matchSkills(userSkills, jobSkills, types.SkillCategoryRequired)
}

// MatchPreferredSkills is MatchSkills for preferred skills
func (m *Matcher) MatchPreferredSkills(userSkills []types.Skill, jobSkills []string) ([]types.SkillMatch, []string) {
	return m.matchSkills(userSkills, jobSkills, types.SkillCategoryPreferred)
}

func (m *Matcher) matchSkills(userSkills []types.Skill, jobSkills []string, category string) ([]types.SkillMatch, []string) {
	matched := make([]types.SkillMatch, 0, len(jobSkills))
	missing := make([]string, 0)

	for _, jobSkill := range jobSkills {
		if strings.TrimSpace(jobSkill) == "" {
			continue
		}

		var best *types.Skill
		var bestType types.MatchType
		for i := range userSkills {
			us := &userSkills[i]
			if strings.TrimSpace(us.Name) == "" {
				continue
			}
			mt, ok := m.MatchSkill(us.Name, jobSkill)
			if !ok {
				continue
			}
			if best == nil || mt.Priority() < bestType.Priority() {
				best = us
				bestType = mt
			}
			if bestType == types.MatchExact {
				break
			}
		}

		if best == nil {
			missing = append(missing, jobSkill)
			continue
		}
		matched = append(matched, types.SkillMatch{
			Skill:           jobSkill,
			Matched:         true,
			Category:        category,
			MatchType:       bestType,
			UserSkill:       best.Name,
			UserProficiency: best.Proficiency,
		})
	}

	return matched, missing
}

// CalculateRequiredSkillsMatch returns the percentage (0-100) of job skills the
// profile satisfies. An empty job skill list is vacuously satisfied.
func (m *Matcher) CalculateRequiredSkillsMatch(userSkills []types.Skill, jobSkills []string) float64 {
	total := 0
	for _, s := range jobSkills {
		if strings.TrimSpace(s) != "" {
			total++
		}
	}
	if total == 0 {
		return 100.0
	}
	matched, _ := m.MatchSkills(userSkills, jobSkills)
	return float64(len(matched)) / float64(total) * 100.0
}

// MissingSkills holds unmatched job skills by category
type MissingSkills struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

// IdentifyMissingSkills returns required and preferred job skills the profile lacks
func (m *Matcher) IdentifyMissingSkills(userSkills []types.Skill, required, preferred []string) MissingSkills {
	_, missingRequired := m.MatchSkills(userSkills, required)
	_, missingPreferred := m.MatchPreferredSkills(userSkills, preferred)
	return MissingSkills{Required: missingRequired, Preferred: missingPreferred}
}

// MentionedIn reports whether a skill, or any synonym of it, occurs in the
// tokenized text.
func (m *Matcher) MentionedIn(tokens []string, skill string) bool {
	for _, form := range m.idx.surfaceForms(m.Canonical(skill)) {
		if ContainsTerm(tokens, form) {
			return true
		}
	}
	return ContainsTerm(tokens, skill)
}

// Similarity returns an edit-distance ratio between two strings on a 0-100 scale
func Similarity(a, b string) float64 {
	if a == b {
		return 100.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 100.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (1.0 - float64(dist)/float64(maxLen)) * 100.0
}
