package extraction

import (
	"context"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DomainVocabulary is the industry and problem-space terms the local
// extractor looks for
var DomainVocabulary = []string{
	"fintech", "payments", "banking", "lending", "trading", "insurance",
	"healthcare", "healthtech", "biotech", "e-commerce", "ecommerce", "retail",
	"marketplace", "logistics", "supply chain", "advertising", "adtech",
	"marketing", "edtech", "education", "gaming", "media", "streaming",
	"telecommunications", "cybersecurity", "real estate", "travel", "energy",
	"automotive", "government", "saas", "b2b", "b2c", "developer tools",
	"data platform", "observability", "search", "recommendation systems",
}

// SoftSkillVocabulary is the collaboration and leadership terms the local
// extractor looks for
var SoftSkillVocabulary = []string{
	"leadership", "communication", "collaboration", "mentoring", "mentorship",
	"ownership", "teamwork", "problem solving", "problem-solving",
	"stakeholder management", "cross-functional", "agile", "scrum",
	"self-starter", "attention to detail", "time management", "coaching",
	"presentation", "negotiation", "adaptability", "critical thinking",
}

// LocalExtractor finds keywords with the skill taxonomy and fixed domain
// and soft skill vocabularies. It makes no network calls and its output is a
// pure function of the posting.
type LocalExtractor struct {
	matcher    *skills.Matcher
	domain     []string
	softSkills []string
}

// NewLocalExtractor creates a LocalExtractor over matcher's taxonomy
func NewLocalExtractor(matcher *skills.Matcher) *LocalExtractor {
	return &LocalExtractor{
		matcher:    matcher,
		domain:     DomainVocabulary,
		softSkills: SoftSkillVocabulary,
	}
}

// Extract implements KeywordExtractor. It never fails.
func (e *LocalExtractor) Extract(_ context.Context, job *types.JobDescription) (types.JobKeywords, error) {
	return e.ExtractKeywords(job), nil
}

// ExtractKeywords is Extract without the context
func (e *LocalExtractor) ExtractKeywords(job *types.JobDescription) types.JobKeywords {
	tokens := skills.Tokenize(job.Text())

	technical := newKeywordSet()
	for _, s := range job.Requirements.RequiredSkills {
		technical.add(e.matcher.Canonical(s), s, WeightRequired)
	}
	for _, s := range job.TechnicalStack {
		technical.add(e.matcher.Canonical(s), s, WeightStack)
	}
	for _, s := range job.Requirements.PreferredSkills {
		technical.add(e.matcher.Canonical(s), s, WeightPreferred)
	}
	for _, term := range e.matcher.Vocabulary() {
		if technical.has(term.Canonical) {
			continue
		}
		for _, form := range term.Forms {
			if ambiguousForm(form) {
				continue
			}
			if skills.ContainsTerm(tokens, form) {
				technical.add(term.Canonical, term.Canonical, WeightMentioned)
				break
			}
		}
	}

	domain := newKeywordSet()
	for _, term := range e.domain {
		if skills.ContainsTerm(tokens, term) {
			domain.add(skills.Normalize(term), term, WeightDomain)
		}
	}

	soft := newKeywordSet()
	for _, term := range e.softSkills {
		if skills.ContainsTerm(tokens, term) {
			soft.add(softKey(term), term, WeightSoft)
		}
	}

	keywords := types.JobKeywords{
		Technical:  technical.words,
		Domain:     domain.words,
		SoftSkills: soft.words,
		Weights:    make(map[string]float64),
	}
	soft.weightMap(keywords.Weights)
	domain.weightMap(keywords.Weights)
	technical.weightMap(keywords.Weights)
	if len(keywords.Weights) == 0 {
		keywords.Weights = nil
	}
	return keywords
}

// ambiguousForm reports whether a skill alias is also an everyday word or
// too short to find reliably in prose, such as "go" or "ts".
func ambiguousForm(form string) bool {
	if len(form) > 2 {
		return false
	}
	for _, r := range form {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// softKey folds spelling variants such as "problem-solving" and "problem solving"
func softKey(term string) string {
	key := strings.ReplaceAll(skills.Normalize(term), "-", " ")
	if key == "mentorship" {
		return "mentoring"
	}
	return key
}
