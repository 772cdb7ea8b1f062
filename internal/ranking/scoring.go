// Package ranking scores resume achievements against a target job.
package ranking

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
)

// Weights for the achievement relevance components. They must sum to 1.
type Weights struct {
	KeywordOverlap  float64 `mapstructure:"keyword_overlap"`
	TechnologyMatch float64 `mapstructure:"technology_match"`
	Metrics         float64 `mapstructure:"metrics"`
	// Residual is a flat credit every achievement receives. It does not
	// discriminate between achievements.
	Residual float64 `mapstructure:"residual"`
}

// DefaultWeights returns the default 40/30/20/10 split
func DefaultWeights() Weights {
	return Weights{
		KeywordOverlap:  0.40,
		TechnologyMatch: 0.30,
		Metrics:         0.20,
		Residual:        0.10,
	}
}

// Validate checks the weights are non-negative and sum to 1
func (w Weights) Validate() error {
	components := []struct {
		name  string
		value float64
	}{
		{"keyword_overlap", w.KeywordOverlap},
		{"technology_match", w.TechnologyMatch},
		{"metrics", w.Metrics},
		{"residual", w.Residual},
	}
	for _, c := range components {
		if c.value < 0 {
			return fmt.Errorf("ranking weight %s must be non-negative, got %.2f", c.name, c.value)
		}
	}
	sum := w.KeywordOverlap + w.TechnologyMatch + w.Metrics + w.Residual
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// metricsPattern recognizes quantified results: integers, decimals, comma
// grouped numbers, percentages, money, K/M/B suffixes, multipliers and "100+".
// Digits inside a word ("K8s", "EC2") do not count.
var metricsPattern = regexp.MustCompile(`(?:\$|\b)\d+(?:,\d{3})*(?:\.\d+)?(?:\s?%|[KkMmBb]\b|x\b|\+)?`)

// HasMetrics reports whether text contains a quantified metric
func HasMetrics(text string) bool {
	return metricsPattern.MatchString(text)
}

// ExtractMetrics returns every quantified metric in text, in order of appearance
func ExtractMetrics(text string) []string {
	return metricsPattern.FindAllString(text, -1)
}

// computeKeywordOverlap returns the fraction of keywords present in the
// achievement and the keywords found.
func computeKeywordOverlap(tokens []string, keywords []string) (float64, []string) {
	if len(keywords) == 0 {
		return 0.0, nil
	}
	var found []string
	for _, kw := range keywords {
		if skills.ContainsTerm(tokens, kw) {
			found = append(found, kw)
		}
	}
	return float64(len(found)) / float64(len(keywords)), found
}

// computeTechnologyMatch returns the fraction of job skills mentioned in the
// achievement, synonyms included, and the skills found.
func computeTechnologyMatch(m *skills.Matcher, tokens []string, jobSkills []string) (float64, []string) {
	if len(jobSkills) == 0 {
		return 0.0, nil
	}
	var found []string
	for _, s := range jobSkills {
		if m.MentionedIn(tokens, s) {
			found = append(found, s)
		}
	}
	return float64(len(found)) / float64(len(jobSkills)), found
}

// generateReasons explains the score in a few short phrases
func generateReasons(keywordsFound, techFound, metrics []string) []string {
	var reasons []string
	if len(keywordsFound) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d matching keywords (%s)", len(keywordsFound), strings.Join(keywordsFound, ", ")))
	}
	if len(techFound) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d matching technologies (%s)", len(techFound), strings.Join(techFound, ", ")))
	}
	if len(metrics) > 0 {
		reasons = append(reasons, fmt.Sprintf("Contains %d metrics", len(metrics)))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "No overlap with job terms")
	}
	return reasons
}

func dedupeFold(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, item := range list {
			key := strings.ToLower(strings.TrimSpace(item))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
