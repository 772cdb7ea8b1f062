package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxSummaryAchievements is how many ranked achievements the prompt quotes
const maxSummaryAchievements = 3

// ErrEmptySummary is returned when the model produces no summary text
var ErrEmptySummary = errors.New("model returned an empty summary")

// SummaryGenerator drafts a job-targeted professional summary
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, profile *types.UserProfile, job *types.JobDescription, match *types.MatchResult) (string, error)
}

// LLMSummaryGenerator drafts summaries with a language model. The prompt
// carries only facts from the profile and the match result.
type LLMSummaryGenerator struct {
	remote   *remote
	template string
}

// NewLLMSummaryGenerator creates a generator over client
func NewLLMSummaryGenerator(client llm.Client, opts RemoteOptions) (*LLMSummaryGenerator, error) {
	r, err := newRemote(client, opts)
	if err != nil {
		return nil, err
	}
	template, err := prompts.Get(prompts.SummaryFile, prompts.TailoredSummaryKey)
	if err != nil {
		return nil, err
	}
	return &LLMSummaryGenerator{remote: r, template: template}, nil
}

// GenerateSummary implements SummaryGenerator
func (g *LLMSummaryGenerator) GenerateSummary(ctx context.Context, profile *types.UserProfile, job *types.JobDescription, match *types.MatchResult) (string, error) {
	prompt := g.prompt(profile, job, match)
	key := cacheKey(llm.TierStandard, prompt)
	if text, ok := g.remote.cached(ctx, key); ok {
		if summary := cleanSummary(text); summary != "" {
			return summary, nil
		}
	}

	text, err := g.remote.generate(ctx, "summary", prompt, llm.TierStandard, false)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	summary := cleanSummary(text)
	if summary == "" {
		return "", ErrEmptySummary
	}
	g.remote.remember(ctx, key, summary)
	return summary, nil
}

func (g *LLMSummaryGenerator) prompt(profile *types.UserProfile, job *types.JobDescription, match *types.MatchResult) string {
	var matched []string
	var achievements []string
	if match != nil {
		for _, sm := range match.MatchedSkills {
			if sm.Matched && sm.UserSkill != "" {
				matched = append(matched, sm.UserSkill)
			}
		}
		for i, ra := range match.RankedAchievements {
			if i == maxSummaryAchievements {
				break
			}
			achievements = append(achievements, "- "+ra.Achievement.Text)
		}
	}
	if len(matched) == 0 {
		matched = []string{"none listed"}
	}
	if len(achievements) == 0 {
		achievements = []string{"- none listed"}
	}

	return prompts.Format(g.template, map[string]string{
		"Name":          profile.Name,
		"Title":         job.Title,
		"Company":       job.Company,
		"Summary":       profile.Summary,
		"MatchedSkills": strings.Join(matched, ", "),
		"Achievements":  strings.Join(achievements, "\n"),
	})
}

// cleanSummary collapses whitespace and strips wrapping quotes
func cleanSummary(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.Trim(text, "\"'`")
	return strings.TrimSpace(text)
}
