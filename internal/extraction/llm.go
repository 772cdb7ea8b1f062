package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
	"go.uber.org/zap"
)

// ErrNoKeywords is returned when the model answers with no usable keyword
var ErrNoKeywords = errors.New("model returned no keywords")

// keywordResponse is the JSON shape requested by the job-keywords prompt
type keywordResponse struct {
	Technical  []string           `json:"technical"`
	Domain     []string           `json:"domain"`
	SoftSkills []string           `json:"soft_skills"`
	Weights    map[string]float64 `json:"weights"`
}

func (r keywordResponse) keywords() types.JobKeywords {
	kw := types.JobKeywords{
		Technical:  cleanTerms(r.Technical),
		Domain:     cleanTerms(r.Domain),
		SoftSkills: cleanTerms(r.SoftSkills),
	}
	for term, weight := range r.Weights {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if kw.Weights == nil {
			kw.Weights = make(map[string]float64)
		}
		kw.Weights[term] = min(max(weight, 0), 1)
	}
	return kw
}

// cleanTerms trims terms and drops blanks and case-insensitive duplicates
func cleanTerms(terms []string) []string {
	trimmed := slice.Map(terms, func(_ int, src string) string {
		return strings.TrimSpace(src)
	})
	seen := make(map[string]bool, len(trimmed))
	var out []string
	for _, t := range trimmed {
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// LLMExtractor asks a language model for the keywords of a posting
type LLMExtractor struct {
	remote   *remote
	template string
}

// NewLLMExtractor creates an extractor over client
func NewLLMExtractor(client llm.Client, opts RemoteOptions) (*LLMExtractor, error) {
	r, err := newRemote(client, opts)
	if err != nil {
		return nil, err
	}
	template, err := prompts.Get(prompts.ExtractionFile, prompts.JobKeywordsKey)
	if err != nil {
		return nil, err
	}
	return &LLMExtractor{remote: r, template: template}, nil
}

// Extract implements KeywordExtractor
func (e *LLMExtractor) Extract(ctx context.Context, job *types.JobDescription) (types.JobKeywords, error) {
	text := job.Text()
	if screen := validation.ScreenPosting(text); !screen.Clean() {
		e.remote.logger.Warn("instruction-like text in job posting",
			zap.String("job", job.Title),
			zap.String("phrases", screen.Summary()))
		text = validation.NeutralizePosting(text)
	}
	prompt := prompts.Format(e.template, map[string]string{
		"Title":   job.Title,
		"Company": job.Company,
		"Text":    validation.QuoteUntrusted("job posting", text),
	})
	key := cacheKey(llm.TierLite, prompt)

	if text, ok := e.remote.cached(ctx, key); ok {
		if kw, err := decodeKeywords(text); err == nil {
			return kw, nil
		}
		e.remote.logger.Warn("discarding unreadable cached keyword response", zap.String("job", job.Title))
	}

	text, err := e.remote.generate(ctx, "keywords", prompt, llm.TierLite, true)
	if err != nil {
		return types.JobKeywords{}, fmt.Errorf("keyword extraction failed: %w", err)
	}
	kw, err := decodeKeywords(text)
	if err != nil {
		return types.JobKeywords{}, fmt.Errorf("keyword extraction failed: %w", err)
	}
	e.remote.remember(ctx, key, text)
	return kw, nil
}

func decodeKeywords(text string) (types.JobKeywords, error) {
	var resp keywordResponse
	if err := llm.DecodeJSON(text, &resp); err != nil {
		return types.JobKeywords{}, err
	}
	kw := resp.keywords()
	if kw.IsEmpty() {
		return types.JobKeywords{}, ErrNoKeywords
	}
	return kw, nil
}

// FallbackExtractor tries a primary extractor and falls back to the local
// one when it fails or finds nothing.
type FallbackExtractor struct {
	primary KeywordExtractor
	local   *LocalExtractor
	metrics *Metrics
	logger  *zap.Logger
}

// NewFallbackExtractor creates a FallbackExtractor. A nil primary always uses local.
func NewFallbackExtractor(primary KeywordExtractor, local *LocalExtractor, metrics *Metrics, logger *zap.Logger) *FallbackExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackExtractor{primary: primary, local: local, metrics: metrics, logger: logger}
}

// Extract implements KeywordExtractor. It never returns an error.
func (f *FallbackExtractor) Extract(ctx context.Context, job *types.JobDescription) (types.JobKeywords, error) {
	if f.primary != nil {
		kw, err := f.primary.Extract(ctx, job)
		if err == nil && !kw.IsEmpty() {
			return kw, nil
		}
		if err == nil {
			err = ErrNoKeywords
		}
		f.metrics.fallback()
		f.logger.Warn("keyword extraction degraded to local extractor",
			zap.String("job", job.Title),
			zap.String("company", job.Company),
			zap.Error(err))
	}
	return f.local.ExtractKeywords(job), nil
}
