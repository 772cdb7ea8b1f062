// Package extraction supplies the categorized keyword sets of a job posting
// and drafts tailored profile summaries. A remote model implementation sits
// behind the same interfaces as the deterministic local one.
package extraction

import (
	"context"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// KeywordExtractor returns the technical, domain and soft keywords of a posting
type KeywordExtractor interface {
	Extract(ctx context.Context, job *types.JobDescription) (types.JobKeywords, error)
}

// Keyword weights used by the local extractor
const (
	WeightRequired  = 1.0
	WeightStack     = 0.8
	WeightPreferred = 0.7
	WeightDomain    = 0.6
	WeightMentioned = 0.5
	WeightSoft      = 0.4
)

// Enrich returns job unchanged when it already carries keywords, and
// otherwise a copy with extracted keywords filled in.
func Enrich(ctx context.Context, extractor KeywordExtractor, job *types.JobDescription) (*types.JobDescription, error) {
	if !job.Keywords.IsEmpty() {
		return job, nil
	}
	keywords, err := extractor.Extract(ctx, job)
	if err != nil {
		return nil, err
	}
	enriched := *job
	enriched.Keywords = keywords
	return &enriched, nil
}

// keywordSet accumulates keywords in first-seen order, deduplicated by key
type keywordSet struct {
	index   map[string]int
	words   []string
	weights []float64
}

func newKeywordSet() *keywordSet {
	return &keywordSet{index: make(map[string]int)}
}

// add records word under key. A later add of the same key only raises its weight.
func (s *keywordSet) add(key, word string, weight float64) {
	word = strings.TrimSpace(word)
	if key == "" || word == "" {
		return
	}
	if i, ok := s.index[key]; ok {
		s.weights[i] = max(s.weights[i], weight)
		return
	}
	s.index[key] = len(s.words)
	s.words = append(s.words, word)
	s.weights = append(s.weights, weight)
}

func (s *keywordSet) has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// weightMap returns lowercased keyword to weight
func (s *keywordSet) weightMap(into map[string]float64) {
	for i, w := range s.words {
		into[strings.ToLower(w)] = s.weights[i]
	}
}
