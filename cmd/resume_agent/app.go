package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/customization"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/service"
	"github.com/jonathan/resume-matcher/internal/session"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app holds everything a command needs. Close releases it in reverse order.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	svc      *service.Service
	closers  []func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.closers = append(a.closers, func() { _ = log.Sync() })

	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context) error {
	cfg := a.cfg

	scorer, err := newScorer(cfg)
	if err != nil {
		return err
	}

	sessionMetrics := session.NewMetrics(a.registry)
	store, err := session.Open(ctx, cfg.Session, sessionMetrics, a.logger)
	if err != nil {
		return err
	}
	sessions := session.NewSessions(store, cfg.Session.TTL, sessionMetrics, a.logger)

	opts := service.Options{
		Scorer:   scorer,
		Engine:   customization.NewEngine(),
		Loader:   ingestion.NewLoader(),
		Sessions: sessions,
		Defaults: cfg.Customization,
		Logger:   a.logger,
	}

	if cfg.Database.URL != "" {
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			_ = sessions.Close()
			return err
		}
		a.closers = append(a.closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			_ = sessions.Close()
			return err
		}
		opts.Repository = database
		a.logger.Info("persistence enabled")
	}

	if cfg.LLM.Enabled {
		if err := a.wireLLM(ctx, &opts, store); err != nil {
			_ = sessions.Close()
			return err
		}
	}

	svc, err := service.New(opts)
	if err != nil {
		_ = sessions.Close()
		return err
	}
	a.svc = svc
	a.closers = append(a.closers, func() { _ = svc.Close() })
	return nil
}

// wireLLM puts Gemini behind keyword extraction, with the local extractor as
// fallback, and behind summary generation. Responses are cached in the
// session store.
func (a *app) wireLLM(ctx context.Context, opts *service.Options, cache extraction.ResponseCache) error {
	cfg := a.cfg.LLM
	client, err := llm.NewGeminiClient(ctx, llm.NewConfig(cfg.Model), cfg.APIKey, a.logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() { _ = client.Close() })

	metrics := extraction.NewMetrics(a.registry)
	remote := extraction.RemoteOptions{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Timeout:        cfg.Timeout,
		Cache:          cache,
		CacheTTL:       cfg.CacheTTL,
		Metrics:        metrics,
		Logger:         a.logger,
	}

	extractor, err := extraction.NewLLMExtractor(client, remote)
	if err != nil {
		return err
	}
	local := extraction.NewLocalExtractor(opts.Scorer.Matcher())
	opts.Extractor = extraction.NewFallbackExtractor(extractor, local, metrics, a.logger)

	summaries, err := extraction.NewLLMSummaryGenerator(client, remote)
	if err != nil {
		return err
	}
	opts.Summaries = summaries
	a.logger.Info("language model enabled", zap.String("model", cfg.Model))
	return nil
}

// newScorer builds the matcher, ranker and scorer from configuration
func newScorer(cfg *config.Config) (*matching.Scorer, error) {
	var (
		taxonomy *skills.Taxonomy
		err      error
	)
	if cfg.Matcher.TaxonomyFile != "" {
		taxonomy, err = skills.LoadTaxonomy(cfg.Matcher.TaxonomyFile)
	} else {
		taxonomy, err = skills.DefaultTaxonomy()
	}
	if err != nil {
		return nil, err
	}

	matcher, err := skills.NewMatcher(taxonomy, skills.WithFuzzyThreshold(cfg.Matcher.FuzzyThreshold))
	if err != nil {
		return nil, err
	}
	ranker, err := ranking.NewRanker(matcher, cfg.Ranking)
	if err != nil {
		return nil, err
	}
	return matching.NewScorer(matcher, ranker, cfg.Scoring)
}

// Close releases resources in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
