package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 85.0, cfg.Matcher.FuzzyThreshold)
	assert.InDelta(t, 0.40, cfg.Ranking.KeywordOverlap, 1e-9)
	assert.InDelta(t, 0.25, cfg.Scoring.Experience, 1e-9)
	assert.Equal(t, 3, cfg.Customization.AchievementsPerRole)
	assert.Equal(t, "modern", cfg.Customization.Template)
	assert.True(t, cfg.Customization.IncludeSummary)
	assert.Nil(t, cfg.Customization.MaxSkills)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	assert.Equal(t, 600, cfg.Server.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
matcher:
  fuzzy_threshold: 90
scoring:
  technical_skills: 0.5
  experience: 0.2
  domain: 0.2
  keyword_coverage: 0.1
customization:
  achievements_per_role: 2
  max_skills: 10
  template: ats
session:
  ttl: 30m
server:
  port: 9090
  rate_limit:
    limit: 20
    allow: [127.0.0.1]
`
	path := filepath.Join(t.TempDir(), "resume.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Matcher.FuzzyThreshold)
	assert.InDelta(t, 0.5, cfg.Scoring.TechnicalSkills, 1e-9)
	assert.Equal(t, 2, cfg.Customization.AchievementsPerRole)
	require.NotNil(t, cfg.Customization.MaxSkills)
	assert.Equal(t, 10, *cfg.Customization.MaxSkills)
	assert.Equal(t, "ats", cfg.Customization.Template)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.RateLimit.Limit)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.RateLimit.Allow)
	// untouched sections keep defaults
	assert.InDelta(t, 0.30, cfg.Ranking.TechnologyMatch, 1e-9)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RESUME_SERVER_PORT", "7070")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("RESUME_LLM_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/path/resume.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  domain: 0.9\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1.0")
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("")
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"threshold range", func(c *Config) { c.Matcher.FuzzyThreshold = 120 }, "fuzzy_threshold"},
		{"ranking weights", func(c *Config) { c.Ranking.Residual = 0.5 }, "ranking weights"},
		{"negative achievements", func(c *Config) { c.Customization.AchievementsPerRole = -1 }, "achievements_per_role"},
		{"unknown template", func(c *Config) { c.Customization.Template = "fancy" }, "template"},
		{"unknown backend", func(c *Config) { c.Session.Backend = "etcd" }, "unknown session backend"},
		{"redis without addr", func(c *Config) { c.Session.Backend = SessionBackendRedis; c.Session.RedisAddr = "" }, "redis_addr"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl"},
		{"negative retries", func(c *Config) { c.LLM.MaxRetries = -1 }, "max_retries"},
		{"backoff order", func(c *Config) { c.LLM.MaxBackoff = time.Millisecond }, "initial_backoff"},
		{"llm without key", func(c *Config) { c.LLM.Enabled = true; c.LLM.APIKey = "" }, "api_key"},
		{"port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"rate limit", func(c *Config) { c.Server.RateLimit.Limit = 0 }, "rate_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	values, err := ParseKeyValues([]string{"max-skills=8", " Template = ats"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"max_skills": "8", "template": "ats"}, values)

	_, err = ParseKeyValues([]string{"novalue"})
	assert.Error(t, err)
}

func TestDecodePreferences(t *testing.T) {
	base := types.DefaultCustomizationPreferences()

	prefs, err := DecodePreferences(base, map[string]string{
		"achievements_per_role": "2",
		"max_skills":            "8",
		"include_summary":       "false",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, prefs.AchievementsPerRole)
	require.NotNil(t, prefs.MaxSkills)
	assert.Equal(t, 8, *prefs.MaxSkills)
	assert.False(t, prefs.IncludeSummary)
	assert.Equal(t, "modern", prefs.Template)

	_, err = DecodePreferences(base, map[string]string{"colour": "blue"})
	assert.Error(t, err)

	_, err = DecodePreferences(base, map[string]string{"max_skills": "many"})
	assert.Error(t, err)

	same, err := DecodePreferences(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, same)
}
