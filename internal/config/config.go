// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/customization"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_SERVER_PORT
const EnvPrefix = "RESUME"

// Session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config is the full application configuration. Every field has a default.
type Config struct {
	Matcher       MatcherConfig                  `mapstructure:"matcher"`
	Ranking       ranking.Weights                `mapstructure:"ranking"`
	Scoring       matching.Weights               `mapstructure:"scoring"`
	Customization types.CustomizationPreferences `mapstructure:"customization"`
	Session       SessionConfig                  `mapstructure:"session"`
	LLM           LLMConfig                      `mapstructure:"llm"`
	Database      DatabaseConfig                 `mapstructure:"database"`
	Server        ServerConfig                   `mapstructure:"server"`
	Log           LogConfig                      `mapstructure:"log"`
}

// MatcherConfig tunes skill matching
type MatcherConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
	// TaxonomyFile replaces the embedded synonym and hierarchy table
	TaxonomyFile string `mapstructure:"taxonomy_file"`
}

// SessionConfig selects and tunes the session store
type SessionConfig struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	Namespace       string        `mapstructure:"namespace"`
}

// LLMConfig controls the optional Gemini-backed extraction and summaries
type LLMConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	MaxRetries     int           `mapstructure:"max_retries"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig points at PostgreSQL. An empty URL disables persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            int                `mapstructure:"port"`
	ShutdownTimeout time.Duration      `mapstructure:"shutdown_timeout"`
	RateLimit       ratelimit.Settings `mapstructure:"rate_limit"`
}

// LogConfig configures zap output
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("matcher.fuzzy_threshold", 85.0)
	v.SetDefault("matcher.taxonomy_file", "")

	rw := ranking.DefaultWeights()
	v.SetDefault("ranking.keyword_overlap", rw.KeywordOverlap)
	v.SetDefault("ranking.technology_match", rw.TechnologyMatch)
	v.SetDefault("ranking.metrics", rw.Metrics)
	v.SetDefault("ranking.residual", rw.Residual)

	sw := matching.DefaultWeights()
	v.SetDefault("scoring.technical_skills", sw.TechnicalSkills)
	v.SetDefault("scoring.experience", sw.Experience)
	v.SetDefault("scoring.domain", sw.Domain)
	v.SetDefault("scoring.keyword_coverage", sw.KeywordCoverage)

	prefs := types.DefaultCustomizationPreferences()
	v.SetDefault("customization.achievements_per_role", prefs.AchievementsPerRole)
	v.SetDefault("customization.template", prefs.Template)
	v.SetDefault("customization.include_summary", prefs.IncludeSummary)

	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.cleanup_interval", 5*time.Minute)
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.namespace", "resume:")

	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.initial_backoff", time.Second)
	v.SetDefault("llm.max_backoff", 8*time.Second)
	v.SetDefault("llm.cache_ttl", 24*time.Hour)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	rl := ratelimit.DefaultSettings()
	v.SetDefault("server.rate_limit.enabled", rl.Enabled)
	v.SetDefault("server.rate_limit.limit", rl.Limit)
	v.SetDefault("server.rate_limit.window", rl.Window)
	v.SetDefault("server.rate_limit.cleanup_interval", rl.CleanupInterval)
	v.SetDefault("server.rate_limit.allow", []string{})
	v.SetDefault("server.rate_limit.deny", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// NewViper returns a viper instance with defaults and environment bindings
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional names used by the rest of the tooling
	_ = v.BindEnv("llm.api_key", "RESUME_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database.url", "RESUME_DATABASE_URL", "DATABASE_URL")
	return v
}

// Load reads configuration from path (optional), the environment and
// defaults, in increasing order of precedence: defaults, file, environment.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.Matcher.FuzzyThreshold < 0 || c.Matcher.FuzzyThreshold > 100 {
		return fmt.Errorf("config error: 'matcher.fuzzy_threshold' must be between 0 and 100")
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := customization.ResolvePreferences(c.Customization); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("config error: 'session.redis_addr' is required for the redis backend")
		}
	default:
		return fmt.Errorf("config error: unknown session backend %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config error: 'session.ttl' must be positive")
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("config error: 'session.cleanup_interval' must be positive")
	}

	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("config error: 'llm.max_retries' must be non-negative")
	}
	if c.LLM.InitialBackoff <= 0 || c.LLM.MaxBackoff < c.LLM.InitialBackoff {
		return fmt.Errorf("config error: 'llm.initial_backoff' must be positive and not exceed 'llm.max_backoff'")
	}
	if c.LLM.CacheTTL < 0 {
		return fmt.Errorf("config error: 'llm.cache_ttl' must be non-negative")
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return fmt.Errorf("config error: 'llm.api_key' (or GEMINI_API_KEY) is required when llm is enabled")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: 'server.shutdown_timeout' must be positive")
	}
	if rl := c.Server.RateLimit; rl.Enabled && (rl.Limit <= 0 || rl.Window <= 0) {
		return fmt.Errorf("config error: 'server.rate_limit.limit' and 'server.rate_limit.window' must be positive when rate limiting is enabled")
	}
	return nil
}
