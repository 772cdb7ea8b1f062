package ratelimit

import (
	"net/http"
	"time"
)

// Settings is the configurable part of the limiter, decoded from the
// server.rate_limit config section
type Settings struct {
	Enabled         bool          `mapstructure:"enabled"`
	Limit           int           `mapstructure:"limit"`
	Window          time.Duration `mapstructure:"window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Allow           []string      `mapstructure:"allow"`
	Deny            []string      `mapstructure:"deny"`
}

// DefaultSettings allows 600 requests a minute per client outside the
// endpoint tiers
func DefaultSettings() Settings {
	return Settings{
		Enabled:         true,
		Limit:           600,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Config expands s into a limiter configuration with the default tiers
func (s Settings) Config() *Config {
	return &Config{
		Enabled:         s.Enabled,
		DefaultLimit:    s.Limit,
		DefaultWindow:   s.Window,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Allow),
		Blacklist:       toSet(s.Deny),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // defaults to Limit
}

// DefaultEndpointConfigs returns the per-endpoint tiers. Customization may
// call the summary model, so it gets the tightest budget.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/customizations", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/rankings", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		{Path: "/matches", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/jobs", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/profiles", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/customizations/", Method: http.MethodGet, Limit: 300, Window: time.Minute, Burst: 30},
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}
