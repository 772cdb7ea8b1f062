// Package llm wraps the Gemini API behind a small Client interface. It backs
// the optional keyword extraction and summary generation collaborators.
package llm

// ModelTier selects a model by capability
type ModelTier string

const (
	// TierLite is used for keyword extraction
	TierLite ModelTier = "lite"
	// TierStandard is used for summary generation
	TierStandard ModelTier = "standard"
)

// DefaultTemperature keeps output stable across calls
const DefaultTemperature float32 = 0.1

// Config maps tiers to Gemini model names
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini models
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: DefaultTemperature,
	}
}

// NewConfig returns the default configuration with the standard tier
// pointed at model. An empty model keeps the default.
func NewConfig(model string) *Config {
	cfg := DefaultConfig()
	if model != "" {
		cfg.Models[TierStandard] = model
	}
	return cfg
}

// GetModel returns the model for tier, falling back to the standard tier.
// It returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	return c.Models[TierStandard]
}
