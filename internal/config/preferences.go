package config

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/mitchellh/mapstructure"
)

// ParseKeyValues turns ["a=1", "b=two"] into a map. Keys are trimmed and
// lowercased; dashes become underscores.
func ParseKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid preference %q: expected key=value", pair)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// DecodePreferences overlays free-form values onto base. Strings are
// converted to the field types ("false", "8"); unknown keys are rejected.
func DecodePreferences(base types.CustomizationPreferences, values map[string]string) (types.CustomizationPreferences, error) {
	prefs := base
	if len(values) == 0 {
		return prefs, nil
	}

	input := make(map[string]interface{}, len(values))
	for k, v := range values {
		input[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &prefs,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return base, fmt.Errorf("failed to create preference decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return base, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return prefs, nil
}
