// Package selection picks and orders the achievements and skills shown on a
// customized resume. It never edits the content it selects.
package selection

import "fmt"

// Error represents an error that occurs during selection
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ConfigError reports an invalid selection setting. It is returned before any
// scoring takes place.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid selection config: %s %s", e.Field, e.Message)
}
