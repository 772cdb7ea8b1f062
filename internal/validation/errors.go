// Package validation checks that a customized resume only contains content
// taken verbatim from the source profile.
package validation

import "fmt"

// Truthfulness violation kinds
const (
	KindAchievement = "achievement"
	KindExperience  = "experience"
	KindSkill       = "skill"
)

// TruthfulnessError reports output content that does not exist in the source
// profile exactly as written.
type TruthfulnessError struct {
	Kind    string
	Item    string
	Company string
	Title   string
	Reason  string
}

func (e *TruthfulnessError) Error() string {
	if e.Company != "" || e.Title != "" {
		return fmt.Sprintf("truthfulness violation: %s %q (%s at %s): %s", e.Kind, truncate(e.Item, 100), e.Title, e.Company, e.Reason)
	}
	return fmt.Sprintf("truthfulness violation: %s %q: %s", e.Kind, truncate(e.Item, 100), e.Reason)
}

// DataLossError reports a customized resume that no longer lines up with its
// inputs.
type DataLossError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *DataLossError) Error() string {
	return fmt.Sprintf("data loss detected: %s mismatch (expected %s, got %s)", e.Field, e.Expected, e.Actual)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
