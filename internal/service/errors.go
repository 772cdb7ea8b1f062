package service

import (
	"errors"

	"github.com/jonathan/resume-matcher/internal/rendering"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/selection"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
)

// ErrNotFound is returned when a profile, job, match or customization id is
// unknown to both the session store and the repository
var ErrNotFound = errors.New("not found")

// InputError reports a malformed request value
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Kind classifies an error for callers
type Kind string

// Error kinds
const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindConfiguration Kind = "configuration"
	KindTruthfulness  Kind = "truthfulness"
	KindDataLoss      Kind = "data_loss"
	KindUnavailable   Kind = "unavailable"
	KindInternal      Kind = "internal"
)

// Description is a user-facing explanation of an error
type Description struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Describe classifies err and suggests how to fix it
func Describe(err error) Description {
	if err == nil {
		return Description{}
	}
	d := Description{Kind: KindInternal, Message: err.Error()}

	var (
		validationErr *types.ValidationError
		schemaErr     *schemas.ValidationError
		schemaLoad    *schemas.SchemaLoadError
		inputErr      *InputError
		configErr     *selection.ConfigError
		truthErr      *validation.TruthfulnessError
		dataLossErr   *validation.DataLossError
		missingErr    *rendering.MissingContentError
		templateErr   *rendering.TemplateError
		formatErr     *rendering.FormatError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		d.Kind = KindNotFound
		d.Suggestion = "Load the profile and job first, or check the id; session entries expire after the configured TTL."
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &schemaLoad):
		d.Kind = KindInvalidInput
		d.Suggestion = "Fix the listed fields in the input document and load it again."
	case errors.As(err, &configErr):
		d.Kind = KindConfiguration
		d.Suggestion = "Use non-negative counts and one of the templates modern, classic or ats."
	case errors.As(err, &inputErr), errors.As(err, &templateErr), errors.As(err, &formatErr):
		d.Kind = KindInvalidInput
		d.Suggestion = "Check the request values against the documented options."
	case errors.As(err, &truthErr), errors.As(err, &missingErr):
		d.Kind = KindTruthfulness
		d.Suggestion = "The output no longer matches the source profile verbatim; this is a bug, please report it with the input files."
	case errors.As(err, &dataLossErr):
		d.Kind = KindDataLoss
		d.Suggestion = "The customized resume lost data from its inputs; re-run the analysis and customization."
	case errors.Is(err, ErrPersistenceDisabled):
		d.Kind = KindUnavailable
		d.Suggestion = "Set database.url (or DATABASE_URL) to enable customization history."
	}
	return d
}
