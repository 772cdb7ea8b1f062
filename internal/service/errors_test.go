package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/resume-matcher/internal/rendering"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/selection"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", pkgerrors.Wrap(ErrNotFound, "profile p-1"), KindNotFound},
		{"struct validation", &types.ValidationError{Subject: "profile"}, KindInvalidInput},
		{"schema", pkgerrors.Wrap(&schemas.ValidationError{Schema: "job"}, "load job"), KindInvalidInput},
		{"input", &InputError{Message: "bad"}, KindInvalidInput},
		{"template", &rendering.TemplateError{Template: "fancy", Op: "load"}, KindInvalidInput},
		{"format", &rendering.FormatError{Name: "pdf"}, KindInvalidInput},
		{"config", fmt.Errorf("customize: %w", &selection.ConfigError{Field: "top_n", Message: "must not be negative"}), KindConfiguration},
		{"truthfulness", &validation.TruthfulnessError{Kind: validation.KindSkill, Item: "Rust"}, KindTruthfulness},
		{"rendered content", &rendering.MissingContentError{Format: rendering.FormatLaTeX}, KindTruthfulness},
		{"data loss", &validation.DataLossError{Field: "profile_id"}, KindDataLoss},
		{"persistence", ErrPersistenceDisabled, KindUnavailable},
		{"other", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Describe(tt.err)
			assert.Equal(t, tt.want, d.Kind)
			assert.Equal(t, tt.err.Error(), d.Message)
			if tt.want != KindInternal {
				assert.NotEmpty(t, d.Suggestion)
			}
		})
	}

	assert.Equal(t, Description{}, Describe(nil))
}
