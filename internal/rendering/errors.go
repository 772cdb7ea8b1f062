package rendering

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoResume is returned when Render is called without a resume
var ErrNoResume = errors.New("rendering: resume is required")

// Template operations recorded on a TemplateError
const (
	opLoad    = "load"
	opParse   = "parse"
	opExecute = "execute"
)

// TemplateError reports a template that is unknown or fails to parse or execute
type TemplateError struct {
	Template string
	Format   Format
	Op       string
	Cause    error
}

func (e *TemplateError) Error() string {
	msg := fmt.Sprintf("failed to %s template %q for %s", e.Op, e.Template, e.Format)
	if e.Op == opLoad {
		msg = fmt.Sprintf("unknown template %q for %s", e.Template, e.Format)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// FormatError reports an output format name that is not supported
type FormatError struct {
	Name string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown format %q (want markdown or latex)", e.Name)
}

// MissingContentError reports resume content absent from a rendered document
type MissingContentError struct {
	Format       Format
	Achievements []string
	Skills       []string
}

func (e *MissingContentError) Error() string {
	var parts []string
	if len(e.Achievements) > 0 {
		parts = append(parts, fmt.Sprintf("%d achievement(s) missing", len(e.Achievements)))
	}
	if len(e.Skills) > 0 {
		parts = append(parts, fmt.Sprintf("skill(s) missing: %s", strings.Join(e.Skills, ", ")))
	}
	return fmt.Sprintf("rendered %s does not reproduce the resume verbatim: %s", e.Format, strings.Join(parts, "; "))
}
