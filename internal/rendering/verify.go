package rendering

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// VerifyRendered checks that every achievement and skill of the resume
// appears verbatim in the rendered document. For LaTeX the escaped form is
// expected.
func VerifyRendered(resume *types.CustomizedResume, format Format, rendered string) error {
	expect := func(s string) string { return s }
	if format == FormatLaTeX {
		expect = EscapeLaTeX
	}

	missing := &MissingContentError{Format: format}
	for _, exp := range resume.Experiences {
		for _, a := range exp.Achievements {
			if !strings.Contains(rendered, expect(a.Text)) {
				missing.Achievements = append(missing.Achievements, a.Text)
			}
		}
	}
	for _, skill := range resume.Skills {
		if !strings.Contains(rendered, expect(skill.Name)) {
			missing.Skills = append(missing.Skills, skill.Name)
		}
	}

	if len(missing.Achievements) > 0 || len(missing.Skills) > 0 {
		return missing
	}
	return nil
}
