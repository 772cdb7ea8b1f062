package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

func buildGaps(missingRequired, missingPreferred, missingDomain, missingKeywords []string, years float64, requiredYears *float64) types.GapAnalysis {
	gaps := types.GapAnalysis{
		Critical:    make([]types.Gap, 0, len(missingRequired)),
		Recommended: make([]types.Gap, 0),
	}
	for _, sk := range missingRequired {
		gaps.Critical = append(gaps.Critical, types.Gap{
			Item:   sk,
			Kind:   types.GapRequiredSkill,
			Reason: "Required skill not found in profile",
		})
	}
	for _, sk := range missingPreferred {
		gaps.Recommended = append(gaps.Recommended, types.Gap{
			Item:   sk,
			Kind:   types.GapPreferredSkill,
			Reason: "Preferred skill not found in profile",
		})
	}
	if requiredYears != nil && *requiredYears > 0 && years < *requiredYears {
		gaps.Recommended = append(gaps.Recommended, types.Gap{
			Item:   fmt.Sprintf("%.0f years of experience", *requiredYears),
			Kind:   types.GapExperience,
			Reason: fmt.Sprintf("Profile shows %.1f years", years),
		})
	}
	for _, d := range missingDomain {
		gaps.Recommended = append(gaps.Recommended, types.Gap{
			Item:   d,
			Kind:   types.GapDomain,
			Reason: "No matching domain expertise",
		})
	}
	for _, kw := range missingKeywords {
		gaps.Recommended = append(gaps.Recommended, types.Gap{
			Item:   kw,
			Kind:   types.GapKeyword,
			Reason: "Keyword does not appear in profile",
		})
	}
	return gaps
}

// buildSuggestions produces at most MaxSuggestions improvement hints, most
// important first.
func buildSuggestions(b types.MatchBreakdown, missingRequired, missingPreferred, missingDomain, missingKeywords []string) []string {
	suggestions := make([]string, 0, MaxSuggestions)

	if len(missingRequired) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Add these required skills to your profile if you have them: %s", joinFirst(missingRequired, 5)))
	}
	if len(missingPreferred) > 0 && len(suggestions) < 3 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider highlighting preferred skills: %s", joinFirst(missingPreferred, 3)))
	}
	if b.TechnicalSkills < 60 {
		suggestions = append(suggestions, "Focus on developing the technical skills mentioned in the job description")
	}
	if b.Experience < 70 {
		suggestions = append(suggestions, "Highlight relevant project experience to demonstrate skills in practice")
	}
	if b.Domain < 60 {
		if len(missingDomain) > 0 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Emphasize any domain knowledge related to: %s", joinFirst(missingDomain, 3)))
		} else {
			suggestions = append(suggestions, "Emphasize any domain knowledge or industry experience related to this role")
		}
	}
	if b.KeywordCoverage < 60 {
		if len(missingKeywords) > 0 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Work these job keywords into your summary and achievements where accurate: %s", joinFirst(missingKeywords, 5)))
		} else {
			suggestions = append(suggestions, "Update your summary and achievements to include more keywords from the job posting")
		}
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
