package matching

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
)

// dateLayouts are the accepted experience date formats, most specific first
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"2006",
}

// presentAliases are end dates meaning the role is ongoing
var presentAliases = map[string]bool{
	types.PresentSentinel: true,
	"current":             true,
	"now":                 true,
	"ongoing":             true,
}

// ParseDate parses an experience date. Ongoing sentinels and an empty string
// resolve to now.
func ParseDate(value string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" || presentAliases[strings.ToLower(v)] {
		return now, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ExperienceYears returns the length of one experience in years. An
// experience whose start date cannot be parsed contributes nothing.
func ExperienceYears(exp types.Experience, now time.Time) float64 {
	if strings.TrimSpace(exp.StartDate) == "" {
		return 0
	}
	start, err := ParseDate(exp.StartDate, now)
	if err != nil {
		return 0
	}
	end, err := ParseDate(exp.EndDate, now)
	if err != nil || end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	return float64(months) / 12.0
}

// TotalYears sums experience durations across the profile
func TotalYears(experiences []types.Experience, now time.Time) float64 {
	total := 0.0
	for _, exp := range experiences {
		total += ExperienceYears(exp, now)
	}
	return total
}

// experienceScore compares profile years with the job's requirement. No
// requirement, or enough years, scores 100; otherwise the score is linear.
func experienceScore(years float64, required *float64) float64 {
	if required == nil || *required <= 0 {
		return 100.0
	}
	if years >= *required {
		return 100.0
	}
	return max(years / *required * 100.0, 0)
}
