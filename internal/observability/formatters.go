// Package observability provides formatted output utilities for the CLI's
// human-readable mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/customization"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/service"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten cuts s to n runes, ending with "..." when cut
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// moreLine reports how many items a list left out
func moreLine(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "  ... and %d more %s\n", total-shown, noun)
	}
}

// PrintMatch outputs the score breakdown, skill coverage and gaps of a match.
func (p *Printer) PrintMatch(match *types.MatchResult) {
	if match == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match:    %s\n", match.MatchID)
	fmt.Fprintf(&sb, "Overall:  %d/100\n\n", match.OverallScore)

	b := match.Breakdown
	fmt.Fprintf(&sb, "Technical skills   %5.1f\n", b.TechnicalSkills)
	fmt.Fprintf(&sb, "Experience         %5.1f\n", b.Experience)
	fmt.Fprintf(&sb, "Domain             %5.1f\n", b.Domain)
	fmt.Fprintf(&sb, "Keyword coverage   %5.1f\n", b.KeywordCoverage)

	var matched []string
	for _, m := range match.MatchedSkills {
		if m.Matched {
			label := m.Skill
			if m.MatchType != types.MatchExact && m.UserSkill != "" {
				label = fmt.Sprintf("%s ~ %s (%s)", m.Skill, m.UserSkill, m.MatchType)
			}
			matched = append(matched, label)
		}
	}
	if len(matched) > 0 {
		sb.WriteString("\nMatched skills:\n")
		for _, label := range matched[:min(len(matched), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  ✓ %s\n", label)
		}
		moreLine(&sb, len(matched), maxItemsToShow, "skills")
	}

	if len(match.MissingRequiredSkills) > 0 {
		fmt.Fprintf(&sb, "\nMissing required: %s\n", strings.Join(match.MissingRequiredSkills, ", "))
	}
	if len(match.MissingPreferredSkills) > 0 {
		fmt.Fprintf(&sb, "Missing preferred: %s\n", strings.Join(match.MissingPreferredSkills, ", "))
	}

	if len(match.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range match.Suggestions[:min(len(match.Suggestions), 3)] {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
		moreLine(&sb, len(match.Suggestions), 3, "suggestions")
	}

	p.printBox("MATCH ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedAchievements outputs the top achievements with scores and matched keywords.
func (p *Printer) PrintRankedAchievements(ranked []types.ScoredAchievement) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total achievements ranked: %d\n\n", len(ranked))

	count := min(len(ranked), maxItemsToShow)
	for i, a := range ranked[:count] {
		fmt.Fprintf(&sb, "#%d  %5.1f  %s\n", i+1, a.Score, a.Achievement.Text)
		if len(a.MatchedKeywords) > 0 {
			fmt.Fprintf(&sb, "    Keywords: %s\n", strings.Join(a.MatchedKeywords, ", "))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(ranked) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more achievements", len(ranked)-maxItemsToShow)
	}

	p.printBox("TOP ACHIEVEMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCustomization outputs what a customization kept and removed.
func (p *Printer) PrintCustomization(summary customization.Summary) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customization:  %s\n", summary.CustomizationID)
	fmt.Fprintf(&sb, "Match score:    %d/100\n", summary.MatchScore)
	fmt.Fprintf(&sb, "Template:       %s\n\n", summary.Template)
	fmt.Fprintf(&sb, "Experiences:    %d\n", summary.ExperiencesCount)
	fmt.Fprintf(&sb, "Achievements:   %d (removed %d)\n", summary.AchievementsCount, summary.Changes.AchievementsRemoved)
	fmt.Fprintf(&sb, "Skills:         %d (removed %d)\n", summary.SkillsCount, summary.Changes.SkillsRemoved)
	if summary.Changes.SkillsReordered {
		sb.WriteString("Skills reordered by relevance\n")
	}
	if summary.HasCustomSummary {
		sb.WriteString("Summary tailored to the job\n")
	}

	p.printBox("CUSTOMIZED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobRankings outputs jobs ordered by match score.
func (p *Printer) PrintJobRankings(rankings []service.JobRanking) {
	if len(rankings) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range rankings {
		fmt.Fprintf(&sb, "#%d  %3d  %s at %s\n", i+1, r.OverallScore, r.Title, r.Company)
		if len(r.MissingRequiredSkills) > 0 {
			fmt.Fprintf(&sb, "         missing: %s\n", strings.Join(r.MissingRequiredSkills, ", "))
		}
	}

	p.printBox("JOB RANKINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCustomizations outputs stored customizations, newest first.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCustomizations(records []db.CustomizationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No customizations found.")
		return
	}

	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "%s  %3d  %s\n", r.CreatedAt.Format("2006-01-02"), r.OverallScore, r.ID)
		fmt.Fprintf(&sb, "                 %s at %s (%s)\n", r.JobTitle, r.Company, r.Template)
	}

	p.printBox(fmt.Sprintf("CUSTOMIZATIONS (%d)", len(records)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalytics outputs aggregate customization statistics.
func (p *Printer) PrintAnalytics(a *db.Analytics) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Customizations:       %d\n", a.TotalCustomizations)
	fmt.Fprintf(&sb, "Average match score:  %.2f\n\n", a.AverageMatchScore)

	d := a.ScoreDistribution
	fmt.Fprintf(&sb, "Excellent %d  Good %d  Fair %d  Poor %d\n", d.Excellent, d.Good, d.Fair, d.Poor)

	if len(a.TopCompanies) > 0 {
		sb.WriteString("\nTop companies:\n")
		for _, c := range a.TopCompanies[:min(len(a.TopCompanies), maxItemsToShow)] {
			fmt.Fprintf(&sb, "  • %s (%d)\n", c.Company, c.Count)
		}
	}

	p.printBox("ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}
