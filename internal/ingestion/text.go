// Package ingestion loads candidate profiles and job descriptions from
// JSON or markdown documents, validates them and normalizes their free text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace   = regexp.MustCompile(`\s+`)
	excessBlanks = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullet lists and paragraph breaks intact
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := excessBlanks.ReplaceAllString(strings.Join(cleaned, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if isBulletLine(trimmed) {
		return indent + normalizeBullet(trimmed)
	}
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// normalizeBullet rewrites typographic bullets as "- " and collapses spaces
// in the item text
func normalizeBullet(line string) string {
	marker, rest, _ := strings.Cut(line, " ")
	if marker == "•" || marker == "·" {
		marker = "-"
	}
	return marker + " " + innerSpace.ReplaceAllString(strings.TrimSpace(rest), " ")
}
