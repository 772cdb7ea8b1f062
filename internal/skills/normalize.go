// Package skills provides skill name normalization and matching between candidate
// profiles and job requirements.
package skills

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	// extensionPattern strips file-extension style suffixes such as "React.js"
	extensionPattern = regexp.MustCompile(`\.(js|css|py|rb|java|ts)$`)
	// versionPattern matches a trailing version such as "3", "3.11" or " v18"
	versionPattern = regexp.MustCompile(`\s*v?\d+(\.\d+)*$`)
)

// Normalize maps a skill name to the form used for comparison. It lowercases,
// trims, collapses inner whitespace and strips a trailing version and a
// file-extension suffix. "Python3", "python 3.11" and " PYTHON " all become "python".
func Normalize(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	normalized = stripVersion(normalized)
	normalized = extensionPattern.ReplaceAllString(normalized, "")
	return strings.TrimSpace(normalized)
}

// stripVersion removes a trailing version only when what remains is a word of
// at least three characters, so names like "ec2", "s3" and "es6" survive.
func stripVersion(s string) string {
	loc := versionPattern.FindStringIndex(s)
	if loc == nil || loc[0] == 0 {
		return s
	}
	base := strings.TrimSpace(s[:loc[0]])
	runes := []rune(base)
	if len(runes) < 3 || !unicode.IsLetter(runes[len(runes)-1]) {
		return s
	}
	return base
}

// Tokenize splits free text into normalized tokens suitable for phrase lookup.
// Separators are whitespace and punctuation other than the characters that are
// part of common skill names ("+", "#", "." inside a word).
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '+', '#', '.', '%', '$':
			return false
		}
		return true
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		if n := Normalize(f); n != "" {
			tokens = append(tokens, n)
		}
	}
	return tokens
}

// ContainsPhrase reports whether phrase occurs in tokens as a contiguous run
func ContainsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ContainsTerm reports whether term appears in the tokenized text
func ContainsTerm(tokens []string, term string) bool {
	return ContainsPhrase(tokens, Tokenize(term))
}
