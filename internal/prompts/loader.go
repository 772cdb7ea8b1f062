// Package prompts holds the language model prompt templates. Templates are
// JSON files of key to text, embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// Prompt files and keys
const (
	ExtractionFile = "extraction.json"
	SummaryFile    = "summary.json"

	JobKeywordsKey     = "job-keywords"
	TailoredSummaryKey = "tailored-summary"
)

//go:embed *.json
var promptFiles embed.FS

// library is file name -> prompt key -> template text
type library map[string]map[string]string

var (
	loadOnce sync.Once
	loaded   library
	loadErr  error
)

// load parses every embedded prompt file on first use
func load() (library, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parseFiles(promptFiles)
	})
	return loaded, loadErr
}

func parseFiles(fsys fs.FS) (library, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	lib := make(library, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var set map[string]string
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		lib[name] = set
	}
	return lib, nil
}

// Get returns the prompt stored under key in filename
func Get(filename, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}
	set, ok := lib[filename]
	if !ok {
		return "", fmt.Errorf("unknown prompt file %s", filename)
	}
	prompt, ok := set[key]
	if !ok || strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders. Unknown placeholders are left as is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
