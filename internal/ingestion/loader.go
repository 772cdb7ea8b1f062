package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Loader turns raw JSON or markdown documents into validated domain values
type Loader struct {
	now   func() time.Time
	newID func() string
}

// NewLoader returns a loader using the wall clock and random UUIDs
func NewLoader() *Loader {
	return &Loader{now: time.Now, newID: uuid.NewString}
}

// LoadProfile reads and decodes a profile file. Files ending in .md or
// .markdown are parsed as markdown, anything else as JSON.
func (l *Loader) LoadProfile(path string) (*types.UserProfile, *Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	if IsMarkdown(path) {
		return l.DecodeMarkdownProfile(data, path)
	}
	return l.DecodeProfile(data, path)
}

// LoadJob reads and decodes a job description file, by extension like LoadProfile
func (l *Loader) LoadJob(path string) (*types.JobDescription, *Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	if IsMarkdown(path) {
		return l.DecodeMarkdownJob(data, path)
	}
	return l.DecodeJob(data, path)
}

// DecodeProfile validates raw profile JSON against the schema and the struct
// rules, then assigns an id if the document has none
func (l *Loader) DecodeProfile(data []byte, source string) (*types.UserProfile, *Metadata, error) {
	if err := schemas.ValidateProfile(data); err != nil {
		return nil, nil, err
	}
	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return l.finishProfile(&profile, data, source)
}

// DecodeMarkdownProfile parses a markdown profile: an H1 name followed by H2
// sections such as Contact Information, Work Experience and Skills
func (l *Loader) DecodeMarkdownProfile(data []byte, source string) (*types.UserProfile, *Metadata, error) {
	return l.finishProfile(parseMarkdownProfile(string(data)), data, source)
}

func (l *Loader) finishProfile(profile *types.UserProfile, data []byte, source string) (*types.UserProfile, *Metadata, error) {
	if err := profile.Validate(); err != nil {
		return nil, nil, err
	}

	meta := NewMetadata(KindProfile, source, data, l.now())
	if strings.TrimSpace(profile.ProfileID) == "" {
		profile.ProfileID = l.newID()
		meta.AssignedID = true
	}
	if profile.CreatedAt == nil {
		created := l.now().UTC()
		profile.CreatedAt = &created
	}
	return profile, meta, nil
}

// DecodeJob validates raw job JSON, derives raw text from raw HTML when only
// HTML is present, and assigns an id if the document has none
func (l *Loader) DecodeJob(data []byte, source string) (*types.JobDescription, *Metadata, error) {
	if err := schemas.ValidateJob(data); err != nil {
		return nil, nil, err
	}
	var job types.JobDescription
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, nil, fmt.Errorf("failed to decode job description: %w", err)
	}
	return l.finishJob(&job, data, source)
}

// DecodeMarkdownJob parses a markdown posting: an H1 "Title at Company"
// followed by H2 sections. Required and Preferred Qualifications bullets
// become the required and preferred skill lists.
func (l *Loader) DecodeMarkdownJob(data []byte, source string) (*types.JobDescription, *Metadata, error) {
	return l.finishJob(parseMarkdownJob(string(data)), data, source)
}

func (l *Loader) finishJob(job *types.JobDescription, data []byte, source string) (*types.JobDescription, *Metadata, error) {
	if err := job.Validate(); err != nil {
		return nil, nil, err
	}
	if err := normalizeJobText(job); err != nil {
		return nil, nil, err
	}

	meta := NewMetadata(KindJob, source, data, l.now())
	if strings.TrimSpace(job.JobID) == "" {
		job.JobID = l.newID()
		meta.AssignedID = true
	}
	if job.CreatedAt == nil {
		created := l.now().UTC()
		job.CreatedAt = &created
	}
	return job, meta, nil
}

func normalizeJobText(job *types.JobDescription) error {
	if job.RawText != "" {
		job.RawText = CleanText(job.RawText)
		return nil
	}
	if job.RawHTML == "" {
		return nil
	}

	text, err := HTMLToText(job.RawHTML)
	if err != nil {
		return fmt.Errorf("failed to extract job text: %w", err)
	}
	job.RawText = text
	if len(job.Responsibilities) == 0 {
		items, err := ListItems(job.RawHTML)
		if err != nil {
			return fmt.Errorf("failed to extract job text: %w", err)
		}
		job.Responsibilities = items
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
