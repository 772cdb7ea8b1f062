package types

import "time"

// JobRequirements lists what the posting asks for
type JobRequirements struct {
	RequiredSkills          []string `json:"required_skills" validate:"required,min=1"`
	PreferredSkills         []string `json:"preferred_skills,omitempty"`
	RequiredExperienceYears *float64 `json:"required_experience_years,omitempty" validate:"omitempty,gte=0"`
	RequiredEducation       string   `json:"required_education,omitempty"`
	OtherRequirements       []string `json:"other_requirements,omitempty"`
}

// JobKeywords is the categorized keyword set extracted from a posting
type JobKeywords struct {
	Technical  []string           `json:"technical,omitempty"`
	Domain     []string           `json:"domain,omitempty"`
	SoftSkills []string           `json:"soft_skills,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

// All returns technical, domain and soft keywords, deduplicated case-insensitively
func (k JobKeywords) All() []string {
	return dedupeFold(k.Technical, k.Domain, k.SoftSkills)
}

// TechnicalAndDomain returns the keyword set used for achievement relevance
func (k JobKeywords) TechnicalAndDomain() []string {
	return dedupeFold(k.Technical, k.Domain)
}

// IsEmpty reports whether no keyword of any category is present
func (k JobKeywords) IsEmpty() bool {
	return len(k.Technical) == 0 && len(k.Domain) == 0 && len(k.SoftSkills) == 0
}

// JobDescription is a target posting
type JobDescription struct {
	JobID              string          `json:"job_id,omitempty"`
	Title              string          `json:"title" validate:"required"`
	Company            string          `json:"company" validate:"required"`
	Location           string          `json:"location,omitempty"`
	Description        string          `json:"description,omitempty"`
	Responsibilities   []string        `json:"responsibilities,omitempty"`
	Requirements       JobRequirements `json:"requirements"`
	TechnicalStack     []string        `json:"technical_stack,omitempty"`
	Keywords           JobKeywords     `json:"keywords"`
	CompanyDescription string          `json:"company_description,omitempty"`
	RawText            string          `json:"raw_text,omitempty"`
	RawHTML            string          `json:"raw_html,omitempty"`
	CreatedAt          *time.Time      `json:"created_at,omitempty"`
}

// Text returns the posting content used for keyword extraction
func (j *JobDescription) Text() string {
	if j.RawText != "" {
		return j.RawText
	}
	parts := []string{j.Title, j.Description}
	parts = append(parts, j.Responsibilities...)
	parts = append(parts, j.Requirements.RequiredSkills...)
	parts = append(parts, j.Requirements.PreferredSkills...)
	parts = append(parts, j.Requirements.OtherRequirements...)
	parts = append(parts, j.CompanyDescription)
	return joinNonEmpty(parts, "\n")
}
