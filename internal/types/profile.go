// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Proficiency is the self-reported level for a skill
type Proficiency string

// Proficiency levels, lowest to highest
const (
	ProficiencyBasic        Proficiency = "basic"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Rank returns the ordinal position of the proficiency (0 when unset or unknown)
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBasic:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 0
	}
}

// PresentSentinel marks an experience that has not ended
const PresentSentinel = "present"

// Skill is a single named skill from the candidate profile
type Skill struct {
	Name        string      `json:"name"`
	Category    string      `json:"category,omitempty"`
	Proficiency Proficiency `json:"proficiency,omitempty" validate:"omitempty,oneof=basic intermediate advanced expert"`
	Years       *int        `json:"years,omitempty" validate:"omitempty,gte=0"`
	Description string      `json:"description,omitempty"`
}

// Achievement is one bullet of an experience. Its text is the identity.
type Achievement struct {
	Text           string   `json:"text" validate:"required"`
	Technologies   []string `json:"technologies,omitempty"`
	Metrics        []string `json:"metrics,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Experience is one role held by the candidate
type Experience struct {
	Company      string        `json:"company" validate:"required"`
	Title        string        `json:"title" validate:"required"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date,omitempty"`
	Location     string        `json:"location,omitempty"`
	WorkMode     string        `json:"work_mode,omitempty"`
	Description  string        `json:"description,omitempty"`
	Achievements []Achievement `json:"achievements" validate:"dive"`
	Technologies []string      `json:"technologies,omitempty"`
}

// ContactInfo holds how to reach the candidate
type ContactInfo struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Education is a degree or program entry
type Education struct {
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduation_date,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Honors         []string `json:"honors,omitempty"`
}

// Certification is a professional certification
type Certification struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	Date         string `json:"date,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
}

// Project is a side or open source project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// UserProfile is the aggregate root for a candidate. It is never mutated by
// matching or customization; those stages produce copies.
type UserProfile struct {
	ProfileID       string          `json:"profile_id,omitempty"`
	Name            string          `json:"name" validate:"required"`
	Contact         ContactInfo     `json:"contact"`
	Summary         string          `json:"summary,omitempty"`
	Experiences     []Experience    `json:"experiences" validate:"required,min=1,dive"`
	Skills          []Skill         `json:"skills" validate:"required,min=1,dive"`
	Education       []Education     `json:"education,omitempty"`
	Certifications  []Certification `json:"certifications,omitempty"`
	Projects        []Project       `json:"projects,omitempty"`
	DomainExpertise []string        `json:"domain_expertise,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
}

// AllAchievements flattens achievements across experiences in profile order
func (p *UserProfile) AllAchievements() []Achievement {
	var out []Achievement
	for _, exp := range p.Experiences {
		out = append(out, exp.Achievements...)
	}
	return out
}

// AchievementCount returns the total number of achievements across experiences
func (p *UserProfile) AchievementCount() int {
	count := 0
	for _, exp := range p.Experiences {
		count += len(exp.Achievements)
	}
	return count
}
