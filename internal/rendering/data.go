package rendering

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// TemplateData is passed to every template. For LaTeX every string is
// already escaped.
type TemplateData struct {
	Name           string
	ContactLine    string
	Summary        string
	Companies      []CompanySection
	SkillGroups    []SkillGroup
	Skills         []string
	Education      []types.Education
	Certifications []types.Certification
	Projects       []types.Project
}

// CompanySection represents a company with one or more consecutive roles
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection represents one experience entry
type RoleSection struct {
	Title    string
	Dates    string
	Location string
	Bullets  []string
}

// SkillGroup lists skill names under one category
type SkillGroup struct {
	Category string
	Skills   []string
}

const uncategorized = "Other"

func buildTemplateData(resume *types.CustomizedResume, format Format) *TemplateData {
	esc := func(s string) string { return s }
	if format == FormatLaTeX {
		esc = EscapeLaTeX
	}

	data := &TemplateData{
		Name:        esc(resume.Name),
		ContactLine: esc(contactLine(resume.Contact)),
		Summary:     esc(resume.Summary),
		Companies:   groupByCompany(resume.Experiences, esc),
	}

	for _, skill := range resume.Skills {
		data.Skills = append(data.Skills, esc(skill.Name))
	}
	data.SkillGroups = groupSkills(resume.Skills, esc)

	for _, edu := range resume.Education {
		data.Education = append(data.Education, types.Education{
			Degree:         esc(edu.Degree),
			Institution:    esc(edu.Institution),
			GraduationDate: esc(edu.GraduationDate),
		})
	}
	for _, cert := range resume.Certifications {
		data.Certifications = append(data.Certifications, types.Certification{
			Name:   esc(cert.Name),
			Issuer: esc(cert.Issuer),
			Date:   esc(cert.Date),
		})
	}
	for _, p := range resume.Projects {
		data.Projects = append(data.Projects, types.Project{
			Name:        esc(p.Name),
			Description: esc(p.Description),
		})
	}
	return data
}

// groupByCompany merges consecutive experiences at the same company into one
// section, keeping resume order
func groupByCompany(experiences []types.Experience, esc func(string) string) []CompanySection {
	var sections []CompanySection
	for _, exp := range experiences {
		role := RoleSection{
			Title:    esc(exp.Title),
			Dates:    esc(formatDateRange(exp.StartDate, exp.EndDate)),
			Location: esc(exp.Location),
		}
		for _, a := range exp.Achievements {
			role.Bullets = append(role.Bullets, esc(a.Text))
		}

		company := esc(exp.Company)
		if n := len(sections); n > 0 && sections[n-1].Company == company {
			sections[n-1].Roles = append(sections[n-1].Roles, role)
			continue
		}
		sections = append(sections, CompanySection{Company: company, Roles: []RoleSection{role}})
	}
	return sections
}

// groupSkills groups skill names by category in order of first appearance
func groupSkills(skills []types.Skill, esc func(string) string) []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	for _, skill := range skills {
		category := strings.TrimSpace(skill.Category)
		if category == "" {
			category = uncategorized
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: esc(category)})
		}
		groups[i].Skills = append(groups[i].Skills, esc(skill.Name))
	}
	return groups
}

func formatDateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch strings.ToLower(end) {
	case types.PresentSentinel, "current", "now":
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

func contactLine(c types.ContactInfo) string {
	var parts []string
	for _, v := range []string{c.Email, c.Phone, c.Location, c.LinkedIn, c.GitHub, c.Website} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}
