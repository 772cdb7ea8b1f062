package ingestion

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// unknownCompany is used when a markdown posting names no company
const unknownCompany = "Unknown"

var (
	yearsPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*years?`)
	hasYear          = regexp.MustCompile(`(?i)\b(19|20)\d{2}\b|\bpresent\b`)
	skillLine        = regexp.MustCompile(`^(.+?)(?:\s*\(([^)]*)\))?(?:\s+-\s+(.+))?$`)
	certificateLine  = regexp.MustCompile(`^(.+?)(?:\s+-\s+(.+?))?(?:\s*\(([^)]*)\))?$`)
	educationKeyword = regexp.MustCompile(`(?i)\b(bachelor'?s?|master'?s?|ph\.?d|degree)\b`)
)

// IsMarkdown reports whether path names a markdown document
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// mdSection is an H2 or H3 block with the lines under its heading
type mdSection struct {
	heading string
	lines   []string
}

// splitDocument returns the H1 title and the H2 sections of a markdown
// document. Lines before the first H2 are dropped.
func splitDocument(content string) (string, []mdSection) {
	var title string
	var sections []mdSection
	for _, line := range strings.Split(CleanText(content), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "# "):
			if title == "" {
				title = stripEmphasis(trimmed[2:])
			}
		case strings.HasPrefix(trimmed, "## "):
			sections = append(sections, mdSection{heading: stripEmphasis(trimmed[3:])})
		case len(sections) > 0:
			last := &sections[len(sections)-1]
			last.lines = append(last.lines, line)
		}
	}
	return title, sections
}

// splitEntries breaks section lines on H3 headings. Lines before the first
// H3 form an entry with an empty heading.
func splitEntries(lines []string) []mdSection {
	entries := []mdSection{{}}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "### ") {
			entries = append(entries, mdSection{heading: stripEmphasis(trimmed[4:])})
			continue
		}
		entries[len(entries)-1].lines = append(entries[len(entries)-1].lines, line)
	}
	if len(entries[0].lines) == 0 || isBlank(entries[0].lines) {
		entries = entries[1:]
	}
	return entries
}

func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// sectionKey lowercases a heading and drops a trailing colon
func sectionKey(heading string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(heading)), ":")
}

func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}

// bullet returns the text of a "- " or "* " list item
func bullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	return "", false
}

// labeled splits "**Key:** value", "- **Key:** value" or "- key: value"
func labeled(line string) (string, string, bool) {
	text := strings.TrimSpace(line)
	if item, ok := bullet(text); ok {
		text = item
	}
	text = stripEmphasis(text)
	key, value, ok := strings.Cut(text, ":")
	if !ok || strings.TrimSpace(key) == "" || strings.HasPrefix(value, "//") {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), true
}

// splitList splits a comma separated line, dropping empty items and rules
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = stripEmphasis(item); item != "" && strings.Trim(item, "-") != "" {
			out = append(out, item)
		}
	}
	return out
}

// bulletsOrList collects bullet items, treating plain lines as comma lists
func bulletsOrList(lines []string) []string {
	var out []string
	for _, line := range lines {
		if item, ok := bullet(line); ok {
			if item = stripEmphasis(item); item != "" {
				out = append(out, item)
			}
			continue
		}
		out = append(out, splitList(line)...)
	}
	return out
}

func bullets(lines []string) []string {
	var out []string
	for _, line := range lines {
		if item, ok := bullet(line); ok && item != "" {
			out = append(out, stripEmphasis(item))
		}
	}
	return out
}

// paragraphs joins wrapped lines with spaces and keeps blank line breaks
func paragraphs(lines []string) string {
	var out, current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			flush()
			continue
		}
		current = append(current, stripEmphasis(trimmed))
	}
	flush()
	return strings.Join(out, "\n\n")
}

// parseMarkdownProfile maps the sections of a markdown profile onto a
// UserProfile. Unknown sections are ignored.
func parseMarkdownProfile(content string) *types.UserProfile {
	title, sections := splitDocument(content)
	profile := &types.UserProfile{Name: title}
	for _, section := range sections {
		switch sectionKey(section.heading) {
		case "contact information", "contact":
			profile.Contact = parseContact(section.lines)
		case "professional summary", "summary":
			profile.Summary = parseSummary(section.lines)
		case "work experience", "experience", "professional experience":
			for _, entry := range splitEntries(section.lines) {
				profile.Experiences = append(profile.Experiences, parseExperience(entry))
			}
		case "skills", "technical skills":
			profile.Skills = append(profile.Skills, parseSkills(section.lines)...)
		case "education":
			for _, entry := range splitEntries(section.lines) {
				profile.Education = append(profile.Education, parseEducation(entry))
			}
		case "certifications":
			profile.Certifications = append(profile.Certifications, parseCertifications(section.lines)...)
		case "projects":
			for _, entry := range splitEntries(section.lines) {
				profile.Projects = append(profile.Projects, parseProject(entry))
			}
		case "domain expertise", "domains":
			profile.DomainExpertise = append(profile.DomainExpertise, bulletsOrList(section.lines)...)
		}
	}
	return profile
}

func parseContact(lines []string) types.ContactInfo {
	var contact types.ContactInfo
	for _, line := range lines {
		key, value, ok := labeled(line)
		if !ok {
			continue
		}
		switch key {
		case "email":
			contact.Email = value
		case "phone":
			contact.Phone = value
		case "location":
			contact.Location = value
		case "linkedin":
			contact.LinkedIn = value
		case "github":
			contact.GitHub = value
		case "portfolio", "website":
			contact.Website = value
		}
	}
	return contact
}

// parseSummary skips placeholder lines left over from profile templates
func parseSummary(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "example:") {
			continue
		}
		kept = append(kept, line)
	}
	return paragraphs(kept)
}

// parseExperience reads a "Title at Company" entry. The first line may carry
// "Start - End | Location | Work Mode".
func parseExperience(entry mdSection) types.Experience {
	exp := types.Experience{}
	exp.Title, exp.Company = splitTitleAt(entry.heading)

	var description []string
	inAchievements := false
	metaSeen := false
	for _, line := range entry.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}
		if item, ok := bullet(trimmed); ok {
			exp.Achievements = append(exp.Achievements, types.Achievement{Text: stripEmphasis(item)})
			continue
		}
		if key, value, ok := labeled(trimmed); ok {
			switch key {
			case "key achievements", "achievements":
				inAchievements = true
				continue
			case "technologies", "tech stack":
				exp.Technologies = append(exp.Technologies, splitList(value)...)
				continue
			}
		}
		if !metaSeen && !inAchievements && (strings.Contains(trimmed, "|") || hasYear.MatchString(trimmed)) {
			metaSeen = true
			parseExperienceMeta(&exp, trimmed)
			continue
		}
		metaSeen = true
		if !inAchievements {
			description = append(description, trimmed)
		}
	}
	exp.Description = paragraphs(description)
	if exp.Achievements == nil {
		exp.Achievements = []types.Achievement{}
	}
	return exp
}

func parseExperienceMeta(exp *types.Experience, line string) {
	parts := strings.Split(stripEmphasis(line), "|")
	exp.StartDate, exp.EndDate = splitDateRange(parts[0])
	if len(parts) > 1 {
		exp.Location = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		exp.WorkMode = strings.TrimSpace(parts[2])
	}
}

// splitDateRange splits "Start - End". A missing end means the role is ongoing.
func splitDateRange(value string) (string, string) {
	value = strings.TrimSpace(value)
	start, end, ok := "", "", false
	for _, sep := range []string{" - ", " – ", " — ", " to "} {
		if start, end, ok = strings.Cut(value, sep); ok {
			break
		}
	}
	if !ok {
		start, end, ok = strings.Cut(value, "-")
	}
	if !ok {
		start = value
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if end == "" || strings.EqualFold(end, types.PresentSentinel) {
		end = types.PresentSentinel
	}
	return start, end
}

// splitTitleAt splits "Title at Company" on the first " at "
func splitTitleAt(heading string) (string, string) {
	title, company, ok := strings.Cut(heading, " at ")
	if !ok {
		return strings.TrimSpace(heading), ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(company)
}

// parseSkills reads H3 category groups of "Name (Level, N years) - Note"
// bullets or comma separated lines
func parseSkills(lines []string) []types.Skill {
	var out []types.Skill
	for _, entry := range splitEntries(lines) {
		category := entry.heading
		if category == "" {
			category = "General"
		}
		for _, line := range entry.lines {
			item, isBullet := bullet(line)
			if !isBullet {
				for _, name := range splitList(line) {
					out = append(out, types.Skill{Name: name, Category: category})
				}
				continue
			}
			item = stripEmphasis(item)
			if strings.Contains(item, ",") && !strings.ContainsAny(item, "()") && !strings.Contains(item, " - ") {
				for _, name := range splitList(item) {
					out = append(out, types.Skill{Name: name, Category: category})
				}
				continue
			}
			if skill, ok := parseSkillItem(item, category); ok {
				out = append(out, skill)
			}
		}
	}
	return out
}

func parseSkillItem(item, category string) (types.Skill, bool) {
	m := skillLine.FindStringSubmatch(item)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return types.Skill{}, false
	}
	skill := types.Skill{
		Name:        strings.TrimSpace(m[1]),
		Category:    category,
		Description: strings.TrimSpace(m[3]),
	}
	for _, part := range strings.Split(m[2], ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if level := proficiencyFor(part); level != "" {
			skill.Proficiency = level
			continue
		}
		if years := yearsPattern.FindStringSubmatch(part); years != nil {
			if n, err := strconv.ParseFloat(years[1], 64); err == nil {
				whole := int(n)
				skill.Years = &whole
			}
		}
	}
	return skill, true
}

func proficiencyFor(level string) types.Proficiency {
	switch level {
	case "beginner", "basic", "novice":
		return types.ProficiencyBasic
	case "intermediate":
		return types.ProficiencyIntermediate
	case "advanced":
		return types.ProficiencyAdvanced
	case "expert":
		return types.ProficiencyExpert
	default:
		return ""
	}
}

// parseEducation reads a degree entry: "**Institution** | Year", labeled
// GPA and Location lines, and honor bullets
func parseEducation(entry mdSection) types.Education {
	edu := types.Education{Degree: entry.heading}
	for _, line := range entry.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if item, ok := bullet(trimmed); ok {
			edu.Honors = append(edu.Honors, stripEmphasis(item))
			continue
		}
		if key, value, ok := labeled(trimmed); ok {
			switch key {
			case "gpa":
				edu.GPA = value
				continue
			case "location":
				edu.Location = value
				continue
			}
		}
		if edu.Institution == "" {
			parts := strings.Split(stripEmphasis(trimmed), "|")
			edu.Institution = strings.TrimSpace(parts[0])
			if len(parts) > 1 {
				edu.GraduationDate = strings.TrimSpace(parts[1])
			}
		}
	}
	return edu
}

// parseCertifications reads "- Name - Issuer (Date)" bullets
func parseCertifications(lines []string) []types.Certification {
	var out []types.Certification
	for _, item := range bullets(lines) {
		m := certificateLine.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		out = append(out, types.Certification{
			Name:   strings.TrimSpace(m[1]),
			Issuer: strings.TrimSpace(m[2]),
			Date:   strings.TrimSpace(m[3]),
		})
	}
	return out
}

// parseProject folds highlight bullets into the description
func parseProject(entry mdSection) types.Project {
	project := types.Project{Name: entry.heading}
	var description []string
	for _, line := range entry.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if key, value, ok := labeled(trimmed); ok {
			switch key {
			case "technologies", "tech stack":
				project.Technologies = append(project.Technologies, splitList(value)...)
				continue
			case "url", "github":
				if project.URL == "" {
					project.URL = value
				}
				continue
			}
		}
		if item, ok := bullet(trimmed); ok {
			trimmed = item
		}
		description = append(description, stripEmphasis(trimmed))
	}
	project.Description = strings.Join(description, " ")
	return project
}

// parseMarkdownJob maps the sections of a markdown posting onto a
// JobDescription. The H1 reads "Title at Company".
func parseMarkdownJob(content string) *types.JobDescription {
	heading, sections := splitDocument(content)
	job := &types.JobDescription{}
	job.Title, job.Company = splitTitleAt(heading)

	for _, section := range sections {
		switch sectionKey(section.heading) {
		case "job details", "details":
			for _, line := range section.lines {
				key, value, ok := labeled(line)
				if !ok {
					continue
				}
				switch key {
				case "company":
					if job.Company == "" {
						job.Company = value
					}
				case "location":
					job.Location = value
				case "title", "position":
					if job.Title == "" {
						job.Title = value
					}
				}
			}
		case "responsibilities", "key responsibilities":
			job.Responsibilities = append(job.Responsibilities, bullets(section.lines)...)
		case "required qualifications", "requirements", "required skills":
			parseRequired(&job.Requirements, bullets(section.lines))
		case "preferred qualifications", "preferred skills", "nice to have":
			job.Requirements.PreferredSkills = append(job.Requirements.PreferredSkills, bullets(section.lines)...)
		case "technical stack", "tech stack":
			job.TechnicalStack = append(job.TechnicalStack, bulletsOrList(section.lines)...)
		case "job description", "description", "about the role":
			job.Description = paragraphs(section.lines)
		case "about the company":
			job.CompanyDescription = paragraphs(section.lines)
		}
	}
	if job.Company == "" {
		job.Company = unknownCompany
	}
	job.RawText = CleanText(content)
	return job
}

// parseRequired routes degree lines to education and the rest to required
// skills. The first "N+ years" sets the experience requirement.
func parseRequired(req *types.JobRequirements, items []string) {
	for _, item := range items {
		if req.RequiredExperienceYears == nil {
			if m := yearsPattern.FindStringSubmatch(strings.ToLower(item)); m != nil {
				if years, err := strconv.ParseFloat(m[1], 64); err == nil {
					req.RequiredExperienceYears = &years
				}
			}
		}
		if educationKeyword.MatchString(item) {
			if req.RequiredEducation == "" {
				req.RequiredEducation = item
			} else {
				req.OtherRequirements = append(req.OtherRequirements, item)
			}
			continue
		}
		req.RequiredSkills = append(req.RequiredSkills, item)
	}
}
