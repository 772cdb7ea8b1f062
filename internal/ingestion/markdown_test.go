package ingestion

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"profile.md", true},
		{"dir/JOB.MD", true},
		{"job.markdown", true},
		{"profile.json", false},
		{"notes", false},
		{"md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarkdown(tt.path))
		})
	}
}

func TestLoadProfile_Markdown(t *testing.T) {
	profile, meta, err := testLoader().LoadProfile(filepath.Join("testdata", "profile.md"))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", profile.ProfileID)
	assert.True(t, meta.AssignedID)
	assert.Equal(t, KindProfile, meta.Kind)
	require.NotNil(t, profile.CreatedAt)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, types.ContactInfo{
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Location: "Berlin, Germany",
		LinkedIn: "https://linkedin.com/in/janedoe",
		GitHub:   "https://github.com/janedoe",
		Website:  "https://jane.dev",
	}, profile.Contact)
	assert.Equal(t, "Backend engineer focused on payments and distributed systems.", profile.Summary)

	require.Len(t, profile.Experiences, 2)
	acme := profile.Experiences[0]
	assert.Equal(t, "Senior Software Engineer", acme.Title)
	assert.Equal(t, "Acme", acme.Company)
	assert.Equal(t, "2019-03", acme.StartDate)
	assert.Equal(t, types.PresentSentinel, acme.EndDate)
	assert.Equal(t, "Berlin", acme.Location)
	assert.Equal(t, "Hybrid", acme.WorkMode)
	assert.Equal(t, "Owns the payments platform.", acme.Description)
	assert.Equal(t, []types.Achievement{
		{Text: "Built payment APIs in Go serving 10K rps"},
		{Text: "Mentored 3 engineers"},
	}, acme.Achievements)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, acme.Technologies)

	initech := profile.Experiences[1]
	assert.Equal(t, "Initech", initech.Company)
	assert.Equal(t, "2016-01", initech.StartDate)
	assert.Equal(t, "2019-02", initech.EndDate)
	assert.Equal(t, "Remote", initech.Location)
	assert.Empty(t, initech.WorkMode)
	assert.Equal(t, []types.Achievement{{Text: "Migrated billing jobs to Kubernetes"}}, initech.Achievements)

	eight := 8
	assert.Equal(t, []types.Skill{
		{Name: "Go", Category: "Languages", Proficiency: types.ProficiencyExpert, Years: &eight, Description: "Backend services"},
		{Name: "Python", Category: "Languages", Proficiency: types.ProficiencyAdvanced},
		{Name: "Kubernetes", Category: "Infrastructure"},
		{Name: "Terraform", Category: "Infrastructure"},
	}, profile.Skills)

	assert.Equal(t, []types.Education{{
		Degree:         "BSc Computer Science",
		Institution:    "Technical University of Munich",
		GraduationDate: "2015",
		GPA:            "3.8",
		Honors:         []string{"Dean's list"},
	}}, profile.Education)
	assert.Equal(t, []types.Certification{
		{Name: "Certified Kubernetes Administrator", Issuer: "CNCF", Date: "2022"},
		{Name: "AWS Solutions Architect"},
	}, profile.Certifications)
	assert.Equal(t, []types.Project{{
		Name:         "ledgerline",
		Description:  "Double entry ledger library",
		Technologies: []string{"Go", "SQLite"},
		URL:          "https://github.com/janedoe/ledgerline",
	}}, profile.Projects)
	assert.Equal(t, []string{"FinTech", "Payments"}, profile.DomainExpertise)
}

func TestLoadJob_Markdown(t *testing.T) {
	job, meta, err := testLoader().LoadJob(filepath.Join("testdata", "job.md"))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", job.JobID)
	assert.Equal(t, KindJob, meta.Kind)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, "Build payment services in Go for millions of customers.", job.Description)
	assert.Equal(t, []string{"Design APIs", "Operate PostgreSQL clusters"}, job.Responsibilities)
	assert.Equal(t, []string{"5+ years of backend experience", "Go", "PostgreSQL"}, job.Requirements.RequiredSkills)
	assert.Equal(t, []string{"Kafka", "Kubernetes"}, job.Requirements.PreferredSkills)
	require.NotNil(t, job.Requirements.RequiredExperienceYears)
	assert.InDelta(t, 5.0, *job.Requirements.RequiredExperienceYears, 1e-9)
	assert.Equal(t, "Bachelor's degree in Computer Science", job.Requirements.RequiredEducation)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, job.TechnicalStack)
	assert.Equal(t, "Globex builds payment rails.", job.CompanyDescription)
	assert.Contains(t, job.RawText, "## Required Qualifications\n- 5+ years of backend experience")
}

func TestDecodeMarkdownJob_CompanyFallback(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		company string
	}{
		{
			name:    "heading wins",
			doc:     "# SRE at Initech\n\n## Job Details\n- **Company:** Other\n\n## Requirements\n- Linux",
			company: "Initech",
		},
		{
			name:    "job details",
			doc:     "# SRE\n\n## Job Details\n- **Company:** Initech\n\n## Requirements\n- Linux",
			company: "Initech",
		},
		{
			name:    "unknown",
			doc:     "# SRE\n\n## Requirements\n- Linux",
			company: unknownCompany,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, _, err := testLoader().DecodeMarkdownJob([]byte(tt.doc), "")
			require.NoError(t, err)
			assert.Equal(t, "SRE", job.Title)
			assert.Equal(t, tt.company, job.Company)
			assert.Equal(t, []string{"Linux"}, job.Requirements.RequiredSkills)
		})
	}
}

func TestDecodeMarkdown_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) error
		doc    string
		field  string
	}{
		{
			name:   "profile without contact email",
			decode: profileDecoder,
			doc:    "# Jane\n\n## Work Experience\n### Engineer at Acme\n- Shipped\n\n## Skills\n- Go",
			field:  "Email",
		},
		{
			name:   "profile without skills",
			decode: profileDecoder,
			doc:    "# Jane\n\n## Contact Information\n- **Email:** jane@example.com\n\n## Work Experience\n### Engineer at Acme\n- Shipped",
			field:  "Skills",
		},
		{
			name:   "experience heading without company",
			decode: profileDecoder,
			doc:    "# Jane\n\n## Contact Information\n- **Email:** jane@example.com\n\n## Work Experience\n### Engineer\n- Shipped\n\n## Skills\n- Go",
			field:  "Company",
		},
		{
			name:   "job without required qualifications",
			decode: jobDecoder,
			doc:    "# SRE at Initech\n\n## Preferred Qualifications\n- Go",
			field:  "RequiredSkills",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode([]byte(tt.doc))

			var validationErr *types.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func profileDecoder(data []byte) error {
	_, _, err := testLoader().DecodeMarkdownProfile(data, "")
	return err
}

func jobDecoder(data []byte) error {
	_, _, err := testLoader().DecodeMarkdownJob(data, "")
	return err
}

func TestSplitDateRange(t *testing.T) {
	tests := []struct {
		value string
		start string
		end   string
	}{
		{"2019-03 - Present", "2019-03", types.PresentSentinel},
		{"Jan 2020 – Mar 2022", "Jan 2020", "Mar 2022"},
		{"2016-01 - 2019-02", "2016-01", "2019-02"},
		{"2018-2020", "2018", "2020"},
		{"2021", "2021", types.PresentSentinel},
		{"June 2015 to May 2017", "June 2015", "May 2017"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			start, end := splitDateRange(tt.value)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestParseSkills(t *testing.T) {
	three := 3
	tests := []struct {
		name  string
		lines []string
		want  []types.Skill
	}{
		{
			name:  "default category",
			lines: []string{"- Go", "- SQL (intermediate)"},
			want: []types.Skill{
				{Name: "Go", Category: "General"},
				{Name: "SQL", Category: "General", Proficiency: types.ProficiencyIntermediate},
			},
		},
		{
			name:  "comma bullet",
			lines: []string{"### Cloud", "- AWS, GCP"},
			want:  []types.Skill{{Name: "AWS", Category: "Cloud"}, {Name: "GCP", Category: "Cloud"}},
		},
		{
			name:  "years without level",
			lines: []string{"- Rust (3 years) - Side projects"},
			want:  []types.Skill{{Name: "Rust", Category: "General", Years: &three, Description: "Side projects"}},
		},
		{
			name:  "rules and blanks skipped",
			lines: []string{"", "---", "Docker"},
			want:  []types.Skill{{Name: "Docker", Category: "General"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSkills(tt.lines))
		})
	}
}

func TestParseRequired(t *testing.T) {
	var req types.JobRequirements
	parseRequired(&req, []string{
		"3+ years with Go",
		"Master's or PhD in a related field",
		"7 years of anything",
		"Bachelor's degree",
		"Kafka",
	})

	require.NotNil(t, req.RequiredExperienceYears)
	assert.InDelta(t, 3.0, *req.RequiredExperienceYears, 1e-9)
	assert.Equal(t, "Master's or PhD in a related field", req.RequiredEducation)
	assert.Equal(t, []string{"Bachelor's degree"}, req.OtherRequirements)
	assert.Equal(t, []string{"3+ years with Go", "7 years of anything", "Kafka"}, req.RequiredSkills)
}
