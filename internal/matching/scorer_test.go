package matching

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewDefaultScorer(WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s
}

func floatPtr(v float64) *float64 { return &v }

func testProfile() *types.UserProfile {
	return &types.UserProfile{
		ProfileID: "profile-1",
		Name:      "Jane Doe",
		Contact:   types.ContactInfo{Email: "jane@example.com"},
		Summary:   "Backend engineer focused on payments reliability",
		Experiences: []types.Experience{
			{
				Company:     "Payfast",
				Title:       "Senior Engineer",
				StartDate:   "2020-01",
				EndDate:     "present",
				Description: "Built billing APIs",
				Achievements: []types.Achievement{
					{Text: "Reduced API latency by 40% using Redis caching"},
					{Text: "Led migration to PostgreSQL for 2M users"},
				},
			},
			{
				Company:   "Shopco",
				Title:     "Engineer",
				StartDate: "2017-01",
				EndDate:   "2020-01",
				Achievements: []types.Achievement{
					{Text: "Wrote Python services with Django"},
				},
			},
		},
		Skills: []types.Skill{
			{Name: "Python", Proficiency: types.ProficiencyExpert},
			{Name: "Django"},
			{Name: "PostgreSQL"},
			{Name: "Redis"},
		},
		DomainExpertise: []string{"FinTech"},
	}
}

func testJob() *types.JobDescription {
	return &types.JobDescription{
		JobID:   "job-1",
		Title:   "Backend Engineer",
		Company: "Acme",
		Requirements: types.JobRequirements{
			RequiredSkills:          []string{"Python", "PostgreSQL", "Go", "Kafka"},
			PreferredSkills:         []string{"Redis", "Kubernetes"},
			RequiredExperienceYears: floatPtr(5),
		},
		Keywords: types.JobKeywords{
			Technical:  []string{"Redis", "microservices"},
			Domain:     []string{"fintech", "payments"},
			SoftSkills: []string{"leadership"},
		},
	}
}

func TestAnalyze_Breakdown(t *testing.T) {
	s := newTestScorer(t)

	result, err := s.Analyze(testProfile(), testJob())
	require.NoError(t, err)

	assert.Equal(t, "profile-1", result.ProfileID)
	assert.Equal(t, "job-1", result.JobID)
	assert.Empty(t, result.MatchID)
	assert.Equal(t, fixedNow, result.CreatedAt)

	assert.InDelta(t, 50.0, result.Breakdown.TechnicalSkills, 0.01)
	assert.InDelta(t, 100.0, result.Breakdown.Experience, 0.01)
	assert.InDelta(t, 50.0, result.Breakdown.Domain, 0.01)
	assert.InDelta(t, 40.0, result.Breakdown.KeywordCoverage, 0.01)
	// 0.40*50 + 0.25*100 + 0.20*50 + 0.15*40
	assert.Equal(t, 61, result.OverallScore)
	assert.Equal(t, result.OverallScore, result.Breakdown.TotalScore)

	assert.Equal(t, []string{"Go", "Kafka"}, result.MissingRequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingPreferredSkills)
	assert.Len(t, result.MatchedSkills, 3)
	assert.Len(t, result.RankedAchievements, 3)
}

func TestAnalyze_Gaps(t *testing.T) {
	s := newTestScorer(t)

	result, err := s.Analyze(testProfile(), testJob())
	require.NoError(t, err)

	require.Len(t, result.Gaps.Critical, 2)
	for _, g := range result.Gaps.Critical {
		assert.Equal(t, types.GapRequiredSkill, g.Kind)
	}

	kinds := map[string][]string{}
	for _, g := range result.Gaps.Recommended {
		kinds[g.Kind] = append(kinds[g.Kind], g.Item)
	}
	assert.Equal(t, []string{"Kubernetes"}, kinds[types.GapPreferredSkill])
	assert.Equal(t, []string{"payments"}, kinds[types.GapDomain])
	assert.Equal(t, []string{"microservices", "fintech", "leadership"}, kinds[types.GapKeyword])
	assert.Empty(t, kinds[types.GapExperience])
}

func TestAnalyze_Suggestions(t *testing.T) {
	s := newTestScorer(t)

	result, err := s.Analyze(testProfile(), testJob())
	require.NoError(t, err)

	require.Len(t, result.Suggestions, MaxSuggestions)
	assert.Contains(t, result.Suggestions[0], "Go, Kafka")
	assert.Contains(t, result.Suggestions[1], "Kubernetes")
	assert.Equal(t, "Focus on developing the technical skills mentioned in the job description", result.Suggestions[2])
	assert.Contains(t, result.Suggestions[3], "payments")
	assert.Contains(t, result.Suggestions[4], "microservices")
}

func TestAnalyze_DegenerateInputsScoreFull(t *testing.T) {
	s := newTestScorer(t)
	job := &types.JobDescription{
		Title:        "Engineer",
		Company:      "Acme",
		Requirements: types.JobRequirements{RequiredSkills: []string{"Python"}},
	}

	result, err := s.Analyze(testProfile(), job)
	require.NoError(t, err)

	assert.Equal(t, 100, result.OverallScore)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Gaps.Critical)
	assert.Empty(t, result.Gaps.Recommended)
}

func TestAnalyze_ScoresStayInRange(t *testing.T) {
	s := newTestScorer(t)
	profile := testProfile()
	profile.Skills = []types.Skill{{Name: "Cobol"}}
	profile.Summary = ""
	profile.DomainExpertise = nil
	profile.Experiences[0].StartDate = "2023-07"
	profile.Experiences[1].StartDate = "not a date"

	result, err := s.Analyze(profile, testJob())
	require.NoError(t, err)

	for _, v := range []float64{
		result.Breakdown.TechnicalSkills,
		result.Breakdown.Experience,
		result.Breakdown.Domain,
		result.Breakdown.KeywordCoverage,
	} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	assert.InDelta(t, 10.0, result.Breakdown.Experience, 0.01)
}

func TestAnalyze_AddingMatchingSkillNeverLowersScore(t *testing.T) {
	s := newTestScorer(t)

	before, err := s.Analyze(testProfile(), testJob())
	require.NoError(t, err)

	profile := testProfile()
	profile.Skills = append(profile.Skills, types.Skill{Name: "Golang"})
	after, err := s.Analyze(profile, testJob())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, after.OverallScore, before.OverallScore)
	assert.InDelta(t, 75.0, after.Breakdown.TechnicalSkills, 0.01)
}

func TestAnalyze_Deterministic(t *testing.T) {
	s := newTestScorer(t)
	first, err := s.Analyze(testProfile(), testJob())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Analyze(testProfile(), testJob())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAnalyze_DoesNotMutateProfile(t *testing.T) {
	s := newTestScorer(t)
	profile := testProfile()
	_, err := s.Analyze(profile, testJob())
	require.NoError(t, err)
	assert.Equal(t, testProfile(), profile)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	s := newTestScorer(t)

	_, err := s.Analyze(&types.UserProfile{}, testJob())
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "profile", verr.Subject)

	_, err = s.Analyze(testProfile(), &types.JobDescription{Title: "Engineer"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "job description", verr.Subject)

	_, err = s.Analyze(nil, testJob())
	assert.Error(t, err)
}

func TestNewScorer_Validation(t *testing.T) {
	s := newTestScorer(t)

	_, err := NewScorer(nil, s.Ranker(), DefaultWeights())
	assert.Error(t, err)

	_, err = NewScorer(s.Matcher(), nil, DefaultWeights())
	assert.Error(t, err)

	_, err = NewScorer(s.Matcher(), s.Ranker(), Weights{TechnicalSkills: 0.5, Experience: 0.4})
	assert.Error(t, err)

	_, err = NewScorer(s.Matcher(), s.Ranker(), Weights{TechnicalSkills: 1.5, Experience: -0.5})
	assert.Error(t, err)
}

func TestDomainScore_WholeWordsOnly(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		description string
		keywords    []string
		want        float64
		missing     []string
	}{
		{"short tag inside other words", []string{"AI"}, "", []string{"retail", "email marketing"}, 0, []string{"retail", "email marketing"}},
		{"keyword inside description word", nil, "Maintained legacy billing jobs", []string{"ai"}, 0, []string{"ai"}},
		{"tag phrase within keyword", []string{"Payments"}, "", []string{"payments infrastructure"}, 100, nil},
		{"keyword within tag phrase", []string{"Healthcare Analytics"}, "", []string{"healthcare"}, 100, nil},
		{"description phrase", nil, "Built claims tooling for e-commerce retail stores", []string{"Retail", "logistics"}, 50, []string{"logistics"}},
		{"case insensitive", []string{"FINTECH"}, "", []string{"FinTech"}, 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &types.UserProfile{
				DomainExpertise: tt.tags,
				Experiences:     []types.Experience{{Company: "Acme", Title: "Engineer", Description: tt.description}},
			}
			score, missing := domainScore(profile, tt.keywords)
			assert.InDelta(t, tt.want, score, 0.01)
			assert.Equal(t, tt.missing, missing)
		})
	}
}
