package selection

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionProfile() *types.UserProfile {
	return &types.UserProfile{
		ProfileID: "p1",
		Name:      "Jane Doe",
		Experiences: []types.Experience{
			{
				Company: "Acme", Title: "Senior Engineer", StartDate: "2021-01",
				Achievements: []types.Achievement{
					{Text: "Led team of 5 engineers"},
					{Text: "Cut costs by 30%"},
					{Text: "Wrote Go services"},
					{Text: "Fixed bugs"},
				},
			},
			{
				Company: "Beta", Title: "Engineer", StartDate: "2018-01", EndDate: "2021-01",
				Achievements: []types.Achievement{
					{Text: "Built Kafka pipeline"},
					{Text: "Organized events"},
				},
			},
			{Company: "Gamma", Title: "Intern", StartDate: "2017-06", EndDate: "2017-09"},
		},
		Skills: []types.Skill{{Name: "Go"}},
	}
}

func selectionMatch() *types.MatchResult {
	scores := []struct {
		text  string
		score float64
	}{
		{"Wrote Go services", 60},
		{"Built Kafka pipeline", 50},
		{"Cut costs by 30%", 45},
		{"Led team of 5 engineers", 40},
		{"Fixed bugs", 10},
		{"Organized events", 5},
	}
	m := &types.MatchResult{ProfileID: "p1", JobID: "j1"}
	for _, s := range scores {
		m.RankedAchievements = append(m.RankedAchievements, types.ScoredAchievement{
			Achievement: types.Achievement{Text: s.text},
			Score:       s.score,
		})
	}
	return m
}

func texts(exp types.Experience) []string {
	out := make([]string, 0, len(exp.Achievements))
	for _, a := range exp.Achievements {
		out = append(out, a.Text)
	}
	return out
}

func TestReorderAchievements_Default(t *testing.T) {
	experiences, err := ReorderAchievements(selectionProfile(), selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)
	require.Len(t, experiences, 3)

	// leadership and metrics bonuses lift the 40 base score above the 45
	assert.Equal(t, []string{"Wrote Go services", "Led team of 5 engineers", "Cut costs by 30%"}, texts(experiences[0]))
	assert.Equal(t, []string{"Built Kafka pipeline", "Organized events"}, texts(experiences[1]))
	assert.Empty(t, experiences[2].Achievements)
	assert.Equal(t, "Gamma", experiences[2].Company)

	require.NotNil(t, experiences[0].Achievements[0].RelevanceScore)
	assert.Equal(t, 60.0, *experiences[0].Achievements[0].RelevanceScore)
	assert.Equal(t, 40.0, *experiences[0].Achievements[1].RelevanceScore)
}

func TestReorderAchievements_KeepsExperienceOrderAndMetadata(t *testing.T) {
	profile := selectionProfile()
	experiences, err := ReorderAchievements(profile, selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)

	for i, exp := range experiences {
		assert.Equal(t, profile.Experiences[i].Company, exp.Company)
		assert.Equal(t, profile.Experiences[i].Title, exp.Title)
		assert.Equal(t, profile.Experiences[i].StartDate, exp.StartDate)
		assert.Equal(t, profile.Experiences[i].EndDate, exp.EndDate)
	}
}

func TestReorderAchievements_MinRelevanceFilters(t *testing.T) {
	strategy := types.DefaultAchievementSelection()
	strategy.MinRelevanceScore = 30
	experiences, err := ReorderAchievements(selectionProfile(), selectionMatch(), strategy)
	require.NoError(t, err)

	assert.NotContains(t, texts(experiences[0]), "Fixed bugs")
	assert.Equal(t, []string{"Built Kafka pipeline"}, texts(experiences[1]))
}

func TestReorderAchievements_UnrankedAchievementScoresZero(t *testing.T) {
	strategy := types.DefaultAchievementSelection()
	strategy.MinRelevanceScore = 1
	match := selectionMatch()
	match.RankedAchievements = match.RankedAchievements[:1]

	experiences, err := ReorderAchievements(selectionProfile(), match, strategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wrote Go services"}, texts(experiences[0]))
	assert.Empty(t, experiences[1].Achievements)
}

func TestReorderAchievements_TopN(t *testing.T) {
	strategy := types.DefaultAchievementSelection()
	strategy.TopN = 1
	experiences, err := ReorderAchievements(selectionProfile(), selectionMatch(), strategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wrote Go services"}, texts(experiences[0]))
	assert.Equal(t, []string{"Built Kafka pipeline"}, texts(experiences[1]))

	strategy.TopN = 0
	experiences, err = ReorderAchievements(selectionProfile(), selectionMatch(), strategy)
	require.NoError(t, err)
	require.Len(t, experiences, 3)
	for _, exp := range experiences {
		assert.Empty(t, exp.Achievements)
	}
}

func TestReorderAchievements_TiesKeepSourceOrder(t *testing.T) {
	source := []string{"Wrote docs", "Fixed tests", "Reviewed code", "Paired with QA", "Cleaned up CI"}
	exp := types.Experience{Company: "Acme", Title: "Engineer", StartDate: "2020-01"}
	match := &types.MatchResult{ProfileID: "p1", JobID: "j1"}
	for _, text := range source {
		exp.Achievements = append(exp.Achievements, types.Achievement{Text: text})
		match.RankedAchievements = append(match.RankedAchievements, types.ScoredAchievement{
			Achievement: types.Achievement{Text: text},
			Score:       50,
		})
	}
	profile := &types.UserProfile{ProfileID: "p1", Experiences: []types.Experience{exp}}

	strategy := types.DefaultAchievementSelection()
	strategy.TopN = 2
	experiences, err := ReorderAchievements(profile, match, strategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wrote docs", "Fixed tests"}, texts(experiences[0]))

	// ranked order in the match result does not matter when scores tie
	for i, j := 0, len(match.RankedAchievements)-1; i < j; i, j = i+1, j-1 {
		match.RankedAchievements[i], match.RankedAchievements[j] = match.RankedAchievements[j], match.RankedAchievements[i]
	}
	experiences, err = ReorderAchievements(profile, match, strategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wrote docs", "Fixed tests"}, texts(experiences[0]))
}

func TestReorderAchievements_NegativeTopN(t *testing.T) {
	strategy := types.DefaultAchievementSelection()
	strategy.TopN = -1
	_, err := ReorderAchievements(selectionProfile(), selectionMatch(), strategy)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "top_n", cfgErr.Field)
}

func TestReorderAchievements_LeadershipBonusCanBeDisabled(t *testing.T) {
	strategy := types.DefaultAchievementSelection()
	strategy.PrioritizeLeadership = false
	strategy.TopN = 2
	experiences, err := ReorderAchievements(selectionProfile(), selectionMatch(), strategy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wrote Go services", "Cut costs by 30%"}, texts(experiences[0]))
}

func TestReorderAchievements_DoesNotMutateProfile(t *testing.T) {
	profile := selectionProfile()
	_, err := ReorderAchievements(profile, selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)
	assert.Equal(t, selectionProfile(), profile)
}

func TestReorderAchievements_Idempotent(t *testing.T) {
	first, err := ReorderAchievements(selectionProfile(), selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)
	second, err := ReorderAchievements(selectionProfile(), selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHasLeadershipIndicators(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Led team of 5 engineers", true},
		{"Mentored three junior developers", true},
		{"Partnered with cross-functional stakeholders", true},
		{"Leading the on-call rotation", true},
		{"Built team for the payments launch", true},
		{"Showed leadership during the outage", true},
		{"Wrote Go services", false},
		{"Fixed bugs", false},
		{"Handled customer tickets", false},
		{"Scheduled nightly batch jobs", false},
		{"Compiled release notes", false},
		{"Enabled TLS on every endpoint", false},
		{"Misleading dashboards removed", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HasLeadershipIndicators(tt.text))
		})
	}
}

func TestGetAchievementStatistics(t *testing.T) {
	profile := selectionProfile()
	experiences, err := ReorderAchievements(profile, selectionMatch(), types.DefaultAchievementSelection())
	require.NoError(t, err)

	stats := GetAchievementStatistics(profile, experiences)
	assert.Equal(t, 6, stats.TotalOriginal)
	assert.Equal(t, 5, stats.TotalSelected)
	assert.InDelta(t, 5.0/6.0, stats.SelectionRate, 0.0001)
	assert.Equal(t, 3, stats.CompaniesOriginal)
	assert.Equal(t, 2, stats.CompaniesRepresented)
	assert.InDelta(t, 2.0/3.0, stats.DiversityRate, 0.0001)
}
