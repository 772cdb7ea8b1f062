package validation

import (
	"strconv"

	"github.com/jonathan/resume-matcher/internal/types"
)

type roleKey struct {
	company string
	title   string
}

// ValidateAchievementTruthfulness checks every achievement in experiences is
// byte-identical to an achievement of the source experience with the same
// company and title.
func ValidateAchievementTruthfulness(profile *types.UserProfile, experiences []types.Experience) error {
	source := make(map[roleKey]map[string]bool, len(profile.Experiences))
	for _, exp := range profile.Experiences {
		key := roleKey{company: exp.Company, title: exp.Title}
		if source[key] == nil {
			source[key] = make(map[string]bool, len(exp.Achievements))
		}
		for _, a := range exp.Achievements {
			source[key][a.Text] = true
		}
	}

	for _, exp := range experiences {
		texts, ok := source[roleKey{company: exp.Company, title: exp.Title}]
		if !ok {
			return &TruthfulnessError{
				Kind:    KindExperience,
				Item:    exp.Title,
				Company: exp.Company,
				Title:   exp.Title,
				Reason:  "experience not found in source profile",
			}
		}
		for _, a := range exp.Achievements {
			if !texts[a.Text] {
				return &TruthfulnessError{
					Kind:    KindAchievement,
					Item:    a.Text,
					Company: exp.Company,
					Title:   exp.Title,
					Reason:  "fabricated or modified achievement",
				}
			}
		}
	}
	return nil
}

// ValidateSkillTruthfulness checks every skill's name and proficiency pair
// appears in the source profile.
func ValidateSkillTruthfulness(profile *types.UserProfile, skills []types.Skill) error {
	pairs := make(map[string]map[types.Proficiency]bool, len(profile.Skills))
	for _, sk := range profile.Skills {
		if pairs[sk.Name] == nil {
			pairs[sk.Name] = make(map[types.Proficiency]bool)
		}
		pairs[sk.Name][sk.Proficiency] = true
	}

	for _, sk := range skills {
		levels, ok := pairs[sk.Name]
		if !ok {
			return &TruthfulnessError{Kind: KindSkill, Item: sk.Name, Reason: "fabricated skill not found in source profile"}
		}
		if !levels[sk.Proficiency] {
			return &TruthfulnessError{Kind: KindSkill, Item: sk.Name, Reason: "proficiency modified from source profile"}
		}
	}
	return nil
}

// ValidateNoDataLoss checks the customized resume still refers to the matched
// profile and job and carries every source experience.
func ValidateNoDataLoss(profile *types.UserProfile, match *types.MatchResult, resume *types.CustomizedResume) error {
	if resume.ProfileID != match.ProfileID {
		return &DataLossError{Field: "profile_id", Expected: match.ProfileID, Actual: resume.ProfileID}
	}
	if resume.Metadata.ProfileID != match.ProfileID {
		return &DataLossError{Field: "metadata.profile_id", Expected: match.ProfileID, Actual: resume.Metadata.ProfileID}
	}
	if resume.JobID != match.JobID {
		return &DataLossError{Field: "job_id", Expected: match.JobID, Actual: resume.JobID}
	}
	if resume.Metadata.JobID != match.JobID {
		return &DataLossError{Field: "metadata.job_id", Expected: match.JobID, Actual: resume.Metadata.JobID}
	}
	if len(resume.Experiences) != len(profile.Experiences) {
		return &DataLossError{
			Field:    "experience count",
			Expected: strconv.Itoa(len(profile.Experiences)),
			Actual:   strconv.Itoa(len(resume.Experiences)),
		}
	}
	return nil
}

// ValidateCustomizedResume runs every truthfulness and data loss check
func ValidateCustomizedResume(profile *types.UserProfile, match *types.MatchResult, resume *types.CustomizedResume) error {
	if err := ValidateAchievementTruthfulness(profile, resume.Experiences); err != nil {
		return err
	}
	if err := ValidateSkillTruthfulness(profile, resume.Skills); err != nil {
		return err
	}
	return ValidateNoDataLoss(profile, match, resume)
}
