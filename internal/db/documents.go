package db

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveProfile inserts or replaces a profile
func (db *DB) SaveProfile(ctx context.Context, profile *types.UserProfile) error {
	content, err := marshalContent("profile", profile.ProfileID, profile)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, name, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = $2, content = $3, updated_at = NOW()`,
		profile.ProfileID, profile.Name, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ProfileID, err)
	}
	return nil
}

// GetProfile loads a profile by id
func (db *DB) GetProfile(ctx context.Context, id string) (*types.UserProfile, error) {
	var profile types.UserProfile
	if err := db.getContent(ctx, tableProfiles, id, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes a profile
func (db *DB) DeleteProfile(ctx context.Context, id string) error {
	return db.deleteRow(ctx, tableProfiles, id)
}

// SaveJob inserts or replaces a job description
func (db *DB) SaveJob(ctx context.Context, job *types.JobDescription) error {
	content, err := marshalContent("job", job.JobID, job)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET title = $2, company = $3, content = $4, updated_at = NOW()`,
		job.JobID, job.Title, job.Company, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.JobID, err)
	}
	return nil
}

// GetJob loads a job description by id
func (db *DB) GetJob(ctx context.Context, id string) (*types.JobDescription, error) {
	var job types.JobDescription
	if err := db.getContent(ctx, tableJobs, id, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job description
func (db *DB) DeleteJob(ctx context.Context, id string) error {
	return db.deleteRow(ctx, tableJobs, id)
}

// SaveMatch inserts or replaces a match result
func (db *DB) SaveMatch(ctx context.Context, match *types.MatchResult) error {
	content, err := marshalContent("match", match.MatchID, match)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO matches (id, profile_id, job_id, overall_score, content)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET profile_id = $2, job_id = $3, overall_score = $4,
		 content = $5, updated_at = NOW()`,
		match.MatchID, match.ProfileID, match.JobID, match.OverallScore, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", match.MatchID, err)
	}
	return nil
}

// GetMatch loads a match result by id
func (db *DB) GetMatch(ctx context.Context, id string) (*types.MatchResult, error) {
	var match types.MatchResult
	if err := db.getContent(ctx, tableMatches, id, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// DeleteMatch removes a match result
func (db *DB) DeleteMatch(ctx context.Context, id string) error {
	return db.deleteRow(ctx, tableMatches, id)
}
