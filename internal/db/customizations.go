package db

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveCustomization inserts or replaces a customized resume. job supplies
// the title and company used for listing and may be nil.
func (db *DB) SaveCustomization(ctx context.Context, resume *types.CustomizedResume, job *types.JobDescription) error {
	id := resume.ID()
	content, err := marshalContent("customization", id, resume)
	if err != nil {
		return err
	}
	var title, company string
	if job != nil {
		title, company = job.Title, job.Company
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO customizations
		 (id, profile_id, job_id, match_id, profile_name, job_title, company, overall_score, template, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET profile_id = $2, job_id = $3, match_id = $4, profile_name = $5,
		 job_title = $6, company = $7, overall_score = $8, template = $9, content = $10, updated_at = NOW()`,
		id, resume.ProfileID, resume.JobID, resume.MatchID, resume.Name, title, company,
		resume.Metadata.MatchScore, resume.Metadata.Template, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save customization %s: %w", id, err)
	}
	return nil
}

// GetCustomization loads a customized resume by id
func (db *DB) GetCustomization(ctx context.Context, id string) (*types.CustomizedResume, error) {
	var resume types.CustomizedResume
	if err := db.getContent(ctx, tableCustomizations, id, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// DeleteCustomization removes a customized resume
func (db *DB) DeleteCustomization(ctx context.Context, id string) error {
	return db.deleteRow(ctx, tableCustomizations, id)
}

// ListCustomizations returns matching customizations, newest first
func (db *DB) ListCustomizations(ctx context.Context, filter CustomizationFilter) ([]CustomizationRecord, error) {
	query, args := buildListQuery(filter)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customizations: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CustomizationRecord, error) {
		var r CustomizationRecord
		err := row.Scan(&r.ID, &r.ProfileID, &r.JobID, &r.MatchID, &r.ProfileName,
			&r.JobTitle, &r.Company, &r.OverallScore, &r.Template, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan customizations: %w", err)
	}
	return records, nil
}

// buildListQuery renders the listing query with positional arguments
func buildListQuery(filter CustomizationFilter) (string, []any) {
	var where []string
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.ProfileID != "" {
		add("profile_id = $%d", filter.ProfileID)
	}
	if filter.JobID != "" {
		add("job_id = $%d", filter.JobID)
	}
	if company := strings.TrimSpace(filter.Company); company != "" {
		add("LOWER(company) LIKE '%%' || LOWER($%d) || '%%'", company)
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at <= $%d", *filter.Until)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, profile_id, job_id, match_id, profile_name, job_title, company,
		overall_score, template, created_at FROM customizations`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, normalizeLimit(filter.Limit))
	sb.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d", len(args)))
	return sb.String(), args
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// GetAnalytics summarizes stored customizations
func (db *DB) GetAnalytics(ctx context.Context) (*Analytics, error) {
	var a Analytics
	var avg *float64
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), AVG(overall_score)::float8,
		 COUNT(*) FILTER (WHERE overall_score >= 90),
		 COUNT(*) FILTER (WHERE overall_score >= 80 AND overall_score < 90),
		 COUNT(*) FILTER (WHERE overall_score >= 70 AND overall_score < 80),
		 COUNT(*) FILTER (WHERE overall_score < 70)
		 FROM customizations`,
	).Scan(&a.TotalCustomizations, &avg,
		&a.ScoreDistribution.Excellent, &a.ScoreDistribution.Good,
		&a.ScoreDistribution.Fair, &a.ScoreDistribution.Poor)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}
	if avg != nil {
		a.AverageMatchScore = math.Round(*avg*100) / 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT company, COUNT(*) FROM customizations
		 WHERE company <> ''
		 GROUP BY company ORDER BY COUNT(*) DESC, company LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to list top companies: %w", err)
	}
	defer rows.Close()
	a.TopCompanies, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (CompanyCount, error) {
		var c CompanyCount
		err := row.Scan(&c.Company, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan top companies: %w", err)
	}
	return &a, nil
}
