package db

import "time"

// DefaultListLimit applies when a filter has no positive limit
const DefaultListLimit = 10

// MaxListLimit caps any listing
const MaxListLimit = 100

// CustomizationFilter narrows ListCustomizations. Empty fields do not filter.
type CustomizationFilter struct {
	ProfileID string
	JobID     string
	// Company matches case-insensitively as a substring
	Company string
	Since   *time.Time
	Until   *time.Time
	Limit   int
}

// CustomizationRecord is the listing row of a stored customization
type CustomizationRecord struct {
	ID           string    `json:"customization_id"`
	ProfileID    string    `json:"profile_id"`
	JobID        string    `json:"job_id"`
	MatchID      string    `json:"match_id,omitempty"`
	ProfileName  string    `json:"profile_name"`
	JobTitle     string    `json:"job_title"`
	Company      string    `json:"company"`
	OverallScore int       `json:"overall_score"`
	Template     string    `json:"template"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompanyCount is one entry of the top companies list
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// ScoreDistribution buckets customizations by match score
type ScoreDistribution struct {
	Excellent int `json:"excellent_90_plus"`
	Good      int `json:"good_80_89"`
	Fair      int `json:"fair_70_79"`
	Poor      int `json:"poor_below_70"`
}

// Analytics summarizes every stored customization
type Analytics struct {
	TotalCustomizations int               `json:"total_customizations"`
	AverageMatchScore   float64           `json:"avg_match_score"`
	TopCompanies        []CompanyCount    `json:"top_companies"`
	ScoreDistribution   ScoreDistribution `json:"score_distribution"`
}
