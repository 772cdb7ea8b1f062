// Package db persists profiles, jobs, match results and customized resumes
// in PostgreSQL. Each record is stored whole as JSONB next to the columns
// used for filtering.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no row has the requested id
var ErrNotFound = errors.New("db: record not found")

// Table names
const (
	tableProfiles       = "profiles"
	tableJobs           = "jobs"
	tableMatches        = "matches"
	tableCustomizations = "customizations"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks the connection
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates missing tables and indexes. It is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// getContent loads the JSONB content of one row into out
func (db *DB) getContent(ctx context.Context, table, id string, out any) error {
	var content []byte
	err := db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT content FROM %s WHERE id = $1`, table),
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s %s: %w", singular(table), id, ErrNotFound)
		}
		return fmt.Errorf("failed to get %s %s: %w", singular(table), id, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", singular(table), id, err)
	}
	return nil
}

// deleteRow removes one row, returning ErrNotFound when nothing was deleted
func (db *DB) deleteRow(ctx context.Context, table, id string) error {
	tag, err := db.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", singular(table), id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", singular(table), id, ErrNotFound)
	}
	return nil
}

func singular(table string) string {
	switch table {
	case tableProfiles:
		return "profile"
	case tableJobs:
		return "job"
	case tableMatches:
		return "match"
	case tableCustomizations:
		return "customization"
	default:
		return table
	}
}

func marshalContent(kind, id string, v any) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("cannot save %s without an id", kind)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s %s: %w", kind, id, err)
	}
	return data, nil
}
