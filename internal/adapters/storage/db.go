// Package storage owns the local SQLite inbox for reader-submitted
// corrections. Archive records themselves are never persisted here; they
// stay behind the backend REST API.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the subset of *sql.DB the stores need. Satisfied by *sql.DB and
// by mocks in tests.
type SQLDB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// InitDB initializes the inbox schema.
// PRE: db is a valid database connection
// POST: all tables exist, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS correction (
		id TEXT PRIMARY KEY,
		voyage_id INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_correction_voyage ON correction(voyage_id);
	CREATE INDEX IF NOT EXISTS idx_correction_status ON correction(status);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
