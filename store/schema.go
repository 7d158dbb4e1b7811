// Package store persists simulation runs and their per-generation counts in
// SQLite, so death curves of earlier runs can be listed and compared.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    scenario INTEGER NOT NULL,
    size INTEGER NOT NULL,
    generations INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    deaths INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS generation_counts (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    generation INTEGER NOT NULL,
    healthy INTEGER NOT NULL,
    exposed INTEGER NOT NULL,
    infected INTEGER NOT NULL,
    incubation INTEGER NOT NULL,
    sick INTEGER NOT NULL,
    recovered INTEGER NOT NULL,
    dead INTEGER NOT NULL,
    PRIMARY KEY (run_id, generation)
);
CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);
`

// InitSchema creates the tables if needed and records the schema version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`).Scan(&n); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if n == 0 {
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	return nil
}
