package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent and re-run on every
// open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS measurements (
		id            TEXT PRIMARY KEY,
		measured_at   TEXT NOT NULL,
		attempt_count INTEGER NOT NULL CHECK(attempt_count > 0),
		score         INTEGER NOT NULL CHECK(score >= 0),
		time_of_day   TEXT NOT NULL
		              CHECK(time_of_day IN ('morning','afternoon','evening','night')),
		valid         INTEGER NOT NULL DEFAULT 0,
		note          TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_measurements_measured_at ON measurements(measured_at)`,

	`CREATE TABLE IF NOT EXISTS measurement_attempts (
		measurement_id TEXT NOT NULL REFERENCES measurements(id) ON DELETE CASCADE,
		ordinal        INTEGER NOT NULL CHECK(ordinal > 0),
		seconds        INTEGER NOT NULL CHECK(seconds >= 0),
		PRIMARY KEY (measurement_id, ordinal)
	)`,

	`ALTER TABLE measurements ADD COLUMN timezone TEXT NOT NULL DEFAULT ''`,
}
