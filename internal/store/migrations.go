package store

import "fmt"

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

var schemaV1 = []string{
	`CREATE TABLE IF NOT EXISTS sheets (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		name        TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		last_run_id TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (source, name)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sheet_id   TEXT NOT NULL REFERENCES sheets(id) ON DELETE CASCADE,
		run_id     TEXT NOT NULL,
		title      TEXT NOT NULL,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		date       TEXT NOT NULL,
		time       TEXT NOT NULL,
		procedure  TEXT NOT NULL DEFAULT '',
		facility   TEXT NOT NULL DEFAULT '',
		source_row INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_sheet ON events(sheet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date, time)`,
}

// migrate brings the schema up to schemaVersion.
func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaV1 {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}
