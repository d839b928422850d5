package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			taken_at    TEXT NOT NULL,
			root        TEXT NOT NULL,
			overall_pct INTEGER NOT NULL,
			version     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS dimension_scores (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_rowid INTEGER NOT NULL REFERENCES runs(id),
			dimension TEXT NOT NULL,
			points    INTEGER NOT NULL,
			max       INTEGER NOT NULL,
			percent   INTEGER NOT NULL,
			grade     TEXT NOT NULL,
			label     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS pattern_scores (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_rowid  INTEGER NOT NULL REFERENCES runs(id),
			pattern    TEXT NOT NULL,
			name       TEXT NOT NULL,
			percentage INTEGER NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root)`,
		`CREATE INDEX IF NOT EXISTS idx_dimension_run ON dimension_scores(run_rowid)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_run ON pattern_scores(run_rowid)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
