// Schema migration management. Migrations are embedded, versioned, and
// applied in order inside a transaction each; the schema history matches
// the store files written by earlier releases, so those open cleanly.
package db

import (
	"fmt"
	"strings"
	"time"

	"notedesk/internal/errors"
)

type migration struct {
	version     int
	description string
	sql         string
}

var migrations = []migration{
	{
		version:     1,
		description: "base_schema",
		sql: `
		CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			created_at TEXT
		);
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			title TEXT,
			content TEXT,
			timestamp TEXT,
			FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
		);
		CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER,
			task TEXT,
			is_done INTEGER DEFAULT 0,
			created_at TEXT,
			FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
		);`,
	},
	{
		version:     2,
		description: "todo_due_dates",
		sql:         `ALTER TABLE todos ADD COLUMN due_date TEXT;`,
	},
	{
		version:     3,
		description: "project_passwords",
		sql:         `ALTER TABLE projects ADD COLUMN password TEXT;`,
	},
	{
		version:     4,
		description: "settings",
		sql: `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		);`,
	},
}

// migrate brings the schema up to the current version.
func (db *DB) migrate() error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY CHECK(version > 0),
			applied_at INTEGER NOT NULL,
			description TEXT NOT NULL
		);`); err != nil {
		return errors.Wrap(errors.ErrMigration, "failed to initialize migration table", err)
	}

	current, err := db.schemaVersion()
	if err != nil {
		return errors.Wrap(errors.ErrMigration, "failed to read schema version", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.applyMigration(m); err != nil {
			return errors.Wrap(errors.ErrMigration,
				fmt.Sprintf("failed to apply migration %d (%s)", m.version, m.description), err)
		}
	}
	return nil
}

// schemaVersion returns the latest applied migration version, 0 for a
// fresh store.
func (db *DB) schemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

func (db *DB) applyMigration(m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		// Stores created before migration tracking already carry the added
		// columns; treat the duplicate-column error as applied.
		if !isDuplicateColumn(err) {
			return fmt.Errorf("failed to execute migration SQL: %w", err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
		m.version, time.Now().Unix(), m.description,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
