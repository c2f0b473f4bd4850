// Package db provides the SQLite handle and the per-aggregate repositories
// backing the project, note, todo, and settings stores.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the store file's name inside the data directory.
const FileName = "notedesk.db"

// DB wraps the sql.DB handle with its on-disk location. The handle is
// explicitly owned and lifetime-scoped: backup restore closes it, swaps the
// files underneath, and reopens.
type DB struct {
	*sql.DB
	dataDir string
	path    string
}

// Open opens the store inside dataDir, creating the directory and schema as
// needed. The database is opened with WAL mode and foreign-key enforcement,
// which is what makes project deletion cascade to notes and todos.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, FileName)

	// modernc.org/sqlite is pure Go, no CGO
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{DB: sqlDB, dataDir: dataDir, path: dbPath}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Path returns the store file path.
func (db *DB) Path() string {
	return db.path
}

// DataDir returns the application data directory holding the store file and
// the whiteboard page images.
func (db *DB) DataDir() string {
	return db.dataDir
}
