package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Repository provides CRUD operations over projects, notes, todos, and
// settings. Every method commits its own write immediately; there is no
// cross-call transaction discipline.
type Repository struct {
	db *sql.DB

	// Prepared statements are cached per query string to avoid repeated
	// SQL parsing on the hot list paths.
	stmtCache sync.Map // map[string]*sql.Stmt

	// now is swapped out by tests that need deterministic timestamps.
	now func() time.Time
}

// NewRepository creates a Repository over an open database handle.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// prepareStmt gets or creates a prepared statement from the cache.
func (r *Repository) prepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}
	return stmt, nil
}

// Close closes all cached prepared statements. The underlying handle is
// owned by the caller and stays open.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value any) bool {
		if err := value.(*sql.Stmt).Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.stmtCache.Delete(key)
		return true
	})
	return firstErr
}
