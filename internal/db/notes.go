package db

import (
	"database/sql"

	"notedesk/internal/models"
	"notedesk/internal/snapshot"
)

// DefaultNoteContent is the encoded snapshot a fresh note starts with.
func DefaultNoteContent() string {
	return snapshot.Encode("New Note", nil)
}

// CreateNote inserts a note with a derived title and the current timestamp,
// returning the new note id.
func (r *Repository) CreateNote(projectID int64, content string) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO notes (project_id, title, content, timestamp) VALUES (?, ?, ?, ?)",
		projectID, snapshot.DeriveTitle(content), content,
		r.now().Format(models.TimestampFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateNote overwrites a note's content, re-deriving the title and
// refreshing the timestamp. The title is never written independently of the
// content. Updating a missing id is a no-op.
func (r *Repository) UpdateNote(noteID int64, content string) error {
	_, err := r.db.Exec(
		"UPDATE notes SET title = ?, content = ?, timestamp = ? WHERE id = ?",
		snapshot.DeriveTitle(content), content,
		r.now().Format(models.TimestampFormat), noteID,
	)
	return err
}

// ListNotes returns a project's notes newest-timestamp-first, without
// content. A non-empty query filters where the title or the raw encoded
// content contains the substring (SQLite LIKE, ASCII case-insensitive,
// applied to both fields the same way).
func (r *Repository) ListNotes(projectID int64, query string) ([]*models.Note, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query != "" {
		q := "%" + query + "%"
		stmt, perr := r.prepareStmt(
			"SELECT id, project_id, title, timestamp FROM notes WHERE project_id = ? AND (title LIKE ? OR content LIKE ?) ORDER BY timestamp DESC")
		if perr != nil {
			return nil, perr
		}
		rows, err = stmt.Query(projectID, q, q)
	} else {
		stmt, perr := r.prepareStmt(
			"SELECT id, project_id, title, timestamp FROM notes WHERE project_id = ? ORDER BY timestamp DESC")
		if perr != nil {
			return nil, perr
		}
		rows, err = stmt.Query(projectID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		var title, timestamp sql.NullString
		if err := rows.Scan(&n.ID, &n.ProjectID, &title, &timestamp); err != nil {
			return nil, err
		}
		n.Title = title.String
		n.Timestamp = timestamp.String
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// NoteContent returns a note's raw encoded content. A missing id returns ""
// with no error; the caller treats it as nothing to load.
func (r *Repository) NoteContent(noteID int64) (string, error) {
	stmt, err := r.prepareStmt("SELECT content FROM notes WHERE id = ?")
	if err != nil {
		return "", err
	}

	var content sql.NullString
	err = stmt.QueryRow(noteID).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content.String, nil
}

// GetNote retrieves a full note row including content; missing ids return
// (nil, nil).
func (r *Repository) GetNote(noteID int64) (*models.Note, error) {
	stmt, err := r.prepareStmt(
		"SELECT id, project_id, title, content, timestamp FROM notes WHERE id = ?")
	if err != nil {
		return nil, err
	}

	var n models.Note
	var title, content, timestamp sql.NullString
	err = stmt.QueryRow(noteID).Scan(&n.ID, &n.ProjectID, &title, &content, &timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.Title = title.String
	n.Content = content.String
	n.Timestamp = timestamp.String
	return &n, nil
}

// AllNoteContents returns every note in the project, newest-first, with
// titles and raw content. Used by whole-notebook export.
func (r *Repository) AllNoteContents(projectID int64) ([]*models.Note, error) {
	rows, err := r.db.Query(
		"SELECT id, title, content FROM notes WHERE project_id = ? ORDER BY timestamp DESC",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		var title, content sql.NullString
		if err := rows.Scan(&n.ID, &title, &content); err != nil {
			return nil, err
		}
		n.ProjectID = projectID
		n.Title = title.String
		n.Content = content.String
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note. Whiteboard page files for the note are left on
// disk; the sweep maintenance operation removes them explicitly.
func (r *Repository) DeleteNote(noteID int64) error {
	_, err := r.db.Exec("DELETE FROM notes WHERE id = ?", noteID)
	return err
}

// NoteIDs returns the ids of every note in the store, used by the orphaned
// page sweep.
func (r *Repository) NoteIDs() (map[int64]bool, error) {
	rows, err := r.db.Query("SELECT id FROM notes")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
