package db

import (
	"database/sql"

	"notedesk/internal/models"
)

// CreateProject inserts a new notebook and returns its id. Name validation
// (non-empty) is a caller-level concern and happens before this call.
func (r *Repository) CreateProject(name, description string) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO projects (name, description, created_at) VALUES (?, ?, ?)",
		name, description, r.now().Format(models.TimestampFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListProjects returns notebooks newest-first. A non-empty query filters on
// name or description substring.
func (r *Repository) ListProjects(query string) ([]*models.Project, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query != "" {
		q := "%" + query + "%"
		stmt, perr := r.prepareStmt(
			"SELECT id, name, description, created_at, password FROM projects WHERE name LIKE ? OR description LIKE ? ORDER BY id DESC")
		if perr != nil {
			return nil, perr
		}
		rows, err = stmt.Query(q, q)
	} else {
		stmt, perr := r.prepareStmt(
			"SELECT id, name, description, created_at, password FROM projects ORDER BY id DESC")
		if perr != nil {
			return nil, perr
		}
		rows, err = stmt.Query()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject retrieves a notebook by id. A missing id returns (nil, nil):
// callers treat it as nothing to load.
func (r *Repository) GetProject(id int64) (*models.Project, error) {
	stmt, err := r.prepareStmt(
		"SELECT id, name, description, created_at, password FROM projects WHERE id = ?")
	if err != nil {
		return nil, err
	}

	p, err := scanProject(stmt.QueryRow(id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject rewrites a notebook's name and description in place.
func (r *Repository) UpdateProject(id int64, name, description string) error {
	_, err := r.db.Exec(
		"UPDATE projects SET name = ?, description = ? WHERE id = ?",
		name, description, id)
	return err
}

// DeleteProject removes a notebook. Foreign keys cascade the delete to all
// owned notes and todos.
func (r *Repository) DeleteProject(id int64) error {
	_, err := r.db.Exec("DELETE FROM projects WHERE id = ?", id)
	return err
}

// SetProjectPassword sets or, with an empty password, clears the lock.
func (r *Repository) SetProjectPassword(id int64, password string) error {
	_, err := r.db.Exec("UPDATE projects SET password = ? WHERE id = ?", password, id)
	return err
}

// ProjectPassword returns the notebook's password, "" when unlocked or the
// id is unknown.
func (r *Repository) ProjectPassword(id int64) (string, error) {
	stmt, err := r.prepareStmt("SELECT password FROM projects WHERE id = ?")
	if err != nil {
		return "", err
	}

	var password sql.NullString
	err = stmt.QueryRow(id).Scan(&password)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return password.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var description, createdAt, password sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &createdAt, &password); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.CreatedAt = createdAt.String
	p.Password = password.String
	return &p, nil
}
