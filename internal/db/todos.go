package db

import (
	"database/sql"

	"notedesk/internal/models"
)

// CreateTodo inserts a task for a project and returns its id. The due date
// is a free-form string and may be empty.
func (r *Repository) CreateTodo(projectID int64, task, dueDate string) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO todos (project_id, task, due_date, created_at) VALUES (?, ?, ?, ?)",
		projectID, task, dueDate, r.now().Format(models.DateFormat),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListTodos returns a project's tasks: undone first, newest-created first
// within each group.
func (r *Repository) ListTodos(projectID int64) ([]*models.Todo, error) {
	stmt, err := r.prepareStmt(`
		SELECT id, project_id, task, due_date, is_done, created_at
		FROM todos WHERE project_id = ? ORDER BY is_done ASC, id DESC`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		var task, dueDate, createdAt sql.NullString
		var isDone int
		if err := rows.Scan(&t.ID, &t.ProjectID, &task, &dueDate, &isDone, &createdAt); err != nil {
			return nil, err
		}
		t.Task = task.String
		t.DueDate = dueDate.String
		t.IsDone = isDone != 0
		t.CreatedAt = createdAt.String
		todos = append(todos, &t)
	}
	return todos, rows.Err()
}

// ToggleTodo sets a task's done flag.
func (r *Repository) ToggleTodo(todoID int64, done bool) error {
	val := 0
	if done {
		val = 1
	}
	_, err := r.db.Exec("UPDATE todos SET is_done = ? WHERE id = ?", val, todoID)
	return err
}

// DeleteTodo removes a task.
func (r *Repository) DeleteTodo(todoID int64) error {
	_, err := r.db.Exec("DELETE FROM todos WHERE id = ?", todoID)
	return err
}
