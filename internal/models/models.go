// Package models provides the data model definitions for notedesk.
package models

import "time"

// Timestamp layouts used across the store. Projects and notes carry
// minute-resolution timestamps; todos record only the creation date.
const (
	TimestampFormat = "2006-01-02 15:04"
	DateFormat      = "2006-01-02"
)

// Project is a notebook: the top-level container for notes and todos.
// An empty Password means the notebook is unlocked.
type Project struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	Password    string `db:"password" json:"password,omitempty"`
}

// Locked reports whether opening the project requires a password.
func (p *Project) Locked() bool {
	return p.Password != ""
}

// Note is a rich-text note owned by exactly one project. Content holds the
// encoded snapshot string; Title is always re-derived from Content on write
// and never set independently.
type Note struct {
	ID        int64  `db:"id" json:"id"`
	ProjectID int64  `db:"project_id" json:"project_id"`
	Title     string `db:"title" json:"title"`
	Content   string `db:"content" json:"content,omitempty"`
	Timestamp string `db:"timestamp" json:"timestamp"`
}

// ModifiedTime parses the note's last-modified timestamp.
func (n *Note) ModifiedTime() (time.Time, error) {
	return time.Parse(TimestampFormat, n.Timestamp)
}

// Todo is a per-project task with an optional free-form due date.
type Todo struct {
	ID        int64  `db:"id" json:"id"`
	ProjectID int64  `db:"project_id" json:"project_id"`
	Task      string `db:"task" json:"task"`
	DueDate   string `db:"due_date" json:"due_date,omitempty"`
	IsDone    bool   `db:"is_done" json:"is_done"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Setting is a key/value application preference row.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Well-known setting keys.
const (
	SettingUserName    = "user_name"
	SettingUserEmail   = "user_email"
	SettingAppPassword = "app_password"
	SettingInstallID   = "install_id"
)
