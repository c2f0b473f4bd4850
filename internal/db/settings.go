package db

import (
	"database/sql"

	"github.com/google/uuid"

	"notedesk/internal/models"
)

// Setting returns the value stored under key, "" if unset.
func (r *Repository) Setting(key string) (string, error) {
	stmt, err := r.prepareStmt("SELECT value FROM settings WHERE key = ?")
	if err != nil {
		return "", err
	}

	var value string
	err = stmt.QueryRow(key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting writes a key/value preference, overwriting any previous value.
func (r *Repository) SetSetting(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// EnsureInstallID returns the stable per-installation identifier, creating
// it on first call. The id survives backup restore because it lives in the
// settings table inside the store file.
func (r *Repository) EnsureInstallID() (string, error) {
	id, err := r.Setting(models.SettingInstallID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.New().String()
	if err := r.SetSetting(models.SettingInstallID, id); err != nil {
		return "", err
	}
	return id, nil
}
