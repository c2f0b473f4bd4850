// Package backup archives the note store and whiteboard page files into a
// single zip file, and restores such an archive in place.
package backup

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"notedesk/internal/crypto"
	"notedesk/internal/db"
	apperrors "notedesk/internal/errors"
)

// Create writes a zip archive at zipPath containing the store file and
// every whiteboard page in dataDir. Entries are stored flat under their
// base names so a restore lands them back in any data directory. A
// non-empty password seals the whole archive with AES-256-GCM.
func Create(dataDir, zipPath, password string) error {
	storePath := filepath.Join(dataDir, db.FileName)
	if _, err := os.Stat(storePath); err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, "store file not found", err)
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	if err := addFile(zipWriter, storePath); err != nil {
		return err
	}

	pageFiles, err := filepath.Glob(filepath.Join(dataDir, "wb_*.png"))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, "failed to list page files", err)
	}
	for _, file := range pageFiles {
		if err := addFile(zipWriter, file); err != nil {
			return err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, "failed to finish archive", err)
	}

	data := buf.Bytes()
	if password != "" {
		sealed, err := crypto.Seal(data, password)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrBackupFailed, "failed to encrypt archive", err)
		}
		data = sealed
	}
	if err := os.WriteFile(zipPath, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, "failed to write archive", err)
	}
	return nil
}

func addFile(zipWriter *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, fmt.Sprintf("failed to read %s", filepath.Base(path)), err)
	}
	defer f.Close()

	w, err := zipWriter.Create(filepath.Base(path))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, "failed to add archive entry", err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return apperrors.Wrap(apperrors.ErrBackupFailed, fmt.Sprintf("failed to archive %s", filepath.Base(path)), err)
	}
	return nil
}

// Restore extracts an archive produced by Create into dataDir, overwriting
// files in place. The store handle must be closed before calling this and
// reopened afterwards; the archive is validated before anything is
// overwritten. An archive sealed with a password needs the same password
// back; a wrong one fails before any file is touched.
func Restore(zipPath, dataDir, password string) error {
	data, err := os.ReadFile(zipPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to open archive", err)
	}
	if password != "" {
		plain, err := crypto.Open(data, password)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to decrypt archive", err)
		}
		data = plain
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "not a valid archive", err)
	}

	found := false
	for _, entry := range reader.File {
		name := filepath.Base(entry.Name)
		if name != entry.Name || strings.Contains(name, "..") {
			return apperrors.New(apperrors.ErrRestoreFailed, fmt.Sprintf("unsafe archive entry %q", entry.Name))
		}
		if name == db.FileName {
			found = true
		}
	}
	if !found {
		return apperrors.New(apperrors.ErrRestoreFailed, "archive does not contain a store file")
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to create data directory", err)
	}

	for _, entry := range reader.File {
		if err := extractFile(entry, dataDir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(entry *zip.File, dataDir string) error {
	src, err := entry.Open()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, fmt.Sprintf("failed to read archive entry %s", entry.Name), err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dataDir, entry.Name))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, fmt.Sprintf("failed to write %s", entry.Name), err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, fmt.Sprintf("failed to extract %s", entry.Name), err)
	}
	return nil
}
