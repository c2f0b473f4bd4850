package main

import (
	"fmt"

	"notedesk/internal/db"
	apperrors "notedesk/internal/errors"
)

// authorizeProject enforces the project password gate. An unlocked project
// opens regardless of input. A locked project needs the exact stored
// password; a missing one asks the caller to supply it, a wrong one is
// rejected. Neither failure changes any state.
func authorizeProject(repo *db.Repository, projectID int64, supplied string) error {
	stored, err := repo.ProjectPassword(projectID)
	if err != nil {
		return err
	}
	if stored == "" {
		return nil
	}
	if supplied == "" {
		return apperrors.New(apperrors.ErrPasswordRequired, fmt.Sprintf("project %d is locked", projectID))
	}
	if supplied != stored {
		return apperrors.New(apperrors.ErrAuthFailed, "wrong password")
	}
	return nil
}
