package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/internal/db"
	apperrors "notedesk/internal/errors"
)

func setupGateRepo(t *testing.T) *db.Repository {
	t.Helper()
	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	repo := db.NewRepository(database.DB)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAuthorizeProjectGate(t *testing.T) {
	repo := setupGateRepo(t)
	pid, err := repo.CreateProject("secret plans", "")
	require.NoError(t, err)
	require.NoError(t, repo.SetProjectPassword(pid, "abc123"))

	err = authorizeProject(repo, pid, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrPasswordRequired))

	err = authorizeProject(repo, pid, "wrong")
	assert.True(t, apperrors.Is(err, apperrors.ErrAuthFailed))

	assert.NoError(t, authorizeProject(repo, pid, "abc123"))

	// wrong attempts changed nothing
	stored, err := repo.ProjectPassword(pid)
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored)
}

func TestAuthorizeProjectUnlocked(t *testing.T) {
	repo := setupGateRepo(t)
	pid, err := repo.CreateProject("open plans", "")
	require.NoError(t, err)

	assert.NoError(t, authorizeProject(repo, pid, ""))
	assert.NoError(t, authorizeProject(repo, pid, "anything"))
}

func TestAuthorizeProjectAfterPasswordCleared(t *testing.T) {
	repo := setupGateRepo(t)
	pid, err := repo.CreateProject("plans", "")
	require.NoError(t, err)
	require.NoError(t, repo.SetProjectPassword(pid, "abc123"))
	require.NoError(t, repo.SetProjectPassword(pid, ""))

	assert.NoError(t, authorizeProject(repo, pid, ""))
	assert.NoError(t, authorizeProject(repo, pid, "stale"))
}

func TestAuthorizeMissingProjectIsOpen(t *testing.T) {
	repo := setupGateRepo(t)
	assert.NoError(t, authorizeProject(repo, 404, ""))
}
