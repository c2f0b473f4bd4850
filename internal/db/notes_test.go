package db

import (
	"strings"
	"testing"
	"time"

	"notedesk/internal/snapshot"
)

func TestCreateNoteDerivesTitle(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	nid, err := repo.CreateNote(pid, DefaultNoteContent())
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	notes, _ := repo.ListNotes(pid, "")
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].ID != nid {
		t.Errorf("listed id %d, want %d", notes[0].ID, nid)
	}
	if notes[0].Title != "New Note" {
		t.Errorf("derived title %q, want %q", notes[0].Title, "New Note")
	}
	if notes[0].Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestCreateNoteLegacyPlainContent(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	nid, _ := repo.CreateNote(pid, "Grocery run\nmilk and eggs")

	notes, _ := repo.ListNotes(pid, "")
	if notes[0].Title != "Grocery run" {
		t.Errorf("derived title %q, want %q", notes[0].Title, "Grocery run")
	}

	content, err := repo.NoteContent(nid)
	if err != nil {
		t.Fatalf("NoteContent failed: %v", err)
	}
	if content != "Grocery run\nmilk and eggs" {
		t.Errorf("content stored verbatim; got %q", content)
	}
}

func TestUpdateNoteRewritesTitleAndTimestamp(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	setNow := fixedClock(repo, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	nid, _ := repo.CreateNote(pid, DefaultNoteContent())

	setNow(time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC))
	updated := snapshot.Encode("Chapter outline\nact one", nil)
	if err := repo.UpdateNote(nid, updated); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}

	notes, _ := repo.ListNotes(pid, "")
	if notes[0].Title != "Chapter outline" {
		t.Errorf("title %q, want %q", notes[0].Title, "Chapter outline")
	}
	if notes[0].Timestamp != "2025-03-02 10:30" {
		t.Errorf("timestamp %q, want refreshed", notes[0].Timestamp)
	}
}

func TestUpdateNoteIdempotent(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")
	nid, _ := repo.CreateNote(pid, DefaultNoteContent())

	content := snapshot.Encode("same thing", nil)
	if err := repo.UpdateNote(nid, content); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if err := repo.UpdateNote(nid, content); err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	got, _ := repo.NoteContent(nid)
	if got != content {
		t.Errorf("content changed by repeated update: %q", got)
	}
	notes, _ := repo.ListNotes(pid, "")
	if len(notes) != 1 {
		t.Errorf("repeated update changed list behavior: %d notes", len(notes))
	}
}

func TestUpdateNoteMissingIsNoop(t *testing.T) {
	_, repo := setupTestDB(t)

	if err := repo.UpdateNote(777, DefaultNoteContent()); err != nil {
		t.Errorf("updating a missing note should not fail: %v", err)
	}
}

func TestListNotesNewestTimestampFirst(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	setNow := fixedClock(repo, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	old, _ := repo.CreateNote(pid, snapshot.Encode("oldest", nil))

	setNow(time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC))
	mid, _ := repo.CreateNote(pid, snapshot.Encode("middle", nil))

	setNow(time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC))
	recent, _ := repo.CreateNote(pid, snapshot.Encode("newest", nil))

	// Editing the oldest note moves it to the top.
	setNow(time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC))
	repo.UpdateNote(old, snapshot.Encode("oldest, edited", nil))

	notes, err := repo.ListNotes(pid, "")
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	got := []int64{notes[0].ID, notes[1].ID, notes[2].ID}
	want := []int64{old, recent, mid}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestListNotesSearchMatchesTitleAndContent(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	repo.CreateNote(pid, snapshot.Encode("Needle in title\nbody", nil))
	repo.CreateNote(pid, snapshot.Encode("Plain title\nburied needle here", nil))
	repo.CreateNote(pid, snapshot.Encode("Unrelated\nnothing to see", nil))

	notes, err := repo.ListNotes(pid, "needle")
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(notes))
	}

	// Case-insensitive across both fields.
	notes, _ = repo.ListNotes(pid, "NEEDLE")
	if len(notes) != 2 {
		t.Errorf("expected case-insensitive match, got %d", len(notes))
	}

	// Empty query returns everything.
	notes, _ = repo.ListNotes(pid, "")
	if len(notes) != 3 {
		t.Errorf("empty query returned %d notes, want 3", len(notes))
	}
}

func TestNoteContentMissingReturnsEmpty(t *testing.T) {
	_, repo := setupTestDB(t)

	content, err := repo.NoteContent(42)
	if err != nil {
		t.Fatalf("NoteContent failed: %v", err)
	}
	if content != "" {
		t.Errorf("expected empty content for missing note, got %q", content)
	}
}

func TestGetNoteMissingReturnsNil(t *testing.T) {
	_, repo := setupTestDB(t)

	n, err := repo.GetNote(42)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if n != nil {
		t.Errorf("expected nil, got %+v", n)
	}
}

func TestAllNoteContentsNewestFirst(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")

	setNow := fixedClock(repo, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	repo.CreateNote(pid, snapshot.Encode("First note\nbody one", nil))
	setNow(time.Date(2025, 5, 2, 12, 0, 0, 0, time.UTC))
	repo.CreateNote(pid, snapshot.Encode("Second note\nbody two", nil))

	notes, err := repo.AllNoteContents(pid)
	if err != nil {
		t.Fatalf("AllNoteContents failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "Second note" || notes[1].Title != "First note" {
		t.Errorf("unexpected order: %q, %q", notes[0].Title, notes[1].Title)
	}
	if !strings.Contains(notes[0].Content, "body two") {
		t.Errorf("content missing: %q", notes[0].Content)
	}
}

func TestDeleteNote(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")
	nid, _ := repo.CreateNote(pid, DefaultNoteContent())

	if err := repo.DeleteNote(nid); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	if notes, _ := repo.ListNotes(pid, ""); len(notes) != 0 {
		t.Errorf("note still listed after delete")
	}
	if content, _ := repo.NoteContent(nid); content != "" {
		t.Errorf("content still readable after delete: %q", content)
	}
}

func TestNoteIDs(t *testing.T) {
	_, repo := setupTestDB(t)
	pid, _ := repo.CreateProject("Book", "")
	a, _ := repo.CreateNote(pid, DefaultNoteContent())
	b, _ := repo.CreateNote(pid, DefaultNoteContent())

	ids, err := repo.NoteIDs()
	if err != nil {
		t.Fatalf("NoteIDs failed: %v", err)
	}
	if len(ids) != 2 || !ids[a] || !ids[b] {
		t.Errorf("unexpected id set: %v", ids)
	}
}
