// Package whiteboard manages the per-note sketch pages: one PNG file per
// page, named wb_<noteID>_<pageIndex>.png, stored flat in the application
// data directory. Page count is not stored anywhere; it is reconstructed by
// scanning the directory for a note's files.
package whiteboard

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/disintegration/imaging"

	// pages restored from other installations may not be PNG despite the
	// extension; register extra decoders so imaging can still open them
	_ "golang.org/x/image/webp"
)

// pageFilePattern matches page file names and captures note id and index.
var pageFilePattern = regexp.MustCompile(`^wb_(\d+)_(\d+)\.png$`)

// Store locates and reads/writes page files for a data directory. Pages are
// created at the fixed canvas size and are not resized on load.
type Store struct {
	dir    string
	width  int
	height int
}

// NewStore creates a Store over the data directory with the given fixed
// canvas dimensions.
func NewStore(dir string, width, height int) *Store {
	return &Store{dir: dir, width: width, height: height}
}

// PagePath returns the deterministic file path for a page.
func (s *Store) PagePath(noteID int64, index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("wb_%d_%d.png", noteID, index))
}

// Blank returns a fresh white canvas at the store's fixed size.
func (s *Store) Blank() *image.NRGBA {
	return imaging.New(s.width, s.height, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

// LoadPage reads a page image. A missing file or a decode failure degrades
// to a blank canvas; load never fails.
func (s *Store) LoadPage(noteID int64, index int) image.Image {
	img, err := imaging.Open(s.PagePath(noteID, index))
	if err != nil {
		return s.Blank()
	}
	return img
}

// SavePage writes a page image, overwriting any previous file for that
// index. The write is idempotent.
func (s *Store) SavePage(noteID int64, index int, img image.Image) error {
	if img == nil {
		img = s.Blank()
	}
	if err := imaging.Save(img, s.PagePath(noteID, index)); err != nil {
		return fmt.Errorf("failed to save page %d of note %d: %w", index, noteID, err)
	}
	return nil
}

// PageIndices scans the directory once and returns the set of page indices
// that exist on disk for a note.
func (s *Store) PageIndices(noteID int64) (map[int]bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("failed to scan page directory: %w", err)
	}

	indices := make(map[int]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || id != noteID {
			continue
		}
		index, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		indices[index] = true
	}
	return indices, nil
}

// PagePaths returns the existing page files for a note in strictly numeric
// ascending index order.
func (s *Store) PagePaths(noteID int64) ([]string, error) {
	indices, err := s.PageIndices(noteID)
	if err != nil {
		return nil, err
	}

	sorted := make([]int, 0, len(indices))
	for index := range indices {
		sorted = append(sorted, index)
	}
	sort.Ints(sorted)

	paths := make([]string, 0, len(sorted))
	for _, index := range sorted {
		paths = append(paths, s.PagePath(noteID, index))
	}
	return paths, nil
}

// Sweep removes page files whose note id is not in the live set, returning
// how many files were deleted. Pages are never removed automatically when
// a note is deleted; this is the explicit maintenance path.
func (s *Store) Sweep(liveNoteIDs map[int64]bool) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan page directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || liveNoteIDs[id] {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
