package whiteboard

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), 40, 30)
}

func TestPagePathNaming(t *testing.T) {
	s := NewStore("/data", 40, 30)
	assert.Equal(t, filepath.Join("/data", "wb_7_0.png"), s.PagePath(7, 0))
	assert.Equal(t, filepath.Join("/data", "wb_12_3.png"), s.PagePath(12, 3))
}

func TestLoadMissingNoteIsSingleBlankPage(t *testing.T) {
	s := newTestStore(t)
	b := s.NewBoard()

	require.NoError(t, b.Load(42))
	assert.Equal(t, 1, b.TotalPages())
	assert.Equal(t, 0, b.Page())

	bounds := b.Image().Bounds()
	assert.Equal(t, 40, bounds.Dx())
	assert.Equal(t, 30, bounds.Dy())
}

func TestTotalPagesFromHighestIndex(t *testing.T) {
	s := newTestStore(t)

	// gap at index 1: count still comes from the highest index
	require.NoError(t, s.SavePage(5, 0, nil))
	require.NoError(t, s.SavePage(5, 2, nil))

	b := s.NewBoard()
	require.NoError(t, b.Load(5))
	assert.Equal(t, 3, b.TotalPages())
}

func TestCorruptPageDegradesToBlank(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.PagePath(9, 0), []byte("not a png"), 0o644))

	b := s.NewBoard()
	require.NoError(t, b.Load(9))
	assert.Equal(t, 40, b.Image().Bounds().Dx())
}

func TestAddPageAppendsBlankAndSavesCurrent(t *testing.T) {
	s := newTestStore(t)
	b := s.NewBoard()
	require.NoError(t, b.Load(1))

	b.SetImage(imaging.New(40, 30, color.NRGBA{R: 200, A: 255}))
	require.NoError(t, b.AddPage())

	assert.Equal(t, 1, b.Page())
	assert.Equal(t, 2, b.TotalPages())

	// first page was persisted by the navigation
	_, err := os.Stat(s.PagePath(1, 0))
	assert.NoError(t, err)
	// new page has no file until saved
	_, err = os.Stat(s.PagePath(1, 1))
	assert.True(t, os.IsNotExist(err))
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	s := newTestStore(t)
	b := s.NewBoard()
	require.NoError(t, b.Load(1))
	require.NoError(t, b.AddPage())

	require.NoError(t, b.NextPage())
	assert.Equal(t, 1, b.Page(), "stays on last page")

	require.NoError(t, b.PrevPage())
	assert.Equal(t, 0, b.Page())
	require.NoError(t, b.PrevPage())
	assert.Equal(t, 0, b.Page(), "stays on first page")
}

func TestNavigationRoundTripKeepsStrokes(t *testing.T) {
	s := newTestStore(t)
	b := s.NewBoard()
	require.NoError(t, b.Load(1))

	red := color.NRGBA{R: 255, A: 255}
	b.SetImage(imaging.New(40, 30, red))
	require.NoError(t, b.AddPage())
	require.NoError(t, b.PrevPage())

	got := color.NRGBAModel.Convert(b.Image().At(10, 10)).(color.NRGBA)
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, uint8(0), got.G)
}

func TestUnloadedBoardIsNoOp(t *testing.T) {
	s := newTestStore(t)
	b := s.NewBoard()

	assert.NoError(t, b.Save())
	assert.NoError(t, b.AddPage())
	assert.NoError(t, b.NextPage())

	paths, err := b.PagePaths()
	assert.NoError(t, err)
	assert.Nil(t, paths)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPagePathsAscendingAndSavesCurrent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SavePage(3, 2, nil))
	require.NoError(t, s.SavePage(3, 0, nil))
	require.NoError(t, s.SavePage(3, 10, nil))

	b := s.NewBoard()
	require.NoError(t, b.Load(3))

	paths, err := b.PagePaths()
	require.NoError(t, err)
	assert.Equal(t, []string{
		s.PagePath(3, 0),
		s.PagePath(3, 2),
		s.PagePath(3, 10),
	}, paths)

	// current page now exists even though it was never saved explicitly
	_, err = os.Stat(s.PagePath(3, 0))
	assert.NoError(t, err)
}

func TestPagePathsIgnoresOtherNotesAndStrayFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SavePage(3, 0, nil))
	require.NoError(t, s.SavePage(4, 0, nil))
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "wb_3_x.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "notes.txt"), nil, 0o644))

	paths, err := s.PagePaths(3)
	require.NoError(t, err)
	assert.Equal(t, []string{s.PagePath(3, 0)}, paths)
}

func TestSweepRemovesOrphansOnly(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SavePage(1, 0, nil))
	require.NoError(t, s.SavePage(1, 1, nil))
	require.NoError(t, s.SavePage(2, 0, nil))
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "keep.png"), nil, 0o644))

	removed, err := s.Sweep(map[int64]bool{1: true})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(s.PagePath(1, 0))
	assert.NoError(t, err)
	_, err = os.Stat(s.PagePath(2, 0))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.dir, "keep.png"))
	assert.NoError(t, err)
}
