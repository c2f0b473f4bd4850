package whiteboard

import "image"

// Board is an editing session over one note's pages. It tracks the current
// page index, the total page count for the loaded note, and the in-memory
// image being drawn on. Navigation saves the current page before moving.
type Board struct {
	store  *Store
	noteID int64
	loaded bool

	current int
	total   int
	img     image.Image
}

// NewBoard creates an empty session; nothing is saved or loaded until a
// note is bound with Load.
func (s *Store) NewBoard() *Board {
	return &Board{store: s}
}

// Load binds the board to a note, scanning the directory once to determine
// the page count. A note with no page files on disk has exactly one blank
// page. The current page resets to index zero.
func (b *Board) Load(noteID int64) error {
	indices, err := b.store.PageIndices(noteID)
	if err != nil {
		return err
	}

	total := 1
	for index := range indices {
		if index+1 > total {
			total = index + 1
		}
	}

	b.noteID = noteID
	b.loaded = true
	b.current = 0
	b.total = total
	b.img = b.store.LoadPage(noteID, 0)
	return nil
}

// Loaded reports whether a note is bound.
func (b *Board) Loaded() bool { return b.loaded }

// Page returns the current page index.
func (b *Board) Page() int { return b.current }

// TotalPages returns the page count for the bound note.
func (b *Board) TotalPages() int { return b.total }

// Image returns the in-memory image for the current page.
func (b *Board) Image() image.Image { return b.img }

// SetImage replaces the in-memory image for the current page. The change
// is not persisted until Save or a navigation call.
func (b *Board) SetImage(img image.Image) {
	if b.loaded {
		b.img = img
	}
}

// Save persists the current page. Without a bound note it is a no-op.
func (b *Board) Save() error {
	if !b.loaded {
		return nil
	}
	return b.store.SavePage(b.noteID, b.current, b.img)
}

// AddPage saves the current page, then appends a blank page at the end and
// moves to it. The new page has no file until it is saved.
func (b *Board) AddPage() error {
	if !b.loaded {
		return nil
	}
	if err := b.Save(); err != nil {
		return err
	}
	b.current = b.total
	b.total++
	b.img = b.store.Blank()
	return nil
}

// NextPage saves the current page and moves forward one page. At the last
// page it stays put.
func (b *Board) NextPage() error {
	return b.move(b.current + 1)
}

// PrevPage saves the current page and moves back one page. At the first
// page it stays put.
func (b *Board) PrevPage() error {
	return b.move(b.current - 1)
}

func (b *Board) move(target int) error {
	if !b.loaded {
		return nil
	}
	if err := b.Save(); err != nil {
		return err
	}
	if target < 0 {
		target = 0
	}
	if target > b.total-1 {
		target = b.total - 1
	}
	if target == b.current {
		return nil
	}
	b.current = target
	b.img = b.store.LoadPage(b.noteID, target)
	return nil
}

// PagePaths saves the current page and returns the note's page files in
// ascending index order, so exports see the latest strokes.
func (b *Board) PagePaths() ([]string, error) {
	if !b.loaded {
		return nil, nil
	}
	if err := b.Save(); err != nil {
		return nil, err
	}
	return b.store.PagePaths(b.noteID)
}
