// Package export turns stored notes into an ordered list of layout blocks
// and renders them to a paginated PDF document.
package export

import (
	"strings"

	"notedesk/internal/db"
	"notedesk/internal/snapshot"
	"notedesk/internal/whiteboard"
)

// BlockKind identifies how a block is laid out in the output document.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindSubheading
	KindBody
	KindImage
	KindPageBreak
)

// Block is one layout unit: a styled text paragraph, an image reference,
// or a page break. Text blocks carry Text; image blocks carry Path.
type Block struct {
	Kind BlockKind
	Text string
	Path string
}

// Assembler reads notes and whiteboard pages and produces block lists for
// a renderer. Capabilities are resolved once at construction; without the
// image backend, sketch sections are omitted rather than failing
// mid-assembly.
type Assembler struct {
	repo  *db.Repository
	pages *whiteboard.Store
	caps  Capabilities
}

func NewAssembler(repo *db.Repository, pages *whiteboard.Store) *Assembler {
	return &Assembler{repo: repo, pages: pages, caps: Detect()}
}

// NoteBlocks lays out a single note. The supplied title is what the caller
// displays for the note; when the note's first line repeats it, that line
// is skipped so the document does not show the title twice. Sketch pages,
// when requested and present, follow the text under a "Sketches:" heading.
func (a *Assembler) NoteBlocks(noteID int64, title string, includeSketches bool) ([]Block, error) {
	content, err := a.repo.NoteContent(noteID)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, nil
	}

	blocks := a.textBlocks(content, title)
	if includeSketches {
		sketches, err := a.sketchBlocks(noteID)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, sketches...)
	}
	return blocks, nil
}

// NotebookBlocks lays out every note of a project newest-first, each note
// headed by its title, with a page break between notes.
func (a *Assembler) NotebookBlocks(projectID int64, includeSketches bool) ([]Block, error) {
	notes, err := a.repo.AllNoteContents(projectID)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	for i, note := range notes {
		if i > 0 {
			blocks = append(blocks, Block{Kind: KindPageBreak})
		}
		blocks = append(blocks, Block{Kind: KindHeading, Text: note.Title})
		blocks = append(blocks, a.textBlocks(note.Content, note.Title)...)
		if includeSketches {
			sketches, err := a.sketchBlocks(note.ID)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, sketches...)
		}
	}
	return blocks, nil
}

// textBlocks decodes the snapshot and emits one block per non-blank line.
// Lines covered by a heading range become heading blocks.
func (a *Assembler) textBlocks(content, title string) []Block {
	snap := snapshot.Decode(content)

	headingLines := make(map[int]bool)
	for _, r := range snap.Tags[snapshot.TagHeading] {
		for line := r.Start.Line; line <= r.End.Line; line++ {
			headingLines[line] = true
		}
	}

	lines := strings.Split(snap.Text, "\n")
	if len(lines) > 0 && title != "" && strings.TrimSpace(lines[0]) == strings.TrimSpace(title) {
		lines = lines[1:]
		rekeyed := make(map[int]bool, len(headingLines))
		for line := range headingLines {
			rekeyed[line-1] = true
		}
		headingLines = rekeyed
	}

	var blocks []Block
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kind := KindBody
		if headingLines[i+1] {
			kind = KindHeading
		}
		blocks = append(blocks, Block{Kind: kind, Text: line})
	}
	return blocks
}

func (a *Assembler) sketchBlocks(noteID int64) ([]Block, error) {
	if !a.caps.Images {
		return nil, nil
	}
	paths, err := a.pages.PagePaths(noteID)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	blocks := make([]Block, 0, len(paths)+1)
	blocks = append(blocks, Block{Kind: KindSubheading, Text: "Sketches:"})
	for _, path := range paths {
		blocks = append(blocks, Block{Kind: KindImage, Path: path})
	}
	return blocks, nil
}
