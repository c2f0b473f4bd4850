// Package snapshot implements the note content codec: the JSON envelope
// that carries a note's text together with its formatting ranges, and the
// plain-text fallback for records written before formatting existed.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tag names form a closed set; entries outside it are ignored on decode.
const (
	TagBold    = "bold"
	TagItalic  = "italic"
	TagHeading = "heading"
)

// tagOrder fixes the emission order of tag entries in the envelope.
var tagOrder = []string{TagBold, TagItalic, TagHeading}

// maxTitleLen is the derived-title truncation length, in runes.
const maxTitleLen = 30

// Pos is a text-buffer position in line.column form. Lines start at 1,
// columns at 0.
type Pos struct {
	Line int
	Col  int
}

// ParsePos parses a "<line>.<column>" position string.
func ParsePos(s string) (Pos, error) {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return Pos{}, fmt.Errorf("malformed position %q", s)
	}
	line, err := strconv.Atoi(s[:dot])
	if err != nil {
		return Pos{}, fmt.Errorf("malformed position %q: %w", s, err)
	}
	col, err := strconv.Atoi(s[dot+1:])
	if err != nil {
		return Pos{}, fmt.Errorf("malformed position %q: %w", s, err)
	}
	if line < 1 || col < 0 {
		return Pos{}, fmt.Errorf("position %q out of range", s)
	}
	return Pos{Line: line, Col: col}, nil
}

// String renders the position in wire form.
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + "." + strconv.Itoa(p.Col)
}

// Before reports whether p precedes q in document order.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Range is a start/end position pair with Start strictly before End.
type Range struct {
	Start Pos
	End   Pos
}

// Snapshot is the decoded form of a note's content. A legacy plain-text
// record decodes to a Snapshot with empty Tags; both variants collapse back
// into a single encoded string at the storage boundary.
type Snapshot struct {
	Text string
	Tags map[string][]Range
}

// envelope is the wire form. Ranges are a flattened pair list
// ([start1, end1, start2, end2, ...]) for compatibility with existing
// stored records.
type envelope struct {
	Text string     `json:"text"`
	Tags []tagEntry `json:"tags"`
}

type tagEntry struct {
	Name   string   `json:"name"`
	Ranges []string `json:"ranges"`
}

// Encode serializes text and formatting ranges into the envelope form.
// Tags with no ranges are omitted entirely.
func Encode(text string, tags map[string][]Range) string {
	env := envelope{Text: text, Tags: []tagEntry{}}
	for _, name := range tagOrder {
		ranges := tags[name]
		if len(ranges) == 0 {
			continue
		}
		entry := tagEntry{Name: name, Ranges: make([]string, 0, 2*len(ranges))}
		for _, r := range ranges {
			entry.Ranges = append(entry.Ranges, r.Start.String(), r.End.String())
		}
		env.Tags = append(env.Tags, entry)
	}
	// Marshaling a struct of strings cannot fail.
	data, _ := json.Marshal(env)
	return string(data)
}

// Decode parses an encoded content string. Any malformed input (invalid
// JSON, a non-envelope shape, an odd-length range list, an unparsable or
// out-of-order position pair) degrades to the entire input treated as
// plain text with no tags. Decode never fails.
func Decode(s string) Snapshot {
	// Only a JSON object can be an envelope. This also catches a bare
	// "null", which json.Unmarshal would accept as a no-op.
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return Snapshot{Text: s, Tags: map[string][]Range{}}
	}
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return Snapshot{Text: s, Tags: map[string][]Range{}}
	}
	tags := make(map[string][]Range)
	for _, entry := range env.Tags {
		if !knownTag(entry.Name) {
			// Future producer with an unknown tag: take no formatting action.
			continue
		}
		if len(entry.Ranges) == 0 {
			continue
		}
		ranges, ok := parseRangeList(entry.Ranges)
		if !ok {
			return Snapshot{Text: s, Tags: map[string][]Range{}}
		}
		tags[entry.Name] = ranges
	}
	return Snapshot{Text: env.Text, Tags: tags}
}

// Encode re-serializes the snapshot. Decode(s).Encode() normalizes a legacy
// plain-text record into envelope form.
func (s Snapshot) Encode() string {
	return Encode(s.Text, s.Tags)
}

// DeriveTitle computes a note's display title from its encoded content:
// first line of the decoded text, truncated to 30 runes and trimmed.
// Empty results become "Untitled".
func DeriveTitle(encoded string) string {
	text := Decode(encoded).Text
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	if runes := []rune(line); len(runes) > maxTitleLen {
		line = string(runes[:maxTitleLen])
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "Untitled"
	}
	return line
}

func knownTag(name string) bool {
	for _, t := range tagOrder {
		if t == name {
			return true
		}
	}
	return false
}

// parseRangeList converts a flattened pair list into ranges. The list must
// have even length and every pair must run forward in document order.
func parseRangeList(flat []string) ([]Range, bool) {
	if len(flat)%2 != 0 {
		return nil, false
	}
	ranges := make([]Range, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		start, err := ParsePos(flat[i])
		if err != nil {
			return nil, false
		}
		end, err := ParsePos(flat[i+1])
		if err != nil {
			return nil, false
		}
		if !start.Before(end) {
			return nil, false
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges, true
}
