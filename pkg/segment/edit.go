package segment

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// Errors returned when applying edits.
var (
	ErrAnchorWithoutPosition = errors.New("edit anchor has no position")
	ErrOverlappingEdits      = errors.New("overlapping edits")
	ErrAnchorOutOfRange      = errors.New("edit anchor outside of source")
)

// EditKind is the kind of mutation an edit performs relative to its anchor.
type EditKind int

// Edit kinds.
const (
	EditReplace EditKind = iota
	EditCreateBefore
	EditCreateAfter
	EditDelete
)

// String returns the string representation of the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditReplace:
		return "replace"
	case EditCreateBefore:
		return "create_before"
	case EditCreateAfter:
		return "create_after"
	case EditDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Edit is a proposed mutation anchored to a segment of the tree.
type Edit struct {
	Kind     EditKind
	Anchor   *Segment
	Segments []*Segment // new content; empty for EditDelete
}

// Replace returns an edit replacing anchor with segs.
func Replace(anchor *Segment, segs ...*Segment) Edit {
	return Edit{Kind: EditReplace, Anchor: anchor, Segments: segs}
}

// CreateBefore returns an edit inserting segs immediately before anchor.
func CreateBefore(anchor *Segment, segs ...*Segment) Edit {
	return Edit{Kind: EditCreateBefore, Anchor: anchor, Segments: segs}
}

// CreateAfter returns an edit inserting segs immediately after anchor.
func CreateAfter(anchor *Segment, segs ...*Segment) Edit {
	return Edit{Kind: EditCreateAfter, Anchor: anchor, Segments: segs}
}

// Delete returns an edit removing anchor.
func Delete(anchor *Segment) Edit {
	return Edit{Kind: EditDelete, Anchor: anchor}
}

// NewText returns the concatenated raw text the edit introduces.
func (e Edit) NewText() string {
	var b strings.Builder
	for _, s := range e.Segments {
		b.WriteString(s.Raw)
	}
	return b.String()
}

// Equal reports whether two edits perform the same mutation at the same place.
func (e Edit) Equal(o Edit) bool {
	if e.Kind != o.Kind || e.Anchor == nil || o.Anchor == nil {
		return false
	}
	if e.Anchor != o.Anchor {
		if e.Anchor.Type != o.Anchor.Type || e.Anchor.Raw != o.Anchor.Raw || e.Anchor.Pos != o.Anchor.Pos {
			return false
		}
	}
	return e.NewText() == o.NewText()
}

// Range returns the source span the edit rewrites. Insertions have an empty
// span located before or after the anchor.
func (e Edit) Range() (token.Span, error) {
	if e.Anchor == nil || !e.Anchor.Pos.IsValid() {
		return token.Span{}, ErrAnchorWithoutPosition
	}
	start, end := e.Anchor.Pos, e.Anchor.End()
	switch e.Kind {
	case EditCreateBefore:
		return token.Span{Start: start, End: start}, nil
	case EditCreateAfter:
		return token.Span{Start: end, End: end}, nil
	default:
		return token.Span{Start: start, End: end}, nil
	}
}

// String describes the edit for logs and debugging.
func (e Edit) String() string {
	loc := "-"
	if e.Anchor != nil && e.Anchor.Pos.IsValid() {
		loc = fmt.Sprintf("%d:%d", e.Anchor.Pos.Line, e.Anchor.Pos.Column)
	}
	return fmt.Sprintf("%s@%s %q", e.Kind, loc, e.NewText())
}

// DedupEdits removes edits equal to an earlier edit, keeping order.
func DedupEdits(edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		dup := false
		for _, seen := range out {
			if seen.Equal(e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

type textEdit struct {
	start, end int
	text       string
}

// ApplyEdits applies edits to source and returns the new source. Identical
// edits are applied once. Overlapping edits are rejected with
// ErrOverlappingEdits and leave the source untouched.
func ApplyEdits(source string, edits []Edit) (string, error) {
	edits = DedupEdits(edits)
	if len(edits) == 0 {
		return source, nil
	}

	pending := make([]textEdit, 0, len(edits))
	for _, e := range edits {
		span, err := e.Range()
		if err != nil {
			return source, fmt.Errorf("%s: %w", e, err)
		}
		if span.End.Offset > len(source) {
			return source, fmt.Errorf("%s: %w", e, ErrAnchorOutOfRange)
		}
		text := e.NewText()
		if e.Kind == EditDelete {
			text = ""
		}
		pending = append(pending, textEdit{start: span.Start.Offset, end: span.End.Offset, text: text})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].start != pending[j].start {
			return pending[i].start < pending[j].start
		}
		return pending[i].end < pending[j].end
	})

	var b strings.Builder
	cursor := 0
	for _, te := range pending {
		if te.start < cursor {
			return source, fmt.Errorf("%w at offset %d", ErrOverlappingEdits, te.start)
		}
		b.WriteString(source[cursor:te.start])
		b.WriteString(te.text)
		cursor = te.end
	}
	b.WriteString(source[cursor:])
	return b.String(), nil
}
