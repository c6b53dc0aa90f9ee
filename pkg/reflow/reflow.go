// Package reflow computes whitespace edits that bring line breaks around a
// segment in line with the configured layout.
//
// Rebreak never mutates the tree. It returns edits anchored to leaves of
// the tree; applying them to the source and re-parsing yields a tree that
// Rebreak has nothing more to say about.
package reflow

import (
	"errors"
	"fmt"

	"github.com/CommonCrisis/sqlfluff/pkg/segment"
)

// ErrTargetNotFound is returned when the target is not part of the tree.
var ErrTargetNotFound = errors.New("target segment not found in tree")

// Rebreak returns the edits needed so that target has line breaks where its
// configured line position requires them. Edits for the break before the
// target come first.
func Rebreak(target, root *segment.Segment, cfg Config) ([]segment.Edit, error) {
	pos := cfg.LinePositionFor(target.Type)
	if pos == LinePositionNone {
		return nil, nil
	}

	path, ok := root.PathTo(target)
	if !ok {
		return nil, fmt.Errorf("%s at %d:%d: %w", target.Type, target.Pos.Line, target.Pos.Column, ErrTargetNotFound)
	}

	leaves := root.Leaves()
	first, last := leafRange(leaves, target)
	if first < 0 {
		return nil, fmt.Errorf("%s at %d:%d: %w", target.Type, target.Pos.Line, target.Pos.Column, ErrTargetNotFound)
	}

	parent := root
	if len(path) > 0 {
		parent = path[len(path)-1]
	}
	indent := indentFor(leaves, parent, nested(path), cfg)
	newline := newlineStyle(leaves)

	var edits []segment.Edit
	if pos.breakBefore() {
		if e, ok := breakBefore(leaves, first, newline, indent); ok {
			edits = append(edits, e)
		}
	}
	if pos.breakAfter() {
		if e, ok := breakAfter(leaves, last, newline, indent); ok {
			edits = append(edits, e)
		}
	}
	return edits, nil
}

// leafRange returns the indexes of the first and last leaf of target in
// leaves, or -1, -1.
func leafRange(leaves []*segment.Segment, target *segment.Segment) (int, int) {
	own := target.Leaves()
	first, last := -1, -1
	for i, l := range leaves {
		if l == own[0] {
			first = i
		}
		if l == own[len(own)-1] {
			last = i
			break
		}
	}
	if first < 0 || last < 0 {
		return -1, -1
	}
	return first, last
}

// breakBefore inspects the non-code run ending at leaves[first-1].
func breakBefore(leaves []*segment.Segment, first int, newline, indent string) (segment.Edit, bool) {
	i := first - 1
	for ; i >= 0 && !leaves[i].IsCode(); i-- {
		if leaves[i].IsNewline() {
			return segment.Edit{}, false
		}
	}
	if i < 0 {
		// Start of file.
		return segment.Edit{}, false
	}

	prev := leaves[first-1]
	if prev.IsWhitespace() {
		return segment.Replace(prev, lineBreak(newline, indent)...), true
	}
	return segment.CreateAfter(prev, lineBreak(newline, indent)...), true
}

// breakAfter inspects the non-code run starting at leaves[last+1].
func breakAfter(leaves []*segment.Segment, last int, newline, indent string) (segment.Edit, bool) {
	i := last + 1
	for ; i < len(leaves) && !leaves[i].IsCode(); i++ {
		if leaves[i].IsNewline() {
			return segment.Edit{}, false
		}
	}
	if i >= len(leaves) || isTerminator(leaves[i]) {
		// End of file or statement: nothing follows on this line.
		return segment.Edit{}, false
	}

	next := leaves[last+1]
	if next.IsWhitespace() {
		return segment.Replace(next, lineBreak(newline, indent)...), true
	}
	return segment.CreateBefore(next, lineBreak(newline, indent)...), true
}

func isTerminator(s *segment.Segment) bool {
	return s.Type == segment.TypeStatementTerminator
}

func lineBreak(newline, indent string) []*segment.Segment {
	segs := []*segment.Segment{segment.NewNewlineRaw(newline)}
	if indent != "" {
		segs = append(segs, segment.NewWhitespace(indent))
	}
	return segs
}

// newlineStyle returns the raw text of the first newline in the file, so
// inserted breaks match the file's line endings.
func newlineStyle(leaves []*segment.Segment) string {
	for _, l := range leaves {
		if l.IsNewline() {
			return l.Raw
		}
	}
	return "\n"
}

// nested reports whether the path runs through a bracketed segment.
func nested(path []*segment.Segment) bool {
	for _, s := range path {
		if s.Type == segment.TypeBracketed {
			return true
		}
	}
	return false
}

// indentFor returns the indentation for a line break inside parent: the
// indentation of the line parent starts on. A bracketed parent starting
// after other code on that line is indented one unit deeper; top-level
// statements sharing a line after a ";" are not.
func indentFor(leaves []*segment.Segment, parent *segment.Segment, inBrackets bool, cfg Config) string {
	if !parent.Pos.IsValid() {
		return ""
	}
	base := lineIndent(leaves, parent.Pos.Line)
	if inBrackets && parent.Pos.Column > len(base)+1 {
		return base + cfg.IndentString(1)
	}
	return base
}

// lineIndent returns the leading whitespace of the given source line.
func lineIndent(leaves []*segment.Segment, line int) string {
	for _, l := range leaves {
		if l.Pos.Line > line {
			break
		}
		if l.Pos.Line == line && l.Pos.Column == 1 {
			if l.IsWhitespace() {
				return l.Raw
			}
			return ""
		}
	}
	return ""
}
