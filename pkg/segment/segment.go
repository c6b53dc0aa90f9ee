// Package segment provides the positioned syntax tree the linter works on.
//
// A tree is made of raw segments (leaves, one per lexical token, covering
// every byte of the source including whitespace and comments) grouped under
// composite segments (statements, set expressions, set operators...).
// Concatenating the Raw of every leaf reproduces the source exactly.
package segment

import (
	"fmt"
	"io"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// Segment type tags.
const (
	TypeFile                  = "file"
	TypeStatement             = "statement"
	TypeStatementTerminator   = "statement_terminator"
	TypeSetExpression         = "set_expression"
	TypeSetOperator           = "set_operator"
	TypeSelectStatement       = "select_statement"
	TypeWithCompoundStatement = "with_compound_statement"
	TypeValuesClause          = "values_clause"
	TypeBracketed             = "bracketed"
	TypeExpression            = "expression"

	TypeKeyword          = "keyword"
	TypeIdentifier       = "identifier"
	TypeQuotedIdentifier = "quoted_identifier"
	TypeNumericLiteral   = "numeric_literal"
	TypeQuotedLiteral    = "quoted_literal"
	TypeSymbol           = "symbol"
	TypePlaceholder      = "placeholder"
	TypeWhitespace       = "whitespace"
	TypeNewline          = "newline"
	TypeComment          = "comment"
	TypeUnparsable       = "unparsable"
)

// Segment is a node of the syntax tree. Segments are not mutated after the
// parser returns them; fixes are applied to the source and re-parsed.
type Segment struct {
	Type     string
	Raw      string
	Pos      token.Position // zero value when the segment has no source position
	Children []*Segment
}

// NewRaw creates a leaf segment from a token.
func NewRaw(typ string, tok token.Token) *Segment {
	return &Segment{Type: typ, Raw: tok.Raw, Pos: tok.Pos}
}

// NewComposite creates a segment grouping children. Its raw text is the
// concatenation of the children and its position is the first valid child
// position.
func NewComposite(typ string, children ...*Segment) *Segment {
	var b strings.Builder
	var pos token.Position
	for _, c := range children {
		b.WriteString(c.Raw)
		if !pos.IsValid() && c.Pos.IsValid() {
			pos = c.Pos
		}
	}
	return &Segment{Type: typ, Raw: b.String(), Pos: pos, Children: children}
}

// NewNewline creates an unpositioned newline, used when building fixes.
func NewNewline() *Segment {
	return &Segment{Type: TypeNewline, Raw: "\n"}
}

// NewNewlineRaw creates an unpositioned newline with the given line ending,
// such as "\r\n".
func NewNewlineRaw(raw string) *Segment {
	return &Segment{Type: TypeNewline, Raw: raw}
}

// NewWhitespace creates an unpositioned whitespace segment.
func NewWhitespace(raw string) *Segment {
	return &Segment{Type: TypeWhitespace, Raw: raw}
}

// IsRaw returns true for leaf segments.
func (s *Segment) IsRaw() bool {
	return len(s.Children) == 0
}

// IsWhitespace returns true for whitespace leaves (not newlines).
func (s *Segment) IsWhitespace() bool {
	return s.Type == TypeWhitespace
}

// IsNewline returns true for newline leaves.
func (s *Segment) IsNewline() bool {
	return s.Type == TypeNewline
}

// IsComment returns true for comment leaves.
func (s *Segment) IsComment() bool {
	return s.Type == TypeComment
}

// IsCode returns false for whitespace, newlines and comments.
// A composite is code if any of its leaves is.
func (s *Segment) IsCode() bool {
	if s.IsRaw() {
		return !s.IsWhitespace() && !s.IsNewline() && !s.IsComment()
	}
	for _, c := range s.Children {
		if c.IsCode() {
			return true
		}
	}
	return false
}

// End returns the position immediately after the segment.
func (s *Segment) End() token.Position {
	if !s.Pos.IsValid() {
		return token.Position{}
	}
	return s.Pos.Advance(s.Raw)
}

// Leaves returns the raw segments under s in source order.
func (s *Segment) Leaves() []*Segment {
	if s.IsRaw() {
		return []*Segment{s}
	}
	var leaves []*Segment
	for _, c := range s.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// String renders the tree in the indented format of the parse command.
func (s *Segment) String() string {
	var b strings.Builder
	_ = s.Dump(&b)
	return b.String()
}

// Dump writes the indented tree representation to w.
func (s *Segment) Dump(w io.Writer) error {
	return s.dump(w, 0)
}

func (s *Segment) dump(w io.Writer, depth int) error {
	loc := "-"
	if s.Pos.IsValid() {
		loc = fmt.Sprintf("%d:%d", s.Pos.Line, s.Pos.Column)
	}
	line := fmt.Sprintf("[%-7s] |%s%s:", loc, strings.Repeat("    ", depth), s.Type)
	if s.IsRaw() {
		line += fmt.Sprintf(" %q", s.Raw)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range s.Children {
		if err := c.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
