package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// buildTree assembles `SELECT 1 UNION SELECT 2` by hand.
func buildTree() (*Segment, *Segment) {
	pos := token.Start
	leaf := func(typ, raw string) *Segment {
		s := &Segment{Type: typ, Raw: raw, Pos: pos}
		pos = pos.Advance(raw)
		return s
	}

	sel1 := NewComposite(TypeSelectStatement, leaf(TypeKeyword, "SELECT"), leaf(TypeWhitespace, " "), leaf(TypeNumericLiteral, "1"))
	ws1 := leaf(TypeWhitespace, " ")
	op := NewComposite(TypeSetOperator, leaf(TypeKeyword, "UNION"))
	ws2 := leaf(TypeWhitespace, " ")
	sel2 := NewComposite(TypeSelectStatement, leaf(TypeKeyword, "SELECT"), leaf(TypeWhitespace, " "), leaf(TypeNumericLiteral, "2"))
	set := NewComposite(TypeSetExpression, sel1, ws1, op, ws2, sel2)
	stmt := NewComposite(TypeStatement, set)
	return NewComposite(TypeFile, stmt), op
}

func TestNewComposite(t *testing.T) {
	root, op := buildTree()

	assert.Equal(t, "SELECT 1 UNION SELECT 2", root.Raw)
	assert.Equal(t, token.Start, root.Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 10, Offset: 9}, op.Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 15, Offset: 14}, op.End())
}

func TestSegment_Predicates(t *testing.T) {
	root, op := buildTree()

	assert.False(t, root.IsRaw())
	assert.True(t, op.IsCode())
	assert.True(t, NewNewline().IsNewline())
	assert.False(t, NewNewline().IsCode())
	assert.True(t, NewWhitespace("  ").IsWhitespace())
	assert.False(t, (&Segment{Type: TypeComment, Raw: "-- x"}).IsCode())
	assert.False(t, NewNewline().End().IsValid())
}

func TestSegment_Leaves(t *testing.T) {
	root, _ := buildTree()

	leaves := root.Leaves()
	require.Len(t, leaves, 9)

	var raw string
	for _, l := range leaves {
		assert.True(t, l.IsRaw())
		raw += l.Raw
	}
	assert.Equal(t, root.Raw, raw)
}

func TestSegment_FindAndPathTo(t *testing.T) {
	root, op := buildTree()

	ops := root.Find(TypeSetOperator)
	require.Len(t, ops, 1)
	assert.Same(t, op, ops[0])

	path, ok := root.PathTo(op)
	require.True(t, ok)
	require.Len(t, path, 3)
	assert.Equal(t, TypeFile, path[0].Type)
	assert.Equal(t, TypeStatement, path[1].Type)
	assert.Equal(t, TypeSetExpression, path[2].Type)

	_, ok = root.PathTo(NewNewline())
	assert.False(t, ok)
}

func TestSegment_WalkSkipsChildren(t *testing.T) {
	root, _ := buildTree()

	var visited []string
	root.Walk(func(seg *Segment, parents []*Segment) bool {
		visited = append(visited, seg.Type)
		return seg.Type != TypeSetExpression
	})
	assert.Equal(t, []string{TypeFile, TypeStatement, TypeSetExpression}, visited)
}

func TestSegment_Stats(t *testing.T) {
	root, _ := buildTree()

	stats := root.Stats()
	assert.Equal(t, 2, stats[TypeSelectStatement])
	assert.Equal(t, 1, stats[TypeSetOperator])
	assert.Equal(t, 4, stats[TypeWhitespace])
}

func TestSegment_String(t *testing.T) {
	root, _ := buildTree()

	out := root.String()
	assert.Contains(t, out, "[1:1    ] |file:")
	assert.Contains(t, out, "|"+strings.Repeat("    ", 3)+"set_operator:")
	assert.Contains(t, out, `keyword: "UNION"`)
}

func TestExport(t *testing.T) {
	root, _ := buildTree()

	n := Export(root)
	assert.Equal(t, TypeFile, n.Type)
	assert.Empty(t, n.Raw)
	require.Len(t, n.Children, 1)

	op := n.Children[0].Children[0].Children[2]
	assert.Equal(t, TypeSetOperator, op.Type)
	require.Len(t, op.Children, 1)
	assert.Equal(t, "UNION", op.Children[0].Raw)
	assert.Equal(t, 10, op.Children[0].Column)
}
