package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

func leafAt(typ, raw string, line, col, offset int) *Segment {
	return &Segment{Type: typ, Raw: raw, Pos: token.Position{Line: line, Column: col, Offset: offset}}
}

func TestApplyEdits(t *testing.T) {
	// SELECT 1 UNION SELECT 2
	src := "SELECT 1 UNION SELECT 2"
	wsBefore := leafAt(TypeWhitespace, " ", 1, 9, 8)
	union := leafAt(TypeKeyword, "UNION", 1, 10, 9)
	wsAfter := leafAt(TypeWhitespace, " ", 1, 15, 14)

	tests := []struct {
		name  string
		edits []Edit
		want  string
	}{
		{
			name:  "no edits",
			edits: nil,
			want:  src,
		},
		{
			name:  "replace whitespace before",
			edits: []Edit{Replace(wsBefore, NewNewline())},
			want:  "SELECT 1\nUNION SELECT 2",
		},
		{
			name:  "replace both sides",
			edits: []Edit{Replace(wsBefore, NewNewline()), Replace(wsAfter, NewNewline())},
			want:  "SELECT 1\nUNION\nSELECT 2",
		},
		{
			name:  "edits given out of order",
			edits: []Edit{Replace(wsAfter, NewNewline()), Replace(wsBefore, NewNewline())},
			want:  "SELECT 1\nUNION\nSELECT 2",
		},
		{
			name:  "create before and after",
			edits: []Edit{CreateBefore(union, NewWhitespace("  ")), CreateAfter(union, NewWhitespace("  "))},
			want:  "SELECT 1   UNION   SELECT 2",
		},
		{
			name:  "delete",
			edits: []Edit{Delete(wsAfter)},
			want:  "SELECT 1 UNIONSELECT 2",
		},
		{
			name: "duplicate payload applied once",
			edits: []Edit{
				Replace(wsBefore, NewNewline()), Replace(wsAfter, NewNewline()),
				Replace(wsBefore, NewNewline()), Replace(wsAfter, NewNewline()),
			},
			want: "SELECT 1\nUNION\nSELECT 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEdits(src, tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEdits_Errors(t *testing.T) {
	src := "SELECT 1 UNION SELECT 2"
	union := leafAt(TypeKeyword, "UNION", 1, 10, 9)

	t.Run("overlapping", func(t *testing.T) {
		_, err := ApplyEdits(src, []Edit{
			Replace(union, NewWhitespace("x")),
			Replace(leafAt(TypeKeyword, "ION", 1, 12, 11), NewWhitespace("y")),
		})
		assert.ErrorIs(t, err, ErrOverlappingEdits)
	})

	t.Run("anchor without position", func(t *testing.T) {
		_, err := ApplyEdits(src, []Edit{Replace(NewNewline(), NewWhitespace(" "))})
		assert.ErrorIs(t, err, ErrAnchorWithoutPosition)
	})

	t.Run("anchor out of range", func(t *testing.T) {
		_, err := ApplyEdits(src, []Edit{Delete(leafAt(TypeKeyword, "SELECT", 3, 1, 40))})
		assert.ErrorIs(t, err, ErrAnchorOutOfRange)
	})
}

func TestEdit_Equal(t *testing.T) {
	a := leafAt(TypeWhitespace, " ", 1, 9, 8)
	b := leafAt(TypeWhitespace, " ", 1, 9, 8)
	c := leafAt(TypeWhitespace, " ", 1, 15, 14)

	assert.True(t, Replace(a, NewNewline()).Equal(Replace(b, NewNewline())))
	assert.False(t, Replace(a, NewNewline()).Equal(Replace(c, NewNewline())))
	assert.False(t, Replace(a, NewNewline()).Equal(CreateAfter(a, NewNewline())))
	assert.False(t, Replace(a, NewNewline()).Equal(Replace(a, NewNewline(), NewWhitespace("  "))))
	assert.False(t, Edit{Kind: EditDelete}.Equal(Edit{Kind: EditDelete}))
}

func TestDedupEdits(t *testing.T) {
	a := leafAt(TypeWhitespace, " ", 1, 9, 8)
	c := leafAt(TypeWhitespace, " ", 1, 15, 14)

	got := DedupEdits([]Edit{Replace(a, NewNewline()), Replace(c, NewNewline()), Replace(a, NewNewline())})
	require.Len(t, got, 2)
	assert.Same(t, a, got[0].Anchor)
	assert.Same(t, c, got[1].Anchor)
}

func TestEdit_String(t *testing.T) {
	e := Replace(leafAt(TypeWhitespace, " ", 1, 9, 8), NewNewline())
	assert.Equal(t, `replace@1:9 "\n"`, e.String())
	assert.Equal(t, "create_after", EditCreateAfter.String())
}
