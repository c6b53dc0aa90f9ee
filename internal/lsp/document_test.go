package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

func newDocument(content string) *Document {
	return &Document{
		Content: content,
		Lines:   computeLineOffsets(content),
	}
}

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/query.sql"
	content := "SELECT 1 UNION SELECT 2"

	store.Open(uri, "sql", content, 1)

	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, "sql", doc.LanguageID)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri), "document should be gone after close")
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/query.sql"
	store.Open(uri, "sql", "SELECT 1", 1)
	before := store.Get(uri)

	store.Update(uri, "SELECT 1\nUNION\nSELECT 2", 2)

	doc := store.Get(uri)
	assert.Equal(t, "SELECT 1\nUNION\nSELECT 2", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, []int{0, 9, 15}, doc.Lines)

	// Snapshots taken earlier are unaffected.
	assert.Equal(t, "SELECT 1", before.Content)
}

func TestDocumentStore_UpdateUnknown(t *testing.T) {
	store := NewDocumentStore()
	store.Update("file:///never-opened.sql", "SELECT 1", 3)
	assert.Nil(t, store.Get("file:///never-opened.sql"))
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///a.sql", "sql", "SELECT a", 1)
	store.Open("file:///b.sql", "sql", "SELECT b", 1)
	store.Open("file:///c.sql", "sql", "SELECT c", 1)

	assert.ElementsMatch(t, []string{"file:///a.sql", "file:///b.sql", "file:///c.sql"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"line1\nline2\nline3", []int{0, 6, 12}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, computeLineOffsets(tt.content), "content %q", tt.content)
	}
}

func TestDocument_IsSQL(t *testing.T) {
	tests := []struct {
		uri        string
		languageID string
		want       bool
	}{
		{"file:///q.sql", "", true},
		{"file:///Q.SQL", "", true},
		{"untitled:Untitled-1", "sql", true},
		{"file:///notes.md", "markdown", false},
	}

	for _, tt := range tests {
		doc := &Document{URI: tt.uri, LanguageID: tt.languageID}
		assert.Equal(t, tt.want, doc.IsSQL(), tt.uri)
	}
}

func TestDocument_PositionToOffset(t *testing.T) {
	doc := newDocument("line0\nline1\nline2")

	tests := []struct {
		pos      Position
		expected int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 3}, 3},
		{Position{Line: 0, Character: 5}, 5},
		{Position{Line: 1, Character: 0}, 6},
		{Position{Line: 1, Character: 4}, 10},
		{Position{Line: 2, Character: 0}, 12},
		{Position{Line: 2, Character: 5}, 17},
		// Edge cases
		{Position{Line: 100, Character: 0}, 17}, // Line beyond document
		{Position{Line: 0, Character: 100}, 5},  // Character beyond line
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.PositionToOffset(tt.pos), "PositionToOffset(%v)", tt.pos)
	}
}

func TestDocument_OffsetToPosition(t *testing.T) {
	doc := newDocument("line0\nline1\nline2")

	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{3, Position{Line: 0, Character: 3}},
		{5, Position{Line: 0, Character: 5}},
		{6, Position{Line: 1, Character: 0}},
		{10, Position{Line: 1, Character: 4}},
		{12, Position{Line: 2, Character: 0}},
		{17, Position{Line: 2, Character: 5}},
		// Edge cases
		{-1, Position{Line: 0, Character: 0}},  // Negative offset
		{100, Position{Line: 2, Character: 5}}, // Beyond end
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.OffsetToPosition(tt.offset), "OffsetToPosition(%d)", tt.offset)
	}
}

func TestDocument_UTF16Positions(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit; "𝄞" is four bytes and two units.
	doc := newDocument("SELECT 'é𝄞' UNION SELECT 1")
	unionOffset := len("SELECT 'é𝄞' ")

	pos := doc.OffsetToPosition(unionOffset)
	assert.Equal(t, Position{Line: 0, Character: 13}, pos)
	assert.Equal(t, unionOffset, doc.PositionToOffset(pos))
}

func TestDocument_TokenPosition(t *testing.T) {
	doc := newDocument("SELECT 1\nUNION SELECT 2")

	pos := doc.TokenPosition(token.Position{Line: 2, Column: 7, Offset: 15})
	assert.Equal(t, Position{Line: 1, Character: 6}, pos)
	assert.Equal(t, Position{Line: 1, Character: 14}, doc.End())
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("line0\nline1\nline2")

	tests := []struct {
		line     int
		expected string
	}{
		{0, "line0"},
		{1, "line1"},
		{2, "line2"},
		{-1, ""},
		{100, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.GetLine(tt.line), "GetLine(%d)", tt.line)
	}
}

func TestDocument_GetTextInRange(t *testing.T) {
	doc := newDocument("SELECT 1 UNION SELECT 2")

	tests := []struct {
		r        Range
		expected string
	}{
		{
			Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 6}},
			"SELECT",
		},
		{
			Range{Start: Position{Line: 0, Character: 9}, End: Position{Line: 0, Character: 14}},
			"UNION",
		},
		{
			Range{Start: Position{Line: 0, Character: 14}, End: Position{Line: 0, Character: 9}},
			"",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, doc.GetTextInRange(tt.r), "GetTextInRange(%v)", tt.r)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"file:///Users/test/model.sql", "/Users/test/model.sql"},
		{"file:///home/user/my%20query.sql", "/home/user/my query.sql"},
		{"/already/a/path.sql", "/already/a/path.sql"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, URIToPath(tt.uri), "URIToPath(%q)", tt.uri)
	}
}

func TestPathToURI(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/Users/test/model.sql", "file:///Users/test/model.sql"},
		{"file:///already/uri.sql", "file:///already/uri.sql"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PathToURI(tt.path), "PathToURI(%q)", tt.path)
	}
}
