package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident  string
		want   string
		wantOK bool
	}{
		{ident: "select", want: "SELECT", wantOK: true},
		{ident: "Union", want: "UNION", wantOK: true},
		{ident: "minus", want: "MINUS", wantOK: true},
		{ident: "customer_id", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			got, ok := LookupKeyword(tt.ident)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSetOperatorKeyword(t *testing.T) {
	for _, kw := range []string{"UNION", "INTERSECT", "EXCEPT", "MINUS"} {
		assert.True(t, IsSetOperatorKeyword(kw), kw)
	}
	assert.False(t, IsSetOperatorKeyword("SELECT"))
	assert.False(t, IsSetOperatorKeyword("ALL"))
}

func TestIsSetQuantifier(t *testing.T) {
	assert.True(t, IsSetQuantifier("UNION", "ALL"))
	assert.True(t, IsSetQuantifier("EXCEPT", "DISTINCT"))
	assert.False(t, IsSetQuantifier("MINUS", "ALL"))
	assert.False(t, IsSetQuantifier("UNION", "SELECT"))
}

func TestKind_IsCode(t *testing.T) {
	assert.True(t, Keyword.IsCode())
	assert.True(t, Symbol.IsCode())
	assert.False(t, Whitespace.IsCode())
	assert.False(t, Newline.IsCode())
	assert.False(t, LineComment.IsCode())
	assert.True(t, BlockComment.IsComment())
	assert.Equal(t, "NEWLINE", Newline.String())
	assert.Equal(t, "KIND(99)", Kind(99).String())
}

func TestToken_Predicates(t *testing.T) {
	tok := Token{Kind: Keyword, Raw: "union", Keyword: "UNION", Pos: Start}
	assert.True(t, tok.IsKeyword("union"))
	assert.False(t, tok.IsSymbol("union"))
	assert.Equal(t, Position{Line: 1, Column: 6, Offset: 5}, tok.End())
}
