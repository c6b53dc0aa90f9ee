package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{name: "earlier line", a: Position{Line: 1, Column: 9}, b: Position{Line: 2, Column: 1}, want: -1},
		{name: "later line", a: Position{Line: 3, Column: 1}, b: Position{Line: 2, Column: 7}, want: 1},
		{name: "same line earlier column", a: Position{Line: 1, Column: 2}, b: Position{Line: 1, Column: 5}, want: -1},
		{name: "same line later column", a: Position{Line: 1, Column: 8}, b: Position{Line: 1, Column: 5}, want: 1},
		{name: "equal ignores offset", a: Position{Line: 1, Column: 5, Offset: 4}, b: Position{Line: 1, Column: 5}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
			assert.Equal(t, tt.want < 0, tt.a.Before(tt.b))
			assert.Equal(t, tt.want > 0, tt.a.After(tt.b))
		})
	}
}

func TestPosition_Advance(t *testing.T) {
	got := Start.Advance("ab\ncd")
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, got)

	assert.Equal(t, Start, Start.Advance(""))
}

func TestPosition_IsValid(t *testing.T) {
	assert.False(t, Position{}.IsValid())
	assert.True(t, Start.IsValid())
	assert.True(t, Span{Start: Start, End: Start.Advance("x")}.IsValid())
	assert.True(t, Span{Start: Start, End: Start.Advance("xy")}.Contains(1))
}
