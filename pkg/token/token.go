// Package token defines the lexical tokens produced by the SQL lexer.
//
// Unlike a compiler lexer, tokens here cover every byte of the input:
// whitespace, newlines and comments are tokens too, so a linter can reason
// about layout and a fixer can rewrite it.
package token

import (
	"fmt"
	"strings"
)

// Kind represents the lexical class of a token.
type Kind int

// Token kinds.
const (
	EOF Kind = iota
	Illegal

	Ident       // customer_id
	QuotedIdent // "Customer Id", `customer_id`
	Number      // 123, 45.67, 1e10
	String      // 'hello'
	Symbol      // ( ) , ; = <> ...
	Keyword     // SELECT, UNION, ...
	Placeholder // {{ var }}, {% if %}

	Whitespace   // spaces and tabs
	Newline      // \n or \r\n
	LineComment  // -- comment
	BlockComment // /* comment */
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	Illegal:      "ILLEGAL",
	Ident:        "IDENT",
	QuotedIdent:  "QUOTED_IDENT",
	Number:       "NUMBER",
	String:       "STRING",
	Symbol:       "SYMBOL",
	Keyword:      "KEYWORD",
	Placeholder:  "PLACEHOLDER",
	Whitespace:   "WHITESPACE",
	Newline:      "NEWLINE",
	LineComment:  "LINE_COMMENT",
	BlockComment: "BLOCK_COMMENT",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsCode returns true for kinds that carry meaning to the parser.
func (k Kind) IsCode() bool {
	switch k {
	case Whitespace, Newline, LineComment, BlockComment, EOF:
		return false
	default:
		return true
	}
}

// IsComment returns true for line and block comments.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// Token represents a lexical token with position information.
type Token struct {
	Kind    Kind
	Raw     string // exact source text
	Keyword string // upper-cased keyword, set only for Keyword tokens
	Pos     Position
}

// IsKeyword reports whether the token is the given keyword (case-insensitive).
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Keyword && t.Keyword == strings.ToUpper(kw)
}

// IsSymbol reports whether the token is the given symbol.
func (t Token) IsSymbol(sym string) bool {
	return t.Kind == Symbol && t.Raw == sym
}

// End returns the position immediately after the token.
func (t Token) End() Position {
	return t.Pos.Advance(t.Raw)
}

// keywords is the set of reserved words recognised by the lexer.
var keywords = map[string]struct{}{
	"ALL": {}, "AND": {}, "AS": {}, "ASC": {}, "BETWEEN": {}, "BY": {},
	"CASE": {}, "CAST": {}, "CROSS": {}, "CURRENT": {}, "DESC": {},
	"DISTINCT": {}, "ELSE": {}, "END": {}, "EXCEPT": {}, "FALSE": {},
	"FETCH": {}, "FILTER": {}, "FIRST": {}, "FOLLOWING": {}, "FROM": {},
	"FULL": {}, "GROUP": {}, "GROUPS": {}, "HAVING": {}, "IN": {},
	"INNER": {}, "INTERSECT": {}, "IS": {}, "JOIN": {}, "LAST": {},
	"LATERAL": {}, "LEFT": {}, "LIKE": {}, "LIMIT": {}, "MINUS": {},
	"NOT": {}, "NULL": {}, "NULLS": {}, "OFFSET": {}, "ON": {}, "OR": {},
	"ORDER": {}, "OUTER": {}, "OVER": {}, "PARTITION": {}, "PRECEDING": {},
	"QUALIFY": {}, "RANGE": {}, "RECURSIVE": {}, "RIGHT": {}, "ROW": {},
	"ROWS": {}, "SELECT": {}, "THEN": {}, "TRUE": {}, "UNBOUNDED": {},
	"UNION": {}, "USING": {}, "VALUES": {}, "WHEN": {}, "WHERE": {},
	"WINDOW": {}, "WITH": {}, "WITHIN": {},
}

// LookupKeyword returns the upper-cased keyword and true if ident is reserved.
func LookupKeyword(ident string) (string, bool) {
	upper := strings.ToUpper(ident)
	if _, ok := keywords[upper]; ok {
		return upper, true
	}
	return "", false
}

// setOperators are the keywords that start a set operator.
var setOperators = map[string]struct{}{
	"UNION":     {},
	"INTERSECT": {},
	"EXCEPT":    {},
	"MINUS":     {},
}

// IsSetOperatorKeyword reports whether kw (upper-cased) starts a set operator.
func IsSetOperatorKeyword(kw string) bool {
	_, ok := setOperators[kw]
	return ok
}

// IsSetQuantifier reports whether kw may follow a set operator keyword.
// MINUS takes no quantifier.
func IsSetQuantifier(operator, kw string) bool {
	if operator == "MINUS" {
		return false
	}
	return kw == "ALL" || kw == "DISTINCT"
}
