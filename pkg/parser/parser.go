// Package parser turns SQL source into a positioned segment tree.
//
// # Usage
//
//	root, err := parser.Parse("SELECT 1 UNION ALL SELECT 2")
//	if err != nil {
//	    // handle error
//	}
//
// The parser is deliberately shallow. It recovers the structure layout
// rules care about and keeps every byte of the input:
//
//	file            → (statement | statement_terminator | non-code)*
//	statement       → set_expression | query_part
//	set_expression  → query_part (set_operator query_part)*
//	set_operator    → UNION [ALL|DISTINCT] | INTERSECT [ALL|DISTINCT]
//	                | EXCEPT [ALL|DISTINCT] | MINUS
//	query_part      → select_statement | with_compound_statement
//	                | values_clause | bracketed | expression
//	bracketed       → "(" (set_expression | query_part | leaf*) ")"
//
// Whitespace, newlines and comments between a query part and a set operator
// belong to the set_expression, never to the part or the operator.
package parser

import (
	"io"
	"log/slog"
	"strings"

	"github.com/CommonCrisis/sqlfluff/pkg/segment"
	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// ParseOptions configures a parse.
type ParseOptions struct {
	Logger *slog.Logger // optional; discards when nil
}

// Parser builds a segment tree from a token stream.
type Parser struct {
	tokens []token.Token
	pos    int
	logger *slog.Logger
}

// NewParser creates a parser for the given SQL input.
func NewParser(sql string, opts ParseOptions) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		tokens: Tokenize(sql),
		logger: logger,
	}
}

// Parse parses sql and returns the root file segment.
func Parse(sql string) (*segment.Segment, error) {
	return ParseWithOptions(sql, ParseOptions{})
}

// ParseWithOptions parses sql with the given options.
func ParseWithOptions(sql string, opts ParseOptions) (*segment.Segment, error) {
	p := NewParser(sql, opts)
	return p.ParseFile()
}

// ParseFile parses the whole token stream into a file segment.
func (p *Parser) ParseFile() (*segment.Segment, error) {
	items, _, err := p.parseItems(nil)
	if err != nil {
		return nil, err
	}

	var children []*segment.Segment
	statements := 0
	chunk := make([]*segment.Segment, 0, len(items))
	flush := func() {
		lead, body, trail := trimNonCode(chunk)
		children = append(children, lead...)
		if len(body) > 0 {
			children = append(children, segment.NewComposite(segment.TypeStatement, buildQuery(body)))
			statements++
		}
		children = append(children, trail...)
		chunk = chunk[:0]
	}

	for _, item := range items {
		if item.Type == segment.TypeSymbol && item.Raw == ";" {
			flush()
			item.Type = segment.TypeStatementTerminator
			children = append(children, item)
			continue
		}
		chunk = append(chunk, item)
	}
	flush()

	root := segment.NewComposite(segment.TypeFile, children...)
	p.logger.Debug("parsed file",
		"statements", statements,
		"set_operators", len(root.Find(segment.TypeSetOperator)),
	)
	return root, nil
}

// next returns the current token and advances.
func (p *Parser) next() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// parseItems converts tokens into leaves, grouping parenthesised regions
// into bracketed segments. When open is non-nil the region ends at the
// matching ")" which is returned as the second result.
func (p *Parser) parseItems(open *segment.Segment) ([]*segment.Segment, *segment.Segment, error) {
	var items []*segment.Segment
	for {
		tok := p.next()
		switch {
		case tok.Kind == token.EOF:
			if open != nil {
				return nil, nil, newError(open.Pos, ErrUnbalancedParen, "unclosed '('")
			}
			return items, nil, nil
		case tok.IsSymbol("("):
			leaf := segment.NewRaw(segment.TypeSymbol, tok)
			inner, closing, err := p.parseItems(leaf)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, buildBracketed(leaf, inner, closing))
		case tok.IsSymbol(")"):
			if open == nil {
				return nil, nil, newError(tok.Pos, ErrUnbalancedParen, "unexpected ')'")
			}
			return items, segment.NewRaw(segment.TypeSymbol, tok), nil
		default:
			items = append(items, segment.NewRaw(leafType(tok), tok))
		}
	}
}

// leafType maps a token kind to a segment type.
func leafType(tok token.Token) string {
	switch tok.Kind {
	case token.Keyword:
		return segment.TypeKeyword
	case token.Ident:
		return segment.TypeIdentifier
	case token.QuotedIdent:
		return segment.TypeQuotedIdentifier
	case token.Number:
		return segment.TypeNumericLiteral
	case token.String:
		return segment.TypeQuotedLiteral
	case token.Symbol:
		return segment.TypeSymbol
	case token.Placeholder:
		return segment.TypePlaceholder
	case token.Whitespace:
		return segment.TypeWhitespace
	case token.Newline:
		return segment.TypeNewline
	case token.LineComment, token.BlockComment:
		return segment.TypeComment
	default:
		return segment.TypeUnparsable
	}
}

// buildBracketed wraps a parenthesised region. Regions holding a query are
// structured like a statement; anything else (function arguments, IN lists)
// stays flat.
func buildBracketed(open *segment.Segment, inner []*segment.Segment, closing *segment.Segment) *segment.Segment {
	children := []*segment.Segment{open}
	lead, body, trail := trimNonCode(inner)
	if len(body) > 0 && isQuery(body) {
		children = append(children, lead...)
		children = append(children, buildQuery(body))
		children = append(children, trail...)
	} else {
		children = append(children, inner...)
	}
	children = append(children, closing)
	return segment.NewComposite(segment.TypeBracketed, children...)
}

// isQuery reports whether items look like a query rather than an expression.
func isQuery(items []*segment.Segment) bool {
	switch keywordOf(items[0]) {
	case "SELECT", "WITH", "VALUES":
		return true
	}
	for _, item := range items {
		if token.IsSetOperatorKeyword(keywordOf(item)) {
			return true
		}
	}
	return false
}

// buildQuery structures a region with no leading or trailing non-code.
func buildQuery(items []*segment.Segment) *segment.Segment {
	var children []*segment.Segment
	var part []*segment.Segment
	hasOperator := false

	flushPart := func() {
		lead, body, trail := trimNonCode(part)
		children = append(children, lead...)
		if len(body) > 0 {
			children = append(children, buildPart(body))
		}
		children = append(children, trail...)
		part = part[:0]
	}

	for i := 0; i < len(items); i++ {
		kw := keywordOf(items[i])
		if !token.IsSetOperatorKeyword(kw) {
			part = append(part, items[i])
			continue
		}
		hasOperator = true
		flushPart()

		end := i
		if j := nextCode(items, i+1); j >= 0 && token.IsSetQuantifier(kw, keywordOf(items[j])) {
			end = j
		}
		children = append(children, segment.NewComposite(segment.TypeSetOperator, items[i:end+1]...))
		i = end
	}

	if !hasOperator {
		return buildPart(items)
	}
	flushPart()
	return segment.NewComposite(segment.TypeSetExpression, children...)
}

// buildPart wraps the items of one query between set operators.
func buildPart(items []*segment.Segment) *segment.Segment {
	if len(items) == 1 && items[0].Type == segment.TypeBracketed {
		return items[0]
	}
	typ := segment.TypeExpression
	switch keywordOf(items[0]) {
	case "SELECT":
		typ = segment.TypeSelectStatement
	case "WITH":
		typ = segment.TypeWithCompoundStatement
	case "VALUES":
		typ = segment.TypeValuesClause
	}
	return segment.NewComposite(typ, items...)
}

// keywordOf returns the upper-cased keyword of a keyword leaf, or "".
func keywordOf(s *segment.Segment) string {
	if s.Type != segment.TypeKeyword {
		return ""
	}
	return strings.ToUpper(s.Raw)
}

// nextCode returns the index of the first code item at or after i, or -1.
func nextCode(items []*segment.Segment, i int) int {
	for ; i < len(items); i++ {
		if items[i].IsCode() {
			return i
		}
	}
	return -1
}

// trimNonCode splits leading and trailing whitespace, newlines and comments
// off items.
func trimNonCode(items []*segment.Segment) (lead, body, trail []*segment.Segment) {
	start := 0
	for start < len(items) && !items[start].IsCode() {
		start++
	}
	end := len(items)
	for end > start && !items[end-1].IsCode() {
		end--
	}
	lead = append(lead, items[:start]...)
	body = append(body, items[start:end]...)
	trail = append(trail, items[end:]...)
	return lead, body, trail
}
