package parser

import (
	"strings"
	"unicode"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// multiCharSymbols are matched before single character symbols, longest first.
var multiCharSymbols = []string{"::", "<>", "!=", "<=", ">=", "||", "->", "=>"}

// Lexer tokenizes SQL input without dropping anything: whitespace, newlines
// and comments are emitted as tokens so the token stream reproduces the
// input byte for byte.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
// The line counter moves on the character after a newline, so a newline
// token is positioned at the end of the line it terminates.
func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.readPos > 0 && l.input[l.pos] == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}
	start := l.pos

	kind := l.scan()
	tok := token.Token{Kind: kind, Raw: l.input[start:l.pos], Pos: pos}
	if kind == token.Ident {
		if kw, ok := token.LookupKeyword(tok.Raw); ok {
			tok.Kind = token.Keyword
			tok.Keyword = kw
		}
	}
	return tok
}

// scan consumes one token and returns its kind.
func (l *Lexer) scan() token.Kind {
	switch {
	case l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v':
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v' {
			l.readChar()
		}
		return token.Whitespace
	case l.ch == '\n':
		l.readChar()
		return token.Newline
	case l.ch == '\r':
		l.readChar()
		if l.ch == '\n' {
			l.readChar()
			return token.Newline
		}
		return token.Whitespace
	case l.ch == '-' && l.peekChar() == '-':
		l.skipLineComment()
		return token.LineComment
	case l.ch == '#' && l.peekChar() != '>':
		l.skipLineComment()
		return token.LineComment
	case l.ch == '/' && l.peekChar() == '*':
		if !l.skipBlockComment() {
			return token.Illegal
		}
		return token.BlockComment
	case l.ch == '{' && (l.peekChar() == '{' || l.peekChar() == '%' || l.peekChar() == '#'):
		if !l.skipPlaceholder() {
			return token.Illegal
		}
		return token.Placeholder
	case l.ch == '\'':
		if !l.skipQuoted('\'') {
			return token.Illegal
		}
		return token.String
	case l.ch == '"' || l.ch == '`':
		if !l.skipQuoted(l.ch) {
			return token.Illegal
		}
		return token.QuotedIdent
	case isLetter(l.ch) || l.ch == '_':
		l.readIdentifier()
		return token.Ident
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber()
		return token.Number
	}

	rest := l.input[l.pos:]
	for _, sym := range multiCharSymbols {
		if strings.HasPrefix(rest, sym) {
			for range sym {
				l.readChar()
			}
			return token.Symbol
		}
	}

	if strings.IndexByte("+-*/%=<>.,;()[]:!|&^~?@$", l.ch) >= 0 {
		l.readChar()
		return token.Symbol
	}

	l.readChar()
	return token.Illegal
}

// skipLineComment consumes up to, but not including, the end of line.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && !l.atEOF() {
		if l.ch == '\r' && l.peekChar() == '\n' {
			return
		}
		l.readChar()
	}
}

// skipBlockComment consumes a /* ... */ comment.
// Returns false if the comment is unterminated.
func (l *Lexer) skipBlockComment() bool {
	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			return true
		}
		l.readChar()
	}
	return false
}

// skipQuoted consumes a quoted string or identifier.
// Doubled quotes are escapes: 'it''s'. Returns false if unterminated.
func (l *Lexer) skipQuoted(quote byte) bool {
	l.readChar() // skip opening quote
	for !l.atEOF() {
		if l.ch == quote {
			if l.peekChar() == quote {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			return true
		}
		l.readChar()
	}
	return false
}

// skipPlaceholder consumes a {{ ... }}, {% ... %} or {# ... #} template tag.
// Returns false if the tag is unterminated.
func (l *Lexer) skipPlaceholder() bool {
	var closing byte
	switch l.peekChar() {
	case '{':
		closing = '}'
	default:
		closing = l.peekChar()
	}
	l.readChar()
	l.readChar()

	for !l.atEOF() {
		if l.ch == closing && l.peekChar() == '}' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' {
		l.readChar()
	}
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() {
	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
}

// isLetter returns true if ch is a letter. Bytes of multi-byte UTF-8
// sequences are treated as letters so non-ASCII identifiers stay whole.
func isLetter(ch byte) bool {
	return ch >= 0x80 || unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with an EOF token.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}
