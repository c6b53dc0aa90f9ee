package parser

import (
	"errors"
	"fmt"

	"github.com/CommonCrisis/sqlfluff/pkg/token"
)

// Sentinel errors wrapped by Error.
var (
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")
)

// Error represents a parsing error with position information.
type Error struct {
	Pos     token.Position
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Unwrap returns the sentinel error classifying e.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(pos token.Position, err error, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...), Err: err}
}
