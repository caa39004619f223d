package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedStartTag     = errors.New("unterminated start tag")
	ErrMissingCloseTag          = errors.New("element missing close tag")
	ErrUnterminatedCloseTag     = errors.New("unterminated close tag")
	ErrUnterminatedComment      = errors.New("unterminated html comment")
	ErrUnterminatedParens       = errors.New("unterminated parentheses")
	ErrUnterminatedString       = errors.New("unterminated string")
	ErrUnterminatedBlockComment = errors.New("unterminated block comment")
	ErrMissingDirectiveName     = errors.New("directive must have a name")
	ErrMalformedDirective       = errors.New("unrecognized directive, must have form @foo:bar = ... or @foo(...)")
	ErrEmptyEmbeddedCode        = errors.New("expected embedded code")
	ErrTooDeep                  = errors.New("nesting too deep")
)

// SyntaxError is returned for every malformed input. Err is one of the
// sentinel errors above. Line and Column are 1-based.
type SyntaxError struct {
	Err     error
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
