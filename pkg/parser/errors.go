package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/eopcheck/pkg/lexer"
)

var (
	// ErrNestingDepth is wrapped by the SyntaxError raised when input nests
	// deeper than the parser's limit
	ErrNestingDepth = errors.New("maximum nesting depth exceeded")

	// ErrNameMismatch is wrapped by the SyntaxError raised when a
	// destructor names a struct other than the one being declared
	ErrNameMismatch = errors.New("name mismatch")
)

// SyntaxError is the first syntax error found in the input. It either has
// a free text Msg, or the Expected name that was missing. Found always
// describes the offending token.
type SyntaxError struct {
	Msg      string
	Expected string
	Found    string
	Pos      lexer.Position
	Err      error
}

// Message describes the error without its position
func (e *SyntaxError) Message() string {
	if e.Msg == "" {
		return fmt.Sprintf("expected %q, found %q.", e.Expected, e.Found)
	}
	return fmt.Sprintf("%s Found %q.", e.Msg, e.Found)
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Position returns the source position carried by a syntax or lexical
// error, possibly wrapped
func Position(err error) (lexer.Position, bool) {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr.Pos, true
	}
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return lerr.Pos, true
	}
	return lexer.Position{}, false
}

func (p *Parser) mismatch(expected, found string, pos lexer.Position, err error) {
	p.fail(&SyntaxError{Expected: expected, Found: found, Pos: pos, Err: err})
}
