package lexer

import (
	"errors"
	"fmt"
)

// ErrDoublePutback is returned by Stream.Putback when there is no token to
// put back, either because nothing was read or because the last token was
// already put back.
var ErrDoublePutback = errors.New("putback without an intervening next")

// Error is a lexical error at a source position
type Error struct {
	Msg string
	Pos Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
