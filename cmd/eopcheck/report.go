package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/parser"
)

// reportError prints err followed by the offending line of src with a
// caret under the error column
func reportError(w io.Writer, err error, src string) {
	var serr *parser.SyntaxError
	var lerr *lexer.Error
	switch {
	case errors.As(err, &serr):
		fmt.Fprintf(w, "%s: %s\n", serr.Pos, serr.Message())
	case errors.As(err, &lerr):
		fmt.Fprintf(w, "%s: %s\n", lerr.Pos, lerr.Msg)
	default:
		fmt.Fprintf(w, "eopcheck: %v\n", err)
		return
	}

	pos, _ := parser.Position(err)
	line, ok := sourceLine(src, pos.Line)
	if !ok {
		return
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, caret(line, pos.Column))
}

// sourceLine returns the one based line n of src without its newline
func sourceLine(src string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caret returns a marker line pointing at column col of line. Tabs are
// kept so the caret lines up however the terminal expands them.
func caret(line string, col int) string {
	var sb strings.Builder
	for i := 0; i < col-1; i++ {
		if i < len(line) && line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}
