// Package lexer tokenizes expression language source and provides the
// backtracking token stream the parser reads from.
package lexer

import (
	"strconv"
	"strings"

	"github.com/raymyers/eopcheck/pkg/name"
	"github.com/raymyers/eopcheck/pkg/value"
)

// Lexer tokenizes expression language source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character

	start  Position // position of input[0]
	line   int
	column int

	names   *name.Table
	keyword KeywordLookup
	trueN   name.Name
	falseN  name.Name
}

// New creates a new Lexer for the given input. start is the position of
// the first character; a zero Line or Column is treated as 1.
func New(input string, start Position) *Lexer {
	if start.Line == 0 {
		start.Line = 1
	}
	if start.Column == 0 {
		start.Column = 1
	}
	names := name.NewTable()
	l := &Lexer{
		input:  input,
		start:  start,
		line:   start.Line,
		column: start.Column - 1,
		names:  names,
		trueN:  names.Intern("true"),
		falseN: names.Intern("false"),
	}
	l.readChar()
	return l
}

// Names returns the table identifiers and keywords are interned in
func (l *Lexer) Names() *name.Table {
	return l.names
}

// SetKeywordLookup installs the hook deciding which identifiers are
// reserved words. A nil lookup makes every word an identifier.
func (l *Lexer) SetKeywordLookup(lookup KeywordLookup) {
	l.keyword = lookup
}

// Pos returns the position of the current character
func (l *Lexer) Pos() Position {
	return Position{
		File:   l.start.File,
		Offset: l.start.Offset + l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) readChar() {
	if l.pos < len(l.input) && l.readPos > 0 && l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token from the input, including comments
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.Pos()
	if l.atEOF() {
		return Token{Type: TokenEOF, Pos: pos}, nil
	}

	switch l.ch {
	case '+':
		return l.single(TokenPlus, pos), nil
	case '-':
		return l.single(TokenMinus, pos), nil
	case '*':
		return l.single(TokenStar, pos), nil
	case '%':
		return l.single(TokenPercent, pos), nil
	case '/':
		switch l.peekChar() {
		case '/':
			return l.readTrailComment(pos), nil
		case '*':
			return l.readLeadComment(pos)
		}
		return l.single(TokenSlash, pos), nil
	case '=':
		return l.maybeDouble('=', TokenEq, TokenAssign, pos), nil
	case '!':
		return l.maybeDouble('=', TokenNe, TokenNot, pos), nil
	case '<':
		return l.maybeDouble('=', TokenLe, TokenLt, pos), nil
	case '>':
		return l.maybeDouble('=', TokenGe, TokenGt, pos), nil
	case '&':
		return l.maybeDouble('&', TokenAnd, TokenAmpersand, pos), nil
	case '|':
		if l.peekChar() == '|' {
			return l.maybeDouble('|', TokenOr, TokenOr, pos), nil
		}
		return Token{}, &Error{Msg: "unexpected character '|'", Pos: pos}
	case '~':
		return l.single(TokenTilde, pos), nil
	case '(':
		return l.single(TokenLParen, pos), nil
	case ')':
		return l.single(TokenRParen, pos), nil
	case '{':
		return l.single(TokenLBrace, pos), nil
	case '}':
		return l.single(TokenRBrace, pos), nil
	case '[':
		return l.single(TokenLBracket, pos), nil
	case ']':
		return l.single(TokenRBracket, pos), nil
	case ';':
		return l.single(TokenSemicolon, pos), nil
	case ',':
		return l.single(TokenComma, pos), nil
	case ':':
		return l.single(TokenColon, pos), nil
	case '.':
		return l.single(TokenDot, pos), nil
	case '"', '\'':
		return l.readString(pos)
	}

	if isLetter(l.ch) {
		return l.readWord(pos), nil
	}
	if isDigit(l.ch) {
		return l.readNumber(pos)
	}
	return Token{}, &Error{Msg: "unexpected character " + strconv.QuoteRune(rune(l.ch)), Pos: pos}
}

func (l *Lexer) single(t TokenType, pos Position) Token {
	tok := Token{Type: t, Text: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

// maybeDouble returns long if the current character is followed by next,
// short otherwise.
func (l *Lexer) maybeDouble(next byte, long, short TokenType, pos Position) Token {
	if l.peekChar() == next {
		text := string([]byte{l.ch, next})
		l.readChar()
		l.readChar()
		return Token{Type: long, Text: text, Pos: pos}
	}
	return l.single(short, pos)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		l.readChar()
	}
}

func (l *Lexer) readTrailComment(pos Position) Token {
	l.readChar() // consume /
	l.readChar() // consume /
	start := l.pos
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	text := l.input[start:l.pos]
	return Token{Type: TokenTrailComment, Value: value.String(strings.TrimSpace(text)), Text: "//" + text, Pos: pos}
}

func (l *Lexer) readLeadComment(pos Position) (Token, error) {
	l.readChar() // consume /
	l.readChar() // consume *
	start := l.pos
	for {
		if l.atEOF() {
			return Token{}, &Error{Msg: "unterminated comment", Pos: pos}
		}
		if l.ch == '*' && l.peekChar() == '/' {
			break
		}
		l.readChar()
	}
	text := l.input[start:l.pos]
	l.readChar() // consume *
	l.readChar() // consume /
	return Token{Type: TokenLeadComment, Value: value.String(strings.TrimSpace(text)), Text: "/*" + text + "*/", Pos: pos}, nil
}

// readWord reads an identifier, keyword or boolean literal
func (l *Lexer) readWord(pos Position) Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	n := l.names.Intern(text)

	switch {
	case n == l.trueN:
		return Token{Type: TokenBool, Value: value.Bool(true), Text: text, Pos: pos}
	case n == l.falseN:
		return Token{Type: TokenBool, Value: value.Bool(false), Text: text, Pos: pos}
	case l.keyword != nil && l.keyword(n):
		return Token{Type: TokenKeyword, Name: n, Value: value.Name(n), Text: text, Pos: pos}
	}
	return Token{Type: TokenIdent, Name: n, Value: value.Name(n), Text: text, Pos: pos}
}

// readNumber reads digits with an optional fraction and exponent
func (l *Lexer) readNumber(pos Position) (Token, error) {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return Token{}, &Error{Msg: "malformed exponent", Pos: l.Pos()}
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	text := l.input[start:l.pos]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &Error{Msg: "invalid number " + text, Pos: pos}
	}
	return Token{Type: TokenNumber, Value: value.Number(f), Text: text, Pos: pos}, nil
}

func (l *Lexer) readString(pos Position) (Token, error) {
	quote := l.ch
	start := l.pos
	l.readChar() // consume opening quote

	var sb strings.Builder
	for l.ch != quote {
		if l.atEOF() {
			return Token{}, &Error{Msg: "unterminated string", Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEOF() {
				return Token{}, &Error{Msg: "unterminated string", Pos: pos}
			}
			sb.WriteByte(unescape(l.ch))
		} else {
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return Token{Type: TokenString, Value: value.String(sb.String()), Text: l.input[start:l.pos], Pos: pos}, nil
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return ch
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
