package lexer

import (
	"fmt"

	"github.com/raymyers/eopcheck/pkg/name"
	"github.com/raymyers/eopcheck/pkg/value"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Words and literals
	TokenIdent   // foo
	TokenKeyword // struct, template, ...
	TokenNumber  // 42, 1.5e3
	TokenString  // "hello", 'hello'
	TokenBool    // true, false

	// Comments, only seen with comment bypass disabled
	TokenLeadComment  // /* ... */
	TokenTrailComment // // ...

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenTilde     // ~

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenColon     // :
	TokenDot       // .
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenIdent:        "identifier",
	TokenKeyword:      "keyword",
	TokenNumber:       "number",
	TokenString:       "string",
	TokenBool:         "boolean",
	TokenLeadComment:  "lead_comment",
	TokenTrailComment: "trail_comment",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenAssign:       "=",
	TokenEq:           "==",
	TokenNe:           "!=",
	TokenLt:           "<",
	TokenLe:           "<=",
	TokenGt:           ">",
	TokenGe:           ">=",
	TokenAnd:          "&&",
	TokenOr:           "||",
	TokenNot:          "!",
	TokenAmpersand:    "&",
	TokenTilde:        "~",
	TokenLParen:       "(",
	TokenRParen:       ")",
	TokenLBrace:       "{",
	TokenRBrace:       "}",
	TokenLBracket:     "[",
	TokenRBracket:     "]",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenColon:        ":",
	TokenDot:          ".",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position is a location in the source text. Offset is zero based,
// Line and Column are one based.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token represents a lexical token.
// Name is set for identifiers and keywords; Value carries the payload of
// literals and the name of identifiers and keywords.
type Token struct {
	Type  TokenType
	Name  name.Name
	Value value.Value
	Text  string
	Pos   Position
}

// String describes the token for error messages
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIdent, TokenKeyword, TokenNumber, TokenBool:
		return t.Text
	case TokenString:
		return fmt.Sprintf("%q", t.Value.Str())
	}
	return t.Type.String()
}

// KeywordLookup reports whether an identifier should be treated as a keyword
type KeywordLookup func(name.Name) bool
