package lexer

import (
	"errors"
	"testing"

	"github.com/raymyers/eopcheck/pkg/name"
)

func TestNextToken(t *testing.T) {
	input := `int f() { return 42; }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "int"},
		{TokenIdent, "f"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenIdent, "return"},
		{TokenNumber, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := New(input, Position{})

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Text != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Text)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & ~ ( ) [ ] { } , ; : .`

	expected := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenAssign, TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe,
		TokenAnd, TokenOr, TokenNot, TokenAmpersand, TokenTilde,
		TokenLParen, TokenRParen, TokenLBracket, TokenRBracket,
		TokenLBrace, TokenRBrace, TokenComma, TokenSemicolon, TokenColon, TokenDot,
		TokenEOF,
	}

	l := New(input, Position{})
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, want, tok.Type)
		}
	}
}

func TestLiterals(t *testing.T) {
	l := New(`3.25 1e3 "a\"b" 'c\n' true false`, Position{})

	tok, _ := l.NextToken()
	if tok.Type != TokenNumber || tok.Value.Number() != 3.25 {
		t.Errorf("expected number 3.25, got %v %v", tok.Type, tok.Value)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenNumber || tok.Value.Number() != 1000 {
		t.Errorf("expected number 1000, got %v %v", tok.Type, tok.Value)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenString || tok.Value.Str() != `a"b` {
		t.Errorf("expected string a\"b, got %v %q", tok.Type, tok.Value.Str())
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenString || tok.Value.Str() != "c\n" {
		t.Errorf("expected string c\\n, got %v %q", tok.Type, tok.Value.Str())
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenBool || !tok.Value.Bool() {
		t.Errorf("expected true, got %v %v", tok.Type, tok.Value)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenBool || tok.Value.Bool() {
		t.Errorf("expected false, got %v %v", tok.Type, tok.Value)
	}
}

func TestKeywordLookup(t *testing.T) {
	l := New(`struct foo`, Position{})
	structN := l.Names().Intern("struct")
	l.SetKeywordLookup(func(n name.Name) bool { return n == structN })

	tok, _ := l.NextToken()
	if tok.Type != TokenKeyword || tok.Name != structN {
		t.Errorf("expected keyword struct, got %v %q", tok.Type, tok.Text)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenIdent || tok.Name.String() != "foo" {
		t.Errorf("expected identifier foo, got %v %q", tok.Type, tok.Text)
	}
}

func TestComments(t *testing.T) {
	l := New("/* lead */ x // trail\ny", Position{})

	tok, _ := l.NextToken()
	if tok.Type != TokenLeadComment || tok.Value.Str() != "lead" {
		t.Errorf("expected lead comment, got %v %q", tok.Type, tok.Value.Str())
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenIdent {
		t.Errorf("expected identifier, got %v", tok.Type)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenTrailComment || tok.Value.Str() != "trail" {
		t.Errorf("expected trail comment, got %v %q", tok.Type, tok.Value.Str())
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenIdent || tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Errorf("expected identifier at 2:1, got %v at %s", tok.Type, tok.Pos)
	}
}

func TestPositions(t *testing.T) {
	l := New("a\n  bc", Position{File: "x.eop", Line: 10})

	tok, _ := l.NextToken()
	if tok.Pos.Line != 10 || tok.Pos.Column != 1 || tok.Pos.Offset != 0 {
		t.Errorf("a: expected 10:1 offset 0, got %s offset %d", tok.Pos, tok.Pos.Offset)
	}
	tok, _ = l.NextToken()
	if tok.Pos.Line != 11 || tok.Pos.Column != 3 || tok.Pos.Offset != 4 {
		t.Errorf("bc: expected 11:3 offset 4, got %s offset %d", tok.Pos, tok.Pos.Offset)
	}
	if tok.Pos.String() != "x.eop:11:3" {
		t.Errorf("String: expected x.eop:11:3, got %s", tok.Pos)
	}
	tok, _ = l.NextToken()
	if tok.Type != TokenEOF || tok.Pos.Column != 5 {
		t.Errorf("EOF: expected column 5, got %s", tok.Pos)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{`"abc`, "unterminated string"},
		{`/* abc`, "unterminated comment"},
		{`a | b`, "unexpected character '|'"},
		{`#`, "unexpected character '#'"},
		{`1e+`, "malformed exponent"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input, Position{})
			var err error
			for i := 0; i < 5 && err == nil; i++ {
				var tok Token
				tok, err = l.NextToken()
				if tok.Type == TokenEOF && err == nil {
					break
				}
			}
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if lerr.Msg != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, lerr.Msg)
			}
		})
	}
}
