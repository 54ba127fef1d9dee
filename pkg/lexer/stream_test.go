package lexer

import (
	"errors"
	"testing"
)

func TestStreamPutback(t *testing.T) {
	s := NewStream(New("a b", Position{}))

	a, _ := s.Next()
	if err := s.Putback(); err != nil {
		t.Fatalf("unexpected putback error: %v", err)
	}
	if err := s.Putback(); !errors.Is(err, ErrDoublePutback) {
		t.Fatalf("expected ErrDoublePutback, got %v", err)
	}
	again, _ := s.Next()
	if again.Name != a.Name {
		t.Errorf("expected %q after putback, got %q", a.Text, again.Text)
	}
}

func TestStreamPutbackAtStart(t *testing.T) {
	s := NewStream(New("a", Position{}))
	if err := s.Putback(); !errors.Is(err, ErrDoublePutback) {
		t.Fatalf("expected ErrDoublePutback, got %v", err)
	}
}

func TestStreamEOFRepeats(t *testing.T) {
	s := NewStream(New("x", Position{}))
	s.Next()
	for i := 0; i < 3; i++ {
		tok, err := s.Next()
		if err != nil || tok.Type != TokenEOF {
			t.Fatalf("read %d: expected EOF, got %v (%v)", i, tok.Type, err)
		}
	}
	if err := s.Putback(); err != nil {
		t.Fatalf("putback after EOF: %v", err)
	}
	tok, _ := s.Next()
	if tok.Type != TokenEOF {
		t.Errorf("expected EOF after putback, got %v", tok.Type)
	}
}

func TestStreamPositionAndMark(t *testing.T) {
	s := NewStream(New("one two three", Position{}))

	if p := s.Position(); p.Column != 1 {
		t.Fatalf("expected column 1, got %s", p)
	}
	m := s.Mark()
	s.Next()
	s.Next()
	if p := s.Position(); p.Column != 9 {
		t.Fatalf("expected column 9, got %s", p)
	}
	s.Reset(m)
	if p := s.Position(); p.Column != 1 {
		t.Fatalf("after reset expected column 1, got %s", p)
	}
	if err := s.Putback(); !errors.Is(err, ErrDoublePutback) {
		t.Errorf("putback after reset should fail, got %v", err)
	}
	tok, _ := s.Next()
	if tok.Text != "one" {
		t.Errorf("expected one after reset, got %q", tok.Text)
	}
}

func TestStreamCommentBypass(t *testing.T) {
	s := NewStream(New("/* c */ x // d", Position{}))
	tok, _ := s.Next()
	if tok.Type != TokenIdent {
		t.Fatalf("expected comments to be skipped, got %v", tok.Type)
	}

	s = NewStream(New("/* c */ x", Position{}))
	s.SetCommentBypass(false)
	tok, _ = s.Next()
	if tok.Type != TokenLeadComment {
		t.Fatalf("expected lead comment with bypass off, got %v", tok.Type)
	}
}

func TestStreamLexicalErrorIsSticky(t *testing.T) {
	s := NewStream(New("a $", Position{}))
	s.Next()
	_, err1 := s.Next()
	_, err2 := s.Next()
	if err1 == nil || err1 != err2 {
		t.Fatalf("expected the same lexical error twice, got %v and %v", err1, err2)
	}
	if p := s.Position(); p.Column != 3 {
		t.Errorf("expected error position column 3, got %s", p)
	}
}
