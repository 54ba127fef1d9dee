package lexer

// Mark is a saved stream position, see Stream.Mark
type Mark int

// Stream is the token cursor the parser reads from. Tokens are lexed
// lazily and kept, so the cursor can be moved back with Putback (one
// token) or Reset (any earlier Mark).
type Stream struct {
	lex     *Lexer
	toks    []Token
	cur     int // index of the next unconsumed token
	err     error
	bypass  bool
	putback bool // the last operation was a Next that may be undone
}

// NewStream creates a stream over l with comment bypass enabled
func NewStream(l *Lexer) *Stream {
	return &Stream{lex: l, bypass: true}
}

// Lexer returns the underlying lexer
func (s *Stream) Lexer() *Lexer {
	return s.lex
}

// SetCommentBypass controls whether comment tokens are dropped. It only
// affects tokens that have not been lexed yet.
func (s *Stream) SetCommentBypass(bypass bool) {
	s.bypass = bypass
}

// SetKeywordLookup forwards the keyword extension hook to the lexer
func (s *Stream) SetKeywordLookup(lookup KeywordLookup) {
	s.lex.SetKeywordLookup(lookup)
}

// fill lexes one more token onto the buffer. After EOF every call appends
// another EOF so the end of input can be read any number of times.
func (s *Stream) fill() error {
	if s.err != nil {
		return s.err
	}
	if n := len(s.toks); n > 0 && s.toks[n-1].Type == TokenEOF {
		s.toks = append(s.toks, s.toks[n-1])
		return nil
	}
	for {
		tok, err := s.lex.NextToken()
		if err != nil {
			s.err = err
			return err
		}
		if s.bypass && (tok.Type == TokenLeadComment || tok.Type == TokenTrailComment) {
			continue
		}
		s.toks = append(s.toks, tok)
		return nil
	}
}

// Next consumes and returns the next token
func (s *Stream) Next() (Token, error) {
	if s.cur == len(s.toks) {
		if err := s.fill(); err != nil {
			s.putback = false
			return Token{}, err
		}
	}
	tok := s.toks[s.cur]
	s.cur++
	s.putback = true
	return tok, nil
}

// Putback un-consumes the token returned by the last Next. It fails with
// ErrDoublePutback if called twice without an intervening Next.
func (s *Stream) Putback() error {
	if !s.putback {
		return ErrDoublePutback
	}
	s.cur--
	s.putback = false
	return nil
}

// Position returns where the next unconsumed token begins. If that token
// cannot be lexed it returns the lexer's current position.
func (s *Stream) Position() Position {
	if s.cur == len(s.toks) {
		if err := s.fill(); err != nil {
			if lerr, ok := err.(*Error); ok {
				return lerr.Pos
			}
			return s.lex.Pos()
		}
	}
	return s.toks[s.cur].Pos
}

// Mark saves the current position for a later Reset
func (s *Stream) Mark() Mark {
	return Mark(s.cur)
}

// Reset moves the cursor back to m. Tokens read after m will be returned
// again by Next.
func (s *Stream) Reset(m Mark) {
	s.cur = int(m)
	s.putback = false
}
