// Package parser implements a trial-match recursive descent parser for the
// expression language.
//
// Every production is a method that either matches, consuming exactly its
// tokens, or does not match and leaves the token stream where it found it.
// Once a production has seen enough to be sure, a missing piece is a
// *SyntaxError that aborts the whole parse. Commit-time errors unwind the
// Go stack with a private panic value that Parse turns back into an error.
package parser

import (
	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/name"
	"github.com/raymyers/eopcheck/pkg/value"
)

// DefaultMaxDepth bounds declaration, statement and expression nesting
const DefaultMaxDepth = 1000

// Expression is a complete expression seen during the parse, with the
// position of its first token
type Expression struct {
	Pos   lexer.Position
	Stack value.Stack
}

// Option configures a Parser
type Option func(*Parser)

// WithMaxDepth sets the nesting limit; zero or less disables it
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// WithKeywords reserves additional words
func WithKeywords(words ...string) Option {
	return func(p *Parser) {
		for _, w := range words {
			p.reserved[p.names.Intern(w)] = true
		}
	}
}

// WithNestedMembers enables friend declarations, member templates and
// nested structs inside struct bodies
func WithNestedMembers(on bool) Option {
	return func(p *Parser) { p.nested = on }
}

// WithExpressionHook calls fn for every complete expression
func WithExpressionHook(fn func(Expression)) Option {
	return func(p *Parser) { p.hook = fn }
}

// keywords holds the interned reserved words the grammar refers to
type keywords struct {
	template, typename, requires, const_, return_, struct_, operator,
	typedef, if_, else_, while_, bitand, friend, do, enum, case_,
	switch_, goto_ name.Name
}

// operators holds the interned operator tags pushed onto expression stacks
type operators struct {
	or, and, eq, ne, lt, gt, le, ge, add, sub, mul, div, mod name.Name

	negate, not, deref, const_, apply name.Name
}

// Parser checks one translation unit. It is not safe for concurrent use.
type Parser struct {
	ts       *lexer.Stream
	names    *name.Table
	registry *Registry
	kw       keywords
	ops      operators
	reserved map[name.Name]bool

	// operator tables for the binary precedence levels
	orOps, andOps, eqOps, relOps, addOps, mulOps map[lexer.TokenType]name.Name

	maxDepth int
	depth    int
	nested   bool
	hook     func(Expression)
}

// New creates a Parser reading from l
func New(l *lexer.Lexer, opts ...Option) *Parser {
	names := l.Names()
	p := &Parser{
		ts:       lexer.NewStream(l),
		names:    names,
		registry: NewRegistry(),
		reserved: make(map[name.Name]bool),
		maxDepth: DefaultMaxDepth,
	}

	in := names.Intern
	p.kw = keywords{
		template: in("template"), typename: in("typename"), requires: in("requires"),
		const_: in("const"), return_: in("return"), struct_: in("struct"),
		operator: in("operator"), typedef: in("typedef"), if_: in("if"),
		else_: in("else"), while_: in("while"), bitand: in("bitand"),
		friend: in("friend"), do: in("do"), enum: in("enum"), case_: in("case"),
		switch_: in("switch"), goto_: in("goto"),
	}
	for _, k := range []name.Name{
		p.kw.template, p.kw.typename, p.kw.requires, p.kw.const_, p.kw.return_,
		p.kw.struct_, p.kw.operator, p.kw.typedef, p.kw.if_, p.kw.else_,
		p.kw.while_, p.kw.bitand, p.kw.friend, p.kw.do, p.kw.enum, p.kw.case_,
		p.kw.switch_, p.kw.goto_,
	} {
		p.reserved[k] = true
	}

	p.ops = operators{
		or: in("||"), and: in("&&"), eq: in("=="), ne: in("!="),
		lt: in("<"), gt: in(">"), le: in("<="), ge: in(">="),
		add: in("+"), sub: in("-"), mul: in("*"), div: in("/"), mod: in("%"),
		negate: in(value.TagNegate), not: in("!"), deref: in(value.TagDereference),
		const_: in("const"), apply: in(value.TagApply),
	}
	p.orOps = map[lexer.TokenType]name.Name{lexer.TokenOr: p.ops.or}
	p.andOps = map[lexer.TokenType]name.Name{lexer.TokenAnd: p.ops.and}
	p.eqOps = map[lexer.TokenType]name.Name{lexer.TokenEq: p.ops.eq, lexer.TokenNe: p.ops.ne}
	p.relOps = map[lexer.TokenType]name.Name{
		lexer.TokenLt: p.ops.lt, lexer.TokenGt: p.ops.gt,
		lexer.TokenLe: p.ops.le, lexer.TokenGe: p.ops.ge,
	}
	p.addOps = map[lexer.TokenType]name.Name{lexer.TokenPlus: p.ops.add, lexer.TokenMinus: p.ops.sub}
	p.mulOps = map[lexer.TokenType]name.Name{
		lexer.TokenStar: p.ops.mul, lexer.TokenSlash: p.ops.div, lexer.TokenPercent: p.ops.mod,
	}

	for _, opt := range opts {
		opt(p)
	}
	p.ts.SetKeywordLookup(func(n name.Name) bool { return p.reserved[n] })
	return p
}

// Registry returns the names declared so far
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Names returns the interning table shared with the lexer
func (p *Parser) Names() *name.Table {
	return p.names
}

// Stream returns the token stream the parser reads from
func (p *Parser) Stream() *lexer.Stream {
	return p.ts
}

// Parse checks the whole input as one translation unit
//
//	translation_unit = {declaration} eof.
func (p *Parser) Parse() (err error) {
	defer p.catch(&err)

	for p.isDeclaration(false) {
	}
	p.requireToken(lexer.TokenEOF)
	return nil
}

// ParseExpression parses a single expression that must span the whole
// input and returns its postfix stack
func (p *Parser) ParseExpression() (stack value.Stack, err error) {
	defer func() {
		if err != nil {
			stack = nil
		}
	}()
	defer p.catch(&err)

	p.requireExpression(&stack)
	p.requireToken(lexer.TokenEOF)
	return stack, nil
}

// LeadComment matches a /* */ comment token. Comments only reach the
// parser when the stream's comment bypass is off.
func (p *Parser) LeadComment() (text string, ok bool, err error) {
	defer p.catch(&err)
	text, ok = p.isComment(lexer.TokenLeadComment)
	return text, ok, nil
}

// TrailComment matches a // comment token
func (p *Parser) TrailComment() (text string, ok bool, err error) {
	defer p.catch(&err)
	text, ok = p.isComment(lexer.TokenTrailComment)
	return text, ok, nil
}

func (p *Parser) isComment(t lexer.TokenType) (string, bool) {
	tok := p.next()
	if tok.Type == t {
		return tok.Value.Str(), true
	}
	p.putback()
	return "", false
}

// bailout carries a commit-time error up to Parse
type bailout struct {
	err error
}

func (p *Parser) fail(err error) {
	panic(bailout{err})
}

func (p *Parser) catch(errp *error) {
	if e := recover(); e != nil {
		b, ok := e.(bailout)
		if !ok {
			panic(e)
		}
		*errp = b.err
	}
}

func (p *Parser) enter() {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		tok := p.next()
		p.putback()
		p.fail(&SyntaxError{Msg: "nesting too deep.", Found: tok.String(), Pos: tok.Pos, Err: ErrNestingDepth})
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) report(pos lexer.Position, s value.Stack) {
	if p.hook != nil {
		p.hook(Expression{Pos: pos, Stack: s})
	}
}

// next consumes a token; lexical errors abort the parse unchanged
func (p *Parser) next() lexer.Token {
	tok, err := p.ts.Next()
	if err != nil {
		p.fail(err)
	}
	return tok
}

// putback undoes the last next. A failure here is a bug in the parser,
// not in the input.
func (p *Parser) putback() {
	if err := p.ts.Putback(); err != nil {
		panic(err)
	}
}

func (p *Parser) isToken(t lexer.TokenType) bool {
	if p.next().Type == t {
		return true
	}
	p.putback()
	return false
}

func (p *Parser) isKeyword(k name.Name) bool {
	tok := p.next()
	if tok.Type == lexer.TokenKeyword && tok.Name == k {
		return true
	}
	p.putback()
	return false
}

func (p *Parser) requireToken(t lexer.TokenType) {
	tok := p.next()
	if tok.Type == t {
		return
	}
	p.putback()
	p.fail(&SyntaxError{Expected: t.String(), Found: tok.String(), Pos: tok.Pos})
}

func (p *Parser) requireKeyword(k name.Name) {
	tok := p.next()
	if tok.Type == lexer.TokenKeyword && tok.Name == k {
		return
	}
	p.putback()
	p.fail(&SyntaxError{Expected: k.String(), Found: tok.String(), Pos: tok.Pos})
}

// throw reports msg at the next token
func (p *Parser) throw(msg string) {
	tok := p.next()
	p.putback()
	p.fail(&SyntaxError{Msg: msg, Found: tok.String(), Pos: tok.Pos})
}

// isIdentifierName matches an identifier that is not a declared name
func (p *Parser) isIdentifierName() (name.Name, bool) {
	tok := p.next()
	if tok.Type == lexer.TokenIdent && !p.registry.Contains(tok.Name) {
		return tok.Name, true
	}
	p.putback()
	return name.Name{}, false
}

func (p *Parser) isIdentifier() bool {
	_, ok := p.isIdentifierName()
	return ok
}

func (p *Parser) requireIdentifier() name.Name {
	n, ok := p.isIdentifierName()
	if !ok {
		p.throw("identifier required.")
	}
	return n
}

// isStructName matches an identifier that is a declared name
//
//	struct_name = identifier.
func (p *Parser) isStructName() (n name.Name, isTemplate bool, ok bool) {
	tok := p.next()
	if tok.Type == lexer.TokenIdent {
		if isTemplate, found := p.registry.Lookup(tok.Name); found {
			return tok.Name, isTemplate, true
		}
	}
	p.putback()
	return name.Name{}, false, false
}
