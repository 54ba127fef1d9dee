package parser

import (
	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/name"
	"github.com/raymyers/eopcheck/pkg/value"
)

// expression = and {"||" and}.
func (p *Parser) isExpression(s *value.Stack) bool {
	p.enter()
	defer p.leave()

	return p.isBinary(s, p.orOps, p.isAnd, "and-expression required.")
}

func (p *Parser) requireExpression(s *value.Stack) {
	if !p.isExpression(s) {
		p.throw("expression required.")
	}
}

// and = equality {"&&" equality}.
func (p *Parser) isAnd(s *value.Stack) bool {
	return p.isBinary(s, p.andOps, p.isEquality, "equality-expression required.")
}

// equality = relational {("==" | "!=") relational}.
func (p *Parser) isEquality(s *value.Stack) bool {
	return p.isBinary(s, p.eqOps, p.isRelational, "relational-expression required.")
}

// relational = additive {("<" | ">" | "<=" | ">=") additive}.
func (p *Parser) isRelational(s *value.Stack) bool {
	return p.isBinary(s, p.relOps, p.isAdditive, "additive-expression required.")
}

// additive = multiplicative {("+" | "-") multiplicative}.
func (p *Parser) isAdditive(s *value.Stack) bool {
	return p.isBinary(s, p.addOps, p.isMultiplicative, "multiplicative-expression required.")
}

// multiplicative = unary {("*" | "/" | "%") unary}.
func (p *Parser) isMultiplicative(s *value.Stack) bool {
	return p.isBinary(s, p.mulOps, p.isUnary, "unary-expression required.")
}

// isBinary matches operand {op operand} for one precedence level. Each
// operator is pushed after its right operand, which makes the level left
// associative: a-b-c becomes a b - c -.
func (p *Parser) isBinary(s *value.Stack, ops map[lexer.TokenType]name.Name,
	operand func(*value.Stack) bool, required string) bool {
	if !operand(s) {
		return false
	}
	for {
		op, ok := p.isOperator(ops)
		if !ok {
			return true
		}
		if !operand(s) {
			p.throw(required)
		}
		s.Push(value.Op(op))
	}
}

func (p *Parser) isOperator(ops map[lexer.TokenType]name.Name) (name.Name, bool) {
	tok := p.next()
	if op, ok := ops[tok.Type]; ok {
		return op, true
	}
	p.putback()
	return name.Name{}, false
}

// unary = postfix | (("+" | "-" | "!" | "*" | "const") unary).
//
// Unary plus is accepted but pushes nothing.
func (p *Parser) isUnary(s *value.Stack) bool {
	if p.isPostfix(s) {
		return true
	}
	op, ok := p.isUnaryOperator()
	if !ok {
		return false
	}

	p.enter()
	defer p.leave()

	if !p.isUnary(s) {
		p.throw("unary-expression required.")
	}
	if op != p.ops.add {
		s.Push(value.Op(op))
	}
	return true
}

func (p *Parser) isUnaryOperator() (name.Name, bool) {
	tok := p.next()
	switch tok.Type {
	case lexer.TokenPlus:
		return p.ops.add, true
	case lexer.TokenMinus:
		return p.ops.negate, true
	case lexer.TokenNot:
		return p.ops.not, true
	case lexer.TokenStar:
		return p.ops.deref, true
	case lexer.TokenKeyword:
		if tok.Name == p.kw.const_ {
			return p.ops.const_, true
		}
	}
	p.putback()
	return name.Name{}, false
}

// postfix = primary {("[" expression "]") | ("." identifier)
// | ("(" [expression_list] ")") | "&"}.
//
// Every suffix pushes an apply tag after its operands.
func (p *Parser) isPostfix(s *value.Stack) bool {
	if !p.isPrimary(s) {
		return false
	}
	for {
		switch {
		case p.isToken(lexer.TokenLBracket):
			p.requireExpression(s)
			p.requireToken(lexer.TokenRBracket)
		case p.isToken(lexer.TokenDot):
			s.Push(value.Name(p.requireIdentifier()))
		case p.isToken(lexer.TokenLParen):
			p.isExpressionList(s)
			p.requireToken(lexer.TokenRParen)
		case p.isToken(lexer.TokenAmpersand):
		default:
			return true
		}
		s.Push(value.Op(p.ops.apply))
	}
}

// primary = number | "true" | "false" | string | identifier | "typename"
// | template_name | ("(" expression ")").
func (p *Parser) isPrimary(s *value.Stack) bool {
	tok := p.next()
	switch tok.Type {
	case lexer.TokenNumber, lexer.TokenString, lexer.TokenBool:
		s.Push(tok.Value)
		return true
	case lexer.TokenIdent:
		if !p.registry.Contains(tok.Name) {
			s.Push(tok.Value)
			return true
		}
	case lexer.TokenKeyword:
		if tok.Name == p.kw.typename {
			return true
		}
	}
	p.putback()

	if p.isTemplateName(s) {
		return true
	}
	if p.isToken(lexer.TokenLParen) {
		p.requireExpression(s)
		p.requireToken(lexer.TokenRParen)
		return true
	}
	return false
}

// template_name = struct_name ["<" additive_list ">"].
//
// The argument list is only looked for after names declared inside a
// template. Arguments are additive expressions so that ">" closes the
// list; T<(a==b)> needs the parentheses.
func (p *Parser) isTemplateName(s *value.Stack) bool {
	n, isTemplate, ok := p.isStructName()
	if !ok {
		return false
	}
	s.Push(value.Name(n))
	if !isTemplate || !p.isToken(lexer.TokenLt) {
		return true
	}
	if !p.isAdditiveList() {
		p.throw("additive-expression list required.")
	}
	p.requireToken(lexer.TokenGt)
	return true
}

// additive_list = additive {"," additive}.
func (p *Parser) isAdditiveList() bool {
	p.enter()
	defer p.leave()

	var args value.Stack
	if !p.isAdditive(&args) {
		return false
	}
	for p.isToken(lexer.TokenComma) {
		if !p.isAdditive(&args) {
			p.throw("additive-expression required.")
		}
	}
	return true
}

// expression_list = expression {"," expression}.
//
// The element count and an array marker follow the elements.
func (p *Parser) isExpressionList(s *value.Stack) bool {
	if !p.isExpression(s) {
		return false
	}
	count := 1
	for p.isToken(lexer.TokenComma) {
		p.requireExpression(s)
		count++
	}
	s.Push(value.Count(count), value.Array())
	return true
}
