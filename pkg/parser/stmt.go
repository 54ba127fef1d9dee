package parser

import (
	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/value"
)

// statement = [identifier ":"] (expr_statement | return | typedef | if
// | while | do | compound | switch | goto).
//
// The label needs two tokens of lookahead; once the colon is seen a
// statement must follow.
func (p *Parser) isStatement() bool {
	p.enter()
	defer p.leave()

	labeled := false
	m := p.ts.Mark()
	if p.isIdentifier() {
		if p.isToken(lexer.TokenColon) {
			labeled = true
		} else {
			p.ts.Reset(m)
		}
	}

	if p.isExprStatement() || p.isReturn() || p.isTypedef() || p.isIf() ||
		p.isWhile() || p.isDo() || p.isCompound() || p.isSwitch() || p.isGoto() {
		return true
	}
	if labeled {
		p.throw("statement required.")
	}
	return false
}

// expr_statement = expression [("=" expression) | construction] ";".
func (p *Parser) isExprStatement() bool {
	if !p.isExpr() {
		return false
	}
	if !p.isAssignment() {
		p.isConstruction()
	}
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// assignment = "=" expression.
func (p *Parser) isAssignment() bool {
	if !p.isToken(lexer.TokenAssign) {
		return false
	}
	p.requireExpr()
	return true
}

// construction = identifier [("(" expression_list ")") | assignment | ("[" expression "]")].
func (p *Parser) isConstruction() bool {
	if !p.isIdentifier() {
		return false
	}
	switch {
	case p.isToken(lexer.TokenLParen):
		if !p.isExprList() {
			p.throw("expression list required.")
		}
		p.requireToken(lexer.TokenRParen)
	case p.isAssignment():
	case p.isToken(lexer.TokenLBracket):
		p.requireExpr()
		p.requireToken(lexer.TokenRBracket)
	}
	return true
}

// return = "return" [expression] ";".
func (p *Parser) isReturn() bool {
	if !p.isKeyword(p.kw.return_) {
		return false
	}
	p.isExpr()
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// typedef = "typedef" expression identifier ";".
func (p *Parser) isTypedef() bool {
	if !p.isKeyword(p.kw.typedef) {
		return false
	}
	p.requireExpr()
	p.requireIdentifier()
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// if = "if" "(" expression ")" statement ["else" statement].
func (p *Parser) isIf() bool {
	if !p.isKeyword(p.kw.if_) {
		return false
	}
	p.requireCondition()
	p.requireStatement()
	if p.isKeyword(p.kw.else_) {
		p.requireStatement()
	}
	return true
}

// while = "while" "(" expression ")" statement.
func (p *Parser) isWhile() bool {
	if !p.isKeyword(p.kw.while_) {
		return false
	}
	p.requireCondition()
	p.requireStatement()
	return true
}

// do = "do" statement "while" "(" expression ")" ";".
func (p *Parser) isDo() bool {
	if !p.isKeyword(p.kw.do) {
		return false
	}
	p.requireStatement()
	p.requireKeyword(p.kw.while_)
	p.requireCondition()
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// compound = "{" {statement} "}".
func (p *Parser) isCompound() bool {
	if !p.isToken(lexer.TokenLBrace) {
		return false
	}
	for p.isStatement() {
	}
	p.requireToken(lexer.TokenRBrace)
	return true
}

// switch = "switch" "(" expression ")" "{" {case} "}".
func (p *Parser) isSwitch() bool {
	if !p.isKeyword(p.kw.switch_) {
		return false
	}
	p.requireCondition()
	p.requireToken(lexer.TokenLBrace)
	for p.isCase() {
	}
	p.requireToken(lexer.TokenRBrace)
	return true
}

// case = "case" expression ":" {statement}.
func (p *Parser) isCase() bool {
	if !p.isKeyword(p.kw.case_) {
		return false
	}
	p.requireExpr()
	p.requireToken(lexer.TokenColon)
	for p.isStatement() {
	}
	return true
}

// goto = "goto" identifier ";".
func (p *Parser) isGoto() bool {
	if !p.isKeyword(p.kw.goto_) {
		return false
	}
	p.requireIdentifier()
	p.requireToken(lexer.TokenSemicolon)
	return true
}

func (p *Parser) requireStatement() {
	if !p.isStatement() {
		p.throw("statement required.")
	}
}

// requireCondition matches "(" expression ")"
func (p *Parser) requireCondition() {
	p.requireToken(lexer.TokenLParen)
	p.requireExpr()
	p.requireToken(lexer.TokenRParen)
}

// isExpr matches an expression that stands on its own, such as a
// statement, a parameter type or a condition, and passes its stack to
// the expression hook
func (p *Parser) isExpr() bool {
	pos := p.ts.Position()
	var s value.Stack
	if !p.isExpression(&s) {
		return false
	}
	p.report(pos, s)
	return true
}

func (p *Parser) requireExpr() {
	if !p.isExpr() {
		p.throw("expression required.")
	}
}

// isExprList matches an expression list on its own stack
func (p *Parser) isExprList() bool {
	pos := p.ts.Position()
	var s value.Stack
	if !p.isExpressionList(&s) {
		return false
	}
	p.report(pos, s)
	return true
}
