package parser

import (
	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/name"
	"github.com/raymyers/eopcheck/pkg/value"
)

// declaration = function | struct | enum | template.
func (p *Parser) isDeclaration(inTemplate bool) bool {
	p.enter()
	defer p.leave()

	return p.isFunction(inTemplate) || p.isStruct(inTemplate, false) ||
		p.isEnum() || p.isTemplate()
}

// template = template_decl declaration.
func (p *Parser) isTemplate() bool {
	if !p.isTemplateDecl() {
		return false
	}
	if !p.isDeclaration(true) {
		p.throw("declaration required.")
	}
	return true
}

// template_decl = "template" "<" [parameter_list] ">" [constraint].
func (p *Parser) isTemplateDecl() bool {
	if !p.isKeyword(p.kw.template) {
		return false
	}
	p.requireToken(lexer.TokenLt)
	p.isParameterList()
	p.requireToken(lexer.TokenGt)
	p.isConstraint()
	return true
}

// constraint = "requires" "(" expression ")".
func (p *Parser) isConstraint() bool {
	if !p.isKeyword(p.kw.requires) {
		return false
	}
	p.requireToken(lexer.TokenLParen)
	p.requireExpr()
	p.requireToken(lexer.TokenRParen)
	return true
}

// struct = "struct" struct_decl [struct_body] ";".
//
// The struct's own name is registered before its body so constructors
// and destructors can refer to it. Nested structs are not registered.
func (p *Parser) isStruct(inTemplate, inStruct bool) bool {
	if !p.isKeyword(p.kw.struct_) {
		return false
	}
	n, ok := p.isStructDecl()
	if !ok {
		p.throw("struct name required.")
	}
	if !n.IsEmpty() && !inStruct {
		p.registry.Declare(n, inTemplate)
	}
	p.isStructBody(n)
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// struct_decl = identifier | template_name.
//
// A template_name declarator (a specialization) yields the empty name.
func (p *Parser) isStructDecl() (name.Name, bool) {
	if n, ok := p.isIdentifierName(); ok {
		return n, true
	}
	var discard value.Stack
	return name.Name{}, p.isTemplateName(&discard)
}

// struct_body = "{" {member} "}".
func (p *Parser) isStructBody(this name.Name) bool {
	if !p.isToken(lexer.TokenLBrace) {
		return false
	}
	for p.isMember(this) {
	}
	p.requireToken(lexer.TokenRBrace)
	return true
}

// member = constructor | destructor | typed_member | typedef.
//
// With nested members enabled, friend declarations, member templates and
// nested structs are accepted as well.
func (p *Parser) isMember(this name.Name) bool {
	if p.isConstructor(this) || p.isDestructor(this) || p.isTypedMember() || p.isTypedef() {
		return true
	}
	if !p.nested {
		return false
	}
	return p.isFriend() || p.isMemberTemplate(this) || p.isStruct(false, true)
}

// typed_member = expression ((identifier ["[" expression "]"] ";") | member_operator).
func (p *Parser) isTypedMember() bool {
	if !p.isExpr() {
		return false
	}
	if p.isIdentifier() {
		if p.isToken(lexer.TokenLBracket) {
			p.requireExpr()
			p.requireToken(lexer.TokenRBracket)
		}
		p.requireToken(lexer.TokenSemicolon)
		return true
	}
	if !p.isMemberOperator() {
		p.throw("identifier or member operator required.")
	}
	return true
}

// constructor = struct_name "(" [parameter_list] ")" [":" initializer_list] compound.
//
// Only the name of the struct being declared starts a constructor; any
// other struct name is left for typed_member.
func (p *Parser) isConstructor(this name.Name) bool {
	n, _, ok := p.isStructName()
	if !ok {
		return false
	}
	if n != this {
		p.putback()
		return false
	}
	p.requireToken(lexer.TokenLParen)
	p.isParameterList()
	p.requireToken(lexer.TokenRParen)
	if p.isToken(lexer.TokenColon) {
		if !p.isInitializerList() {
			p.throw("initializer list required.")
		}
	}
	if !p.isCompound() {
		p.throw("compound statement required.")
	}
	return true
}

// destructor = "~" struct_name "(" ")" compound.
func (p *Parser) isDestructor(this name.Name) bool {
	if !p.isToken(lexer.TokenTilde) {
		return false
	}
	pos := p.ts.Position()
	n, _, ok := p.isStructName()
	if !ok {
		p.throw("struct name required.")
	}
	if n != this {
		p.putback()
		p.mismatch(this.String(), n.String(), pos, ErrNameMismatch)
	}
	p.requireToken(lexer.TokenLParen)
	p.requireToken(lexer.TokenRParen)
	if !p.isCompound() {
		p.throw("compound statement required.")
	}
	return true
}

// member_operator = "operator" (assignment_body | index_body | apply_body).
func (p *Parser) isMemberOperator() bool {
	if !p.isKeyword(p.kw.operator) {
		return false
	}
	if !(p.isAssignmentBody() || p.isIndexBody() || p.isApplyBody()) {
		p.throw("'=', '[' or '(' required.")
	}
	return true
}

// assignment_body = "=" "(" parameter ")" compound.
func (p *Parser) isAssignmentBody() bool {
	if !p.isToken(lexer.TokenAssign) {
		return false
	}
	p.requireToken(lexer.TokenLParen)
	if !p.isParameter() {
		p.throw("parameter required.")
	}
	p.requireToken(lexer.TokenRParen)
	if !p.isCompound() {
		p.throw("compound statement required.")
	}
	return true
}

// index_body = "[" "]" "(" parameter ")" compound.
func (p *Parser) isIndexBody() bool {
	if !p.isToken(lexer.TokenLBracket) {
		return false
	}
	p.requireToken(lexer.TokenRBracket)
	p.requireToken(lexer.TokenLParen)
	if !p.isParameter() {
		p.throw("parameter required.")
	}
	p.requireToken(lexer.TokenRParen)
	if !p.isCompound() {
		p.throw("compound statement required.")
	}
	return true
}

// apply_body = "(" ")" "(" [parameter_list] ")" compound.
func (p *Parser) isApplyBody() bool {
	if !p.isToken(lexer.TokenLParen) {
		return false
	}
	p.requireToken(lexer.TokenRParen)
	p.requireToken(lexer.TokenLParen)
	p.isParameterList()
	p.requireToken(lexer.TokenRParen)
	if !p.isCompound() {
		p.throw("compound statement required.")
	}
	return true
}

// initializer_list = initializer {"," initializer}.
func (p *Parser) isInitializerList() bool {
	if !p.isInitializer() {
		return false
	}
	for p.isToken(lexer.TokenComma) {
		if !p.isInitializer() {
			p.throw("initializer required.")
		}
	}
	return true
}

// initializer = identifier "(" [expression_list] ")".
func (p *Parser) isInitializer() bool {
	if !p.isIdentifier() {
		return false
	}
	p.requireToken(lexer.TokenLParen)
	p.isExprList()
	p.requireToken(lexer.TokenRParen)
	return true
}

// friend = "friend" function.
func (p *Parser) isFriend() bool {
	if !p.isKeyword(p.kw.friend) {
		return false
	}
	if !p.isFunction(false) {
		p.throw("function declaration required.")
	}
	return true
}

// member_template = template_decl member.
func (p *Parser) isMemberTemplate(this name.Name) bool {
	if !p.isTemplateDecl() {
		return false
	}
	if !p.isMember(this) {
		p.throw("member required.")
	}
	return true
}

// enum = "enum" identifier "{" identifier {"," identifier} "}" ";".
func (p *Parser) isEnum() bool {
	if !p.isKeyword(p.kw.enum) {
		return false
	}
	p.requireIdentifier()
	p.requireToken(lexer.TokenLBrace)
	p.requireIdentifier()
	for p.isToken(lexer.TokenComma) {
		p.requireIdentifier()
	}
	p.requireToken(lexer.TokenRBrace)
	p.requireToken(lexer.TokenSemicolon)
	return true
}

// function = expression function_name "(" [parameter_list] ")" (compound | ";").
//
// A function declared by identifier is registered before its parameters,
// so from then on its name parses as a struct name.
func (p *Parser) isFunction(inTemplate bool) bool {
	if !p.isExpr() {
		return false
	}
	n, ok := p.isFunctionName()
	if !ok {
		p.throw("function name required.")
	}
	if !n.IsEmpty() {
		p.registry.Declare(n, inTemplate)
	}
	p.requireToken(lexer.TokenLParen)
	p.isParameterList()
	p.requireToken(lexer.TokenRParen)
	if !(p.isCompound() || p.isToken(lexer.TokenSemicolon)) {
		p.throw("compound statement or ';' required.")
	}
	return true
}

// function_name = identifier | struct_name | operator_name.
//
// Only the identifier form yields a name to register.
func (p *Parser) isFunctionName() (name.Name, bool) {
	if n, ok := p.isIdentifierName(); ok {
		return n, true
	}
	if _, _, ok := p.isStructName(); ok {
		return name.Name{}, true
	}
	return name.Name{}, p.isOperatorName()
}

// operator_name = "operator" ("==" | "<" | "+" | "-" | "*" | "/" | "%").
func (p *Parser) isOperatorName() bool {
	if !p.isKeyword(p.kw.operator) {
		return false
	}
	switch p.next().Type {
	case lexer.TokenEq, lexer.TokenLt, lexer.TokenPlus, lexer.TokenMinus,
		lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return true
	}
	p.putback()
	p.throw("'==', '<', '+', '-', '*', '/', or '%' required.")
	return false
}

// parameter_list = parameter {"," parameter}.
func (p *Parser) isParameterList() bool {
	if !p.isParameter() {
		return false
	}
	for p.isToken(lexer.TokenComma) {
		if !p.isParameter() {
			p.throw("parameter required.")
		}
	}
	return true
}

// parameter = expression [identifier].
func (p *Parser) isParameter() bool {
	if !p.isExpr() {
		return false
	}
	p.isIdentifier()
	return true
}
