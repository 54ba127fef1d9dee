// Package value defines the tagged values that make up a postfix
// expression stack.
package value

import (
	"fmt"
	"strconv"

	"github.com/raymyers/eopcheck/pkg/name"
)

// Kind identifies which field of a Value is set
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindNumber
	KindString
	KindName  // an operand naming a variable, member or type
	KindOp    // an operator tag
	KindCount // element count preceding an array marker
	KindArray // array marker
)

var kindNames = map[Kind]string{
	KindEmpty:  "empty",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindName:   "name",
	KindOp:     "op",
	KindCount:  "count",
	KindArray:  "array",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Value is a tagged union over the payloads an expression stack can hold
type Value struct {
	kind  Kind
	b     bool
	num   float64
	str   string
	name  name.Name
	count int
}

// Bool returns a boolean literal
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric literal
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string literal
func String(s string) Value { return Value{kind: KindString, str: s} }

// Name returns an operand naming a variable, member or type
func Name(n name.Name) Value { return Value{kind: KindName, name: n} }

// Op returns an operator tag
func Op(n name.Name) Value { return Value{kind: KindOp, name: n} }

// Count returns the element count that precedes an array marker
func Count(n int) Value { return Value{kind: KindCount, count: n} }

// Array returns the array marker
func Array() Value { return Value{kind: KindArray} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsEmpty() bool   { return v.kind == KindEmpty }
func (v Value) Bool() bool      { return v.b }
func (v Value) Number() float64 { return v.num }
func (v Value) Str() string     { return v.str }
func (v Value) Name() name.Name { return v.name }
func (v Value) Count() int      { return v.count }

// IsOperator reports whether v is consumed by a stack machine rather than
// pushed as an operand
func (v Value) IsOperator() bool {
	return v.kind == KindOp || v.kind == KindArray
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindName, KindOp:
		return v.name.String()
	case KindCount:
		return strconv.Itoa(v.count)
	case KindArray:
		return "<array>"
	}
	return fmt.Sprintf("<%s>", v.kind)
}
