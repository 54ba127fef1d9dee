package value

import "strings"

// Operator tags that are not spelled like the source token
const (
	TagNegate      = "unary_negate"
	TagDereference = "dereference"
	TagApply       = "apply"
)

// unaryTags lists the operator tags that consume a single operand. Apply
// takes one operand for a bare reference or an empty call and two for an
// index, member or argument list; only the minimum is checked.
var unaryTags = map[string]bool{
	TagNegate:      true,
	TagDereference: true,
	TagApply:       true,
	"!":            true,
	"const":        true,
}

// Arity returns the minimum number of operands an operator tag consumes
func Arity(tag string) int {
	if unaryTags[tag] {
		return 1
	}
	return 2
}

// Stack is a postfix sequence: every operator follows its operands
type Stack []Value

// Push appends values to the stack
func (s *Stack) Push(vs ...Value) {
	*s = append(*s, vs...)
}

// String renders the stack as space separated entries
func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// WellFormed reports whether no operator in the stack consumes more
// operands than are available at its position.
func (s Stack) WellFormed() bool {
	var depth []Value
	for _, v := range s {
		switch v.Kind() {
		case KindOp:
			n := Arity(v.Name().String())
			if len(depth) < n {
				return false
			}
			depth = append(depth[:len(depth)-n], v)
		case KindArray:
			if len(depth) == 0 || depth[len(depth)-1].Kind() != KindCount {
				return false
			}
			n := depth[len(depth)-1].Count()
			depth = depth[:len(depth)-1]
			if len(depth) < n {
				return false
			}
			depth = append(depth[:len(depth)-n], v)
		case KindEmpty:
			return false
		default:
			depth = append(depth, v)
		}
	}
	return true
}
