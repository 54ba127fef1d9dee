package parser

import "github.com/raymyers/eopcheck/pkg/name"

// Registry records declared struct, template and function names in
// declaration order, with whether each was declared inside a template.
//
// A registered name no longer matches as an identifier; it matches as a
// struct name instead. Function names are registered too, so after
// `int f();` the name f is parsed the way a type name would be.
type Registry struct {
	index map[name.Name]bool
	order []name.Name
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[name.Name]bool)}
}

// Declare registers n. If n is already present the first registration
// wins and Declare returns false.
func (r *Registry) Declare(n name.Name, isTemplate bool) bool {
	if _, ok := r.index[n]; ok {
		return false
	}
	r.index[n] = isTemplate
	r.order = append(r.order, n)
	return true
}

// Lookup returns whether n is declared and, if so, whether it is a template
func (r *Registry) Lookup(n name.Name) (isTemplate bool, ok bool) {
	isTemplate, ok = r.index[n]
	return isTemplate, ok
}

// Contains reports whether n is declared
func (r *Registry) Contains(n name.Name) bool {
	_, ok := r.index[n]
	return ok
}

// Names returns the declared names in declaration order
func (r *Registry) Names() []name.Name {
	out := make([]name.Name, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of declared names
func (r *Registry) Len() int {
	return len(r.order)
}
