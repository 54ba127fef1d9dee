// Package name provides interned symbols for identifiers, keywords and
// operator tags.
package name

// Name is an interned symbol. Two names from the same Table are equal if
// and only if they were interned from the same text. The zero Name is empty.
type Name struct {
	id   uint32
	text string
}

// String returns the text the name was interned from
func (n Name) String() string {
	return n.text
}

// IsEmpty reports whether n is the zero Name
func (n Name) IsEmpty() bool {
	return n.id == 0
}

// Table interns strings for one parse session
type Table struct {
	ids   map[string]Name
	names []Name
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{ids: make(map[string]Name)}
}

// Intern returns the Name for s, allocating a new id on first use.
// Interning the empty string yields the empty Name.
func (t *Table) Intern(s string) Name {
	if s == "" {
		return Name{}
	}
	if n, ok := t.ids[s]; ok {
		return n
	}
	n := Name{id: uint32(len(t.names) + 1), text: s}
	t.ids[s] = n
	t.names = append(t.names, n)
	return n
}

// Lookup returns the Name for s without interning it
func (t *Table) Lookup(s string) (Name, bool) {
	n, ok := t.ids[s]
	return n, ok
}

// Len returns the number of interned names
func (t *Table) Len() int {
	return len(t.names)
}
