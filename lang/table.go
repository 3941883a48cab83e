package lang

// DefaultMaxDepth bounds how many variable bindings may be evaluated inside
// one another. Deeper chains resolve to [Unresolved].
//
//nolint:gochecknoglobals
var DefaultMaxDepth = 100

// Table is the variable table of one pass. Bindings are kept in
// declaration order and never removed, so any prefix of the table is a
// stable snapshot.
type Table struct {
	bindings []Binding
	calls    map[string]*Call
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{calls: map[string]*Call{}}
}

// Declare appends b and returns its index.
func (t *Table) Declare(b Binding) int {
	t.bindings = append(t.bindings, b)

	return len(t.bindings) - 1
}

// Len returns the number of bindings declared so far.
func (t *Table) Len() int { return len(t.bindings) }

// Bindings returns a copy of the bindings in declaration order.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Snapshot returns a view of the first n bindings. The view shares the
// parsed expressions of t and is unaffected by later declarations.
func (t *Table) Snapshot(n int) *Table {
	n = max(0, min(n, len(t.bindings)))

	return &Table{bindings: t.bindings[:n:n], calls: t.calls}
}

// define records the parsed form of a raw expression.
func (t *Table) define(raw string, c *Call) { t.calls[raw] = c }

// call returns the parsed form of a binding's expression, parsing it when
// it was never defined.
func (t *Table) call(raw string) (*Call, bool) {
	if c, ok := t.calls[raw]; ok {
		return c, true
	}

	c, err := Parse(raw)

	return c, err == nil
}

// find returns the index of the most recent binding of name among the
// first n bindings.
func (t *Table) find(name string, n int) (int, bool) {
	for i := min(n, len(t.bindings)) - 1; i >= 0; i-- {
		if t.bindings[i].Name == name {
			return i, true
		}
	}

	return -1, false
}
