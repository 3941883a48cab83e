package lang

import "strings"

// Arg is one argument of a [Call]: a [Literal], a [VarRef], a nested
// *[Call], or an [Override].
type Arg interface {
	String() string

	arg()
}

// Call is a function application, the root of every parsed expression.
type Call struct {
	Name string
	Args []Arg
}

// Literal is a bare argument such as "0.5", "px", "+" or "#FFF". Its text
// is kept verbatim; numeric literals evaluate to numbers.
type Literal struct {
	Text string
}

// VarRef is a "--name" reference. Name excludes the leading dashes.
type VarRef struct {
	Name string
}

// Entry is one key/value pair of an [Override].
type Entry struct {
	Key   string
	Value string
}

// Override is an object literal argument such as
// {theme: 'Body-M', size: '10px'}, used to override font preset fields.
type Override struct {
	Entries []Entry
}

func (*Call) arg()    {}
func (Literal) arg()  {}
func (VarRef) arg()   {}
func (Override) arg() {}

// String renders c canonically as name(arg, arg).
func (c *Call) String() string {
	var b strings.Builder

	b.WriteString(c.Name)
	b.WriteByte('(')

	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a.String())
	}

	b.WriteByte(')')

	return b.String()
}

// String returns the literal text, single-quoted when it would not read
// back as the same literal.
func (l Literal) String() string {
	if needsQuote(l.Text) {
		return quote(l.Text)
	}

	return l.Text
}

func (r VarRef) String() string { return "--" + r.Name }

func (o Override) String() string {
	var b strings.Builder

	b.WriteByte('{')

	for i, e := range o.Entries {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(quote(e.Value))
	}

	b.WriteByte('}')

	return b.String()
}

// Get returns the value of key, if present. Later entries win.
func (o Override) Get(key string) (string, bool) {
	for i := len(o.Entries) - 1; i >= 0; i-- {
		if o.Entries[i].Key == key {
			return o.Entries[i].Value, true
		}
	}

	return "", false
}

// Walk calls fn for c and every call nested in its arguments, in preorder.
// It stops early when fn returns false.
func (c *Call) Walk(fn func(*Call) bool) bool {
	if !fn(c) {
		return false
	}

	for _, a := range c.Args {
		if n, ok := a.(*Call); ok && !n.Walk(fn) {
			return false
		}
	}

	return true
}

func needsQuote(s string) bool {
	if s == "" || strings.HasPrefix(s, "--") || strings.TrimSpace(s) != s {
		return true
	}

	return strings.ContainsAny(s, "(),'\"{}[]\\")
}

// quote wraps s in single quotes, escaping quotes and backslashes.
func quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('\'')

	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}

		b.WriteByte(s[i])
	}

	b.WriteByte('\'')

	return b.String()
}
