package lang

import "log/slog"

// evaluation evaluates expressions against one context and one table. The
// values of table bindings are memoized for the lifetime of the
// evaluation, unless the depth limit cut their evaluation short.
type evaluation struct {
	ctx      Context
	reg      *Registry
	table    *Table
	memo     map[int]Value
	depth    int
	maxDepth int
	cut      bool // depth limit reached since the flag was last cleared
}

func newEvaluation(ctx Context, reg *Registry, table *Table, maxDepth int) *evaluation {
	if table == nil {
		table = NewTable()
	}

	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &evaluation{
		ctx:      ctx,
		reg:      reg,
		table:    table,
		memo:     map[int]Value{},
		maxDepth: maxDepth,
	}
}

// Evaluate parses and evaluates one expression with an empty variable
// table.
func Evaluate(raw string, ctx Context, reg *Registry) (Value, error) {
	c, err := Parse(raw)
	if err != nil {
		return Unresolved, err
	}

	if err := reg.check(c); err != nil {
		return Unresolved, err
	}

	return newEvaluation(ctx, reg, nil, DefaultMaxDepth).call(c, 0)
}

// call evaluates c in postorder. Variables resolve against the first
// snapshot bindings of the table.
func (e *evaluation) call(c *Call, snapshot int) (Value, error) {
	f, ok := e.reg.lookup(c.Name)
	if !ok {
		return Unresolved, ErrUnknownFunction.Msg("unknown function " + c.Name).
			With(slog.String("function", c.Name))
	}

	args := make([]Value, len(c.Args))

	for i, a := range c.Args {
		v, err := e.arg(a, f.domain(i), snapshot)
		if err != nil {
			return Unresolved, err
		}

		args[i] = v
	}

	v, err := f.fn(e.ctx, args...)
	if err != nil {
		return Unresolved, ErrEvaluation.Wrap(err).
			With(slog.String("function", c.Name))
	}

	return v, nil
}

func (e *evaluation) arg(a Arg, d Domain, snapshot int) (Value, error) {
	switch a := a.(type) {
	case *Call:
		return e.call(a, snapshot)

	case VarRef:
		return e.resolve(a.Name, snapshot, d)

	case Override:
		return OverrideValue(a.Entries), nil

	case Literal:
		return literalValue(a.Text), nil

	default:
		return Unresolved, nil
	}
}

// resolve looks name up in the table as of snapshot, then in the context
// map for d.
func (e *evaluation) resolve(name string, snapshot int, d Domain) (Value, error) {
	i, ok := e.table.find(name, snapshot)
	if !ok {
		v, _ := e.ctx.lookup(name, d)

		return v, nil
	}

	v, err := e.binding(i)
	if err != nil {
		return Unresolved, err
	}

	return coerce(v, d), nil
}

// binding returns the value of binding i, evaluating a pending expression
// against the bindings declared before it.
func (e *evaluation) binding(i int) (Value, error) {
	if v, ok := e.memo[i]; ok {
		return v, nil
	}

	b := e.table.bindings[i]
	if !b.IsExpr {
		v := literalValue(b.Literal)
		e.memo[i] = v

		return v, nil
	}

	if e.depth >= e.maxDepth {
		e.cut = true

		return Unresolved, nil
	}

	c, ok := e.table.call(b.Expr)
	if !ok {
		return Unresolved, nil
	}

	outer := e.cut
	e.cut = false

	e.depth++
	v, err := e.call(c, i)
	e.depth--

	cut := e.cut
	e.cut = outer || cut

	if err != nil {
		return Unresolved, err
	}

	if !cut {
		e.memo[i] = v
	}

	return v, nil
}

// literalValue is a number when text parses as one and a string otherwise.
func literalValue(text string) Value {
	if f, ok := parseNumber(text); ok {
		return NumberValue(f)
	}

	return StringValue(text)
}

// coerce converts a table value to the domain a call site expects, where a
// conversion exists.
func coerce(v Value, d Domain) Value {
	if v.Kind() != KindString {
		return v
	}

	switch d {
	case DomainNumber:
		if f, ok := parseNumber(v.text); ok {
			return NumberValue(f)
		}

	case DomainColor:
		if c, ok := parseColor(v.text); ok {
			return ColorValue(c.String())
		}
	}

	return v
}
