package lang

import (
	"errors"
	"testing"
)

// runPass feeds decls through a pass the way a stylesheet walker would and
// returns the rewritten declarations.
func runPass(t *testing.T, p *Pass, ctx Context, decls ...Declaration) []Declaration {
	t.Helper()

	occ := make([][]Occurrence, len(decls))

	for i, d := range decls {
		decls[i] = p.Replace(d)
		occ[i] = p.Extract(decls[i])
	}

	repl, err := p.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	out := make([]Declaration, len(decls))
	for i, d := range decls {
		out[i] = p.Substitute(d, occ[i], repl)
	}

	return out
}

func values(decls []Declaration) []string {
	v := make([]string, len(decls))
	for i, d := range decls {
		v[i] = d.Value
	}

	return v
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestPass_Variables(t *testing.T) {
	tests := []struct {
		name  string
		ctx   func(Context)
		decls []Declaration
		want  []string
	}{
		{
			name: "double indirection shadows context",
			ctx:  func(c Context) { c.Numbers["var1"] = 1 },
			decls: []Declaration{
				{Key: "--var1", Value: `"number(42)"`},
				{Key: "--var2", Value: `"number(--var1)"`},
				{Key: "rule", Value: `"number(--var2)"`},
			},
			want: []string{"42", "42", "42"},
		},
		{
			name: "forward reference uses context",
			ctx:  func(c Context) { c.Numbers["late"] = 7 },
			decls: []Declaration{
				{Key: "rule", Value: `"number(--late)"`},
				{Key: "--late", Value: `"number(5)"`},
				{Key: "after", Value: `"unit(--late, px)"`},
			},
			want: []string{"7", "5", "5px"},
		},
		{
			name: "most recent binding wins",
			decls: []Declaration{
				{Key: "--x", Value: "1"},
				{Key: "--x", Value: "2"},
				{Key: "a", Value: `"number(--x)"`},
			},
			want: []string{"1", "2", "2"},
		},
		{
			name: "redeclared variable between repeats",
			decls: []Declaration{
				{Key: "--x", Value: "1"},
				{Key: "a", Value: `"number(--x)"`},
				{Key: "--x", Value: "2"},
				{Key: "b", Value: `"number(--x)"`},
				{Key: "c", Value: `"unit(--x, px)" "number(--x)"`},
			},
			want: []string{"1", "1", "2", "2", "2px 2"},
		},
		{
			name: "raw literal coerced to color",
			decls: []Declaration{
				{Key: "--my_var3", Value: "red"},
				{Key: "color", Value: `"color(--my_var3)"`},
			},
			want: []string{"red", "rgb(255, 0, 0)"},
		},
		{
			name: "self reference falls through",
			decls: []Declaration{
				{Key: "--n", Value: `"number(--n)"`},
			},
			want: []string{"undefined"},
		},
		{
			name: "unresolved font",
			decls: []Declaration{
				{Key: "--var1", Value: `"font(--var)"`},
			},
			want: []string{"undefined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := EmptyContext()
			if tt.ctx != nil {
				tt.ctx(ctx)
			}

			got := values(runPass(t, NewPass(NewRegistry()), ctx, tt.decls...))
			if !equal(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPass_Dedupe(t *testing.T) {
	p := NewPass(NewRegistry())

	runPass(t, p, EmptyContext(),
		Declaration{Key: "a", Value: `"number(1)"`},
		Declaration{Key: "b", Value: `"number(1)" "number(1)"`},
		Declaration{Key: "c", Value: `"number(2)"`},
	)

	want := []string{`"number(1)"`, `"number(2)"`}
	if got := p.Expressions(); !equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPass_Idempotent(t *testing.T) {
	decls := []Declaration{
		{Key: "margin", Value: "0 auto"},
		{Key: "content", Value: `" "`},
		{Key: "color", Value: "var(--x)"},
	}

	want := append([]Declaration(nil), decls...)

	got := runPass(t, NewPass(NewRegistry()), EmptyContext(), decls...)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %+v, got %+v", want[i], got[i])
		}
	}
}

func TestPass_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  error
	}{
		{name: "malformed", value: `"opacity(color(color-1, 0.5)"`, want: ErrMalformedExpression},
		{name: "unknown function", value: `"colour(red)"`, want: ErrUnknownFunction},
		{name: "syntax", value: `"color(a,,b)"`, want: ErrSyntax},
	}

	for _, tt := range tests {
		for _, live := range []bool{false, true} {
			var opts []Option
			if live {
				opts = append(opts, WithCache(NewCache()))
			}

			p := NewPass(NewRegistry(), opts...)
			p.Extract(Declaration{Key: "a", Value: `"number(1)"`})
			p.Extract(Declaration{Key: "b", Value: tt.value})

			repl, err := p.Finish(EmptyContext())
			if !errors.Is(err, tt.want) {
				t.Errorf("%s (live %v): expected %v, got %v", tt.name, live, tt.want, err)
			}

			if repl != nil {
				t.Errorf("%s (live %v): expected no replacements, got %v", tt.name, live, repl)
			}
		}
	}
}

func TestPass_Live(t *testing.T) {
	cache := NewCache()
	raw := `"color(--accent)"`
	decl := Declaration{Key: "color", Value: raw}

	ctx := EmptyContext()
	ctx.Colors["accent"] = "#111111"

	got := runPass(t, NewPass(NewRegistry(), WithCache(cache)), ctx, decl)

	want := "var(" + Property(Hash(raw)) + ")"
	if got[0].Value != want {
		t.Errorf("expected %q, got %q", want, got[0].Value)
	}

	// A second pass over the same template adds nothing to the cache.
	runPass(t, NewPass(NewRegistry(), WithCache(cache)), ctx, decl)

	if cache.Len() != 1 {
		t.Errorf("expected 1 cache entry, got %d", cache.Len())
	}

	ctx.Colors["accent"] = "#222222"

	vars, err := cache.Vars(ctx)
	if err != nil {
		t.Fatalf("vars: %v", err)
	}

	if got := vars[Property(Hash(raw))]; got != "#222222" {
		t.Errorf("expected %q, got %q", "#222222", got)
	}
}

func TestPass_LiveVariables(t *testing.T) {
	cache := NewCache()

	runPass(t, NewPass(NewRegistry(), WithCache(cache)), EmptyContext(),
		Declaration{Key: "--bar", Value: `"color(color-4)"`},
		Declaration{Key: "color", Value: `"color(--bar)"`},
	)

	ctx := EmptyContext()
	ctx.Colors["color-4"] = "#444444"

	vars, err := cache.Vars(ctx)
	if err != nil {
		t.Fatalf("vars: %v", err)
	}

	for _, raw := range []string{`"color(color-4)"`, `"color(--bar)"`} {
		if got := vars[Property(Hash(raw))]; got != "#444444" {
			t.Errorf("%s: expected %q, got %q", raw, "#444444", got)
		}
	}
}

func TestPass_WithoutEvaluation(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterDeclarationReplacer(func(d Declaration) (Declaration, error) {
		return Declaration{Key: d.Key, Value: "#" + d.Value + "#"}, nil
	})

	got := runPass(t, NewPass(reg, WithEvaluation(false)), EmptyContext(),
		Declaration{Key: "bar", Value: "4"},
		Declaration{Key: "color", Value: `"color(color-1)"`},
	)

	want := []string{"#4#", `#"color(color-1)"#`}
	if !equal(values(got), want) {
		t.Errorf("expected %q, got %q", want, values(got))
	}
}

func TestPass_RegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	p := NewPass(reg)

	_ = reg.RegisterFunction("later", func(Context, ...Value) (Value, error) {
		return StringValue("x"), nil
	})

	p.Extract(Declaration{Key: "a", Value: `"later()"`})

	if _, err := p.Finish(EmptyContext()); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestPass_Plugin(t *testing.T) {
	reg := NewRegistry()

	_ = reg.RegisterFunction("increment", func(_ Context, args ...Value) (Value, error) {
		n, _ := args[0].Number()

		return NumberValue(n + 1), nil
	})

	got := runPass(t, NewPass(reg), EmptyContext(),
		Declaration{Key: "--var1", Value: `"increment(1)"`},
		Declaration{Key: "width", Value: `"unit(--var1, px)"`},
	)

	want := []string{"2", "2px"}
	if !equal(values(got), want) {
		t.Errorf("expected %q, got %q", want, values(got))
	}
}
