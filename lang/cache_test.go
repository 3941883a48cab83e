package lang

import (
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	a, b := Hash(`"color(--x)"`), Hash(`"color(--x)"`)
	if a != b {
		t.Errorf("expected stable hash, got %q and %q", a, b)
	}

	if c := Hash(`"color(--y)"`); c == a {
		t.Errorf("expected distinct hashes, got %q twice", c)
	}

	if strings.Trim(a, "0123456789abcdefghijklmnopqrstuvwxyz") != "" {
		t.Errorf("expected base 36 digits, got %q", a)
	}

	if got := Property(a); got != "--"+a {
		t.Errorf("expected %q, got %q", "--"+a, got)
	}
}

func TestCache_Compile(t *testing.T) {
	cache := NewCache()
	reg := NewRegistry()

	c, err := Parse(`color(--accent)`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	h1, e1 := cache.Compile(`"color(--accent)"`, c, nil, reg)
	h2, e2 := cache.Compile(`"color(--accent)"`, c, nil, reg)

	if h1 != h2 || e1 != e2 {
		t.Error("expected second compile to return the stored entry")
	}

	if cache.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", cache.Len())
	}

	if got, ok := cache.Load(h1); !ok || got != e1 {
		t.Error("expected entry under its hash")
	}

	ctx := EmptyContext()
	ctx.Colors["accent"] = "#111111"

	first, err := e1.Eval(ctx)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	again, _ := e1.Eval(ctx)
	if first.String() != "#111111" || !first.Equal(again) {
		t.Errorf("expected %q twice, got %q and %q", "#111111", first, again)
	}

	ctx.Colors["accent"] = "#222222"

	vars, err := cache.Vars(ctx)
	if err != nil {
		t.Fatalf("vars: %v", err)
	}

	if got := vars[Property(h1)]; got != "#222222" {
		t.Errorf("expected %q, got %q", "#222222", got)
	}
}

func TestCache_Snapshot(t *testing.T) {
	table := NewTable()
	table.Declare(Binding{Name: "n", Literal: "5"})

	c, _ := Parse(`number(--n)`)

	cache := NewCache()
	_, entry := cache.Compile(`"number(--n)"`, c, table.Snapshot(table.Len()), NewRegistry())

	// Later declarations are invisible to the compiled entry.
	table.Declare(Binding{Name: "n", Literal: "9"})

	v, err := entry.Eval(EmptyContext())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	if got := v.String(); got != "5" {
		t.Errorf("expected %q, got %q", "5", got)
	}
}

func BenchmarkCache_Vars(b *testing.B) {
	cache := NewCache()
	reg := NewRegistry()

	for _, raw := range []string{
		`"color(color-1)"`,
		`"opacity(color(color-1), 0.5)"`,
		`"join(color(color-1), 1, color(color-2), 3)"`,
		`"calculate(+, unit(2, px), unit(number(--gap), px))"`,
		`"font({theme: 'Body-M', size: '10px'})"`,
	} {
		c, err := Parse(raw)
		if err != nil {
			b.Fatalf("parse %q: %v", raw, err)
		}

		cache.Compile(raw, c, nil, reg)
	}

	ctx := testContext()
	ctx.Colors["color-2"] = "#000000"

	b.ReportAllocs()

	for b.Loop() {
		if _, err := cache.Vars(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
