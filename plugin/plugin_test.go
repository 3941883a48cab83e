package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/cssfn/lang"
)

const source = `
functions:
  increment: args[0] + 1
  brand: colors["color-8"] ?? "black"
  greet: '"hello " + args[0]'
  nothing: nil
  list: '[1, 2]'
replacers:
  - key: "'ZzZ' + key + 'ZzZ'"
  - value: 'value == "x" ? "y" : value'
`

func loadSet(t *testing.T, src string) *lang.Registry {
	t.Helper()

	s, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := lang.NewRegistry()
	if err := s.Register(reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return reg
}

func TestFunctions(t *testing.T) {
	reg := loadSet(t, source)
	ctx := lang.EmptyContext()
	ctx.Colors["color-8"] = "#3E6A8F"
	ctx.Numbers["n"] = 41

	tests := []struct {
		expr string
		want string
	}{
		{`"increment(1)"`, "2"},
		{`"increment(number(n))"`, "42"},
		{`"unit(increment(0.5), px)"`, "1.5px"},
		{`"brand()"`, "#3E6A8F"},
		{`"greet(world)"`, "hello world"},
		{`"nothing()"`, "undefined"},
		{`"fallback(nothing(), 3)"`, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := lang.Evaluate(tt.expr, ctx, reg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := v.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFunctions_Errors(t *testing.T) {
	reg := loadSet(t, source)

	tests := []struct {
		expr string
		want error
	}{
		{`"list()"`, ErrResult},
		{`"increment()"`, lang.ErrEvaluation},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := lang.Evaluate(tt.expr, lang.EmptyContext(), reg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestReplacers(t *testing.T) {
	reg := loadSet(t, source)

	tests := []struct {
		in   lang.Declaration
		want lang.Declaration
	}{
		{lang.Declaration{Key: "color", Value: "x"}, lang.Declaration{Key: "ZzZcolorZzZ", Value: "y"}},
		{lang.Declaration{Key: "a", Value: "b"}, lang.Declaration{Key: "ZzZaZzZ", Value: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := reg.Replace(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReplacers_Result(t *testing.T) {
	reg := loadSet(t, "replacers:\n  - key: '1 + 1'\n  - value: 'value + \"!\"'\n")

	got, err := reg.Replace(lang.Declaration{Key: "a", Value: "b"})
	if !errors.Is(err, ErrResult) {
		t.Errorf("expected ErrResult, got %v", err)
	}

	want := lang.Declaration{Key: "a", Value: "b!"}
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"yaml", "functions: [", ErrDecode},
		{"function", "functions:\n  bad: 'args[0] +'\n", ErrCompile},
		{"replacer", "replacers:\n  - key: 'key +'\n", ErrCompile},
		{"unknown variable", "functions:\n  bad: 'missing + 1'\n", ErrCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegister_InvalidName(t *testing.T) {
	s, err := Load(strings.NewReader("functions:\n  'bad name': '1'\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Register(lang.NewRegistry()); !errors.Is(err, lang.ErrInvalidFunction) {
		t.Errorf("expected ErrInvalidFunction, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.yaml")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"brand", "greet", "increment", "list", "nothing"}
	if got := s.Functions(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %q, got %q", want, got)
	}
}
