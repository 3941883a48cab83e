package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/cssfn/lang"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no_call", "color-1", 7, "", 0, false},
		{"open_paren", "color(", 6, "color", 0, true},
		{"first_arg", "opacity(color(color-1)", 22, "opacity", 0, true},
		{"second_arg", "opacity(color(color-1), 0.", 26, "opacity", 1, true},
		{"nested", "join(color(c", 12, "color", 0, true},
		{"after_nested", "join(color(c1), 1, ", 19, "join", 2, true},
		{"closed", "color(c1)", 9, "", 0, false},
		{"object_commas", "font({theme: 'a', size: '1px'}, ", 32, "font", 1, true},
		{"inside_object", "font({theme: 'a', ", 18, "", 0, false},
		{"quoted_comma", "string('a,b', ", 14, "string", 1, true},
		{"quoted_paren", "fallback('(', x", 15, "fallback", 1, true},
		{"cursor_mid", "unit(1, px)", 6, "unit", 0, true},
		{"cursor_past_end", "unit(", 50, "unit", 0, true},
		{"anonymous_paren", "(1, 2", 5, "", 0, false},
		{"hyphenated_name", "my-fn(a, ", 9, "my-fn", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex || got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	reg := lang.NewRegistry()
	if err := reg.RegisterFunction("increment", func(_ lang.Context, args ...lang.Value) (lang.Value, error) {
		return lang.Unresolved, nil
	}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"opacity", "color, alpha", true},
		{"join", "...color, ...weight", true},
		{"increment", "...args", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := getSignature(reg, tt.name)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}

			if got := strings.Join(params, ", "); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, ok := getSignature(nil, "color"); ok {
		t.Error("expected no signature without a registry")
	}
}

func TestBuiltinParams_Registered(t *testing.T) {
	reg := lang.NewRegistry()

	for name := range builtinParams {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("parameters listed for unregistered function %q", name)
		}
	}

	for _, name := range reg.Names() {
		if _, ok := builtinParams[name]; !ok {
			t.Errorf("no parameters listed for built-in %q", name)
		}
	}
}

func TestCurrentParam(t *testing.T) {
	tests := []struct {
		name   string
		params []string
		arg    int
		want   int
	}{
		{"first", []string{"color", "alpha"}, 0, 0},
		{"second", []string{"color", "alpha"}, 1, 1},
		{"too_many", []string{"color", "alpha"}, 2, -1},
		{"variadic", []string{"...value"}, 3, 0},
		{"group_even", []string{"...color", "...weight"}, 2, 0},
		{"group_odd", []string{"...color", "...weight"}, 5, 1},
		{"after_fixed", []string{"op", "...term"}, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := currentParam(tt.params, tt.arg); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	for arg := range 3 {
		got := renderSignatureHint("opacity", builtinParams["opacity"], arg)
		if !strings.Contains(got, "opacity") || !strings.Contains(got, "alpha") {
			t.Errorf("arg %d: expected the signature of opacity, got %q", arg, got)
		}
	}
}
