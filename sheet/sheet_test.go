package sheet

import (
	"errors"
	"strings"
	"testing"
)

func TestWalk_Render(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single rule",
			input: `.foo {bar: 4; color: "color(color-1)"}`,
			want:  `.foo{bar: 4;color: "color(color-1)"}`,
		},
		{
			name:  "trailing semicolon kept",
			input: ".foo { color: red; }",
			want:  ".foo{color: red;}",
		},
		{
			name:  "whitespace and comments",
			input: ".a ,\n .b {\n  margin:0   auto; /* note */\n  padding : 1px\n}\n",
			want:  ".a , .b{margin: 0 auto;padding: 1px}",
		},
		{
			name:  "several rules",
			input: ".a{x: 1;}\n.b{y: 2}",
			want:  ".a{x: 1;}.b{y: 2}",
		},
		{
			name:  "nested at-rule",
			input: "@media (max-width: 10px) { .a { color: blue; } }",
			want:  "@media (max-width: 10px){.a{color: blue;}}",
		},
		{
			name:  "blockless at-rule",
			input: "@import url(a.css);\n.a{x: 1}",
			want:  "@import url(a.css);.a{x: 1}",
		},
		{
			name:  "declaration without colon",
			input: ".a{oops; x: 1}",
			want:  ".a{oops;x: 1}",
		},
		{
			name:  "colon inside quotes",
			input: `.a{"string(a:b)": 1}`,
			want:  `.a{"string(a:b)": 1}`,
		},
		{
			name:  "braces inside strings",
			input: `.a{font: "font({theme: 'Body-M'})"}`,
			want:  `.a{font: "font({theme: 'Body-M'})"}`,
		},
		{
			name:  "empty",
			input: "  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Walk(tt.input, Hooks{})
			if err != nil {
				t.Fatalf("walk: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWalk_DeclarationHook(t *testing.T) {
	var seen []string

	hooks := Hooks{
		Declaration: func(d Declaration) ([]Declaration, error) {
			seen = append(seen, d.Key)

			switch d.Key {
			case "drop":
				return nil, nil
			case "font":
				return []Declaration{d, {Key: "text-decoration", Value: "underline"}}, nil
			default:
				return []Declaration{{Key: d.Key, Value: "#" + d.Value + "#"}}, nil
			}
		},
	}

	got, err := Walk(".a{bar: 4; drop: 1; font: x}@media print{.b{c: d;}}", hooks)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := ".a{bar: #4#;font: x;text-decoration: underline}@media print{.b{c: #d#;}}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if strings.Join(seen, ",") != "bar,drop,font,c" {
		t.Errorf("expected document order, got %v", seen)
	}
}

func TestWalk_DocumentHook(t *testing.T) {
	hooks := Hooks{
		Declaration: func(d Declaration) ([]Declaration, error) {
			return []Declaration{d, {Key: d.Key + "-copy", Value: d.Value}}, nil
		},
		Document: func(decls []*Declaration) error {
			if len(decls) != 4 {
				return errors.New("unexpected declaration count")
			}

			for _, d := range decls {
				d.Value = strings.ToUpper(d.Value)
			}

			return nil
		},
	}

	got, err := Walk(".a{x: a}.b{y: b;}", hooks)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := ".a{x: A;x-copy: A}.b{y: B;y-copy: B;}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWalk_HookError(t *testing.T) {
	boom := errors.New("boom")

	_, err := Walk(".a{x: 1}", Hooks{
		Declaration: func(Declaration) ([]Declaration, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}

	_, err = Walk(".a{x: 1}", Hooks{
		Document: func([]*Declaration) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected %v, got %v", boom, err)
	}
}

func TestDeclarations(t *testing.T) {
	decls, err := Declarations(".a{--x: 1; color: \"color(--x)\"}@media print{.b{y: 2}}")
	if err != nil {
		t.Fatalf("declarations: %v", err)
	}

	want := []Declaration{
		{Key: "--x", Value: "1"},
		{Key: "color", Value: `"color(--x)"`},
		{Key: "y", Value: "2"},
	}

	if len(decls) != len(want) {
		t.Fatalf("expected %d declarations, got %d", len(want), len(decls))
	}

	for i := range want {
		if decls[i] != want[i] {
			t.Errorf("expected %+v, got %+v", want[i], decls[i])
		}
	}
}
