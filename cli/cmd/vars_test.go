package cmd

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/cssfn/lang"
)

func TestVars(t *testing.T) {
	want := map[string]string{
		lang.Property(lang.Hash(`"color(c1)"`)):                     "#FFFFFF",
		lang.Property(lang.Hash(`"unit(double(number(gap)), px)"`)): "8px",
	}

	tests := []struct {
		format string
		indent int
		decode func([]byte, any) error
	}{
		{"yaml", 2, yaml.Unmarshal},
		{"yaml", 0, yaml.Unmarshal},
		{"json", 2, json.Unmarshal},
		{"json", 0, json.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx, out := testEnv(t, testSheet)

			cmd := Vars{Sources: []string{"-"}, Format: tt.format, Indent: tt.indent}
			if err := cmd.Run(ctx); err != nil {
				t.Fatal(err)
			}

			var got map[string]string
			if err := tt.decode([]byte(out.String()), &got); err != nil {
				t.Fatalf("decode %q: %v", out.String(), err)
			}

			if len(got) != len(want) {
				t.Fatalf("expected %v, got %v", want, got)
			}

			for k, v := range want {
				if got[k] != v {
					t.Errorf("%s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestVars_NoExpressions(t *testing.T) {
	ctx, out := testEnv(t, ".a{color: red}")

	cmd := Vars{Sources: []string{"-"}, Format: "json"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got := out.String(); got != "{}\n" {
		t.Errorf("expected %q, got %q", "{}\n", got)
	}
}
