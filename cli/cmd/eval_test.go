package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/cssfn/lang"
)

func TestEval(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"color(c1)", "#FFFFFF\n"},
		{`"opacity(color(c1), 0.5)"`, "rgba(255, 255, 255, 0.5)\n"},
		{"double(number(gap))", "8\n"},
		{"color(--nothing)", "undefined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx, out := testEnv(t, "")

			cmd := Eval{Expr: tt.expr}
			if err := cmd.Run(ctx); err != nil {
				t.Fatal(err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		expr string
		want error
	}{
		{"nosuch(1)", lang.ErrUnknownFunction},
		{"color(c1", lang.ErrMalformedExpression},
		{"(c1)", lang.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx, _ := testEnv(t, "")

			cmd := Eval{Expr: tt.expr}
			if err := cmd.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
