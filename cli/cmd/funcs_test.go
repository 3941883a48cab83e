package cmd

import (
	"strings"
	"testing"
)

func TestFuncs(t *testing.T) {
	ctx, out := testEnv(t, "")

	if err := (&Funcs{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	for _, want := range []string{"color", "double", "underline"} {
		found := false

		for _, l := range lines {
			found = found || l == want
		}

		if !found {
			t.Errorf("expected %q in %v", want, lines)
		}
	}

	ctx, out = testEnv(t, "")

	if err := (&Funcs{Pattern: "pacity"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), "opacity\nwithoutOpacity\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
