package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverCLI struct {
	LogLevel string   `default:"info" name:"log-level"`
	Pretty   bool     `default:"true" name:"log-pretty" negatable:""`
	Context  string   `name:"context"`
	Plugin   []string `name:"plugin"`
	Depth    int      `default:"1"    name:"depth"`
}

func parseWithConfig(t *testing.T, conf string, args ...string) resolverCLI {
	t.Helper()

	res, err := resolve(strings.NewReader(conf))
	if err != nil {
		t.Fatal(err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli, kong.Resolvers(res))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cli
}

func TestResolve(t *testing.T) {
	conf := `
log_level: debug
log-pretty: false
context: palette.yaml
plugin:
  - a.yaml
  - b.yaml
depth: 3
`

	cli := parseWithConfig(t, conf)

	if cli.LogLevel != "debug" {
		t.Errorf("expected %q, got %q", "debug", cli.LogLevel)
	}

	if cli.Pretty {
		t.Error("expected log-pretty false")
	}

	if cli.Context != "palette.yaml" {
		t.Errorf("expected %q, got %q", "palette.yaml", cli.Context)
	}

	if len(cli.Plugin) != 2 || cli.Plugin[1] != "b.yaml" {
		t.Errorf("expected [a.yaml b.yaml], got %v", cli.Plugin)
	}

	if cli.Depth != 3 {
		t.Errorf("expected 3, got %d", cli.Depth)
	}
}

func TestResolve_FlagsOverride(t *testing.T) {
	cli := parseWithConfig(t, "log-level: debug\ndepth: 3\n", "--log-level=error")

	if cli.LogLevel != "error" {
		t.Errorf("expected %q, got %q", "error", cli.LogLevel)
	}

	if cli.Depth != 3 {
		t.Errorf("expected 3, got %d", cli.Depth)
	}
}

func TestResolve_Empty(t *testing.T) {
	cli := parseWithConfig(t, "")

	if cli.LogLevel != "info" || !cli.Pretty || cli.Depth != 1 {
		t.Errorf("expected defaults, got %+v", cli)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, conf := range []string{"- a\n- b\n", "key: [unclosed\n"} {
		if _, err := resolve(strings.NewReader(conf)); !errors.Is(err, ErrConfig) {
			t.Errorf("%q: expected ErrConfig, got %v", conf, err)
		}
	}
}

func TestFlagText(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{uint64(7), "7"},
		{int64(-2), "-2"},
		{1.5, "1.5"},
		{"x", "x"},
		{true, true},
	}

	for _, tt := range tests {
		if got := flagText(tt.in); got != tt.want {
			t.Errorf("flagText(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
