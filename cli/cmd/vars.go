package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/cssfn/log"
	"github.com/ardnew/cssfn/style"
)

// Vars prints the custom properties a live render of the stylesheets
// publishes.
type Vars struct {
	Sources []string `arg:"" default:"-" help:"Stylesheet file(s) or '-' for stdin" name:"source" optional:""`
	Format  string   `       default:"yaml" enum:"yaml,json" help:"Output format (${enum})"          short:"F"`
	Indent  int      `       default:"2"                     help:"Indent width, 0 for compact output" short:"i"`
}

// Run executes the vars command.
func (v *Vars) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := newSink(ctx, v.Sources)
	if err != nil {
		return err
	}

	u := style.New(
		registryFrom(ctx),
		providerFrom(ctx),
		doc,
		style.WithCSSVars(true),
		style.WithLogger(log.Default()),
	)

	if err := u.Update(ctx, false); err != nil {
		return err
	}

	vars := doc.vars
	if vars == nil {
		vars = map[string]string{}
	}

	var data []byte

	switch v.Format {
	case "json":
		if v.Indent > 0 {
			data, err = json.MarshalIndent(vars, "", strings.Repeat(" ", v.Indent))
		} else {
			data, err = json.Marshal(vars)
		}

		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		data = append(data, '\n')

	default:
		opts := []yaml.EncodeOption{yaml.Flow(true)}
		if v.Indent > 0 {
			opts = []yaml.EncodeOption{yaml.Indent(v.Indent)}
		}

		data, err = yaml.MarshalContext(ctx, vars, opts...)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	}

	log.DebugContext(ctx, "vars complete",
		slog.Int("variables", len(vars)),
		slog.String("format", v.Format),
	)

	_, out := ioFrom(ctx)

	if _, err := out.Write(data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
