package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/cssfn/lang"
)

// Eval evaluates one expression against the palette context.
type Eval struct {
	Expr string `arg:"" help:"Expression to evaluate, e.g. 'opacity(color(color-8), 0.5)'" name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	lctx, err := providerFrom(ctx).Context(ctx)
	if err != nil {
		return err
	}

	v, err := lang.Evaluate(e.Expr, lctx, registryFrom(ctx))
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	_, out := ioFrom(ctx)

	_, err = fmt.Fprintln(out, v.String())

	return err
}
