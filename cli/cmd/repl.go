package cmd

import (
	"context"

	"github.com/ardnew/cssfn/cli/cmd/repl"
	"github.com/ardnew/cssfn/log"
)

// Repl starts an interactive session evaluating expressions.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	lctx, err := providerFrom(ctx).Context(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, lctx, registryFrom(ctx), cacheDir, log.Default())
}
