package cmd

import (
	"context"
	"fmt"
	"strings"
)

// Funcs lists the functions expressions may call.
type Funcs struct {
	Pattern string `arg:"" help:"Only list names containing this text" name:"pattern" optional:""`
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) error {
	_, out := ioFrom(ctx)

	for _, name := range registryFrom(ctx).Names() {
		if !strings.Contains(name, f.Pattern) {
			continue
		}

		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}

	return nil
}
