//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the cssfn module embedded at build time.
// It is printed by the CLI when users pass the --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default config paths and the
	// environment variable prefix.
	Name = "cssfn"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "CSS custom function evaluator"
)

// EnvPrefix returns the prefix used for environment variable identifiers,
// e.g. "CSSFN_".
func EnvPrefix() string { return strings.ToUpper(Name) + "_" }
