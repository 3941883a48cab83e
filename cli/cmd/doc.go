// Package cmd provides the subcommands of cssfn: render, vars, eval, funcs,
// init and repl.
//
// Commands receive everything they share through the [context.Context]
// bound by the CLI: the parsed [kong.Context] ([WithContext]), the function
// registry with plugins loaded ([WithRegistry]), the palette provider
// ([WithProvider]) and the standard streams ([WithIO]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
