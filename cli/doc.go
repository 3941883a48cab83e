// Package cli contains the command line interface for cssfn.
//
// # Usage
//
//	cssfn [flags] [render] [FILE ...]
//	cssfn vars [FILE ...]
//	cssfn eval EXPR
//	cssfn funcs [PATTERN]
//	cssfn repl
//	cssfn init
//
// Render is the default command, so "cssfn site.css" renders site.css to
// stdout. A source of "-" reads stdin.
//
// # Context and plugins
//
// The palette given with --context supplies the colors, fonts, numbers and
// strings that expressions refer to. Without it every reference is
// undefined.
//
// Plugin files add functions and declaration replacers. They are loaded in
// this order, each file at most once:
//
//   - files named with --plugin
//   - *.yaml and *.yml files in the --plugin-path directories
//   - the same in the directories listed by CSSFN_PLUGIN_PATH
//   - the same in the plugins directory under the configuration directory
//
// # Configuration
//
// Flags may also be set in config.yaml under the user configuration
// directory ([os.UserConfigDir]), one key per flag name:
//
//	log-level: info
//	context: ~/site/palette.yaml
//	plugin-path:
//	  - ~/site/plugins
//
// "cssfn init" writes the current flag values to that file. Flags given on
// the command line override it.
//
// # Logging options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: text or json
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ...)
//   - --[no-]log-caller: include the caller
//   - --[no-]log-pretty: colorize text output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o cssfn .
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: profile output directory (default: the pprof directory
//     under the user cache directory)
package cli
