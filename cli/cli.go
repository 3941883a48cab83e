package cli

import (
	"context"
	"log/slog"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cssfn/cli/cmd"
	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/log"
	"github.com/ardnew/cssfn/palette"
	"github.com/ardnew/cssfn/pkg"
	"github.com/ardnew/cssfn/plugin"
	"github.com/ardnew/cssfn/style"
)

// CLI is the top-level command-line interface for cssfn.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Context    string   `help:"Palette file providing colors, fonts and numbers." placeholder:"FILE" short:"c" type:"existingfile"`
	Plugin     []string `help:"Plugin file(s) to load."                           placeholder:"FILE" short:"P" type:"existingfile"`
	PluginPath []string `help:"Directories searched for plugin files."            placeholder:"DIR"            type:"path"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render stylesheets."`
	Vars   cmd.Vars   `cmd:""                    help:"Print the custom properties of live rendering."`
	Eval   cmd.Eval   `cmd:""                    help:"Evaluate one expression."`
	Funcs  cmd.Funcs  `cmd:""                    help:"List registered functions."`
	Repl   cmd.Repl   `cmd:""                    help:"Evaluate expressions interactively."`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file."`
}

// Run executes the cssfn CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) (err error) {
	var cli CLI

	if err = mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Name + " " + pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancelCause(ctx)
	defer func(err *error) { cancel(*err) }(&err)

	// Logger flags take effect before parsing, wherever they appear.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	provider, err := cli.provider()
	if err != nil {
		return err
	}

	reg, err := cli.registry(ctx)
	if err != nil {
		return err
	}

	ctx = cmd.WithProvider(ctx, provider)
	ctx = cmd.WithRegistry(ctx, reg)
	ctx = cmd.WithContext(ctx, ktx)

	return ktx.Run(ctx, &cli)
}

// provider returns the palette named by --context, or an empty context
// when none is given.
func (c *CLI) provider() (style.Provider, error) {
	if c.Context == "" {
		return style.ProviderFunc(func(context.Context) (lang.Context, error) {
			return lang.EmptyContext(), nil
		}), nil
	}

	p, err := palette.LoadFile(c.Context)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// registry returns a registry with the builtins and every plugin: first
// those named by --plugin, then those found on the plugin search path.
// A file reached both ways is loaded once.
func (c *CLI) registry(ctx context.Context) (*lang.Registry, error) {
	reg := lang.NewRegistry()

	var files []string

	for _, f := range append(slices.Clone(c.Plugin), pluginFiles(pluginDirs(c.PluginPath...))...) {
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}

	for _, f := range files {
		set, err := plugin.LoadFile(f, plugin.WithLogger(log.Default()))
		if err != nil {
			return nil, err
		}

		if err := set.Register(reg); err != nil {
			return nil, err
		}

		log.DebugContext(ctx, "plugin loaded",
			slog.String("file", f),
			slog.Any("functions", set.Functions()),
		)
	}

	return reg, nil
}
