package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/yarnspin/cli/cmd"
	"github.com/ardnew/yarnspin/pkg"
)

// CLI is the top-level command-line interface for yarnspin.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`

	Source []string `help:"Script file(s) or '-' for stdin."                  placeholder:"FILE" short:"s"`
	Env    []string `help:"Environment file(s) of variables and functions."   placeholder:"FILE" short:"e"`
	Path   []string `help:"Directories searched for relative FILE arguments." placeholder:"DIR"  short:"I"`

	Init  cmd.Init  `cmd:"" help:"Initialize configuration file"`
	Eval  cmd.Eval  `cmd:"" default:"withargs" help:"Evaluate expressions"`
	Lex   cmd.Lex   `cmd:"" help:"Print the token stream of scripts"`
	Check cmd.Check `cmd:"" help:"Compile the expressions embedded in script commands"`
	Repl  cmd.Repl  `cmd:"" help:"Start an interactive session"`
}

// Run executes the yarnspin CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that messages logged while
	// loading the configuration honor them.
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
		kong.Configuration(kong.JSON, configPath("config.json")),
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

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSources(ctx, cli.Source, cli.Path)
	ctx = cmd.WithEnvironment(ctx, cli.Env)

	// Picks up the flags that have no early effect, such as --log-caller
	// read from the configuration file.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
