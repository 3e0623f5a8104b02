package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/rulex/cli/cmd"
	"github.com/ardnew/rulex/pkg"
)

// CLI is the rulex command line.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Lex   cmd.Lex   `cmd:"" help:"Print the tokens of a source."`
	Parse cmd.Parse `cmd:"" help:"Print the expression trees of a calculator source."`
	Eval  cmd.Eval  `cmd:"" help:"Evaluate calculator expressions." default:"withargs"`
	Repl  cmd.Repl  `cmd:"" help:"Start an interactive calculator."`
}

// Run parses args and executes the selected command. The exit function is
// called by kong for --help, --version and usage errors.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, exit, nil, args)
}

func run(ctx context.Context, exit func(code int), extra []kong.Option, args []string) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":            pkg.Version(),
			cmd.ConfigIdentifier: filepath.Join(pkg.ConfigDir(), baseConfig),
			cmd.CacheIdentifier:  pkg.CacheDir(),
		}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
		kong.Configuration(kong.JSON, configFiles(".json")...),
		kong.Configuration(resolveYAML, configFiles(".yaml")...),
	}

	parser, err := kong.New(&cli, append(opts, extra...)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ktx.BindTo(ctx, (*context.Context)(nil))

	defer cli.Log.start(ctx)()
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
