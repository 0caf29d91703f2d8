// Command ampsim runs audio through the guitar amp simulator.
//
// Usage:
//
//	ampsim render [flags] <input.wav> <output.wav>
//	ampsim play [flags] <input.wav>
//	ampsim params [flags]
//
// Flag defaults can be read from a JSON file with --config, or from
// ~/.config/ampsim/config.json when it exists. Keys are flag names, e.g.
//
//	{"drive": "12", "cabinet": "4x12", "block_size": "256"}
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI is the command-line grammar.
type CLI struct {
	Config    kong.ConfigFlag  `help:"JSON file with flag defaults." placeholder:"FILE"`
	LogLevel  string           `help:"Log level: debug, info, warn or error." default:"warn" env:"AMPSIM_LOG_LEVEL"`
	LogFormat string           `help:"Log format." enum:"text,json" default:"text" env:"AMPSIM_LOG_FORMAT"`
	Version   kong.VersionFlag `short:"v" help:"Print version and exit."`

	Render RenderCmd `cmd:"" help:"Process a WAV file through the amp and write the result."`
	Play   PlayCmd   `cmd:"" help:"Play a WAV file through the amp on the default audio device."`
	Params ParamsCmd `cmd:"" help:"List the amp parameters and their current values."`
}

func parser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	color := isTerminal(os.Stdout)

	base := []kong.Option{
		kong.Name("ampsim"),
		kong.Description("Guitar amp and cabinet simulator"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Configuration(kong.JSON, "~/.config/ampsim/config.json"),
		kong.Help(styledHelpPrinter(newStyles(color))),
	}

	return kong.New(cli, append(base, options...)...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli CLI

	k, err := parser(&cli, kong.BindTo(ctx, (*context.Context)(nil)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := k.Parse(os.Args[1:])
	k.FatalIfErrorf(err)

	log, err := newLogger(cli.LogLevel, cli.LogFormat, os.Stderr, isTerminal(os.Stderr))
	if err != nil {
		printError(err)
		os.Exit(2)
	}

	if err := kctx.Run(log); err != nil {
		printError(err)
		os.Exit(1)
	}
}
