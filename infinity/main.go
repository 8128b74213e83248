package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Triton1605/Infinity/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	// Providers register themselves on import.
	_ "github.com/Triton1605/Infinity/coinbase"
	_ "github.com/Triton1605/Infinity/yahoo"
)

// completion describes the CLI for shell completion. It runs and exits before
// flag parsing when the shell asks for completions.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"add":     {},
		"update":  {Flags: map[string]complete.Predictor{"j": predict.Something}},
		"remove":  {},
		"list":    {},
		"view":    {},
		"search":  {Flags: map[string]complete.Predictor{"class": predict.Set{"equity", "crypto", "commodity", "future", "bond"}}},
		"export":  {Flags: map[string]complete.Predictor{"format": predict.Set{"csv", "json"}, "o": predict.Files("*")}},
		"project": {Sub: map[string]*complete.Command{"new": {}, "show": {}, "mv": {}, "rm": {}}},
		"chart": {Flags: map[string]complete.Predictor{
			"p":     predict.Something,
			"type":  predict.Set{"line", "bar", "candlestick"},
			"res":   predict.Set{"daily", "weekly", "monthly"},
			"range": predict.Set{"all", "1m", "3m", "6m", "1y", "5y"},
		}},
		"topic":   {},
		"assist":  {},
		"version": {},
	},
	Flags: map[string]complete.Predictor{
		"data-dir": predict.Dirs("*"),
		"plain":    predict.Nothing,
	},
}

func main() {
	completion.Complete("infinity")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
