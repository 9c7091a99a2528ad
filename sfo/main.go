package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. Run
// `COMP_INSTALL=1 sfo` once to install it.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"update":  {},
		"holding": {},
		"history": {Flags: map[string]complete.Predictor{"u": predict.Nothing}},
		"summary": {Flags: map[string]complete.Predictor{"u": predict.Nothing}},
		"score":   {Flags: map[string]complete.Predictor{"u": predict.Nothing}},
		"fmt":     {},
		"topic":   {},
		"help":    {},
	},
	Flags: map[string]complete.Predictor{
		"config":        predict.Files("*.yaml"),
		"ledger-file":   predict.Files("*.json"),
		"cache-file":    predict.Files("*.json"),
		"eodhd-api-key": predict.Nothing,
	},
}

func main() {
	name := path.Base(os.Args[0])
	completion.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
