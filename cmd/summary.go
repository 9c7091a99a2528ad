package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	update bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "condense one position into its key metrics" }
func (*summaryCmd) Usage() string {
	return `sfo summary [-u] <ticker>

  Prints the position's key metrics from its reconstructed history:
  current price, average paid per share, percentage change, holding time
  and total capital invested. This is the same summary the score command
  submits for grading.

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "refresh the price cache before building the summary")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	instrument := f.Arg(0)

	cfg, err := AppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	snapshots, status := buildSnapshots(ctx, cfg, instrument, c.update)
	if status != subcommands.ExitSuccess {
		return status
	}

	summary, err := stockfolio.NewSummary(instrument, snapshots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing %s: %v\n", instrument, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(summary))
	return subcommands.ExitSuccess
}
