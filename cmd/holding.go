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

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display current holdings with live prices" }
func (*holdingCmd) Usage() string {
	return `sfo holding

  Displays the current portfolio holdings: one row per held instrument with
  its latest price, paid-in capital, market value and profit, plus the
  aggregate totals. Prices are fetched live; an instrument whose quote
  fails is kept in the report with an "unavailable" marker.

`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := AppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	provider := stockfolio.NewEodhd(cfg.EodhdAPIKey)
	report := stockfolio.NewHoldingReport(ctx, ledger, provider, provider, priceTimeout(cfg))

	printMarkdown(renderer.HoldingMarkdown(report))
	return subcommands.ExitSuccess
}
