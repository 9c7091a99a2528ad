package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/config"
	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	update bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the day-by-day value of one position" }
func (*historyCmd) Usage() string {
	return `sfo history [-u] <ticker>

  Reconstructs the position day by day from the ledger and the cached
  closing prices: shares held, capital paid in, market value and holding
  time for every trading day since the first transaction.

Usage Example:
$ sfo history AAPL

`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "refresh the price cache before building the history")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(renderer.HistoryMarkdown(instrument, snapshots))
	return subcommands.ExitSuccess
}

// buildSnapshots loads the ledger and the price cache, optionally
// refreshing the cache first, and builds the instrument's daily history.
func buildSnapshots(ctx context.Context, cfg *config.Config, instrument string, update bool) ([]stockfolio.DailySnapshot, subcommands.ExitStatus) {
	ledger, err := DecodeLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	if len(ledger.Transactions(instrument)) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no transactions for %q in %s\n", instrument, cfg.LedgerFile)
		return nil, subcommands.ExitFailure
	}

	market, err := DecodeMarket(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading price cache: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	if update {
		if status := updateMarket(ctx, cfg, ledger, market); status != subcommands.ExitSuccess {
			return nil, status
		}
	}

	snapshots, err := stockfolio.BuildHistory(ledger.Transactions(instrument), market.Series(instrument), buildOptions(cfg)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building history for %s: %v\n", instrument, err)
		return nil, subcommands.ExitFailure
	}
	return snapshots, subcommands.ExitSuccess
}
