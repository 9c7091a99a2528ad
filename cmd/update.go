package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/config"
	"github.com/etnz/stockfolio/date"
	"github.com/google/subcommands"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh the local closing price cache" }
func (*updateCmd) Usage() string {
	return `sfo update

  Fetches missing daily closing prices from EODHD for every instrument in
  the ledger, from the day after the latest cached close (or the first
  transaction date for a new instrument) through today, and saves the
  cache. Requires an EODHD API key (flag -eodhd-api-key or environment
  variable EODHD_API_KEY).

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	market, err := DecodeMarket(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading price cache: %v\n", err)
		return subcommands.ExitFailure
	}

	if status := updateMarket(ctx, cfg, ledger, market); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("Price cache %s is up to date.\n", cfg.CacheFile)
	return subcommands.ExitSuccess
}

// updateMarket refreshes the cache from EODHD and saves it. Partial
// updates are saved too, so a flaky instrument does not lose the rest.
func updateMarket(ctx context.Context, cfg *config.Config, ledger *stockfolio.Ledger, market *stockfolio.Market) subcommands.ExitStatus {
	provider := stockfolio.NewEodhd(cfg.EodhdAPIKey)

	updateErr := market.Update(ctx, provider, ledger, date.Today())
	if err := EncodeMarket(cfg, market); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving price cache: %v\n", err)
		return subcommands.ExitFailure
	}
	if updateErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: some instruments did not update:\n%v\n", updateErr)
	}
	return subcommands.ExitSuccess
}
