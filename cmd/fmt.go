package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/google/subcommands"
)

// fmtCmd holds the flags for the 'fmt' subcommand.
type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `sfo fmt

  Validates and rewrites the ledger file in its canonical form: grouped by
  instrument, chronological, ISO dates, undecorated amounts, recomputed
  average costs. Malformed records are reported and dropped from the
  rewritten file.

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	out, err := os.Create(cfg.LedgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rewriting ledger %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := stockfolio.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger %q: %v\n", cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Formatted %d transactions in %s\n", ledger.Len(), cfg.LedgerFile)
	return subcommands.ExitSuccess
}
