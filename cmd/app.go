// Package cmd implements the CLI application to track a stock portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "market data")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&scoreCmd{}, "reports")

	c.Register(&fmtCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
}

// As a CLI application with a short-lived lifecycle, globals are fine here.

var configFile = flag.String("config", "sfo.yaml", "Path to the optional configuration file")
var ledgerFile = flag.String("ledger-file", "", "Path to the transaction records file (JSON array), overrides the configuration file")
var cacheFile = flag.String("cache-file", "", "Path to the closing price cache file, overrides the configuration file")

// AppConfig loads the configuration file and folds the global flag
// overrides into it.
func AppConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if *cacheFile != "" {
		cfg.CacheFile = *cacheFile
	}
	return cfg, nil
}

// DecodeLedger reads and normalizes the app ledger file. Malformed records
// are reported on stderr, the clean ones are still loaded.
func DecodeLedger(cfg *config.Config) (*stockfolio.Ledger, error) {
	f, err := os.Open(cfg.LedgerFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", cfg.LedgerFile, err)
	}
	defer f.Close()

	l, err := stockfolio.DecodeLedger(f)
	if l != nil && err != nil {
		var malformed *stockfolio.MalformedRecordError
		if errors.As(err, &malformed) {
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed records:\n%v\n", err)
			return l, nil
		}
	}
	return l, err
}

// DecodeMarket reads the app price cache, starting empty when the file
// does not exist yet.
func DecodeMarket(cfg *config.Config) (*stockfolio.Market, error) {
	f, err := os.Open(cfg.CacheFile)
	if errors.Is(err, fs.ErrNotExist) {
		return stockfolio.NewMarket(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price cache %q: %w", cfg.CacheFile, err)
	}
	defer f.Close()
	return stockfolio.DecodeMarket(f)
}

// EncodeMarket writes the price cache back to the app cache file.
func EncodeMarket(cfg *config.Config, m *stockfolio.Market) error {
	f, err := os.Create(cfg.CacheFile)
	if err != nil {
		return fmt.Errorf("cannot write price cache %q: %w", cfg.CacheFile, err)
	}
	defer f.Close()
	return stockfolio.EncodeMarket(f, m)
}

// priceTimeout returns the configured per-instrument lookup bound.
func priceTimeout(cfg *config.Config) time.Duration {
	if t := cfg.PriceTimeout.Std(); t > 0 {
		return t
	}
	return stockfolio.DefaultPriceTimeout
}

// buildOptions translates the configuration into history build options.
func buildOptions(cfg *config.Config) []stockfolio.BuildOption {
	if cfg.StrictDisposals {
		return []stockfolio.BuildOption{stockfolio.WithStrictDisposals()}
	}
	return nil
}
