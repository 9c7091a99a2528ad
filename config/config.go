// Package config loads the optional stockfolio configuration file.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "5s".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds file-level defaults for the sfo command. Every field can be
// overridden by a command-line flag.
type Config struct {
	// LedgerFile is the path to the transaction records file (JSON array).
	LedgerFile string `yaml:"ledger_file"`
	// CacheFile is the path to the daily closing price cache.
	CacheFile string `yaml:"cache_file"`
	// EodhdAPIKey authenticates against EODHD. Supports ${VAR} expansion.
	EodhdAPIKey string `yaml:"eodhd_api_key"`
	// PriceTimeout bounds each per-instrument price lookup.
	PriceTimeout Duration `yaml:"price_timeout"`
	// StrictDisposals rejects sells exceeding the recorded position
	// instead of clamping the position at zero.
	StrictDisposals bool `yaml:"strict_disposals"`
}

func (c *Config) applyDefaults() {
	if c.LedgerFile == "" {
		c.LedgerFile = "investment_data.json"
	}
	if c.CacheFile == "" {
		c.CacheFile = "stock_prices.json"
	}
	if c.PriceTimeout == 0 {
		c.PriceTimeout = Duration(10 * time.Second)
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs error
	if c.LedgerFile == "" {
		errs = errors.Join(errs, errors.New("ledger_file must not be empty"))
	}
	if c.CacheFile == "" {
		errs = errors.Join(errs, errors.New("cache_file must not be empty"))
	}
	if c.PriceTimeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("price_timeout must not be negative, got %s", c.PriceTimeout))
	}
	return errs
}
