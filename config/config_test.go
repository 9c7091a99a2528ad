package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_EODHD_KEY", "secret-key")
	path := writeConfig(t, `
ledger_file: ledger.json
eodhd_api_key: ${TEST_EODHD_KEY}
price_timeout: 5s
strict_disposals: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ledger.json", cfg.LedgerFile)
	assert.Equal(t, "secret-key", cfg.EodhdAPIKey)
	assert.Equal(t, 5*time.Second, cfg.PriceTimeout.Std())
	assert.True(t, cfg.StrictDisposals)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "investment_data.json", cfg.LedgerFile)
	assert.Equal(t, "stock_prices.json", cfg.CacheFile)
	assert.Equal(t, 10*time.Second, cfg.PriceTimeout.Std())
	assert.False(t, cfg.StrictDisposals)
}

func TestLoadOrDefaultInvalid(t *testing.T) {
	path := writeConfig(t, `price_timeout: -3s`)
	_, err := LoadOrDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_timeout")
}

func TestLoadBadYaml(t *testing.T) {
	path := writeConfig(t, `ledger_file: [unclosed`)
	_, err := Load(path)
	require.Error(t, err)
}
