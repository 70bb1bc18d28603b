package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config.yaml is picked up.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "opterra.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.AssessPerMin)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrent)

	gas := cfg.Pricing.Equipment["GAS_TANK"]
	assert.Equal(t, 1600.0, gas.Low)
	assert.Equal(t, 2600.0, gas.High)

	premium := cfg.Pricing.Tiers["PREMIUM"]
	assert.Equal(t, 15, premium.WarrantyYears)
	assert.Equal(t, 1.55, premium.Multiplier)
	assert.Contains(t, premium.Includes, "isolation_valves")

	assert.Equal(t, 350.0, cfg.Pricing.Infrastructure["prv"])
	assert.Equal(t, 1500.0, cfg.Pricing.Softener.UnitCost)
}

func TestLoadFromFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/opterra
server:
  port: 9191
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/opterra", cfg.Store.DatabaseURL)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 20, cfg.Server.AssessBurst)
	assert.Equal(t, 2600.0, cfg.Pricing.Equipment["GAS_TANK"].High)
}

func TestLoadFromEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("OPTERRA_STORE_DRIVER", "postgres")
	t.Setenv("OPTERRA_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "shout", Format: "json"}))
}
