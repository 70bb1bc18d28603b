package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func testTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func writeInputFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputsYAML(t *testing.T) {
	path := writeInputFile(t, "unit.yaml", `
fuel: GAS_TANK
calendar_age_years: 9
house_psi: 72
street_hardness_gpg: 12
location: ATTIC
has_drain_pan: false
`)

	in, err := loadInputs(path)
	require.NoError(t, err)
	assert.Equal(t, model.FuelGasTank, in.Fuel)
	assert.Equal(t, 9.0, in.CalendarAgeYears)
	assert.Equal(t, 72.0, in.HousePSI)
	assert.Equal(t, model.LocationAttic, in.Location)
}

func TestLoadInputsJSON(t *testing.T) {
	path := writeInputFile(t, "unit.json", `{
		"fuel": "TANKLESS_GAS",
		"calendar_age_years": 4,
		"tankless": {"has_isolation_valves": true, "btu_rating": 199000, "gas_line_size": "1/2"}
	}`)

	in, err := loadInputs(path)
	require.NoError(t, err)
	assert.Equal(t, model.FuelTanklessGas, in.Fuel)
	require.NotNil(t, in.Tankless)
	assert.Equal(t, 199000.0, in.Tankless.BTURating)
	assert.Equal(t, model.GasLineHalf, in.Tankless.GasLineSize)
}

func TestLoadInputsRejectsUnknownFuel(t *testing.T) {
	path := writeInputFile(t, "unit.yaml", "fuel: COLD_FUSION\n")

	_, err := loadInputs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fuel type")
}

func TestLoadInputsMissingFile(t *testing.T) {
	_, err := loadInputs(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	registerInputFlags(cmd)
	return cmd
}

func TestResolveInputsFromFuelFlag(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("fuel", "hybrid"))
	require.NoError(t, cmd.Flags().Set("age", "11"))
	require.NoError(t, cmd.Flags().Set("psi", "82"))
	require.NoError(t, cmd.Flags().Set("location", "attic"))

	in, err := resolveInputs(cmd)
	require.NoError(t, err)
	assert.Equal(t, model.FuelHybrid, in.Fuel)
	assert.Equal(t, 11.0, in.CalendarAgeYears)
	assert.Equal(t, 82.0, in.HousePSI)
	assert.Equal(t, model.LocationAttic, in.Location)
	require.NotNil(t, in.Hybrid)
}

func TestResolveInputsFromFile(t *testing.T) {
	path := writeInputFile(t, "unit.yaml", "fuel: ELECTRIC_TANK\ncalendar_age_years: 7\n")

	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("input", path))
	require.NoError(t, cmd.Flags().Set("hardness", "15"))

	in, err := resolveInputs(cmd)
	require.NoError(t, err)
	assert.Equal(t, model.FuelElectricTank, in.Fuel)
	assert.Equal(t, 7.0, in.CalendarAgeYears)
	assert.Equal(t, 15.0, in.StreetHardnessGPG)
}

func TestResolveInputsRequiresSource(t *testing.T) {
	_, err := resolveInputs(newFlagCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input or --fuel")
}

func TestResolveInputsRejectsUnknownFuel(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("fuel", "plasma"))

	_, err := resolveInputs(cmd)
	assert.Error(t, err)
}

func TestApplyInputOverridesLeavesUnsetFieldsAlone(t *testing.T) {
	cmd := newFlagCmd()
	in := model.DefaultInputs(model.FuelGasTank)

	out := applyInputOverrides(cmd, in)
	assert.Equal(t, in, out)
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "550e8400", truncateID("550e8400-e29b-41d4-a716-446655440000"))
	assert.Equal(t, "short", truncateID("short"))
}
