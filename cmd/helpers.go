package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opterra-labs/opterra-cli/internal/engine"
	"github.com/opterra-labs/opterra-cli/internal/model"
	"github.com/opterra-labs/opterra-cli/internal/store"
)

// newEngine builds the engine from loaded config.
func newEngine() *engine.Engine {
	return engine.New(cfg.Pricing)
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadInputs reads a forensic input file. YAML and JSON are both accepted;
// the extension decides the decoder.
func loadInputs(path string) (model.ForensicInputs, error) {
	var in model.ForensicInputs

	data, err := os.ReadFile(path)
	if err != nil {
		return in, eris.Wrapf(err, "read input file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &in)
	default:
		err = yaml.Unmarshal(data, &in)
	}
	if err != nil {
		return in, eris.Wrapf(err, "parse input file %s", path)
	}

	if !in.Fuel.IsValid() {
		return in, eris.Errorf("input file %s: unknown fuel type %q", path, in.Fuel)
	}
	return in, nil
}

// applyInputOverrides layers CLI flag values over loaded inputs so a saved
// file can be re-assessed under what-if conditions without editing it.
func applyInputOverrides(cmd *cobra.Command, in model.ForensicInputs) model.ForensicInputs {
	if v, _ := cmd.Flags().GetFloat64("age"); cmd.Flags().Changed("age") {
		in.CalendarAgeYears = v
	}
	if v, _ := cmd.Flags().GetFloat64("psi"); cmd.Flags().Changed("psi") {
		in.HousePSI = v
	}
	if v, _ := cmd.Flags().GetInt("occupants"); cmd.Flags().Changed("occupants") {
		in.Occupants = v
	}
	if v, _ := cmd.Flags().GetFloat64("hardness"); cmd.Flags().Changed("hardness") {
		in.StreetHardnessGPG = v
	}
	if v, _ := cmd.Flags().GetString("location"); v != "" {
		in.Location = model.InstallLocation(strings.ToUpper(v))
	}
	if v, _ := cmd.Flags().GetString("usage"); v != "" {
		in.Usage = model.UsageIntensity(strings.ToUpper(v))
	}
	return in
}

func registerInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("input", "", "path to forensic inputs file (yaml or json)")
	f.String("fuel", "", "start from typical inputs for a fuel type instead of a file (GAS_TANK, ELECTRIC_TANK, HYBRID, TANKLESS_GAS, TANKLESS_ELECTRIC)")
	f.Float64("age", 0, "override calendar age in years")
	f.Float64("psi", 0, "override house pressure reading")
	f.Int("occupants", 0, "override household occupant count")
	f.Float64("hardness", 0, "override street hardness in grains per gallon")
	f.String("location", "", "override install location")
	f.String("usage", "", "override usage intensity (LIGHT, NORMAL, HEAVY)")
}

// resolveInputs loads inputs from --input, or builds defaults from --fuel,
// then applies flag overrides.
func resolveInputs(cmd *cobra.Command) (model.ForensicInputs, error) {
	path, _ := cmd.Flags().GetString("input")
	fuel, _ := cmd.Flags().GetString("fuel")

	var in model.ForensicInputs
	switch {
	case path != "":
		loaded, err := loadInputs(path)
		if err != nil {
			return in, err
		}
		in = loaded
	case fuel != "":
		ft := model.FuelType(strings.ToUpper(fuel))
		if !ft.IsValid() {
			return in, eris.Errorf("unknown fuel type %q", fuel)
		}
		in = model.DefaultInputs(ft)
	default:
		return in, eris.New("either --input or --fuel is required")
	}

	return applyInputOverrides(cmd, in), nil
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
