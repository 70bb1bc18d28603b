package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults <fuel>",
	Short: "Emit a starter input file for a fuel type",
	Long: `Write a forensic input file pre-filled with typical values for the
given fuel type, ready to edit in the field:

  defaults GAS_TANK > jobs/new-inspection.yaml
  defaults TANKLESS_GAS --output jobs/new-tankless.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ft := model.FuelType(strings.ToUpper(args[0]))
		if !ft.IsValid() {
			return eris.Errorf("unknown fuel type %q (valid: %v)", args[0], model.AllFuelTypes())
		}

		in := model.DefaultInputs(ft)

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return eris.Wrapf(err, "defaults: create %s", path)
			}
			defer f.Close() //nolint:errcheck
			out = f
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(in); err != nil {
			return eris.Wrap(err, "defaults: encode yaml")
		}
		return eris.Wrap(enc.Close(), "defaults: close encoder")
	},
}

func init() {
	defaultsCmd.Flags().String("output", "", "output file path (default: stdout)")
	rootCmd.AddCommand(defaultsCmd)
}
