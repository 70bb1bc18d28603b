package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/opterra-labs/opterra-cli/internal/engine"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project unit degradation forward",
	Long: `Extrapolate biological age, failure probability, and health score
month by month, assuming the installation stays as it is:

  project --input jobs/smith-residence.yaml --months 24
  project --fuel GAS_TANK --age 8 --months 36 --format json`,
	RunE: runProject,
}

func init() {
	registerInputFlags(projectCmd)
	f := projectCmd.Flags()
	f.Int("months", 24, "projection horizon in months")
	f.Int("step", 3, "print every Nth month (table format only)")
	f.String("format", "table", "output format: table or json")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	months, _ := cmd.Flags().GetInt("months")
	step, _ := cmd.Flags().GetInt("step")
	format, _ := cmd.Flags().GetString("format")

	if months <= 0 {
		return eris.Errorf("project: --months must be positive (got %d)", months)
	}
	if step <= 0 {
		step = 1
	}

	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	points := engine.Project(in, months)

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(points), "project: encode json")
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tBIO AGE\tFAIL PROB\tHEALTH")
		for _, p := range points {
			if p.MonthOffset%step != 0 && p.MonthOffset != months {
				continue
			}
			fmt.Fprintf(w, "+%d\t%.1f yrs\t%.1f%%\t%d\n",
				p.MonthOffset, p.BioAge, p.FailProb, p.HealthScore)
		}
		return eris.Wrap(w.Flush(), "project: flush table")
	default:
		return eris.Errorf("project: --format must be table or json (got %q)", format)
	}
}
