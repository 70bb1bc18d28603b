package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/opterra-labs/opterra-cli/internal/model"
	"github.com/opterra-labs/opterra-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved assessments",
	Long:  "Commands for listing, viewing, and deleting persisted assessments.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assessments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		fuel, _ := cmd.Flags().GetString("fuel")
		action, _ := cmd.Flags().GetString("action")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.Filter{
			Fuel:   model.FuelType(strings.ToUpper(fuel)),
			Action: model.VerdictAction(strings.ToUpper(action)),
			Limit:  limit,
		}

		assessments, err := st.ListAssessments(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(assessments) == 0 {
			fmt.Fprintln(os.Stderr, "No saved assessments.")
			return nil
		}

		formatAssessmentList(os.Stdout, assessments)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full result of a saved assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		a, err := st.GetAssessment(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	},
}

// -- runs delete --

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteAssessment(ctx, args[0]); err != nil {
			return eris.Wrap(err, "runs delete")
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("fuel", "", "filter by fuel type")
	runsListCmd.Flags().String("action", "", "filter by verdict action (REPLACE_NOW, SERVICE_NOW, ...)")
	runsListCmd.Flags().Int("limit", 50, "max number of assessments to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatAssessmentList writes a tabular list of assessments to w.
func formatAssessmentList(out io.Writer, assessments []model.Assessment) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tLABEL\tFUEL\tACTION\tHEALTH\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t----\t------\t------\t-------")

	for _, a := range assessments {
		label := a.Label
		if len(label) > 30 {
			label = label[:27] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			truncateID(a.ID),
			label,
			a.Inputs.Fuel,
			a.Result.Verdict.Action,
			a.Result.Metrics.HealthScore,
			a.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}
