package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the maintenance schedule for a unit",
	RunE:  runSchedule,
}

func init() {
	registerInputFlags(scheduleCmd)
	scheduleCmd.Flags().Bool("why", false, "include the explanation for each task")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	why, _ := cmd.Flags().GetBool("why")

	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	result := newEngine().Evaluate(in, time.Now())
	if len(result.Maintenance) == 0 {
		fmt.Println("No maintenance tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tDUE\tURGENCY\tBENEFIT")
	for _, t := range result.Maintenance {
		due := fmt.Sprintf("%d mo", t.MonthsUntilDue)
		switch t.Urgency {
		case model.UrgencyOverdue:
			due = "now"
		case model.UrgencyImpossible:
			due = "blocked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Label, due, t.Urgency, t.Benefit)
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "schedule: flush table")
	}

	if why {
		fmt.Println()
		for _, t := range result.Maintenance {
			fmt.Printf("%s: %s\n", t.Label, t.WhyExplanation)
		}
	}
	return nil
}
