package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show replacement tier quotes for a unit",
	Long: `Print the four replacement tiers for the assessed unit. Tiers that
bundle infrastructure fixes only charge for fixes the unit actually needs:

  tiers --input jobs/smith-residence.yaml
  tiers --fuel TANKLESS_GAS --psi 85`,
	RunE: runTiers,
}

func init() {
	registerInputFlags(tiersCmd)
	rootCmd.AddCommand(tiersCmd)
}

func runTiers(cmd *cobra.Command, _ []string) error {
	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	result := newEngine().Evaluate(in, time.Now())

	p := message.NewPrinter(language.AmericanEnglish)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TIER\tWARRANTY\tEQUIPMENT\tINFRA\tTOTAL")
	for _, q := range result.Financial.Tiers {
		infra := "-"
		if q.InfraCost > 0 {
			infra = p.Sprintf("$%.0f", q.InfraCost)
		}
		fmt.Fprintf(w, "%s\t%d yr\t%s\t%s\t%s\n",
			q.Tier,
			q.WarrantyYears,
			p.Sprintf("$%.0f-$%.0f", q.EquipmentLow, q.EquipmentHigh),
			infra,
			p.Sprintf("$%.0f-$%.0f", q.TotalLow, q.TotalHigh),
		)
	}
	if err := w.Flush(); err != nil {
		return eris.Wrap(err, "tiers: flush table")
	}

	for _, q := range result.Financial.Tiers {
		if len(q.InfraIncluded) > 0 {
			fmt.Printf("\n%s includes: ", q.Tier)
			for i, item := range q.InfraIncluded {
				if i > 0 {
					fmt.Print(", ")
				}
				fmt.Print(item)
			}
			fmt.Println()
		}
	}
	return nil
}
