package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a single water heater",
	Long: `Run the full assessment on one unit and print the result.

Inputs come from a YAML or JSON file, or from built-in typical values for a
fuel type. Flags override individual fields either way, which makes what-if
runs cheap:

  # Assess from a field inspection file
  assess --input jobs/smith-residence.yaml

  # Same house, but what if the PRV were fixed?
  assess --input jobs/smith-residence.yaml --psi 62

  # Typical 8-year-old gas tank in an attic
  assess --fuel GAS_TANK --age 8 --location ATTIC

  # Machine-readable output, saved for later comparison
  assess --input jobs/smith-residence.yaml --format json --save`,
	RunE: runAssess,
}

func init() {
	registerInputFlags(assessCmd)
	f := assessCmd.Flags()
	f.String("format", "table", "output format: table, json, or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "persist the assessment to the store")
	f.String("label", "", "label for the saved assessment (default: input file name)")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" && format != "csv" {
		return eris.Errorf("assess: --format must be table, json, or csv (got %q)", format)
	}

	in, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "assess"))
	log.Info("assessing unit",
		zap.String("fuel", string(in.Fuel)),
		zap.Float64("age_years", in.CalendarAgeYears),
	)

	result := newEngine().Evaluate(in, time.Now())

	log.Info("assessment complete",
		zap.String("action", string(result.Verdict.Action)),
		zap.Float64("fail_prob", result.Metrics.FailProb),
		zap.Int("issues", len(result.Issues)),
	)

	if err := outputResult(result, format, outputPath); err != nil {
		return err
	}

	if save {
		label, _ := cmd.Flags().GetString("label")
		if label == "" {
			if p, _ := cmd.Flags().GetString("input"); p != "" {
				label = p
			} else {
				label = string(in.Fuel)
			}
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		a, err := st.SaveAssessment(ctx, label, in, result)
		if err != nil {
			return eris.Wrap(err, "assess: save")
		}
		fmt.Printf("Saved assessment %s\n", a.ID)
	}

	return nil
}

func outputResult(res model.OpterraResult, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "assess: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(res), "assess: encode json")
	case "csv":
		return writeResultCSV(w, res)
	default:
		return writeResultTable(w, res)
	}
}

func writeResultCSV(w *os.File, res model.OpterraResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"action", "health_score", "bio_age", "fail_prob", "years_left", "risk_level", "effective_psi", "sediment_lbs", "critical_issues", "monthly_budget"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "assess: write CSV header")
	}

	m := res.Metrics
	row := []string{
		string(res.Verdict.Action),
		strconv.Itoa(m.HealthScore),
		fmt.Sprintf("%.1f", m.BioAge),
		fmt.Sprintf("%.1f", m.FailProb),
		fmt.Sprintf("%.1f", m.YearsLeftCurrent),
		strconv.Itoa(m.RiskLevel),
		fmt.Sprintf("%.0f", m.EffectivePSI),
		fmt.Sprintf("%.1f", m.SedimentLbs),
		strconv.Itoa(res.CriticalCount()),
		fmt.Sprintf("%.0f", res.Financial.MonthlyBudget),
	}
	return eris.Wrap(cw.Write(row), "assess: write CSV row")
}

func writeResultTable(w *os.File, res model.OpterraResult) error {
	m := res.Metrics

	fmt.Fprintf(w, "Verdict:  %s  [%s]\n", res.Verdict.Title, res.Verdict.Action)
	fmt.Fprintf(w, "Reason:   %s\n\n", res.Verdict.Reason)

	fmt.Fprintf(w, "Health score:    %d / 100\n", m.HealthScore)
	fmt.Fprintf(w, "Biological age:  %.1f yrs (calendar stress rate %.2fx)\n", m.BioAge, m.AgingRate)
	fmt.Fprintf(w, "Failure risk:    %.1f%% within 12 months\n", m.FailProb)
	fmt.Fprintf(w, "Remaining life:  %.1f yrs at current conditions\n", m.YearsLeftCurrent)
	fmt.Fprintf(w, "Effective PSI:   %.0f\n", m.EffectivePSI)
	if m.SedimentLbs > 0 {
		fmt.Fprintf(w, "Sediment:        %.1f lbs (anode shield %.1f yrs left)\n", m.SedimentLbs, m.ShieldLifeYears)
	}
	if m.DescaleStatus != "" {
		fmt.Fprintf(w, "Descale status:  %s\n", m.DescaleStatus)
	}
	fmt.Fprintf(w, "Location risk:   %d / 5\n", m.RiskLevel)
	if m.PrimaryStressor != "none" {
		fmt.Fprintf(w, "Primary stress:  %s\n", m.PrimaryStressor)
	}

	if len(res.Issues) > 0 {
		fmt.Fprintf(w, "\nIssues (%d):\n", len(res.Issues))
		for _, is := range res.Issues {
			marker := strings.ToUpper(string(is.Severity))
			fmt.Fprintf(w, "  [%-8s] %s", marker, is.Title)
			if is.Value != "" {
				fmt.Fprintf(w, " (%s)", is.Value)
			}
			fmt.Fprintln(w)
		}
	}

	if len(res.Maintenance) > 0 {
		fmt.Fprintf(w, "\nMaintenance:\n")
		for _, t := range res.Maintenance {
			fmt.Fprintf(w, "  [%-10s] %s", t.Urgency, t.Label)
			if t.Urgency == model.UrgencyUpcoming || t.Urgency == model.UrgencyDue {
				fmt.Fprintf(w, " (in %d mo)", t.MonthsUntilDue)
			}
			fmt.Fprintln(w)
		}
	}

	f := res.Financial
	fmt.Fprintf(w, "\nReplacement: $%.0f-$%.0f, target %s (budget $%.0f/mo, urgency %s)\n",
		f.CostLow, f.CostHigh, f.TargetReplacementDate.Format("Jan 2006"), f.MonthlyBudget, f.BudgetUrgency)

	hw := res.HardWaterTax
	if hw.Recommendation == model.SoftenerRecommend || hw.Recommendation == model.SoftenerConsider {
		fmt.Fprintf(w, "Hard water:  %.0f gpg costs ~$%.0f/yr; softener pays back in %.1f yrs\n",
			hw.HardnessGPG, hw.TotalAnnualLoss, hw.PaybackYears)
	}

	return nil
}
