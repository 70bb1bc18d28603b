package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Assess every input file in a directory",
	Long: `Run the assessment over all .yaml, .yml, and .json input files in a
directory and write a summary workbook. Useful for sweeping a route's worth
of inspections at the end of the day:

  batch jobs/2026-08-27 --output route-summary.xlsx
  batch jobs/2026-08-27 --format csv --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("format", "xlsx", "summary format: xlsx or csv")
	f.String("output", "", "summary file path (default: assessments.<format>)")
	f.Bool("save", false, "persist each assessment to the store")
	f.Int("limit", 0, "max number of files to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

// batchRow is one assessed unit in the summary.
type batchRow struct {
	File   string
	Inputs model.ForensicInputs
	Result model.OpterraResult
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	limit, _ := cmd.Flags().GetInt("limit")

	if format != "xlsx" && format != "csv" {
		return eris.Errorf("batch: --format must be xlsx or csv (got %q)", format)
	}
	if outputPath == "" {
		outputPath = "assessments." + format
	}

	files, err := collectInputFiles(args[0], limit)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		zap.L().Info("no input files found", zap.String("dir", args[0]))
		return nil
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", cfg.Batch.MaxConcurrent),
	)

	var st storeSaver
	if save {
		s, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck
		st = s
	}

	rows, failed := assessBatch(ctx, files, cfg.Batch.MaxConcurrent, st)

	zap.L().Info("batch complete",
		zap.Int("succeeded", len(rows)),
		zap.Int64("failed", failed),
	)
	if len(rows) == 0 {
		return eris.New("batch: no assessments succeeded")
	}

	switch format {
	case "csv":
		err = writeBatchCSV(outputPath, rows)
	default:
		err = writeBatchXLSX(outputPath, rows)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d assessments to %s\n", len(rows), outputPath)
	return nil
}

// storeSaver is the slice of the store that batch needs.
type storeSaver interface {
	SaveAssessment(ctx context.Context, label string, in model.ForensicInputs, res model.OpterraResult) (*model.Assessment, error)
}

// assessBatch evaluates files concurrently. Individual file failures are
// logged, counted, and skipped; they never abort the batch.
func assessBatch(ctx context.Context, files []string, concurrency int, st storeSaver) ([]batchRow, int64) {
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var rows []batchRow
	var failed atomic.Int64

	eng := newEngine()
	now := time.Now()

	for _, file := range files {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", file))

			in, err := loadInputs(file)
			if err != nil {
				failed.Add(1)
				log.Error("load failed", zap.Error(err))
				return nil
			}

			result := eng.Evaluate(in, now)

			if st != nil {
				if _, err := st.SaveAssessment(gctx, file, in, result); err != nil {
					log.Warn("save failed", zap.Error(err))
				}
			}

			mu.Lock()
			rows = append(rows, batchRow{File: file, Inputs: in, Result: result})
			mu.Unlock()

			log.Info("assessed",
				zap.String("action", string(result.Verdict.Action)),
				zap.Int("health", result.Metrics.HealthScore),
			)
			return nil
		})
	}

	_ = g.Wait()

	// Most pressing first, then by file name for a stable report.
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := rows[i].Result, rows[j].Result
		if ri.Metrics.HealthScore != rj.Metrics.HealthScore {
			return ri.Metrics.HealthScore < rj.Metrics.HealthScore
		}
		return rows[i].File < rows[j].File
	})

	return rows, failed.Load()
}

func collectInputFiles(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

var batchHeader = []string{
	"file", "fuel", "age_years", "action", "health_score", "bio_age",
	"fail_prob_pct", "years_left", "risk_level", "critical_issues",
	"cost_low", "cost_high", "monthly_budget",
}

func batchRowStrings(r batchRow) []string {
	m := r.Result.Metrics
	f := r.Result.Financial
	return []string{
		r.File,
		string(r.Inputs.Fuel),
		fmt.Sprintf("%.1f", r.Inputs.CalendarAgeYears),
		string(r.Result.Verdict.Action),
		strconv.Itoa(m.HealthScore),
		fmt.Sprintf("%.1f", m.BioAge),
		fmt.Sprintf("%.1f", m.FailProb),
		fmt.Sprintf("%.1f", m.YearsLeftCurrent),
		strconv.Itoa(m.RiskLevel),
		strconv.Itoa(r.Result.CriticalCount()),
		fmt.Sprintf("%.0f", f.CostLow),
		fmt.Sprintf("%.0f", f.CostHigh),
		fmt.Sprintf("%.0f", f.MonthlyBudget),
	}
}

func writeBatchCSV(path string, rows []batchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "batch: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(batchHeader); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}
	for _, r := range rows {
		if err := cw.Write(batchRowStrings(r)); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}
	return nil
}

func writeBatchXLSX(path string, rows []batchRow) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Assessments")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range batchHeader {
		hr.AddCell().SetString(h)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range batchRowStrings(r) {
			row.AddCell().SetString(v)
		}
	}

	return eris.Wrapf(wb.Save(path), "batch: save %s", path)
}
