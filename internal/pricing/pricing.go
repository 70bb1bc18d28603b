// Package pricing turns engine verdicts and metrics into replacement
// budgeting: a target date, a monthly figure, a four-tier quote, and the
// hard-water economic analysis.
package pricing

import (
	"math"
	"time"

	"github.com/opterra-labs/opterra-cli/internal/config"
	"github.com/opterra-labs/opterra-cli/internal/model"
)

// infraIssueItems maps open issue IDs to the infrastructure item that
// remedies them; tier bundles are keyed on the item names.
var infraIssueItems = map[string]string{
	model.IssueNoPRV:              "prv",
	model.IssueMissingExpTank:     "expansion_tank",
	model.IssueWaterloggedExpTank: "expansion_tank",
	model.IssueNoDrainPan:         "drain_pan",
	model.IssueNoIsolationValves:  "isolation_valves",
}

// Default returns the built-in pricing configuration, identical to the viper
// defaults. Tests and the engine's zero-config path use it.
func Default() config.PricingConfig {
	return config.PricingConfig{
		Equipment: map[string]config.PriceBand{
			string(model.FuelGasTank):          {Low: 1600, High: 2600},
			string(model.FuelElectricTank):     {Low: 1400, High: 2300},
			string(model.FuelHybrid):           {Low: 3200, High: 4800},
			string(model.FuelTanklessGas):      {Low: 3500, High: 5500},
			string(model.FuelTanklessElectric): {Low: 1800, High: 3200},
		},
		Tiers: map[string]config.TierConfig{
			string(model.TierBuilder):      {WarrantyYears: 6, Multiplier: 0.85},
			string(model.TierStandard):     {WarrantyYears: 9, Multiplier: 1.0, Includes: []string{"expansion_tank"}},
			string(model.TierProfessional): {WarrantyYears: 12, Multiplier: 1.25, Includes: []string{"expansion_tank", "prv"}},
			string(model.TierPremium):      {WarrantyYears: 15, Multiplier: 1.55, Includes: []string{"expansion_tank", "prv", "drain_pan", "isolation_valves"}},
		},
		Infrastructure: map[string]float64{
			"prv":              350,
			"expansion_tank":   300,
			"drain_pan":        150,
			"isolation_valves": 250,
		},
		Softener: config.SoftenerConfig{
			UnitCost:    1500,
			LifeYears:   10,
			SaltPerYear: 60,
		},
	}
}

// Model computes the financial block from pricing configuration.
type Model struct {
	cfg config.PricingConfig
}

// NewModel creates a pricing model with the given configuration.
func NewModel(cfg config.PricingConfig) *Model {
	return &Model{cfg: cfg}
}

// openInfraItems returns the infrastructure items needed to clear the
// currently open infrastructure issues, deduplicated.
func openInfraItems(issues []model.Issue) map[string]bool {
	items := make(map[string]bool)
	for i := range issues {
		if item, ok := infraIssueItems[issues[i].ID]; ok {
			items[item] = true
		}
	}
	return items
}

// Build computes the full financial block: target date, budget urgency,
// monthly budget, and the four tier quotes with bundled infrastructure.
func (p *Model) Build(in *model.ForensicInputs, m *model.Metrics, v *model.Verdict, issues []model.Issue, now time.Time) model.Financial {
	band := p.equipmentBand(in.Fuel)

	target := now
	if !v.Urgent && m.YearsLeftCurrent > 0 {
		target = now.AddDate(0, int(math.Round(m.YearsLeftCurrent*12)), 0)
	}

	monthsUntil := monthsBetween(now, target)
	likeForLike := (band.Low + band.High) / 2
	monthly := likeForLike / math.Max(1, float64(monthsUntil))

	urgency := budgetUrgencyFor(m.YearsLeftCurrent)
	if v.Urgent {
		urgency = model.BudgetImmediate
	}

	return model.Financial{
		TargetReplacementDate: target,
		CostLow:               band.Low,
		CostHigh:              band.High,
		MonthlyBudget:         math.Round(monthly),
		BudgetUrgency:         urgency,
		Tiers:                 p.tierQuotes(in.Fuel, issues),
	}
}

// budgetUrgencyFor buckets remaining life into budget urgency.
func budgetUrgencyFor(yearsLeft float64) model.BudgetUrgency {
	switch {
	case yearsLeft <= 0:
		return model.BudgetImmediate
	case yearsLeft <= 1:
		return model.BudgetHigh
	case yearsLeft <= 3:
		return model.BudgetMedium
	default:
		return model.BudgetLow
	}
}

// tierQuotes builds the four tier quotes. A tier's displayed total folds in
// the cost of every open infrastructure item that tier is defined to include.
func (p *Model) tierQuotes(fuel model.FuelType, issues []model.Issue) []model.TierQuote {
	band := p.equipmentBand(fuel)
	open := openInfraItems(issues)

	quotes := make([]model.TierQuote, 0, 4)
	for _, tier := range model.AllTiers() {
		tc, ok := p.cfg.Tiers[string(tier)]
		if !ok {
			continue
		}

		var infraCost float64
		var included []string
		for _, item := range tc.Includes {
			if open[item] {
				included = append(included, item)
				infraCost += p.cfg.Infrastructure[item]
			}
		}

		low := math.Round(band.Low * tc.Multiplier)
		high := math.Round(band.High * tc.Multiplier)
		quotes = append(quotes, model.TierQuote{
			Tier:          tier,
			WarrantyYears: tc.WarrantyYears,
			EquipmentLow:  low,
			EquipmentHigh: high,
			InfraIncluded: included,
			InfraCost:     infraCost,
			TotalLow:      low + infraCost,
			TotalHigh:     high + infraCost,
		})
	}
	return quotes
}

func (p *Model) equipmentBand(fuel model.FuelType) config.PriceBand {
	if band, ok := p.cfg.Equipment[string(fuel)]; ok {
		return band
	}
	// Unknown fuel: fall back to the widest common band.
	return config.PriceBand{Low: 1500, High: 3000}
}

// monthsBetween returns whole months from a to b, never negative.
func monthsBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	months := int(b.Sub(a).Hours() / (24 * 30.44))
	if months < 0 {
		return 0
	}
	return months
}
