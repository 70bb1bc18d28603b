// Package engine is the assessment core. It takes a forensic snapshot of a
// water heater and produces the full result: stress and aging metrics, a
// verdict, the issue list, hard-water economics, replacement budgeting, and
// the maintenance schedule. Evaluation is deterministic and total: bad
// inputs are normalized or clamped, never returned as errors.
package engine

import (
	"time"

	"github.com/opterra-labs/opterra-cli/internal/config"
	"github.com/opterra-labs/opterra-cli/internal/maintenance"
	"github.com/opterra-labs/opterra-cli/internal/model"
	"github.com/opterra-labs/opterra-cli/internal/pricing"
)

// Engine evaluates forensic inputs against the lifecycle model. It carries
// only pricing configuration; the physical model itself has no knobs.
type Engine struct {
	pricing *pricing.Model
}

// New creates an engine with the given pricing configuration.
func New(cfg config.PricingConfig) *Engine {
	return &Engine{pricing: pricing.NewModel(cfg)}
}

// NewDefault creates an engine with the built-in pricing tables.
func NewDefault() *Engine {
	return New(pricing.Default())
}

// Evaluate runs the full assessment. now anchors the financial target date;
// everything else depends only on the inputs.
func (e *Engine) Evaluate(in model.ForensicInputs, now time.Time) model.OpterraResult {
	norm := in.Normalized()

	sf := ComputeStress(&norm)
	aging := ComputeAging(&norm, sf)

	m := model.Metrics{
		BioAge:           aging.BioAge,
		FailProb:         aging.FailProb,
		YearsLeftCurrent: aging.YearsLeft,
		EffectivePSI:     EffectivePSI(&norm),
		SedimentLbs:      SedimentLbs(&norm),
		ShieldLifeYears:  ShieldLifeYears(&norm),
		RiskLevel:        LocationRisk(&norm),
		HealthScore:      aging.HealthScore,
		AgingRate:        sf.Total,
		StressFactors:    sf,
		BacterialWarning: norm.Temp == model.TempLow,
		DescaleStatus:    DescaleStatusFor(&norm),
		PrimaryStressor:  PrimaryStressor(sf),
	}

	issues := EvaluateRules(&norm, &m)
	verdict := ComputeVerdict(&norm, &m, issues)

	return model.OpterraResult{
		Metrics:      m,
		Verdict:      verdict,
		Issues:       issues,
		HardWaterTax: e.pricing.BuildHardWaterTax(&norm),
		Financial:    e.pricing.Build(&norm, &m, &verdict, issues, now),
		Maintenance: maintenance.Schedule(&norm, maintenance.Params{
			SedimentLbs:            m.SedimentLbs,
			SedimentRateLbsPerYear: SedimentRateLbsPerYear(&norm),
			ShieldLifeYears:        m.ShieldLifeYears,
			DescaleIntervalYears:   DescaleIntervalYears(&norm),
			DescaleStatus:          m.DescaleStatus,
		}, issues),
	}
}
