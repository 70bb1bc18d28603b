package pricing

import (
	"math"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// Annual cost components attributed to unsoftened hard water. Efficiency
// loss scales with grains; wear is a flat consumable/service penalty that
// kicks in once the supply is meaningfully hard.
const (
	efficiencyLossPerGPG = 9.0
	wearCostThresholdGPG = 7.0
	wearCostAnnual       = 55.0

	elementBurnoutPerGPG = 6.0
	elementBurnoutCapPct = 85.0
)

// BuildHardWaterTax computes the hard-water economics for the supply at this
// address: what untreated hardness costs per year, what a softener would net
// after its own amortized cost, and whether one is worth recommending.
func (p *Model) BuildHardWaterTax(in *model.ForensicInputs) model.HardWaterTax {
	gpg := in.HardnessGPG()

	annualLoss := gpg * efficiencyLossPerGPG
	if gpg >= wearCostThresholdGPG {
		annualLoss += wearCostAnnual
	}
	annualLoss = math.Round(annualLoss)

	softenerAnnual := p.cfg.Softener.SaltPerYear
	if p.cfg.Softener.LifeYears > 0 {
		softenerAnnual += p.cfg.Softener.UnitCost / float64(p.cfg.Softener.LifeYears)
	}

	netSavings := math.Round(annualLoss - softenerAnnual)

	// Payback counts purchase price against savings net of salt; the
	// amortized unit cost is the thing being paid back.
	payback := 0.0
	if cashflow := annualLoss - p.cfg.Softener.SaltPerYear; cashflow > 0 {
		payback = round1(p.cfg.Softener.UnitCost / cashflow)
	}

	tax := model.HardWaterTax{
		HardnessGPG:      gpg,
		TotalAnnualLoss:  annualLoss,
		NetAnnualSavings: netSavings,
		PaybackYears:     payback,
		Recommendation:   softenerRecommendation(in, gpg),
	}

	if in.Fuel == model.FuelElectricTank || in.Fuel == model.FuelHybrid {
		if !in.SoftenerActive() {
			tax.ElementBurnoutPct = math.Min(gpg*elementBurnoutPerGPG, elementBurnoutCapPct)
		}
	}
	return tax
}

func softenerRecommendation(in *model.ForensicInputs, gpg float64) model.SoftenerRecommendation {
	switch {
	case in.SoftenerActive():
		return model.SoftenerProtected
	case gpg >= 10:
		return model.SoftenerRecommend
	case gpg >= 7:
		return model.SoftenerConsider
	default:
		return model.SoftenerNeutral
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
