package engine

import (
	"math"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// Dominant-condition thresholds shared with the verdict overrides.
const (
	BioAgeSaturation = 20.0 // biological years; failure probability saturates here
	FailProbUrgent   = 50.0 // percent; at or above forces a replace-class verdict
)

const failCurveSteepness = 0.45

// Aging holds the outputs of the aging/failure model.
type Aging struct {
	BioAge      float64
	FailProb    float64 // percent, 0-100
	YearsLeft   float64 // negative when already past expected life
	HealthScore int     // 0-100, monotone inverse of FailProb
}

// ExpectedLifeYears derives expected service life from the warranty class.
// Manufacturers warranty roughly the first two-thirds of design life.
func ExpectedLifeYears(in *model.ForensicInputs) float64 {
	w := in.WarrantyYears
	if w <= 0 {
		w = 6
	}
	if in.Fuel.IsTankless() {
		return clampRange(w*1.6, 15, 25)
	}
	return clampRange(w*1.5, 8, 16)
}

// failCurve is the continuous failure-probability curve: a logistic centered
// on expected life, saturating at 95+ past the bio-age saturation point.
func failCurve(bioAge, expectedLife float64) float64 {
	p := 100 / (1 + math.Exp(-failCurveSteepness*(bioAge-expectedLife)))
	if bioAge >= BioAgeSaturation {
		p = math.Max(p, 95)
	}
	return clampRange(p, 0.5, 99.9)
}

// ComputeAging combines calendar age and the stress multiplier into
// biological age and a 12-month failure probability. Tankless units run in
// safe mode: a small ordered set of hard gates takes precedence over the
// continuous curve.
func ComputeAging(in *model.ForensicInputs, sf model.StressFactors) Aging {
	bioAge := math.Max(in.CalendarAgeYears, in.CalendarAgeYears*sf.Total)
	expectedLife := ExpectedLifeYears(in)
	agingRate := math.Max(sf.Total, 0.1)

	failProb := failCurve(bioAge, expectedLife)
	yearsLeft := (expectedLife - bioAge) / agingRate
	if in.Fuel.IsTankless() {
		grade := tanklessGrade(in)
		failProb = safeModeProbFor(grade, failProb)
		// A dead or dying unit has no remaining life, wherever the
		// continuous curve sits.
		if grade >= gradeDying {
			yearsLeft = math.Min(yearsLeft, 0)
		}
	}
	failProb = round1(failProb)

	return Aging{
		BioAge:      round1(bioAge),
		FailProb:    failProb,
		YearsLeft:   round1(yearsLeft),
		HealthScore: healthScoreFor(failProb),
	}
}

// safeModeGrade orders the tankless hard gates. DEAD and DYING reflect faults
// that no amount of calendar youth offsets; DIRTY reflects recoverable
// neglect; HEALTHY falls through to the continuous curve.
type safeModeGrade int

const (
	gradeHealthy safeModeGrade = iota
	gradeDirty
	gradeDying
	gradeDead
)

func tanklessGrade(in *model.ForensicInputs) safeModeGrade {
	t := in.Tankless
	if t == nil {
		return gradeHealthy
	}

	// DEAD: combustion cannot vent, or the heat exchanger is breached.
	if t.VentStatus == model.TanklessVentBlocked {
		return gradeDead
	}
	if in.ActiveLeak && in.LeakSource == model.LeakHeatExchanger {
		return gradeDead
	}

	// DYING: an ignition-chain or element component is failing, or the unit
	// is throwing repeated error codes.
	if t.FlameRodStatus == model.ComponentFailing ||
		t.IgniterStatus == model.ComponentFailing ||
		t.ElementStatus == model.ComponentFailing ||
		t.ErrorCodeCount >= 3 {
		return gradeDying
	}

	// DIRTY: scale or serviceability neglect.
	switch DescaleStatusFor(in) {
	case model.DescaleOverdue, model.DescaleUnserviceable:
		return gradeDirty
	}
	if t.InletFilter == model.FilterClogged || t.Scale == model.ScaleHeavy {
		return gradeDirty
	}

	return gradeHealthy
}

func safeModeProbFor(grade safeModeGrade, curve float64) float64 {
	switch grade {
	case gradeDead:
		return 99
	case gradeDying:
		return math.Max(curve, 80)
	case gradeDirty:
		return math.Max(curve, 45)
	default:
		return math.Min(curve, 35)
	}
}

// healthScoreFor is the display transform of failure probability. It is
// invertible within rounding: failProb ~= 100 - healthScore.
func healthScoreFor(failProb float64) int {
	score := 100 - int(math.Round(failProb))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
