package engine

import (
	"math"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

const (
	anodeBaseLifeYears = 8.0
	flushResidualLbs   = 0.5 // a flush never removes everything

	// assumed time since the last service when the owner reports annual
	// maintenance but no explicit dates
	annualServiceYears = 1.0
)

// yearsSinceService resolves how long ago a maintenance event happened. An
// explicit history field wins; without one, an annual-maintenance claim means
// the event happened within the last year. Claims older than the unit itself
// are ignored. The second return reports whether any service occurred.
func yearsSinceService(in *model.ForensicInputs, last *float64) (float64, bool) {
	if last != nil && *last < in.CalendarAgeYears {
		return *last, true
	}
	if in.IsAnnuallyMaintained && in.CalendarAgeYears > annualServiceYears {
		return annualServiceYears, true
	}
	return in.CalendarAgeYears, false
}

func usageDepletionFactor(u model.UsageIntensity) float64 {
	switch u {
	case model.UsageLight:
		return 0.8
	case model.UsageHeavy:
		return 1.3
	default:
		return 1.0
	}
}

// effectiveHardness is the hardness the tank interior actually sees. An
// active softener strips most, not all, of the grains.
func effectiveHardness(in *model.ForensicInputs) float64 {
	h := in.HardnessGPG()
	if in.SoftenerActive() {
		return h * 0.25
	}
	return h
}

// SedimentRateLbsPerYear is the annual sediment accumulation rate for the
// given inputs. The maintenance scheduler uses the same rate to project when
// the service band will be reached.
func SedimentRateLbsPerYear(in *model.ForensicInputs) float64 {
	return (0.4 + 0.14*effectiveHardness(in)) * usageDepletionFactor(in.Usage)
}

// SedimentLbs estimates accumulated sediment for tank units. A recent flush
// resets accumulation toward a small residual baseline; tankless units carry
// no sediment bed and always return 0.
func SedimentLbs(in *model.ForensicInputs) float64 {
	if in.Fuel.IsTankless() {
		return 0
	}

	years, flushed := yearsSinceService(in, in.LastFlushYearsAgo)
	residual := 0.0
	if flushed {
		residual = flushResidualLbs
	}

	return round1(math.Max(0, SedimentRateLbsPerYear(in)*years+residual))
}

// ShieldLifeYears estimates remaining sacrificial anode life for tank units.
// Softened water consumes the rod ~2.4x faster; chloramine adds 20%. The
// result clamps at 0 ("depleted"). Tankless units have no anode and report
// a sentinel of 0.
func ShieldLifeYears(in *model.ForensicInputs) float64 {
	if in.Fuel.IsTankless() {
		return 0
	}

	rate := usageDepletionFactor(in.Usage)
	if in.SoftenerActive() {
		rate *= 2.4
	}
	if in.Sanitizer == model.SanitizerChloramine {
		rate *= 1.2
	}

	years, _ := yearsSinceService(in, in.LastAnodeYearsAgo)

	return round1(math.Max(0, anodeBaseLifeYears-rate*years))
}

// DescaleIntervalYears is the recommended descale cadence for a tankless
// unit given its water hardness. Harder water scales the exchanger faster;
// an active softener roughly doubles the interval.
func DescaleIntervalYears(in *model.ForensicInputs) float64 {
	h := in.HardnessGPG()
	var interval float64
	switch {
	case h >= 15:
		interval = 0.75
	case h >= 10:
		interval = 1.0
	case h >= 5:
		interval = 1.5
	default:
		interval = 2.5
	}
	if in.SoftenerActive() {
		interval = math.Min(interval*2, 3)
	}
	return interval
}

// DescaleStatusFor computes the tankless descale standing. Absent isolation
// valves make descaling physically impossible, a terminal state distinct
// from being overdue.
func DescaleStatusFor(in *model.ForensicInputs) model.DescaleStatus {
	if !in.Fuel.IsTankless() || in.Tankless == nil {
		return ""
	}
	if !in.Tankless.HasIsolationValves {
		return model.DescaleUnserviceable
	}

	years, _ := yearsSinceService(in, in.Tankless.LastDescaleYearsAgo)

	interval := DescaleIntervalYears(in)
	switch {
	case years >= interval:
		return model.DescaleOverdue
	case years >= 0.75*interval:
		return model.DescaleDue
	default:
		return model.DescaleCurrent
	}
}
