// Package engine implements the risk/lifecycle estimation engine: a pure,
// synchronous transform from a ForensicInputs snapshot to an OpterraResult.
// Every invocation is independent and side-effect-free; the only external
// value is the explicit "now" used for date labels.
package engine

import (
	"math"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// PSI boundaries shared between the stress curve and the issue rule table.
// The rules must flag exactly the regimes these constants imply.
const (
	PSIBufferTop = 60  // below this, pressure stress is negligible
	PSINotice    = 65  // PRV worth considering
	PSIElevated  = 70  // elevated, informational
	PSIWarning   = 75  // approaching code max
	PSICodeMax   = 80  // plumbing code maximum
	PSIBurst     = 150 // T&P relief territory; explosion hazard
)

// Stress multiplier constants. Textbook-normal conditions multiply out to 1.0.
const (
	tempLowFactor      = 0.95
	tempHotFactor      = 1.35
	tempScaldingFactor = 1.6

	circPumpFactor        = 1.25
	loopUnprotectedFactor = 1.3

	usageLightFactor = 0.9
	usageHeavyFactor = 1.2

	undersizeCapTank     = 1.5
	undersizeCapTankless = 1.4
	hybridConfinedFactor = 1.15

	// Per-fuel ceilings on the combined multiplier.
	totalCeilingTank     = 4.0
	totalCeilingHybrid   = 3.5
	totalCeilingTankless = 3.0
	totalFloor           = 0.8
)

// gallonsPerOccupant is the rough peak-hour storage demand used for tank
// sizing checks.
const gallonsPerOccupant = 12.0

// EffectivePSI is the pressure the tank actually sees. An unprotected closed
// loop spikes well above static pressure on every heating cycle.
func EffectivePSI(in *model.ForensicInputs) float64 {
	psi := in.HousePSI
	if in.ClosedLoop() && !in.ExpansionProtected() {
		psi += 40
	}
	return psi
}

// PressureStress maps static pressure onto a buffer-zone curve: negligible
// below PSIBufferTop, a gentle ramp to the code max, a steep ramp beyond it,
// and a discontinuous jump past PSIBurst.
func PressureStress(psi float64) float64 {
	switch {
	case psi <= PSIBufferTop:
		return 1.0
	case psi <= PSICodeMax:
		return 1.0 + (psi-PSIBufferTop)*0.01
	case psi <= PSIBurst:
		return 1.2 + (psi-PSICodeMax)*0.02
	default:
		return 3.5
	}
}

// TempStress maps the setpoint class onto an Arrhenius-like ladder: the HOT
// penalty is larger than the LOW benefit it trades against. LOW triggers the
// bacterial-growth flag elsewhere rather than a deeper discount here.
func TempStress(t model.TempSetting) float64 {
	switch t {
	case model.TempLow:
		return tempLowFactor
	case model.TempHot:
		return tempHotFactor
	case model.TempScalding:
		return tempScaldingFactor
	default:
		return 1.0
	}
}

func usageStress(u model.UsageIntensity) float64 {
	switch u {
	case model.UsageLight:
		return usageLightFactor
	case model.UsageHeavy:
		return usageHeavyFactor
	default:
		return 1.0
	}
}

// undersizingStress penalizes a unit too small for the household. Tank units
// compare storage against peak-hour demand; tankless units compare rated flow
// against simultaneous-fixture demand; confined hybrids starve the heat pump.
func undersizingStress(in *model.ForensicInputs) float64 {
	factor := 1.0

	if in.Fuel.IsTankless() {
		if in.Tankless != nil && in.Tankless.RatedFlowGPM > 0 && in.Occupants > 0 {
			needed := 1.5 + 0.75*float64(in.Occupants)
			if ratio := needed / in.Tankless.RatedFlowGPM; ratio > 1 {
				factor = math.Min(undersizeCapTankless, ratio)
			}
		}
		return factor
	}

	if in.TankCapacityGallons > 0 && in.Occupants > 0 {
		demand := gallonsPerOccupant * float64(in.Occupants)
		if ratio := demand / in.TankCapacityGallons; ratio > 1 {
			factor = math.Min(undersizeCapTank, ratio)
		}
	}
	if in.Fuel.IsHybrid() && in.Hybrid != nil && in.Hybrid.Enclosure == model.EnclosureConfined {
		factor *= hybridConfinedFactor
	}
	return factor
}

func totalCeiling(f model.FuelType) float64 {
	switch {
	case f.IsTankless():
		return totalCeilingTankless
	case f.IsHybrid():
		return totalCeilingHybrid
	default:
		return totalCeilingTank
	}
}

// ComputeStress converts raw conditions into the multiplier breakdown.
// Mechanical bundles pressure-driven wear, chemical bundles thermal and
// usage-driven wear, and Total composes both with circulation. Total is
// monotonically non-decreasing in every adverse input.
func ComputeStress(in *model.ForensicInputs) model.StressFactors {
	sf := model.StressFactors{
		Pressure:       PressureStress(in.HousePSI),
		Temp:           TempStress(in.Temp),
		UsageIntensity: usageStress(in.Usage),
		Undersizing:    undersizingStress(in),
		Circ:           1.0,
		Loop:           1.0,
	}

	if in.HasCirculationPump {
		sf.Circ = circPumpFactor
	}
	if in.ClosedLoop() && !in.ExpansionProtected() {
		sf.Loop = loopUnprotectedFactor
	}

	sf.Mechanical = sf.Pressure * sf.Loop * sf.Undersizing
	sf.Chemical = sf.Temp * sf.UsageIntensity

	total := sf.Mechanical * sf.Chemical * sf.Circ
	total = math.Min(total, totalCeiling(in.Fuel))
	total = math.Max(total, totalFloor)
	sf.Total = round2(total)

	sf.Pressure = round2(sf.Pressure)
	sf.Mechanical = round2(sf.Mechanical)
	sf.Chemical = round2(sf.Chemical)

	return sf
}

// PrimaryStressor names the largest individual multiplier, or "none" when
// every factor sits at or below neutral. Ties resolve in a fixed order so the
// label is deterministic.
func PrimaryStressor(sf model.StressFactors) string {
	labels := []struct {
		name  string
		value float64
	}{
		{"pressure", sf.Pressure},
		{"temperature", sf.Temp},
		{"circulation", sf.Circ},
		{"closed loop", sf.Loop},
		{"usage", sf.UsageIntensity},
		{"undersizing", sf.Undersizing},
	}

	best := "none"
	bestVal := 1.0
	for _, l := range labels {
		if l.value > bestVal {
			best = l.name
			bestVal = l.value
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
