package engine

import (
	"fmt"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// ruleContext bundles the normalized inputs and computed metrics a rule may
// read. Rules never mutate it.
type ruleContext struct {
	in *model.ForensicInputs
	m  *model.Metrics
}

// rule is one (predicate, template) pair. Rules with the same non-empty
// group are mutually exclusive: within a group only the first match fires,
// which is how the pressure tiers stay disjoint by construction.
type rule struct {
	id       string
	group    string
	severity model.Severity
	applies  func(f model.FuelType) bool // nil means all unit types
	when     func(rc ruleContext) bool
	title    string
	detail   func(rc ruleContext) string
	value    func(rc ruleContext) string
}

func anyUnit(model.FuelType) bool { return true }

func tankOnly(f model.FuelType) bool     { return f.IsTank() }
func hybridOnly(f model.FuelType) bool   { return f.IsHybrid() }
func tanklessOnly(f model.FuelType) bool { return f.IsTankless() }
func gasTanklessOnly(f model.FuelType) bool {
	return f == model.FuelTanklessGas
}
func gasOnly(f model.FuelType) bool { return f.IsGas() }

// gasLineCapacityBTU is the maximum appliance BTU rating a gas line of the
// given nominal size can feed. Runs past 20 feet derate by 20%.
func gasLineCapacityBTU(size model.GasLineSize, lengthFt float64) float64 {
	var base float64
	switch size {
	case model.GasLineHalf:
		base = 120000
	case model.GasLineThreeQuarter:
		base = 260000
	case model.GasLineFull:
		base = 450000
	default:
		return 0 // unknown size: never flag
	}
	if lengthFt > 20 {
		base *= 0.8
	}
	return base
}

func gasLineUndersized(rc ruleContext) bool {
	t := rc.in.Tankless
	if t == nil || t.BTURating <= 0 {
		return false
	}
	capacity := gasLineCapacityBTU(t.GasLineSize, t.GasLineLengthFt)
	return capacity > 0 && t.BTURating > capacity
}

func staticDetail(s string) func(ruleContext) string {
	return func(ruleContext) string { return s }
}

func psiValue(rc ruleContext) string {
	return fmt.Sprintf("%.0f PSI", rc.in.HousePSI)
}

// ruleTable is the full classifier, evaluated top to bottom in this exact
// order. Each entry emits zero or one issue. Type-gated subsets never fire
// for the wrong unit class.
var ruleTable = []rule{
	// Pressure tiers: one of these at most, highest threshold first.
	{
		id: "psi-burst", group: "pressure", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.HousePSI > PSIBurst },
		title:   "Extreme pressure: explosion hazard",
		detail: staticDetail("Static pressure exceeds 150 PSI, the T&P relief valve's rated limit. " +
			"The tank is operating in burst territory."),
		value: psiValue,
	},
	{
		id: "psi-over-code", group: "pressure", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.HousePSI > PSICodeMax },
		title:   "Pressure above code maximum",
		detail: staticDetail("Static pressure exceeds the 80 PSI plumbing code maximum. " +
			"Every fixture and the heater itself are over-stressed."),
		value: psiValue,
	},
	{
		id: "psi-near-code", group: "pressure", severity: model.SeverityWarning,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.HousePSI > PSIWarning },
		title:   "Pressure approaching code maximum",
		detail:  staticDetail("Static pressure is within 5 PSI of the 80 PSI code maximum."),
		value:   psiValue,
	},
	{
		id: "psi-elevated", group: "pressure", severity: model.SeverityInfo,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.HousePSI > PSIElevated },
		title:   "Elevated pressure",
		detail:  staticDetail("Static pressure is above the comfortable 60-70 PSI band."),
		value:   psiValue,
	},

	{
		id: model.IssueNoPRV, severity: model.SeverityInfo,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.HousePSI >= PSINotice && !rc.in.HasPRV
		},
		title:  "No pressure reducing valve",
		detail: staticDetail("Pressure at or above 65 PSI with no PRV installed. A PRV would hold the system in the safe band."),
		value:  psiValue,
	},

	// Thermal expansion containment.
	{
		id: model.IssueMissingExpTank, severity: model.SeverityCritical,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.ClosedLoop() && !rc.in.HasExpTank
		},
		title: "Missing expansion tank on closed loop",
		detail: staticDetail("The plumbing system is closed (PRV or backflow preventer) with no thermal " +
			"expansion tank. Heating cycles spike pressure against a sealed system."),
	},
	{
		id: model.IssueWaterloggedExpTank, severity: model.SeverityCritical,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.ClosedLoop() && rc.in.HasExpTank &&
				rc.in.ExpTankStatus == model.ExpTankWaterlogged
		},
		title:  "Waterlogged expansion tank",
		detail: staticDetail("The expansion tank's bladder has failed; it no longer absorbs thermal expansion."),
	},

	// Location / containment.
	{
		id: model.IssueNoDrainPan, severity: model.SeverityCritical,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.m.RiskLevel >= RiskCritical && !rc.in.HasDrainPan
		},
		title: "No drain pan in high-risk location",
		detail: staticDetail("A failure here drains through finished space or ceilings. " +
			"A pan with a routed drain line is the minimum containment."),
		value: func(rc ruleContext) string { return string(rc.in.Location) },
	},
	{
		id: "location-finished-no-pan", severity: model.SeverityWarning,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.IsFinishedArea && !rc.in.HasDrainPan && rc.m.RiskLevel < RiskCritical
		},
		title:  "No drain pan in finished area",
		detail: staticDetail("The unit sits in finished space without containment."),
	},
	{
		id: "location-elevated", severity: model.SeverityInfo,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.m.RiskLevel == RiskElevated },
		title:   "Elevated installation risk",
		detail:  staticDetail("The installation location amplifies the damage a failure would cause."),
		value:   func(rc ruleContext) string { return string(rc.in.Location) },
	},

	// Condition.
	{
		id: "active-leak", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.ActiveLeak },
		title:   "Active leak",
		detail: func(rc ruleContext) string {
			switch rc.in.LeakSource {
			case model.LeakTankBody:
				return "Water is escaping the tank body itself. The liner has failed; this is not repairable."
			case model.LeakHeatExchanger:
				return "The heat exchanger is breached. This is not repairable."
			case model.LeakTPRValve:
				return "The T&P relief valve is discharging, usually a symptom of over-pressure or over-temperature."
			case model.LeakCondensate:
				return "Condensate is escaping its drain path."
			default:
				return "Water is escaping at a fitting or connection."
			}
		},
		value: func(rc ruleContext) string { return string(rc.in.LeakSource) },
	},
	{
		id: "visible-rust", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.VisibleRust },
		title:   "Visible corrosion",
		detail:  staticDetail("External rust means the jacket or fittings are already compromised; internal corrosion is typically further along."),
	},

	// Aging / failure.
	{
		id: "bioage-exceeded", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.m.BioAge >= BioAgeSaturation },
		title:   "Beyond service life",
		detail:  staticDetail("Stress-adjusted age is past the point where failure probability saturates."),
		value:   func(rc ruleContext) string { return fmt.Sprintf("%.1f bio-years", rc.m.BioAge) },
	},
	{
		id: "failprob-high", group: "failprob", severity: model.SeverityCritical,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.m.FailProb >= FailProbUrgent },
		title:   "High 12-month failure probability",
		detail:  staticDetail("The unit is more likely than not to fail within a year."),
		value:   func(rc ruleContext) string { return fmt.Sprintf("%.0f%%", rc.m.FailProb) },
	},
	{
		id: "failprob-elevated", group: "failprob", severity: model.SeverityWarning,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.m.FailProb >= 25 },
		title:   "Elevated failure probability",
		detail:  staticDetail("Failure probability is climbing out of the healthy range."),
		value:   func(rc ruleContext) string { return fmt.Sprintf("%.0f%%", rc.m.FailProb) },
	},
	{
		id: "aging-fast", severity: model.SeverityInfo,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.m.AgingRate >= 1.5 },
		title:   "Accelerated aging",
		detail:  staticDetail("Cumulative stress is aging this unit well beyond calendar time."),
		value:   func(rc ruleContext) string { return fmt.Sprintf("%.2fx", rc.m.AgingRate) },
	},

	// Temperature setpoint.
	{
		id: "temp-low-bacteria", severity: model.SeverityWarning,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.Temp == model.TempLow },
		title:   "Setpoint in bacterial growth range",
		detail:  staticDetail("Below 120F, Legionella and other bacteria can colonize the tank."),
	},
	{
		id: "temp-scalding", severity: model.SeverityWarning,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.Temp == model.TempScalding },
		title:   "Scald-range setpoint",
		detail:  staticDetail("Above 140F, tap water scalds in seconds and thermal stress on the unit compounds."),
	},

	// Sediment bands (tank units), mutually exclusive.
	{
		id: "sediment-lockout", group: "sediment", severity: model.SeverityCritical,
		applies: tankOnly,
		when: func(rc ruleContext) bool {
			return model.ClassifySediment(rc.m.SedimentLbs) == model.SedimentLockout
		},
		title: "Sediment lockout",
		detail: staticDetail("Sediment load is past the point where a flush is safe: disturbing the bed " +
			"can clog the drain valve or expose thinned steel."),
		value: func(rc ruleContext) string { return fmt.Sprintf("%.1f lbs", rc.m.SedimentLbs) },
	},
	{
		id: "sediment-service", group: "sediment", severity: model.SeverityWarning,
		applies: tankOnly,
		when: func(rc ruleContext) bool {
			return model.ClassifySediment(rc.m.SedimentLbs) == model.SedimentService
		},
		title:  "Sediment flush recommended",
		detail: staticDetail("Accumulated sediment is insulating the burner surface and accelerating wear."),
		value:  func(rc ruleContext) string { return fmt.Sprintf("%.1f lbs", rc.m.SedimentLbs) },
	},

	// Anode bands (tank units), mutually exclusive.
	{
		id: "anode-depleted", group: "anode", severity: model.SeverityCritical,
		applies: tankOnly,
		when:    func(rc ruleContext) bool { return rc.m.ShieldLifeYears <= 0 },
		title:   "Anode rod depleted",
		detail:  staticDetail("The sacrificial anode is consumed; the tank steel is now the anode."),
	},
	{
		id: "anode-low", group: "anode", severity: model.SeverityWarning,
		applies: tankOnly,
		when:    func(rc ruleContext) bool { return rc.m.ShieldLifeYears < model.AnodeLowYears },
		title:   "Anode rod nearly depleted",
		detail:  staticDetail("Less than two years of shield life remain; replacement now extends tank life."),
		value:   func(rc ruleContext) string { return fmt.Sprintf("%.1f yrs", rc.m.ShieldLifeYears) },
	},

	// Water chemistry.
	{
		id: "hard-water-untreated", severity: model.SeverityWarning,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.HardnessGPG() >= 10 && !rc.in.SoftenerActive()
		},
		title:  "Hard water untreated",
		detail: staticDetail("At 10+ grains per gallon, scale formation measurably shortens equipment life."),
		value:  func(rc ruleContext) string { return fmt.Sprintf("%.0f gpg", rc.in.HardnessGPG()) },
	},
	{
		id: "softener-no-salt", severity: model.SeverityInfo,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.HasSoftener && !rc.in.SoftenerHasSalt
		},
		title:  "Softener out of salt",
		detail: staticDetail("The softener is installed but not regenerating; the house is on hard water."),
	},
	{
		id: "softened-anode-burn", severity: model.SeverityInfo,
		applies: tankOnly,
		when:    func(rc ruleContext) bool { return rc.in.SoftenerActive() },
		title:   "Softened water accelerates anode consumption",
		detail:  staticDetail("Softened water is more conductive; expect roughly 2.4x anode consumption and plan checks accordingly."),
	},
	{
		id: "chloramine-supply", severity: model.SeverityInfo,
		applies: anyUnit,
		when:    func(rc ruleContext) bool { return rc.in.Sanitizer == model.SanitizerChloramine },
		title:   "Chloramine-treated supply",
		detail:  staticDetail("Chloramine attacks rubber components and adds about 20% to anode consumption."),
	},

	// Venting (gas units). Flue-sharing scenarios only exist for atmospheric
	// venting; power and direct vents run their own sealed exhaust.
	{
		id: "vent-orphaned", severity: model.SeverityWarning,
		applies: gasOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Vent == model.VentAtmospheric &&
				rc.in.VentScenario == model.VentScenarioOrphaned
		},
		title:  "Orphaned flue",
		detail: staticDetail("The water heater vents alone into a chimney sized for more appliances; condensation and backdrafting follow."),
	},
	{
		id: "vent-shared", severity: model.SeverityInfo,
		applies: gasOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Vent == model.VentAtmospheric &&
				rc.in.VentScenario == model.VentScenarioShared
		},
		title:  "Shared flue",
		detail: staticDetail("A shared flue couples this unit's venting to another appliance's fate."),
	},

	// Connections.
	{
		id: "galvanic-connection", severity: model.SeverityWarning,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.PipeConnection == model.PipeMixedMetals
		},
		title:  "Dissimilar metals without dielectric union",
		detail: staticDetail("Galvanic corrosion is eating the connections from the inside."),
	},
	{
		id: "galvanized-connection", severity: model.SeverityInfo,
		applies: anyUnit,
		when: func(rc ruleContext) bool {
			return rc.in.PipeConnection == model.PipeGalvanized
		},
		title:  "Galvanized connections",
		detail: staticDetail("Galvanized pipe corrodes and restricts flow as it ages."),
	},

	// Sizing.
	{
		id: "tank-undersized", severity: model.SeverityInfo,
		applies: tankOnly,
		when:    func(rc ruleContext) bool { return rc.m.StressFactors.Undersizing > 1.15 },
		title:   "Undersized for household",
		detail:  staticDetail("The tank runs hotter and cycles harder than a correctly sized unit."),
	},

	// Hybrid block.
	{
		id: "hybrid-filter", group: "hybrid-filter", severity: model.SeverityWarning,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.AirFilter == model.FilterClogged
		},
		title:  "Heat pump air filter clogged",
		detail: staticDetail("A clogged filter starves the heat pump and forces resistance-element fallback."),
	},
	{
		id: "hybrid-filter-dirty", group: "hybrid-filter", severity: model.SeverityInfo,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.AirFilter == model.FilterDirty
		},
		title:  "Heat pump air filter dirty",
		detail: staticDetail("Efficiency is degrading; the filter is due for a wash."),
	},
	{
		id: "hybrid-condensate-blocked", group: "hybrid-condensate", severity: model.SeverityCritical,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.Condensate == model.CondensateBlocked
		},
		title:  "Condensate drain blocked",
		detail: staticDetail("Condensate has nowhere to go but the floor; this is an active water-damage path."),
	},
	{
		id: "hybrid-condensate-cloudy", group: "hybrid-condensate", severity: model.SeverityInfo,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.Condensate == model.CondensateCloudy
		},
		title:  "Condensate running cloudy",
		detail: staticDetail("Biofilm is forming in the drain line; a blockage usually follows."),
	},
	{
		id: "hybrid-compressor-failing", group: "hybrid-compressor", severity: model.SeverityCritical,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.CompressorHealth == model.ComponentFailing
		},
		title:  "Compressor failing",
		detail: staticDetail("The heat pump side is dying; the unit is running on resistance elements at 3-4x the operating cost."),
	},
	{
		id: "hybrid-compressor-worn", group: "hybrid-compressor", severity: model.SeverityWarning,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.CompressorHealth == model.ComponentWorn
		},
		title:  "Compressor showing wear",
		detail: staticDetail("Bearing noise or hard starts; budget for heat pump service."),
	},
	{
		id: "hybrid-confined", severity: model.SeverityWarning,
		applies: hybridOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Hybrid != nil && rc.in.Hybrid.Enclosure == model.EnclosureConfined
		},
		title:  "Heat pump in confined space",
		detail: staticDetail("The heat pump recirculates its own exhaust air; efficiency collapses and runtime stretches."),
	},

	// Tankless block.
	{
		id: "tankless-vent-blocked", group: "tankless-vent", severity: model.SeverityCritical,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.VentStatus == model.TanklessVentBlocked
		},
		title:  "Exhaust vent blocked",
		detail: staticDetail("Combustion products cannot leave. The unit is locked out or should be."),
	},
	{
		id: "tankless-vent-restricted", group: "tankless-vent", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.VentStatus == model.TanklessVentRestricted
		},
		title:  "Exhaust vent restricted",
		detail: staticDetail("Partial blockage is degrading combustion and will trip error codes."),
	},
	{
		id: model.IssueNoIsolationValves, severity: model.SeverityCritical,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && !rc.in.Tankless.HasIsolationValves
		},
		title: "No isolation valves",
		detail: staticDetail("Without isolation valves the heat exchanger cannot be descaled at all. " +
			"Maintenance is impossible until a set is installed."),
	},
	{
		id: "tankless-descale-overdue", group: "descale", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.m.DescaleStatus == model.DescaleOverdue
		},
		title:  "Descale overdue",
		detail: staticDetail("Scale inside the heat exchanger is past the recommended service interval for this water hardness."),
	},
	{
		id: "tankless-descale-due", group: "descale", severity: model.SeverityInfo,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.m.DescaleStatus == model.DescaleDue
		},
		title:  "Descale due soon",
		detail: staticDetail("The unit is approaching its descale interval."),
	},
	{
		id: "gas-line-undersized", severity: model.SeverityCritical,
		applies: gasTanklessOnly,
		when:    gasLineUndersized,
		title:   "Gas line undersized",
		detail: staticDetail("The supply line cannot deliver the unit's rated BTU draw. Starved combustion " +
			"burns dirty, scales the exchanger, and throws ignition faults."),
		value: func(rc ruleContext) string {
			t := rc.in.Tankless
			return fmt.Sprintf("%.0f BTU on %s\" line", t.BTURating, t.GasLineSize)
		},
	},
	{
		id: "tankless-flame-rod-failing", severity: model.SeverityCritical,
		applies: gasTanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.FlameRodStatus == model.ComponentFailing
		},
		title:  "Flame rod failing",
		detail: staticDetail("Flame sensing is unreliable; the unit will lock out mid-shower."),
	},
	{
		id: "tankless-igniter-failing", severity: model.SeverityCritical,
		applies: gasTanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.IgniterStatus == model.ComponentFailing
		},
		title:  "Igniter failing",
		detail: staticDetail("Ignition is intermittent; full no-heat failure is imminent."),
	},
	{
		id: "tankless-element-failing", severity: model.SeverityCritical,
		applies: func(f model.FuelType) bool { return f == model.FuelTanklessElectric },
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.ElementStatus == model.ComponentFailing
		},
		title:  "Heating element failing",
		detail: staticDetail("One or more elements are open or scaled over; output temperature is sagging."),
	},
	{
		id: "tankless-error-codes", group: "error-codes", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.ErrorCodeCount >= 3
		},
		title:  "Repeated error codes",
		detail: staticDetail("Three or more faults in recent history; the unit is telling you something."),
		value: func(rc ruleContext) string {
			return fmt.Sprintf("%d codes", rc.in.Tankless.ErrorCodeCount)
		},
	},
	{
		id: "tankless-error-code", group: "error-codes", severity: model.SeverityInfo,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.ErrorCodeCount >= 1
		},
		title:  "Recent error code",
		detail: staticDetail("At least one fault in recent history; worth watching."),
		value: func(rc ruleContext) string {
			return fmt.Sprintf("%d code(s)", rc.in.Tankless.ErrorCodeCount)
		},
	},
	{
		id: "tankless-inlet-filter", group: "inlet-filter", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.InletFilter == model.FilterClogged
		},
		title:  "Inlet filter clogged",
		detail: staticDetail("Flow starvation mimics scale symptoms and trips flow-sensor faults."),
	},
	{
		id: "tankless-inlet-filter-dirty", group: "inlet-filter", severity: model.SeverityInfo,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.InletFilter == model.FilterDirty
		},
		title:  "Inlet filter dirty",
		detail: staticDetail("The inlet screen is due for a rinse."),
	},
	{
		id: "tankless-scale-heavy", group: "tankless-scale", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			return rc.in.Tankless != nil && rc.in.Tankless.Scale == model.ScaleHeavy
		},
		title:  "Heavy scale buildup",
		detail: staticDetail("The exchanger is insulating itself; efficiency and flow are both degrading."),
	},
	{
		id: "tankless-flow-degraded", severity: model.SeverityWarning,
		applies: tanklessOnly,
		when: func(rc ruleContext) bool {
			t := rc.in.Tankless
			return t != nil && t.MeasuredFlowGPM != nil && t.RatedFlowGPM > 0 &&
				*t.MeasuredFlowGPM < 0.8*t.RatedFlowGPM
		},
		title:  "Measured flow below rating",
		detail: staticDetail("Throughput is more than 20% under rating, the classic signature of internal scale."),
		value: func(rc ruleContext) string {
			t := rc.in.Tankless
			return fmt.Sprintf("%.1f of %.1f GPM", *t.MeasuredFlowGPM, t.RatedFlowGPM)
		},
	},
}

// EvaluateRules runs the classifier over the rule table in its fixed order
// and returns every issue that fires. Order independence holds rule-to-rule;
// within an exclusive group only the first match emits.
func EvaluateRules(in *model.ForensicInputs, m *model.Metrics) []model.Issue {
	rc := ruleContext{in: in, m: m}
	firedGroups := make(map[string]bool)

	var issues []model.Issue
	for i := range ruleTable {
		r := &ruleTable[i]
		if r.applies != nil && !r.applies(in.Fuel) {
			continue
		}
		if r.group != "" && firedGroups[r.group] {
			continue
		}
		if !r.when(rc) {
			continue
		}
		if r.group != "" {
			firedGroups[r.group] = true
		}

		issue := model.Issue{
			ID:       r.id,
			Severity: r.severity,
			Title:    r.title,
		}
		if r.detail != nil {
			issue.Detail = r.detail(rc)
		}
		if r.value != nil {
			issue.Value = r.value(rc)
		}
		issues = append(issues, issue)
	}
	return issues
}
