package model

// ForensicInputs is the engine's sole input record: a snapshot of everything
// known about an installed unit. All fields are value types; the optional
// type-specific blocks are only meaningful when the matching fuel-type
// predicate holds and are silently ignored otherwise.
type ForensicInputs struct {
	// Identity / age.
	Fuel             FuelType `json:"fuel" yaml:"fuel"`
	CalendarAgeYears float64  `json:"calendar_age_years" yaml:"calendar_age_years"`
	WarrantyYears    float64  `json:"warranty_years" yaml:"warranty_years"`

	// Pressure system.
	HousePSI      float64             `json:"house_psi" yaml:"house_psi"`
	HasPRV        bool                `json:"has_prv" yaml:"has_prv"`
	HasExpTank    bool                `json:"has_exp_tank" yaml:"has_exp_tank"`
	ExpTankStatus ExpansionTankStatus `json:"exp_tank_status" yaml:"exp_tank_status"`
	IsClosedLoop  bool                `json:"is_closed_loop" yaml:"is_closed_loop"`

	// Usage.
	Occupants           int            `json:"occupants" yaml:"occupants"`
	Usage               UsageIntensity `json:"usage" yaml:"usage"`
	TankCapacityGallons float64        `json:"tank_capacity_gallons" yaml:"tank_capacity_gallons"`

	// Water quality. MeasuredHardnessGPG overrides the street estimate when set.
	StreetHardnessGPG   float64       `json:"street_hardness_gpg" yaml:"street_hardness_gpg"`
	MeasuredHardnessGPG *float64      `json:"measured_hardness_gpg,omitempty" yaml:"measured_hardness_gpg,omitempty"`
	Sanitizer           SanitizerType `json:"sanitizer" yaml:"sanitizer"`
	HasSoftener         bool          `json:"has_softener" yaml:"has_softener"`
	SoftenerHasSalt     bool          `json:"softener_has_salt" yaml:"softener_has_salt"`

	// Equipment.
	Vent                 VentType     `json:"vent" yaml:"vent"`
	VentScenario         VentScenario `json:"vent_scenario" yaml:"vent_scenario"`
	Temp                 TempSetting  `json:"temp" yaml:"temp"`
	HasCirculationPump   bool         `json:"has_circulation_pump" yaml:"has_circulation_pump"`
	IsAnnuallyMaintained bool         `json:"is_annually_maintained" yaml:"is_annually_maintained"`
	LastFlushYearsAgo    *float64     `json:"last_flush_years_ago,omitempty" yaml:"last_flush_years_ago,omitempty"`
	LastAnodeYearsAgo    *float64     `json:"last_anode_years_ago,omitempty" yaml:"last_anode_years_ago,omitempty"`

	// Location / condition.
	Location       InstallLocation `json:"location" yaml:"location"`
	IsFinishedArea bool            `json:"is_finished_area" yaml:"is_finished_area"`
	HasDrainPan    bool            `json:"has_drain_pan" yaml:"has_drain_pan"`
	VisibleRust    bool            `json:"visible_rust" yaml:"visible_rust"`
	ActiveLeak     bool            `json:"active_leak" yaml:"active_leak"`
	LeakSource     LeakSource      `json:"leak_source" yaml:"leak_source"`
	PipeConnection PipeConnection  `json:"pipe_connection" yaml:"pipe_connection"`

	// Type-specific blocks.
	Hybrid   *HybridInputs   `json:"hybrid,omitempty" yaml:"hybrid,omitempty"`
	Tankless *TanklessInputs `json:"tankless,omitempty" yaml:"tankless,omitempty"`
}

// HybridInputs holds heat-pump-specific wear signals. Only meaningful when
// Fuel.IsHybrid().
type HybridInputs struct {
	AirFilter        FilterStatus      `json:"air_filter" yaml:"air_filter"`
	Condensate       CondensateClarity `json:"condensate" yaml:"condensate"`
	CompressorHealth ComponentStatus   `json:"compressor_health" yaml:"compressor_health"`
	Enclosure        EnclosureVolume   `json:"enclosure" yaml:"enclosure"`
}

// TanklessInputs holds on-demand-specific wear signals. Only meaningful when
// Fuel.IsTankless().
type TanklessInputs struct {
	HasIsolationValves  bool               `json:"has_isolation_valves" yaml:"has_isolation_valves"`
	InletFilter         FilterStatus       `json:"inlet_filter" yaml:"inlet_filter"`
	FlameRodStatus      ComponentStatus    `json:"flame_rod_status" yaml:"flame_rod_status"`
	IgniterStatus       ComponentStatus    `json:"igniter_status" yaml:"igniter_status"`
	ElementStatus       ComponentStatus    `json:"element_status" yaml:"element_status"`
	VentStatus          TanklessVentStatus `json:"vent_status" yaml:"vent_status"`
	GasLineSize         GasLineSize        `json:"gas_line_size" yaml:"gas_line_size"`
	GasLineLengthFt     float64            `json:"gas_line_length_ft" yaml:"gas_line_length_ft"`
	BTURating           float64            `json:"btu_rating" yaml:"btu_rating"`
	RatedFlowGPM        float64            `json:"rated_flow_gpm" yaml:"rated_flow_gpm"`
	MeasuredFlowGPM     *float64           `json:"measured_flow_gpm,omitempty" yaml:"measured_flow_gpm,omitempty"`
	ErrorCodeCount      int                `json:"error_code_count" yaml:"error_code_count"`
	Scale               ScaleBuildup       `json:"scale" yaml:"scale"`
	LastDescaleYearsAgo *float64           `json:"last_descale_years_ago,omitempty" yaml:"last_descale_years_ago,omitempty"`
}

// HardnessGPG returns the effective water hardness: the measured value when
// present, otherwise the street estimate.
func (in *ForensicInputs) HardnessGPG() float64 {
	if in.MeasuredHardnessGPG != nil {
		return clampNonNegative(*in.MeasuredHardnessGPG)
	}
	return clampNonNegative(in.StreetHardnessGPG)
}

// SoftenerActive reports whether a softener is installed and actually
// softening (has salt).
func (in *ForensicInputs) SoftenerActive() bool {
	return in.HasSoftener && in.SoftenerHasSalt
}

// ClosedLoop reports whether the plumbing system is effectively closed: an
// explicit backflow/closed-loop flag, or a pressure reducing valve, which
// closes the system as a side effect. Single source of truth for every call
// site that needs the inference.
func (in *ForensicInputs) ClosedLoop() bool {
	return in.IsClosedLoop || in.HasPRV
}

// ExpansionProtected reports whether thermal expansion is absorbed by a
// non-waterlogged expansion tank.
func (in *ForensicInputs) ExpansionProtected() bool {
	return in.HasExpTank && in.ExpTankStatus != ExpTankWaterlogged
}

// Normalized returns a copy with caller contract violations repaired: negative
// numerics clamped to zero and type-mismatched blocks dropped. The engine is
// total over the result, so live UIs can recompute on every keystroke.
func (in ForensicInputs) Normalized() ForensicInputs {
	out := in

	out.CalendarAgeYears = clampNonNegative(in.CalendarAgeYears)
	out.WarrantyYears = clampNonNegative(in.WarrantyYears)
	out.HousePSI = clampNonNegative(in.HousePSI)
	out.TankCapacityGallons = clampNonNegative(in.TankCapacityGallons)
	out.StreetHardnessGPG = clampNonNegative(in.StreetHardnessGPG)
	if in.Occupants < 0 {
		out.Occupants = 0
	}
	if in.MeasuredHardnessGPG != nil {
		v := clampNonNegative(*in.MeasuredHardnessGPG)
		out.MeasuredHardnessGPG = &v
	}
	out.LastFlushYearsAgo = clampYears(in.LastFlushYearsAgo)
	out.LastAnodeYearsAgo = clampYears(in.LastAnodeYearsAgo)

	if !in.Fuel.IsHybrid() {
		out.Hybrid = nil
	}
	if !in.Fuel.IsTankless() {
		out.Tankless = nil
	} else if in.Tankless != nil {
		t := *in.Tankless
		t.GasLineLengthFt = clampNonNegative(t.GasLineLengthFt)
		t.BTURating = clampNonNegative(t.BTURating)
		t.RatedFlowGPM = clampNonNegative(t.RatedFlowGPM)
		if t.ErrorCodeCount < 0 {
			t.ErrorCodeCount = 0
		}
		t.LastDescaleYearsAgo = clampYears(t.LastDescaleYearsAgo)
		out.Tankless = &t
	}
	if in.Usage == "" {
		out.Usage = UsageNormal
	}
	if in.Temp == "" {
		out.Temp = TempNormal
	}
	if in.Sanitizer == "" {
		out.Sanitizer = SanitizerUnknown
	}

	return out
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampYears(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := clampNonNegative(*v)
	return &c
}

// DefaultInputs returns a fully-populated, type-correct input record for the
// given fuel type: a 6-year-old unit in textbook-normal conditions. Callers
// overlay observed values on top of this rather than starting from partial
// literals.
func DefaultInputs(fuel FuelType) ForensicInputs {
	in := ForensicInputs{
		Fuel:             fuel,
		CalendarAgeYears: 6,
		WarrantyYears:    6,

		HousePSI:      58,
		HasPRV:        false,
		HasExpTank:    false,
		ExpTankStatus: ExpTankUnknown,
		IsClosedLoop:  false,

		Occupants: 3,
		Usage:     UsageNormal,

		StreetHardnessGPG: 7,
		Sanitizer:         SanitizerChlorine,

		Vent:                 VentAtmospheric,
		VentScenario:         VentScenarioDirect,
		Temp:                 TempNormal,
		HasCirculationPump:   false,
		IsAnnuallyMaintained: false,

		Location:       LocationGarage,
		IsFinishedArea: false,
		HasDrainPan:    true,
		LeakSource:     LeakNone,
		PipeConnection: PipeCopper,
	}

	switch {
	case fuel.IsTankless():
		in.WarrantyYears = 12
		in.Vent = VentDirect
		if fuel == FuelTanklessElectric {
			in.Vent = VentNone
		}
		in.Tankless = &TanklessInputs{
			HasIsolationValves: true,
			InletFilter:        FilterClean,
			FlameRodStatus:     ComponentOK,
			IgniterStatus:      ComponentOK,
			ElementStatus:      ComponentOK,
			VentStatus:         TanklessVentClear,
			GasLineSize:        GasLineThreeQuarter,
			GasLineLengthFt:    15,
			BTURating:          160000,
			RatedFlowGPM:       8,
			Scale:              ScaleLight,
		}
	case fuel.IsHybrid():
		in.WarrantyYears = 10
		in.TankCapacityGallons = 50
		in.Vent = VentNone
		in.Hybrid = &HybridInputs{
			AirFilter:        FilterClean,
			Condensate:       CondensateClear,
			CompressorHealth: ComponentOK,
			Enclosure:        EnclosureAdequate,
		}
	default:
		in.TankCapacityGallons = 40
		if fuel == FuelElectricTank {
			in.Vent = VentNone
			in.TankCapacityGallons = 50
		}
	}

	return in
}
