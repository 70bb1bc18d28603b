package model

// FuelType identifies the fuel/configuration class of an installed unit.
// Everything downstream of the engine branches on this.
type FuelType string

const (
	FuelGasTank          FuelType = "GAS_TANK"
	FuelElectricTank     FuelType = "ELECTRIC_TANK"
	FuelHybrid           FuelType = "HYBRID"
	FuelTanklessGas      FuelType = "TANKLESS_GAS"
	FuelTanklessElectric FuelType = "TANKLESS_ELECTRIC"
)

// String returns the string representation of the fuel type.
func (f FuelType) String() string {
	return string(f)
}

// IsValid returns true if the fuel type is a known value.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelGasTank, FuelElectricTank, FuelHybrid, FuelTanklessGas, FuelTanklessElectric:
		return true
	default:
		return false
	}
}

// IsTankless reports whether the unit is an on-demand (tankless) heater.
func (f FuelType) IsTankless() bool {
	return f == FuelTanklessGas || f == FuelTanklessElectric
}

// IsTank reports whether the unit stores water in a tank. Hybrids count:
// they carry a tank, an anode, and sediment like any storage unit.
func (f FuelType) IsTank() bool {
	return !f.IsTankless()
}

// IsHybrid reports whether the unit is a heat-pump hybrid.
func (f FuelType) IsHybrid() bool {
	return f == FuelHybrid
}

// IsGas reports whether the unit burns gas.
func (f FuelType) IsGas() bool {
	return f == FuelGasTank || f == FuelTanklessGas
}

// AllFuelTypes lists every supported fuel type in display order.
func AllFuelTypes() []FuelType {
	return []FuelType{
		FuelGasTank, FuelElectricTank, FuelHybrid,
		FuelTanklessGas, FuelTanklessElectric,
	}
}

// UsageIntensity classifies household hot-water demand.
type UsageIntensity string

const (
	UsageLight  UsageIntensity = "LIGHT"
	UsageNormal UsageIntensity = "NORMAL"
	UsageHeavy  UsageIntensity = "HEAVY"
)

// TempSetting classifies the thermostat setpoint.
type TempSetting string

const (
	TempLow      TempSetting = "LOW"      // below 120F; bacterial growth range
	TempNormal   TempSetting = "NORMAL"   // 120F
	TempHot      TempSetting = "HOT"      // 130-140F
	TempScalding TempSetting = "SCALDING" // above 140F
)

// SanitizerType is the municipal disinfectant in the supply water.
type SanitizerType string

const (
	SanitizerChlorine   SanitizerType = "CHLORINE"
	SanitizerChloramine SanitizerType = "CHLORAMINE"
	SanitizerUnknown    SanitizerType = "UNKNOWN"
)

// InstallLocation categorizes where the unit is installed.
type InstallLocation string

const (
	LocationAttic       InstallLocation = "ATTIC"
	LocationUpperFloor  InstallLocation = "UPPER_FLOOR"
	LocationMainFloor   InstallLocation = "MAIN_FLOOR"
	LocationCloset      InstallLocation = "CLOSET"
	LocationBasement    InstallLocation = "BASEMENT"
	LocationGarage      InstallLocation = "GARAGE"
	LocationCrawlspace  InstallLocation = "CRAWLSPACE"
	LocationUtilityRoom InstallLocation = "UTILITY_ROOM"
	LocationOutdoor     InstallLocation = "OUTDOOR"
)

// ExpansionTankStatus describes the health of a thermal expansion tank.
type ExpansionTankStatus string

const (
	ExpTankFunctional  ExpansionTankStatus = "FUNCTIONAL"
	ExpTankWaterlogged ExpansionTankStatus = "WATERLOGGED"
	ExpTankUnknown     ExpansionTankStatus = "UNKNOWN"
)

// VentType identifies the flue configuration for gas units.
type VentType string

const (
	VentAtmospheric VentType = "ATMOSPHERIC"
	VentPower       VentType = "POWER"
	VentDirect      VentType = "DIRECT"
	VentNone        VentType = "NONE" // electric units
)

// VentScenario captures how the flue is shared with other appliances.
type VentScenario string

const (
	VentScenarioDirect   VentScenario = "DIRECT"
	VentScenarioShared   VentScenario = "SHARED"
	VentScenarioOrphaned VentScenario = "ORPHANED"
)

// LeakSource classifies an active leak by origin.
type LeakSource string

const (
	LeakNone          LeakSource = "NONE"
	LeakFitting       LeakSource = "FITTING"
	LeakTPRValve      LeakSource = "TPR_VALVE"
	LeakTankBody      LeakSource = "TANK_BODY"
	LeakHeatExchanger LeakSource = "HEAT_EXCHANGER"
	LeakCondensate    LeakSource = "CONDENSATE"
)

// PipeConnection classifies the metallurgy at the unit's water connections.
type PipeConnection string

const (
	PipeCopper      PipeConnection = "COPPER"
	PipePEX         PipeConnection = "PEX"
	PipeGalvanized  PipeConnection = "GALVANIZED"
	PipeMixedMetals PipeConnection = "MIXED_METALS" // dissimilar metals, no dielectric union
)

// ComponentStatus is the observed condition of a serviceable component
// (flame rod, igniter, heating element, compressor).
type ComponentStatus string

const (
	ComponentOK      ComponentStatus = "OK"
	ComponentWorn    ComponentStatus = "WORN"
	ComponentFailing ComponentStatus = "FAILING"
	ComponentUnknown ComponentStatus = "UNKNOWN"
)

// FilterStatus is the observed condition of an air or inlet filter.
type FilterStatus string

const (
	FilterClean   FilterStatus = "CLEAN"
	FilterDirty   FilterStatus = "DIRTY"
	FilterClogged FilterStatus = "CLOGGED"
)

// CondensateClarity is the observed state of hybrid condensate drainage.
type CondensateClarity string

const (
	CondensateClear   CondensateClarity = "CLEAR"
	CondensateCloudy  CondensateClarity = "CLOUDY"
	CondensateBlocked CondensateClarity = "BLOCKED"
)

// EnclosureVolume classifies the air volume around a hybrid heat pump.
type EnclosureVolume string

const (
	EnclosureOpen     EnclosureVolume = "OPEN"
	EnclosureAdequate EnclosureVolume = "ADEQUATE"
	EnclosureConfined EnclosureVolume = "CONFINED"
)

// TanklessVentStatus is the observed state of a tankless exhaust run.
type TanklessVentStatus string

const (
	TanklessVentClear      TanklessVentStatus = "CLEAR"
	TanklessVentRestricted TanklessVentStatus = "RESTRICTED"
	TanklessVentBlocked    TanklessVentStatus = "BLOCKED"
)

// GasLineSize is the nominal diameter of the gas supply line.
type GasLineSize string

const (
	GasLineHalf         GasLineSize = "1/2"
	GasLineThreeQuarter GasLineSize = "3/4"
	GasLineFull         GasLineSize = "1"
)

// ScaleBuildup is the estimated mineral scale inside a tankless heat exchanger.
type ScaleBuildup string

const (
	ScaleNone     ScaleBuildup = "NONE"
	ScaleLight    ScaleBuildup = "LIGHT"
	ScaleModerate ScaleBuildup = "MODERATE"
	ScaleHeavy    ScaleBuildup = "HEAVY"
)
