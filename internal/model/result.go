package model

import "time"

// Severity tags an issue by how urgently it needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns a numeric rank for ordering: lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Issue is a single discrete finding emitted by the rule evaluator. ID is
// stable and rule-specific; dashboards and tests key off it.
type Issue struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Value    string   `json:"value,omitempty"`
}

// VerdictAction is the summary recommendation class.
type VerdictAction string

const (
	ActionReplaceNow  VerdictAction = "REPLACE_NOW"
	ActionReplaceSoon VerdictAction = "REPLACE_SOON"
	ActionServiceNow  VerdictAction = "SERVICE_NOW"
	ActionMaintain    VerdictAction = "MAINTAIN"
	ActionMonitor     VerdictAction = "MONITOR"
)

// Verdict is the single categorical summary derived from the worst issue
// present plus the dominant-condition overrides.
type Verdict struct {
	Action     VerdictAction `json:"action"`
	Title      string        `json:"title"`
	Reason     string        `json:"reason"`
	BadgeColor string        `json:"badge_color"`
	Urgent     bool          `json:"urgent"`
}

// StressFactors is the multiplier breakdown from the stress calculator.
// Each factor is >= ~0.8; Total is monotonically non-decreasing in every
// individual adverse factor and equals 1.0 under textbook-normal conditions.
type StressFactors struct {
	Pressure       float64 `json:"pressure"`
	Temp           float64 `json:"temp"`
	Circ           float64 `json:"circ"`
	Loop           float64 `json:"loop"`
	UsageIntensity float64 `json:"usage_intensity"`
	Undersizing    float64 `json:"undersizing"`
	Mechanical     float64 `json:"mechanical"`
	Chemical       float64 `json:"chemical"`
	Total          float64 `json:"total"`
}

// DescaleStatus summarizes tankless descale standing.
type DescaleStatus string

const (
	DescaleCurrent       DescaleStatus = "CURRENT"
	DescaleDue           DescaleStatus = "DUE"
	DescaleOverdue       DescaleStatus = "OVERDUE"
	DescaleUnserviceable DescaleStatus = "UNSERVICEABLE" // no isolation valves
)

// Metrics is the numeric heart of an assessment.
type Metrics struct {
	BioAge           float64       `json:"bio_age"`
	FailProb         float64       `json:"fail_prob"` // percent, 0-100
	YearsLeftCurrent float64       `json:"years_left_current"`
	EffectivePSI     float64       `json:"effective_psi"`
	SedimentLbs      float64       `json:"sediment_lbs"`
	ShieldLifeYears  float64       `json:"shield_life_years"`
	RiskLevel        int           `json:"risk_level"`   // 1-5
	HealthScore      int           `json:"health_score"` // 0-100, inverse of FailProb
	AgingRate        float64       `json:"aging_rate"`
	StressFactors    StressFactors `json:"stress_factors"`
	BacterialWarning bool          `json:"bacterial_growth_warning"`

	// Tankless only.
	DescaleStatus   DescaleStatus `json:"descale_status,omitempty"`
	PrimaryStressor string        `json:"primary_stressor,omitempty"`
}

// SoftenerRecommendation is the hard-water economics recommendation class.
type SoftenerRecommendation string

const (
	SoftenerRecommend SoftenerRecommendation = "RECOMMEND"
	SoftenerConsider  SoftenerRecommendation = "CONSIDER"
	SoftenerProtected SoftenerRecommendation = "PROTECTED"
	SoftenerNeutral   SoftenerRecommendation = "NEUTRAL"
)

// HardWaterTax is the annual economic analysis of untreated hard water.
type HardWaterTax struct {
	HardnessGPG       float64                `json:"hardness_gpg"`
	TotalAnnualLoss   float64                `json:"total_annual_loss"`
	NetAnnualSavings  float64                `json:"net_annual_savings"`
	PaybackYears      float64                `json:"payback_years"`
	Recommendation    SoftenerRecommendation `json:"recommendation"`
	ElementBurnoutPct float64                `json:"element_burnout_risk,omitempty"` // electric/hybrid only
}

// BudgetUrgency buckets how soon replacement money is needed.
type BudgetUrgency string

const (
	BudgetImmediate BudgetUrgency = "IMMEDIATE"
	BudgetHigh      BudgetUrgency = "HIGH"
	BudgetMedium    BudgetUrgency = "MEDIUM"
	BudgetLow       BudgetUrgency = "LOW"
)

// Tier is one of the four fixed replacement quality/price bands.
type Tier string

const (
	TierBuilder      Tier = "BUILDER"
	TierStandard     Tier = "STANDARD"
	TierProfessional Tier = "PROFESSIONAL"
	TierPremium      Tier = "PREMIUM"
)

// AllTiers lists tiers from cheapest to most expensive.
func AllTiers() []Tier {
	return []Tier{TierBuilder, TierStandard, TierProfessional, TierPremium}
}

// TierQuote is one tier's bundled replacement quote. InfraIncluded lists the
// open infrastructure issues whose cost is folded into Total.
type TierQuote struct {
	Tier          Tier     `json:"tier"`
	WarrantyYears int      `json:"warranty_years"`
	EquipmentLow  float64  `json:"equipment_low"`
	EquipmentHigh float64  `json:"equipment_high"`
	InfraIncluded []string `json:"infra_included,omitempty"`
	InfraCost     float64  `json:"infra_cost"`
	TotalLow      float64  `json:"total_low"`
	TotalHigh     float64  `json:"total_high"`
}

// Financial is the replacement budgeting block.
type Financial struct {
	TargetReplacementDate time.Time     `json:"target_replacement_date"`
	CostLow               float64       `json:"cost_low"`
	CostHigh              float64       `json:"cost_high"`
	MonthlyBudget         float64       `json:"monthly_budget"`
	BudgetUrgency         BudgetUrgency `json:"budget_urgency"`
	Tiers                 []TierQuote   `json:"tiers"`
}

// TaskUrgency classifies a maintenance task's due state. Impossible marks a
// terminal state: the task cannot proceed until a prerequisite is installed.
type TaskUrgency string

const (
	UrgencyOverdue    TaskUrgency = "overdue"
	UrgencyDue        TaskUrgency = "due"
	UrgencyUpcoming   TaskUrgency = "upcoming"
	UrgencyImpossible TaskUrgency = "impossible"
)

// Rank returns a numeric rank for ordering: lower is more pressing.
func (u TaskUrgency) Rank() int {
	switch u {
	case UrgencyImpossible:
		return 0
	case UrgencyOverdue:
		return 1
	case UrgencyDue:
		return 2
	case UrgencyUpcoming:
		return 3
	default:
		return 4
	}
}

// MaintenanceTask is one scheduled item, ordered primary-first.
type MaintenanceTask struct {
	Type             string      `json:"type"`
	Label            string      `json:"label"`
	MonthsUntilDue   int         `json:"months_until_due"` // <= 0 means overdue
	Urgency          TaskUrgency `json:"urgency"`
	Benefit          string      `json:"benefit"`
	WhyExplanation   string      `json:"why"`
	Icon             string      `json:"icon"`
	IsInfrastructure bool        `json:"is_infrastructure"`
}

// ProjectionPoint is one step of the forward bio-age/failure trend.
type ProjectionPoint struct {
	MonthOffset int     `json:"month_offset"`
	BioAge      float64 `json:"bio_age"`
	FailProb    float64 `json:"fail_prob"`
	HealthScore int     `json:"health_score"`
}

// OpterraResult is the engine's sole output: a fresh, never-mutated bundle
// consumed by the presentation layer.
type OpterraResult struct {
	Metrics      Metrics           `json:"metrics"`
	Verdict      Verdict           `json:"verdict"`
	Issues       []Issue           `json:"issues"`
	HardWaterTax HardWaterTax      `json:"hard_water_tax"`
	Financial    Financial         `json:"financial"`
	Maintenance  []MaintenanceTask `json:"maintenance"`
}

// CriticalCount returns the number of critical issues in the result.
func (r *OpterraResult) CriticalCount() int {
	n := 0
	for i := range r.Issues {
		if r.Issues[i].Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// WorstSeverity returns the most severe issue severity present, or "" when
// the issue list is empty.
func (r *OpterraResult) WorstSeverity() Severity {
	var worst Severity
	best := 99
	for i := range r.Issues {
		if rank := r.Issues[i].Severity.Rank(); rank < best {
			best = rank
			worst = r.Issues[i].Severity
		}
	}
	return worst
}
