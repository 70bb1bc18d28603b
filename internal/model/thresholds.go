package model

// Consumable band boundaries. The depletion model, the issue rule table, the
// UI badge, and the maintenance scheduler all read these exact constants;
// they are never re-derived.
const (
	SedimentServiceLbs = 5.0  // >= this: flush recommended
	SedimentLockoutLbs = 15.0 // > this: flushing itself becomes risky
	AnodeLowYears      = 2.0  // < this: shield life low
)

// SedimentBand classifies a sediment reading.
type SedimentBand string

const (
	SedimentNormal  SedimentBand = "NORMAL"
	SedimentService SedimentBand = "SERVICE"
	SedimentLockout SedimentBand = "LOCKOUT"
)

// ClassifySediment applies the shared band boundaries: service at exactly
// SedimentServiceLbs, lockout strictly above SedimentLockoutLbs.
func ClassifySediment(lbs float64) SedimentBand {
	switch {
	case lbs > SedimentLockoutLbs:
		return SedimentLockout
	case lbs >= SedimentServiceLbs:
		return SedimentService
	default:
		return SedimentNormal
	}
}

// Infrastructure issue IDs referenced across packages: the pricing tiers
// bundle these by ID and the scheduler flags them as code-violation items.
const (
	IssueMissingExpTank     = "exp-tank-missing"
	IssueWaterloggedExpTank = "exp-tank-waterlogged"
	IssueNoPRV              = "psi-no-prv"
	IssueNoDrainPan         = "location-no-drain-pan"
	IssueNoIsolationValves  = "tankless-no-isolation-valves"
)
