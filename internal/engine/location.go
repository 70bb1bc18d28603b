package engine

import "github.com/opterra-labs/opterra-cli/internal/model"

// Risk level thresholds shared with the issue severity mapping.
const (
	RiskCritical = 4 // >= this: high-risk installation
	RiskElevated = 3
)

// locationBase maps the install location to its intrinsic damage potential.
// Water falls: the higher the unit sits above finished space, the worse a
// failure gets.
func locationBase(loc model.InstallLocation) int {
	switch loc {
	case model.LocationAttic:
		return 4
	case model.LocationUpperFloor, model.LocationCloset:
		return 3
	case model.LocationMainFloor, model.LocationUtilityRoom, model.LocationCrawlspace:
		return 2
	default: // basement, garage, outdoor
		return 1
	}
}

// LocationRisk maps installation and containment to a discrete 1-5 risk
// level. An attic or upper floor without a drain pan is the maximum-severity
// case; an unprotected closed loop is always critical regardless of location.
func LocationRisk(in *model.ForensicInputs) int {
	level := locationBase(in.Location)

	if in.IsFinishedArea {
		level++
	}
	if in.HasDrainPan && level > 1 {
		level--
	}

	overhead := in.Location == model.LocationAttic || in.Location == model.LocationUpperFloor
	if overhead && !in.HasDrainPan {
		level = 5
	}
	if in.ClosedLoop() && !in.ExpansionProtected() && level < RiskCritical {
		level = RiskCritical
	}

	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return level
}
