package engine

import (
	"fmt"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// Badge colors keyed by action class; the presentation layer renders these
// directly.
const (
	badgeRed    = "red"
	badgeOrange = "orange"
	badgeYellow = "yellow"
	badgeGreen  = "green"
)

// ComputeVerdict derives the single summary verdict: dominant-condition
// overrides first (each forces a replace/critical-class action with
// urgent=true), then the worst issue severity present.
func ComputeVerdict(in *model.ForensicInputs, m *model.Metrics, issues []model.Issue) model.Verdict {
	switch {
	case in.ActiveLeak:
		return model.Verdict{
			Action:     model.ActionReplaceNow,
			Title:      "Replace now",
			Reason:     "An active leak means the unit has already failed; every day adds water damage risk.",
			BadgeColor: badgeRed,
			Urgent:     true,
		}
	case in.VisibleRust:
		return model.Verdict{
			Action:     model.ActionReplaceNow,
			Title:      "Replace now",
			Reason:     "Visible corrosion on the jacket means internal corrosion is further along.",
			BadgeColor: badgeRed,
			Urgent:     true,
		}
	case in.HousePSI > PSIBurst:
		return model.Verdict{
			Action:     model.ActionServiceNow,
			Title:      "Emergency pressure correction",
			Reason:     fmt.Sprintf("Static pressure of %.0f PSI is past the relief valve's rated limit.", in.HousePSI),
			BadgeColor: badgeRed,
			Urgent:     true,
		}
	case m.BioAge >= BioAgeSaturation:
		return model.Verdict{
			Action:     model.ActionReplaceNow,
			Title:      "Replace now",
			Reason:     fmt.Sprintf("At %.1f biological years the unit is past its service life.", m.BioAge),
			BadgeColor: badgeRed,
			Urgent:     true,
		}
	case m.FailProb >= FailProbUrgent:
		return model.Verdict{
			Action:     model.ActionReplaceSoon,
			Title:      "Plan replacement",
			Reason:     fmt.Sprintf("A %.0f%% chance of failure inside 12 months is a budgeting deadline, not a maybe.", m.FailProb),
			BadgeColor: badgeRed,
			Urgent:     true,
		}
	}

	worst, worstIssue := worstOf(issues)
	switch worst {
	case model.SeverityCritical:
		return model.Verdict{
			Action:     model.ActionServiceNow,
			Title:      "Service required",
			Reason:     worstIssue.Title + " needs correction before it compounds.",
			BadgeColor: badgeOrange,
			Urgent:     false,
		}
	case model.SeverityWarning:
		return model.Verdict{
			Action:     model.ActionMaintain,
			Title:      "Maintenance due",
			Reason:     worstIssue.Title + " is the kind of wear that maintenance still reverses.",
			BadgeColor: badgeYellow,
			Urgent:     false,
		}
	default:
		return model.Verdict{
			Action:     model.ActionMonitor,
			Title:      "Healthy",
			Reason:     "No conditions need attention; keep an eye on it at the next annual check.",
			BadgeColor: badgeGreen,
			Urgent:     false,
		}
	}
}

// worstOf returns the most severe severity present and the first issue
// carrying it, preserving table order for deterministic reasons.
func worstOf(issues []model.Issue) (model.Severity, model.Issue) {
	var worst model.Issue
	best := 99
	for i := range issues {
		if rank := issues[i].Severity.Rank(); rank < best {
			best = rank
			worst = issues[i]
		}
	}
	return worst.Severity, worst
}
