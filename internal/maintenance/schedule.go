// Package maintenance produces the forward service schedule for a unit:
// what to do, when it comes due, and why it pays.
package maintenance

import (
	"math"
	"sort"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// Params carries the engine-computed figures the scheduler keys tasks off.
type Params struct {
	SedimentLbs            float64
	SedimentRateLbsPerYear float64
	ShieldLifeYears        float64
	DescaleIntervalYears   float64
	DescaleStatus          model.DescaleStatus
}

const (
	dueWindowMonths    = 3
	anodeLeadYears     = 2.0
	hybridFilterMonths = 6
	condensateMonths   = 12
)

// Schedule builds the ordered task list for the unit. Tasks are sorted most
// pressing first: unserviceable blockers, then overdue, due, upcoming, and
// within each bucket by months until due.
func Schedule(in *model.ForensicInputs, p Params, issues []model.Issue) []model.MaintenanceTask {
	var tasks []model.MaintenanceTask

	if in.Fuel.IsTank() {
		tasks = append(tasks, flushTask(in, p), anodeTask(p))
	}

	if in.Fuel.IsHybrid() {
		tasks = append(tasks, hybridTasks(in)...)
	}

	if in.Fuel.IsTankless() && in.Tankless != nil {
		tasks = append(tasks, descaleTask(in, p))
	}

	tasks = append(tasks, infrastructureTasks(in, issues)...)

	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Urgency != tasks[j].Urgency {
			return tasks[i].Urgency.Rank() < tasks[j].Urgency.Rank()
		}
		return tasks[i].MonthsUntilDue < tasks[j].MonthsUntilDue
	})
	return tasks
}

// flushTask schedules the tank flush for when accumulation crosses the
// service band, based on the current sediment trajectory.
func flushTask(in *model.ForensicInputs, p Params) model.MaintenanceTask {
	months := 0
	if p.SedimentRateLbsPerYear > 0 {
		months = int(math.Floor((model.SedimentServiceLbs - p.SedimentLbs) / p.SedimentRateLbsPerYear * 12))
	}
	if p.SedimentLbs >= model.SedimentServiceLbs {
		months = 0
	}

	detail := "Flushing clears mineral sediment before it insulates the burner surface and hard-starts the tank."
	if in.Fuel == model.FuelElectricTank {
		detail = "Flushing clears mineral sediment before it buries the lower element and burns it out."
	}

	return model.MaintenanceTask{
		Type:           "flush",
		Label:          "Flush tank",
		MonthsUntilDue: clampMonths(months),
		Urgency:        urgencyFor(months),
		Benefit:        "Restores efficiency and keeps sediment below the serviceable band",
		WhyExplanation: detail,
		Icon:           "droplet",
	}
}

// anodeTask schedules an anode inspection so the rod is swapped while some
// sacrificial metal remains, not after the tank wall starts taking the hit.
func anodeTask(p Params) model.MaintenanceTask {
	months := int(math.Floor((p.ShieldLifeYears - anodeLeadYears) * 12))
	return model.MaintenanceTask{
		Type:           "anode",
		Label:          "Inspect anode rod",
		MonthsUntilDue: clampMonths(months),
		Urgency:        urgencyFor(months),
		Benefit:        "A fresh rod can double remaining tank life",
		WhyExplanation: "The anode corrodes in place of the tank wall. Once it is consumed, the tank itself starts rusting from the inside.",
		Icon:           "shield",
	}
}

func hybridTasks(in *model.ForensicInputs) []model.MaintenanceTask {
	h := in.Hybrid

	filterMonths := hybridFilterMonths
	if h != nil && h.AirFilter == model.FilterClogged {
		filterMonths = 0
	} else if h != nil && h.AirFilter == model.FilterDirty {
		filterMonths = 1
	}

	condMonths := condensateMonths
	if h != nil && h.Condensate == model.CondensateBlocked {
		condMonths = 0
	} else if h != nil && h.Condensate == model.CondensateCloudy {
		condMonths = 2
	}

	return []model.MaintenanceTask{
		{
			Type:           "air-filter",
			Label:          "Clean heat pump air filter",
			MonthsUntilDue: filterMonths,
			Urgency:        urgencyFor(filterMonths),
			Benefit:        "Keeps the compressor off and the unit in heat pump mode",
			WhyExplanation: "A starved heat pump falls back to resistance elements and the operating cost advantage disappears.",
			Icon:           "wind",
		},
		{
			Type:           "condensate",
			Label:          "Flush condensate line",
			MonthsUntilDue: condMonths,
			Urgency:        urgencyFor(condMonths),
			Benefit:        "Prevents overflow shutoffs and water damage below the unit",
			WhyExplanation: "Heat pump units pull gallons of water out of the air; a blocked drain puts it on the floor.",
			Icon:           "droplets",
		},
	}
}

// descaleTask schedules the tankless descale. Without isolation valves the
// flush cannot physically be performed, so the task is marked unserviceable
// rather than given a date.
func descaleTask(in *model.ForensicInputs, p Params) model.MaintenanceTask {
	t := in.Tankless

	if !t.HasIsolationValves {
		return model.MaintenanceTask{
			Type:           "descale",
			Label:          "Descale heat exchanger",
			MonthsUntilDue: 0,
			Urgency:        model.UrgencyImpossible,
			Benefit:        "Restores flow and prevents exchanger hot spots",
			WhyExplanation: "This unit has no isolation valves, so a descale flush cannot be hooked up. Valves must be installed first.",
			Icon:           "flame",
		}
	}

	elapsed := 0.0
	if t.LastDescaleYearsAgo != nil {
		elapsed = *t.LastDescaleYearsAgo
	} else {
		elapsed = in.CalendarAgeYears
	}
	months := int(math.Floor((p.DescaleIntervalYears - elapsed) * 12))

	urgency := urgencyFor(months)
	switch p.DescaleStatus {
	case model.DescaleOverdue:
		urgency = model.UrgencyOverdue
		months = 0
	case model.DescaleDue:
		if urgency == model.UrgencyUpcoming {
			urgency = model.UrgencyDue
		}
	}

	return model.MaintenanceTask{
		Type:           "descale",
		Label:          "Descale heat exchanger",
		MonthsUntilDue: clampMonths(months),
		Urgency:        urgency,
		Benefit:        "Restores flow and prevents exchanger hot spots",
		WhyExplanation: "Scale narrows the exchanger passages. Flow drops, the burner short-cycles, and the exchanger eventually cracks.",
		Icon:           "flame",
	}
}

// infrastructureTasks turns open infrastructure issues into one-time
// install tasks, due immediately.
func infrastructureTasks(in *model.ForensicInputs, issues []model.Issue) []model.MaintenanceTask {
	var tasks []model.MaintenanceTask
	for i := range issues {
		switch issues[i].ID {
		case model.IssueMissingExpTank, model.IssueWaterloggedExpTank:
			tasks = append(tasks, model.MaintenanceTask{
				Type:             "install-exp-tank",
				Label:            "Install expansion tank",
				Urgency:          model.UrgencyOverdue,
				Benefit:          "Takes thermal expansion pressure spikes off the tank and fixtures",
				WhyExplanation:   "On a closed plumbing loop, heated water has nowhere to expand. The tank absorbs the spike on every heating cycle.",
				Icon:             "gauge",
				IsInfrastructure: true,
			})
		case model.IssueNoPRV:
			tasks = append(tasks, model.MaintenanceTask{
				Type:             "install-prv",
				Label:            "Install pressure reducing valve",
				Urgency:          model.UrgencyOverdue,
				Benefit:          "Brings street pressure down into the appliance-safe range",
				WhyExplanation:   "Sustained high inlet pressure works every connection and the tank seam around the clock.",
				Icon:             "gauge",
				IsInfrastructure: true,
			})
		case model.IssueNoDrainPan:
			tasks = append(tasks, model.MaintenanceTask{
				Type:             "install-drain-pan",
				Label:            "Install drain pan",
				Urgency:          model.UrgencyOverdue,
				Benefit:          "Routes a leak to a drain instead of the ceiling below",
				WhyExplanation:   "In this location a tank failure drains into finished space. A pan and drain line contain it.",
				Icon:             "layout-panel-top",
				IsInfrastructure: true,
			})
		case model.IssueNoIsolationValves:
			tasks = append(tasks, model.MaintenanceTask{
				Type:             "install-isolation-valves",
				Label:            "Install isolation valves",
				Urgency:          model.UrgencyOverdue,
				Benefit:          "Makes descaling possible without cutting pipe",
				WhyExplanation:   "Descale service needs flush ports. Without valves every future descale means opening the plumbing.",
				Icon:             "wrench",
				IsInfrastructure: true,
			})
		}
	}
	return tasks
}

func urgencyFor(months int) model.TaskUrgency {
	switch {
	case months <= 0:
		return model.UrgencyOverdue
	case months <= dueWindowMonths:
		return model.UrgencyDue
	default:
		return model.UrgencyUpcoming
	}
}

func clampMonths(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
