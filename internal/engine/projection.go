package engine

import "github.com/opterra-labs/opterra-cli/internal/model"

// Project extrapolates the aging model forward, one point per month, by
// re-evaluating at the advanced calendar age. The stress profile is held
// constant, so the curve shows what happens if nothing about the
// installation changes. Point 0 is the current state.
func Project(in model.ForensicInputs, months int) []model.ProjectionPoint {
	if months < 0 {
		months = 0
	}
	norm := in.Normalized()
	sf := ComputeStress(&norm)

	points := make([]model.ProjectionPoint, 0, months+1)
	for m := 0; m <= months; m++ {
		future := norm
		future.CalendarAgeYears = norm.CalendarAgeYears + float64(m)/12

		aging := ComputeAging(&future, sf)
		points = append(points, model.ProjectionPoint{
			MonthOffset: m,
			BioAge:      aging.BioAge,
			FailProb:    aging.FailProb,
			HealthScore: aging.HealthScore,
		})
	}
	return points
}
