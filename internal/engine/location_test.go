package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func TestLocationRisk(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.ForensicInputs)
		want   int
	}{
		{
			"garage with pan",
			func(in *model.ForensicInputs) {},
			1,
		},
		{
			"attic without pan is the worst case",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationAttic
				in.HasDrainPan = false
			},
			5,
		},
		{
			"upper floor without pan is the worst case",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationUpperFloor
				in.HasDrainPan = false
			},
			5,
		},
		{
			"attic with pan",
			func(in *model.ForensicInputs) { in.Location = model.LocationAttic },
			3,
		},
		{
			"closet in finished space without pan",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationCloset
				in.IsFinishedArea = true
				in.HasDrainPan = false
			},
			4,
		},
		{
			"basement on an unprotected closed loop is always critical",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationBasement
				in.HasDrainPan = false
				in.IsClosedLoop = true
			},
			4,
		},
		{
			"closed loop with a functional expansion tank is not escalated",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationBasement
				in.HasDrainPan = false
				in.IsClosedLoop = true
				in.HasExpTank = true
				in.ExpTankStatus = model.ExpTankFunctional
			},
			1,
		},
		{
			"main floor finished without pan",
			func(in *model.ForensicInputs) {
				in.Location = model.LocationMainFloor
				in.IsFinishedArea = true
				in.HasDrainPan = false
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs(model.FuelGasTank)
			tt.mutate(&in)
			assert.Equal(t, tt.want, LocationRisk(&in))
		})
	}
}

func TestLocationRiskBounds(t *testing.T) {
	locations := []model.InstallLocation{
		model.LocationAttic, model.LocationUpperFloor, model.LocationCloset,
		model.LocationMainFloor, model.LocationUtilityRoom, model.LocationCrawlspace,
		model.LocationBasement, model.LocationGarage, model.LocationOutdoor,
	}
	for _, loc := range locations {
		for _, pan := range []bool{true, false} {
			for _, finished := range []bool{true, false} {
				in := model.DefaultInputs(model.FuelGasTank)
				in.Location = loc
				in.HasDrainPan = pan
				in.IsFinishedArea = finished

				level := LocationRisk(&in)
				assert.GreaterOrEqual(t, level, 1)
				assert.LessOrEqual(t, level, 5)
			}
		}
	}
}
