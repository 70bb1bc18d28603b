package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func TestPressureStress(t *testing.T) {
	tests := []struct {
		psi  float64
		want float64
	}{
		{0, 1.0},
		{58, 1.0},
		{60, 1.0},
		{70, 1.1},
		{80, 1.2},
		{100, 1.6},
		{150, 2.6},
		{151, 3.5},
		{300, 3.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PressureStress(tt.psi), 1e-9, "psi=%v", tt.psi)
	}
}

func TestPressureStressMonotone(t *testing.T) {
	prev := 0.0
	for psi := 0.0; psi <= 200; psi++ {
		cur := PressureStress(psi)
		assert.GreaterOrEqual(t, cur, prev, "psi=%v", psi)
		prev = cur
	}
}

func TestEffectivePSI(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	assert.Equal(t, 58.0, EffectivePSI(&in))

	in.IsClosedLoop = true
	assert.Equal(t, 98.0, EffectivePSI(&in), "unprotected closed loop adds 40")

	in.HasExpTank = true
	in.ExpTankStatus = model.ExpTankFunctional
	assert.Equal(t, 58.0, EffectivePSI(&in), "functional expansion tank absorbs the spike")

	in.ExpTankStatus = model.ExpTankWaterlogged
	assert.Equal(t, 98.0, EffectivePSI(&in), "waterlogged tank protects nothing")
}

func TestComputeStressDefaultsAreNeutral(t *testing.T) {
	for _, fuel := range model.AllFuelTypes() {
		t.Run(string(fuel), func(t *testing.T) {
			in := model.DefaultInputs(fuel)
			sf := ComputeStress(&in)
			assert.Equal(t, 1.0, sf.Total)
			assert.Equal(t, "none", PrimaryStressor(sf))
		})
	}
}

func TestComputeStressCeilingAndFloor(t *testing.T) {
	// Everything adverse at once: the raw product is far above the cap.
	worst := model.DefaultInputs(model.FuelGasTank)
	worst.HousePSI = 160
	worst.Temp = model.TempScalding
	worst.Usage = model.UsageHeavy
	worst.HasCirculationPump = true
	worst.IsClosedLoop = true
	worst.Occupants = 6

	sf := ComputeStress(&worst)
	assert.Equal(t, 4.0, sf.Total)

	// Tankless caps lower.
	worstTL := model.DefaultInputs(model.FuelTanklessGas)
	worstTL.HousePSI = 160
	worstTL.Temp = model.TempScalding
	assert.Equal(t, 3.0, ComputeStress(&worstTL).Total)

	// Light usage plus a low setpoint is the gentlest possible profile.
	gentle := model.DefaultInputs(model.FuelGasTank)
	gentle.Usage = model.UsageLight
	gentle.Temp = model.TempLow
	assert.Equal(t, 0.86, ComputeStress(&gentle).Total)
}

func TestComputeStressLoopFactor(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	in.IsClosedLoop = true

	sf := ComputeStress(&in)
	assert.Equal(t, 1.3, sf.Loop)
	assert.Equal(t, 1.3, sf.Total)

	in.HasExpTank = true
	in.ExpTankStatus = model.ExpTankFunctional
	sf = ComputeStress(&in)
	assert.Equal(t, 1.0, sf.Loop)
	assert.Equal(t, 1.0, sf.Total)
}

func TestComputeStressUndersizing(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank) // 40 gal
	in.Occupants = 6                             // 72 gal peak demand

	sf := ComputeStress(&in)
	assert.Equal(t, 1.5, sf.Undersizing, "tank undersizing caps at 1.5")

	tl := model.DefaultInputs(model.FuelTanklessGas) // 8 GPM rated
	tl.Occupants = 12                                // 10.5 GPM simultaneous demand
	sf = ComputeStress(&tl)
	require.Greater(t, sf.Undersizing, 1.0)
	assert.InDelta(t, 10.5/8.0, sf.Undersizing, 1e-9)
}

func TestComputeStressMonotoneInPressure(t *testing.T) {
	prev := 0.0
	for psi := 40.0; psi <= 170; psi += 5 {
		in := model.DefaultInputs(model.FuelGasTank)
		in.HousePSI = psi
		total := ComputeStress(&in).Total
		assert.GreaterOrEqual(t, total, prev, "psi=%v", psi)
		prev = total
	}
}

func TestPrimaryStressor(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	in.HousePSI = 70
	assert.Equal(t, "pressure", PrimaryStressor(ComputeStress(&in)))

	in = model.DefaultInputs(model.FuelGasTank)
	in.HasCirculationPump = true
	assert.Equal(t, "circulation", PrimaryStressor(ComputeStress(&in)))

	in = model.DefaultInputs(model.FuelGasTank)
	in.Temp = model.TempScalding
	assert.Equal(t, "temperature", PrimaryStressor(ComputeStress(&in)))
}
