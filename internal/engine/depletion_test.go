package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func TestSedimentLbs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.ForensicInputs)
		want   float64
	}{
		{"six years unflushed at 7 gpg", func(in *model.ForensicInputs) {}, 8.3},
		{
			"recent flush resets to residual",
			func(in *model.ForensicInputs) { in.LastFlushYearsAgo = fptr(1) },
			1.9,
		},
		{
			"active softener slows accumulation",
			func(in *model.ForensicInputs) {
				in.HasSoftener = true
				in.SoftenerHasSalt = true
			},
			3.9,
		},
		{
			"softener without salt does nothing",
			func(in *model.ForensicInputs) { in.HasSoftener = true },
			8.3,
		},
		{
			"heavy usage stirs more in",
			func(in *model.ForensicInputs) { in.Usage = model.UsageHeavy },
			10.8,
		},
		{
			"flush claim older than unit is ignored",
			func(in *model.ForensicInputs) { in.LastFlushYearsAgo = fptr(10) },
			8.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs(model.FuelGasTank)
			tt.mutate(&in)
			assert.Equal(t, tt.want, SedimentLbs(&in))
		})
	}
}

func TestSedimentLbsTanklessIsZero(t *testing.T) {
	in := model.DefaultInputs(model.FuelTanklessGas)
	in.CalendarAgeYears = 15
	assert.Zero(t, SedimentLbs(&in))
}

func TestShieldLifeYears(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.ForensicInputs)
		want   float64
	}{
		{"six years on chlorine", func(in *model.ForensicInputs) {}, 2.0},
		{
			"fresh anode",
			func(in *model.ForensicInputs) { in.LastAnodeYearsAgo = fptr(0.5) },
			7.5,
		},
		{
			"softened water burns the rod",
			func(in *model.ForensicInputs) {
				in.HasSoftener = true
				in.SoftenerHasSalt = true
			},
			0,
		},
		{
			"chloramine adds twenty percent",
			func(in *model.ForensicInputs) { in.Sanitizer = model.SanitizerChloramine },
			0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs(model.FuelGasTank)
			tt.mutate(&in)
			assert.Equal(t, tt.want, ShieldLifeYears(&in))
		})
	}
}

func TestShieldLifeYearsTanklessIsZero(t *testing.T) {
	in := model.DefaultInputs(model.FuelTanklessElectric)
	assert.Zero(t, ShieldLifeYears(&in))
}

func TestDescaleIntervalYears(t *testing.T) {
	tests := []struct {
		gpg      float64
		softened bool
		want     float64
	}{
		{3, false, 2.5},
		{5, false, 1.5},
		{7, false, 1.5},
		{10, false, 1.0},
		{15, false, 0.75},
		{22, false, 0.75},
		{15, true, 1.5},
		{3, true, 3.0}, // doubled interval caps at 3
	}

	for _, tt := range tests {
		in := model.DefaultInputs(model.FuelTanklessGas)
		in.StreetHardnessGPG = tt.gpg
		if tt.softened {
			in.HasSoftener = true
			in.SoftenerHasSalt = true
		}
		assert.Equal(t, tt.want, DescaleIntervalYears(&in), "gpg=%v softened=%v", tt.gpg, tt.softened)
	}
}

func TestDescaleStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.ForensicInputs)
		want   model.DescaleStatus
	}{
		{
			"no isolation valves is unserviceable",
			func(in *model.ForensicInputs) { in.Tankless.HasIsolationValves = false },
			model.DescaleUnserviceable,
		},
		{
			"never descaled falls back to calendar age",
			func(in *model.ForensicInputs) {},
			model.DescaleOverdue, // 6 years against a 1.5 year interval
		},
		{
			"recent descale is current",
			func(in *model.ForensicInputs) { in.Tankless.LastDescaleYearsAgo = fptr(0.5) },
			model.DescaleCurrent,
		},
		{
			"approaching the interval is due",
			func(in *model.ForensicInputs) { in.Tankless.LastDescaleYearsAgo = fptr(1.2) },
			model.DescaleDue,
		},
		{
			"past the interval is overdue",
			func(in *model.ForensicInputs) { in.Tankless.LastDescaleYearsAgo = fptr(1.5) },
			model.DescaleOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs(model.FuelTanklessGas)
			tt.mutate(&in)
			assert.Equal(t, tt.want, DescaleStatusFor(&in))
		})
	}
}

func TestAnnualMaintenanceImpliesRecentService(t *testing.T) {
	// A ten-year neglected tank on 12 gpg water versus the same tank with a
	// standing annual service habit: every consumable model must move.
	neglected := model.DefaultInputs(model.FuelGasTank)
	neglected.CalendarAgeYears = 10
	neglected.StreetHardnessGPG = 12

	maintained := neglected
	maintained.IsAnnuallyMaintained = true

	assert.Equal(t, 20.8, SedimentLbs(&neglected))
	assert.Equal(t, 2.6, SedimentLbs(&maintained))

	assert.Zero(t, ShieldLifeYears(&neglected))
	assert.Equal(t, 7.0, ShieldLifeYears(&maintained))
}

func TestAnnualMaintenanceExplicitHistoryWins(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	in.IsAnnuallyMaintained = true
	in.LastFlushYearsAgo = fptr(4)
	in.LastAnodeYearsAgo = fptr(4)

	// 1.38 lbs/yr over the four recorded years plus the flush residual.
	assert.Equal(t, 6.0, SedimentLbs(&in))
	assert.Equal(t, 4.0, ShieldLifeYears(&in))
}

func TestAnnualMaintenanceYoungerThanCadence(t *testing.T) {
	// A six-month-old unit can't have had last year's service yet; the claim
	// changes nothing.
	in := model.DefaultInputs(model.FuelGasTank)
	in.CalendarAgeYears = 0.5
	in.IsAnnuallyMaintained = true
	assert.Equal(t, 0.7, SedimentLbs(&in))
}

func TestAnnualMaintenanceDescaleStatus(t *testing.T) {
	in := model.DefaultInputs(model.FuelTanklessGas)
	assert.Equal(t, model.DescaleOverdue, DescaleStatusFor(&in))

	in.IsAnnuallyMaintained = true
	assert.Equal(t, model.DescaleCurrent, DescaleStatusFor(&in))
}

func TestDescaleStatusForTankIsEmpty(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	assert.Empty(t, DescaleStatusFor(&in))
}

func fptr(v float64) *float64 { return &v }
