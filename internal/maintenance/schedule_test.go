package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func taskByType(tasks []model.MaintenanceTask, typ string) (model.MaintenanceTask, bool) {
	for _, task := range tasks {
		if task.Type == typ {
			return task, true
		}
	}
	return model.MaintenanceTask{}, false
}

func TestScheduleTankTasks(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	tasks := Schedule(&in, Params{
		SedimentLbs:            2,
		SedimentRateLbsPerYear: 1,
		ShieldLifeYears:        5,
	}, nil)

	flush, ok := taskByType(tasks, "flush")
	require.True(t, ok)
	assert.Equal(t, 36, flush.MonthsUntilDue, "three years to the 5 lb service band")
	assert.Equal(t, model.UrgencyUpcoming, flush.Urgency)

	anode, ok := taskByType(tasks, "anode")
	require.True(t, ok)
	assert.Equal(t, 36, anode.MonthsUntilDue, "inspect two years before depletion")

	_, ok = taskByType(tasks, "descale")
	assert.False(t, ok, "tanks have no exchanger to descale")
}

func TestScheduleFlushOverdue(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	tasks := Schedule(&in, Params{
		SedimentLbs:            6.5,
		SedimentRateLbsPerYear: 1.4,
		ShieldLifeYears:        5,
	}, nil)

	flush, ok := taskByType(tasks, "flush")
	require.True(t, ok)
	assert.Zero(t, flush.MonthsUntilDue)
	assert.Equal(t, model.UrgencyOverdue, flush.Urgency)
}

func TestScheduleAnodeDepleted(t *testing.T) {
	in := model.DefaultInputs(model.FuelElectricTank)
	tasks := Schedule(&in, Params{
		SedimentLbs:            1,
		SedimentRateLbsPerYear: 1,
		ShieldLifeYears:        0,
	}, nil)

	anode, ok := taskByType(tasks, "anode")
	require.True(t, ok)
	assert.Zero(t, anode.MonthsUntilDue)
	assert.Equal(t, model.UrgencyOverdue, anode.Urgency)
}

func TestScheduleHybridTasks(t *testing.T) {
	in := model.DefaultInputs(model.FuelHybrid)
	tasks := Schedule(&in, Params{SedimentRateLbsPerYear: 1, ShieldLifeYears: 5}, nil)

	filter, ok := taskByType(tasks, "air-filter")
	require.True(t, ok)
	assert.Equal(t, 6, filter.MonthsUntilDue)

	cond, ok := taskByType(tasks, "condensate")
	require.True(t, ok)
	assert.Equal(t, 12, cond.MonthsUntilDue)

	// Hybrids are still tanks underneath.
	_, ok = taskByType(tasks, "flush")
	assert.True(t, ok)
	_, ok = taskByType(tasks, "anode")
	assert.True(t, ok)
}

func TestScheduleHybridDistress(t *testing.T) {
	in := model.DefaultInputs(model.FuelHybrid)
	in.Hybrid.AirFilter = model.FilterClogged
	in.Hybrid.Condensate = model.CondensateBlocked

	tasks := Schedule(&in, Params{SedimentRateLbsPerYear: 1, ShieldLifeYears: 5}, nil)

	filter, _ := taskByType(tasks, "air-filter")
	assert.Equal(t, model.UrgencyOverdue, filter.Urgency)

	cond, _ := taskByType(tasks, "condensate")
	assert.Equal(t, model.UrgencyOverdue, cond.Urgency)
}

func TestScheduleDescaleImpossibleWithoutValves(t *testing.T) {
	in := model.DefaultInputs(model.FuelTanklessGas)
	in.Tankless.HasIsolationValves = false

	issues := []model.Issue{{ID: model.IssueNoIsolationValves, Severity: model.SeverityCritical}}
	tasks := Schedule(&in, Params{
		DescaleIntervalYears: 1.5,
		DescaleStatus:        model.DescaleUnserviceable,
	}, issues)

	descale, ok := taskByType(tasks, "descale")
	require.True(t, ok)
	assert.Equal(t, model.UrgencyImpossible, descale.Urgency)

	install, ok := taskByType(tasks, "install-isolation-valves")
	require.True(t, ok)
	assert.True(t, install.IsInfrastructure)
	assert.Equal(t, model.UrgencyOverdue, install.Urgency)

	// A blocked task sorts ahead of everything it blocks on.
	assert.Equal(t, "descale", tasks[0].Type)
}

func TestScheduleDescaleTiming(t *testing.T) {
	tests := []struct {
		name       string
		lastYears  *float64
		status     model.DescaleStatus
		wantMonths int
		wantUrg    model.TaskUrgency
	}{
		{"fresh descale", fptr(0.5), model.DescaleCurrent, 12, model.UrgencyUpcoming},
		{"approaching interval", fptr(1.2), model.DescaleDue, 3, model.UrgencyDue},
		{"overdue pins to now", fptr(2.5), model.DescaleOverdue, 0, model.UrgencyOverdue},
		{"never descaled uses calendar age", nil, model.DescaleOverdue, 0, model.UrgencyOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs(model.FuelTanklessGas)
			in.Tankless.LastDescaleYearsAgo = tt.lastYears

			tasks := Schedule(&in, Params{
				DescaleIntervalYears: 1.5,
				DescaleStatus:        tt.status,
			}, nil)

			descale, ok := taskByType(tasks, "descale")
			require.True(t, ok)
			assert.Equal(t, tt.wantMonths, descale.MonthsUntilDue)
			assert.Equal(t, tt.wantUrg, descale.Urgency)
		})
	}
}

func TestScheduleInfrastructureTasks(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	issues := []model.Issue{
		{ID: model.IssueMissingExpTank},
		{ID: model.IssueNoPRV},
		{ID: model.IssueNoDrainPan},
	}

	tasks := Schedule(&in, Params{SedimentRateLbsPerYear: 1, ShieldLifeYears: 8}, issues)

	for _, typ := range []string{"install-exp-tank", "install-prv", "install-drain-pan"} {
		task, ok := taskByType(tasks, typ)
		require.True(t, ok, typ)
		assert.True(t, task.IsInfrastructure, typ)
		assert.Equal(t, model.UrgencyOverdue, task.Urgency, typ)
	}
}

func TestScheduleOrdering(t *testing.T) {
	in := model.DefaultInputs(model.FuelGasTank)
	issues := []model.Issue{{ID: model.IssueNoPRV}}

	tasks := Schedule(&in, Params{
		SedimentLbs:            2,
		SedimentRateLbsPerYear: 1,
		ShieldLifeYears:        3, // anode due in 12 months
	}, issues)

	require.GreaterOrEqual(t, len(tasks), 3)
	for i := 1; i < len(tasks); i++ {
		assert.LessOrEqual(t, tasks[i-1].Urgency.Rank(), tasks[i].Urgency.Rank())
	}
	assert.Equal(t, "install-prv", tasks[0].Type)
}

func fptr(v float64) *float64 { return &v }
