package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opterra-labs/opterra-cli/internal/engine"
	"github.com/opterra-labs/opterra-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleResult(fuel model.FuelType) (model.ForensicInputs, model.OpterraResult) {
	in := model.DefaultInputs(fuel)
	res := engine.NewDefault().Evaluate(in, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	return in, res
}

func TestSQLiteSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in, res := sampleResult(model.FuelGasTank)
	saved, err := s.SaveAssessment(ctx, "garage unit", in, res)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetAssessment(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "garage unit", got.Label)
	assert.Equal(t, model.FuelGasTank, got.Inputs.Fuel)
	assert.Equal(t, res.Verdict.Action, got.Result.Verdict.Action)
	assert.Equal(t, res.Metrics.FailProb, got.Result.Metrics.FailProb)
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAssessment(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	gasIn, gasRes := sampleResult(model.FuelGasTank)
	tlIn, tlRes := sampleResult(model.FuelTanklessGas)

	_, err := s.SaveAssessment(ctx, "gas", gasIn, gasRes)
	require.NoError(t, err)
	_, err = s.SaveAssessment(ctx, "tankless", tlIn, tlRes)
	require.NoError(t, err)

	all, err := s.ListAssessments(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	gasOnly, err := s.ListAssessments(ctx, Filter{Fuel: model.FuelGasTank})
	require.NoError(t, err)
	require.Len(t, gasOnly, 1)
	assert.Equal(t, "gas", gasOnly[0].Label)

	byAction, err := s.ListAssessments(ctx, Filter{Action: gasRes.Verdict.Action})
	require.NoError(t, err)
	require.NotEmpty(t, byAction)
	for _, a := range byAction {
		assert.Equal(t, gasRes.Verdict.Action, a.Result.Verdict.Action)
	}

	none, err := s.ListAssessments(ctx, Filter{Fuel: model.FuelHybrid})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in, res := sampleResult(model.FuelGasTank)
	for i := 0; i < 5; i++ {
		_, err := s.SaveAssessment(ctx, "unit", in, res)
		require.NoError(t, err)
	}

	page, err := s.ListAssessments(ctx, Filter{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page, 3)

	rest, err := s.ListAssessments(ctx, Filter{Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestSQLiteDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in, res := sampleResult(model.FuelGasTank)
	saved, err := s.SaveAssessment(ctx, "doomed", in, res)
	require.NoError(t, err)

	require.NoError(t, s.DeleteAssessment(ctx, saved.ID))

	_, err = s.GetAssessment(ctx, saved.ID)
	assert.Error(t, err)

	err = s.DeleteAssessment(ctx, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
