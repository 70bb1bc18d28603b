package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

func TestPostgresSaveAssessment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	in, res := sampleResult(model.FuelGasTank)
	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "garage unit", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveAssessment(context.Background(), "garage unit", in, res)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "garage unit", saved.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAssessment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	in, res := sampleResult(model.FuelTanklessGas)
	inputsJSON, err := json.Marshal(in)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(res)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, label, inputs, result, created_at FROM assessments WHERE id = \$1`).
		WithArgs("abc-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "inputs", "result", "created_at"}).
			AddRow("abc-123", "tankless", inputsJSON, resultJSON, created))

	got, err := s.GetAssessment(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "tankless", got.Label)
	assert.Equal(t, model.FuelTanklessGas, got.Inputs.Fuel)
	assert.Equal(t, res.Metrics.FailProb, got.Result.Metrics.FailProb)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAssessmentMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	mock.ExpectQuery(`SELECT id, label, inputs, result, created_at FROM assessments WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "inputs", "result", "created_at"}))

	_, err = s.GetAssessment(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteAssessment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	mock.ExpectExec(`DELETE FROM assessments WHERE id = \$1`).
		WithArgs("abc-123").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.DeleteAssessment(context.Background(), "abc-123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteAssessmentMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	mock.ExpectExec(`DELETE FROM assessments WHERE id = \$1`).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = s.DeleteAssessment(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAssessmentsFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newPostgresFromPool(mock)

	in, res := sampleResult(model.FuelGasTank)
	inputsJSON, _ := json.Marshal(in)
	resultJSON, _ := json.Marshal(res)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, label, inputs, result, created_at FROM assessments WHERE 1=1 AND inputs->>'fuel' = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("GAS_TANK", 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "inputs", "result", "created_at"}).
			AddRow("a1", "one", inputsJSON, resultJSON, created))

	out, err := s.ListAssessments(context.Background(), Filter{Fuel: model.FuelGasTank, Limit: 50})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "one", out[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
