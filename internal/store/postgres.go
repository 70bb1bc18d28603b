package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// pgPool is the minimal pool surface the store uses, satisfied by both
// pgxpool.Pool and pgxmock.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// newPostgresFromPool wires an existing pool; tests use it with pgxmock.
func newPostgresFromPool(pool pgPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	label      TEXT NOT NULL,
	inputs     JSONB NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
CREATE INDEX IF NOT EXISTS idx_assessments_fuel ON assessments((inputs->>'fuel'));
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, label string, in model.ForensicInputs, res model.OpterraResult) (*model.Assessment, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal inputs")
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, label, inputs, result, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, label, inputsJSON, resultJSON, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert assessment")
	}

	return &model.Assessment{
		ID:        id,
		Label:     label,
		Inputs:    in,
		Result:    res,
		CreatedAt: now,
	}, nil
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, label, inputs, result, created_at FROM assessments WHERE id = $1`,
		id,
	)
	a, err := scanPgAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("assessment not found")
	}
	return a, err
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error) {
	query := `SELECT id, label, inputs, result, created_at FROM assessments WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}

	if filter.Fuel != "" {
		query += ` AND inputs->>'fuel' = ` + arg(string(filter.Fuel))
	}
	if filter.Action != "" {
		query += ` AND result->'verdict'->>'action' = ` + arg(string(filter.Action))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)

	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func (s *PostgresStore) DeleteAssessment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete assessment %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("assessment not found: %s", id)
	}
	return nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func scanPgAssessment(row pgx.Row) (*model.Assessment, error) {
	var a model.Assessment
	var inputsJSON, resultJSON []byte

	if err := row.Scan(&a.ID, &a.Label, &inputsJSON, &resultJSON, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}

	if err := json.Unmarshal(inputsJSON, &a.Inputs); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal inputs")
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal result")
	}
	return &a, nil
}
