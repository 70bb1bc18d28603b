package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/opterra-labs/opterra-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	inputs     TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, label string, in model.ForensicInputs, res model.OpterraResult) (*model.Assessment, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal inputs")
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, label, inputs, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, label, string(inputsJSON), string(resultJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert assessment")
	}

	return &model.Assessment{
		ID:        id,
		Label:     label,
		Inputs:    in,
		Result:    res,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, inputs, result, created_at FROM assessments WHERE id = ?`,
		id,
	)
	return scanAssessment(row)
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error) {
	query := `SELECT id, label, inputs, result, created_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Fuel != "" {
		query += ` AND json_extract(inputs, '$.fuel') = ?`
		args = append(args, string(filter.Fuel))
	}
	if filter.Action != "" {
		query += ` AND json_extract(result, '$.verdict.action') = ?`
		args = append(args, string(filter.Action))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

func (s *SQLiteStore) DeleteAssessment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete assessment %s", id)
	}
	return checkRowsAffected(res, "assessment", id)
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (*model.Assessment, error) {
	var a model.Assessment
	var inputsJSON, resultJSON string

	err := row.Scan(&a.ID, &a.Label, &inputsJSON, &resultJSON, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("assessment not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}

	if err := json.Unmarshal([]byte(inputsJSON), &a.Inputs); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal inputs")
	}
	if err := json.Unmarshal([]byte(resultJSON), &a.Result); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal result")
	}
	return &a, nil
}
