// Package store persists assessments so field results can be revisited,
// compared, and served over the API.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/opterra-labs/opterra-cli/internal/config"
	"github.com/opterra-labs/opterra-cli/internal/model"
)

// Filter specifies criteria for listing saved assessments.
type Filter struct {
	Fuel   model.FuelType      `json:"fuel,omitempty"`
	Action model.VerdictAction `json:"action,omitempty"`
	Limit  int                 `json:"limit,omitempty"`
	Offset int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessments.
type Store interface {
	SaveAssessment(ctx context.Context, label string, in model.ForensicInputs, res model.OpterraResult) (*model.Assessment, error)
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error)
	DeleteAssessment(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a store from configuration. SQLite is the default and
// needs no external service; Postgres is for shared deployments.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
