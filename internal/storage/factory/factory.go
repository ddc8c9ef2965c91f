package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/es"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/pg"
)

// NewStore creates the storage.Store selected by cfg.Type.
func NewStore(ctx context.Context, cfg StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewStorer(pool)

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}

		return es.NewStorer(ctx, *cfg.Es)

	case storage.InMem:
		return in_mem.NewInMemStorer(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
