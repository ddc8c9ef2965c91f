package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/es"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/pg"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

// LoadEnv reads the backend selection. An unset STORAGE_TYPE selects the
// in-memory store.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Info("STORAGE_TYPE not set, using in-memory storage")
		storageType = storage.InMem
	}
	if !slices.Contains(storage.SupportedTypes, storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			storage.SupportedTypes)
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.ES:
		esCfg := &es.ClientConfig{
			Addresses:   splitList(os.Getenv("ES_ADDRESSES")),
			IndexPrefix: os.Getenv("ES_INDEX_PREFIX"),
			Username:    os.Getenv("ES_USERNAME"),
			Password:    os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
		cfg.Es = esCfg

	case storage.PG:
		pgCfg := &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if raw := os.Getenv("PG_MAX_CONNS"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS %q: %w", raw, err)
			}
			pgCfg.MaxConns = int32(n)
		}
		cfg.Pg = pgCfg
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
