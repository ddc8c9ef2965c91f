package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/factory"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type DataImportConfig struct {
	SeedPath string
	// OnlyIfEmpty skips the import when the store already has content.
	OnlyIfEmpty bool
	BcryptCost  int
	factory.StorageConfig
}

func (as *AppConfig) Load() (*DataImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/data_import/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	seedPath := env.Get("SEED_PATH", "data/seed.yaml")

	onlyIfEmpty := true
	if raw := os.Getenv("SEED_ONLY_IF_EMPTY"); raw != "" {
		onlyIfEmpty, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_ONLY_IF_EMPTY %q: %w", raw, err)
		}
	}

	cost := 0
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", raw)
		}
	}

	return &DataImportConfig{
		SeedPath:      seedPath,
		OnlyIfEmpty:   onlyIfEmpty,
		BcryptCost:    cost,
		StorageConfig: *storageCfg,
	}, nil
}
