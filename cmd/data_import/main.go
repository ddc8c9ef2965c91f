package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/auth"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/seed"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/factory"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/logging"
)

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCfg, err := logging.LoadConfig()
	if err != nil {
		slog.Error("failed to load logging configuration", "error", err)
		os.Exit(1)
	}
	logFile := logging.Setup(logCfg)
	defer logFile.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("failed to import fixtures", "error", err)
		cancel()
		logFile.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *DataImportConfig) error {
	fixtures, err := seed.LoadFile(cfg.SeedPath)
	if err != nil {
		return err
	}

	slog.Info("Importing fixtures", "path", cfg.SeedPath, "storageType", cfg.StorageConfig.Type)

	store, err := factory.NewStore(ctx, cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer store.Close()

	importer := seed.NewImporter(store, auth.NewHasher(cfg.BcryptCost))
	if cfg.OnlyIfEmpty {
		_, err = importer.ImportIfEmpty(ctx, fixtures)
	} else {
		_, err = importer.Import(ctx, fixtures)
	}
	return err
}
