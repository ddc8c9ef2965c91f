// Package main Nouvel Ayiti API
// @title Nouvel Ayiti API
// @version 1.0
// @description Multilingual news service: articles, polls, videos and categories in Haitian Creole, French and English
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@nouvelayiti.ht
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/nouvel-ayiti/docs"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/router"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/api/server"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/auth"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/seed"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/factory"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/voting"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/logging"
	"github.com/labstack/echo/v4"
)

const startupTimeout = 30 * time.Second

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	logFile := logging.Setup(cfg.LoggingConfig)
	defer logFile.Close()

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, sCfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *NewsAPIConfig, sCfg *server.Config) error {
	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := factory.NewStore(startCtx, cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	hasher := auth.NewHasher(cfg.AuthConfig.BcryptCost)
	accounts := auth.NewService(store, hasher)
	if err := accounts.EnsureAdmin(startCtx, cfg.AuthConfig.AdminUsername, cfg.AuthConfig.AdminPassword); err != nil {
		return err
	}

	if cfg.SeedPath != "" {
		fixtures, err := seed.LoadFile(cfg.SeedPath)
		if err != nil {
			return err
		}
		if _, err := seed.NewImporter(store, hasher).ImportIfEmpty(startCtx, fixtures); err != nil {
			return err
		}
	}

	s := server.New(sCfg, store).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Nouvel Ayiti API is running")
	})

	router.Bind(s.Echo, router.Deps{
		Store:  store,
		Engine: voting.NewEngine(store, cfg.ClosedPollPolicy),
		Auth:   accounts,
		Sessions: auth.NewSessionProvider(auth.SessionConfig{
			Secret: cfg.AuthConfig.SessionSecret,
			Secure: cfg.AuthConfig.SecureCookie,
		}, store),
		Tokens: auth.NewTokenProvider(cfg.AuthConfig.JWTSecret, cfg.AuthConfig.TokenTTL, store),
	})
	slog.Info("Routes bound",
		"storage", cfg.StorageConfig.Type,
		"closedPollPolicy", cfg.ClosedPollPolicy,
	)

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	return s.Start()
}
