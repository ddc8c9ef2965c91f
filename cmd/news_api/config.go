package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/storage/factory"
	"github.com/DjordjeVuckovic/nouvel-ayiti/internal/voting"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/config/env"
	"github.com/DjordjeVuckovic/nouvel-ayiti/pkg/logging"
)

const devSessionSecret = "nouvel-ayiti-local-session-secret"

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AuthConfig struct {
	SessionSecret string
	SecureCookie  bool
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminUsername string
	AdminPassword string
}

type NewsAPIConfig struct {
	StorageConfig    factory.StorageConfig
	LoggingConfig    logging.Config
	AuthConfig       AuthConfig
	ClosedPollPolicy voting.ClosedPollPolicy
	SeedPath         string
}

func (as *AppConfig) Load() (*NewsAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		return nil, err
	}

	logCfg, err := logging.LoadConfig()
	if err != nil {
		return nil, err
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	policy, err := voting.ParseClosedPollPolicy(os.Getenv("CLOSED_POLL_POLICY"))
	if err != nil {
		return nil, err
	}

	authCfg, err := as.loadAuth()
	if err != nil {
		return nil, err
	}

	return &NewsAPIConfig{
		StorageConfig:    *storageCfg,
		LoggingConfig:    logCfg,
		AuthConfig:       authCfg,
		ClosedPollPolicy: policy,
		SeedPath:         os.Getenv("SEED_PATH"),
	}, nil
}

func (as *AppConfig) loadAuth() (AuthConfig, error) {
	cfg := AuthConfig{
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SecureCookie:  as.ENV != "local",
		TokenTTL:      24 * time.Hour,
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.SessionSecret == "" {
		if as.ENV != "local" {
			return cfg, fmt.Errorf("SESSION_SECRET environment variable is not set")
		}
		slog.Warn("SESSION_SECRET is not set, using the local development secret")
		cfg.SessionSecret = devSessionSecret
	}
	cfg.JWTSecret = env.Get("JWT_SECRET", cfg.SessionSecret)

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return cfg, fmt.Errorf("invalid TOKEN_TTL %q", raw)
		}
		cfg.TokenTTL = ttl
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid BCRYPT_COST %q", raw)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}
