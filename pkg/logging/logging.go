// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/lumberjack"
)

type Config struct {
	Level     slog.Level
	JSON      bool
	File      string
	MaxSizeMB int
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Level:     slog.LevelInfo,
		JSON:      strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		File:      os.Getenv("LOG_FILE"),
		MaxSizeMB: 10,
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.Level.UnmarshalText([]byte(raw)); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	if raw := os.Getenv("LOG_MAX_SIZE_MB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid LOG_MAX_SIZE_MB %q", raw)
		}
		cfg.MaxSizeMB = n
	}

	return cfg, nil
}

// Setup installs the default logger. The returned closer flushes the log
// file, when one is configured.
func Setup(cfg Config) io.Closer {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	slog.SetDefault(slog.New(newHandler(out, cfg)))
	return closer
}

func newHandler(out io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.NewJSONHandler(out, opts)
	}
	return slog.NewTextHandler(out, opts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
