// Package logging provides the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"notedesk/internal/config"
)

var (
	singleton *slog.Logger
	once      sync.Once
)

// Init initializes the singleton logger from the provided config. It is
// idempotent: the first call wins and later calls return the same instance.
func Init(cfg config.LogConfig) *slog.Logger {
	once.Do(func() {
		singleton = build(cfg, os.Stdout)
	})
	return singleton
}

// L returns the global logger, initializing it with defaults if Init has
// not been called.
func L() *slog.Logger {
	if singleton == nil {
		return Init(config.LogConfig{Level: "info", Format: "json"})
	}
	return singleton
}

func build(cfg config.LogConfig, out io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}
