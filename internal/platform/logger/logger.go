// Package logger provides structured logging for the application using
// Go's standard library log/slog package, with JSON output and
// context-carried loggers.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/taskline/taskline-api/internal/config"
)

// Setup initializes the application's logging system based on the provided
// server configuration. It creates a structured JSON logger with the
// configured log level, sets it as the process default, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", s)
	}
}
