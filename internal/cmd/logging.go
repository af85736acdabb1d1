package cmd

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pthm/lineclass/internal/version"
)

// setupLogger returns a text logger on w tagged with a fresh run id
func setupLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel == slog.LevelDebug,
	})

	return slog.New(handler).With(
		"run_id", uuid.NewString(),
		"version", version.Short(),
	)
}
