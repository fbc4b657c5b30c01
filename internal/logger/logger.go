package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/abojja9/sleep-better-ai/internal/config"
)

// Logger wraps slog.Logger with component context helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger from the log section of the config.
func New(cfg config.LogConfig) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a logger writing to the given writer. Used by tests
// to keep output quiet or capture it.
func NewWithOutput(cfg config.LogConfig, w io.Writer) *Logger {
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
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithComponent returns a logger carrying a component attribute.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}
