package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/carousel/internal/config"
)

// Logger wraps slog.Logger with carousel defaults.
//
// It satisfies slider.Logger, so it can be handed straight to the engine.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to output with the configured level and format.
func New(cfg config.LogConfig, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "carousel"),
		slog.Int("pid", os.Getpid()),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Open creates a logger appending to cfg.File, creating its directory. The
// returned closer releases the file.
func Open(cfg config.LogConfig) (*Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return nil, nil, fmt.Errorf("open log: file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(cfg, file), file, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// With returns a new Logger with additional default attributes.
//
// Example:
//
//	uiLogger := logger.With("component", "ui")
//	uiLogger.Info("deck loaded") // Includes component=ui
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Component is shorthand for With("component", name).
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// ForMount tags records with a fresh instance id so log lines from successive
// mounts of a reloaded deck can be told apart.
func (l *Logger) ForMount() (*Logger, string) {
	id := uuid.NewString()
	return l.With("instance", id), id
}

// parseLevel converts a string log level to slog.Level.
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
