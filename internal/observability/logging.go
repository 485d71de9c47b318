// Package observability sets up structured logging and carries per-run
// logging context (run id, input document, watch trigger) through context.Context.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/threadtable/internal/config"
	"git.home.luguber.info/inful/threadtable/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RunID   string
	Input   string
	Trigger string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// NewRunID returns a fresh identifier for one transformation run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithInput adds the input document path to the context.
func WithInput(ctx context.Context, input string) context.Context {
	lc := extractLogContext(ctx)
	lc.Input = input
	return context.WithValue(ctx, logContextKey, lc)
}

// WithTrigger records what started a regeneration in watch mode.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	lc := extractLogContext(ctx)
	lc.Trigger = trigger
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func getLogAttrs(ctx context.Context) []any {
	lc := extractLogContext(ctx)
	var attrs []any
	if lc.RunID != "" {
		attrs = append(attrs, logfields.RunID(lc.RunID))
	}
	if lc.Input != "" {
		attrs = append(attrs, logfields.Input(lc.Input))
	}
	if lc.Trigger != "" {
		attrs = append(attrs, logfields.Trigger(lc.Trigger))
	}
	return attrs
}

// Logger returns the default logger enriched with the context's fields.
func Logger(ctx context.Context) *slog.Logger {
	attrs := getLogAttrs(ctx)
	if len(attrs) == 0 {
		return slog.Default()
	}
	return slog.Default().With(attrs...)
}

// NewLogger builds a slog.Logger for the given level and format.
func NewLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: SlogLevel(level)}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs a logger built by NewLogger as the process default.
func Setup(level config.LogLevel, format config.LogFormat) *slog.Logger {
	logger := NewLogger(os.Stderr, level, format)
	slog.SetDefault(logger)
	return logger
}

// SlogLevel maps a configured level onto slog.
func SlogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
