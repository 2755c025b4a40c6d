// Package logging defines the structured-logging interface used across the
// project together with its slog and logrus backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "users loaded", "count", n, "request_id", id)
type Logger interface {
	// Debug logs diagnostic details, e.g. every remote call.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for the log_format setting.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogrus = "logrus"
)

// New builds a Logger writing to w. format selects the backend (see the
// Format constants) and level is one of debug, info, warn, error.
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText, FormatJSON:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		opts := &slog.HandlerOptions{Level: lvl}
		if strings.EqualFold(format, FormatJSON) {
			return FromSlog(slog.New(slog.NewJSONHandler(w, opts))), nil
		}
		return FromSlog(slog.New(slog.NewTextHandler(w, opts))), nil

	case FormatLogrus:
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(lvl)
		l.SetFormatter(&logrus.JSONFormatter{})
		return NewLogrusLogger(l), nil

	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() Logger {
	return FromSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// slogLogger routes every level through slog.Logger.Log so the context
// reaches the handler.
type slogLogger struct {
	base *slog.Logger
}

var _ Logger = slogLogger{}

// FromSlog wraps l as a Logger.
func FromSlog(l *slog.Logger) Logger {
	return slogLogger{base: l}
}

func (s slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.base.Log(ctx, slog.LevelDebug, msg, args...)
}

func (s slogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.base.Log(ctx, slog.LevelInfo, msg, args...)
}

func (s slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.base.Log(ctx, slog.LevelWarn, msg, args...)
}

func (s slogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.base.Log(ctx, slog.LevelError, msg, args...)
}

func (s slogLogger) With(args ...any) Logger {
	return slogLogger{base: s.base.With(args...)}
}
