// Package logger wraps log/slog with the leveled helpers the commands use.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides structured logging.
type Logger struct {
	internal *slog.Logger
	level    *slog.LevelVar
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(level string) slog.Level {
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

// New creates a text logger writing to w at the named level.
func New(w io.Writer, level string) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{internal: slog.New(handler), level: lvl}
}

// NewStderr is New(os.Stderr, level).
func NewStderr(level string) *Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "error")
}

// SetLevel changes the level of l and every logger derived from it.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Level reports the current level.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		internal: l.internal.With(args...),
		level:    l.level,
	}
}

// Log logs a message with the given level and attributes.
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.internal.Log(ctx, level, msg, args...)
}
