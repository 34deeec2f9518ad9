package shell

import (
	"context"
	"log/slog"
	"os"
)

// SlogLogger adapts a *slog.Logger to both the Logger and ContextualLogger
// ports, so one logger instance can serve the store engines, the handlers,
// and the HTTP layer.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger adapter from the provided slog.Handler.
func NewSlogLogger(handler slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(handler)}
}

// NewJSONSlogLogger creates a logger adapter writing JSON lines to stderr
// at the given level.
func NewJSONSlogLogger(level slog.Level) *SlogLogger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return &SlogLogger{logger: slog.New(handler)}
}

// NewTextSlogLogger creates a logger adapter writing human-readable lines to
// stderr at the given level.
func NewTextSlogLogger(level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	return &SlogLogger{logger: slog.New(handler)}
}

// Unwrap returns the underlying *slog.Logger.
func (l *SlogLogger) Unwrap() *slog.Logger {
	return l.logger
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// DebugContext logs a debug message with context.
func (l *SlogLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// InfoContext logs an info message with context.
func (l *SlogLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// WarnContext logs a warning message with context.
func (l *SlogLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// ErrorContext logs an error message with context.
func (l *SlogLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// Ensure SlogLogger implements both logging ports.
var (
	_ Logger           = (*SlogLogger)(nil)
	_ ContextualLogger = (*SlogLogger)(nil)
)
