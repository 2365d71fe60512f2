package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Initialize configures the process-wide logger. Format is "json" or "text";
// anything else falls back to text.
func Initialize(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the configured logger, initializing with defaults when a
// package logs before main has called Initialize.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// EnterMethod traces entry into a service method at debug level.
func EnterMethod(methodName string, args ...any) {
	Get().Debug("method entered", append([]any{"method", methodName}, args...)...)
}

// ExitMethod traces a successful return.
func ExitMethod(methodName string, args ...any) {
	Get().Debug("method exited", append([]any{"method", methodName}, args...)...)
}

// ExitMethodWithError traces a failed return at error level.
func ExitMethodWithError(methodName string, err error, args ...any) {
	Get().Error("method failed", append([]any{"method", methodName, "error", err}, args...)...)
}
