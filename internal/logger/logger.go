// Package logger provides a thin wrapper around slog for structured logging.
//
// Diagnostics go to stderr so they never interleave with report output or
// the dashboard's alternate screen.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide logger instance.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: levelFromEnv(),
}))

// levelFromEnv reads CODEXMETER_LOG_LEVEL (debug, info, warn, error).
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("CODEXMETER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
