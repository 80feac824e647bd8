package slogger

import (
	"context"
	"strings"
)

// DefaultLogger is used by adapters that were not given a logger.
var DefaultLogger Logger = NewDevNullLogger()

// Logger defines the interface for logging within llmkit. It supports
// structured key-value pairs and is shaped after slog so adapters for other
// logging libraries stay thin.
type Logger interface {
	// Debug logs a message at debug level with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warn level with optional key-value pairs
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level with optional key-value pairs
	Error(msg string, keysAndValues ...any)

	// With returns a new Logger instance with the given key-value pairs added to the context
	With(keysAndValues ...any) Logger
}

type contextKey string

const (
	loggerKey contextKey = "llmkit.logger"
)

// WithLogger returns a new context with the given logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the logger stored in ctx, or fallback when there is none.
// A nil fallback means DefaultLogger.
func Ctx(ctx context.Context, fallback Logger) Logger {
	if fallback == nil {
		fallback = DefaultLogger
	}
	if ctx == nil {
		return fallback
	}
	logger, ok := ctx.Value(loggerKey).(Logger)
	if !ok || logger == nil {
		return fallback
	}
	return logger
}

// LevelFromString converts a string to a LogLevel.
func LevelFromString(level string) LogLevel {
	value := strings.ToLower(strings.TrimSpace(level))
	switch value {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return DefaultLogLevel
	}
}
