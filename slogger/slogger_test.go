package slogger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{"debug level", "debug", LevelDebug},
		{"info level", "info", LevelInfo},
		{"warn level", "warn", LevelWarn},
		{"warning alias", "warning", LevelWarn},
		{"error level", "error", LevelError},
		{"uppercase", "DEBUG", LevelDebug},
		{"mixed case", "WaRn", LevelWarn},
		{"padded", "  info ", LevelInfo},
		{"invalid level", "invalid", DefaultLogLevel},
		{"empty string", "", DefaultLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestDevNullLogger(t *testing.T) {
	logger := NewDevNullLogger()

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	withLogger := logger.With("context", "value")
	require.NotNil(t, withLogger)
	require.IsType(t, &DevNullLogger{}, withLogger)
}

func TestSloggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: LevelDebug, Writer: &buf, JSON: true})

	logger.With("provider", "openai").Warn("retrying llm call", "attempt", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "retrying llm call", record["msg"])
	require.Equal(t, "WARN", record["level"])
	require.Equal(t, "openai", record["provider"])
	require.Equal(t, float64(2), record["attempt"])
	require.Contains(t, record["caller"], "slogger/slogger_test.go")
}

func TestSloggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: LevelWarn, Writer: &buf})

	logger.Debug("hidden")
	logger.Info("hidden too")
	require.Empty(t, buf.String())

	logger.Error("visible", "key", "value")
	require.True(t, strings.Contains(buf.String(), "visible"))
	require.True(t, strings.Contains(buf.String(), "key=value"))
}

func TestSloggerDefaultsToStderr(t *testing.T) {
	logger := New(LevelDebug)
	require.NotNil(t, logger)
	require.IsType(t, &Slogger{}, logger.With("a", 1))
}

//nolint:staticcheck // SA1012: Intentionally passing nil context for testing
func TestContextFunctions(t *testing.T) {
	logger := NewDevNullLogger()

	ctx := WithLogger(nil, logger)
	require.NotNil(t, ctx)
	require.Equal(t, logger, Ctx(ctx, nil))

	fallback := New(LevelError)
	require.Equal(t, fallback, Ctx(nil, fallback))
	require.Equal(t, fallback, Ctx(context.Background(), fallback))
	require.Equal(t, DefaultLogger, Ctx(context.Background(), nil))
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, DefaultLogger)
	require.IsType(t, &DevNullLogger{}, DefaultLogger)
}
