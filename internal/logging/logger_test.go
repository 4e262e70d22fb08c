package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablerail/tablerail/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // default
		{"", InfoLevel},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestNewLoggerStdout(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "stdout",
	}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.Equal(t, InfoLevel, logger.level)
	assert.Equal(t, "text", logger.format)
	assert.Equal(t, os.Stdout, logger.output)
	assert.Nil(t, logger.file)
}

func TestNewLoggerFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	cfg := config.LoggingConfig{
		Level:  "debug",
		Format: "json",
		Output: "file",
		File:   logFile,
	}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	defer logger.Close()

	logger.Info("written to file")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewLoggerFileMissingPath(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "file",
	}

	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLoggerInvalidOutput(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:  "info",
		Format: "text",
		Output: "syslog",
	}

	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := &Logger{
		level:  WarnLevel,
		format: "text",
		output: &buf,
		fields: make(map[string]any),
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := &Logger{
		level:  InfoLevel,
		format: "json",
		output: &buf,
		fields: make(map[string]any),
	}

	logger.WithField("table", "students").Info("table loaded")

	var entry Entry

	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "table loaded", entry.Message)
	assert.Equal(t, "students", entry.Fields["table"])
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer

	parent := &Logger{
		level:  InfoLevel,
		format: "text",
		output: &buf,
		fields: make(map[string]any),
	}

	child := parent.WithFields(map[string]any{"table": "bookings", "rows": 3})

	assert.Empty(t, parent.fields)
	assert.Len(t, child.fields, 2)
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer

	logger := &Logger{
		level:  InfoLevel,
		format: "text",
		output: &buf,
		fields: make(map[string]any),
	}

	logger.WithError(errors.New("boom")).Error("load failed")
	assert.Contains(t, buf.String(), "boom")

	// nil error is a no-op
	assert.Equal(t, logger, logger.WithError(nil))
}

func TestTextFormatFields(t *testing.T) {
	var buf bytes.Buffer

	logger := &Logger{
		level:  InfoLevel,
		format: "text",
		output: &buf,
		fields: make(map[string]any),
	}

	logger.WithField("table", "lessons").Warnf("slow load: %dms", 1200)

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "WARN")
	assert.Contains(t, line, "slow load: 1200ms")
	assert.Contains(t, line, "table=lessons")
}

func TestNewFallback(t *testing.T) {
	logger := NewFallback()

	require.NotNil(t, logger)
	assert.Equal(t, InfoLevel, logger.level)
	assert.Equal(t, os.Stderr, logger.output)
}
