package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, LevelInfo, parseLogLevel("nonsense"))
}

func TestParseLogFormat(t *testing.T) {
	f, err := ParseLogFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseLogFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseLogFormat("xml")
	assert.Error(t, err)
}

func TestNewLoggerWithoutOutputs(t *testing.T) {
	logger, err := NewLogger("info", "", false, FormatText)
	require.NoError(t, err)
	assert.Empty(t, logger.outputs)

	// Nothing to write to, nothing to fail
	logger.Info("dropped")
	assert.NoError(t, logger.Close())
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", "", false, FormatText)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Info("hidden")
	logger.Warnf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
}

func TestLoggerFieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", false, FormatText)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	child := logger.With(Field{Key: "run_id", Value: "abc"})
	child.Debug("chapter", Field{Key: "index", Value: 2})

	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "[DEBUG] chapter index=2 run_id=abc"))
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	output := NewConsoleOutput(&buf, FormatJSON)

	err := output.Write(LogEntry{
		Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "done",
		Fields:    map[string]interface{}{"lines": 3},
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "done", decoded["message"])
	assert.Equal(t, "INFO", decoded["level"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewLogger("info", path, false, FormatText)
	require.NoError(t, err)
	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] written to file")
}

func TestNewLoggerBadFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewLogger("info", filepath.Join(blocker, "app.log"), false, FormatText)
	assert.Error(t, err)
}
