package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger("debug", WithOutput(buf), WithJSON(true))
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Debug("hello")
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry["msg"])
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger("chatty", WithOutput(buf))
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collect-results.log")
	buf := &bytes.Buffer{}
	log := NewLogger("info", WithOutput(buf), WithFile(path), WithJSON(true))

	log.Info("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestNewRotatingFileDefaults(t *testing.T) {
	w := NewRotatingFile("x.log")
	assert.Equal(t, DefaultMaxBackups, w.MaxBackups)
	assert.Equal(t, DefaultMaxAgeDays, w.MaxAge)
}

func TestIngestLoggerSeasonHarvested(t *testing.T) {
	log, buf := setupTestLogger()
	ingest := NewIngestLogger(log).WithRun("run-1")

	ingest.LogSeasonHarvested("2019-2", 51, 50, 1, 3)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "ingest", entry["component"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "2019-2", entry["season"])
	assert.Equal(t, float64(51), entry["total"])
	assert.Equal(t, float64(3), entry["pages"])
}

func TestIngestLoggerResultRejected(t *testing.T) {
	log, buf := setupTestLogger()
	ingest := NewIngestLogger(log)

	ingest.LogResultRejected(123, 456, map[string]string{"name": "A Driver"}, errors.New("constraint failed"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "constraint failed", entry["error"])
	assert.Equal(t, float64(123), entry["subsession_id"])
	row, ok := entry["row"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "A Driver", row["name"])
}

func TestIngestLoggerSeasonFailed(t *testing.T) {
	log, buf := setupTestLogger()
	NewIngestLogger(log).LogSeasonFailed("2019-3", errors.New("boom"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestIngestLoggerRunCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	NewIngestLogger(log).LogRunCompleted(2, 1, 40, 1500*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(1500), entry["duration_ms"])
	assert.Equal(t, float64(1), entry["failed_seasons"])
}
