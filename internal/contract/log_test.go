package contract

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, LogJSON)

	logger.Debug("hidden")
	logger.Info("loaded station", "station", "NYC", "rows", 5088)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "loaded station", record["msg"])
	assert.Equal(t, AppName, record["app"])
	assert.Equal(t, "NYC", record["station"])
	assert.EqualValues(t, 5088, record["rows"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, LogText)

	logger.Info("hidden")
	logger.Warn("skipped row", "line", 12)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipped row")
	assert.Contains(t, out, "line")
	assert.Contains(t, out, AppName)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
