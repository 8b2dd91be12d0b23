package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csheth/mailtriage/internal/config"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Info("cycle settled", zap.Uint64("cycle", 3))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "cycle settled", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "mailtriage", entry["logger"])
	assert.Equal(t, float64(3), entry["cycle"])
}

func TestNewWithWriterConsoleAndInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.LogConfig{Level: "chatty", Format: "console"}, &buf)

	log.Debug("hidden")
	log.Info("visible")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mailtriage.log")
	log, closeLog, err := New(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Debug("analyze request failed")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "analyze request failed")
}

func TestNewDisabled(t *testing.T) {
	log, closeLog, err := New(config.LogConfig{Disabled: true})
	require.NoError(t, err)
	log.Info("dropped")
	assert.NoError(t, closeLog())
}
