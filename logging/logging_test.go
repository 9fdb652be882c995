package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFiltersByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", JSON: true, Writer: buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("reconstructed", zap.Int("k", 3), Redacted("secret"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "reconstructed", record["msg"])
	assert.Equal(t, float64(3), record["k"])
	assert.Equal(t, Placeholder(), record["secret"])
}

func TestNewConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Writer: buf})
	require.NoError(t, err)
	logger.Debug("selected shares")
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "selected shares")

	_, err = New(Config{Level: "nope"})
	assert.Error(t, err)
}
