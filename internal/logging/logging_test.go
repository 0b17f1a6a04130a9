package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersUseGlobalLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { SetLogger(prev) })

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	Named("estimator").Debug("service type changed", zap.String("service", "mixing"))
	With(zap.String("request_id", "abc")).Info("request")
	Warn("degraded lookup")

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "estimator", entries[0].LoggerName)
	assert.Equal(t, "abc", entries[1].ContextMap()["request_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestInitializeWritesJSONToFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { SetLogger(prev) })

	path := filepath.Join(t.TempDir(), "quote.log")
	require.NoError(t, Initialize(Config{Level: "warn", Format: "json", Output: path}))

	Info("dropped")
	Warn("kept", zap.Int("songs", 8))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"kept"`)
	assert.Contains(t, lines[0], `"songs":8`)
}

func TestInitializeFallsBackToInfo(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { SetLogger(prev) })

	require.NoError(t, Initialize(Config{Level: "loud", Output: "stderr"}))
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}
