package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeWritesJSONToFile(t *testing.T) {
	t.Cleanup(InitializeDefault)

	path := filepath.Join(t.TempDir(), "quote.log")
	err := Initialize(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	Debug("table loaded", zap.String("version", "2025.1"))
	Sync()

	assert.FileExists(t, path)
}

func TestInitializeFallsBackToInfoOnBadLevel(t *testing.T) {
	t.Cleanup(InitializeDefault)

	require.NoError(t, Initialize(Config{Level: "loud", Format: "console", Output: "stderr"}))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
}

func TestSetLoggerRoutesPackageHelpers(t *testing.T) {
	t.Cleanup(InitializeDefault)

	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))

	Info("quote computed", zap.Int64("monthly_fee", 275))
	Named("cache").Warn("redis unavailable")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "quote computed", logs.All()[0].Message)
	assert.Equal(t, "cache", logs.All()[1].LoggerName)
}

func TestSetLoggerNilInstallsNop(t *testing.T) {
	t.Cleanup(InitializeDefault)

	SetLogger(nil)
	assert.NotPanics(t, func() { Error("ignored") })
}
