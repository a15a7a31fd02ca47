package injector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tickforge/runtime/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	log, err := NewLogger(config.LoggingConfig{Level: "chatty", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestInitializeEngine(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "engine.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[loop]
tick_rate = "5ms"
max_ticks = 3

[input]
bindings = ""

[scripting]
enabled = false

[logging]
level = "error"
`), 0o644))

	e, cleanup, err := InitializeEngine(ConfigPath(cfgPath))
	require.NoError(t, err)
	defer cleanup()
	assert.Len(t, e.Manager.Processors(), 6)
	assert.Nil(t, e.Lua)
	assert.Equal(t, uint64(3), e.Config.Loop.MaxTicks)
}

func TestInitializeEngineMissingConfig(t *testing.T) {
	_, _, err := InitializeEngine(ConfigPath(filepath.Join(t.TempDir(), "nope.toml")))
	assert.Error(t, err)
}
