package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[loop]
tick_rate = "20ms"
max_catch_up_ticks = 3

[channels]
capacity = 16

[logging]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Loop.TickRate)
	assert.Equal(t, 3, cfg.Loop.MaxCatchUpTicks)
	assert.Equal(t, 16, cfg.Channels.Capacity)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	assert.Equal(t, "tickforge", cfg.Engine.Name)
	assert.Equal(t, 64, cfg.Debug.HistorySize)
	assert.True(t, cfg.Scripting.Enabled)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`
[loop]
max_catch_up_ticks = 0

[channels]
capacity = -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_catch_up_ticks")
	assert.Contains(t, err.Error(), "capacity")
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`[loop`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nname = \"sandbox\"\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sandbox", cfg.Engine.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}
