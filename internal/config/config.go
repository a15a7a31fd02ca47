package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Loop      LoopConfig      `toml:"loop"`
	Channels  ChannelsConfig  `toml:"channels"`
	Debug     DebugConfig     `toml:"debug"`
	Input     InputConfig     `toml:"input"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
}

type EngineConfig struct {
	Name string `toml:"name"`
}

type LoopConfig struct {
	TickRate        time.Duration `toml:"tick_rate"`
	MaxCatchUpTicks int           `toml:"max_catch_up_ticks"` // lag compensation limit
	MaxTicks        uint64        `toml:"max_ticks"`          // 0 = run until signalled
}

type ChannelsConfig struct {
	Capacity int `toml:"capacity"` // standby queue bound per channel, 0 = unbounded
}

type DebugConfig struct {
	HistorySize     int    `toml:"history_size"`
	IdentifierNames string `toml:"identifier_names"` // optional YAML name table
}

type InputConfig struct {
	Bindings string `toml:"bindings"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Loop.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate))
	}
	if c.Loop.MaxCatchUpTicks < 1 {
		errs = append(errs, fmt.Errorf("loop.max_catch_up_ticks must be at least 1, got %d", c.Loop.MaxCatchUpTicks))
	}
	if c.Channels.Capacity < 0 {
		errs = append(errs, fmt.Errorf("channels.capacity must not be negative, got %d", c.Channels.Capacity))
	}
	if c.Debug.HistorySize < 1 {
		errs = append(errs, fmt.Errorf("debug.history_size must be at least 1, got %d", c.Debug.HistorySize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Name: "tickforge",
		},
		Loop: LoopConfig{
			TickRate:        16 * time.Millisecond,
			MaxCatchUpTicks: 5,
		},
		Channels: ChannelsConfig{
			Capacity: 4096,
		},
		Debug: DebugConfig{
			HistorySize: 64,
		},
		Input: InputConfig{
			Bindings: "data/yaml/bindings.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
