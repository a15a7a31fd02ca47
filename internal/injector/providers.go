package injector

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tickforge/runtime/internal/config"
	"github.com/tickforge/runtime/internal/engine"
	"github.com/tickforge/runtime/internal/system"
)

// ConfigPath is the TOML file the engine configuration is read from.
type ConfigPath string

// EngineSet provides a fully assembled *engine.Engine from a ConfigPath.
var EngineSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideRenderer,
	ProvideEngine,
)

func ProvideConfig(path ConfigPath) (*config.Config, error) {
	return config.Load(string(path))
}

// ProvideLogger builds the zap logger described by the logging section. The
// cleanup flushes buffered entries.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// NewLogger maps the logging config onto a zap production (json) or
// development (console) config.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// ProvideRenderer logs every 60th frame.
func ProvideRenderer(log *zap.Logger) system.Renderer {
	return system.NewLogRenderer(log.Named("render"), 60)
}

// ProvideEngine builds and starts the engine. The cleanup runs processor
// cleanup and closes the Lua VM.
func ProvideEngine(cfg *config.Config, log *zap.Logger, r system.Renderer) (*engine.Engine, func(), error) {
	e, err := engine.New(cfg, log, r)
	if err != nil {
		return nil, nil, err
	}
	if err := e.Start(); err != nil {
		_ = e.Close()
		return nil, nil, err
	}
	return e, func() {
		if err := e.Close(); err != nil {
			log.Warn("engine cleanup", zap.Error(err))
		}
	}, nil
}
