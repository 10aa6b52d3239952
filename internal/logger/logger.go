package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// serviceName is attached to every entry and used as the logger name.
const serviceName = "iskwet"

// presets holds the base zap configuration per environment.
var presets = map[string]func() zap.Config{
	"prod":   productionConfig,
	"local":  developmentConfig,
	"dev":    developmentConfig,
	"docker": developmentConfig,
}

// productionConfig writes JSON with ISO8601 timestamps, tagged with the service name.
func productionConfig() zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]any{"service": serviceName}
	return cfg
}

// developmentConfig writes colored console lines.
func developmentConfig() zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// newConfig resolves the zap configuration for env, with level (if non-empty) overriding the preset.
func newConfig(env, level string) (zap.Config, error) {
	preset, ok := presets[env]
	if !ok {
		return zap.Config{}, fmt.Errorf("unknown environment %q for logger", env)
	}
	cfg := preset()

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}
	return cfg, nil
}

// NewLogger creates the service logger for env: JSON for prod, console for local, dev and docker.
// level is one of debug, info, warn, error; empty keeps the environment default.
func NewLogger(env, level string) (*zap.Logger, error) {
	cfg, err := newConfig(env, level)
	if err != nil {
		return nil, err
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Named(serviceName), nil
}
