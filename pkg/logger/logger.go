package logger

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. production zap logger with ISO8601 timestamps. the level is read from viper LOG_LEVEL (default info).
func New() (*zap.Logger, error) {
	viper.SetDefault("LOG_LEVEL", "info")

	level, err := zapcore.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		level = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = level > zapcore.DebugLevel

	return config.Build()
}
