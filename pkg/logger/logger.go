package logger

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG_LEVEL = int(zapcore.DebugLevel)
	INFO_LEVEL  = int(zapcore.InfoLevel)
	WARN_LEVEL  = int(zapcore.WarnLevel)
	ERROR_LEVEL = int(zapcore.ErrorLevel)
)

type Configuration struct {
	Level      int    `validate:"min=-1,max=5"`
	TimeFormat string `validate:"required"`
}

func (c Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid logger configuration: %w", err)
	}
	return nil
}

// New builds a json zap logger writing to stderr.
func New(cfg Configuration) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.Level(cfg.Level))
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	zapCfg.EncoderConfig.TimeKey = "time"
	zapCfg.Sampling = nil

	return zapCfg.Build()
}

// NewDefault is an info level logger with RFC3339Nano timestamps.
func NewDefault() *zap.Logger {
	log, err := New(Configuration{Level: INFO_LEVEL, TimeFormat: time.RFC3339Nano})
	if err != nil {
		return zap.NewNop()
	}
	return log
}
