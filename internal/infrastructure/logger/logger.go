package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Provider-failure warns are rare and each one matters when debugging a
	// flaky AI backend; production sampling would drop them.
	cfg.Sampling = nil
	cfg.InitialFields = map[string]interface{}{"service": "brewline"}

	return cfg.Build()
}
