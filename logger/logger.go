package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the application logger. Production mode emits JSON, everything
// else uses the human-readable development encoder.
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}
