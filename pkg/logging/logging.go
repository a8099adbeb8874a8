package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は環境に応じたzapロガーを返す。
// グローバルには置かず、呼び出し側で注入して使う。
func New(env string) (*zap.Logger, error) {
	if env == "prod" || env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
