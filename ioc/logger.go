package ioc

import (
	"go.uber.org/zap"

	"nomassess/internal/app"
	"nomassess/internal/logging"
)

// InitLogger 构建全局 logger。
func InitLogger(cfg app.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level)
}
