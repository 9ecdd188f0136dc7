package app

import (
	"github.com/warzonebot/warzone-core/internal/config"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

// InitLogger creates a new logger instance
func (a *application) InitLogger() *logger.Logger {
	return logger.NewLogger(config.GetEnvironment(), a.config.Log.Level)
}
