package app

import (
	"github.com/warzonebot/warzone-core/internal/http/middleware"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log)
}
