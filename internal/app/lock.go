package app

import (
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

func (a *application) InitUserLockManager(log *logger.Logger) *lock.UserLockManager {
	return lock.NewUserLockManager(log)
}
