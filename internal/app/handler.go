package app

import (
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/http/handlers"
	"github.com/warzonebot/warzone-core/internal/infrastructure/auth"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
)

func (a *application) InitUserHandler(uc domain.UserUseCase, jwt auth.JWTService, log *logger.Logger) *handlers.UserHandler {
	return handlers.NewUserHandler(uc, jwt, log)
}

func (a *application) InitEconomyHandler(uc domain.EconomyUseCase, log *logger.Logger) *handlers.EconomyHandler {
	return handlers.NewEconomyHandler(uc, log)
}

func (a *application) InitShopHandler(uc domain.InventoryUseCase, log *logger.Logger) *handlers.ShopHandler {
	return handlers.NewShopHandler(uc, log)
}

func (a *application) InitCombatHandler(uc domain.CombatUseCase, log *logger.Logger) *handlers.CombatHandler {
	return handlers.NewCombatHandler(uc, log)
}

func (a *application) InitBoxHandler(uc domain.BoxUseCase, log *logger.Logger) *handlers.BoxHandler {
	return handlers.NewBoxHandler(uc, log)
}

func (a *application) InitAdminHandler(uc domain.AdminUseCase, log *logger.Logger) *handlers.AdminHandler {
	return handlers.NewAdminHandler(uc, log)
}
