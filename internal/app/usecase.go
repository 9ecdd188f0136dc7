package app

import (
	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
	"github.com/warzonebot/warzone-core/internal/usecase/admin"
	"github.com/warzonebot/warzone-core/internal/usecase/box"
	"github.com/warzonebot/warzone-core/internal/usecase/combat"
	"github.com/warzonebot/warzone-core/internal/usecase/economy"
	"github.com/warzonebot/warzone-core/internal/usecase/inventory"
	"github.com/warzonebot/warzone-core/internal/usecase/user"
)

func (a *application) InitUserUseCase(
	ur domain.UserRepository,
	ir domain.InventoryRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	cat *catalog.Catalog,
	log *logger.Logger,
) domain.UserUseCase {
	return user.NewUserUseCase(ur, ir, txm, lm, cat, log)
}

func (a *application) InitEconomyUseCase(
	ur domain.UserRepository,
	or domain.OutboxRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	cat *catalog.Catalog,
	log *logger.Logger,
) domain.EconomyUseCase {
	return economy.NewEconomyUseCase(ur, or, txm, lm, cat, log)
}

func (a *application) InitInventoryUseCase(
	ur domain.UserRepository,
	ir domain.InventoryRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	cat *catalog.Catalog,
	log *logger.Logger,
) domain.InventoryUseCase {
	return inventory.NewInventoryUseCase(ur, ir, txm, lm, cat, log)
}

func (a *application) InitCombatUseCase(
	ur domain.UserRepository,
	ir domain.InventoryRepository,
	ar domain.AttackRepository,
	or domain.OutboxRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	cat *catalog.Catalog,
	roller rng.Roller,
	log *logger.Logger,
) domain.CombatUseCase {
	return combat.NewCombatUseCase(ur, ir, ar, or, txm, lm, cat, roller, log)
}

func (a *application) InitBoxUseCase(
	ur domain.UserRepository,
	br domain.BoxRepository,
	or domain.OutboxRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	cat *catalog.Catalog,
	roller rng.Roller,
	log *logger.Logger,
) domain.BoxUseCase {
	return box.NewBoxUseCase(ur, br, or, txm, lm, cat, roller, log)
}

func (a *application) InitAdminUseCase(
	ur domain.UserRepository,
	or domain.OutboxRepository,
	txm domain.TxManager,
	lm *lock.UserLockManager,
	log *logger.Logger,
) domain.AdminUseCase {
	return admin.NewAdminUseCase(ur, or, txm, lm, log)
}
