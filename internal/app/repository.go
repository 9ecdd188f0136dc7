package app

import (
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func (a *application) InitRepository(db *gorm.DB) (
	domain.UserRepository,
	domain.InventoryRepository,
	domain.AttackRepository,
	domain.BoxRepository,
	domain.OutboxRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewAttackRepository(db),
		repository.NewBoxRepository(db),
		repository.NewOutboxRepository(db)
}
