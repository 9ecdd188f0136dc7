package inventory

import (
	"context"

	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryUseCase implements domain.InventoryUseCase
type InventoryUseCase struct {
	userRepo domain.UserRepository
	invRepo  domain.InventoryRepository
	txm      domain.TxManager
	lockMgr  *lock.UserLockManager
	catalog  *catalog.Catalog
	logger   *logger.Logger
}

// NewInventoryUseCase creates a new inventory usecase
func NewInventoryUseCase(
	userRepo domain.UserRepository,
	invRepo domain.InventoryRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	cat *catalog.Catalog,
	logger *logger.Logger,
) domain.InventoryUseCase {
	return &InventoryUseCase{
		userRepo: userRepo,
		invRepo:  invRepo,
		txm:      txm,
		lockMgr:  lockMgr,
		catalog:  cat,
		logger:   logger,
	}
}

// Purchase buys quantity units of a shop item. Apocalypse-tier missiles
// charge coin and gems together; either balance falling short rejects the
// whole purchase.
func (uc *InventoryUseCase) Purchase(userID int64, itemName string, quantity int) (*domain.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount, "Quantity must be positive", 400, nil)
	}

	item, ok := uc.catalog.Item(itemName)
	if !ok {
		return nil, domain.NewAppError(domain.ErrCodeUnknownItem, "Unknown item: "+itemName, 404, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	coinCost := item.Price * int64(quantity)
	gemCost := item.GemCost * int64(quantity)

	var result *domain.PurchaseResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		user, err := txUserRepo.GetByIDForUpdate(userID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
		}
		if user == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
		}

		if user.Level < item.MinLevel {
			return domain.NewAppError(domain.ErrCodeLevelTooLow, "Item requires a higher level", 400, nil)
		}

		if err := user.Debit(domain.CurrencyCoin, coinCost); err != nil {
			return err
		}
		if gemCost > 0 {
			if err := user.Debit(domain.CurrencyGem, gemCost); err != nil {
				return err
			}
		}

		if err := txUserRepo.Update(user); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user", 500, err)
		}

		txInvRepo := uc.invRepo.WithTransaction(tx)
		if err := txInvRepo.Add(userID, item.Kind, item.Name, quantity); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to add inventory", 500, err)
		}

		newAmount, err := txInvRepo.GetQuantity(userID, item.Kind, item.Name)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to read inventory", 500, err)
		}

		result = &domain.PurchaseResult{
			ItemName:  item.Name,
			Quantity:  quantity,
			CoinPaid:  coinCost,
			GemPaid:   gemCost,
			NewCoin:   user.Coin,
			NewGem:    user.Gem,
			NewAmount: newAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Item purchased",
		zap.Int64("userID", userID),
		zap.String("item", item.Name),
		zap.Int("quantity", quantity))
	return result, nil
}

// UpgradeDefense buys the named defense at level one, or raises an owned
// one by a level. Upgrading costs the catalog's upgrade price times the
// current level.
func (uc *InventoryUseCase) UpgradeDefense(userID int64, defenseName string) (*domain.DefenseUpgradeResult, error) {
	spec, ok := uc.catalog.Defenses[defenseName]
	if !ok {
		return nil, domain.NewAppError(domain.ErrCodeUnknownItem, "Unknown defense: "+defenseName, 404, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var result *domain.DefenseUpgradeResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		user, err := txUserRepo.GetByIDForUpdate(userID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
		}
		if user == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
		}

		txInvRepo := uc.invRepo.WithTransaction(tx)
		owned, err := txInvRepo.GetDefense(userID, spec.Name)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to read defense", 500, err)
		}

		cost := spec.Price
		newLevel := 1
		if owned != nil {
			cost = spec.UpgradeCost * int64(owned.Level)
			newLevel = owned.Level + 1
		}

		if err := user.Debit(domain.CurrencyCoin, cost); err != nil {
			return err
		}
		if err := txUserRepo.Update(user); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user", 500, err)
		}

		if err := txInvRepo.UpsertDefense(&domain.DefenseStructure{
			UserID: userID,
			Name:   spec.Name,
			Level:  newLevel,
		}); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save defense", 500, err)
		}

		result = &domain.DefenseUpgradeResult{
			Name:     spec.Name,
			NewLevel: newLevel,
			CoinPaid: cost,
			NewCoin:  user.Coin,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Defense upgraded",
		zap.Int64("userID", userID),
		zap.String("defense", result.Name),
		zap.Int("newLevel", result.NewLevel))
	return result, nil
}
