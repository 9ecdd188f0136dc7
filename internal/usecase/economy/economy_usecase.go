package economy

import (
	"context"
	"time"

	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Miner claims are strictly hourly: a claim before a full hour has elapsed
// is rejected rather than rounded, and accrual is capped at a full day of
// unclaimed income.
const (
	minerClaimInterval = time.Hour
	minerBankHours     = 24
	minerUpgradeXP     = 50
)

// EconomyUseCase implements domain.EconomyUseCase
type EconomyUseCase struct {
	userRepo   domain.UserRepository
	outboxRepo domain.OutboxRepository
	txm        domain.TxManager
	lockMgr    *lock.UserLockManager
	catalog    *catalog.Catalog
	logger     *logger.Logger
}

// NewEconomyUseCase creates a new economy usecase
func NewEconomyUseCase(
	userRepo domain.UserRepository,
	outboxRepo domain.OutboxRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	cat *catalog.Catalog,
	logger *logger.Logger,
) domain.EconomyUseCase {
	return &EconomyUseCase{
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		txm:        txm,
		lockMgr:    lockMgr,
		catalog:    cat,
		logger:     logger,
	}
}

func validateAmount(currency domain.Currency, amount int64) error {
	if !currency.IsValid() {
		return domain.NewAppError(domain.ErrCodeInvalidCurrency, "Unknown currency: "+string(currency), 400, nil)
	}
	if amount <= 0 {
		return domain.NewAppError(domain.ErrCodeInvalidAmount, "Amount must be positive", 400, nil)
	}
	return nil
}

// Credit adds amount to the user's balance in the given currency.
func (uc *EconomyUseCase) Credit(userID int64, currency domain.Currency, amount int64) (*domain.User, error) {
	if err := validateAmount(currency, amount); err != nil {
		return nil, err
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var user *domain.User
	err := uc.txm.Run(func(tx *gorm.DB) error {
		var err error
		user, err = uc.getUserForUpdate(tx, userID)
		if err != nil {
			return err
		}
		user.Credit(currency, amount)
		return uc.updateUser(tx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Balance credited",
		zap.Int64("userID", userID),
		zap.String("currency", string(currency)),
		zap.Int64("amount", amount))
	return user, nil
}

// Debit subtracts amount from the user's balance in the given currency.
// The balance never goes negative; a short balance rejects the whole call.
func (uc *EconomyUseCase) Debit(userID int64, currency domain.Currency, amount int64) (*domain.User, error) {
	if err := validateAmount(currency, amount); err != nil {
		return nil, err
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var user *domain.User
	err := uc.txm.Run(func(tx *gorm.DB) error {
		var err error
		user, err = uc.getUserForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if err := user.Debit(currency, amount); err != nil {
			return err
		}
		return uc.updateUser(tx, user)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Balance debited",
		zap.Int64("userID", userID),
		zap.String("currency", string(currency)),
		zap.Int64("amount", amount))
	return user, nil
}

// ClaimMiner pays out accrued miner income. Accrual counts whole elapsed
// hours since the last claim, banks at most a day, and resets the claim
// timestamp to the claim time.
func (uc *EconomyUseCase) ClaimMiner(userID int64, now time.Time) (*domain.MinerClaimResult, error) {
	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var result *domain.MinerClaimResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		user, err := uc.getUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		// Rows created before claim timestamps existed arm on first call.
		if user.LastMinerClaim == nil {
			user.LastMinerClaim = &now
			if err := uc.updateUser(tx, user); err != nil {
				return err
			}
			result = &domain.MinerClaimResult{
				Accrued:    0,
				NewZp:      user.Zp,
				MinerLevel: user.MinerLevel,
				ClaimedAt:  now,
			}
			return nil
		}

		elapsed := now.Sub(*user.LastMinerClaim)
		if elapsed < minerClaimInterval {
			return domain.NewAppError(domain.ErrCodeTooSoon, "Miner income is claimable once per hour", 400, nil)
		}

		hours := int64(elapsed / minerClaimInterval)
		if hours > minerBankHours {
			hours = minerBankHours
		}
		accrued := hours * uc.catalog.MinerRate(user.MinerLevel)

		user.Credit(domain.CurrencyZP, accrued)
		user.LastMinerClaim = &now
		if err := uc.updateUser(tx, user); err != nil {
			return err
		}

		result = &domain.MinerClaimResult{
			Accrued:    accrued,
			NewZp:      user.Zp,
			MinerLevel: user.MinerLevel,
			ClaimedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Miner income claimed",
		zap.Int64("userID", userID),
		zap.Int64("accrued", result.Accrued))
	return result, nil
}

// UpgradeMiner advances the miner one level, paying the ladder's ZP cost
// and granting a small XP reward.
func (uc *EconomyUseCase) UpgradeMiner(userID int64) (*domain.MinerUpgradeResult, error) {
	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var result *domain.MinerUpgradeResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		user, err := uc.getUserForUpdate(tx, userID)
		if err != nil {
			return err
		}

		if user.MinerLevel >= domain.MaxMinerLevel {
			return domain.NewAppError(domain.ErrCodeMaxLevelReached, "Miner is already at the maximum level", 400, nil)
		}

		cost := uc.catalog.MinerUpgradeCost(user.MinerLevel)
		if err := user.Debit(domain.CurrencyZP, cost); err != nil {
			return err
		}

		user.MinerLevel++
		levelsGained := user.AddXP(minerUpgradeXP)
		if err := uc.updateUser(tx, user); err != nil {
			return err
		}

		if levelsGained > 0 {
			event := domain.NewOutboxEvent(domain.EventTypeLevelChanged, domain.JSONB{
				"user_id":   user.ID,
				"new_level": user.Level,
				"source":    "miner_upgrade",
			})
			if err := uc.outboxRepo.WithTransaction(tx).Save(event); err != nil {
				return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save level event", 500, err)
			}
		}

		result = &domain.MinerUpgradeResult{
			NewLevel: user.MinerLevel,
			NewRate:  uc.catalog.MinerRate(user.MinerLevel),
			ZpPaid:   cost,
			NewZp:    user.Zp,
			XPGained: minerUpgradeXP,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Miner upgraded",
		zap.Int64("userID", userID),
		zap.Int("newLevel", result.NewLevel))
	return result, nil
}

func (uc *EconomyUseCase) getUserForUpdate(tx *gorm.DB, userID int64) (*domain.User, error) {
	user, err := uc.userRepo.WithTransaction(tx).GetByIDForUpdate(userID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}
	return user, nil
}

func (uc *EconomyUseCase) updateUser(tx *gorm.DB, user *domain.User) error {
	if err := uc.userRepo.WithTransaction(tx).Update(user); err != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user", 500, err)
	}
	return nil
}
