package admin

import (
	"context"

	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminUseCase implements domain.AdminUseCase
type AdminUseCase struct {
	userRepo   domain.UserRepository
	outboxRepo domain.OutboxRepository
	txm        domain.TxManager
	lockMgr    *lock.UserLockManager
	logger     *logger.Logger
}

// NewAdminUseCase creates a new admin usecase
func NewAdminUseCase(
	userRepo domain.UserRepository,
	outboxRepo domain.OutboxRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	logger *logger.Logger,
) domain.AdminUseCase {
	return &AdminUseCase{
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		txm:        txm,
		lockMgr:    lockMgr,
		logger:     logger,
	}
}

// requireAdmin verifies the acting user exists and carries the admin flag.
func (uc *AdminUseCase) requireAdmin(adminID int64) error {
	admin, err := uc.userRepo.GetByID(adminID)
	if err != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get admin from DB", 500, err)
	}
	if admin == nil {
		return domain.NewAppError(domain.ErrCodeUserNotFound, "Admin user not found", 404, nil)
	}
	if !admin.IsAdmin {
		return domain.NewAppError(domain.ErrCodeNotAdmin, "User is not an admin", 403, nil)
	}
	return nil
}

// Adjust applies a signed balance delta to the target. A negative delta
// that would drive the balance below zero rejects the whole adjustment.
func (uc *AdminUseCase) Adjust(adminID, targetID int64, currency domain.Currency, delta int64) (*domain.AdjustResult, error) {
	if err := uc.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if !currency.IsValid() {
		return nil, domain.NewAppError(domain.ErrCodeInvalidCurrency, "Unknown currency: "+string(currency), 400, nil)
	}
	if delta == 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount, "Delta must be non-zero", 400, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), targetID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(targetID)

	var result *domain.AdjustResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		target, err := txUserRepo.GetByIDForUpdate(targetID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get target from DB", 500, err)
		}
		if target == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "Target user not found", 404, nil)
		}

		if delta > 0 {
			target.Credit(currency, delta)
		} else {
			if target.Balance(currency)+delta < 0 {
				return domain.NewAppError(domain.ErrCodeWouldGoNegative, "Adjustment would drive the balance negative", 400, nil)
			}
			target.Credit(currency, delta)
		}

		if err := txUserRepo.Update(target); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update target", 500, err)
		}

		result = &domain.AdjustResult{
			TargetID:   targetID,
			Currency:   currency,
			Delta:      delta,
			NewBalance: target.Balance(currency),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Balance adjusted",
		zap.Int64("adminID", adminID),
		zap.Int64("targetID", targetID),
		zap.String("currency", string(currency)),
		zap.Int64("delta", delta))
	return result, nil
}

// SetLevel pins the target's level, leaving accumulated XP in place.
func (uc *AdminUseCase) SetLevel(adminID, targetID int64, level int) (*domain.User, error) {
	if err := uc.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if level < 1 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidRange, "Level must be at least 1", 400, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), targetID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(targetID)

	var target *domain.User
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		var err error
		target, err = txUserRepo.GetByIDForUpdate(targetID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get target from DB", 500, err)
		}
		if target == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "Target user not found", 404, nil)
		}

		target.Level = level
		if err := txUserRepo.Update(target); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update target", 500, err)
		}

		event := domain.NewOutboxEvent(domain.EventTypeLevelChanged, domain.JSONB{
			"user_id":   targetID,
			"new_level": level,
			"source":    "admin",
		})
		if err := uc.outboxRepo.WithTransaction(tx).Save(event); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save level event", 500, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Level set",
		zap.Int64("adminID", adminID),
		zap.Int64("targetID", targetID),
		zap.Int("level", level))
	return target, nil
}

// BroadcastGift credits every user best-effort. A failure for one user is
// recorded in the report and the batch moves on, so a gift run is never
// all-or-nothing.
func (uc *AdminUseCase) BroadcastGift(adminID int64, currency domain.Currency, amount int64) (*domain.GiftReport, error) {
	if err := uc.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if !currency.IsValid() {
		return nil, domain.NewAppError(domain.ErrCodeInvalidCurrency, "Unknown currency: "+string(currency), 400, nil)
	}
	if amount <= 0 {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount, "Amount must be positive", 400, nil)
	}

	ids, err := uc.userRepo.ListIDs()
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to list users", 500, err)
	}

	report := &domain.GiftReport{Currency: currency, Amount: amount}
	for _, id := range ids {
		if err := uc.giftOne(id, currency, amount); err != nil {
			report.Failed++
			report.Outcomes = append(report.Outcomes, domain.GiftOutcome{UserID: id, OK: false, Error: err.Error()})
			uc.logger.Warn("Gift failed for user",
				zap.Int64("userID", id),
				zap.Error(err))
			continue
		}
		report.Succeeded++
		report.Outcomes = append(report.Outcomes, domain.GiftOutcome{UserID: id, OK: true})
	}

	uc.logger.Info("Gift broadcast finished",
		zap.Int64("adminID", adminID),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (uc *AdminUseCase) giftOne(userID int64, currency domain.Currency, amount int64) error {
	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	return uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		user, err := txUserRepo.GetByIDForUpdate(userID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
		}
		if user == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
		}

		user.Credit(currency, amount)
		if err := txUserRepo.Update(user); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user", 500, err)
		}

		event := domain.NewOutboxEvent(domain.EventTypeGiftGranted, domain.JSONB{
			"user_id":  userID,
			"currency": string(currency),
			"amount":   amount,
		})
		if err := uc.outboxRepo.WithTransaction(tx).Save(event); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save gift event", 500, err)
		}
		return nil
	})
}

// Stats returns aggregate counters across all users.
func (uc *AdminUseCase) Stats(adminID int64) (*domain.GlobalStats, error) {
	if err := uc.requireAdmin(adminID); err != nil {
		return nil, err
	}

	stats, err := uc.userRepo.AggregateStats()
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to aggregate stats", 500, err)
	}
	return stats, nil
}
