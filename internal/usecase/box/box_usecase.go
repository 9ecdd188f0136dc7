package box

import (
	"context"
	"time"

	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BoxUseCase implements domain.BoxUseCase
type BoxUseCase struct {
	userRepo   domain.UserRepository
	boxRepo    domain.BoxRepository
	outboxRepo domain.OutboxRepository
	txm        domain.TxManager
	lockMgr    *lock.UserLockManager
	catalog    *catalog.Catalog
	roller     rng.Roller
	logger     *logger.Logger
}

// NewBoxUseCase creates a new box usecase
func NewBoxUseCase(
	userRepo domain.UserRepository,
	boxRepo domain.BoxRepository,
	outboxRepo domain.OutboxRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	cat *catalog.Catalog,
	roller rng.Roller,
	logger *logger.Logger,
) domain.BoxUseCase {
	return &BoxUseCase{
		userRepo:   userRepo,
		boxRepo:    boxRepo,
		outboxRepo: outboxRepo,
		txm:        txm,
		lockMgr:    lockMgr,
		catalog:    cat,
		roller:     roller,
		logger:     logger,
	}
}

// OpenBox pays the box price, rolls the reward and credits it. The free box
// is limited to one open per calendar day; chance-gated boxes that miss
// their rare draw still pay the fallback range, so a paid box never yields
// nothing.
func (uc *BoxUseCase) OpenBox(userID int64, boxKind string, now time.Time) (*domain.BoxOpenResult, error) {
	box, ok := uc.catalog.Boxes[boxKind]
	if !ok {
		return nil, domain.NewAppError(domain.ErrCodeUnknownBox, "Unknown box: "+boxKind, 404, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var result *domain.BoxOpenResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		user, err := txUserRepo.GetByIDForUpdate(userID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
		}
		if user == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
		}

		txBoxRepo := uc.boxRepo.WithTransaction(tx)
		if box.FreeDaily {
			// one per UTC calendar day, not a rolling 24h window
			day := now.UTC()
			dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
			opened, err := txBoxRepo.CountSince(userID, box.Kind, dayStart)
			if err != nil {
				return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to count box opens", 500, err)
			}
			if opened >= 1 {
				return domain.NewAppError(domain.ErrCodeDailyLimitReached, "Free box already opened today", 400, nil)
			}
		}

		if box.PriceCoin > 0 {
			if err := user.Debit(domain.CurrencyCoin, box.PriceCoin); err != nil {
				return err
			}
		}
		if box.PriceGem > 0 {
			if err := user.Debit(domain.CurrencyGem, box.PriceGem); err != nil {
				return err
			}
		}

		reward, rareHit := uc.rollReward(box)
		reward.Apply(user)

		if err := txUserRepo.Update(user); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user", 500, err)
		}

		record := &domain.BoxOpenRecord{
			UserID:       userID,
			BoxKind:      box.Kind,
			RewardKind:   reward.Kind,
			RewardAmount: reward.Coin + reward.Gem + reward.Zp,
			CreatedAt:    now,
		}
		if err := txBoxRepo.Create(record); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to journal box open", 500, err)
		}

		event := domain.NewOutboxEvent(domain.EventTypeBoxOpened, domain.JSONB{
			"user_id":  userID,
			"box_kind": box.Kind,
			"kind":     string(reward.Kind),
			"coin":     reward.Coin,
			"gem":      reward.Gem,
			"zp":       reward.Zp,
			"rare_hit": rareHit,
		})
		if err := uc.outboxRepo.WithTransaction(tx).Save(event); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save box event", 500, err)
		}

		result = &domain.BoxOpenResult{
			BoxKind:  box.Kind,
			Reward:   reward,
			CoinPaid: box.PriceCoin,
			GemPaid:  box.PriceGem,
			RareHit:  rareHit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Box opened",
		zap.Int64("userID", userID),
		zap.String("boxKind", result.BoxKind),
		zap.Bool("rareHit", result.RareHit))
	return result, nil
}

// rollReward draws the payout for a box. Chance-gated boxes roll the gate
// first and fall through to the fallback range on a miss.
func (uc *BoxUseCase) rollReward(box catalog.Box) (domain.Reward, bool) {
	if box.Chance <= 0 {
		return uc.uniformReward(box.RewardKind, box.Min, box.Max), false
	}

	if uc.roller.Float64() < box.Chance {
		if box.RareBundle != nil {
			return *box.RareBundle, true
		}
		return uc.uniformReward(box.RewardKind, box.Min, box.Max), true
	}

	return uc.uniformReward(box.FallbackKind, box.FallbackMin, box.FallbackMax), false
}

func (uc *BoxUseCase) uniformReward(kind domain.RewardKind, min, max int64) domain.Reward {
	amount := min
	if max > min {
		amount += int64(uc.roller.Intn(int(max - min + 1)))
	}

	reward := domain.Reward{Kind: kind}
	switch kind {
	case domain.RewardCoin:
		reward.Coin = amount
	case domain.RewardGem:
		reward.Gem = amount
	case domain.RewardZp:
		reward.Zp = amount
	}
	return reward
}
