package combat

import (
	"context"

	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CombatUseCase implements domain.CombatUseCase
type CombatUseCase struct {
	userRepo   domain.UserRepository
	invRepo    domain.InventoryRepository
	attackRepo domain.AttackRepository
	outboxRepo domain.OutboxRepository
	txm        domain.TxManager
	lockMgr    *lock.UserLockManager
	catalog    *catalog.Catalog
	roller     rng.Roller
	logger     *logger.Logger
}

// NewCombatUseCase creates a new combat usecase
func NewCombatUseCase(
	userRepo domain.UserRepository,
	invRepo domain.InventoryRepository,
	attackRepo domain.AttackRepository,
	outboxRepo domain.OutboxRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	cat *catalog.Catalog,
	roller rng.Roller,
	logger *logger.Logger,
) domain.CombatUseCase {
	return &CombatUseCase{
		userRepo:   userRepo,
		invRepo:    invRepo,
		attackRepo: attackRepo,
		outboxRepo: outboxRepo,
		txm:        txm,
		lockMgr:    lockMgr,
		catalog:    cat,
		roller:     roller,
		logger:     logger,
	}
}

// Attack resolves one attack end to end: both users are locked in a fixed
// order, the combo's items and gems are consumed, damage and loot transfer
// atomically, and the attack is journaled. A rejected attack leaves both
// users untouched.
func (uc *CombatUseCase) Attack(attackerID, targetID int64, comboName string) (*domain.AttackResult, error) {
	if attackerID == targetID {
		return nil, domain.NewAppError(domain.ErrCodeSelfTargetNotAllowed, "Cannot attack yourself", 400, nil)
	}

	combo, ok := uc.catalog.Combos[comboName]
	if !ok {
		return nil, domain.NewAppError(domain.ErrCodeUnknownCombo, "Unknown combo: "+comboName, 404, nil)
	}

	if err := uc.lockMgr.LockPair(context.Background(), attackerID, targetID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not lock both users", 503, err)
	}
	defer uc.lockMgr.UnlockPair(attackerID, targetID)

	var result *domain.AttackResult
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		txInvRepo := uc.invRepo.WithTransaction(tx)

		attacker, err := txUserRepo.GetByIDForUpdate(attackerID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get attacker from DB", 500, err)
		}
		if attacker == nil {
			return domain.NewAppError(domain.ErrCodeUserNotFound, "Attacker not found", 404, nil)
		}

		target, err := txUserRepo.GetByIDForUpdate(targetID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get target from DB", 500, err)
		}
		if target == nil {
			return domain.NewAppError(domain.ErrCodeTargetUnavailable, "Target not found", 404, nil)
		}

		if err := uc.checkRequirements(txInvRepo, attacker, combo); err != nil {
			return err
		}
		if err := uc.consumeRequirements(txInvRepo, attacker, combo); err != nil {
			return err
		}

		base := int64(baseDamageMin + uc.roller.Intn(baseDamageSpread))
		mitigation, err := uc.targetMitigation(txInvRepo, targetID)
		if err != nil {
			return err
		}
		damage := computeDamage(base, combo.Multiplier, attacker.Level, target.Level, mitigation)

		coinLooted := min64(target.Coin, lootCap(damage))
		zpLooted := min64(target.Zp, damage)
		if coinLooted > 0 {
			target.Coin -= coinLooted
			attacker.Coin += coinLooted
		}
		if zpLooted > 0 {
			target.Zp -= zpLooted
			attacker.Zp += zpLooted
		}

		xpGained := xpForDamage(damage)
		levelsGained := attacker.AddXP(xpGained)
		attacker.TotalDamage += damage
		if damage > 0 {
			attacker.AttacksWon++
		}

		if err := txUserRepo.Update(attacker); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update attacker", 500, err)
		}
		if err := txUserRepo.Update(target); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update target", 500, err)
		}

		record := &domain.AttackRecord{
			AttackerID: attackerID,
			TargetID:   targetID,
			Damage:     damage,
			CoinLooted: coinLooted,
			ZpLooted:   zpLooted,
			ComboUsed:  combo.Name,
		}
		if err := uc.attackRepo.WithTransaction(tx).Create(record); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to journal attack", 500, err)
		}

		txOutboxRepo := uc.outboxRepo.WithTransaction(tx)
		event := domain.NewOutboxEvent(domain.EventTypeAttackResolved, domain.JSONB{
			"attacker_id": attackerID,
			"target_id":   targetID,
			"combo":       combo.Name,
			"damage":      damage,
			"coin_looted": coinLooted,
			"zp_looted":   zpLooted,
		})
		if err := txOutboxRepo.Save(event); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save attack event", 500, err)
		}
		if levelsGained > 0 {
			levelEvent := domain.NewOutboxEvent(domain.EventTypeLevelChanged, domain.JSONB{
				"user_id":   attackerID,
				"new_level": attacker.Level,
				"source":    "attack",
			})
			if err := txOutboxRepo.Save(levelEvent); err != nil {
				return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to save level event", 500, err)
			}
		}

		result = &domain.AttackResult{
			AttackerID:   attackerID,
			TargetID:     targetID,
			ComboUsed:    combo.Name,
			BaseDamage:   base,
			FinalDamage:  damage,
			CoinLooted:   coinLooted,
			ZpLooted:     zpLooted,
			XPGained:     xpGained,
			LevelsGained: levelsGained,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Attack resolved",
		zap.Int64("attackerID", attackerID),
		zap.Int64("targetID", targetID),
		zap.String("combo", result.ComboUsed),
		zap.Int64("damage", result.FinalDamage))
	return result, nil
}

// checkRequirements verifies every combo prerequisite before anything is
// consumed, so a rejection cannot leave a partially spent combo.
func (uc *CombatUseCase) checkRequirements(invRepo domain.InventoryRepository, attacker *domain.User, combo catalog.Combo) error {
	for name, required := range combo.RequiredItems {
		kind, ok := uc.catalog.ItemKind(name)
		if !ok {
			return domain.NewAppError(domain.ErrCodeUnknownItem, "Combo references unknown item: "+name, 500, nil)
		}
		owned, err := invRepo.GetQuantity(attacker.ID, kind, name)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to read inventory", 500, err)
		}
		if owned < required {
			return domain.NewAppError(domain.ErrCodeMissingRequirements, "Not enough "+name+" for combo", 400, nil)
		}
	}
	if combo.RequiredGems > 0 && attacker.Gem < combo.RequiredGems {
		return domain.NewAppError(domain.ErrCodeMissingRequirements, "Not enough gems for combo", 400, nil)
	}
	return nil
}

func (uc *CombatUseCase) consumeRequirements(invRepo domain.InventoryRepository, attacker *domain.User, combo catalog.Combo) error {
	for name, required := range combo.RequiredItems {
		kind, _ := uc.catalog.ItemKind(name)
		if err := invRepo.Remove(attacker.ID, kind, name, required); err != nil {
			return err
		}
	}
	if combo.RequiredGems > 0 {
		if err := attacker.Debit(domain.CurrencyGem, combo.RequiredGems); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CombatUseCase) targetMitigation(invRepo domain.InventoryRepository, targetID int64) (float64, error) {
	defenses, err := invRepo.ListDefenses(targetID)
	if err != nil {
		return 0, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to read defenses", 500, err)
	}
	return uc.catalog.DefenseBonus(defenses), nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
