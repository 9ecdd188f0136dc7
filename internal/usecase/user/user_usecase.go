package user

import (
	"context"
	"strings"
	"time"

	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Starter package granted on registration.
const (
	starterCoin     = 1000
	starterGem      = 10
	starterZp       = 500
	starterMissile  = "short-range missile"
	starterMissiles = 5
)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	userRepo domain.UserRepository
	invRepo  domain.InventoryRepository
	txm      domain.TxManager
	lockMgr  *lock.UserLockManager
	catalog  *catalog.Catalog
	logger   *logger.Logger
}

// NewUserUseCase creates a new user usecase
func NewUserUseCase(
	userRepo domain.UserRepository,
	invRepo domain.InventoryRepository,
	txm domain.TxManager,
	lockMgr *lock.UserLockManager,
	cat *catalog.Catalog,
	logger *logger.Logger,
) domain.UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		invRepo:  invRepo,
		txm:      txm,
		lockMgr:  lockMgr,
		catalog:  cat,
		logger:   logger,
	}
}

// Register creates the user with the starter package. Registering an
// existing ID is idempotent and returns the stored user untouched, so the
// front end can send it on every first contact.
func (uc *UserUseCase) Register(userID int64, username, fullName string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.NewAppError(domain.ErrCodeRequiredField, "Username is required", 400, nil)
	}

	if err := uc.lockMgr.Lock(context.Background(), userID); err != nil {
		return nil, domain.NewAppError(domain.ErrCodeLockTimeout, "Could not acquire user lock", 503, err)
	}
	defer uc.lockMgr.Unlock(userID)

	var user *domain.User
	err := uc.txm.Run(func(tx *gorm.DB) error {
		txUserRepo := uc.userRepo.WithTransaction(tx)
		existing, err := txUserRepo.GetByID(userID)
		if err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
		}
		if existing != nil {
			user = existing
			return nil
		}

		now := time.Now()
		user = &domain.User{
			ID:             userID,
			Username:       username,
			FullName:       fullName,
			Coin:           starterCoin,
			Gem:            starterGem,
			Zp:             starterZp,
			Level:          1,
			MinerLevel:     1,
			LastMinerClaim: &now,
		}
		if err := txUserRepo.Create(user); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to create user", 500, err)
		}

		if err := uc.invRepo.WithTransaction(tx).Add(userID, domain.ItemKindMissile, starterMissile, starterMissiles); err != nil {
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to grant starter missiles", 500, err)
		}

		uc.logger.Info("User registered",
			zap.Int64("userID", userID),
			zap.String("username", username))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile assembles the read model for the front end: balances, a
// preview of claimable miner income, the inventory and the defense posture.
func (uc *UserUseCase) GetProfile(userID int64, now time.Time) (*domain.Profile, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user from DB", 500, err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}

	inventory, err := uc.invRepo.List(userID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to list inventory", 500, err)
	}
	defenses, err := uc.invRepo.ListDefenses(userID)
	if err != nil {
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to list defenses", 500, err)
	}

	return &domain.Profile{
		User:         user,
		Power:        uc.catalog.Power(inventory),
		AccruedZp:    uc.accruedPreview(user, now),
		MinerRate:    uc.catalog.MinerRate(user.MinerLevel),
		Inventory:    inventory,
		Defenses:     defenses,
		DefenseBonus: uc.catalog.DefenseBonus(defenses),
	}, nil
}

// accruedPreview mirrors the claim accrual without mutating anything:
// whole hours since the last claim, banked at most a day.
func (uc *UserUseCase) accruedPreview(user *domain.User, now time.Time) int64 {
	if user.LastMinerClaim == nil {
		return 0
	}
	hours := int64(now.Sub(*user.LastMinerClaim) / time.Hour)
	if hours <= 0 {
		return 0
	}
	if hours > 24 {
		hours = 24
	}
	return hours * uc.catalog.MinerRate(user.MinerLevel)
}
