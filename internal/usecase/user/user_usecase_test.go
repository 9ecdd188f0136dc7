package user

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/repository/memory"
)

func newTestUser(store *memory.Store) domain.UserUseCase {
	log := logger.NewLogger("test", "debug")
	return NewUserUseCase(
		store.Users(),
		store.Inventory(),
		store,
		lock.NewUserLockManager(log),
		catalog.Default(),
		log,
	)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestRegisterGrantsStarterPackage(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUser(store)

	user, err := uc.Register(42, "newbie", "New Recruit")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), user.Coin)
	assert.Equal(t, int64(10), user.Gem)
	assert.Equal(t, int64(500), user.Zp)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 1, user.MinerLevel)
	require.NotNil(t, user.LastMinerClaim, "miner arms at registration")

	qty, err := store.Inventory().GetQuantity(42, domain.ItemKindMissile, "short-range missile")
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

func TestRegisterIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUser(store)

	first, err := uc.Register(42, "newbie", "New Recruit")
	require.NoError(t, err)

	// spend some coin, then re-register
	first.Coin = 300
	require.NoError(t, store.Users().Update(first))

	again, err := uc.Register(42, "newbie", "New Recruit")
	require.NoError(t, err)
	assert.Equal(t, int64(300), again.Coin, "re-registration must not regrant the starter package")

	qty, err := store.Inventory().GetQuantity(42, domain.ItemKindMissile, "short-range missile")
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

func TestRegisterRequiresUsername(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUser(store)

	_, err := uc.Register(42, "  ", "Anonymous")
	assertAppErrorCode(t, err, domain.ErrCodeRequiredField)
}

func TestGetProfile(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUser(store)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lastClaim := now.Add(-3 * time.Hour)
	require.NoError(t, store.Users().Create(&domain.User{
		ID: 1, Username: "alpha", Coin: 100, Level: 2, MinerLevel: 2,
		LastMinerClaim: &lastClaim,
	}))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 4))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindFighter, "F-16 Falcon", 2))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindDrone, "MQ-9 Reaper", 1))
	require.NoError(t, store.Inventory().UpsertDefense(&domain.DefenseStructure{UserID: 1, Name: "missile shield", Level: 2}))

	profile, err := uc.GetProfile(1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(100), profile.User.Coin)
	assert.Equal(t, int64(3*200), profile.AccruedZp, "3 whole hours at level 2 rate")
	assert.Equal(t, int64(200), profile.MinerRate)
	require.Len(t, profile.Inventory, 3)
	assert.Equal(t, catalog.BasePower+2*80+100, int(profile.Power), "two F-16s and a Reaper on top of the base")
	require.Len(t, profile.Defenses, 1)
	assert.InDelta(t, 0.30, profile.DefenseBonus, 1e-9)
}

func TestGetProfileUnknownUser(t *testing.T) {
	store := memory.NewStore()
	uc := newTestUser(store)

	_, err := uc.GetProfile(99, time.Now())
	assertAppErrorCode(t, err, domain.ErrCodeUserNotFound)
}
