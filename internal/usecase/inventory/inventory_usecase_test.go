package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warzonebot/warzone-core/internal/catalog"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/repository/memory"
)

func newTestInventory(store *memory.Store) domain.InventoryUseCase {
	log := logger.NewLogger("test", "debug")
	return NewInventoryUseCase(
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

func TestPurchaseMissile(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 1000, Level: 1, MinerLevel: 1}))

	result, err := uc.Purchase(1, "short-range missile", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(600), result.CoinPaid)
	assert.Equal(t, int64(0), result.GemPaid)
	assert.Equal(t, int64(400), result.NewCoin)
	assert.Equal(t, 3, result.NewAmount)

	qty, err := store.Inventory().GetQuantity(1, domain.ItemKindMissile, "short-range missile")
	require.NoError(t, err)
	assert.Equal(t, 3, qty)
}

func TestPurchaseApocalypseMissileChargesGems(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 25000, Gem: 12, Level: 6, MinerLevel: 1}))

	result, err := uc.Purchase(1, "plasma warhead", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), result.CoinPaid)
	assert.Equal(t, int64(10), result.GemPaid)
	assert.Equal(t, int64(5000), result.NewCoin)
	assert.Equal(t, int64(2), result.NewGem)
}

func TestPurchaseRejectsLowLevel(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 100000, Gem: 100, Level: 2, MinerLevel: 1}))

	_, err := uc.Purchase(1, "F-16 Falcon", 1)
	assertAppErrorCode(t, err, domain.ErrCodeLevelTooLow)
}

func TestPurchaseInsufficientFundsLeavesStateAlone(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 100, Level: 1, MinerLevel: 1}))

	_, err := uc.Purchase(1, "short-range missile", 3)
	assertAppErrorCode(t, err, domain.ErrCodeInsufficientFunds)

	user, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Coin)

	qty, err := store.Inventory().GetQuantity(1, domain.ItemKindMissile, "short-range missile")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
}

func TestPurchaseUnknownItem(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 100, Level: 1, MinerLevel: 1}))

	_, err := uc.Purchase(1, "slingshot", 1)
	assertAppErrorCode(t, err, domain.ErrCodeUnknownItem)

	_, err = uc.Purchase(1, "short-range missile", 0)
	assertAppErrorCode(t, err, domain.ErrCodeInvalidAmount)
}

func TestUpgradeDefenseBuysThenLevels(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 10000, Level: 1, MinerLevel: 1}))

	// first call buys level 1 at the list price
	result, err := uc.UpgradeDefense(1, "missile shield")
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewLevel)
	assert.Equal(t, int64(3000), result.CoinPaid)
	assert.Equal(t, int64(7000), result.NewCoin)

	// second call upgrades to level 2 at upgrade cost x current level
	result, err = uc.UpgradeDefense(1, "missile shield")
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, int64(1500), result.CoinPaid)
	assert.Equal(t, int64(5500), result.NewCoin)

	owned, err := store.Inventory().GetDefense(1, "missile shield")
	require.NoError(t, err)
	require.NotNil(t, owned)
	assert.Equal(t, 2, owned.Level)
}

func TestUpgradeDefenseUnknownName(t *testing.T) {
	store := memory.NewStore()
	uc := newTestInventory(store)
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 10000, Level: 1, MinerLevel: 1}))

	_, err := uc.UpgradeDefense(1, "moat")
	assertAppErrorCode(t, err, domain.ErrCodeUnknownItem)
}
