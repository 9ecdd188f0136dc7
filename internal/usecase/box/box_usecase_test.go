package box

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
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
)

type fixedRoller struct {
	intn    int
	float64 float64
}

func (r fixedRoller) Intn(n int) int   { return r.intn }
func (r fixedRoller) Float64() float64 { return r.float64 }

func newTestBox(store *memory.Store, roller rng.Roller) domain.BoxUseCase {
	log := logger.NewLogger("test", "debug")
	return NewBoxUseCase(
		store.Users(),
		store.Boxes(),
		store.Outbox(),
		store,
		lock.NewUserLockManager(log),
		catalog.Default(),
		roller,
		log,
	)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestOpenFreeBoxOncePerDay(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Level: 1, MinerLevel: 1}))

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	result, err := uc.OpenBox(1, "free_box", now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.CoinPaid)
	assert.Equal(t, int64(100), result.Reward.Coin, "min 50 plus pinned roll of 50")

	// second open the same day is rejected
	_, err = uc.OpenBox(1, "free_box", now.Add(2*time.Hour))
	assertAppErrorCode(t, err, domain.ErrCodeDailyLimitReached)

	// the next calendar day resets the limit
	_, err = uc.OpenBox(1, "free_box", now.Add(24*time.Hour))
	require.NoError(t, err)
}

func TestOpenFreeBoxDayBoundaryIsUTC(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Level: 1, MinerLevel: 1}))

	east := time.FixedZone("UTC+10", 10*60*60)
	// 23:00 local is 13:00 UTC
	first := time.Date(2025, 6, 1, 23, 0, 0, 0, east)
	_, err := uc.OpenBox(1, "free_box", first)
	require.NoError(t, err)

	// next local morning is still the same UTC day
	_, err = uc.OpenBox(1, "free_box", time.Date(2025, 6, 2, 8, 0, 0, 0, east))
	assertAppErrorCode(t, err, domain.ErrCodeDailyLimitReached)

	// past UTC midnight the limit resets
	_, err = uc.OpenBox(1, "free_box", time.Date(2025, 6, 2, 11, 0, 0, 0, east))
	require.NoError(t, err)
}

func TestOpenPaidBoxChargesPrice(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 0})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 1200, Level: 1, MinerLevel: 1}))

	result, err := uc.OpenBox(1, "zona_box", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.CoinPaid)
	assert.Equal(t, domain.RewardZp, result.Reward.Kind)
	assert.Equal(t, int64(50), result.Reward.Zp)

	user, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(200), user.Coin)
	assert.Equal(t, int64(50), user.Zp)
}

func TestOpenBoxInsufficientFunds(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 0})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Coin: 100, Level: 1, MinerLevel: 1}))

	_, err := uc.OpenBox(1, "zona_box", time.Now())
	assertAppErrorCode(t, err, domain.ErrCodeInsufficientFunds)

	user, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Coin)
}

func TestOpenPremiumBoxRareHit(t *testing.T) {
	store := memory.NewStore()
	// gate roll 0.1 < 0.35 hits; amount roll 9 -> 1 + 9 = 10 gems
	uc := newTestBox(store, fixedRoller{intn: 9, float64: 0.1})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Gem: 15, Level: 1, MinerLevel: 1}))

	result, err := uc.OpenBox(1, "premium_box", time.Now())
	require.NoError(t, err)
	assert.True(t, result.RareHit)
	assert.Equal(t, int64(10), result.GemPaid)
	assert.Equal(t, int64(10), result.Reward.Gem)

	user, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), user.Gem, "paid 10, won 10")
}

func TestOpenPremiumBoxMissStillPays(t *testing.T) {
	store := memory.NewStore()
	// gate roll 0.9 misses; fallback coin 500 + 100
	uc := newTestBox(store, fixedRoller{intn: 100, float64: 0.9})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Gem: 10, Level: 1, MinerLevel: 1}))

	result, err := uc.OpenBox(1, "premium_box", time.Now())
	require.NoError(t, err)
	assert.False(t, result.RareHit)
	assert.Equal(t, domain.RewardCoin, result.Reward.Kind)
	assert.Equal(t, int64(600), result.Reward.Coin)
}

func TestOpenLegendaryBoxBundle(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 0, float64: 0.01})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Gem: 50, Level: 1, MinerLevel: 1}))

	result, err := uc.OpenBox(1, "legendary_box", time.Now())
	require.NoError(t, err)
	assert.True(t, result.RareHit)
	assert.Equal(t, domain.RewardBundle, result.Reward.Kind)
	assert.Equal(t, int64(50000), result.Reward.Coin)
	assert.Equal(t, int64(20000), result.Reward.Zp)

	user, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), user.Coin)
	assert.Equal(t, int64(20000), user.Zp)
	assert.Equal(t, int64(0), user.Gem)
}

func TestOpenBoxUnknownKind(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Level: 1, MinerLevel: 1}))

	_, err := uc.OpenBox(1, "mystery_box", time.Now())
	assertAppErrorCode(t, err, domain.ErrCodeUnknownBox)
}

func TestOpenBoxWritesAuditAndEvent(t *testing.T) {
	store := memory.NewStore()
	uc := newTestBox(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "alpha", Level: 1, MinerLevel: 1}))

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err := uc.OpenBox(1, "free_box", now)
	require.NoError(t, err)

	count, err := store.Boxes().CountSince(1, "free_box", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events, err := store.Outbox().GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeBoxOpened, events[0].Type)
}
