package admin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warzonebot/warzone-core/internal/domain"
	"github.com/warzonebot/warzone-core/internal/infrastructure/lock"
	"github.com/warzonebot/warzone-core/internal/infrastructure/logger"
	"github.com/warzonebot/warzone-core/internal/infrastructure/repository/memory"
)

func newTestAdmin(store *memory.Store) domain.AdminUseCase {
	log := logger.NewLogger("test", "debug")
	return NewAdminUseCase(
		store.Users(),
		store.Outbox(),
		store,
		lock.NewUserLockManager(log),
		log,
	)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func seedAdminAndUsers(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "admin", IsAdmin: true, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 2, Username: "player", Coin: 500, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 3, Username: "other", Coin: 100, Level: 1, MinerLevel: 1}))
}

func TestAdjustCreditAndDebit(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	result, err := uc.Adjust(1, 2, domain.CurrencyCoin, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), result.NewBalance)

	result, err = uc.Adjust(1, 2, domain.CurrencyCoin, -700)
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.NewBalance)
}

func TestAdjustRejectsNegativeBalance(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	_, err := uc.Adjust(1, 2, domain.CurrencyCoin, -600)
	assertAppErrorCode(t, err, domain.ErrCodeWouldGoNegative)

	user, err := store.Users().GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(500), user.Coin)
}

func TestAdjustRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	_, err := uc.Adjust(2, 3, domain.CurrencyCoin, 100)
	assertAppErrorCode(t, err, domain.ErrCodeNotAdmin)

	_, err = uc.Adjust(99, 3, domain.CurrencyCoin, 100)
	assertAppErrorCode(t, err, domain.ErrCodeUserNotFound)

	_, err = uc.Adjust(1, 3, domain.CurrencyCoin, 0)
	assertAppErrorCode(t, err, domain.ErrCodeInvalidAmount)

	_, err = uc.Adjust(1, 3, domain.Currency("shells"), 10)
	assertAppErrorCode(t, err, domain.ErrCodeInvalidCurrency)
}

func TestSetLevel(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	user, err := uc.SetLevel(1, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, user.Level)

	_, err = uc.SetLevel(1, 2, 0)
	assertAppErrorCode(t, err, domain.ErrCodeInvalidRange)

	events, err := store.Outbox().GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeLevelChanged, events[0].Type)
}

func TestBroadcastGift(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	report, err := uc.BroadcastGift(1, domain.CurrencyGem, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, report.Outcomes, 3)

	for _, id := range []int64{1, 2, 3} {
		user, err := store.Users().GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.Gem)
	}

	events, err := store.Outbox().GetPendingEvents(10)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestStats(t *testing.T) {
	store := memory.NewStore()
	uc := newTestAdmin(store)
	seedAdminAndUsers(t, store)

	stats, err := uc.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(600), stats.TotalCoins)

	_, err = uc.Stats(2)
	assertAppErrorCode(t, err, domain.ErrCodeNotAdmin)
}
