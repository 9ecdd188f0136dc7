package combat

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
	"github.com/warzonebot/warzone-core/internal/infrastructure/rng"
)

// fixedRoller pins every draw so damage is deterministic.
type fixedRoller struct {
	intn    int
	float64 float64
}

func (r fixedRoller) Intn(n int) int   { return r.intn }
func (r fixedRoller) Float64() float64 { return r.float64 }

func newTestCombat(store *memory.Store, roller rng.Roller) domain.CombatUseCase {
	log := logger.NewLogger("test", "debug")
	return NewCombatUseCase(
		store.Users(),
		store.Inventory(),
		store.Attacks(),
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

func seedCombatants(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "attacker", Coin: 1000, Gem: 10, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 2, Username: "target", Coin: 1000, Zp: 1000, Level: 1, MinerLevel: 1}))
}

func TestAttackSingleStrike(t *testing.T) {
	store := memory.NewStore()
	// base roll 50 -> base damage 100, no modifiers apply
	uc := newTestCombat(store, fixedRoller{intn: 50})
	seedCombatants(t, store)
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 2))

	result, err := uc.Attack(1, 2, "single strike")
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.BaseDamage)
	assert.Equal(t, int64(100), result.FinalDamage)
	assert.Equal(t, int64(200), result.CoinLooted)
	assert.Equal(t, int64(100), result.ZpLooted, "zp loot capped at the damage, not the coin loot factor")
	assert.Equal(t, int64(10), result.XPGained)
	assert.Equal(t, 0, result.LevelsGained)

	// missile consumed
	qty, err := store.Inventory().GetQuantity(1, domain.ItemKindMissile, "short-range missile")
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	// loot moved between the two users
	attacker, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), attacker.Coin)
	assert.Equal(t, int64(100), attacker.Zp)
	assert.Equal(t, int64(100), attacker.TotalDamage)
	assert.Equal(t, int64(1), attacker.AttacksWon)

	target, err := store.Users().GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(800), target.Coin)
	assert.Equal(t, int64(900), target.Zp)

	// journaled and published
	records, err := store.Attacks().ListByAttacker(1, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(100), records[0].Damage)

	events, err := store.Outbox().GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeAttackResolved, events[0].Type)
}

func TestAttackLevelAdvantageAndMitigation(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "attacker", Gem: 10, Level: 3, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 2, Username: "target", Coin: 10000, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 1))
	require.NoError(t, store.Inventory().UpsertDefense(&domain.DefenseStructure{UserID: 2, Name: "cyber firewall", Level: 1}))

	result, err := uc.Attack(1, 2, "single strike")
	require.NoError(t, err)
	// base 100 x 1.0 combo x 1.2 level advantage x 0.8 after 20% mitigation
	assert.Equal(t, int64(96), result.FinalDamage)
}

func TestAttackFractionalMitigationRoundsDown(t *testing.T) {
	store := memory.NewStore()
	// base roll 5 -> base damage 55; 10% mitigation leaves 49.5
	uc := newTestCombat(store, fixedRoller{intn: 5})
	seedCombatants(t, store)
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 1))
	require.NoError(t, store.Inventory().UpsertDefense(&domain.DefenseStructure{UserID: 2, Name: "electronic jammer", Level: 1}))

	result, err := uc.Attack(1, 2, "single strike")
	require.NoError(t, err)
	assert.Equal(t, int64(49), result.FinalDamage)
	assert.Equal(t, int64(98), result.CoinLooted)
	assert.Equal(t, int64(49), result.ZpLooted)
}

func TestAttackComboMultiplierAndGems(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	seedCombatants(t, store)
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "medium-range missile", 3))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindFighter, "F-16 Falcon", 2))

	result, err := uc.Attack(1, 2, "combo bravo")
	require.NoError(t, err)
	assert.Equal(t, int64(200), result.FinalDamage)

	attacker, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), attacker.Gem, "combo gems consumed")
}

func TestAttackMissingRequirementsLeavesStateAlone(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	seedCombatants(t, store)
	// combo bravo needs 2 F-16s, only 1 owned
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "medium-range missile", 3))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindFighter, "F-16 Falcon", 1))

	_, err := uc.Attack(1, 2, "combo bravo")
	assertAppErrorCode(t, err, domain.ErrCodeMissingRequirements)

	// nothing consumed, nobody touched
	qty, err := store.Inventory().GetQuantity(1, domain.ItemKindMissile, "medium-range missile")
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	attacker, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), attacker.Gem)

	target, err := store.Users().GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), target.Coin)

	records, err := store.Attacks().ListByAttacker(1, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAttackLootCappedByTargetBalance(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "attacker", Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 2, Username: "target", Coin: 30, Zp: 0, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 1))

	result, err := uc.Attack(1, 2, "single strike")
	require.NoError(t, err)
	assert.Equal(t, int64(30), result.CoinLooted)
	assert.Equal(t, int64(0), result.ZpLooted)

	target, err := store.Users().GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), target.Coin)
}

func TestAttackValidation(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	seedCombatants(t, store)

	_, err := uc.Attack(1, 1, "single strike")
	assertAppErrorCode(t, err, domain.ErrCodeSelfTargetNotAllowed)

	_, err = uc.Attack(1, 2, "combo omega")
	assertAppErrorCode(t, err, domain.ErrCodeUnknownCombo)

	_, err = uc.Attack(1, 99, "single strike")
	assertAppErrorCode(t, err, domain.ErrCodeTargetUnavailable)

	_, err = uc.Attack(99, 2, "single strike")
	assertAppErrorCode(t, err, domain.ErrCodeUserNotFound)
}

func TestAttackLevelUpCarriesXPOver(t *testing.T) {
	store := memory.NewStore()
	uc := newTestCombat(store, fixedRoller{intn: 50})
	require.NoError(t, store.Users().Create(&domain.User{ID: 1, Username: "attacker", XP: 995, Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Users().Create(&domain.User{ID: 2, Username: "target", Level: 1, MinerLevel: 1}))
	require.NoError(t, store.Inventory().Add(1, domain.ItemKindMissile, "short-range missile", 1))

	result, err := uc.Attack(1, 2, "single strike")
	require.NoError(t, err)
	assert.Equal(t, 1, result.LevelsGained)

	attacker, err := store.Users().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, attacker.Level)
	assert.Equal(t, int64(5), attacker.XP, "leftover XP carries over")

	events, err := store.Outbox().GetPendingEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)
}

func TestComputeDamage(t *testing.T) {
	tests := []struct {
		name          string
		base          int64
		multiplier    float64
		attackerLevel int
		targetLevel   int
		mitigation    float64
		want          int64
	}{
		{"no_modifiers", 100, 1.0, 1, 1, 0, 100},
		{"combo_multiplier", 100, 2.5, 1, 1, 0, 250},
		{"level_advantage", 100, 1.0, 5, 1, 0, 140},
		{"level_disadvantage", 100, 1.0, 1, 5, 0, 60},
		{"huge_disadvantage_floors_at_zero", 100, 1.0, 1, 20, 0, 0},
		{"mitigation_capped", 100, 1.0, 1, 1, 2.0, 10},
		{"fractional_result_floors", 55, 1.0, 1, 1, 0.10, 49},
		{"fractional_level_factor_floors", 105, 1.0, 2, 1, 0, 115},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeDamage(tt.base, tt.multiplier, tt.attackerLevel, tt.targetLevel, tt.mitigation)
			assert.Equal(t, tt.want, got)
		})
	}
}
