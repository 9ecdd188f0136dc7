package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warzonebot/warzone-core/internal/domain"
)

func TestItemLookupAcrossTables(t *testing.T) {
	c := Default()

	item, ok := c.Item("short-range missile")
	assert.True(t, ok)
	assert.Equal(t, domain.ItemKindMissile, item.Kind)
	assert.Equal(t, int64(200), item.Price)
	assert.Equal(t, int64(0), item.GemCost)

	item, ok = c.Item("F-22 Raptor")
	assert.True(t, ok)
	assert.Equal(t, domain.ItemKindFighter, item.Kind)
	assert.Equal(t, 6, item.MinLevel)

	item, ok = c.Item("MQ-9 Reaper")
	assert.True(t, ok)
	assert.Equal(t, domain.ItemKindDrone, item.Kind)

	_, ok = c.Item("slingshot")
	assert.False(t, ok)
}

func TestApocalypseTierCarriesGemCost(t *testing.T) {
	c := Default()
	item, ok := c.Item("doomsday warhead")
	assert.True(t, ok)
	assert.Equal(t, int64(20), item.GemCost)
	assert.Equal(t, 9, item.MinLevel)
}

func TestMinerLadder(t *testing.T) {
	c := Default()
	assert.Equal(t, int64(100), c.MinerRate(1))
	assert.Equal(t, int64(1500), c.MinerRate(15))
	// unknown level falls back to level one
	assert.Equal(t, int64(100), c.MinerRate(99))

	assert.Equal(t, int64(100), c.MinerUpgradeCost(1))
	assert.Equal(t, int64(900), c.MinerUpgradeCost(9))
	assert.Equal(t, int64(10000), c.MinerUpgradeCost(10))
	assert.Equal(t, int64(0), c.MinerUpgradeCost(15))
}

func TestDefenseBonusSumsLeveledStructures(t *testing.T) {
	c := Default()
	bonus := c.DefenseBonus([]*domain.DefenseStructure{
		{Name: "missile shield", Level: 2},    // 0.15 * 2
		{Name: "cyber firewall", Level: 1},    // 0.20
		{Name: "unknown structure", Level: 5}, // ignored
	})
	assert.InDelta(t, 0.50, bonus, 1e-9)
}

func TestPowerCountsFightersAndDrones(t *testing.T) {
	c := Default()
	power := c.Power([]*domain.InventoryEntry{
		{ItemKind: domain.ItemKindFighter, ItemName: "F-16 Falcon", Quantity: 2}, // 80 each
		{ItemKind: domain.ItemKindDrone, ItemName: "MQ-9 Reaper", Quantity: 1},   // 100
		{ItemKind: domain.ItemKindMissile, ItemName: "cruise missile", Quantity: 9},
	})
	assert.Equal(t, int64(BasePower+260), power, "missiles carry no power bonus")
}

func TestEveryComboReferencesKnownItems(t *testing.T) {
	c := Default()
	for name, combo := range c.Combos {
		assert.Greater(t, combo.Multiplier, 0.0, name)
		for item := range combo.RequiredItems {
			_, ok := c.Item(item)
			assert.True(t, ok, "combo %q references unknown item %q", name, item)
		}
	}
}

func TestChanceGatedBoxesAlwaysHaveFallback(t *testing.T) {
	c := Default()
	for kind, box := range c.Boxes {
		if box.Chance > 0 {
			assert.Greater(t, box.FallbackMax, int64(0), "box %q must never pay nothing", kind)
			assert.NotEmpty(t, box.FallbackKind, kind)
		} else {
			assert.Greater(t, box.Max, int64(0), kind)
		}
	}
}
