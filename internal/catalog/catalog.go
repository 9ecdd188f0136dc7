package catalog

import (
	"github.com/warzonebot/warzone-core/internal/domain"
)

// Missile is a purchasable projectile. Apocalypse-tier missiles carry a gem
// surcharge on top of the coin price.
type Missile struct {
	Name     string
	Damage   int64
	Price    int64
	GemCost  int64
	MinLevel int
}

// Aircraft covers fighters and drones: support units that raise displayed
// power by a flat bonus percent.
type Aircraft struct {
	Name         string
	BonusPercent int64
	Price        int64
	MinLevel     int
}

// Defense is a purchasable defensive structure. Its mitigation contribution
// is BaseBonus times the owned level; upgrading to the next level costs
// UpgradeCost times the current level.
type Defense struct {
	Name        string
	BaseBonus   float64
	Price       int64
	UpgradeCost int64
}

// MinerLevel describes one rung of the ZP miner ladder. UpgradeCost is the
// ZP price to reach the next level; zero means the level is final.
type MinerLevel struct {
	ZpPerHour   int64
	UpgradeCost int64
}

// Box is a priced, randomized reward. Chance zero means a uniform payout in
// RewardKind between Min and Max. A non-zero Chance gates a rare payout:
// either a uniform RewardKind draw or the fixed RareBundle; a miss still pays
// the fallback range, so a box never produces nothing.
type Box struct {
	Kind         string
	PriceCoin    int64
	PriceGem     int64
	FreeDaily    bool
	RewardKind   domain.RewardKind
	Min          int64
	Max          int64
	Chance       float64
	RareBundle   *domain.Reward
	FallbackKind domain.RewardKind
	FallbackMin  int64
	FallbackMax  int64
}

// Combo is a named bundle of item and gem prerequisites unlocking a damage
// multiplier.
type Combo struct {
	Name          string
	RequiredItems map[string]int
	RequiredGems  int64
	Multiplier    float64
}

// Item is the unified view of any purchasable inventory item.
type Item struct {
	Kind     domain.ItemKind
	Name     string
	Price    int64
	GemCost  int64
	MinLevel int
}

// Catalog holds every static item table. It is built once at startup and
// never mutated afterwards; engines receive it by injection.
type Catalog struct {
	Missiles    map[string]Missile
	Fighters    map[string]Aircraft
	Drones      map[string]Aircraft
	Defenses    map[string]Defense
	MinerLevels map[int]MinerLevel
	Boxes       map[string]Box
	Combos      map[string]Combo
}

// Item resolves an item name across the missile, fighter and drone tables.
func (c *Catalog) Item(name string) (Item, bool) {
	if m, ok := c.Missiles[name]; ok {
		return Item{Kind: domain.ItemKindMissile, Name: m.Name, Price: m.Price, GemCost: m.GemCost, MinLevel: m.MinLevel}, true
	}
	if f, ok := c.Fighters[name]; ok {
		return Item{Kind: domain.ItemKindFighter, Name: f.Name, Price: f.Price, MinLevel: f.MinLevel}, true
	}
	if d, ok := c.Drones[name]; ok {
		return Item{Kind: domain.ItemKindDrone, Name: d.Name, Price: d.Price, MinLevel: d.MinLevel}, true
	}
	return Item{}, false
}

// ItemKind resolves just the kind of a known item name.
func (c *Catalog) ItemKind(name string) (domain.ItemKind, bool) {
	item, ok := c.Item(name)
	return item.Kind, ok
}

// MinerRate returns the ZP-per-hour rate for a miner level. Unknown levels
// fall back to level one, matching how the original tables were read.
func (c *Catalog) MinerRate(level int) int64 {
	if ml, ok := c.MinerLevels[level]; ok {
		return ml.ZpPerHour
	}
	return c.MinerLevels[1].ZpPerHour
}

// MinerUpgradeCost returns the ZP cost to upgrade from the given level, or
// zero when the level is final.
func (c *Catalog) MinerUpgradeCost(level int) int64 {
	if ml, ok := c.MinerLevels[level]; ok {
		return ml.UpgradeCost
	}
	return 0
}

// BasePower is the displayed power of a user with no support aircraft.
const BasePower = 100

// Power computes displayed combat power: the base plus the flat bonus of
// every owned fighter and drone.
func (c *Catalog) Power(inventory []*domain.InventoryEntry) int64 {
	power := int64(BasePower)
	for _, e := range inventory {
		var spec Aircraft
		var ok bool
		switch e.ItemKind {
		case domain.ItemKindFighter:
			spec, ok = c.Fighters[e.ItemName]
		case domain.ItemKindDrone:
			spec, ok = c.Drones[e.ItemName]
		}
		if !ok {
			continue
		}
		power += spec.BonusPercent * int64(e.Quantity)
	}
	return power
}

// DefenseBonus sums the mitigation of a user's owned defense structures.
func (c *Catalog) DefenseBonus(defenses []*domain.DefenseStructure) float64 {
	total := 0.0
	for _, d := range defenses {
		spec, ok := c.Defenses[d.Name]
		if !ok {
			continue
		}
		total += spec.BaseBonus * float64(d.Level)
	}
	return total
}

// Default builds the production catalog.
func Default() *Catalog {
	missiles := []Missile{
		{Name: "short-range missile", Damage: 50, Price: 200, MinLevel: 1},
		{Name: "medium-range missile", Damage: 70, Price: 500, MinLevel: 2},
		{Name: "long-range missile", Damage: 90, Price: 1000, MinLevel: 3},
		{Name: "cruise missile", Damage: 110, Price: 2000, MinLevel: 4},
		{Name: "ballistic missile", Damage: 130, Price: 5000, MinLevel: 5},
		// apocalypse tier
		{Name: "plasma warhead", Damage: 200, Price: 10000, GemCost: 5, MinLevel: 6},
		{Name: "antimatter warhead", Damage: 280, Price: 20000, GemCost: 10, MinLevel: 7},
		{Name: "void warhead", Damage: 350, Price: 35000, GemCost: 15, MinLevel: 8},
		{Name: "doomsday warhead", Damage: 400, Price: 50000, GemCost: 20, MinLevel: 9},
	}
	fighters := []Aircraft{
		{Name: "F-16 Falcon", BonusPercent: 80, Price: 5000, MinLevel: 3},
		{Name: "F-22 Raptor", BonusPercent: 150, Price: 12000, MinLevel: 6},
		{Name: "Su-57 Felon", BonusPercent: 220, Price: 25000, MinLevel: 9},
		{Name: "B-2 Spirit", BonusPercent: 300, Price: 50000, MinLevel: 12},
	}
	drones := []Aircraft{
		{Name: "MQ-9 Reaper", BonusPercent: 100, Price: 8000, MinLevel: 4},
		{Name: "RQ-4 Global Hawk", BonusPercent: 180, Price: 18000, MinLevel: 7},
		{Name: "X-47B", BonusPercent: 250, Price: 35000, MinLevel: 10},
		{Name: "Avenger", BonusPercent: 350, Price: 60000, MinLevel: 13},
	}
	defenses := []Defense{
		{Name: "missile shield", BaseBonus: 0.15, Price: 3000, UpgradeCost: 1500},
		{Name: "electronic jammer", BaseBonus: 0.10, Price: 2000, UpgradeCost: 1000},
		{Name: "anti-air battery", BaseBonus: 0.12, Price: 2500, UpgradeCost: 1200},
		{Name: "cyber firewall", BaseBonus: 0.20, Price: 5000, UpgradeCost: 2500},
	}

	minerLevels := make(map[int]MinerLevel, domain.MaxMinerLevel)
	for level := 1; level <= domain.MaxMinerLevel; level++ {
		cost := int64(level) * 100
		if level >= 10 {
			cost = int64(level) * 1000
		}
		if level == domain.MaxMinerLevel {
			cost = 0
		}
		minerLevels[level] = MinerLevel{ZpPerHour: int64(level) * 100, UpgradeCost: cost}
	}

	boxes := []Box{
		{Kind: "free_box", FreeDaily: true, RewardKind: domain.RewardCoin, Min: 50, Max: 200},
		{Kind: "zona_box", PriceCoin: 1000, RewardKind: domain.RewardZp, Min: 50, Max: 500},
		{Kind: "coin_box", PriceCoin: 500, RewardKind: domain.RewardCoin, Min: 100, Max: 2000},
		{
			Kind: "premium_box", PriceGem: 10,
			RewardKind: domain.RewardGem, Min: 1, Max: 50, Chance: 0.35,
			FallbackKind: domain.RewardCoin, FallbackMin: 500, FallbackMax: 1500,
		},
		{
			Kind: "legendary_box", PriceGem: 50,
			RewardKind: domain.RewardBundle, Chance: 0.05,
			RareBundle:   &domain.Reward{Kind: domain.RewardBundle, Coin: 50000, Zp: 20000},
			FallbackKind: domain.RewardZp, FallbackMin: 500, FallbackMax: 2000,
		},
	}

	combos := []Combo{
		{
			Name:          "single strike",
			RequiredItems: map[string]int{"short-range missile": 1},
			Multiplier:    1.0,
		},
		{
			Name:          "combo alpha",
			RequiredItems: map[string]int{"short-range missile": 2, "F-16 Falcon": 1, "MQ-9 Reaper": 1},
			Multiplier:    1.5,
		},
		{
			Name:          "combo bravo",
			RequiredItems: map[string]int{"medium-range missile": 3, "F-16 Falcon": 2},
			RequiredGems:  2,
			Multiplier:    2.0,
		},
		{
			Name:          "combo charlie",
			RequiredItems: map[string]int{"long-range missile": 4, "F-22 Raptor": 1, "MQ-9 Reaper": 2},
			RequiredGems:  5,
			Multiplier:    2.5,
		},
	}

	c := &Catalog{
		Missiles:    make(map[string]Missile, len(missiles)),
		Fighters:    make(map[string]Aircraft, len(fighters)),
		Drones:      make(map[string]Aircraft, len(drones)),
		Defenses:    make(map[string]Defense, len(defenses)),
		MinerLevels: minerLevels,
		Boxes:       make(map[string]Box, len(boxes)),
		Combos:      make(map[string]Combo, len(combos)),
	}
	for _, m := range missiles {
		c.Missiles[m.Name] = m
	}
	for _, f := range fighters {
		c.Fighters[f.Name] = f
	}
	for _, d := range drones {
		c.Drones[d.Name] = d
	}
	for _, d := range defenses {
		c.Defenses[d.Name] = d
	}
	for _, b := range boxes {
		c.Boxes[b.Kind] = b
	}
	for _, cb := range combos {
		c.Combos[cb.Name] = cb
	}
	return c
}
