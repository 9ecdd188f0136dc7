package combat

import "math"

// Damage tuning constants. Base damage rolls uniformly in
// [baseDamageMin, baseDamageMin+baseDamageSpread].
const (
	baseDamageMin    = 50
	baseDamageSpread = 101

	levelStepFactor = 0.10
	maxMitigation   = 0.90

	lootFactor  = 2
	xpPerDamage = 10
	maxAttackXP = 100

	// counters float error before flooring: 100 * (1 - 0.9) evaluates
	// to 9.999999999999998 and must still floor to 10, not 9
	damageEpsilon = 1e-9
)

// computeDamage resolves the final damage of an attack from the rolled base,
// the combo multiplier, the level difference and the target's mitigation.
// Each level of advantage adds ten percent, each level of disadvantage
// removes ten percent, floored at zero. Mitigation is capped so a fully
// built defense never zeroes an attack on its own. The mitigated product
// rounds down.
func computeDamage(base int64, multiplier float64, attackerLevel, targetLevel int, mitigation float64) int64 {
	levelFactor := 1.0 + levelStepFactor*float64(attackerLevel-targetLevel)
	if levelFactor < 0 {
		levelFactor = 0
	}
	if mitigation > maxMitigation {
		mitigation = maxMitigation
	}

	damage := int64(math.Floor(float64(base)*multiplier*levelFactor*(1.0-mitigation) + damageEpsilon))
	if damage < 0 {
		damage = 0
	}
	return damage
}

// lootCap returns the coin an attack can carry away; ZP loot is capped at
// the damage itself.
func lootCap(damage int64) int64 {
	return damage * lootFactor
}

// xpForDamage converts dealt damage into attacker XP, capped per attack.
func xpForDamage(damage int64) int64 {
	xp := damage / xpPerDamage
	if xp > maxAttackXP {
		xp = maxAttackXP
	}
	return xp
}
