package combat

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Rules holds the numeric constants of the battle engine. They are
// configuration inputs, never engine logic; DefaultRules carries the
// standard tuning.
type Rules struct {
	// DefenseFactor is the fraction of defense subtracted from attack.
	DefenseFactor float64
	// Variance is the half-width of the multiplicative damage spread.
	Variance float64
	// EnemyCritRate is the flat crit chance of non-player combatants.
	EnemyCritRate float64
	// BaseCritBonus is the crit bonus available to every attack before equipment.
	BaseCritBonus float64
	// SkillMultipliers maps skill index to damage multiplier; unlisted indexes use 1.0.
	SkillMultipliers map[int]float64
	// BossSpecialChance is the probability a boss skill becomes a special attack.
	BossSpecialChance     float64
	AreaMultiplier        float64
	DevastatingMultiplier float64
	PowerfulMultiplier    float64
}

// DefaultRules returns the standard engine tuning.
func DefaultRules() Rules {
	return Rules{
		DefenseFactor:         0.5,
		Variance:              0.15,
		EnemyCritRate:         0.05,
		BaseCritBonus:         0.5,
		SkillMultipliers:      map[int]float64{1: 1.5, 2: 2.0},
		BossSpecialChance:     0.3,
		AreaMultiplier:        1.0,
		DevastatingMultiplier: 3.0,
		PowerfulMultiplier:    2.0,
	}
}

// SkillMultiplier returns the damage multiplier for skillIndex.
//
// Postcondition: returns 1.0 for any index without a configured multiplier.
func (r Rules) SkillMultiplier(skillIndex int) float64 {
	if m, ok := r.SkillMultipliers[skillIndex]; ok {
		return m
	}
	return 1.0
}

// DamageRoll holds the audit trail of a single damage computation.
type DamageRoll struct {
	// Base is max(1, round(attack - defense*DefenseFactor)).
	Base int
	// Variance is the multiplicative spread applied to Base.
	Variance float64
	// Crit is true when the crit roll landed.
	Crit bool
	// Damage is the final non-negative integer damage.
	Damage int
}

// DamageModel maps attack, defense and crit parameters to integer damage.
// It holds no state beyond its tuning and random source.
type DamageModel struct {
	src           dice.Source
	defenseFactor float64
	variance      float64
}

// NewDamageModel creates a DamageModel drawing randomness from src.
//
// Precondition: src must be non-nil.
func NewDamageModel(src dice.Source, rules Rules) *DamageModel {
	if src == nil {
		panic("combat.NewDamageModel: src must not be nil")
	}
	return &DamageModel{
		src:           src,
		defenseFactor: math.Max(0, rules.DefenseFactor),
		variance:      dice.Clamp01(rules.Variance),
	}
}

// Compute returns the damage dealt by attack against defense.
//
// Postcondition: Returns >= 0.
func (m *DamageModel) Compute(attack, defense int, critChance, critBonus float64) int {
	return m.Roll(attack, defense, critChance, critBonus).Damage
}

// Roll computes damage and returns the full audit record.
// Two draws are consumed from the source, variance first and crit second.
//
//	base     = max(1, round(attack - defense*DefenseFactor))
//	variance = 1 + Variance*(2u - 1)
//	damage   = base * variance, times (1 + max(0, critBonus)) on a crit
//
// Postcondition: result.Base >= 1; result.Damage >= 0.
func (m *DamageModel) Roll(attack, defense int, critChance, critBonus float64) DamageRoll {
	raw := float64(attack) - float64(defense)*m.defenseFactor
	base := int(math.Max(1, math.Floor(raw+0.5)))

	variance := 1 + m.variance*(2*m.src.Float64()-1)
	dmg := float64(base) * variance

	crit := dice.Chance(m.src, critChance)
	if crit {
		dmg *= 1 + math.Max(0, critBonus)
	}

	out := int(math.Floor(dmg))
	if out < 0 {
		out = 0
	}
	return DamageRoll{Base: base, Variance: variance, Crit: crit, Damage: out}
}

// CritParams derives the crit chance and crit bonus for an attacker.
// Players sum critical_rate and critical_damage percentages over their
// equipment; other kinds use the flat EnemyCritRate. Every attacker starts
// with BaseCritBonus.
//
// Postcondition: 0 <= chance <= 1; bonus >= 0.
func CritParams(c *Combatant, rules Rules) (chance, bonus float64) {
	bonus = rules.BaseCritBonus
	if c.IsPlayer() {
		for _, item := range c.Equipment {
			if item == nil {
				continue
			}
			chance += percentToFraction(item.Stat(StatCritRate))
			bonus += percentToFraction(item.Stat(StatCritDamage))
		}
	} else {
		chance = rules.EnemyCritRate
	}
	return dice.Clamp01(chance), math.Max(0, bonus)
}

func percentToFraction(percent int) float64 {
	if percent <= 0 {
		return 0
	}
	return float64(percent) / 100.0
}
