package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// TestPhase_ThresholdTransition: a 3-phase 300 HP boss dropping to 195 (< 200)
// advances to phase 2, heals min(150, 300-195) and gains the buff once.
func TestPhase_ThresholdTransition(t *testing.T) {
	b := boss("Wyrm", 300, 40, 20, 10, 3)
	b.SetCurrentHP(205)

	pc := b.TakeDamage(10)

	require.True(t, pc.Advanced())
	assert.Equal(t, 1, pc.From)
	assert.Equal(t, 2, pc.To)
	assert.Equal(t, 105, pc.Healed)
	assert.Equal(t, "Wyrm Phase 2 form.", pc.Message)
	assert.Equal(t, 300, b.CurrentHP)
	assert.Equal(t, 2, b.Phases.Current)
	assert.Equal(t, 50, b.Attack)
	assert.Equal(t, 25, b.Defense)
}

// TestPhase_AboveThresholdNoTransition: sitting exactly on the threshold does not transition.
func TestPhase_AboveThresholdNoTransition(t *testing.T) {
	b := boss("Wyrm", 300, 40, 20, 10, 3)
	pc := b.TakeDamage(100)
	assert.False(t, pc.Advanced())
	assert.Equal(t, 200, b.CurrentHP)
	assert.Equal(t, 1, b.Phases.Current)
}

// TestPhase_HealHalfMaxHP: the heal is MaxHP/2 when the boss is missing more than that.
func TestPhase_HealHalfMaxHP(t *testing.T) {
	b := boss("Wyrm", 300, 40, 20, 10, 3)
	b.Phases.Current = 2
	pc := b.TakeDamage(201) // 99 < 300 - 2*100

	require.True(t, pc.Advanced())
	assert.Equal(t, 150, pc.Healed)
	assert.Equal(t, 249, b.CurrentHP)
	assert.Equal(t, 3, b.Phases.Current)
}

// TestPhase_OneTransitionPerHit: crossing two thresholds in one hit advances only once.
func TestPhase_OneTransitionPerHit(t *testing.T) {
	b := boss("Wyrm", 300, 40, 20, 10, 3)
	pc := b.TakeDamage(250)

	require.True(t, pc.Advanced())
	assert.Equal(t, 2, b.Phases.Current)
	assert.Equal(t, 200, b.CurrentHP)
	assert.Equal(t, 50, b.Attack)
}

// TestPhase_FinalPhaseIsNoop verifies AdvancePhase at the last phase changes nothing.
func TestPhase_FinalPhaseIsNoop(t *testing.T) {
	b := boss("Wyrm", 300, 40, 20, 10, 3)
	b.Phases.Current = 3
	b.SetCurrentHP(10)

	pc := b.AdvancePhase()
	assert.True(t, pc.Final)
	assert.False(t, pc.Advanced())
	assert.Equal(t, 3, b.Phases.Current)
	assert.Equal(t, 10, b.CurrentHP)
	assert.Equal(t, 40, b.Attack)

	pc = b.TakeDamage(5)
	assert.False(t, pc.Advanced())
	assert.Equal(t, 5, b.CurrentHP)
}

func TestPhase_SinglePhaseBossDisabled(t *testing.T) {
	b := boss("Ogre", 100, 20, 5, 5, 1)
	assert.False(t, b.Phases.Enabled)
	assert.True(t, b.AdvancePhase().Final)
	assert.False(t, b.TakeDamage(90).Advanced())
	assert.Equal(t, 10, b.CurrentHP)
}

func TestPhase_BossWithoutPhaseRecord(t *testing.T) {
	b := enemy("Ogre", 100, 20, 5, 5)
	b.Kind = combat.KindBoss
	assert.False(t, b.TakeDamage(90).Advanced())
	pc := b.AdvancePhase()
	assert.True(t, pc.Final)
	assert.Equal(t, 1, pc.From)
}

// TestPhase_EnemiesNeverTransition verifies the phase check only runs for bosses.
func TestPhase_EnemiesNeverTransition(t *testing.T) {
	e := enemy("Grunt", 300, 10, 5, 5)
	e.Phases = combat.NewPhases(combat.DefaultPhaseMessages("Grunt", 3), combat.DefaultPhaseBuff())
	assert.False(t, e.TakeDamage(250).Advanced())
	assert.Equal(t, 50, e.CurrentHP)
}

func TestPhase_Threshold(t *testing.T) {
	p := combat.NewPhases(combat.DefaultPhaseMessages("X", 3), combat.DefaultPhaseBuff())
	assert.Equal(t, 200, p.Threshold(300))
	p.Current = 2
	assert.Equal(t, 100, p.Threshold(300))
	assert.Equal(t, 3, p.Count())
}

func TestDefaultPhaseMessages(t *testing.T) {
	assert.Equal(t, []string{"Hydra Phase 1 form.", "Hydra Phase 2 form."}, combat.DefaultPhaseMessages("Hydra", 2))
	assert.Empty(t, combat.DefaultPhaseMessages("Hydra", 0))
}

func TestSpecialFor(t *testing.T) {
	assert.Equal(t, combat.SpecialArea, combat.SpecialFor(1))
	assert.Equal(t, combat.SpecialReinforcements, combat.SpecialFor(2))
	assert.Equal(t, combat.SpecialDevastating, combat.SpecialFor(3))
	assert.Equal(t, combat.SpecialPowerful, combat.SpecialFor(4))
	assert.Equal(t, combat.SpecialPowerful, combat.SpecialFor(9))
}

// TestPhase_Monotonic verifies, for arbitrary damage and heal sequences, that the
// phase never regresses or exceeds the phase count and HP stays within bounds.
func TestPhase_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		phases := rapid.IntRange(1, 6).Draw(rt, "phases")
		maxHP := rapid.IntRange(1, 2000).Draw(rt, "max_hp")
		b := boss("Wyrm", maxHP, 30, 10, 10, phases)
		ops := rapid.SliceOfN(rapid.IntRange(-500, 500), 1, 60).Draw(rt, "ops")

		prev := b.Phases.Current
		for _, op := range ops {
			if op >= 0 {
				b.TakeDamage(op)
			} else {
				b.Heal(-op)
			}
			assert.GreaterOrEqual(rt, b.Phases.Current, prev)
			assert.LessOrEqual(rt, b.Phases.Current, b.Phases.Count())
			assert.GreaterOrEqual(rt, b.CurrentHP, 0)
			assert.LessOrEqual(rt, b.CurrentHP, b.MaxHP)
			prev = b.Phases.Current
		}
	})
}

// TestCombatant_HealthBounds verifies 0 <= CurrentHP <= MaxHP for any mutation sequence.
func TestCombatant_HealthBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 1000).Draw(rt, "max_hp")
		c := player("Ayla", maxHP, 10, 5, 10)
		for i, op := range rapid.SliceOfN(rapid.IntRange(0, 2), 1, 50).Draw(rt, "ops") {
			amount := rapid.IntRange(-2000, 2000).Draw(rt, "amount")
			switch op {
			case 0:
				c.TakeDamage(amount)
			case 1:
				c.Heal(amount)
			case 2:
				c.SetCurrentHP(amount)
			}
			assert.GreaterOrEqual(rt, c.CurrentHP, 0, "op %d", i)
			assert.LessOrEqual(rt, c.CurrentHP, c.MaxHP, "op %d", i)
		}
	})
}

func TestCombatant_HPPercent(t *testing.T) {
	c := player("Ayla", 300, 10, 5, 10)
	c.SetCurrentHP(100)
	assert.Equal(t, 33, c.HPPercent())
	c.MaxHP = 0
	assert.Equal(t, 0, c.HPPercent())
}

func TestCombatant_IsAliveNil(t *testing.T) {
	var c *combat.Combatant
	assert.False(t, c.IsAlive())
}
