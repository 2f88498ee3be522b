package combat_test

import (
	"testing"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// fixedSrc is a deterministic Source returning the same values for every draw.
// Float64 0.5 yields a variance of exactly 1.0 and never lands a crit below 50%.
type fixedSrc struct {
	i int
	f float64
}

func (s fixedSrc) Intn(_ int) int    { return s.i }
func (s fixedSrc) Float64() float64 { return s.f }

// seqSrc replays floats in order, repeating the last one once exhausted.
type seqSrc struct {
	floats []float64
	pos    int
}

func (s *seqSrc) Intn(_ int) int { return 0 }

func (s *seqSrc) Float64() float64 {
	if s.pos >= len(s.floats) {
		return s.floats[len(s.floats)-1]
	}
	v := s.floats[s.pos]
	s.pos++
	return v
}

var neutral = fixedSrc{f: 0.5}

func player(name string, hp, atk, def, spd int) *combat.Combatant {
	return &combat.Combatant{ID: name, Name: name, Kind: combat.KindPlayer, MaxHP: hp, CurrentHP: hp, Attack: atk, Defense: def, Speed: spd}
}

func enemy(name string, hp, atk, def, spd int) *combat.Combatant {
	return &combat.Combatant{ID: name, Name: name, Kind: combat.KindEnemy, MaxHP: hp, CurrentHP: hp, Attack: atk, Defense: def, Speed: spd}
}

func boss(name string, hp, atk, def, spd, phases int) *combat.Combatant {
	return &combat.Combatant{
		ID: name, Name: name, Kind: combat.KindBoss,
		MaxHP: hp, CurrentHP: hp, Attack: atk, Defense: def, Speed: spd,
		Phases: combat.NewPhases(combat.DefaultPhaseMessages(name, phases), combat.DefaultPhaseBuff()),
	}
}

func newBattle(t *testing.T, src interface {
	Intn(int) int
	Float64() float64
}) *combat.Battle {
	t.Helper()
	return combat.NewBattle("test", combat.DefaultRules(), src, nil)
}

// stubDecider returns a fixed decision and records every call.
type stubDecider struct {
	action combat.Action
	target func(opponents []*combat.Combatant) *combat.Combatant
	calls  []string
}

func (d *stubDecider) Decide(self *combat.Combatant, opponents []*combat.Combatant) (combat.Action, *combat.Combatant) {
	d.calls = append(d.calls, self.Name)
	if d.target == nil {
		return d.action, nil
	}
	return d.action, d.target(opponents)
}
