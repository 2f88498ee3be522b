package ai

import (
	"sort"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Strategy names accepted in behaviour patterns.
const (
	StrategyLowestHP      = "LOWEST_HP"
	StrategyRandom        = "RANDOM"
	StrategyHighestThreat = "HIGHEST_THREAT"
)

// TargetStrategy picks one target from pool.
//
// Precondition: pool contains only living combatants and is non-empty.
type TargetStrategy func(pool []*combat.Combatant, src dice.Source) *combat.Combatant

var strategies = map[string]TargetStrategy{
	StrategyLowestHP:      lowestHP,
	StrategyRandom:        randomTarget,
	StrategyHighestThreat: highestThreat,
}

// StrategyFor returns the strategy registered under name, compared case-insensitively.
//
// Postcondition: Returns (strategy, true) if found, or (nil, false) otherwise.
func StrategyFor(name string) (TargetStrategy, bool) {
	s, ok := strategies[strings.ToUpper(strings.TrimSpace(name))]
	return s, ok
}

// StrategyNames returns every registered strategy name in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lowestHP(pool []*combat.Combatant, _ dice.Source) *combat.Combatant {
	best := pool[0]
	for _, c := range pool[1:] {
		if c.CurrentHP < best.CurrentHP {
			best = c
		}
	}
	return best
}

func randomTarget(pool []*combat.Combatant, src dice.Source) *combat.Combatant {
	return pool[src.Intn(len(pool))]
}

func highestThreat(pool []*combat.Combatant, _ dice.Source) *combat.Combatant {
	best, bestScore := pool[0], EvaluateThreat(pool[0])
	for _, c := range pool[1:] {
		if s := EvaluateThreat(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}
