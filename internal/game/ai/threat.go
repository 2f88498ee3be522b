// Package ai decides actions and targets for units that are not player controlled.
//
// A Controller turns a unit's aggression and health into an action token and
// picks a target from a pool through a named TargetStrategy. A Registry maps
// combatant IDs to controllers and plugs into combat.Battle.ResolveTurnWith.
package ai

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// EvaluateThreat scores how dangerous unit currently is.
// Offense and speed raise the score, missing health raises it further and
// defense lowers it; each term is floored independently.
//
// Postcondition: returns math.MinInt for a nil or dead unit.
func EvaluateThreat(unit *combat.Combatant) int {
	if !unit.IsAlive() {
		return math.MinInt
	}
	return 2*unit.Attack + unit.Speed + floorDiv(unit.MaxHP-unit.CurrentHP, 4) - floorDiv(unit.Defense, 3)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
