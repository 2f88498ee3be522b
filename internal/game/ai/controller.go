package ai

import (
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Aggression bounds. The default is balanced.
const (
	AggressionCautious = 0
	AggressionBalanced = 1
	AggressionReckless = 2
)

// ScriptCaller is the interface required by a Controller to delegate target
// selection to a script.
type ScriptCaller interface {
	// SelectTarget asks script to pick one of pool for self.
	// Returns (index, true) on a valid choice and (0, false) otherwise.
	SelectTarget(script string, self *combat.Combatant, pool []*combat.Combatant) (int, bool)
	// HasScript reports whether script is loaded.
	HasScript(script string) bool
}

// Controller decides actions and targets for one unit.
type Controller struct {
	unit       *combat.Combatant
	aggression int
	patterns   []string
	src        dice.Source
	caller     ScriptCaller
	script     string
}

// NewController creates a balanced Controller for unit that targets the highest threat.
//
// Precondition: src must be non-nil. unit may be nil; such a controller always waits.
// Postcondition: Returns a non-nil Controller.
func NewController(unit *combat.Combatant, src dice.Source) *Controller {
	if src == nil {
		panic("ai.NewController: src must not be nil")
	}
	return &Controller{
		unit:       unit,
		aggression: AggressionBalanced,
		patterns:   []string{StrategyHighestThreat},
		src:        src,
	}
}

// NewControllerFromProfile creates a Controller for unit configured by p.
//
// Precondition: src must be non-nil.
func NewControllerFromProfile(unit *combat.Combatant, p Profile, src dice.Source) *Controller {
	c := NewController(unit, src)
	c.SetAggression(p.Aggression)
	if len(p.Behavior) > 0 {
		c.SetBehaviorPatterns(p.Behavior)
	}
	return c
}

// Unit returns the controlled combatant.
func (c *Controller) Unit() *combat.Combatant { return c.unit }

// Aggression returns the current aggression level.
func (c *Controller) Aggression() int { return c.aggression }

// SetAggression sets the aggression level, clamped to [AggressionCautious, AggressionReckless].
func (c *Controller) SetAggression(level int) {
	switch {
	case level < AggressionCautious:
		level = AggressionCautious
	case level > AggressionReckless:
		level = AggressionReckless
	}
	c.aggression = level
}

// BehaviorPatterns returns a copy of the behaviour patterns.
func (c *Controller) BehaviorPatterns() []string {
	out := make([]string, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// SetBehaviorPatterns replaces the behaviour patterns. Only the first entry
// selects the targeting strategy; an empty list means HIGHEST_THREAT.
func (c *Controller) SetBehaviorPatterns(patterns []string) {
	c.patterns = append([]string(nil), patterns...)
}

// SetScript delegates target selection to script through caller. The
// behaviour-pattern strategy still applies whenever the script declines to
// choose. An empty script or nil caller removes the delegation.
func (c *Controller) SetScript(caller ScriptCaller, script string) {
	if caller == nil || script == "" {
		c.caller, c.script = nil, ""
		return
	}
	c.caller, c.script = caller, script
}

// Script returns the name of the targeting script, or "" when none is set.
func (c *Controller) Script() string { return c.script }

// DecideAction returns the action for the controlled unit. Rules are checked
// in order: a cautious unit at or below 25% health defends, a reckless unit
// always casts its first skill, any unit at or below 40% health defends, and
// everyone else attacks.
//
// Postcondition: returns combat.ActionWait when there is no controlled unit.
func (c *Controller) DecideAction() combat.Action {
	if c.unit == nil {
		return combat.ActionWait
	}
	hp := c.unit.HPPercent()
	switch {
	case c.aggression == AggressionCautious && hp <= 25:
		return combat.ActionDefend
	case c.aggression == AggressionReckless:
		return combat.ActionSkill1
	case hp <= 40:
		return combat.ActionDefend
	default:
		return combat.ActionAttack
	}
}

// SelectTarget picks a living target from pool. A targeting script, when set,
// chooses first; otherwise the strategy named by the first behaviour pattern
// decides. Unknown names fall back to HIGHEST_THREAT. Ties go to the earliest
// candidate in pool.
//
// Postcondition: returns nil if pool holds no living combatant.
func (c *Controller) SelectTarget(pool []*combat.Combatant) *combat.Combatant {
	var alive []*combat.Combatant
	for _, u := range pool {
		if u.IsAlive() {
			alive = append(alive, u)
		}
	}
	if len(alive) == 0 {
		return nil
	}
	if c.caller != nil {
		if i, ok := c.caller.SelectTarget(c.script, c.unit, alive); ok && i >= 0 && i < len(alive) {
			return alive[i]
		}
	}
	return c.strategy()(alive, c.src)
}

func (c *Controller) strategy() TargetStrategy {
	if len(c.patterns) > 0 {
		if s, ok := StrategyFor(c.patterns[0]); ok {
			return s
		}
	}
	return highestThreat
}
