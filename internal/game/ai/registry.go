package ai

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Registry indexes Controllers by combatant ID and serves as the
// combat.Decider for a battle.
//
// Invariant: each combatant ID is registered at most once.
type Registry struct {
	controllers map[string]*Controller
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]*Controller)}
}

// Register stores c under its unit's ID.
//
// Precondition: c must not be nil and must control a unit with a non-empty ID.
// Postcondition: returns error on ID collision.
func (r *Registry) Register(c *Controller) error {
	if c.Unit() == nil || c.Unit().ID == "" {
		return fmt.Errorf("ai.Registry: controller has no unit ID")
	}
	id := c.Unit().ID
	if _, exists := r.controllers[id]; exists {
		return fmt.Errorf("ai.Registry: combatant %q already registered", id)
	}
	r.controllers[id] = c
	return nil
}

// ControllerFor returns the Controller for combatantID, or false if not registered.
func (r *Registry) ControllerFor(combatantID string) (*Controller, bool) {
	c, ok := r.controllers[combatantID]
	return c, ok
}

// Len returns the number of registered controllers.
func (r *Registry) Len() int { return len(r.controllers) }

// Decide implements combat.Decider. Units without a controller attack with
// default targeting. An attacking unit picks its target through its strategy;
// other actions carry no target.
func (r *Registry) Decide(self *combat.Combatant, opponents []*combat.Combatant) (combat.Action, *combat.Combatant) {
	if self == nil {
		return combat.ActionWait, nil
	}
	c, ok := r.controllers[self.ID]
	if !ok {
		return combat.ActionAttack, nil
	}
	action := c.DecideAction()
	if action != combat.ActionAttack {
		return action, nil
	}
	return action, c.SelectTarget(opponents)
}

var _ combat.Decider = (*Registry)(nil)
