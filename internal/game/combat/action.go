package combat

// Action is the token an AI controller produces for a unit's turn.
// The zero value (ActionUnknown) is intentionally invalid and resolves as a wait.
type Action int

const (
	ActionUnknown Action = iota // zero value; intentionally invalid
	ActionWait
	ActionDefend
	ActionAttack
	ActionSkill1
)

// String returns the canonical token for the Action.
// Postcondition: returns "WAIT", "DEFEND", "ATTACK", "SKILL1", or "UNKNOWN".
func (a Action) String() string {
	switch a {
	case ActionWait:
		return "WAIT"
	case ActionDefend:
		return "DEFEND"
	case ActionAttack:
		return "ATTACK"
	case ActionSkill1:
		return "SKILL1"
	default:
		return "UNKNOWN"
	}
}

// Decider chooses an action and optional target for a non-player unit.
// Battle.ResolveTurnWith consults it; Battle.ResolveTurn never does.
type Decider interface {
	// Decide returns the action for self and, for ActionAttack, the chosen
	// target from opponents. A nil target falls back to default targeting.
	Decide(self *Combatant, opponents []*Combatant) (Action, *Combatant)
}
