package combat

import "fmt"

// PhaseBuff is the permanent stat increase granted on every phase transition.
type PhaseBuff struct {
	Attack  int
	Defense int
}

// DefaultPhaseBuff returns the standard +10 attack / +5 defense transition buff.
func DefaultPhaseBuff() PhaseBuff {
	return PhaseBuff{Attack: 10, Defense: 5}
}

// Phases is the boss phase record attached to KindBoss combatants.
//
// Invariant: 1 <= Current <= len(Messages) when len(Messages) > 0.
// Invariant: Current never decreases.
type Phases struct {
	// Enabled is false for single-phase bosses.
	Enabled bool
	// Current is the 1-based active phase.
	Current int
	// Messages holds one announcement per phase; its length is the phase count.
	Messages []string
	Buff     PhaseBuff
}

// NewPhases builds a phase record starting at phase 1.
// Phases are enabled only when more than one message is given.
func NewPhases(messages []string, buff PhaseBuff) *Phases {
	return &Phases{
		Enabled:  len(messages) > 1,
		Current:  1,
		Messages: messages,
		Buff:     buff,
	}
}

// DefaultPhaseMessages returns "<name> Phase N form." for N in 1..count.
func DefaultPhaseMessages(name string, count int) []string {
	msgs := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		msgs = append(msgs, fmt.Sprintf("%s Phase %d form.", name, i))
	}
	return msgs
}

// Count returns the total number of phases.
func (p *Phases) Count() int { return len(p.Messages) }

// IsFinal reports whether no further transition is possible.
func (p *Phases) IsFinal() bool {
	return p == nil || !p.Enabled || p.Current >= len(p.Messages)
}

// Threshold returns the HP value the boss must drop below to leave the current
// phase: maxHP - Current*(maxHP/Count), using integer division.
//
// Precondition: Count() > 0.
func (p *Phases) Threshold(maxHP int) int {
	return maxHP - p.Current*(maxHP/len(p.Messages))
}

// due reports whether a transition should fire at the given HP.
// Only the current phase's threshold is checked, so one hit yields at most one transition.
func (p *Phases) due(hp, maxHP int) bool {
	if p.IsFinal() {
		return false
	}
	return hp < p.Threshold(maxHP)
}

// PhaseChange reports the outcome of a phase transition attempt.
type PhaseChange struct {
	From int
	To   int
	// Healed is the HP restored by the transition.
	Healed  int
	Message string
	// Final is set when a transition was requested but the boss was already
	// at its final phase (or has no phases).
	Final bool
}

// Advanced reports whether the phase actually changed.
func (pc PhaseChange) Advanced() bool { return pc.To > pc.From }

// AdvancePhase moves a boss to its next phase. The boss is healed by
// min(MaxHP/2, MaxHP-CurrentHP) and receives the phase buff.
// When phases are disabled or the final phase is active nothing changes and
// the result has Final set.
//
// Postcondition: Phases.Current is non-decreasing and never exceeds Phases.Count().
func (c *Combatant) AdvancePhase() PhaseChange {
	if c.Phases.IsFinal() {
		cur := 1
		if c.Phases != nil {
			cur = c.Phases.Current
		}
		return PhaseChange{From: cur, To: cur, Final: true}
	}
	p := c.Phases
	heal := c.MaxHP / 2
	if missing := c.MaxHP - c.CurrentHP; missing < heal {
		heal = missing
	}
	from := p.Current
	p.Current++
	c.CurrentHP += heal
	c.Attack += p.Buff.Attack
	c.Defense += p.Buff.Defense
	return PhaseChange{
		From:    from,
		To:      p.Current,
		Healed:  heal,
		Message: p.Messages[p.Current-1],
	}
}

// SpecialAttack is the phase-flavoured alternative a boss may use instead of a skill.
type SpecialAttack int

const (
	SpecialNone SpecialAttack = iota
	// SpecialArea hits every living opponent.
	SpecialArea
	// SpecialReinforcements calls for help; it deals no damage.
	SpecialReinforcements
	// SpecialDevastating is a heavy single-target blow.
	SpecialDevastating
	// SpecialPowerful is the generic fallback beyond phase 3.
	SpecialPowerful
)

// String returns a human-readable special attack label.
func (s SpecialAttack) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialArea:
		return "area of effect"
	case SpecialReinforcements:
		return "summon reinforcements"
	case SpecialDevastating:
		return "devastating blow"
	case SpecialPowerful:
		return "powerful attack"
	default:
		return "unknown"
	}
}

// SpecialFor selects the special attack branch for a phase.
//
// Postcondition: phase 1 → SpecialArea, 2 → SpecialReinforcements,
// 3 → SpecialDevastating, anything else → SpecialPowerful.
func SpecialFor(phase int) SpecialAttack {
	switch phase {
	case 1:
		return SpecialArea
	case 2:
		return SpecialReinforcements
	case 3:
		return SpecialDevastating
	default:
		return SpecialPowerful
	}
}
