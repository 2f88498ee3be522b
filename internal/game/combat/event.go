package combat

import (
	"fmt"
	"strings"
)

// EventKind classifies what happened during one resolution call.
type EventKind int

const (
	// EventNone means nothing happened: the battle was not in progress, the
	// actor was nil or dead, or there was nobody to act.
	EventNone EventKind = iota
	// EventSkip means the acting unit was dead and its turn slot was consumed.
	EventSkip
	// EventNoTarget means the acting unit found no living opponent.
	EventNoTarget
	EventAttack
	EventSkill
	EventSpecial
	EventDefend
	EventWait
)

// String returns a human-readable event kind label.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventSkip:
		return "skip"
	case EventNoTarget:
		return "no target"
	case EventAttack:
		return "attack"
	case EventSkill:
		return "skill"
	case EventSpecial:
		return "special"
	case EventDefend:
		return "defend"
	case EventWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Hit records damage landed on one target.
type Hit struct {
	Target *Combatant
	Roll   DamageRoll
	// Damage is the HP actually subtracted after any skill multiplier.
	Damage int
	// Phase is the boss phase transition the hit triggered, if any.
	Phase PhaseChange
}

// TurnEvent records what one ResolveTurn, ResolveTurnWith or UseSkill call did.
type TurnEvent struct {
	Kind  EventKind
	Actor *Combatant
	// Action is the AI decision behind the turn; ActionUnknown when no decider was consulted.
	Action     Action
	Skill      int
	Multiplier float64
	Special    SpecialAttack
	Hits       []Hit
	// State is the battle state after the event resolved.
	State State
}

// TotalDamage returns the sum of damage across all hits.
func (e TurnEvent) TotalDamage() int {
	total := 0
	for _, h := range e.Hits {
		total += h.Damage
	}
	return total
}

// Narrative renders the event as a single line of battle log text.
func (e TurnEvent) Narrative() string {
	name := "nobody"
	if e.Actor != nil {
		name = e.Actor.Name
	}
	var b strings.Builder
	switch e.Kind {
	case EventNone:
		return ""
	case EventSkip:
		fmt.Fprintf(&b, "%s is down and loses the turn.", name)
	case EventNoTarget:
		fmt.Fprintf(&b, "%s finds nobody left to fight.", name)
	case EventDefend:
		fmt.Fprintf(&b, "%s takes a defensive stance.", name)
	case EventWait:
		fmt.Fprintf(&b, "%s waits.", name)
	case EventSpecial:
		fmt.Fprintf(&b, "%s uses %s!", name, e.Special)
	case EventSkill:
		fmt.Fprintf(&b, "%s uses skill %d.", name, e.Skill)
	case EventAttack:
		fmt.Fprintf(&b, "%s attacks.", name)
	}
	for _, h := range e.Hits {
		crit := ""
		if h.Roll.Crit {
			crit = " Critical hit!"
		}
		fmt.Fprintf(&b, " %s takes %d damage (%d/%d HP).%s", h.Target.Name, h.Damage, h.Target.CurrentHP, h.Target.MaxHP, crit)
		if h.Phase.Advanced() {
			fmt.Fprintf(&b, " %s", h.Phase.Message)
		}
	}
	return b.String()
}
