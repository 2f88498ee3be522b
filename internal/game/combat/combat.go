// Package combat implements the turn-based battle resolution engine.
package combat

// Kind distinguishes player characters from regular enemies and bosses.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBoss
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Equipment stat keys read by the engine. Values are whole-number percentages.
const (
	StatCritRate   = "critical_rate"
	StatCritDamage = "critical_damage"
)

// StatSource is an equipped item as seen by the engine: a read-only stat lookup.
type StatSource interface {
	// Stat returns the integer bonus for name, or 0 when the item has none.
	Stat(name string) int
}

// Gear is a plain equipped-item record.
type Gear struct {
	Name  string
	Slot  string
	Stats map[string]int
}

// Stat returns g.Stats[name]; a nil map yields 0 for every stat.
func (g Gear) Stat(name string) int { return g.Stats[name] }

// Combatant represents one participant in a battle: a player character,
// a regular enemy, or a boss.
//
// Invariant: 0 <= CurrentHP <= MaxHP once mutated through TakeDamage, Heal or SetCurrentHP.
type Combatant struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// Name is unique within a battle and breaks speed ties in turn order.
	Name      string
	Kind      Kind
	MaxHP     int
	CurrentHP int
	Attack    int
	Defense   int
	// Speed drives turn order only, never damage.
	Speed int
	// Equipment is consulted for crit parameters. Only player equipment counts.
	Equipment []StatSource
	// Phases is the boss phase record; nil for non-boss combatants.
	Phases *Phases
}

// IsPlayer reports whether this combatant is a player character.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// IsBoss reports whether this combatant is a boss.
func (c *Combatant) IsBoss() bool { return c.Kind == KindBoss }

// IsAlive reports whether CurrentHP > 0. A nil combatant is never alive.
func (c *Combatant) IsAlive() bool { return c != nil && c.CurrentHP > 0 }

// HPPercent returns floor(CurrentHP*100/MaxHP), or 0 when MaxHP <= 0.
func (c *Combatant) HPPercent() int {
	if c.MaxHP <= 0 {
		return 0
	}
	return c.CurrentHP * 100 / c.MaxHP
}

// SetCurrentHP sets CurrentHP clamped to [0, MaxHP].
//
// Postcondition: 0 <= CurrentHP <= MaxHP.
func (c *Combatant) SetCurrentHP(hp int) {
	c.CurrentHP = clampHP(hp, c.MaxHP)
}

// Heal restores amount HP, capped at MaxHP. Negative amounts are ignored.
//
// Postcondition: 0 <= CurrentHP <= MaxHP.
func (c *Combatant) Heal(amount int) {
	if amount < 0 {
		return
	}
	c.CurrentHP = clampHP(c.CurrentHP+amount, c.MaxHP)
}

// TakeDamage reduces CurrentHP by amount, flooring at zero. For a boss with
// phases enabled the phase threshold is re-evaluated once after the damage
// lands; the returned PhaseChange reports whether a transition happened.
//
// Precondition: amount >= 0; negative amounts are ignored.
// Postcondition: 0 <= CurrentHP <= MaxHP.
func (c *Combatant) TakeDamage(amount int) PhaseChange {
	if amount < 0 {
		return PhaseChange{}
	}
	c.CurrentHP = clampHP(c.CurrentHP-amount, c.MaxHP)
	if c.IsBoss() && c.Phases.due(c.CurrentHP, c.MaxHP) {
		return c.AdvancePhase()
	}
	return PhaseChange{}
}

func clampHP(hp, maxHP int) int {
	if hp > maxHP {
		hp = maxHP
	}
	if hp < 0 {
		hp = 0
	}
	return hp
}
