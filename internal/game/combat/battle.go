package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// State is the lifecycle state of a Battle.
type State int

const (
	StatePreparing State = iota
	StateInProgress
	StateWon
	StateLost
	StateDrawn
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StatePreparing:
		return "preparing"
	case StateInProgress:
		return "in progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateDrawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further turns can be resolved.
func (s State) IsTerminal() bool {
	return s == StateWon || s == StateLost || s == StateDrawn
}

// Grid dimensions. Row 0 holds the allies, row 1 the opponents.
const (
	RowAllies    = 0
	RowOpponents = 1
	GridRows     = 2
	GridSlots    = 4
)

// Grid is the battlefield: two rows of four optional slots.
type Grid [GridRows][GridSlots]*Combatant

// Battle owns one battlefield, its turn order and its lifecycle state.
// A Battle is not safe for concurrent use; one driver resolves its turns
// sequentially and polls State to know when to stop.
type Battle struct {
	// ID identifies the battle within an Engine.
	ID string

	rules  Rules
	src    dice.Source
	damage *DamageModel
	logger *zap.Logger

	grid   Grid
	order  []*Combatant
	cursor int
	state  State
	turns  int
}

// NewBattle creates a Battle in StatePreparing.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewBattle(id string, rules Rules, src dice.Source, logger *zap.Logger) *Battle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Battle{
		ID:     id,
		rules:  rules,
		src:    src,
		damage: NewDamageModel(src, rules),
		logger: logger.With(zap.String("battle_id", id)),
		state:  StatePreparing,
	}
}

// State returns the current lifecycle state.
func (b *Battle) State() State { return b.state }

// Grid returns a copy of the battlefield slots.
func (b *Battle) Grid() Grid { return b.grid }

// TurnOrder returns a copy of the current turn order snapshot.
func (b *Battle) TurnOrder() []*Combatant {
	cp := make([]*Combatant, len(b.order))
	copy(cp, b.order)
	return cp
}

// Cursor returns the index of the next unit to act within TurnOrder.
func (b *Battle) Cursor() int { return b.cursor }

// Turns returns how many turn slots have been consumed so far.
func (b *Battle) Turns() int { return b.turns }

// InitializeBattle clears the grid, places allies left to right in row 0 and
// opponents right to left in row 1, computes the turn order and moves the
// battle to StateInProgress. Members beyond the fourth on either side are
// silently dropped.
//
// Postcondition: State() == StateInProgress; Cursor() == 0.
func (b *Battle) InitializeBattle(allies, opponents []*Combatant) {
	b.grid = Grid{}
	for i := 0; i < len(allies) && i < GridSlots; i++ {
		b.grid[RowAllies][i] = allies[i]
	}
	col := GridSlots - 1
	for i := 0; i < len(opponents) && col >= 0; i, col = i+1, col-1 {
		b.grid[RowOpponents][col] = opponents[i]
	}
	if len(allies) > GridSlots || len(opponents) > GridSlots {
		b.logger.Warn("roster truncated to grid size",
			zap.Int("allies", len(allies)),
			zap.Int("opponents", len(opponents)),
			zap.Int("slots", GridSlots),
		)
	}

	b.CalculateTurnOrder()
	b.cursor = 0
	b.turns = 0
	b.state = StateInProgress
	b.logger.Debug("battle initialized", zap.Int("units", len(b.order)))
}

// CalculateTurnOrder rebuilds the turn order from scratch over every living
// grid occupant: speed descending, then name ascending.
//
// Postcondition: TurnOrder() contains only living combatants and is sorted per SortTurnOrder.
func (b *Battle) CalculateTurnOrder() {
	b.order = b.order[:0]
	for row := 0; row < GridRows; row++ {
		for slot := 0; slot < GridSlots; slot++ {
			if u := b.grid[row][slot]; u.IsAlive() {
				b.order = append(b.order, u)
			}
		}
	}
	SortTurnOrder(b.order)
	if b.cursor >= len(b.order) {
		b.cursor = 0
	}
}

// CheckBattleEnd scans the grid and moves the battle into a terminal state
// when one side has no living members: StateWon when only allies remain,
// StateLost when only opponents remain, StateDrawn when nobody does.
// A terminal state is never overwritten; a battle that has not started is never ended.
//
// Postcondition: returns true iff State().IsTerminal().
func (b *Battle) CheckBattleEnd() bool {
	if b.state.IsTerminal() {
		return true
	}
	if b.state != StateInProgress {
		return false
	}
	alliesAlive := b.rowAlive(RowAllies)
	opponentsAlive := b.rowAlive(RowOpponents)
	switch {
	case alliesAlive && !opponentsAlive:
		b.state = StateWon
	case !alliesAlive && opponentsAlive:
		b.state = StateLost
	case !alliesAlive && !opponentsAlive:
		b.state = StateDrawn
	default:
		return false
	}
	b.logger.Info("battle ended",
		zap.String("state", b.state.String()),
		zap.Int("turns", b.turns),
	)
	return true
}

// ResolveTurn resolves the turn of the unit at the cursor using the default
// targeting rule: the first living combatant in the opposite row, scanning
// slots in ascending order. Dead units consume their slot without acting.
// The call is a no-op unless the battle is in progress.
func (b *Battle) ResolveTurn() TurnEvent {
	return b.resolve(nil)
}

// ResolveTurnWith resolves the next turn like ResolveTurn, except that
// non-player units act on the decision of d. A nil d behaves like ResolveTurn.
func (b *Battle) ResolveTurnWith(d Decider) TurnEvent {
	return b.resolve(d)
}

func (b *Battle) resolve(d Decider) TurnEvent {
	if b.state != StateInProgress {
		return TurnEvent{Kind: EventNone, State: b.state}
	}
	if len(b.order) == 0 {
		b.CalculateTurnOrder()
		b.cursor = 0
		if len(b.order) == 0 {
			return TurnEvent{Kind: EventNone, State: b.state}
		}
	}

	acting := b.order[b.cursor]
	if !acting.IsAlive() {
		b.advance()
		return b.emit(TurnEvent{Kind: EventSkip, Actor: acting})
	}

	var target *Combatant
	action := ActionUnknown
	if d != nil && !acting.IsPlayer() {
		action, target = d.Decide(acting, b.livingOpponents(acting))
		switch action {
		case ActionSkill1:
			ev := b.UseSkill(acting, 1)
			ev.Action = action
			if ev.Kind == EventNone {
				b.CheckBattleEnd()
				ev.State = b.state
			}
			if !b.state.IsTerminal() {
				b.advance()
			}
			return ev
		case ActionDefend:
			b.advance()
			return b.emit(TurnEvent{Kind: EventDefend, Actor: acting, Action: action})
		case ActionAttack:
			if !target.IsAlive() || b.rowOf(target) != b.opposingRow(acting) {
				target = nil
			}
		default:
			b.advance()
			return b.emit(TurnEvent{Kind: EventWait, Actor: acting, Action: action})
		}
	}

	if target == nil {
		target = b.firstAliveOpponent(acting)
	}
	if target == nil {
		if !b.CheckBattleEnd() {
			b.advance()
		}
		return b.emit(TurnEvent{Kind: EventNoTarget, Actor: acting, Action: action})
	}

	hit := b.strike(acting, target, 1.0)
	if !b.CheckBattleEnd() {
		b.advance()
	}
	return b.emit(TurnEvent{
		Kind:       EventAttack,
		Actor:      acting,
		Action:     action,
		Multiplier: 1.0,
		Hits:       []Hit{hit},
	})
}

// UseSkill makes unit cast a skill against the first living combatant in the
// opposite row. Skill 1 deals 1.5x and skill 2 deals 2.0x damage; any other
// index is a plain 1.0x attack. A boss may instead unleash its phase special
// attack. UseSkill does not move the turn cursor.
// The call is a no-op unless the battle is in progress and unit is alive.
func (b *Battle) UseSkill(unit *Combatant, skillIndex int) TurnEvent {
	if b.state != StateInProgress || !unit.IsAlive() {
		return TurnEvent{Kind: EventNone, Actor: unit, State: b.state}
	}
	target := b.firstAliveOpponent(unit)
	if target == nil {
		return TurnEvent{Kind: EventNone, Actor: unit, State: b.state}
	}
	if unit.IsBoss() && dice.Chance(b.src, b.rules.BossSpecialChance) {
		ev := b.special(unit, target)
		b.CheckBattleEnd()
		return b.emit(ev)
	}

	mult := b.rules.SkillMultiplier(skillIndex)
	hit := b.strike(unit, target, mult)
	b.CheckBattleEnd()
	return b.emit(TurnEvent{
		Kind:       EventSkill,
		Actor:      unit,
		Skill:      skillIndex,
		Multiplier: mult,
		Hits:       []Hit{hit},
	})
}

// special resolves a boss special attack chosen by the boss's current phase.
func (b *Battle) special(boss, target *Combatant) TurnEvent {
	phase := 1
	if boss.Phases != nil {
		phase = boss.Phases.Current
	}
	ev := TurnEvent{Kind: EventSpecial, Actor: boss, Special: SpecialFor(phase)}
	switch ev.Special {
	case SpecialArea:
		ev.Multiplier = b.rules.AreaMultiplier
		for _, t := range b.livingOpponents(boss) {
			ev.Hits = append(ev.Hits, b.strike(boss, t, ev.Multiplier))
		}
	case SpecialReinforcements:
		b.logger.Info("boss calls reinforcements", zap.String("boss", boss.Name))
	case SpecialDevastating:
		ev.Multiplier = b.rules.DevastatingMultiplier
		ev.Hits = []Hit{b.strike(boss, target, ev.Multiplier)}
	default:
		ev.Multiplier = b.rules.PowerfulMultiplier
		ev.Hits = []Hit{b.strike(boss, target, ev.Multiplier)}
	}
	return ev
}

// strike rolls damage for attacker against target, scales it by mult and
// applies it through TakeDamage so boss phase thresholds are evaluated.
func (b *Battle) strike(attacker, target *Combatant, mult float64) Hit {
	chance, bonus := CritParams(attacker, b.rules)
	roll := b.damage.Roll(attacker.Attack, target.Defense, chance, bonus)
	dmg := int(math.Floor(float64(roll.Damage) * mult))
	if dmg < 0 {
		dmg = 0
	}
	phase := target.TakeDamage(dmg)
	switch {
	case phase.Advanced():
		b.logger.Info("boss phase transition",
			zap.String("boss", target.Name),
			zap.Int("from", phase.From),
			zap.Int("to", phase.To),
			zap.Int("healed", phase.Healed),
			zap.String("message", phase.Message),
		)
	case phase.Final:
		b.logger.Info("boss is on final phase", zap.String("boss", target.Name))
	}
	return Hit{Target: target, Roll: roll, Damage: dmg, Phase: phase}
}

// advance consumes the current turn slot, recomputing the order once it is exhausted.
func (b *Battle) advance() {
	b.turns++
	b.cursor++
	if b.cursor >= len(b.order) {
		b.CalculateTurnOrder()
		b.cursor = 0
	}
}

func (b *Battle) emit(ev TurnEvent) TurnEvent {
	ev.State = b.state
	if ce := b.logger.Check(zap.DebugLevel, "turn resolved"); ce != nil {
		actor := ""
		if ev.Actor != nil {
			actor = ev.Actor.Name
		}
		ce.Write(
			zap.String("kind", ev.Kind.String()),
			zap.String("actor", actor),
			zap.Int("damage", ev.TotalDamage()),
			zap.String("state", ev.State.String()),
			zap.String("narrative", ev.Narrative()),
		)
	}
	return ev
}

// rowOf returns the grid row holding c, or -1 if c is not on the grid.
func (b *Battle) rowOf(c *Combatant) int {
	for row := 0; row < GridRows; row++ {
		for slot := 0; slot < GridSlots; slot++ {
			if b.grid[row][slot] == c {
				return row
			}
		}
	}
	return -1
}

// opposingRow returns the row c fights against. Units off the grid fall back
// to their kind: players face the opponents' row, everyone else the allies'.
func (b *Battle) opposingRow(c *Combatant) int {
	row := b.rowOf(c)
	if row < 0 {
		if c.IsPlayer() {
			return RowOpponents
		}
		return RowAllies
	}
	return 1 - row
}

func (b *Battle) firstAliveOpponent(c *Combatant) *Combatant {
	row := b.opposingRow(c)
	for slot := 0; slot < GridSlots; slot++ {
		if u := b.grid[row][slot]; u.IsAlive() {
			return u
		}
	}
	return nil
}

func (b *Battle) livingOpponents(c *Combatant) []*Combatant {
	row := b.opposingRow(c)
	var out []*Combatant
	for slot := 0; slot < GridSlots; slot++ {
		if u := b.grid[row][slot]; u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

func (b *Battle) rowAlive(row int) bool {
	for slot := 0; slot < GridSlots; slot++ {
		if b.grid[row][slot].IsAlive() {
			return true
		}
	}
	return false
}
