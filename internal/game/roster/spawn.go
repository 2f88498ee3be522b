package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Elite stat bonuses applied at spawn time.
const (
	EliteHPBonus      = 50
	EliteAttackBonus  = 10
	EliteDefenseBonus = 5
	EliteSpeedBonus   = 3
)

// Spawner creates combatants from catalog templates.
type Spawner struct {
	catalog *Catalog
	buff    combat.PhaseBuff
	src     dice.Source
	scripts ai.ScriptCaller
}

// NewSpawner creates a Spawner. buff is granted to bosses on each phase
// transition; src drives the AI controllers of spawned enemies.
//
// Precondition: catalog and src must be non-nil.
func NewSpawner(catalog *Catalog, buff combat.PhaseBuff, src dice.Source) *Spawner {
	if catalog == nil {
		panic("roster.NewSpawner: catalog must not be nil")
	}
	if src == nil {
		panic("roster.NewSpawner: src must not be nil")
	}
	return &Spawner{catalog: catalog, buff: buff, src: src}
}

// WithScripts attaches the script host used by templates whose AI profile
// names a targeting script.
func (s *Spawner) WithScripts(caller ai.ScriptCaller) *Spawner {
	s.scripts = caller
	return s
}

// Spawn creates a full-health combatant from the template registered under templateID.
//
// Postcondition: the combatant has a fresh unique ID; returns an error if the template is unknown.
func (s *Spawner) Spawn(templateID string) (*combat.Combatant, error) {
	t, ok := s.catalog.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("roster: unknown template %q", templateID)
	}
	return NewCombatant(uuid.NewString(), t, s.buff), nil
}

// NewCombatant builds a combatant with the given id from t.
//
// Precondition: t has passed Validate.
// Postcondition: CurrentHP equals MaxHP.
func NewCombatant(id string, t *Template, buff combat.PhaseBuff) *combat.Combatant {
	c := &combat.Combatant{
		ID:      id,
		Name:    t.Name,
		Kind:    t.CombatKind(),
		MaxHP:   t.MaxHP,
		Attack:  t.Attack,
		Defense: t.Defense,
		Speed:   t.Speed,
	}
	if t.Elite {
		c.MaxHP += EliteHPBonus
		c.Attack += EliteAttackBonus
		c.Defense += EliteDefenseBonus
		c.Speed += EliteSpeedBonus
	}
	c.CurrentHP = c.MaxHP
	for _, g := range t.Equipment {
		stats := make(map[string]int, len(g.Stats))
		for k, v := range g.Stats {
			stats[k] = v
		}
		c.Equipment = append(c.Equipment, combat.Gear{Name: g.Name, Slot: g.Slot, Stats: stats})
	}
	if t.Kind == KindBoss {
		c.Phases = combat.NewPhases(t.PhaseMessageList(), buff)
	}
	return c
}

// Party is a spawned encounter: both sides plus the AI controllers of every
// non-player unit.
type Party struct {
	Allies    []*combat.Combatant
	Opponents []*combat.Combatant
	AI        *ai.Registry
}

// SpawnEncounter spawns every unit enc names. Templates fielded more than
// once get numbered names so turn-order tie-breaks stay deterministic.
// Non-player units are registered with a controller built from their AI
// profile, or the default profile when the template has none.
//
// Postcondition: returns an error if any template ID is unknown or a profile
// names a script the attached host has not loaded.
func (s *Spawner) SpawnEncounter(enc *Encounter) (*Party, error) {
	counts := make(map[string]int)
	for _, id := range enc.Allies {
		counts[id]++
	}
	for _, id := range enc.Opponents {
		counts[id]++
	}

	p := &Party{AI: ai.NewRegistry()}
	seen := make(map[string]int)
	spawnSide := func(ids []string) ([]*combat.Combatant, error) {
		var out []*combat.Combatant
		for _, id := range ids {
			c, err := s.Spawn(id)
			if err != nil {
				return nil, fmt.Errorf("encounter %q: %w", enc.Name, err)
			}
			if counts[id] > 1 {
				seen[id]++
				c.Name = fmt.Sprintf("%s %d", c.Name, seen[id])
			}
			if !c.IsPlayer() {
				t, _ := s.catalog.Template(id)
				profile := ai.DefaultProfile()
				if t.AI != nil {
					profile = *t.AI
				}
				ctrl := ai.NewControllerFromProfile(c, profile, s.src)
				if profile.Script != "" {
					if s.scripts == nil || !s.scripts.HasScript(profile.Script) {
						return nil, fmt.Errorf("encounter %q: template %q: script %q is not loaded", enc.Name, id, profile.Script)
					}
					ctrl.SetScript(s.scripts, profile.Script)
				}
				if err := p.AI.Register(ctrl); err != nil {
					return nil, fmt.Errorf("encounter %q: %w", enc.Name, err)
				}
			}
			out = append(out, c)
		}
		return out, nil
	}

	var err error
	if p.Allies, err = spawnSide(enc.Allies); err != nil {
		return nil, err
	}
	if p.Opponents, err = spawnSide(enc.Opponents); err != nil {
		return nil, err
	}
	return p, nil
}
