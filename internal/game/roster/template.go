// Package roster loads unit templates and encounters from YAML and spawns
// combat-ready units from them.
package roster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Template kinds.
const (
	KindPlayer = "player"
	KindEnemy  = "enemy"
	KindBoss   = "boss"
)

// DefaultBossPhases is the phase count of a boss template that names neither phases nor messages.
const DefaultBossPhases = 3

// GearSpec is one equipped item on a player template.
type GearSpec struct {
	Name  string         `yaml:"name"`
	Slot  string         `yaml:"slot"`
	Stats map[string]int `yaml:"stats"`
}

// Template defines a reusable unit archetype loaded from YAML.
type Template struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	MaxHP   int    `yaml:"max_hp"`
	Attack  int    `yaml:"attack"`
	Defense int    `yaml:"defense"`
	Speed   int    `yaml:"speed"`
	// Elite enemies spawn with boosted stats.
	Elite     bool       `yaml:"elite"`
	Equipment []GearSpec `yaml:"equipment"`
	// Phases is the boss phase count; ignored when PhaseMessages is set.
	Phases        int         `yaml:"phases"`
	PhaseMessages []string    `yaml:"phase_messages"`
	AI            *ai.Profile `yaml:"ai"`
}

// CombatKind maps the template kind to its combat.Kind.
//
// Precondition: t has passed Validate.
func (t *Template) CombatKind() combat.Kind {
	switch t.Kind {
	case KindBoss:
		return combat.KindBoss
	case KindEnemy:
		return combat.KindEnemy
	default:
		return combat.KindPlayer
	}
}

// PhaseMessageList returns the boss's phase messages, generating
// "<name> Phase N form." entries when none are configured.
func (t *Template) PhaseMessageList() []string {
	if len(t.PhaseMessages) > 0 {
		return append([]string(nil), t.PhaseMessages...)
	}
	n := t.Phases
	if n == 0 {
		n = DefaultBossPhases
	}
	return combat.DefaultPhaseMessages(t.Name, n)
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Kind is known,
// MaxHP >= 1, Attack, Defense and Speed are >= 0, only enemies are elite,
// only players carry equipment, only bosses declare phases and the AI
// profile, if any, is valid. Returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("roster template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("roster template %q: name must not be empty", t.ID)
	}
	switch t.Kind {
	case KindPlayer, KindEnemy, KindBoss:
	default:
		return fmt.Errorf("roster template %q: kind %q must be one of %s, %s, %s", t.ID, t.Kind, KindPlayer, KindEnemy, KindBoss)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("roster template %q: max_hp must be >= 1", t.ID)
	}
	if t.Attack < 0 || t.Defense < 0 || t.Speed < 0 {
		return fmt.Errorf("roster template %q: attack, defense and speed must be >= 0", t.ID)
	}
	if t.Elite && t.Kind != KindEnemy {
		return fmt.Errorf("roster template %q: only enemies can be elite", t.ID)
	}
	if len(t.Equipment) > 0 && t.Kind != KindPlayer {
		return fmt.Errorf("roster template %q: only players carry equipment", t.ID)
	}
	for i, g := range t.Equipment {
		if g.Name == "" {
			return fmt.Errorf("roster template %q: equipment[%d] name must not be empty", t.ID, i)
		}
	}
	if t.Kind != KindBoss && (t.Phases != 0 || len(t.PhaseMessages) > 0) {
		return fmt.Errorf("roster template %q: only bosses have phases", t.ID)
	}
	if t.Phases < 0 {
		return fmt.Errorf("roster template %q: phases must be >= 0", t.ID)
	}
	if t.AI != nil {
		if t.Kind == KindPlayer {
			return fmt.Errorf("roster template %q: players are not AI controlled", t.ID)
		}
		if err := t.AI.Validate(); err != nil {
			return fmt.Errorf("roster template %q: %w", t.ID, err)
		}
	}
	return nil
}

// LoadTemplateFromBytes parses a single template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
