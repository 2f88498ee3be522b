package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Encounter names the templates fighting on each side of a battle.
// A template ID may repeat to field several copies.
type Encounter struct {
	Name      string   `yaml:"name"`
	Allies    []string `yaml:"allies"`
	Opponents []string `yaml:"opponents"`
}

// Validate checks that both sides are non-empty and fit the grid.
//
// Postcondition: returns nil iff Name is non-empty and each side lists between 1 and combat.GridSlots IDs.
func (e *Encounter) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("encounter: name must not be empty")
	}
	if len(e.Allies) == 0 || len(e.Allies) > combat.GridSlots {
		return fmt.Errorf("encounter %q: allies must list 1 to %d templates, got %d", e.Name, combat.GridSlots, len(e.Allies))
	}
	if len(e.Opponents) == 0 || len(e.Opponents) > combat.GridSlots {
		return fmt.Errorf("encounter %q: opponents must list 1 to %d templates, got %d", e.Name, combat.GridSlots, len(e.Opponents))
	}
	return nil
}

// LoadEncounterFromBytes parses and validates an encounter.
func LoadEncounterFromBytes(data []byte) (*Encounter, error) {
	var enc Encounter
	if err := yaml.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("parsing encounter YAML: %w", err)
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &enc, nil
}

// LoadEncounter reads and validates the encounter file at path.
func LoadEncounter(path string) (*Encounter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading encounter %q: %w", path, err)
	}
	enc, err := LoadEncounterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return enc, nil
}
