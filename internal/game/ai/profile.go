package ai

import (
	"fmt"
	"strings"
)

// Profile is the AI section of a unit template.
type Profile struct {
	// Aggression is 0 (cautious), 1 (balanced) or 2 (reckless).
	Aggression int `yaml:"aggression"`
	// Behavior lists targeting strategy names; only the first is used.
	Behavior []string `yaml:"behavior"`
	// Script names a targeting script that chooses before Behavior applies.
	Script string `yaml:"script"`
}

// DefaultProfile returns a balanced profile targeting the highest threat.
func DefaultProfile() Profile {
	return Profile{Aggression: AggressionBalanced, Behavior: []string{StrategyHighestThreat}}
}

// Validate checks the aggression range and that every behaviour names a registered strategy.
//
// Postcondition: returns nil, or one error listing every violation joined by "; ".
func (p Profile) Validate() error {
	var errs []string
	if p.Aggression < AggressionCautious || p.Aggression > AggressionReckless {
		errs = append(errs, fmt.Sprintf("aggression must be between %d and %d, got %d",
			AggressionCautious, AggressionReckless, p.Aggression))
	}
	for _, b := range p.Behavior {
		if _, ok := StrategyFor(b); !ok {
			errs = append(errs, fmt.Sprintf("unknown behavior %q (known: %s)", b, strings.Join(StrategyNames(), ", ")))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ai.Profile: %s", strings.Join(errs, "; "))
	}
	return nil
}
