// Package config provides Viper-based configuration loading for the battle simulator.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BattleConfig holds the tunable numbers of the damage model, boss phases and the driver loop.
type BattleConfig struct {
	DefenseFactor float64 `mapstructure:"defense_factor"`
	Variance      float64 `mapstructure:"variance"`
	EnemyCritRate float64 `mapstructure:"enemy_crit_rate"`
	BaseCritBonus float64 `mapstructure:"base_crit_bonus"`
	// SkillMultipliers maps a skill index ("1", "2") to its damage multiplier.
	SkillMultipliers      map[string]float64 `mapstructure:"skill_multipliers"`
	BossSpecialChance     float64            `mapstructure:"boss_special_chance"`
	PhaseAttackBuff       int                `mapstructure:"phase_attack_buff"`
	PhaseDefenseBuff      int                `mapstructure:"phase_defense_buff"`
	AreaMultiplier        float64            `mapstructure:"area_multiplier"`
	DevastatingMultiplier float64            `mapstructure:"devastating_multiplier"`
	PowerfulMultiplier    float64            `mapstructure:"powerful_multiplier"`
	// MaxTurns caps how many turns the driver resolves before giving up.
	MaxTurns int `mapstructure:"max_turns"`
}

// Rules converts the battle settings into combat.Rules.
//
// Precondition: b has passed validation, so every skill multiplier key is an integer.
func (b BattleConfig) Rules() combat.Rules {
	mults := make(map[int]float64, len(b.SkillMultipliers))
	for k, v := range b.SkillMultipliers {
		if i, err := strconv.Atoi(k); err == nil {
			mults[i] = v
		}
	}
	return combat.Rules{
		DefenseFactor:         b.DefenseFactor,
		Variance:              b.Variance,
		EnemyCritRate:         b.EnemyCritRate,
		BaseCritBonus:         b.BaseCritBonus,
		SkillMultipliers:      mults,
		BossSpecialChance:     b.BossSpecialChance,
		AreaMultiplier:        b.AreaMultiplier,
		DevastatingMultiplier: b.DevastatingMultiplier,
		PowerfulMultiplier:    b.PowerfulMultiplier,
	}
}

// PhaseBuff returns the stat buff bosses gain on each phase transition.
func (b BattleConfig) PhaseBuff() combat.PhaseBuff {
	return combat.PhaseBuff{Attack: b.PhaseAttackBuff, Defense: b.PhaseDefenseBuff}
}

// ContentConfig locates the YAML content the simulator loads.
type ContentConfig struct {
	// RosterDir holds one unit template per *.yaml file.
	RosterDir string `mapstructure:"roster_dir"`
	// Encounter is the path of the encounter file to fight.
	Encounter string `mapstructure:"encounter"`
}

// ScriptingConfig locates the Lua targeting scripts.
type ScriptingConfig struct {
	// Dir holds one script per *.lua file. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps the Lua opcodes of each script call; 0 uses the host default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// RNGConfig selects the random source.
type RNGConfig struct {
	// Seed seeds a reproducible source; 0 selects the crypto-backed source.
	Seed int64 `mapstructure:"seed"`
	// LogDraws logs every random draw at debug level.
	LogDraws bool `mapstructure:"log_draws"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Battle    BattleConfig    `mapstructure:"battle"`
	Content   ContentConfig   `mapstructure:"content"`
	RNG       RNGConfig       `mapstructure:"rng"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.DefenseFactor < 0 {
		errs = append(errs, fmt.Sprintf("battle.defense_factor must be >= 0, got %v", b.DefenseFactor))
	}
	if b.Variance < 0 || b.Variance >= 1 {
		errs = append(errs, fmt.Sprintf("battle.variance must be in [0, 1), got %v", b.Variance))
	}
	for _, p := range []struct {
		key string
		val float64
	}{
		{"battle.enemy_crit_rate", b.EnemyCritRate},
		{"battle.boss_special_chance", b.BossSpecialChance},
	} {
		if p.val < 0 || p.val > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1], got %v", p.key, p.val))
		}
	}
	if b.BaseCritBonus < 0 {
		errs = append(errs, fmt.Sprintf("battle.base_crit_bonus must be >= 0, got %v", b.BaseCritBonus))
	}
	keys := make([]string, 0, len(b.SkillMultipliers))
	for k := range b.SkillMultipliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := strconv.Atoi(k); err != nil {
			errs = append(errs, fmt.Sprintf("battle.skill_multipliers key %q must be an integer skill index", k))
		}
		if b.SkillMultipliers[k] < 0 {
			errs = append(errs, fmt.Sprintf("battle.skill_multipliers[%s] must be >= 0", k))
		}
	}
	if b.PhaseAttackBuff < 0 || b.PhaseDefenseBuff < 0 {
		errs = append(errs, "battle.phase_attack_buff and battle.phase_defense_buff must be >= 0")
	}
	if b.AreaMultiplier < 0 || b.DevastatingMultiplier < 0 || b.PowerfulMultiplier < 0 {
		errs = append(errs, "battle special attack multipliers must be >= 0")
	}
	if b.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("battle.max_turns must be >= 1, got %d", b.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.RosterDir == "" {
		return errors.New("content.roster_dir must not be empty")
	}
	if c.Encounter == "" {
		return errors.New("content.encounter must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	rules := combat.DefaultRules()
	v.SetDefault("battle.defense_factor", rules.DefenseFactor)
	v.SetDefault("battle.variance", rules.Variance)
	v.SetDefault("battle.enemy_crit_rate", rules.EnemyCritRate)
	v.SetDefault("battle.base_crit_bonus", rules.BaseCritBonus)
	v.SetDefault("battle.skill_multipliers", map[string]float64{"1": 1.5, "2": 2.0})
	v.SetDefault("battle.boss_special_chance", rules.BossSpecialChance)
	buff := combat.DefaultPhaseBuff()
	v.SetDefault("battle.phase_attack_buff", buff.Attack)
	v.SetDefault("battle.phase_defense_buff", buff.Defense)
	v.SetDefault("battle.area_multiplier", rules.AreaMultiplier)
	v.SetDefault("battle.devastating_multiplier", rules.DevastatingMultiplier)
	v.SetDefault("battle.powerful_multiplier", rules.PowerfulMultiplier)
	v.SetDefault("battle.max_turns", 500)

	v.SetDefault("content.roster_dir", "content/roster")
	v.SetDefault("content.encounter", "content/encounters/gauntlet.yaml")

	v.SetDefault("rng.seed", 0)
	v.SetDefault("rng.log_draws", false)

	v.SetDefault("scripting.dir", "content/scripts")
	v.SetDefault("scripting.instruction_limit", 0)
}
