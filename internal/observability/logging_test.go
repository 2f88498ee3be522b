package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestTurnFields(t *testing.T) {
	target := &combat.Combatant{Name: "Ayla", MaxHP: 100, CurrentHP: 40}
	ev := combat.TurnEvent{
		Kind:    combat.EventSpecial,
		Actor:   &combat.Combatant{Name: "Wyrm"},
		Action:  combat.ActionSkill1,
		Special: combat.SpecialDevastating,
		Hits:    []combat.Hit{{Target: target, Damage: 60, Roll: combat.DamageRoll{Crit: true}}},
		State:   combat.StateInProgress,
	}

	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("turn", TurnFields(ev)...)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "special", fields["event"])
	assert.Equal(t, "Wyrm", fields["actor"])
	assert.Equal(t, int64(60), fields["damage"])
	assert.Equal(t, "SKILL1", fields["action"])
	assert.Equal(t, combat.SpecialDevastating.String(), fields["special"])
	assert.Equal(t, int64(1), fields["crits"])
}

func TestTurnFields_PlainAttackOmitsOptionalFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("turn", TurnFields(combat.TurnEvent{Kind: combat.EventWait})...)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "", fields["actor"])
	assert.NotContains(t, fields, "action")
	assert.NotContains(t, fields, "special")
	assert.NotContains(t, fields, "crits")
}

func TestRosterFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	units := []*combat.Combatant{{Name: "A", CurrentHP: 10}, {Name: "B", CurrentHP: 5}}
	zap.New(core).Info("roster", RosterFields("allies", units)...)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "allies", fields["side"])
	assert.Equal(t, []interface{}{"A", "B"}, fields["units"])
	assert.Equal(t, int64(15), fields["total_hp"])
}
