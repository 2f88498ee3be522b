// Package observability provides logging utilities for the battle simulator.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// TurnFields renders a resolved turn as log fields.
func TurnFields(ev combat.TurnEvent) []zap.Field {
	actor := ""
	if ev.Actor != nil {
		actor = ev.Actor.Name
	}
	fields := []zap.Field{
		zap.String("event", ev.Kind.String()),
		zap.String("actor", actor),
		zap.Int("damage", ev.TotalDamage()),
		zap.String("state", ev.State.String()),
	}
	if ev.Action != combat.ActionUnknown {
		fields = append(fields, zap.String("action", ev.Action.String()))
	}
	if ev.Kind == combat.EventSpecial {
		fields = append(fields, zap.String("special", ev.Special.String()))
	}
	crits := 0
	for _, h := range ev.Hits {
		if h.Roll.Crit {
			crits++
		}
	}
	if crits > 0 {
		fields = append(fields, zap.Int("crits", crits))
	}
	return fields
}

// RosterFields summarizes the units on one side of a battle.
func RosterFields(side string, units []*combat.Combatant) []zap.Field {
	names := make([]string, 0, len(units))
	hp := 0
	for _, u := range units {
		names = append(names, u.Name)
		hp += u.CurrentHP
	}
	return []zap.Field{
		zap.String("side", side),
		zap.Strings("units", names),
		zap.Int("total_hp", hp),
	}
}
