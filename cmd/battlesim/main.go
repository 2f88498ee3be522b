// Package main provides the battle simulator binary: it loads a roster and an
// encounter, fights the battle to completion and prints the battle log.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/roster"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and SKIRMISH_ environment only")
	encounter := flag.String("encounter", "", "encounter YAML file; overrides content.encounter")
	seed := flag.Int64("seed", 0, "random seed; overrides rng.seed when non-zero")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *encounter != "" {
		cfg.Content.Encounter = *encounter
	}
	if *seed != 0 {
		cfg.RNG.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := run(ctx, cfg, logger, os.Stdout)
	if err != nil {
		logger.Fatal("running battle", zap.Error(err))
	}
	logger.Info("battle simulator finished",
		zap.String("result", state.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// newSource builds the random source rng selects.
func newSource(rng config.RNGConfig, logger *zap.Logger) dice.Source {
	var src dice.Source
	if rng.Seed == 0 {
		src = dice.NewCryptoSource()
	} else {
		src = dice.NewSeededSource(rng.Seed)
	}
	if rng.LogDraws {
		src = dice.NewLoggedSource(src, logger)
	}
	return src
}

// errTurnLimit reports a battle still in progress after battle.max_turns turns.
var errTurnLimit = errors.New("turn limit reached")

// run loads content per cfg, fights the configured encounter and writes each
// turn's narrative to out.
//
// Postcondition: returns the final battle state; errTurnLimit wraps the error
// when the battle did not end within cfg.Battle.MaxTurns turns.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) (combat.State, error) {
	templates, err := roster.LoadTemplates(cfg.Content.RosterDir)
	if err != nil {
		return combat.StatePreparing, fmt.Errorf("loading roster: %w", err)
	}
	catalog, err := roster.NewCatalog(templates)
	if err != nil {
		return combat.StatePreparing, err
	}
	enc, err := roster.LoadEncounter(cfg.Content.Encounter)
	if err != nil {
		return combat.StatePreparing, err
	}
	logger.Info("content loaded",
		zap.Int("templates", catalog.Len()),
		zap.String("encounter", enc.Name),
	)

	src := newSource(cfg.RNG, logger)
	spawner := roster.NewSpawner(catalog, cfg.Battle.PhaseBuff(), src)
	if cfg.Scripting.Dir != "" {
		scripts := scripting.NewManager(src, logger, cfg.Scripting.InstructionLimit)
		defer scripts.Close()
		if err := scripts.LoadDir(cfg.Scripting.Dir); err != nil {
			return combat.StatePreparing, fmt.Errorf("loading scripts: %w", err)
		}
		logger.Info("scripts loaded", zap.Strings("scripts", scripts.Scripts()))
		spawner.WithScripts(scripts)
	}
	party, err := spawner.SpawnEncounter(enc)
	if err != nil {
		return combat.StatePreparing, err
	}
	logger.Info("roster spawned", observability.RosterFields("allies", party.Allies)...)
	logger.Info("roster spawned", observability.RosterFields("opponents", party.Opponents)...)

	engine := combat.NewEngine(cfg.Battle.Rules(), src, logger)
	battle := engine.StartBattle(party.Allies, party.Opponents)
	defer func() {
		if err := engine.EndBattle(battle.ID); err != nil {
			logger.Warn("ending battle", zap.Error(err))
		}
	}()
	fmt.Fprintf(out, "== %s ==\n", enc.Name)

	for turn := 0; turn < cfg.Battle.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return battle.State(), err
		}
		ev := battle.ResolveTurnWith(party.AI)
		if line := ev.Narrative(); line != "" {
			fmt.Fprintln(out, line)
		}
		logger.Debug("turn", observability.TurnFields(ev)...)
		if battle.CheckBattleEnd() {
			fmt.Fprintf(out, "== battle %s after %d turns ==\n", battle.State(), battle.Turns())
			return battle.State(), nil
		}
	}
	return battle.State(), fmt.Errorf("encounter %q: %w after %d turns", enc.Name, errTurnLimit, cfg.Battle.MaxTurns)
}
