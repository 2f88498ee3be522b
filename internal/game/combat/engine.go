package combat

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Engine hosts every active Battle, keyed by battle ID.
// All methods are safe for concurrent use; each Battle itself must still be
// driven by a single goroutine.
type Engine struct {
	mu      sync.RWMutex
	battles map[string]*Battle
	rules   Rules
	src     dice.Source
	logger  *zap.Logger
}

// NewEngine creates an empty Engine whose battles share rules, src and logger.
//
// Precondition: src must be non-nil and safe for concurrent use. A nil logger disables logging.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(rules Rules, src dice.Source, logger *zap.Logger) *Engine {
	if src == nil {
		panic("combat.NewEngine: src must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		battles: make(map[string]*Battle),
		rules:   rules,
		src:     src,
		logger:  logger,
	}
}

// StartBattle creates a battle with a fresh ID, initializes it with allies
// and opponents and registers it.
//
// Postcondition: the returned battle is in StateInProgress and retrievable via Battle.
func (e *Engine) StartBattle(allies, opponents []*Combatant) *Battle {
	b := NewBattle(uuid.NewString(), e.rules, e.src, e.logger)
	b.InitializeBattle(allies, opponents)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.battles[b.ID] = b
	return b
}

// Battle returns the battle registered under id.
//
// Postcondition: Returns (battle, true) if found, or (nil, false) otherwise.
func (e *Engine) Battle(id string) (*Battle, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.battles[id]
	return b, ok
}

// EndBattle removes the battle registered under id.
//
// Postcondition: Returns an error if no battle is registered under id.
func (e *Engine) EndBattle(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.battles[id]; !ok {
		return fmt.Errorf("no active battle %q", id)
	}
	delete(e.battles, id)
	return nil
}

// Active returns the number of registered battles.
func (e *Engine) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.battles)
}

// Sweep removes every battle that has reached a terminal state and returns how many were removed.
func (e *Engine) Sweep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for id, b := range e.battles {
		if b.State().IsTerminal() {
			delete(e.battles, id)
			n++
		}
	}
	return n
}
