package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// SelectTargetHook is the Lua global a targeting script defines:
//
//	function select_target(self, pool) return index end
//
// where pool is a 1-based array of combatant tables and index picks one of them.
const SelectTargetHook = "select_target"

// Manager owns one sandboxed LState per script and exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the same script are serialized.
type Manager struct {
	mu     sync.Mutex
	states map[string]*lua.LState
	limit  int
	src    dice.Source
	logger *zap.Logger
}

// NewManager creates a Manager. src backs engine.random; instLimit caps the
// opcodes of every load and hook call (0 uses DefaultInstructionLimit).
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(src dice.Source, logger *zap.Logger, instLimit int) *Manager {
	if src == nil {
		panic("scripting.NewManager: src must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		limit:  instLimit,
		src:    src,
		logger: logger,
	}
}

// LoadDir loads every *.lua file in dir into its own VM, named after the file
// without its extension.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error on the first Lua load failure; scripts loaded before it stay registered.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scripting: reading %q: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		if err := m.LoadString(name, string(data)); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	return nil
}

// LoadString loads source into a fresh VM registered as name, replacing any
// script previously registered under that name.
//
// Precondition: name must be non-empty.
func (m *Manager) LoadString(name, source string) error {
	L := NewSandboxedState()
	m.RegisterModules(L, name)
	if err := withBudget(L, m.limit, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: executing %q: %w", name, err)
	}

	m.mu.Lock()
	if old, ok := m.states[name]; ok {
		old.Close()
	}
	m.states[name] = L
	m.mu.Unlock()
	m.logger.Debug("script loaded", zap.String("script", name))
	return nil
}

// HasScript reports whether a script is registered under name.
func (m *Manager) HasScript(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.states[name]
	return ok
}

// Scripts returns the registered script names in sorted order.
func (m *Manager) Scripts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.states))
	for n := range m.states {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, L := range m.states {
		L.Close()
		delete(m.states, name)
	}
}

// CallHook calls the named Lua global function in script's VM. Returns
// (LNil, nil) if the script or hook is not defined. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn level and
// never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(script, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[script]
	if !ok {
		m.logger.Info("scripting: no VM for script",
			zap.String("script", script),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	return m.callLocked(L, script, hook, args...), nil
}

// callLocked runs hook in L. m.mu must be held.
func (m *Manager) callLocked(L *lua.LState, script, hook string, args ...lua.LValue) lua.LValue {
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	err := withBudget(L, m.limit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", script),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// SelectTarget asks script to pick one of pool on behalf of self.
//
// Postcondition: returns (i, true) with 0 <= i < len(pool) when the script
// returned a valid 1-based index; (0, false) otherwise.
func (m *Manager) SelectTarget(script string, self *combat.Combatant, pool []*combat.Combatant) (int, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	L, ok := m.states[script]
	if !ok {
		return 0, false
	}

	arr := L.NewTable()
	for i, c := range pool {
		arr.RawSetInt(i+1, combatantTable(L, c))
	}
	ret := m.callLocked(L, script, SelectTargetHook, combatantTable(L, self), arr)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, false
	}
	idx := int(n)
	if float64(idx) != float64(n) || idx < 1 || idx > len(pool) {
		m.logger.Warn("scripting: target index out of range",
			zap.String("script", script),
			zap.Float64("index", float64(n)),
			zap.Int("pool", len(pool)),
		)
		return 0, false
	}
	return idx - 1, true
}

// combatantTable snapshots c as a Lua table. A nil c yields nil.
func combatantTable(L *lua.LState, c *combat.Combatant) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(c.ID))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "kind", lua.LString(c.Kind.String()))
	L.SetField(t, "hp", lua.LNumber(c.CurrentHP))
	L.SetField(t, "max_hp", lua.LNumber(c.MaxHP))
	L.SetField(t, "attack", lua.LNumber(c.Attack))
	L.SetField(t, "defense", lua.LNumber(c.Defense))
	L.SetField(t, "speed", lua.LNumber(c.Speed))
	return t
}
