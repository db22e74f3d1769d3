package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/revert/internal/history"
)

// ModuleName is the global the module is installed under.
const ModuleName = "hist"

// Module implements the hist API over a redoable string.
type Module struct {
	hist *history.Redoable[string]
}

// NewModule creates a module driving h.
func NewModule(h *history.Redoable[string]) *Module {
	return &Module{hist: h}
}

// Name returns the module name.
func (m *Module) Name() string {
	return ModuleName
}

// Register registers the module into the Lua state.
func (m *Module) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get":       m.get,
		"set":       m.set,
		"save":      m.save,
		"undo":      m.undo,
		"redo":      m.redo,
		"clear":     m.clear,
		"has_save":  m.hasSave,
		"saves":     m.saves,
		"max_saves": m.maxSaves,
		"has_edit":  m.hasEdit,
		"edits":     m.edits,
		"max_edits": m.maxEdits,
		"policy":    m.policy,
	})

	L.SetGlobal(ModuleName, mod)
	return nil
}

// get() -> string
func (m *Module) get(L *lua.LState) int {
	L.Push(lua.LString(m.hist.Get()))
	return 1
}

// set(text)
// Replaces the current value without touching either stack.
func (m *Module) set(L *lua.LState) int {
	m.hist.Set(L.CheckString(1))
	return 0
}

// save() -> bool
// Returns false when a full stack had an entry overwritten.
func (m *Module) save(L *lua.LState) int {
	L.Push(lua.LBool(m.hist.Save()))
	return 1
}

// undo() -> bool
func (m *Module) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.hist.Undo()))
	return 1
}

// redo() -> bool
func (m *Module) redo(L *lua.LState) int {
	L.Push(lua.LBool(m.hist.Redo()))
	return 1
}

// clear()
// Drops both stacks and keeps the current value.
func (m *Module) clear(L *lua.LState) int {
	m.hist.Clear()
	return 0
}

func (m *Module) hasSave(L *lua.LState) int {
	L.Push(lua.LBool(m.hist.HasSave()))
	return 1
}

func (m *Module) saves(L *lua.LState) int {
	L.Push(lua.LNumber(m.hist.Saves()))
	return 1
}

func (m *Module) maxSaves(L *lua.LState) int {
	L.Push(lua.LNumber(m.hist.MaxSaves()))
	return 1
}

func (m *Module) hasEdit(L *lua.LState) int {
	L.Push(lua.LBool(m.hist.HasEdit()))
	return 1
}

func (m *Module) edits(L *lua.LState) int {
	L.Push(lua.LNumber(m.hist.Edits()))
	return 1
}

func (m *Module) maxEdits(L *lua.LState) int {
	L.Push(lua.LNumber(m.hist.MaxEdits()))
	return 1
}

// policy() -> name, capacity
func (m *Module) policy(L *lua.LState) int {
	p := m.hist.Policy()
	L.Push(lua.LString(p.Name()))
	L.Push(lua.LNumber(p.Capacity()))
	return 2
}
