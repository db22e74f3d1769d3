// Package script runs Lua code against a redoable string.
//
// Scripts see a single global table, hist, whose functions map one to one
// onto history.Redoable[string]:
//
//	hist.set("draft")
//	hist.save()
//	hist.set("final")
//	hist.undo()          -- hist.get() == "draft"
//	hist.redo()          -- hist.get() == "final"
//
// Only the base, table, string and math libraries are opened. gopher-lua
// states are not goroutine-safe, so a Runner serializes its calls.
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/revert/internal/history"
)

// Runner executes Lua code with the hist module installed.
type Runner struct {
	L *lua.LState

	mu     sync.Mutex
	out    io.Writer
	closed bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput redirects Lua's print to w.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// NewRunner creates a Runner whose scripts drive h.
func NewRunner(h *history.Redoable[string], opts ...RunnerOption) (*Runner, error) {
	r := &Runner{out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	L.SetGlobal("print", L.NewFunction(r.print))

	if err := NewModule(h).Register(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("register %s module: %w", ModuleName, err)
	}

	r.L = L
	return r, nil
}

// openSafeLibraries opens the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// io, os, debug and package stay closed.
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// RunString executes a chunk of Lua code.
// Execution stops with an error when ctx is done.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.run(ctx, func() error {
		return r.L.DoString(code)
	})
}

// RunFile executes the Lua file at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, func() error {
		fn, err := r.L.LoadFile(path)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
}

func (r *Runner) run(ctx context.Context, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	if err := fn(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script interrupted: %w", ctxErr)
		}
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// print writes its arguments separated by tabs, as Lua's print does.
func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

// Close releases the Lua state. Close is idempotent.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}
