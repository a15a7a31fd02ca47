package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// EmitFunc receives events raised by scripts through the Lua emit function.
type EmitFunc func(name string, magnitude float64, entity uint64)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game
// loop).
//
// Scripts see:
//
//	emit(name, magnitude [, entity])  -- queue an event
//	log(message)                      -- debug log line
//	API_VERSION                       -- integer
//
// and may define handler functions called as fn(ctx), where ctx is a table
// {command=, magnitude=, entity=}, plus an optional global on_tick(dt_seconds).
type Engine struct {
	vm   *lua.LState
	log  *zap.Logger
	emit EmitFunc
}

// NewEngine creates a Lua engine and loads all scripts from scriptsDir:
// core/ first, then the remaining subdirectories, then files in scriptsDir
// itself. A missing directory loads nothing.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("emit", vm.NewFunction(e.luaEmit))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "core")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load core scripts: %w", err)
	}
	entries, err := os.ReadDir(scriptsDir)
	if err != nil && !os.IsNotExist(err) {
		vm.Close()
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "core" {
			continue
		}
		if err := e.loadDir(filepath.Join(scriptsDir, entry.Name())); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", entry.Name(), err)
		}
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SetEmitter installs the sink for emit() calls. Without one, emit is a
// no-op.
func (e *Engine) SetEmitter(fn EmitFunc) { e.emit = fn }

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasFunction reports whether a global function called name exists.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// CommandContext is handed to script handlers.
type CommandContext struct {
	Command   string
	Magnitude float64
	Entity    uint64
}

// CallHandler calls the global function name with a ctx table. Script errors
// are returned, not logged and swallowed.
func (e *Engine) CallHandler(name string, ctx CommandContext) error {
	fn, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("lua handler %s not found", name)
	}
	t := e.vm.NewTable()
	t.RawSetString("command", lua.LString(ctx.Command))
	t.RawSetString("magnitude", lua.LNumber(ctx.Magnitude))
	t.RawSetString("entity", lua.LNumber(ctx.Entity))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, t); err != nil {
		return fmt.Errorf("lua handler %s: %w", name, err)
	}
	return nil
}

// Tick calls on_tick(dt_seconds) when the scripts define it.
func (e *Engine) Tick(dt time.Duration) error {
	fn, ok := e.vm.GetGlobal("on_tick").(*lua.LFunction)
	if !ok {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt.Seconds())); err != nil {
		return fmt.Errorf("lua on_tick: %w", err)
	}
	return nil
}

func (e *Engine) luaEmit(L *lua.LState) int {
	name := L.CheckString(1)
	magnitude := float64(L.OptNumber(2, 0))
	entity := uint64(L.OptNumber(3, 0))
	if e.emit != nil {
		e.emit(name, magnitude, entity)
	}
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Debug("lua", zap.String("message", L.CheckString(1)))
	return 0
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
