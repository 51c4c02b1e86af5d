package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtin embed.FS

// Engine wraps a single gopher-lua VM holding the tunable curves.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine, loads the built-in scripts and then every
// .lua file in overrideDir (if set), so overrides redefine built-in functions.
func NewEngine(overrideDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadFS(builtin, "scripts"); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load builtin scripts: %w", err)
	}
	if overrideDir != "" {
		if err := e.loadDir(overrideDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load override scripts: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		name := path.Join(dir, entry.Name())
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", name))
	}
	return nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// XPThreshold calls Lua xp_threshold(level). ok is false when the function is
// missing, fails or returns a non-positive value.
func (e *Engine) XPThreshold(level int) (int, bool) {
	v, ok := e.callNumber("xp_threshold", float64(level))
	if !ok || v < 1 {
		return 0, false
	}
	return int(math.Ceil(v)), true
}

// Multipliers scale a freshly spawned enemy's stats.
type Multipliers struct {
	HP     float64
	Speed  float64
	Damage float64
}

// MinuteScaling calls Lua minute_scaling(minute).
func (e *Engine) MinuteScaling(minute int) (Multipliers, bool) {
	fn := e.vm.GetGlobal("minute_scaling")
	if fn == lua.LNil {
		return Multipliers{}, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(minute)); err != nil {
		e.log.Error("lua minute_scaling error", zap.Error(err))
		return Multipliers{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua minute_scaling returned non-table")
		return Multipliers{}, false
	}
	m := Multipliers{
		HP:     lNum(rt, "hp"),
		Speed:  lNum(rt, "speed"),
		Damage: lNum(rt, "damage"),
	}
	if m.HP <= 0 || m.Speed <= 0 || m.Damage <= 0 {
		e.log.Error("lua minute_scaling returned non-positive multiplier",
			zap.Int("minute", minute), zap.Float64("hp", m.HP),
			zap.Float64("speed", m.Speed), zap.Float64("damage", m.Damage))
		return Multipliers{}, false
	}
	return m, true
}

// --- Lua helpers ---

// lNum reads a numeric field from a Lua table.
func lNum(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// callNumber calls a Lua function with numeric args and returns a numeric result.
func (e *Engine) callNumber(name string, args ...float64) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0, false
	}

	var argv [4]lua.LValue
	lArgs := argv[:0]
	for _, a := range args {
		lArgs = append(lArgs, lua.LNumber(a))
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
