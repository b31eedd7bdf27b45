package gravity

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

// IntervalFunc is the Lua global a gravity script must define.
// It receives the level and returns milliseconds.
const IntervalFunc = "tick_interval"

// ErrNoIntervalFunc is returned when a script does not define IntervalFunc.
var ErrNoIntervalFunc = errors.New("gravity: script does not define " + IntervalFunc)

// LuaPolicy asks a Lua script for the interval of each level.
// Results are cached per level; a failing call falls back to another policy.
// Not safe for concurrent use: the VM belongs to the game loop.
type LuaPolicy struct {
	vm       *lua.LState
	fn       lua.LValue
	fallback Policy
	log      *log.Logger
	cache    map[int]time.Duration
}

// NewLuaPolicyFile loads a gravity script from disk.
func NewLuaPolicyFile(path string, fallback Policy, logger *log.Logger) (*LuaPolicy, error) {
	return newLuaPolicy(func(vm *lua.LState) error { return vm.DoFile(path) }, path, fallback, logger)
}

// NewLuaPolicyString loads a gravity script from source.
func NewLuaPolicyString(src string, fallback Policy, logger *log.Logger) (*LuaPolicy, error) {
	return newLuaPolicy(func(vm *lua.LState) error { return vm.DoString(src) }, "<inline>", fallback, logger)
}

func newLuaPolicy(load func(*lua.LState) error, name string, fallback Policy, logger *log.Logger) (*LuaPolicy, error) {
	if fallback == nil {
		fallback = DefaultStepped()
	}
	if logger == nil {
		logger = log.Default()
	}

	vm := lua.NewState()
	vm.SetGlobal("MS_PER_SECOND", lua.LNumber(1000))

	if err := load(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("gravity: load %s: %w", name, err)
	}

	fn := vm.GetGlobal(IntervalFunc)
	if fn.Type() != lua.LTFunction {
		vm.Close()
		return nil, fmt.Errorf("%w (%s)", ErrNoIntervalFunc, name)
	}

	logger.Debug("loaded gravity script", "script", name)
	return &LuaPolicy{
		vm:       vm,
		fn:       fn,
		fallback: fallback,
		log:      logger,
		cache:    make(map[int]time.Duration),
	}, nil
}

// Interval implements Policy.
func (p *LuaPolicy) Interval(level int) time.Duration {
	if d, ok := p.cache[level]; ok {
		return d
	}
	d, err := p.call(level)
	if err != nil {
		d = p.fallback.Interval(level)
		p.log.Warn("gravity script failed, using fallback", "level", level, "interval", d, "err", err)
	}
	p.cache[level] = d
	return d
}

func (p *LuaPolicy) call(level int) (time.Duration, error) {
	if err := p.vm.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(level)); err != nil {
		return 0, err
	}
	ret := p.vm.Get(-1)
	p.vm.Pop(1)

	ms, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s returned %s, want number", IntervalFunc, ret.Type())
	}
	v := float64(ms)
	if math.IsNaN(v) || v <= 0 || v >= maxIntervalMs {
		return 0, fmt.Errorf("%s returned %v, want a positive number of milliseconds", IntervalFunc, v)
	}
	return time.Duration(float64(ms) * float64(time.Millisecond)), nil
}

// maxIntervalMs is the longest interval a time.Duration can hold.
const maxIntervalMs = float64(math.MaxInt64) / float64(time.Millisecond)

// Close releases the Lua VM.
func (p *LuaPolicy) Close() {
	p.vm.Close()
}
