package script

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/input/prompt"
	"github.com/dshills/cmdbar/internal/logging"
	"github.com/dshills/cmdbar/internal/notify"
)

// DefaultCallTimeout bounds a single call into Lua.
const DefaultCallTimeout = 2 * time.Second

// ModuleName is the global the host functions live in.
const ModuleName = "cmdbar"

// Host is the part of the command bar a script can drive.
type Host interface {
	Info(message string)
	Warning(message string)
	Alert(message string)
	Error(err error)
	Execute(line string)
	SetMode(name string) error
	Mode() mode.Mode
	Question(message string, choices []rune, fn prompt.AnswerFunc) error
	Input(message, defaultAnswer string, fn prompt.AnswerFunc) error
}

type commandHandler struct {
	def command.Definition
	fn  *lua.LFunction
}

// Engine runs a Lua script and dispatches command bar events to the
// handlers it registered.
type Engine struct {
	L    *lua.LState
	host Host
	log  *logging.Logger

	timeout time.Duration
	depth   int

	commands     map[string]commandHandler
	specials     map[rune]*lua.LFunction
	modeHooks    []*lua.LFunction
	settingHooks []*lua.LFunction
	closeHooks   []*lua.LFunction
	closed       bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l.WithComponent("script")
		}
	}
}

// WithCallTimeout bounds each call into Lua. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// New creates an engine with the cmdbar module installed. The host is
// bound later with Bind so that the script can declare its commands
// before the command bar is built.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      logging.Null(),
		timeout:  DefaultCallTimeout,
		commands: make(map[string]commandHandler),
		specials: make(map[rune]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.installModule()
	return e
}

// openSafeLibraries opens only libraries without file system or process
// access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Bind sets the host the script drives.
func (e *Engine) Bind(host Host) {
	e.host = host
}

// DoFile runs the script at path.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	return e.protect(func() error { return e.L.DoFile(path) })
}

// DoString runs Lua code.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrClosed
	}
	return e.protect(func() error { return e.L.DoString(code) })
}

// protect runs fn with the call timeout and panic recovery. Nested calls
// made while Lua is running share the outer deadline.
func (e *Engine) protect(fn func() error) (err error) {
	if e.depth == 0 && e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		e.L.SetContext(ctx)
		defer func() {
			e.L.RemoveContext()
			cancel()
		}()
	}

	e.depth++
	defer func() {
		e.depth--
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call invokes a Lua handler and reports its failure to the host.
func (e *Engine) call(name string, fn *lua.LFunction, args ...lua.LValue) {
	err := e.protect(func() error {
		return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
	if err == nil {
		return
	}

	cerr := &CallError{Handler: name, Err: err}
	e.log.Error("%v", cerr)
	if e.host != nil {
		e.host.Error(cerr)
	}
}

// Definitions returns the commands declared by the script, sorted by name.
func (e *Engine) Definitions() []command.Definition {
	defs := make([]command.Definition, 0, len(e.commands))
	for _, h := range e.commands {
		defs = append(defs, h.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// SpecialIdentifiers returns the special identifiers the script handles.
func (e *Engine) SpecialIdentifiers() []rune {
	ids := make([]rune, 0, len(e.specials))
	for r := range e.specials {
		ids = append(ids, r)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Handle runs the handlers registered for ev. It reports whether a
// command or special command handler took the event; observer hooks do
// not count.
func (e *Engine) Handle(ev notify.Event) bool {
	if e.closed {
		return false
	}

	switch ev.Type {
	case notify.EventCustomCommand:
		h, ok := e.commands[ev.Command.Name]
		if !ok {
			return false
		}
		e.call("command "+ev.Command.Name, h.fn, lua.LString(ev.Command.Args))
		return true

	case notify.EventSpecialCommand:
		fn, ok := e.specials[ev.Special.Identifier]
		if !ok {
			return false
		}
		e.call("special "+string(ev.Special.Identifier), fn, lua.LString(ev.Special.Text), lua.LBool(ev.Special.Final))
		return true

	case notify.EventModeChanged:
		for _, fn := range e.modeHooks {
			e.call("on_mode", fn, lua.LString(ev.Mode.Name()))
		}

	case notify.EventSettingChanged:
		for _, fn := range e.settingHooks {
			e.call("on_setting", fn, lua.LString(ev.Setting.Name), toLua(ev.Setting.Value))
		}

	case notify.EventClose:
		for _, fn := range e.closeHooks {
			e.call("on_close", fn)
		}
	}
	return false
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

func toLua(v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(v)
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case time.Duration:
		return lua.LString(v.String())
	default:
		return lua.LString(fmt.Sprint(v))
	}
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
