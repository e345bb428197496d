package script

import (
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cmdbar/internal/command"
)

func (e *Engine) installModule() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"command":    e.luaCommand,
		"special":    e.luaSpecial,
		"on_mode":    e.luaHook(&e.modeHooks),
		"on_setting": e.luaHook(&e.settingHooks),
		"on_close":   e.luaHook(&e.closeHooks),
		"info":       e.luaMessage(func(h Host, s string) { h.Info(s) }),
		"warning":    e.luaMessage(func(h Host, s string) { h.Warning(s) }),
		"alert":      e.luaMessage(func(h Host, s string) { h.Alert(s) }),
		"error":      e.luaMessage(func(h Host, s string) { h.Error(errors.New(s)) }),
		"execute":    e.luaMessage(func(h Host, s string) { h.Execute(s) }),
		"set_mode":   e.luaSetMode,
		"mode":       e.luaMode,
		"ask":        e.luaAsk,
		"input":      e.luaInput,
	})
	e.L.SetGlobal(ModuleName, mod)
}

// cmdbar.command(name, fn [, {help = "...", arg = "none|required|optional"}])
func (e *Engine) luaCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	opts := L.OptTable(3, L.NewTable())

	if name == "" || strings.ContainsAny(name, " \t") {
		L.ArgError(1, "command name must be a single word")
		return 0
	}

	def := command.Definition{Name: name, Help: lua.LVAsString(opts.RawGetString("help"))}
	switch arg := lua.LVAsString(opts.RawGetString("arg")); arg {
	case "", "none":
		def.Arg = command.ArgNone
	case "required":
		def.Arg = command.ArgRequired
	case "optional":
		def.Arg = command.ArgOptional
	default:
		L.ArgError(3, "arg must be none, required or optional")
		return 0
	}

	e.commands[name] = commandHandler{def: def, fn: fn}
	return 0
}

// cmdbar.special(identifier, fn)
func (e *Engine) luaSpecial(L *lua.LState) int {
	id := L.CheckString(1)
	fn := L.CheckFunction(2)

	r, ok := singleRune(id)
	if !ok || r == ':' {
		L.ArgError(1, "identifier must be one character other than ':'")
		return 0
	}
	e.specials[r] = fn
	return 0
}

func (e *Engine) luaHook(hooks *[]*lua.LFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		*hooks = append(*hooks, L.CheckFunction(1))
		return 0
	}
}

func (e *Engine) checkHost(L *lua.LState) Host {
	if e.host == nil {
		L.RaiseError("%s", ErrNoHost.Error())
	}
	return e.host
}

func (e *Engine) luaMessage(fn func(Host, string)) lua.LGFunction {
	return func(L *lua.LState) int {
		text := L.CheckString(1)
		fn(e.checkHost(L), text)
		return 0
	}
}

// cmdbar.set_mode(name) returns true, or nil and an error message.
func (e *Engine) luaSetMode(L *lua.LState) int {
	name := L.CheckString(1)
	if err := e.checkHost(L).SetMode(name); err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) luaMode(L *lua.LState) int {
	L.Push(lua.LString(e.checkHost(L).Mode().Name()))
	return 1
}

// cmdbar.ask(message, choices, fn) with choices such as "yn".
func (e *Engine) luaAsk(L *lua.LState) int {
	message := L.CheckString(1)
	choices := []rune(L.CheckString(2))
	fn := L.CheckFunction(3)

	if len(choices) == 0 {
		L.ArgError(2, "at least one choice required")
		return 0
	}
	err := e.checkHost(L).Question(message, choices, e.answer("ask", fn))
	return pushResult(L, err)
}

// cmdbar.input(message, default, fn)
func (e *Engine) luaInput(L *lua.LState) int {
	message := L.CheckString(1)
	defaultAnswer := L.OptString(2, "")
	fn := L.CheckFunction(3)

	err := e.checkHost(L).Input(message, defaultAnswer, e.answer("input", fn))
	return pushResult(L, err)
}

func (e *Engine) answer(name string, fn *lua.LFunction) func(string, bool) {
	return func(answer string, ok bool) {
		if e.closed {
			return
		}
		e.call(name, fn, lua.LString(answer), lua.LBool(ok))
	}
}

func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
