package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/config"
	"github.com/dshills/cmdbar/internal/logging"
	"github.com/dshills/cmdbar/internal/notify"
	"github.com/dshills/cmdbar/internal/settings"
)

// defaultBindings run before the rc file, which may override them.
const defaultBindings = `
map c <Tab> complete-next
map c <S-Tab> complete-previous
map c <C-n> complete-next
map c <C-p> complete-previous
map c <C-a> entry-smart-home
map c <C-e> entry-end
map c <C-b> entry-previous-char
map c <C-f> entry-next-char
map c <C-d> entry-delete-next-char
map c <C-w> entry-delete-previous-word
map c <C-k> entry-delete-next-word
map n ZZ :quit<Enter>
map n o :echo 
`

var builtinCommands = []command.Definition{
	{Name: "quit", Help: "Leave cmdbar"},
	{Name: "echo", Help: "Print the arguments", Arg: command.ArgOptional},
	{Name: "settings", Help: "Print the current settings"},
}

// builtinSettings are available without an options file.
var builtinSettings = []settings.Setting{
	{Name: "hint-chars", Type: settings.TypeString, Default: "asdfghjkl", Description: "Characters used for hints"},
	{Name: "scroll-step", Type: settings.TypeInt, Default: int64(3), Description: "Lines per scroll", Minimum: settings.MinValue(1)},
	{Name: "smooth-scroll", Type: settings.TypeBool, Default: false, Description: "Animate scrolling"},
	{Name: "theme", Type: settings.TypeEnum, Default: "dark", Description: "Color theme", Enum: []string{"dark", "light"}},
}

// declareSettings returns the built-in settings plus one setting for each
// option default the built-ins do not cover, typed after its value.
func declareSettings(cfg *config.Config) []settings.Setting {
	defs := append([]settings.Setting(nil), builtinSettings...)
	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		known[d.Name] = true
	}

	names := make([]string, 0, len(cfg.Settings))
	for name := range cfg.Settings {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		defs = append(defs, settings.Setting{Name: name, Type: settingType(cfg.Settings[name])})
	}
	return defs
}

func settingType(v any) settings.Type {
	switch v.(type) {
	case bool:
		return settings.TypeBool
	case int, int64:
		return settings.TypeInt
	case float64:
		return settings.TypeFloat
	default:
		return settings.TypeString
	}
}

// printer is the output area of the host.
type printer interface {
	Print(line string)
	Close()
}

// handler runs script handlers for an event and reports whether one took it.
type handler interface {
	Handle(ev notify.Event) bool
}

// router sends command bar events to the script first and handles the
// built-in commands itself.
type router struct {
	host     printer
	engine   handler
	settings *settings.Store
	log      *logging.Logger
}

func (r *router) observe(ev notify.Event) {
	if r.engine != nil && r.engine.Handle(ev) {
		return
	}

	switch ev.Type {
	case notify.EventCustomCommand:
		r.customCommand(ev.Command)
	case notify.EventSpecialCommand:
		if ev.Special.Final {
			r.host.Print(fmt.Sprintf("%c%s", ev.Special.Identifier, ev.Special.Text))
		}
	case notify.EventSettingChanged:
		r.log.Info("set %s", ev.Setting)
	case notify.EventModeChanged:
		r.log.Debug("mode %s", ev.Mode)
	case notify.EventClose:
		r.log.Info("closing")
	}
}

func (r *router) customCommand(cmd command.Custom) {
	switch cmd.Name {
	case "quit":
		r.host.Close()
	case "echo":
		r.host.Print(cmd.Args)
	case "settings":
		for _, line := range r.settingLines() {
			r.host.Print(line)
		}
	default:
		r.host.Print(strings.TrimSpace(cmd.Name + " " + cmd.Args))
	}
}

func (r *router) settingLines() []string {
	if r.settings == nil {
		return nil
	}
	var lines []string
	for _, s := range r.settings.Settings() {
		v, _ := r.settings.Get(s.Name)
		lines = append(lines, fmt.Sprintf("%s = %v", s.Name, v))
	}
	return lines
}
