package completion

import (
	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/settings"
)

// Completer identifiers.
const (
	// DefaultID completes command names.
	DefaultID = "default"

	// NoneID disables completion.
	NoneID = ""

	// SetID completes setting names after "set ".
	SetID = "set"
)

// Candidate is one completion proposal.
type Candidate struct {
	Text string
	Help string
}

// Completer produces the candidates for the text typed so far.
// Candidates are filtered by the View.
type Completer interface {
	Candidates(input string) []Candidate
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(input string) []Candidate

// Candidates implements Completer.
func (f CompleterFunc) Candidates(input string) []Candidate {
	return f(input)
}

// CommandCompleter proposes built-in actions and host commands.
type CommandCompleter struct {
	candidates []Candidate
}

// NewCommandCompleter creates a completer for the given host command
// definitions and every built-in application action.
func NewCommandCompleter(defs []command.Definition) *CommandCompleter {
	c := &CommandCompleter{}
	for _, def := range defs {
		c.candidates = append(c.candidates, Candidate{Text: def.Name, Help: def.Help})
	}
	for _, action := range command.AppActions() {
		c.candidates = append(c.candidates, Candidate{Text: action.Name()})
	}
	c.candidates = append(c.candidates, Candidate{Text: "set", Help: "Change a setting"})
	return c
}

// Candidates implements Completer.
func (c *CommandCompleter) Candidates(string) []Candidate {
	return c.candidates
}

// SettingLister lists setting definitions.
type SettingLister interface {
	Settings() []*settings.Setting
}

// SettingCompleter proposes setting names.
type SettingCompleter struct {
	settings SettingLister
}

// NewSettingCompleter creates a completer over the settings of s.
func NewSettingCompleter(s SettingLister) *SettingCompleter {
	return &SettingCompleter{settings: s}
}

// Candidates implements Completer.
func (c *SettingCompleter) Candidates(string) []Candidate {
	defs := c.settings.Settings()
	out := make([]Candidate, 0, len(defs))
	for _, def := range defs {
		out = append(out, Candidate{Text: def.Name, Help: def.Description})
	}
	return out
}
