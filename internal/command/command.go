// Package command defines the typed commands produced by the command-line
// parser and applied by the dispatcher.
package command

import (
	"fmt"
	"strings"

	"github.com/dshills/cmdbar/internal/input/key"
)

// Command is one parsed command. The set of implementations is closed:
// App, Custom, Map, Unmap and Set.
type Command interface {
	fmt.Stringer
	command()
}

// App runs a built-in application action.
type App struct {
	Action AppAction
}

// Custom is a host command forwarded verbatim.
type Custom struct {
	Name string
	Args string
}

// Map binds Keys to Action in the mode registered under Prefix.
type Map struct {
	Prefix string
	Keys   key.Sequence
	Action string
}

// Unmap removes the binding of Keys in the mode registered under Prefix.
type Unmap struct {
	Prefix string
	Keys   key.Sequence
}

// Set changes a setting from its raw textual value.
type Set struct {
	Name  string
	Value string
}

func (App) command()    {}
func (Custom) command() {}
func (Map) command()    {}
func (Unmap) command()  {}
func (Set) command()    {}

func (c App) String() string {
	return c.Action.Name()
}

func (c Custom) String() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

func (c Map) String() string {
	return fmt.Sprintf("%smap %s %s", c.Prefix, c.Keys, c.Action)
}

func (c Unmap) String() string {
	return fmt.Sprintf("%sunmap %s", c.Prefix, c.Keys)
}

func (c Set) String() string {
	return "set " + c.Name + " " + c.Value
}

// ArgKind describes the argument a custom command takes.
type ArgKind uint8

const (
	// ArgNone means the command takes no argument.
	ArgNone ArgKind = iota
	// ArgRequired means the command needs an argument.
	ArgRequired
	// ArgOptional means the argument may be omitted.
	ArgOptional
)

// Definition declares a custom command the parser accepts.
type Definition struct {
	Name string
	Help string
	Arg  ArgKind
}

// ParseResult is a batch of commands and the errors found while parsing
// it. The two lists are independent: an error does not invalidate the
// commands parsed before or after it.
type ParseResult struct {
	Commands []Command
	Errors   []error
}

// Append adds the contents of other to r.
func (r *ParseResult) Append(other ParseResult) {
	r.Commands = append(r.Commands, other.Commands...)
	r.Errors = append(r.Errors, other.Errors...)
}

// Empty returns true if the result has neither commands nor errors.
func (r ParseResult) Empty() bool {
	return len(r.Commands) == 0 && len(r.Errors) == 0
}

// String lists the commands one per line.
func (r ParseResult) String() string {
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}
