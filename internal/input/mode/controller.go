package mode

import (
	"github.com/dshills/cmdbar/internal/input/key"
)

// DefaultIdentifier is the identifier of the regular command line.
const DefaultIdentifier = ':'

// View is the part of the display the controller drives.
type View interface {
	// SetModeLabel shows the label of the active mode.
	SetModeLabel(label string)

	// SetShortcutLabel shows the keys accumulated so far.
	SetShortcutLabel(label string)

	// SetIdentifier shows the identifier in front of the entry.
	SetIdentifier(identifier rune)

	HideEntry()
	HideCompletion()
}

// Listener is notified of mode changes.
type Listener interface {
	ModeChanged(m Mode)
}

// Controller owns the current mode, the command identifier and the
// shortcut buffer.
type Controller struct {
	view     View
	listener Listener

	current    Mode
	identifier rune
	shortcut   key.Sequence
}

// NewController creates a controller in Normal mode.
// Either collaborator may be nil.
func NewController(view View, listener Listener) *Controller {
	if view == nil {
		view = nopView{}
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Controller{
		view:       view,
		listener:   listener,
		current:    Normal,
		identifier: DefaultIdentifier,
	}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Enter makes m the active mode, updates the mode label and notifies the
// listener.
func (c *Controller) Enter(m Mode) {
	c.current = m
	c.view.SetModeLabel(m.Label())
	c.listener.ModeChanged(m)
}

// Identifier returns the identifier recorded when command mode was entered.
func (c *Controller) Identifier() rune {
	return c.identifier
}

// SetIdentifier records the identifier of the command being typed.
func (c *Controller) SetIdentifier(r rune) {
	c.identifier = r
	c.view.SetIdentifier(r)
}

// ReturnToNormal hides the entry and completion, enters Normal mode and
// restores the default identifier.
func (c *Controller) ReturnToNormal() {
	c.view.HideEntry()
	c.view.HideCompletion()
	c.Enter(Normal)
	c.SetIdentifier(DefaultIdentifier)
}

// Push appends k to the shortcut buffer.
func (c *Controller) Push(k key.Key) {
	c.shortcut = append(c.shortcut, k)
	c.view.SetShortcutLabel(c.shortcut.String())
}

// Shortcut returns a copy of the shortcut buffer.
func (c *Controller) Shortcut() key.Sequence {
	return c.shortcut.Clone()
}

// ClearShortcut empties the shortcut buffer.
func (c *Controller) ClearShortcut() {
	c.shortcut = nil
	c.view.SetShortcutLabel("")
}

type nopView struct{}

func (nopView) SetModeLabel(string)     {}
func (nopView) SetShortcutLabel(string) {}
func (nopView) SetIdentifier(rune)      {}
func (nopView) HideEntry()              {}
func (nopView) HideCompletion()         {}

type nopListener struct{}

func (nopListener) ModeChanged(Mode) {}
