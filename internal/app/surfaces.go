package app

import (
	"context"
	"time"

	"github.com/dshills/cmdbar/internal/completion"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/settings"
)

// Entry is the single-line text entry of the command bar.
// SetText never reports back through HandleEntryChanged; only edits made
// by the user do.
type Entry interface {
	Show()
	Hide()
	Shown() bool

	Text() string
	SetText(text string)

	DeleteNextChar()
	DeleteNextWord()
	DeletePreviousWord()
	End()
	NextChar()
	NextWord()
	PreviousChar()
	PreviousWord()
	SmartHome()
}

// MessageKind selects the colors of the status bar message.
type MessageKind uint8

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageWarning
	MessageAlert
	MessageError
	MessageQuestion
)

func (k MessageKind) String() string {
	switch k {
	case MessageNone:
		return "none"
	case MessageInfo:
		return "info"
	case MessageWarning:
		return "warning"
	case MessageAlert:
		return "alert"
	case MessageError:
		return "error"
	case MessageQuestion:
		return "question"
	default:
		return "unknown"
	}
}

// StatusBar shows the labels and the message of the command bar.
type StatusBar interface {
	SetModeLabel(label string)
	SetShortcutLabel(label string)
	SetIdentifier(identifier rune)

	// SetMessage shows text with the colors of kind. MessageNone with an
	// empty text restores the normal colors.
	SetMessage(kind MessageKind, text string)
	Message() string
}

// Completion is the completion list below the entry.
type Completion interface {
	Register(id string, c completion.Completer)
	SetCompleter(id, text string)
	Update(m mode.Mode, text string)
	SelectNext() completion.Selection
	SelectPrevious() completion.Selection
	Show()
	Hide()
}

// Loop runs one turn of the host event loop.
type Loop interface {
	// Step blocks until at least one event was handled and returns false
	// once the loop has stopped.
	Step(ctx context.Context) bool
}

// Scheduler runs functions later on the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Settings converts and applies setting values.
type Settings interface {
	ToVariant(name, raw string) (settings.Variant, error)
	Apply(v settings.Variant)
}

// Surfaces groups the host collaborators of an App.
type Surfaces struct {
	Entry      Entry
	Status     StatusBar
	Completion Completion
	Loop       Loop
	Scheduler  Scheduler
}

func (s Surfaces) validate() error {
	switch {
	case s.Entry == nil:
		return NewOperationError("validate", "entry", ErrMissingSurface)
	case s.Status == nil:
		return NewOperationError("validate", "status bar", ErrMissingSurface)
	case s.Completion == nil:
		return NewOperationError("validate", "completion", ErrMissingSurface)
	case s.Loop == nil:
		return NewOperationError("validate", "loop", ErrMissingSurface)
	case s.Scheduler == nil:
		return NewOperationError("validate", "scheduler", ErrMissingSurface)
	}
	return nil
}

// barView drives the surfaces on behalf of the mode controller.
type barView struct {
	s Surfaces
}

func (v barView) SetModeLabel(label string)     { v.s.Status.SetModeLabel(label) }
func (v barView) SetShortcutLabel(label string) { v.s.Status.SetShortcutLabel(label) }
func (v barView) SetIdentifier(r rune)          { v.s.Status.SetIdentifier(r) }
func (v barView) HideEntry()                    { v.s.Entry.Hide() }
func (v barView) HideCompletion()               { v.s.Completion.Hide() }

// entryTarget runs built-in actions against the entry and completion list.
type entryTarget struct {
	app *App
}

func (t entryTarget) CompleteNext()       { t.app.complete(t.app.surfaces.Completion.SelectNext()) }
func (t entryTarget) CompletePrevious()   { t.app.complete(t.app.surfaces.Completion.SelectPrevious()) }
func (t entryTarget) DeleteNextChar()     { t.app.surfaces.Entry.DeleteNextChar() }
func (t entryTarget) DeleteNextWord()     { t.app.surfaces.Entry.DeleteNextWord() }
func (t entryTarget) DeletePreviousWord() { t.app.surfaces.Entry.DeletePreviousWord() }
func (t entryTarget) End()                { t.app.surfaces.Entry.End() }
func (t entryTarget) NextChar()           { t.app.surfaces.Entry.NextChar() }
func (t entryTarget) NextWord()           { t.app.surfaces.Entry.NextWord() }
func (t entryTarget) PreviousChar()       { t.app.surfaces.Entry.PreviousChar() }
func (t entryTarget) PreviousWord()       { t.app.surfaces.Entry.PreviousWord() }
func (t entryTarget) SmartHome()          { t.app.surfaces.Entry.SmartHome() }
func (t entryTarget) UpdateCompletions()  { t.app.updateCompletions() }
