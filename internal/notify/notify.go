// Package notify delivers command bar events to the host application.
//
// The Notifier implements Sink and fans each event out to its observers,
// in subscription order, on the caller's goroutine.
package notify

import (
	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/settings"
)

// EventType represents the kind of event.
type EventType int

const (
	// EventModeChanged indicates the active mode changed.
	EventModeChanged EventType = iota

	// EventCustomCommand carries a host command.
	EventCustomCommand

	// EventSpecialCommand carries text typed after a special identifier.
	EventSpecialCommand

	// EventSettingChanged indicates a setting was applied.
	EventSettingChanged

	// EventClose indicates the window was closed.
	EventClose
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventModeChanged:
		return "mode-changed"
	case EventCustomCommand:
		return "custom-command"
	case EventSpecialCommand:
		return "special-command"
	case EventSettingChanged:
		return "setting-changed"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// SpecialCommand is the text typed after a special identifier such as '/'.
type SpecialCommand struct {
	Identifier rune
	Text       string

	// Final is false for the incremental updates sent on each key release.
	Final bool
}

// Event is a notification sent to the host.
type Event struct {
	Type EventType

	Mode    mode.Mode        // EventModeChanged
	Command command.Custom   // EventCustomCommand
	Special SpecialCommand   // EventSpecialCommand
	Setting settings.Variant // EventSettingChanged
}

// Sink receives the events of the command bar.
type Sink interface {
	ModeChanged(m mode.Mode)
	CustomCommand(cmd command.Custom)
	SpecialCommand(cmd SpecialCommand)
	SettingChanged(v settings.Variant)
	AppClose()
}

// Observer is called for each event.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

type entry struct {
	id       uint64
	filter   map[EventType]bool
	observer Observer
}

// Notifier manages event subscriptions.
type Notifier struct {
	observers []entry
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for events of the given types, or for
// all events when no type is given.
func (n *Notifier) Subscribe(observer Observer, types ...EventType) *Subscription {
	id := n.nextID
	n.nextID++

	e := entry{id: id, observer: observer}
	if len(types) > 0 {
		e.filter = make(map[EventType]bool, len(types))
		for _, t := range types {
			e.filter[t] = true
		}
	}
	n.observers = append(n.observers, e)

	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of active observers.
func (n *Notifier) ObserverCount() int {
	return len(n.observers)
}

// Notify sends an event to all relevant observers.
func (n *Notifier) Notify(event Event) {
	// Snapshot so observers may subscribe or unsubscribe while notified
	observers := make([]entry, len(n.observers))
	copy(observers, n.observers)

	for _, e := range observers {
		if e.filter != nil && !e.filter[event.Type] {
			continue
		}
		e.observer(event)
	}
}

// ModeChanged implements Sink.
func (n *Notifier) ModeChanged(m mode.Mode) {
	n.Notify(Event{Type: EventModeChanged, Mode: m})
}

// CustomCommand implements Sink.
func (n *Notifier) CustomCommand(cmd command.Custom) {
	n.Notify(Event{Type: EventCustomCommand, Command: cmd})
}

// SpecialCommand implements Sink.
func (n *Notifier) SpecialCommand(cmd SpecialCommand) {
	n.Notify(Event{Type: EventSpecialCommand, Special: cmd})
}

// SettingChanged implements Sink.
func (n *Notifier) SettingChanged(v settings.Variant) {
	n.Notify(Event{Type: EventSettingChanged, Setting: v})
}

// AppClose implements Sink.
func (n *Notifier) AppClose() {
	n.Notify(Event{Type: EventClose})
}
