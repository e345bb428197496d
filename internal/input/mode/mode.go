package mode

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind enumerates the closed set of mode variants.
type Kind uint8

const (
	// KindNormal is the navigation mode.
	KindNormal Kind = iota
	// KindCommand is the command-line mode.
	KindCommand
	// KindInput waits for a non-blocking answer.
	KindInput
	// KindBlockingInput waits for an answer while the caller pumps the event loop.
	KindBlockingInput
	// KindCustom is a host-declared mode.
	KindCustom
)

// Built-in mode names.
const (
	NameNormal        = "normal"
	NameCommand       = "command"
	NameInput         = "input"
	NameBlockingInput = "blocking-input"
)

// Mode is the interaction context governing how keys are interpreted.
// Modes are comparable values; two custom modes are equal when their
// names are equal.
type Mode struct {
	kind Kind
	name string
}

// Built-in modes.
var (
	Normal        = Mode{kind: KindNormal}
	Command       = Mode{kind: KindCommand}
	Input         = Mode{kind: KindInput}
	BlockingInput = Mode{kind: KindBlockingInput}
)

// Custom creates a host-declared mode.
// The name must be non-empty, free of whitespace, and distinct from the
// built-in mode names.
func Custom(name string) (Mode, error) {
	if name == "" {
		return Mode{}, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return Mode{}, fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	switch name {
	case NameNormal, NameCommand, NameInput, NameBlockingInput:
		return Mode{}, fmt.Errorf("%w: %q is a built-in mode", ErrInvalidName, name)
	}
	return Mode{kind: KindCustom, name: name}, nil
}

// Kind returns the mode variant.
func (m Mode) Kind() Kind {
	return m.kind
}

// Name returns the mode name used in configuration and host events.
func (m Mode) Name() string {
	switch m.kind {
	case KindNormal:
		return NameNormal
	case KindCommand:
		return NameCommand
	case KindInput:
		return NameInput
	case KindBlockingInput:
		return NameBlockingInput
	default:
		return m.name
	}
}

// Label returns the text displayed in the mode label.
// Built-in modes have no label.
func (m Mode) Label() string {
	if m.kind == KindCustom {
		return m.name
	}
	return ""
}

// Mapping returns the mode whose mapping table applies while m is active.
// Input modes share the command mode's bindings.
func (m Mode) Mapping() Mode {
	if m.IsInput() {
		return Command
	}
	return m
}

// IsInput returns true for Input and BlockingInput.
func (m Mode) IsInput() bool {
	return m.kind == KindInput || m.kind == KindBlockingInput
}

// IsCustom returns true for host-declared modes.
func (m Mode) IsCustom() bool {
	return m.kind == KindCustom
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return m.Name()
}
