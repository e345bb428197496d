// Package shortcut resolves accumulated keys against the mapping table.
package shortcut

import (
	"strings"

	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/keymap"
	"github.com/dshills/cmdbar/internal/input/mode"
)

// EnterMarker ends the command text of a mapping that runs immediately.
const EnterMarker = "<Enter>"

// Command is the interpretation of a mapped action.
type Command struct {
	// Text is the command text without identifier or marker.
	Text string

	// Complete commands run immediately. Incomplete ones prefill the
	// entry and wait for the user to activate it.
	Complete bool
}

// ActionToCommand interprets an action string bound to a key sequence.
// An action starting with identifier is command-line text: it runs
// immediately when it contains EnterMarker (the text before the marker)
// and otherwise prefills the entry. Any other action is a complete
// command name.
func ActionToCommand(action string, identifier rune) Command {
	rest, ok := strings.CutPrefix(action, string(identifier))
	if !ok {
		return Command{Text: action, Complete: true}
	}
	if text, _, found := strings.Cut(rest, EnterMarker); found {
		return Command{Text: text, Complete: true}
	}
	return Command{Text: rest}
}

// Outcome classifies the handling of one key.
type Outcome uint8

const (
	// Ignored means the key belongs to the visible entry.
	Ignored Outcome = iota
	// Answered means the key answered the pending question.
	Answered
	// Matched means the buffer resolved to a mapping.
	Matched
	// Pending means a longer mapping may still match.
	Pending
	// DeadEnd means no mapping starts with the buffer.
	DeadEnd
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Answered:
		return "answered"
	case Matched:
		return "matched"
	case Pending:
		return "pending"
	case DeadEnd:
		return "dead-end"
	default:
		return "unknown"
	}
}

// Result is the outcome of Feed.
type Result struct {
	Outcome Outcome

	// Answer is set for Answered.
	Answer string

	// Action and Command are set for Matched.
	Action  string
	Command Command

	// Keys is the buffer that was resolved or abandoned.
	Keys key.Sequence

	// Consumed reports whether the host should not process the key further.
	Consumed bool
}

// Answerer matches keys against the pending question.
type Answerer interface {
	Match(k key.Key) (string, bool)
}

// Matcher accumulates keys in the controller's shortcut buffer and
// resolves them against the mapping table.
type Matcher struct {
	modes   *mode.Controller
	table   keymap.Lookup
	answers Answerer
}

// NewMatcher creates a matcher.
func NewMatcher(modes *mode.Controller, table keymap.Lookup, answers Answerer) *Matcher {
	return &Matcher{
		modes:   modes,
		table:   table,
		answers: answers,
	}
}

// Feed handles one pressed key. entryShown tells whether the entry
// currently owns plain character input.
// Escape must be handled by the caller and never reaches Feed.
func (m *Matcher) Feed(k key.Key, entryShown bool) Result {
	current := m.modes.Current()

	if current.IsInput() && m.answers != nil {
		if answer, ok := m.answers.Match(k); ok {
			return Result{Outcome: Answered, Answer: answer, Consumed: true}
		}
	}

	consumed := current == mode.Normal ||
		(current == mode.Command && k.IsCompletionKey())

	if entryShown && !k.Ctrl && !k.IsCompletionKey() {
		return Result{Outcome: Ignored, Consumed: consumed}
	}

	m.modes.Push(k)
	seq := m.modes.Shortcut()
	table := current.Mapping()

	if action, ok := m.table.Action(table, seq); ok {
		m.modes.ClearShortcut()
		return Result{
			Outcome:  Matched,
			Action:   action,
			Command:  ActionToCommand(action, mode.DefaultIdentifier),
			Keys:     seq,
			Consumed: true,
		}
	}

	if m.table.HasStrictPrefix(table, seq) {
		return Result{Outcome: Pending, Keys: seq, Consumed: true}
	}

	m.modes.ClearShortcut()
	return Result{Outcome: DeadEnd, Keys: seq, Consumed: consumed}
}
