package app

import (
	"github.com/dshills/cmdbar/internal/completion"
	"github.com/dshills/cmdbar/internal/dispatcher"
	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/input/shortcut"
)

// HandleKeyPress processes a pressed key. It returns true when the key was
// consumed and must not reach the entry.
func (a *App) HandleKeyPress(k key.Key) bool {
	if k.IsEscape() {
		a.escape()
		return true
	}

	if a.modes.Current() == mode.Normal {
		return a.normalKeyPress(k)
	}
	return a.handleShortcut(k)
}

// HandleKeyRelease sends the incremental update of special commands that
// asked for one.
func (a *App) HandleKeyRelease(key.Key) {
	if a.modes.Current() != mode.Command {
		return
	}
	id := a.modes.Identifier()
	if id != mode.DefaultIdentifier && a.special[id] {
		a.specialCommand(a.surfaces.Entry.Text(), false)
	}
}

// HandleEntryChanged refreshes the completions after the user edited the
// entry.
func (a *App) HandleEntryChanged() {
	a.updateCompletions()
}

// HandleEntryActivate answers the pending question in the input modes and
// runs the typed command line otherwise.
func (a *App) HandleEntryActivate() {
	text := a.surfaces.Entry.Text()

	current := a.modes.Current()
	if !current.IsInput() {
		a.handleCommand(text, dispatcher.Interactive)
		return
	}

	if current == mode.BlockingInput {
		a.prompts.Deliver(text, true)
		return
	}
	a.modes.ReturnToNormal()
	a.reset()
	a.prompts.Deliver(text, true)
}

// cancelInput answers the pending question with no answer, leaving the
// input mode first.
func (a *App) cancelInput() {
	if a.prompts.Pending() == nil {
		return
	}
	if a.modes.Current().IsInput() {
		a.modes.ReturnToNormal()
		a.reset()
	}
	a.prompts.Deliver("", false)
}

// escape leaves any mode for Normal and cancels the pending question.
func (a *App) escape() {
	if a.modes.Current() != mode.Normal {
		a.modes.ReturnToNormal()
	}
	a.reset()

	// Blocking callers reset once their wait ends.
	a.prompts.Deliver("", false)
}

func (a *App) normalKeyPress(k key.Key) bool {
	r, ok := k.Char()
	switch {
	case ok && r == mode.DefaultIdentifier:
		a.surfaces.Completion.SetCompleter(completion.DefaultID, "")
		a.modes.SetIdentifier(mode.DefaultIdentifier)
		a.modes.Enter(mode.Command)
		a.reset()
		a.surfaces.Completion.Show()
		a.showEntry()
		return true

	case ok && a.isSpecial(r):
		a.surfaces.Completion.SetCompleter(completion.NoneID, "")
		a.modes.SetIdentifier(r)
		a.modes.Enter(mode.Command)
		a.reset()
		a.showEntry()
		return true
	}
	return a.handleShortcut(k)
}

func (a *App) isSpecial(r rune) bool {
	_, ok := a.special[r]
	return ok
}

// handleShortcut feeds k to the matcher and acts on the outcome.
func (a *App) handleShortcut(k key.Key) bool {
	entryShown := a.surfaces.Entry.Shown()
	res := a.matcher.Feed(k, entryShown)

	switch res.Outcome {
	case shortcut.Answered:
		a.setDialogAnswer(res.Answer)

	case shortcut.Matched:
		a.log.Debug("shortcut %s -> %s", res.Keys, res.Action)
		if !entryShown {
			a.reset()
		}
		if res.Command.Complete {
			a.handleCommand(res.Command.Text, dispatcher.Shortcut)
			break
		}
		a.inputCommand(res.Command.Text)
		a.surfaces.Completion.Show()
		return true

	case shortcut.DeadEnd:
		// An unanswered choice question keeps its message.
		if !entryShown && !a.modes.Current().IsInput() {
			a.reset()
		}
	}
	return res.Consumed
}
