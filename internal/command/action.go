package command

import "sort"

// Target is what built-in application actions operate on.
type Target interface {
	CompleteNext()
	CompletePrevious()

	DeleteNextChar()
	DeleteNextWord()
	DeletePreviousWord()
	End()
	NextChar()
	NextWord()
	PreviousChar()
	PreviousWord()
	SmartHome()

	// UpdateCompletions refreshes the candidates after the entry changed.
	UpdateCompletions()
}

// AppAction is a built-in application action. Values only come from the
// package variables below or LookupAppAction, so an App command always
// carries a known action.
type AppAction struct {
	name string
	run  func(Target)
}

// Name returns the configuration name of the action.
func (a AppAction) Name() string {
	return a.name
}

// Run applies the action to t. The zero AppAction does nothing.
func (a AppAction) Run(t Target) {
	if a.run != nil {
		a.run(t)
	}
}

// Built-in application actions.
var (
	CompleteNext            = AppAction{"complete-next", Target.CompleteNext}
	CompletePrevious        = AppAction{"complete-previous", Target.CompletePrevious}
	EntryDeleteNextChar     = AppAction{"entry-delete-next-char", editing(Target.DeleteNextChar)}
	EntryDeleteNextWord     = AppAction{"entry-delete-next-word", editing(Target.DeleteNextWord)}
	EntryDeletePreviousWord = AppAction{"entry-delete-previous-word", editing(Target.DeletePreviousWord)}
	EntryEnd                = AppAction{"entry-end", Target.End}
	EntryNextChar           = AppAction{"entry-next-char", Target.NextChar}
	EntryNextWord           = AppAction{"entry-next-word", Target.NextWord}
	EntryPreviousChar       = AppAction{"entry-previous-char", Target.PreviousChar}
	EntryPreviousWord       = AppAction{"entry-previous-word", Target.PreviousWord}
	EntrySmartHome          = AppAction{"entry-smart-home", Target.SmartHome}
)

// editing wraps an action that changes the entry text.
func editing(op func(Target)) func(Target) {
	return func(t Target) {
		op(t)
		t.UpdateCompletions()
	}
}

var appActions = func() map[string]AppAction {
	m := make(map[string]AppAction)
	for _, a := range []AppAction{
		CompleteNext,
		CompletePrevious,
		EntryDeleteNextChar,
		EntryDeleteNextWord,
		EntryDeletePreviousWord,
		EntryEnd,
		EntryNextChar,
		EntryNextWord,
		EntryPreviousChar,
		EntryPreviousWord,
		EntrySmartHome,
	} {
		m[a.name] = a
	}
	return m
}()

// LookupAppAction returns the built-in action with the given name.
func LookupAppAction(name string) (AppAction, bool) {
	a, ok := appActions[name]
	return a, ok
}

// AppActions returns all built-in actions sorted by name.
func AppActions() []AppAction {
	out := make([]AppAction, 0, len(appActions))
	for _, a := range appActions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
