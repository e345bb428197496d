package completion

import (
	"strings"

	"github.com/dshills/cmdbar/internal/input/mode"
)

// Selection is the entry text after moving the selection.
type Selection struct {
	// Text replaces the entry content.
	Text string

	// Selected is the selected candidate, valid unless Unselect is set.
	Selected Candidate

	// Unselect is set when the selection moved back to the typed text.
	Unselect bool
}

// View holds the completers, the current candidates and the selection.
type View struct {
	filter     *Filter
	completers map[string]Completer

	current string
	shown   bool

	// typed is the entry text the candidates were computed for.
	typed string
	// lead is the part of typed kept in front of a selected candidate.
	lead     string
	matches  []Match
	selected int
}

// NewView creates a view with no completer selected.
func NewView(filter *Filter) *View {
	if filter == nil {
		filter = NewFilter()
	}
	return &View{
		filter:     filter,
		completers: make(map[string]Completer),
		selected:   -1,
	}
}

// Register adds or replaces the completer with the given identifier.
func (v *View) Register(id string, c Completer) {
	v.completers[id] = c
}

// SetCompleter selects the completer used for the next updates and
// computes the candidates for text.
func (v *View) SetCompleter(id, text string) {
	v.current = id
	v.compute(text)
}

// Completer returns the identifier of the selected completer.
func (v *View) Completer() string {
	return v.current
}

// Update recomputes the candidates after the entry changed.
// Completion only runs in command mode and the modes sharing its bindings.
func (v *View) Update(m mode.Mode, text string) {
	if m.Mapping() != mode.Command {
		v.clear()
		return
	}
	v.compute(text)
}

func (v *View) compute(text string) {
	v.clear()
	v.typed = text

	c, ok := v.completers[v.current]
	if !ok || v.current == NoneID {
		return
	}

	query := text
	if v.current == DefaultID {
		// "set fo" completes with the completer named by the first word.
		if i := strings.IndexByte(text, ' '); i >= 0 {
			sub, ok := v.completers[text[:i]]
			if !ok {
				return
			}
			c = sub
			v.lead = text[:i+1]
			query = strings.TrimLeft(text[i+1:], " ")
		}
	}

	v.matches = v.filter.Search(c.Candidates(query), query)
}

func (v *View) clear() {
	v.typed = ""
	v.lead = ""
	v.matches = nil
	v.selected = -1
}

// SelectNext moves the selection down, wrapping back to the typed text
// after the last candidate.
func (v *View) SelectNext() Selection {
	return v.move(1)
}

// SelectPrevious moves the selection up, wrapping back to the typed text
// before the first candidate.
func (v *View) SelectPrevious() Selection {
	return v.move(-1)
}

func (v *View) move(delta int) Selection {
	n := len(v.matches)
	if n == 0 {
		return Selection{Text: v.typed, Unselect: true}
	}

	// -1 is the typed text, so there are n+1 positions.
	pos := (v.selected + 1 + delta + n + 1) % (n + 1)
	v.selected = pos - 1
	if v.selected < 0 {
		return Selection{Text: v.typed, Unselect: true}
	}

	c := v.matches[v.selected].Candidate
	return Selection{Text: v.lead + c.Text, Selected: c}
}

// Candidates returns the current matches.
func (v *View) Candidates() []Match {
	return v.matches
}

// SelectedIndex returns the index of the selected match, or -1.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Show makes the candidate list visible.
func (v *View) Show() {
	v.shown = true
}

// Hide hides the candidate list and drops the selection.
func (v *View) Hide() {
	v.shown = false
	v.selected = -1
}

// Shown reports whether the candidate list is visible.
func (v *View) Shown() bool {
	return v.shown
}
