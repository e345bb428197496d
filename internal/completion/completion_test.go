package completion

import (
	"testing"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/settings"
)

func texts(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Candidate.Text
	}
	return out
}

func TestFilterFuzzyMatch(t *testing.T) {
	candidates := []Candidate{
		{Text: "entry-end"},
		{Text: "entry-next-word"},
		{Text: "complete-next"},
		{Text: "quit"},
	}
	f := NewFilter()

	tests := []struct {
		query string
		first string
		count int
	}{
		{"", "complete-next", 4},
		{"quit", "quit", 1},
		{"enw", "entry-next-word", 1},
		{"next", "complete-next", 2},
		{"zzz", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := f.Search(candidates, tt.query)
			if len(got) != tt.count {
				t.Fatalf("Search(%q) = %v, want %d matches", tt.query, texts(got), tt.count)
			}
			if tt.count > 0 && got[0].Candidate.Text != tt.first {
				t.Errorf("Search(%q)[0] = %q, want %q", tt.query, got[0].Candidate.Text, tt.first)
			}
		})
	}
}

func TestFilterPrefixOnly(t *testing.T) {
	f := &Filter{PrefixOnly: true}
	got := f.Search([]Candidate{{Text: "open"}, {Text: "reopen"}}, "op")
	if len(got) != 1 || got[0].Candidate.Text != "open" {
		t.Errorf("Search = %v, want [open]", texts(got))
	}
}

func TestIsWordBoundary(t *testing.T) {
	tests := []struct {
		text string
		idx  int
		want bool
	}{
		{"entry-end", 0, true},
		{"entry-end", 6, true},
		{"entry-end", 3, false},
		{"camelCase", 5, true},
		{"abc", 5, false},
	}
	for _, tt := range tests {
		if got := isWordBoundary(tt.text, tt.idx); got != tt.want {
			t.Errorf("isWordBoundary(%q, %d) = %v, want %v", tt.text, tt.idx, got, tt.want)
		}
	}
}

func newView(t *testing.T) *View {
	t.Helper()
	store, err := settings.NewStore(
		settings.Setting{Name: "hint-chars", Type: settings.TypeString, Description: "Hint characters"},
		settings.Setting{Name: "home", Type: settings.TypeString},
	)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	v := NewView(nil)
	v.Register(DefaultID, NewCommandCompleter([]command.Definition{
		{Name: "quit", Help: "Quit the application"},
		{Name: "open", Help: "Open a url", Arg: command.ArgRequired},
	}))
	v.Register(SetID, NewSettingCompleter(store))
	return v
}

func TestCommandCompleterIncludesActions(t *testing.T) {
	c := NewCommandCompleter([]command.Definition{{Name: "quit", Help: "Quit"}})
	found := map[string]string{}
	for _, cand := range c.Candidates("") {
		found[cand.Text] = cand.Help
	}
	for _, name := range []string{"quit", "set", "complete-next", "entry-smart-home"} {
		if _, ok := found[name]; !ok {
			t.Errorf("candidate %q missing", name)
		}
	}
	if found["quit"] != "Quit" {
		t.Errorf("help of quit = %q, want %q", found["quit"], "Quit")
	}
}

func TestViewDefaultCompleter(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "qu")

	got := v.Candidates()
	if len(got) == 0 || got[0].Candidate.Text != "quit" {
		t.Fatalf("candidates = %v, want quit first", texts(got))
	}
	if got[0].Candidate.Help != "Quit the application" {
		t.Errorf("help = %q, want %q", got[0].Candidate.Help, "Quit the application")
	}
}

func TestViewSubCompleter(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "")
	v.Update(mode.Command, "set hi")

	got := v.Candidates()
	if len(got) != 1 || got[0].Candidate.Text != "hint-chars" {
		t.Fatalf("candidates = %v, want [hint-chars]", texts(got))
	}

	sel := v.SelectNext()
	if sel.Text != "set hint-chars" || sel.Unselect {
		t.Errorf("SelectNext = %+v, want text %q", sel, "set hint-chars")
	}
}

func TestViewUnknownFirstWord(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "open http")
	if got := v.Candidates(); len(got) != 0 {
		t.Errorf("candidates = %v, want none", texts(got))
	}
}

func TestViewNoCompleter(t *testing.T) {
	v := newView(t)
	v.SetCompleter(NoneID, "qu")
	if got := v.Candidates(); len(got) != 0 {
		t.Errorf("candidates = %v, want none", texts(got))
	}
}

func TestViewUpdateOutsideCommandMode(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "qu")
	v.Update(mode.Normal, "qu")
	if got := v.Candidates(); len(got) != 0 {
		t.Errorf("candidates = %v, want none in normal mode", texts(got))
	}

	v.Update(mode.Input, "qu")
	if got := v.Candidates(); len(got) == 0 {
		t.Error("no candidates in input mode, want command completions")
	}
}

func TestViewSelectionWraps(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "set ")
	// hint-chars, home

	steps := []struct {
		next     bool
		want     string
		unselect bool
	}{
		{true, "set hint-chars", false},
		{true, "set home", false},
		{true, "set ", true},
		{false, "set home", false},
		{false, "set hint-chars", false},
		{false, "set ", true},
	}
	for i, s := range steps {
		var sel Selection
		if s.next {
			sel = v.SelectNext()
		} else {
			sel = v.SelectPrevious()
		}
		if sel.Text != s.want || sel.Unselect != s.unselect {
			t.Errorf("step %d: selection = %+v, want text %q unselect %v", i, sel, s.want, s.unselect)
		}
	}
}

func TestViewSelectWithoutCandidates(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "zzz")
	sel := v.SelectNext()
	if !sel.Unselect || sel.Text != "zzz" {
		t.Errorf("SelectNext = %+v, want unselect with typed text", sel)
	}
}

func TestViewShowHide(t *testing.T) {
	v := newView(t)
	v.SetCompleter(DefaultID, "")
	v.Show()
	v.SelectNext()
	if !v.Shown() || v.SelectedIndex() != 0 {
		t.Errorf("Shown = %v, SelectedIndex = %d, want true, 0", v.Shown(), v.SelectedIndex())
	}
	v.Hide()
	if v.Shown() || v.SelectedIndex() != -1 {
		t.Errorf("after Hide: Shown = %v, SelectedIndex = %d, want false, -1", v.Shown(), v.SelectedIndex())
	}
}
