package shortcut

import (
	"testing"

	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/keymap"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/input/prompt"
)

func TestActionToCommand(t *testing.T) {
	tests := []struct {
		action string
		want   Command
	}{
		{":quit<Enter>", Command{Text: "quit", Complete: true}},
		{":e ", Command{Text: "e "}},
		{":open<Enter>ignored", Command{Text: "open", Complete: true}},
		{":", Command{Text: ""}},
		{"complete-next", Command{Text: "complete-next", Complete: true}},
		{"go-top", Command{Text: "go-top", Complete: true}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := ActionToCommand(tt.action, ':'); got != tt.want {
				t.Errorf("ActionToCommand(%q) = %+v, want %+v", tt.action, got, tt.want)
			}
		})
	}
}

func newMatcher(t *testing.T, bindings map[string]string) (*Matcher, *mode.Controller, *prompt.Registry) {
	t.Helper()
	table := keymap.NewTable()
	for keys, action := range bindings {
		if err := table.Map(mode.Normal, key.MustParseSequence(keys), action); err != nil {
			t.Fatalf("Map(%q) error: %v", keys, err)
		}
	}
	table.Map(mode.Command, key.MustParseSequence("<Tab>"), "complete-next")
	table.Map(mode.Command, key.MustParseSequence("<C-w>"), "entry-delete-previous-word")

	modes := mode.NewController(nil, nil)
	prompts := prompt.NewRegistry()
	return NewMatcher(modes, table, prompts), modes, prompts
}

func feed(m *Matcher, keys string, entryShown bool) []Result {
	var out []Result
	for _, k := range key.MustParseSequence(keys) {
		out = append(out, m.Feed(k, entryShown))
	}
	return out
}

func TestFeedPrefixKeepsBuffer(t *testing.T) {
	m, modes, _ := newMatcher(t, map[string]string{"gg": "go-top", "gtx": "tab-x"})

	results := feed(m, "gt", false)
	for i, r := range results {
		if r.Outcome != Pending {
			t.Errorf("result[%d].Outcome = %v, want pending", i, r.Outcome)
		}
	}
	if got := modes.Shortcut().String(); got != "gt" {
		t.Errorf("Shortcut() = %q, want %q", got, "gt")
	}
}

func TestFeedExactMatchOnce(t *testing.T) {
	m, modes, _ := newMatcher(t, map[string]string{"gg": "go-top"})

	results := feed(m, "gg", false)
	matched := 0
	for _, r := range results {
		if r.Outcome == Matched {
			matched++
			if r.Command != (Command{Text: "go-top", Complete: true}) {
				t.Errorf("Command = %+v, want Complete(go-top)", r.Command)
			}
			if r.Keys.String() != "gg" {
				t.Errorf("Keys = %q, want gg", r.Keys)
			}
		}
	}
	if matched != 1 {
		t.Errorf("matched %d times, want 1", matched)
	}
	if !modes.Shortcut().IsEmpty() {
		t.Errorf("Shortcut() = %q, want empty", modes.Shortcut())
	}
}

func TestFeedRoundTripMarkers(t *testing.T) {
	m, _, _ := newMatcher(t, map[string]string{"q": ":quit<Enter>", "e": ":e "})

	if r := m.Feed(key.Char('q'), false); r.Command != (Command{Text: "quit", Complete: true}) {
		t.Errorf("q -> %+v, want Complete(quit)", r.Command)
	}
	if r := m.Feed(key.Char('e'), false); r.Command != (Command{Text: "e "}) {
		t.Errorf("e -> %+v, want Incomplete(\"e \")", r.Command)
	}
}

func TestFeedDeadEnd(t *testing.T) {
	m, modes, _ := newMatcher(t, map[string]string{"gg": "go-top"})

	r := feed(m, "gx", false)[1]
	if r.Outcome != DeadEnd {
		t.Errorf("Outcome = %v, want dead-end", r.Outcome)
	}
	if r.Keys.String() != "gx" {
		t.Errorf("Keys = %q, want gx", r.Keys)
	}
	if !modes.Shortcut().IsEmpty() {
		t.Error("buffer should be cleared on dead end")
	}
	if !r.Consumed {
		t.Error("normal mode keys should be consumed")
	}
}

func TestFeedEntryOwnsCharacters(t *testing.T) {
	m, modes, _ := newMatcher(t, nil)
	modes.Enter(mode.Command)

	r := m.Feed(key.Char('a'), true)
	if r.Outcome != Ignored || r.Consumed {
		t.Errorf("plain char = %+v, want ignored and not consumed", r)
	}
	if !modes.Shortcut().IsEmpty() {
		t.Error("ignored key should not be accumulated")
	}

	r = m.Feed(key.Special(key.CodeTab), true)
	if r.Outcome != Matched || r.Command.Text != "complete-next" || !r.Consumed {
		t.Errorf("tab = %+v, want matched complete-next", r)
	}

	r = m.Feed(key.Control(key.Char('w')), true)
	if r.Outcome != Matched || r.Command.Text != "entry-delete-previous-word" {
		t.Errorf("<C-w> = %+v, want matched entry-delete-previous-word", r)
	}
}

func TestFeedInputUsesCommandBindings(t *testing.T) {
	m, modes, _ := newMatcher(t, nil)
	modes.Enter(mode.BlockingInput)

	r := m.Feed(key.Special(key.CodeTab), true)
	if r.Outcome != Matched || r.Command.Text != "complete-next" {
		t.Errorf("tab in blocking input = %+v, want matched complete-next", r)
	}
}

func TestFeedChoices(t *testing.T) {
	m, modes, prompts := newMatcher(t, nil)
	modes.Enter(mode.Input)
	prompts.Request(prompt.WithChoices('y', 'n'))

	r := m.Feed(key.Char('y'), true)
	if r.Outcome != Answered || r.Answer != "y" {
		t.Errorf("y = %+v, want answered y", r)
	}

	r = m.Feed(key.Char('z'), true)
	if r.Outcome == Answered {
		t.Error("z should not answer")
	}
	if prompts.Pending() == nil {
		t.Error("unmatched key should not clear the request")
	}
}

func TestFeedChoiceShortcutsTakePriority(t *testing.T) {
	m, modes, prompts := newMatcher(t, nil)
	modes.Enter(mode.Input)
	prompts.Request(prompt.WithShortcuts(map[key.Key]string{
		key.Special(key.CodeTab): "t",
	}))

	r := m.Feed(key.Special(key.CodeTab), true)
	if r.Outcome != Answered || r.Answer != "t" {
		t.Errorf("tab = %+v, want answered t", r)
	}
	if !modes.Shortcut().IsEmpty() {
		t.Error("answering key should not be accumulated")
	}
}

func TestFeedChoicesOnlyInInputModes(t *testing.T) {
	m, _, prompts := newMatcher(t, nil)
	prompts.Request(prompt.WithChoices('y'))

	if r := m.Feed(key.Char('y'), false); r.Outcome == Answered {
		t.Error("choices should only apply in input modes")
	}
}

func TestOutcomeString(t *testing.T) {
	if DeadEnd.String() != "dead-end" || Outcome(99).String() != "unknown" {
		t.Error("Outcome.String mismatch")
	}
}
