package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/mode"
)

func seq(s string) key.Sequence {
	return key.MustParseSequence(s)
}

func TestPrefixTree(t *testing.T) {
	tree := NewPrefixTree()
	tree.Insert(seq("gg"), "go-top")
	tree.Insert(seq("gt"), "tab-next")
	tree.Insert(seq("x"), "close")

	tests := []struct {
		keys       string
		wantAction string
		wantFound  bool
		wantPrefix bool
	}{
		{"g", "", false, true},
		{"gg", "go-top", true, false},
		{"gt", "tab-next", true, false},
		{"x", "close", true, false},
		{"gx", "", false, false},
		{"q", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			action, found := tree.Lookup(seq(tt.keys))
			if action != tt.wantAction || found != tt.wantFound {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.keys, action, found, tt.wantAction, tt.wantFound)
			}
			if got := tree.HasStrictPrefix(seq(tt.keys)); got != tt.wantPrefix {
				t.Errorf("HasStrictPrefix(%q) = %v, want %v", tt.keys, got, tt.wantPrefix)
			}
		})
	}

	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}
}

func TestPrefixTreeOverwrite(t *testing.T) {
	tree := NewPrefixTree()
	tree.Insert(seq("gg"), "one")
	tree.Insert(seq("gg"), "two")

	if action, _ := tree.Lookup(seq("gg")); action != "two" {
		t.Errorf("Lookup(gg) = %q, want %q", action, "two")
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
}

func TestPrefixTreeRemovePrunes(t *testing.T) {
	tree := NewPrefixTree()
	tree.Insert(seq("abc"), "deep")
	tree.Insert(seq("a"), "shallow")

	if !tree.Remove(seq("abc")) {
		t.Fatal("Remove(abc) = false, want true")
	}
	if tree.HasStrictPrefix(seq("a")) {
		t.Error("pruned branch should no longer be a prefix")
	}
	if action, ok := tree.Lookup(seq("a")); !ok || action != "shallow" {
		t.Errorf("Lookup(a) = (%q, %v), want (shallow, true)", action, ok)
	}
	if tree.Remove(seq("ab")) {
		t.Error("Remove of an unbound sequence should return false")
	}
	if tree.Remove(nil) {
		t.Error("Remove(nil) should return false")
	}
}

func TestTableMapAndLookup(t *testing.T) {
	table := NewTable()
	if err := table.Map(mode.Normal, seq("gg"), "go-top"); err != nil {
		t.Fatalf("Map error: %v", err)
	}
	if err := table.Map(mode.Command, seq("<C-n>"), "complete-next"); err != nil {
		t.Fatalf("Map error: %v", err)
	}

	if action, ok := table.Action(mode.Normal, seq("gg")); !ok || action != "go-top" {
		t.Errorf("Action(normal, gg) = (%q, %v)", action, ok)
	}
	if _, ok := table.Action(mode.Command, seq("gg")); ok {
		t.Error("bindings should be per mode")
	}
	if !table.HasStrictPrefix(mode.Normal, seq("g")) {
		t.Error("g should be a strict prefix in normal mode")
	}
	if table.HasStrictPrefix(mode.Normal, seq("gg")) {
		t.Error("gg should not be a strict prefix of itself")
	}

	follow, _ := mode.Custom("follow")
	if table.HasStrictPrefix(follow, seq("g")) {
		t.Error("empty mode should have no prefixes")
	}
}

func TestTableMapEmpty(t *testing.T) {
	table := NewTable()
	if err := table.Map(mode.Normal, nil, "x"); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Map(nil) error = %v, want %v", err, ErrEmptySequence)
	}
}

func TestTableUnmapAbsentIsNoop(t *testing.T) {
	table := NewTable()
	table.Map(mode.Normal, seq("gg"), "go-top")

	if table.Unmap(mode.Normal, seq("zz")) {
		t.Error("Unmap(zz) = true, want false")
	}
	if table.Unmap(mode.Command, seq("gg")) {
		t.Error("Unmap in an empty mode = true, want false")
	}
	if table.Len(mode.Normal) != 1 {
		t.Errorf("Len(normal) = %d, want 1", table.Len(mode.Normal))
	}

	if !table.Unmap(mode.Normal, seq("gg")) {
		t.Error("Unmap(gg) = false, want true")
	}
	if table.Len(mode.Normal) != 0 {
		t.Errorf("Len(normal) = %d, want 0", table.Len(mode.Normal))
	}
}

func TestTableBindings(t *testing.T) {
	table := NewTable()
	table.Map(mode.Normal, seq("o"), ":open ")
	table.Map(mode.Normal, seq("gg"), "go-top")
	table.Map(mode.Normal, seq("gt"), "tab-next")

	got := table.Bindings(mode.Normal)
	want := []string{"gg", "gt", "o"}
	if len(got) != len(want) {
		t.Fatalf("len(Bindings) = %d, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.Keys.String() != want[i] {
			t.Errorf("Bindings[%d].Keys = %q, want %q", i, b.Keys, want[i])
		}
		if b.Mode != mode.Normal {
			t.Errorf("Bindings[%d].Mode = %v, want normal", i, b.Mode)
		}
	}
	if table.Bindings(mode.Command) != nil {
		t.Error("Bindings of an empty mode should be nil")
	}
}
