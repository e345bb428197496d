package keymap

import (
	"errors"
	"sort"

	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/mode"
)

// ErrEmptySequence is returned when mapping an empty key sequence.
var ErrEmptySequence = errors.New("empty key sequence")

// Lookup is read access to the mapping table.
type Lookup interface {
	// Action returns the action bound to exactly seq in mode m.
	Action(m mode.Mode, seq key.Sequence) (string, bool)

	// HasStrictPrefix reports whether a longer sequence bound in mode m
	// starts with seq.
	HasStrictPrefix(m mode.Mode, seq key.Sequence) bool
}

// Binding is a single entry of the table.
type Binding struct {
	Mode   mode.Mode
	Keys   key.Sequence
	Action string
}

// Table holds one prefix tree per mode.
type Table struct {
	trees map[mode.Mode]*PrefixTree
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{trees: make(map[mode.Mode]*PrefixTree)}
}

// Map binds seq to action in mode m, overwriting any existing binding.
func (t *Table) Map(m mode.Mode, seq key.Sequence, action string) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	tree, ok := t.trees[m]
	if !ok {
		tree = NewPrefixTree()
		t.trees[m] = tree
	}
	tree.Insert(seq, action)
	return nil
}

// Unmap removes the binding of seq in mode m.
// Removing a sequence that is not bound does nothing and returns false.
func (t *Table) Unmap(m mode.Mode, seq key.Sequence) bool {
	tree, ok := t.trees[m]
	if !ok {
		return false
	}
	return tree.Remove(seq)
}

// Action implements Lookup.
func (t *Table) Action(m mode.Mode, seq key.Sequence) (string, bool) {
	tree, ok := t.trees[m]
	if !ok {
		return "", false
	}
	return tree.Lookup(seq)
}

// HasStrictPrefix implements Lookup.
func (t *Table) HasStrictPrefix(m mode.Mode, seq key.Sequence) bool {
	tree, ok := t.trees[m]
	if !ok {
		return false
	}
	return tree.HasStrictPrefix(seq)
}

// Len returns the number of bindings in mode m.
func (t *Table) Len(m mode.Mode) int {
	if tree, ok := t.trees[m]; ok {
		return tree.Len()
	}
	return 0
}

// Bindings returns the bindings of mode m sorted by key notation.
func (t *Table) Bindings(m mode.Mode) []Binding {
	tree, ok := t.trees[m]
	if !ok {
		return nil
	}
	out := make([]Binding, 0, tree.Len())
	tree.Walk(func(seq key.Sequence, action string) {
		out = append(out, Binding{Mode: m, Keys: seq, Action: action})
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Keys.String() < out[j].Keys.String()
	})
	return out
}
