// Package keymap holds the per-mode key bindings of the command bar.
//
// Each mode owns a PrefixTree mapping key sequences to action strings.
// Within one mode a sequence maps to at most one action: Map overwrites
// and Unmap silently ignores sequences that are not bound.
//
// Lookup is the read-only view used while matching shortcuts:
//
//	table := keymap.NewTable()
//	table.Map(mode.Normal, key.MustParseSequence("gg"), "go-top")
//
//	table.Action(mode.Normal, key.MustParseSequence("gg"))        // "go-top", true
//	table.HasStrictPrefix(mode.Normal, key.MustParseSequence("g")) // true
package keymap
