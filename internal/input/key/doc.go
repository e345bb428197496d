// Package key provides the logical key types used by the command bar.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a keyboard key (special keys, function keys, or runes)
//   - Key: A single key press, with an optional Control modifier
//   - Sequence: A series of keys forming a shortcut
//
// # Key Specifications
//
// Keys are written in vim notation:
//
//   - Simple keys: "a", "A", "1"
//   - Special keys: "<Enter>", "<Esc>", "<Tab>", "<S-Tab>", "<BS>"
//   - With Control: "<C-s>", "<C-Enter>"
//   - Characters that cannot appear bare: "<Space>", "<lt>", "<bar>"
//
// Key.String produces the same notation, so a parsed key formats back to
// its canonical spelling.
package key
