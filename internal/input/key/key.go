package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Code identifies a logical keyboard key.
// For character keys, use CodeRune and set the Rune field in Key.
type Code uint8

const (
	// CodeNone represents no key.
	CodeNone Code = iota

	// CodeRune is used for character keys (letters, numbers, punctuation, space).
	CodeRune

	// Editing keys
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeEnter
	CodeEscape

	// Completion navigation. CodeBacktab is Shift+Tab.
	CodeTab
	CodeBacktab

	// Navigation keys
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if c.IsFunctionKey() {
		return fmt.Sprintf("F%d", int(c-CodeF1)+1)
	}
	return fmt.Sprintf("Code(%d)", c)
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (c Code) IsFunctionKey() bool {
	return c >= CodeF1 && c <= CodeF12
}

// codeNames holds the vim-notation name of every non-function special code.
var codeNames = map[Code]string{
	CodeNone:      "None",
	CodeRune:      "Rune",
	CodeBackspace: "BS",
	CodeDelete:    "Del",
	CodeInsert:    "Insert",
	CodeEnter:     "Enter",
	CodeEscape:    "Esc",
	CodeTab:       "Tab",
	CodeBacktab:   "S-Tab",
	CodeHome:      "Home",
	CodeEnd:       "End",
	CodePageUp:    "PageUp",
	CodePageDown:  "PageDown",
	CodeUp:        "Up",
	CodeDown:      "Down",
	CodeLeft:      "Left",
	CodeRight:     "Right",
}

// Key is a logical key press: a key code, the character for CodeRune,
// and whether Control was held. Keys are comparable and equality is
// structural, so they can be used directly as map keys.
type Key struct {
	Code Code
	Rune rune
	Ctrl bool
}

// Char creates a key for a character.
func Char(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// Special creates a key for a non-character code.
func Special(c Code) Key {
	return Key{Code: c}
}

// Control returns k with the Control modifier set.
// Letters are folded to lower case so that <C-A> and <C-a> are the same key.
func Control(k Key) Key {
	k.Ctrl = true
	if k.Code == CodeRune {
		k.Rune = unicode.ToLower(k.Rune)
	}
	return k
}

// IsZero returns true for the zero Key.
func (k Key) IsZero() bool {
	return k.Code == CodeNone
}

// IsEscape returns true if this is the Escape key.
func (k Key) IsEscape() bool {
	return k.Code == CodeEscape && !k.Ctrl
}

// IsEnter returns true if this is the Enter key without Control.
func (k Key) IsEnter() bool {
	return k.Code == CodeEnter && !k.Ctrl
}

// IsCompletionKey returns true for Tab and Shift+Tab, which stay reserved
// for completion navigation even while the entry owns character input.
func (k Key) IsCompletionKey() bool {
	return k.Code == CodeTab || k.Code == CodeBacktab
}

// Char returns the printable character of an unmodified character key.
func (k Key) Char() (rune, bool) {
	if k.Code != CodeRune || k.Ctrl || !unicode.IsPrint(k.Rune) {
		return 0, false
	}
	return k.Rune, true
}

// String returns the vim-style notation of the key.
// Examples: "a", "<C-a>", "<Enter>", "<S-Tab>", "<Space>", "<lt>".
func (k Key) String() string {
	var name string
	bracket := k.Ctrl
	switch k.Code {
	case CodeRune:
		switch k.Rune {
		case ' ':
			name, bracket = "Space", true
		case '<':
			name, bracket = "lt", true
		default:
			name = string(k.Rune)
		}
	default:
		name, bracket = k.Code.String(), true
	}
	if !bracket {
		return name
	}
	if k.Ctrl {
		name = "C-" + name
	}
	return "<" + name + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (k Key) GoString() string {
	return fmt.Sprintf("Key{Code: %s, Rune: %q, Ctrl: %v}", k.Code, k.Rune, k.Ctrl)
}

// keyNameMap maps key names (lowercase) to codes.
var keyNameMap = map[string]Code{
	"bs":        CodeBackspace,
	"backspace": CodeBackspace,
	"del":       CodeDelete,
	"delete":    CodeDelete,
	"ins":       CodeInsert,
	"insert":    CodeInsert,
	"cr":        CodeEnter,
	"return":    CodeEnter,
	"enter":     CodeEnter,
	"esc":       CodeEscape,
	"escape":    CodeEscape,
	"tab":       CodeTab,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pgup":      CodePageUp,
	"pagedown":  CodePageDown,
	"pgdn":      CodePageDown,
	"up":        CodeUp,
	"down":      CodeDown,
	"left":      CodeLeft,
	"right":     CodeRight,
}

func init() {
	for c := CodeF1; c <= CodeF12; c++ {
		keyNameMap[strings.ToLower(c.String())] = c
	}
}

// runeAliases maps vim names of characters that cannot appear bare.
var runeAliases = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
}

// CodeFromName returns the code for a given name (case-insensitive).
// Returns CodeNone if the name is not recognized.
func CodeFromName(name string) Code {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := keyNameMap[name]; ok {
		return c
	}
	return CodeNone
}
