package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cmdbar/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBacktab:    key.CodeBacktab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
}

// TranslateKey converts a tcell key event to a command bar key.
// It returns false for keys the command bar has no notation for.
func TranslateKey(ev *tcell.EventKey) (key.Key, bool) {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	if ev.Key() == tcell.KeyRune {
		k := key.Char(ev.Rune())
		if ctrl {
			k = key.Control(k)
		}
		return k, true
	}

	if code, ok := specialKeys[ev.Key()]; ok {
		k := key.Special(code)
		if ctrl {
			k = key.Control(k)
		}
		return k, true
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return key.Control(key.Char(r)), true
	}

	return key.Key{}, false
}

// printable returns the character an unbound key inserts into the entry.
func printable(ev *tcell.EventKey) (rune, bool) {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		return 0, false
	}
	r := ev.Rune()
	return r, unicode.IsPrint(r)
}
