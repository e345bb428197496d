package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cmdbar/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), "g"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "<Space>"},
		{"less than", tcell.NewEventKey(tcell.KeyRune, '<', tcell.ModNone), "<lt>"},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModCtrl), "<C-w>"},
		{"ctrl key", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), "<C-w>"},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "<C-c>"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "<Enter>"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "<Esc>"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "<Tab>"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "<S-Tab>"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "<BS>"},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "<Up>"},
		{"ctrl left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), "<C-Left>"},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "<F5>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := TranslateKey(tt.ev)
			if !ok {
				t.Fatal("TranslateKey() ok = false")
			}
			if got := k.String(); got != tt.want {
				t.Errorf("TranslateKey() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTranslateKeyUnknown(t *testing.T) {
	if k, ok := TranslateKey(tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone)); ok {
		t.Errorf("TranslateKey(F40) = %s, want no key", k)
	}
}

func TestTranslateKeyMatchesNotation(t *testing.T) {
	k, _ := TranslateKey(tcell.NewEventKey(tcell.KeyCtrlA, 0, tcell.ModCtrl))
	if want := key.Control(key.Char('a')); k != want {
		t.Errorf("TranslateKey(<C-a>) = %#v, want %#v", k, want)
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		want   rune
		wantOK bool
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 'x', true},
		{"wide", tcell.NewEventKey(tcell.KeyRune, '世', tcell.ModNone), '世', true},
		{"ctrl", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl), 0, false},
		{"alt", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), 0, false},
		{"special", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := printable(tt.ev)
			if r != tt.want || ok != tt.wantOK {
				t.Errorf("printable() = %q, %v, want %q, %v", r, ok, tt.want, tt.wantOK)
			}
		})
	}
}
