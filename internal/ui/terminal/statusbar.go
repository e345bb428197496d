package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cmdbar/internal/app"
)

// StatusBar holds the labels and the message shown on the bottom line.
type StatusBar struct {
	modeLabel     string
	shortcutLabel string
	identifier    rune
	kind          app.MessageKind
	message       string
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{identifier: ':'}
}

func (s *StatusBar) SetModeLabel(label string)     { s.modeLabel = label }
func (s *StatusBar) SetShortcutLabel(label string) { s.shortcutLabel = label }
func (s *StatusBar) SetIdentifier(identifier rune) { s.identifier = identifier }

func (s *StatusBar) SetMessage(kind app.MessageKind, text string) {
	s.kind = kind
	s.message = text
}

func (s *StatusBar) Message() string {
	return s.message
}

// ModeLabel returns the label of the active mode.
func (s *StatusBar) ModeLabel() string { return s.modeLabel }

// ShortcutLabel returns the keys typed so far.
func (s *StatusBar) ShortcutLabel() string { return s.shortcutLabel }

// Identifier returns the rune drawn in front of the entry.
func (s *StatusBar) Identifier() rune { return s.identifier }

// Kind returns the kind of the current message.
func (s *StatusBar) Kind() app.MessageKind { return s.kind }

// Theme holds the styles used when drawing the command bar.
type Theme struct {
	Bar        tcell.Style
	Mode       tcell.Style
	Shortcut   tcell.Style
	Completion tcell.Style
	Selected   tcell.Style
	Help       tcell.Style
	Messages   map[app.MessageKind]tcell.Style
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Bar:        base,
		Mode:       base.Bold(true).Reverse(true),
		Shortcut:   base.Foreground(tcell.ColorYellow),
		Completion: base.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite),
		Selected:   base.Background(tcell.ColorSteelBlue).Foreground(tcell.ColorWhite).Bold(true),
		Help:       base.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorSilver),
		Messages: map[app.MessageKind]tcell.Style{
			app.MessageInfo:     base.Foreground(tcell.ColorGreen),
			app.MessageWarning:  base.Foreground(tcell.ColorYellow),
			app.MessageAlert:    base.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkOrange).Bold(true),
			app.MessageError:    base.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true),
			app.MessageQuestion: base.Foreground(tcell.ColorAqua).Bold(true),
		},
	}
}

// MessageStyle returns the style for a message of the given kind.
func (t Theme) MessageStyle(kind app.MessageKind) tcell.Style {
	if st, ok := t.Messages[kind]; ok {
		return st
	}
	return t.Bar
}
