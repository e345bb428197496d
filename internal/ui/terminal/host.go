package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cmdbar/internal/app"
	"github.com/dshills/cmdbar/internal/completion"
	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/logging"
)

// DefaultScrollback is the number of output lines kept by default.
const DefaultScrollback = 1000

// Handler receives the input the host does not handle itself.
// *app.App satisfies it.
type Handler interface {
	HandleKeyPress(k key.Key) bool
	HandleKeyRelease(k key.Key)
	HandleEntryChanged()
	HandleEntryActivate()
	HandleClose()
	Closed() bool
}

// Host draws the command bar on a tcell screen and feeds it terminal input.
// All methods except AfterFunc must be called from the goroutine running
// the loop.
type Host struct {
	screen     tcell.Screen
	entry      *Entry
	status     *StatusBar
	completion *completion.View
	handler    Handler
	theme      Theme
	log        *logging.Logger

	output     []string
	scrollback int
	maxRows    int

	stopped bool
}

// Option configures a Host.
type Option func(*Host)

// WithTheme sets the drawing styles.
func WithTheme(t Theme) Option {
	return func(h *Host) { h.theme = t }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) { h.log = l }
}

// WithScrollback sets the number of output lines kept.
func WithScrollback(n int) Option {
	return func(h *Host) { h.scrollback = n }
}

// WithCompletionRows sets the maximum height of the completion list.
func WithCompletionRows(n int) Option {
	return func(h *Host) { h.maxRows = n }
}

// NewScreen creates and initializes the terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	return screen, nil
}

// NewHost creates a host drawing on an initialized screen.
// Bind must be called before the loop runs.
func NewHost(screen tcell.Screen, filter *completion.Filter, opts ...Option) *Host {
	h := &Host{
		screen:     screen,
		entry:      NewEntry(),
		status:     NewStatusBar(),
		completion: completion.NewView(filter),
		theme:      DefaultTheme(),
		log:        logging.Null(),
		scrollback: DefaultScrollback,
		maxRows:    10,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("terminal")
	return h
}

// Surfaces returns the collaborators an app.App is built with.
func (h *Host) Surfaces() app.Surfaces {
	return app.Surfaces{
		Entry:      h.entry,
		Status:     h.status,
		Completion: h.completion,
		Loop:       h,
		Scheduler:  h,
	}
}

// Bind sets the handler receiving the input.
func (h *Host) Bind(handler Handler) {
	h.handler = handler
}

// Entry returns the line editor.
func (h *Host) Entry() *Entry { return h.entry }

// Status returns the status bar.
func (h *Host) Status() *StatusBar { return h.status }

// Completion returns the completion view.
func (h *Host) Completion() *completion.View { return h.completion }

// Print appends a line to the output area above the command bar.
func (h *Host) Print(line string) {
	h.output = append(h.output, line)
	if over := len(h.output) - h.scrollback; over > 0 && h.scrollback > 0 {
		h.output = append(h.output[:0], h.output[over:]...)
	}
}

// Output returns the lines of the output area, oldest first.
func (h *Host) Output() []string {
	return append([]string(nil), h.output...)
}

// AfterFunc runs f on the loop once d has elapsed.
// It may be called from any goroutine.
func (h *Host) AfterFunc(d time.Duration, f func()) {
	if d <= 0 {
		h.post(f)
		return
	}
	time.AfterFunc(d, func() { h.post(f) })
}

func (h *Host) post(f func()) {
	if err := h.screen.PostEvent(tcell.NewEventInterrupt(f)); err != nil {
		h.log.Warn("dropped scheduled function: %v", err)
	}
}

// Step waits for one terminal event, handles it and redraws.
// It returns false once the loop has stopped. A cancelled ctx wakes the
// loop up without stopping it.
func (h *Host) Step(ctx context.Context) bool {
	if h.Stopped() {
		return false
	}

	wake := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer wake()

	ev := h.screen.PollEvent()
	if ev == nil {
		h.stop()
		return false
	}
	h.handleEvent(ev)
	h.Draw()
	return !h.Stopped()
}

// Run steps the loop until it stops or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	h.Draw()
	for ctx.Err() == nil {
		if !h.Step(ctx) {
			return nil
		}
	}
	return ctx.Err()
}

// Close closes the window: the handler is told and the loop stops.
func (h *Host) Close() {
	h.stop()
}

// Stopped reports whether the loop has stopped.
func (h *Host) Stopped() bool {
	return h.stopped || (h.handler != nil && h.handler.Closed())
}

func (h *Host) stop() {
	if h.stopped {
		return
	}
	h.stopped = true
	if h.handler != nil {
		h.handler.HandleClose()
	}
}

func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventInterrupt:
		if f, ok := ev.Data().(func()); ok && f != nil {
			f()
		}
	}
}

// handleKey offers the key to the handler first. Unconsumed keys edit the
// entry while it is shown. Terminals report no releases, so the release
// follows the press.
func (h *Host) handleKey(ev *tcell.EventKey) {
	if h.handler == nil {
		return
	}

	k, ok := TranslateKey(ev)
	if ok && h.handler.HandleKeyPress(k) {
		h.handler.HandleKeyRelease(k)
		return
	}

	if h.entry.Shown() {
		h.edit(ev)
	}
	if ok {
		h.handler.HandleKeyRelease(k)
	}
}

func (h *Host) edit(ev *tcell.EventKey) {
	word := ev.Modifiers()&tcell.ModCtrl != 0
	changed := true

	switch ev.Key() {
	case tcell.KeyEnter:
		h.entry.AddToHistory(h.entry.Text())
		h.handler.HandleEntryActivate()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		changed = h.entry.Backspace()
	case tcell.KeyDelete:
		h.entry.DeleteNextChar()
	case tcell.KeyLeft:
		changed = false
		if word {
			h.entry.PreviousWord()
		} else {
			h.entry.PreviousChar()
		}
	case tcell.KeyRight:
		changed = false
		if word {
			h.entry.NextWord()
		} else {
			h.entry.NextChar()
		}
	case tcell.KeyHome:
		changed = false
		h.entry.SmartHome()
	case tcell.KeyEnd:
		changed = false
		h.entry.End()
	case tcell.KeyUp:
		changed = h.entry.HistoryPrev()
	case tcell.KeyDown:
		changed = h.entry.HistoryNext()
	default:
		r, ok := printable(ev)
		if !ok {
			return
		}
		h.entry.Insert(r)
	}

	if changed {
		h.handler.HandleEntryChanged()
	}
}
