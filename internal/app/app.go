// Package app wires the command bar together and drives it from the events
// of a host: key presses and releases, entry edits and activation, and the
// window closing.
//
// The host provides the surfaces (entry, status bar, completion list, event
// loop and scheduler) and observes the command bar through a notify.Sink.
package app

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/command/parser"
	"github.com/dshills/cmdbar/internal/completion"
	"github.com/dshills/cmdbar/internal/dispatcher"
	"github.com/dshills/cmdbar/internal/input/keymap"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/input/prompt"
	"github.com/dshills/cmdbar/internal/input/shortcut"
	"github.com/dshills/cmdbar/internal/logging"
	"github.com/dshills/cmdbar/internal/notify"
	"github.com/dshills/cmdbar/internal/report"
)

// DefaultMessageTimeout is how long info, warning and alert messages stay.
const DefaultMessageTimeout = 5 * time.Second

// Options configures an App.
type Options struct {
	// Modes declares custom modes, prefix -> mode name.
	Modes map[string]string

	// Commands are the custom commands the parser accepts.
	Commands []command.Definition

	// SpecialCommands maps special identifiers such as '/' to whether the
	// host wants an incremental update on every key release.
	SpecialCommands map[rune]bool

	// Settings receives set commands. Optional.
	Settings Settings

	// Completers are registered next to the built-in ones.
	Completers map[string]completion.Completer

	// MessageTimeout defaults to DefaultMessageTimeout.
	MessageTimeout time.Duration

	// IncludeDir resolves include commands in configuration files.
	IncludeDir string

	// MaxIncludeDepth defaults to parser.DefaultMaxIncludeDepth.
	MaxIncludeDepth int

	// Logger defaults to a logger that discards everything.
	Logger *logging.Logger

	// EnableMetrics enables dispatch metrics.
	EnableMetrics bool
}

// App is the command bar engine.
// All methods must be called from the event loop goroutine.
type App struct {
	surfaces Surfaces
	sink     notify.Sink
	log      *logging.Logger

	registry   *mode.Registry
	modes      *mode.Controller
	parser     *parser.Parser
	dispatcher *dispatcher.Dispatcher
	matcher    *shortcut.Matcher
	prompts    *prompt.Registry
	reporter   *report.Reporter

	special        map[rune]bool
	variables      map[string]func() string
	messageTimeout time.Duration
	closed         bool
}

// New creates an App in Normal mode.
// A nil sink discards all events.
func New(surfaces Surfaces, sink notify.Sink, opts Options) (*App, error) {
	if err := surfaces.validate(); err != nil {
		return nil, err
	}

	registry, err := mode.NewRegistry(opts.Modes)
	if err != nil {
		return nil, NewOperationError("register", "modes", err)
	}

	special := make(map[rune]bool, len(opts.SpecialCommands))
	for r, always := range opts.SpecialCommands {
		if r == mode.DefaultIdentifier || r == 0 {
			return nil, NewOperationError("register", fmt.Sprintf("special command %q", r), ErrInvalidIdentifier)
		}
		special[r] = always
	}

	if sink == nil {
		sink = notify.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}
	timeout := opts.MessageTimeout
	if timeout <= 0 {
		timeout = DefaultMessageTimeout
	}

	a := &App{
		surfaces:       surfaces,
		sink:           sink,
		log:            logger.WithComponent("app"),
		registry:       registry,
		prompts:        prompt.NewRegistry(),
		special:        special,
		variables:      make(map[string]func() string),
		messageTimeout: timeout,
	}

	a.modes = mode.NewController(barView{s: surfaces}, modeListener{app: a})
	a.reporter = report.New(report.SinkFunc(a.showError))

	parserOpts := []parser.Option{parser.WithIncludeDir(opts.IncludeDir)}
	if opts.MaxIncludeDepth > 0 {
		parserOpts = append(parserOpts, parser.WithMaxIncludeDepth(opts.MaxIncludeDepth))
	}
	a.parser = parser.New(registry, opts.Commands, parserOpts...)

	config := dispatcher.DefaultConfig().
		WithModes(registry).
		WithTarget(entryTarget{app: a}).
		WithSink(sink).
		WithReporter(a.reporter).
		WithReturnToNormal(a.returnAfterCommand).
		WithMetrics(opts.EnableMetrics)
	if opts.Settings != nil {
		config = config.WithSettings(opts.Settings)
	}
	a.dispatcher = dispatcher.New(config)
	a.matcher = shortcut.NewMatcher(a.modes, a.dispatcher.Table(), a.prompts)

	surfaces.Completion.Register(completion.DefaultID, completion.NewCommandCompleter(a.parser.Definitions()))
	if lister, ok := opts.Settings.(completion.SettingLister); ok {
		surfaces.Completion.Register(completion.SetID, completion.NewSettingCompleter(lister))
	}
	for id, c := range opts.Completers {
		surfaces.Completion.Register(id, c)
	}

	a.reset()
	surfaces.Status.SetIdentifier(mode.DefaultIdentifier)
	return a, nil
}

// modeListener logs mode changes and forwards them to the sink.
type modeListener struct {
	app *App
}

func (l modeListener) ModeChanged(m mode.Mode) {
	l.app.log.Debug("mode %s", m)
	l.app.sink.ModeChanged(m)
}

// Mode returns the active mode.
func (a *App) Mode() mode.Mode {
	return a.modes.Current()
}

// SetMode enters the mode with the given name. Only normal, command and
// the declared custom modes can be entered this way. A pending question
// is cancelled first; if its callback asks again, the mode is left alone
// and prompt.ErrPending is returned.
func (a *App) SetMode(name string) error {
	m, ok := a.registry.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	a.cancelInput()
	if a.prompts.Pending() != nil {
		return fmt.Errorf("entering %s: %w", name, prompt.ErrPending)
	}
	if m == mode.Normal {
		a.modes.ReturnToNormal()
		return nil
	}
	a.modes.Enter(m)
	return nil
}

// AddVariable registers a variable substituted as <name> in mapped
// commands that prefill the entry.
func (a *App) AddVariable(name string, value func() string) {
	a.variables[name] = value
}

// Bindings returns the key bindings of mode m.
func (a *App) Bindings(m mode.Mode) []keymap.Binding {
	return a.dispatcher.Bindings(m)
}

// Metrics returns the dispatch metrics, or nil when disabled.
func (a *App) Metrics() *dispatcher.Metrics {
	return a.dispatcher.Metrics()
}

// Execute parses and applies a command line without leaving the
// current mode.
func (a *App) Execute(line string) {
	a.dispatcher.Execute(a.parser.ParseLine(line), dispatcher.ConfigFile)
}

// LoadConfig parses and applies the configuration file at path.
// Errors of individual lines are reported on the status bar; the returned
// error is only set when the file cannot be read. A missing file wraps
// parser.ErrFileNotFound.
func (a *App) LoadConfig(path string) error {
	result, err := a.parser.ParseFileAt(path)
	if err != nil {
		return NewOperationError("load", path, err)
	}
	a.log.WithField("path", path).Info("loaded %d commands, %d errors", len(result.Commands), len(result.Errors))
	a.dispatcher.Execute(result, dispatcher.ConfigFile)
	return nil
}

// ExecuteConfig parses and applies configuration text.
func (a *App) ExecuteConfig(r io.Reader) {
	a.dispatcher.Execute(a.parser.ParseFile(r), dispatcher.ConfigFile)
}

// Closed reports whether the window was closed.
func (a *App) Closed() bool {
	return a.closed
}

// HandleClose cancels the pending question and emits AppClose.
func (a *App) HandleClose() {
	if a.closed {
		return
	}
	a.closed = true
	a.prompts.Deliver("", false)
	a.log.Info("window closed")
	a.sink.AppClose()
}

// reset restores the idle look of the status bar.
func (a *App) reset() {
	a.surfaces.Status.SetMessage(MessageNone, "")
	a.surfaces.Entry.Hide()
	a.surfaces.Completion.Hide()
	a.surfaces.Status.SetModeLabel(a.modes.Current().Label())
	a.modes.ClearShortcut()
}

// showEntry shows an empty entry.
func (a *App) showEntry() {
	a.surfaces.Entry.SetText("")
	a.surfaces.Entry.Show()
}

// returnAfterCommand is called once an activated command line has run.
// A command that asked a question keeps the input mode.
func (a *App) returnAfterCommand() {
	if a.modes.Current().IsInput() {
		return
	}
	a.modes.ReturnToNormal()
}

// handleCommand runs command text coming from the entry or a shortcut.
func (a *App) handleCommand(text string, origin dispatcher.Origin) {
	if origin == dispatcher.Interactive && a.modes.Identifier() != mode.DefaultIdentifier {
		a.specialCommand(text, true)
		a.modes.ReturnToNormal()
		return
	}
	a.dispatcher.Execute(a.parser.ParseLine(text), origin)
}

func (a *App) specialCommand(text string, final bool) {
	a.sink.SpecialCommand(notify.SpecialCommand{
		Identifier: a.modes.Identifier(),
		Text:       text,
		Final:      final,
	})
}

// inputCommand prefills the entry with a command for the user to finish.
func (a *App) inputCommand(text string) {
	a.modes.Enter(mode.Command)
	a.surfaces.Entry.Show()

	names := make([]string, 0, len(a.variables))
	for name := range a.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text = strings.ReplaceAll(text, "<"+name+">", a.variables[name]())
	}

	if !strings.Contains(text, " ") {
		text += " "
	}
	a.surfaces.Entry.SetText(text)
	a.surfaces.Completion.SetCompleter(completion.DefaultID, text)
}

func (a *App) updateCompletions() {
	a.surfaces.Completion.Update(a.modes.Current(), a.surfaces.Entry.Text())
}

// complete puts the selected candidate in the entry.
func (a *App) complete(sel completion.Selection) {
	a.surfaces.Entry.SetText(sel.Text)
}

// showError logs err and shows it on the status bar.
func (a *App) showError(err error) {
	var ue *report.UserError
	if errors.As(err, &ue) && ue.Err != nil {
		a.log.Error("%s: %v", ue.Message, ue.Err)
	} else {
		a.log.Error("%v", err)
	}
	a.surfaces.Status.SetMessage(MessageError, err.Error())
}
