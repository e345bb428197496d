package dispatcher

import (
	"fmt"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/keymap"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/report"
)

// Origin tells where a batch of commands came from.
type Origin uint8

const (
	// Interactive is a command line typed and activated by the user.
	Interactive Origin = iota

	// Shortcut is a complete command produced by a key sequence.
	Shortcut

	// ConfigFile is a line of a configuration file or rc text.
	ConfigFile
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case Interactive:
		return "interactive"
	case Shortcut:
		return "shortcut"
	case ConfigFile:
		return "config"
	default:
		return "unknown"
	}
}

// Dispatcher applies commands. It owns the mapping table.
type Dispatcher struct {
	config  Config
	table   *keymap.Table
	metrics *Metrics
}

// New creates a dispatcher with an empty mapping table.
func New(config Config) *Dispatcher {
	if config.Modes == nil {
		config.Modes, _ = mode.NewRegistry(nil)
	}
	d := &Dispatcher{
		config: config,
		table:  keymap.NewTable(),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// Table returns read access to the mapping table.
func (d *Dispatcher) Table() keymap.Lookup {
	return d.table
}

// Bindings returns the bindings of mode m.
func (d *Dispatcher) Bindings(m mode.Mode) []keymap.Binding {
	return d.table.Bindings(m)
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Execute applies every command of result in order and reports its parse
// errors. An interactive batch returns the session to Normal mode.
func (d *Dispatcher) Execute(result command.ParseResult, origin Origin) {
	for _, cmd := range result.Commands {
		if err := d.Dispatch(cmd); err != nil {
			d.report(err)
		}
	}
	for _, err := range result.Errors {
		d.report(err)
	}
	if origin == Interactive && d.config.ReturnToNormal != nil {
		d.config.ReturnToNormal()
	}
}

// Dispatch applies a single command.
func (d *Dispatcher) Dispatch(cmd command.Command) error {
	var (
		kind string
		err  error
	)

	switch c := cmd.(type) {
	case command.App:
		kind = "app"
		if d.config.Target != nil {
			c.Action.Run(d.config.Target)
		}
	case command.Custom:
		kind = "custom"
		if d.config.Sink != nil {
			d.config.Sink.CustomCommand(c)
		}
	case command.Map:
		kind = "map"
		err = d.mapKeys(c)
	case command.Unmap:
		kind = "unmap"
		err = d.unmapKeys(c)
	case command.Set:
		kind = "set"
		err = d.set(c)
	default:
		kind = "unknown"
		err = fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	if d.metrics != nil {
		d.metrics.Record(kind, err)
	}
	return err
}

func (d *Dispatcher) mapKeys(c command.Map) error {
	m, ok := d.config.Modes.Resolve(c.Prefix)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Prefix)
	}
	if err := d.table.Map(m, c.Keys, c.Action); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return nil
}

func (d *Dispatcher) unmapKeys(c command.Unmap) error {
	m, ok := d.config.Modes.Resolve(c.Prefix)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Prefix)
	}
	d.table.Unmap(m, c.Keys)
	return nil
}

func (d *Dispatcher) set(c command.Set) error {
	if d.config.Settings == nil {
		return report.NewUserError("Error setting value: "+ErrNoSettings.Error(), ErrNoSettings)
	}
	v, err := d.config.Settings.ToVariant(c.Name, c.Value)
	if err != nil {
		return report.NewUserError("Error setting value: "+err.Error(), err)
	}
	d.config.Settings.Apply(v)
	if d.config.Sink != nil {
		d.config.Sink.SettingChanged(v)
	}
	return nil
}

func (d *Dispatcher) report(err error) {
	if d.config.Reporter != nil {
		d.config.Reporter.Report(err)
	}
}
