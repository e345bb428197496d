package dispatcher

import (
	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/mode"
	"github.com/dshills/cmdbar/internal/notify"
	"github.com/dshills/cmdbar/internal/report"
	"github.com/dshills/cmdbar/internal/settings"
)

// Settings converts and applies setting values.
type Settings interface {
	ToVariant(name, raw string) (settings.Variant, error)
	Apply(v settings.Variant)
}

// Config holds the collaborators of a Dispatcher.
type Config struct {
	// Modes resolves the prefixes of map and unmap commands.
	Modes *mode.Registry

	// Target receives built-in application actions.
	Target command.Target

	// Settings converts and stores set commands. Without it every set
	// command is reported as an error.
	Settings Settings

	// Sink receives custom commands and setting changes.
	Sink notify.Sink

	// Reporter receives dispatch and parse errors.
	Reporter *report.Reporter

	// ReturnToNormal is called after an interactive batch.
	ReturnToNormal func()

	// EnableMetrics enables dispatch metrics collection.
	EnableMetrics bool
}

// DefaultConfig returns a configuration with only the built-in modes and
// metrics enabled. Collaborators left nil are ignored at dispatch time.
func DefaultConfig() Config {
	modes, _ := mode.NewRegistry(nil)
	return Config{
		Modes:         modes,
		EnableMetrics: true,
	}
}

// WithModes returns a copy with the given mode registry.
func (c Config) WithModes(modes *mode.Registry) Config {
	c.Modes = modes
	return c
}

// WithTarget returns a copy with the given action target.
func (c Config) WithTarget(t command.Target) Config {
	c.Target = t
	return c
}

// WithSettings returns a copy with the given settings collaborator.
func (c Config) WithSettings(s Settings) Config {
	c.Settings = s
	return c
}

// WithSink returns a copy with the given event sink.
func (c Config) WithSink(s notify.Sink) Config {
	c.Sink = s
	return c
}

// WithReporter returns a copy with the given error reporter.
func (c Config) WithReporter(r *report.Reporter) Config {
	c.Reporter = r
	return c
}

// WithReturnToNormal returns a copy with the given mode reset hook.
func (c Config) WithReturnToNormal(fn func()) Config {
	c.ReturnToNormal = fn
	return c
}

// WithMetrics returns a copy with metrics enabled or disabled.
func (c Config) WithMetrics(enabled bool) Config {
	c.EnableMetrics = enabled
	return c
}
