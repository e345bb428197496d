package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/command/parser"
	"github.com/dshills/cmdbar/internal/config/loader"
	"github.com/dshills/cmdbar/internal/logging"
)

// Defaults.
const (
	DefaultMessageTimeout = "5s"
	DefaultLogLevel       = "info"
	DefaultFileName       = "cmdbar.toml"
	DefaultRCFileName     = "cmdbarrc"
)

// Config holds the host options.
type Config struct {
	// Modes declares custom modes, prefix -> mode name.
	Modes map[string]string `toml:"modes"`

	// Special maps special identifiers to whether every key release sends
	// an incremental update.
	Special map[string]bool `toml:"special"`

	// MessageTimeout is a time.ParseDuration string.
	MessageTimeout string `toml:"message_timeout"`

	Log      LogConfig       `toml:"log"`
	RC       RCConfig        `toml:"rc"`
	Script   ScriptConfig    `toml:"script"`
	Commands []CommandConfig `toml:"commands"`

	// Settings are applied as "set <name> <value>" before the rc file runs.
	Settings map[string]any `toml:"settings"`

	// path is the options file this configuration was read from.
	path string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`

	// File receives the log. Empty disables logging.
	File string `toml:"file"`
}

// RCConfig locates the command file run at startup.
type RCConfig struct {
	File            string `toml:"file"`
	IncludeDir      string `toml:"include_dir"`
	MaxIncludeDepth int    `toml:"max_include_depth"`

	// Watch re-runs the rc file when it changes.
	Watch bool `toml:"watch"`
}

// ScriptConfig points at the Lua script handling custom commands.
type ScriptConfig struct {
	File string `toml:"file"`
}

// CommandConfig declares a custom command.
type CommandConfig struct {
	Name string `toml:"name"`
	Help string `toml:"help"`

	// Arg is "none" (or empty), "required" or "optional".
	Arg string `toml:"arg"`
}

// Default returns the built-in options.
func Default() *Config {
	return &Config{
		MessageTimeout: DefaultMessageTimeout,
		Log:            LogConfig{Level: DefaultLogLevel},
		RC: RCConfig{
			MaxIncludeDepth: parser.DefaultMaxIncludeDepth,
			Watch:           true,
		},
	}
}

// DefaultDir returns the per-user configuration directory of cmdbar.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cmdbar"), nil
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFileSystem reads the options file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *options) {
		o.env = env
	}
}

// Load reads the options file at path over the defaults and applies the
// environment on top. An empty path skips the file. A missing file
// returns the defaults with an error wrapping ErrFileNotFound.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.DefaultPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var fileMap map[string]any
	var missing error
	if path != "" {
		l, ok := loader.ForFile(o.fs, path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		if m == nil {
			missing = fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		fileMap = m
	}

	var envMap map[string]any
	if o.env != nil {
		m, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		envMap = m
	}

	merged := loader.Merge(fileMap, envMap)
	cfg, err := decode(merged)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayPath(path), err)
	}
	cfg.path = path
	cfg.resolvePaths()
	return cfg, missing
}

// decode applies a generic map over the defaults.
func decode(m map[string]any) (*Config, error) {
	cfg := Default()
	if len(m) == 0 {
		return cfg, nil
	}

	data, err := loader.EncodeTOML(m)
	if err != nil {
		return nil, err
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &ValidationError{Path: "config", Message: "unknown option", Value: strict.String(), Err: err}
		}
		return nil, err
	}
	return cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}

// Path returns the options file the configuration was read from.
func (c *Config) Path() string {
	return c.path
}

// resolvePaths expands environment variables and a leading "~" in file
// options and makes relative paths relative to the options file.
func (c *Config) resolvePaths() {
	base := ""
	if c.path != "" {
		base = filepath.Dir(c.path)
	}
	for _, p := range []*string{&c.Log.File, &c.RC.File, &c.RC.IncludeDir, &c.Script.File} {
		*p = resolvePath(base, *p)
	}
}

func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, rest)
		}
	}
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	return p
}

// Validate checks every option and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	for id := range c.Special {
		r, size := utf8.DecodeRuneInString(id)
		if size == 0 || size != len(id) || r == ':' {
			errs = append(errs, &ValidationError{Path: "special", Message: "identifier must be one character other than ':'", Value: id, Err: ErrInvalidIdentifier})
		}
	}

	for prefix, name := range c.Modes {
		if strings.TrimSpace(prefix) == "" || strings.TrimSpace(name) == "" {
			errs = append(errs, &ValidationError{Path: "modes", Message: "prefix and name must not be blank", Value: prefix + "=" + name})
		}
	}

	if _, err := c.timeout(); err != nil {
		errs = append(errs, &ValidationError{Path: "message_timeout", Message: "invalid duration", Value: c.MessageTimeout, Err: err})
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "log.level", Message: "invalid level", Value: c.Log.Level, Err: err})
	}

	if c.RC.MaxIncludeDepth < 0 {
		errs = append(errs, &ValidationError{Path: "rc.max_include_depth", Message: "must not be negative", Value: c.RC.MaxIncludeDepth})
	}

	for i, cmd := range c.Commands {
		if strings.TrimSpace(cmd.Name) == "" || strings.ContainsAny(cmd.Name, " \t") {
			errs = append(errs, &ValidationError{Path: fmt.Sprintf("commands[%d].name", i), Message: "must be a single word", Value: cmd.Name})
		}
		if _, ok := argKind(cmd.Arg); !ok {
			errs = append(errs, &ValidationError{Path: fmt.Sprintf("commands[%d].arg", i), Message: "must be none, required or optional", Value: cmd.Arg})
		}
	}

	return errors.Join(errs...)
}

func (c *Config) timeout() (time.Duration, error) {
	if c.MessageTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.MessageTimeout)
	if err == nil && d < 0 {
		err = fmt.Errorf("negative duration %s", d)
	}
	return d, err
}

// Timeout returns the message timeout, or 0 for the engine default.
func (c *Config) Timeout() time.Duration {
	d, err := c.timeout()
	if err != nil {
		return 0
	}
	return d
}

// LogLevel returns the parsed log level, info when invalid.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// SpecialCommands returns the special identifiers keyed by rune.
// Invalid identifiers are skipped; Validate reports them.
func (c *Config) SpecialCommands() map[rune]bool {
	out := make(map[rune]bool, len(c.Special))
	for id, always := range c.Special {
		r, size := utf8.DecodeRuneInString(id)
		if size == 0 || size != len(id) || r == ':' {
			continue
		}
		out[r] = always
	}
	return out
}

// Definitions returns the declared custom commands.
func (c *Config) Definitions() []command.Definition {
	defs := make([]command.Definition, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		kind, _ := argKind(cmd.Arg)
		defs = append(defs, command.Definition{Name: cmd.Name, Help: cmd.Help, Arg: kind})
	}
	return defs
}

func argKind(s string) (command.ArgKind, bool) {
	switch strings.ToLower(s) {
	case "", "none":
		return command.ArgNone, true
	case "required":
		return command.ArgRequired, true
	case "optional":
		return command.ArgOptional, true
	default:
		return command.ArgNone, false
	}
}

// SettingLines returns the setting defaults as set commands, sorted by
// setting name.
func (c *Config) SettingLines() []string {
	names := make([]string, 0, len(c.Settings))
	for name := range c.Settings {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("set %s %v", name, c.Settings[name])
	}
	return lines
}
