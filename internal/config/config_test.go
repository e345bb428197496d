package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/config/loader"
	"github.com/dshills/cmdbar/internal/logging"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

type envMap map[string]any

func (e envMap) Load() (map[string]any, error) {
	return loader.Clone(e), nil
}

const tomlOptions = `
message_timeout = "3s"

[modes]
f = "follow"

[special]
"/" = true
"?" = false

[log]
level = "debug"
file = "cmdbar.log"

[rc]
file = "cmdbarrc"
include_dir = "/etc/cmdbar"

[script]
file = "commands.lua"

[[commands]]
name = "open"
help = "Open a URL"
arg = "required"

[[commands]]
name = "quit"

[settings]
timeout = 9
hint-chars = "asdf"
`

func TestLoadTOML(t *testing.T) {
	cfg, err := Load("/home/u/.config/cmdbar/cmdbar.toml",
		WithFileSystem(memFS{"/home/u/.config/cmdbar/cmdbar.toml": tomlOptions}),
		WithEnv(nil))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", cfg.Timeout())
	}
	if cfg.Modes["f"] != "follow" {
		t.Errorf("Modes = %v, want f=follow", cfg.Modes)
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}

	dir := "/home/u/.config/cmdbar"
	if want := filepath.Join(dir, "cmdbar.log"); cfg.Log.File != want {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, want)
	}
	if want := filepath.Join(dir, "cmdbarrc"); cfg.RC.File != want {
		t.Errorf("RC.File = %q, want %q", cfg.RC.File, want)
	}
	if cfg.RC.IncludeDir != "/etc/cmdbar" {
		t.Errorf("RC.IncludeDir = %q, want /etc/cmdbar", cfg.RC.IncludeDir)
	}
	if !cfg.RC.Watch || cfg.RC.MaxIncludeDepth != 10 {
		t.Errorf("RC = %+v, want defaults for watch and depth", cfg.RC)
	}

	special := cfg.SpecialCommands()
	if len(special) != 2 || !special['/'] || special['?'] {
		t.Errorf("SpecialCommands() = %v, want /:true ?:false", special)
	}

	defs := cfg.Definitions()
	want := []command.Definition{
		{Name: "open", Help: "Open a URL", Arg: command.ArgRequired},
		{Name: "quit", Arg: command.ArgNone},
	}
	if len(defs) != len(want) {
		t.Fatalf("Definitions() = %v, want %v", defs, want)
	}
	for i := range want {
		if defs[i] != want[i] {
			t.Errorf("Definitions()[%d] = %+v, want %+v", i, defs[i], want[i])
		}
	}

	lines := cfg.SettingLines()
	if strings.Join(lines, "|") != "set hint-chars asdf|set timeout 9" {
		t.Errorf("SettingLines() = %q", lines)
	}
}

func TestLoadYAML(t *testing.T) {
	yamlOptions := `
message_timeout: 1500ms
modes:
  h: hints
special:
  "/": true
rc:
  watch: false
`
	cfg, err := Load("/c/cmdbar.yml", WithFileSystem(memFS{"/c/cmdbar.yml": yamlOptions}), WithEnv(nil))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Timeout() != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", cfg.Timeout())
	}
	if cfg.Modes["h"] != "hints" || cfg.RC.Watch {
		t.Errorf("cfg = %+v, want hints mode and no watch", cfg)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nope/cmdbar.toml", WithFileSystem(memFS{}), WithEnv(nil))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load error = %v, want ErrFileNotFound", err)
	}
	if cfg == nil || cfg.MessageTimeout != DefaultMessageTimeout {
		t.Errorf("Load config = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("", WithEnv(envMap{"log": map[string]any{"level": "warn"}}))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel() != logging.LevelWarn {
		t.Errorf("LogLevel() = %v, want warn", cfg.LogLevel())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	env := envMap{
		"log":             map[string]any{"level": "error"},
		"message_timeout": "7s",
	}
	cfg, err := Load("/c/cmdbar.toml", WithFileSystem(memFS{"/c/cmdbar.toml": tomlOptions}), WithEnv(env))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LogLevel() != logging.LevelError {
		t.Errorf("LogLevel() = %v, want error", cfg.LogLevel())
	}
	if cfg.Log.File != "/c/cmdbar.log" {
		t.Errorf("Log.File = %q, want the file value kept", cfg.Log.File)
	}
	if cfg.Timeout() != 7*time.Second {
		t.Errorf("Timeout() = %v, want 7s", cfg.Timeout())
	}
}

func TestLoadUnknownOption(t *testing.T) {
	_, err := Load("/c/cmdbar.toml", WithFileSystem(memFS{"/c/cmdbar.toml": "colour = \"red\"\n"}), WithEnv(nil))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Load error = %v, want *ValidationError", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("/c/cmdbar.json", WithFileSystem(memFS{}), WithEnv(nil))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadParseError(t *testing.T) {
	_, err := Load("/c/cmdbar.toml", WithFileSystem(memFS{"/c/cmdbar.toml": "[modes\n"}), WithEnv(nil))
	var perr *loader.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("Load error = %v, want *loader.ParseError", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
		is     error
	}{
		{"colon identifier", func(c *Config) { c.Special = map[string]bool{":": true} }, "special", ErrInvalidIdentifier},
		{"long identifier", func(c *Config) { c.Special = map[string]bool{"//": true} }, "special", ErrInvalidIdentifier},
		{"blank mode", func(c *Config) { c.Modes = map[string]string{"f": " "} }, "modes", ErrValidationFailed},
		{"timeout", func(c *Config) { c.MessageTimeout = "soon" }, "message_timeout", nil},
		{"negative timeout", func(c *Config) { c.MessageTimeout = "-1s" }, "message_timeout", nil},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level", nil},
		{"depth", func(c *Config) { c.RC.MaxIncludeDepth = -1 }, "rc.max_include_depth", ErrValidationFailed},
		{"command name", func(c *Config) { c.Commands = []CommandConfig{{Name: "two words"}} }, "commands[0].name", ErrValidationFailed},
		{"command arg", func(c *Config) { c.Commands = []CommandConfig{{Name: "x", Arg: "maybe"}} }, "commands[0].arg", ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("Path = %q, want %q", verr.Path, tt.path)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Validate() = %v, want errors.Is %v", err, tt.is)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestSpecialCommandsSkipsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Special = map[string]bool{"/": true, ":": true, "ab": false}

	got := cfg.SpecialCommands()
	if len(got) != 1 || !got['/'] {
		t.Errorf("SpecialCommands() = %v, want only /", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CMDBAR_TEST_DIR", "/data")

	tests := []struct {
		base, in, want string
	}{
		{"/c", "", ""},
		{"/c", "rc", "/c/rc"},
		{"/c", "/abs/rc", "/abs/rc"},
		{"/c", "$CMDBAR_TEST_DIR/rc", "/data/rc"},
		{"", "rc", "rc"},
	}

	for _, tt := range tests {
		if got := resolvePath(tt.base, tt.in); got != tt.want {
			t.Errorf("resolvePath(%q, %q) = %q, want %q", tt.base, tt.in, got, tt.want)
		}
	}
}
