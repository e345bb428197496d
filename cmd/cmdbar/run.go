package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/cmdbar/internal/app"
	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/command/parser"
	"github.com/dshills/cmdbar/internal/config"
	"github.com/dshills/cmdbar/internal/config/watcher"
	"github.com/dshills/cmdbar/internal/logging"
	"github.com/dshills/cmdbar/internal/notify"
	"github.com/dshills/cmdbar/internal/script"
	"github.com/dshills/cmdbar/internal/settings"
	"github.com/dshills/cmdbar/internal/ui/terminal"
)

// errNoTerminal is returned when stdin or stdout is not a terminal.
var errNoTerminal = errors.New("cmdbar needs a terminal")

type flags struct {
	configPath string
	rcPath     string
	scriptPath string
	logLevel   string
	logFile    string
	noWatch    bool
}

func run(ctx context.Context, f flags) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg, warnings, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.SetDefault(logger)
	for _, w := range warnings {
		logger.Warn("%v", w)
	}

	store, err := settings.NewStore(declareSettings(cfg)...)
	if err != nil {
		return fmt.Errorf("declaring settings: %w", err)
	}

	engine := script.New(script.WithLogger(logger))
	defer engine.Close()
	if cfg.Script.File != "" {
		if err := engine.DoFile(cfg.Script.File); err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
	}

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer screen.Fini()

	host := terminal.NewHost(screen, nil, terminal.WithLogger(logger))
	notifier := notify.New()
	r := &router{host: host, engine: engine, settings: store, log: logger.WithComponent("router")}
	notifier.Subscribe(r.observe)

	bar, err := app.New(host.Surfaces(), notifier, appOptions(cfg, store, engine, logger))
	if err != nil {
		return err
	}
	host.Bind(bar)
	engine.Bind(bar)

	bar.ExecuteConfig(strings.NewReader(defaultBindings))
	bar.ExecuteConfig(strings.NewReader(strings.Join(cfg.SettingLines(), "\n")))
	loadRC(bar, cfg.RC.File, logger)

	if cfg.RC.File != "" && cfg.RC.Watch {
		w, err := watchRC(host, bar, cfg.RC.File, logger)
		if err != nil {
			logger.Warn("not watching %s: %v", cfg.RC.File, err)
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	host.Print(fmt.Sprintf("cmdbar %s: type : to enter a command, :quit to leave", version))
	err = host.Run(ctx)
	host.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig reads the options file and applies the flags. A missing
// options file named on the command line comes back as a warning.
func loadConfig(f flags) (*config.Config, []error, error) {
	path := f.configPath
	if path == "" {
		if dir, err := config.DefaultDir(); err == nil {
			path = filepath.Join(dir, config.DefaultFileName)
		}
	}

	cfg, err := config.Load(path)
	var warnings []error
	if errors.Is(err, config.ErrFileNotFound) {
		if f.configPath != "" {
			warnings = append(warnings, err)
		}
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}

	if err := applyFlags(cfg, f); err != nil {
		return nil, nil, err
	}
	if cfg.RC.File == "" {
		if dir, err := config.DefaultDir(); err == nil {
			cfg.RC.File = filepath.Join(dir, config.DefaultRCFileName)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, warnings, nil
}

func applyFlags(cfg *config.Config, f flags) error {
	paths := []struct {
		flag string
		dst  *string
	}{
		{f.rcPath, &cfg.RC.File},
		{f.scriptPath, &cfg.Script.File},
		{f.logFile, &cfg.Log.File},
	}
	for _, p := range paths {
		if p.flag == "" {
			continue
		}
		abs, err := filepath.Abs(p.flag)
		if err != nil {
			return err
		}
		*p.dst = abs
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.noWatch {
		cfg.RC.Watch = false
	}
	return nil
}

// openLog opens the log file. Without one everything is discarded, since
// the terminal belongs to the command bar.
func openLog(c config.LogConfig) (*logging.Logger, func(), error) {
	if c.File == "" {
		return logging.Null(), func() {}, nil
	}
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	logger := logging.New(logging.Config{Level: level, Output: file, Prefix: "cmdbar"})
	return logger, func() { _ = file.Close() }, nil
}

func appOptions(cfg *config.Config, store *settings.Store, engine *script.Engine, logger *logging.Logger) app.Options {
	special := cfg.SpecialCommands()
	for _, r := range engine.SpecialIdentifiers() {
		if _, ok := special[r]; !ok {
			special[r] = false
		}
	}

	return app.Options{
		Modes:           cfg.Modes,
		Commands:        mergeDefinitions(builtinCommands, cfg.Definitions(), engine.Definitions()),
		SpecialCommands: special,
		Settings:        store,
		MessageTimeout:  cfg.Timeout(),
		IncludeDir:      cfg.RC.IncludeDir,
		MaxIncludeDepth: cfg.RC.MaxIncludeDepth,
		Logger:          logger,
	}
}

// mergeDefinitions concatenates the command lists. The first definition
// of a name wins.
func mergeDefinitions(lists ...[]command.Definition) []command.Definition {
	seen := make(map[string]bool)
	var out []command.Definition
	for _, defs := range lists {
		for _, d := range defs {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			out = append(out, d)
		}
	}
	return out
}

// loadRC runs the rc file. A missing file is skipped.
func loadRC(bar *app.App, path string, logger *logging.Logger) {
	if path == "" {
		return
	}
	err := bar.LoadConfig(path)
	switch {
	case err == nil:
	case errors.Is(err, parser.ErrFileNotFound):
		logger.Debug("no rc file at %s", path)
	default:
		logger.Error("%v", err)
		bar.Error(err)
	}
}

// watchRC re-runs the rc file on the loop whenever it changes.
func watchRC(host *terminal.Host, bar *app.App, path string, logger *logging.Logger) (io.Closer, error) {
	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		host.AfterFunc(0, func() {
			loadRC(bar, path, logger)
			bar.Info("Reloaded " + filepath.Base(path))
		})
	})
	w.OnError(func(err error) {
		logger.Warn("watching %s: %v", path, err)
	})
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
