// Package main runs the command bar in a terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "cmdbar",
		Short: "A modal command bar for the terminal",
		Long: `cmdbar runs a vim-like command bar in the terminal.

Options are read from cmdbar.toml (or .yaml) in the user configuration
directory and from CMDBAR_* environment variables. The rc file holds
map, unmap and set commands and is re-run when it changes.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "options file (default <config dir>/cmdbar/cmdbar.toml)")
	fl.StringVar(&f.rcPath, "rc", "", "command file run at startup")
	fl.StringVar(&f.scriptPath, "script", "", "Lua script handling custom commands")
	fl.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fl.StringVar(&f.logFile, "log-file", "", "write the log to this file")
	fl.BoolVar(&f.noWatch, "no-watch", false, "do not re-run the rc file when it changes")

	return cmd
}
