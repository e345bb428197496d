// Package config loads the host options of the command bar.
//
// Options come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. the options file, TOML or YAML chosen by extension
//  3. environment variables prefixed with CMDBAR_
//
// A typical options file:
//
//	message_timeout = "3s"
//
//	[modes]
//	f = "follow"
//
//	[special]
//	"/" = true   # incremental search
//	"?" = false
//
//	[log]
//	level = "debug"
//	file = "~/.cache/cmdbar.log"
//
//	[rc]
//	file = "cmdbarrc"
//	watch = true
//
//	[[commands]]
//	name = "open"
//	help = "Open a URL"
//	arg = "required"
//
//	[settings]
//	hint-chars = "asdf"
//
// Relative paths are resolved against the directory of the options file.
// The command-line grammar of the rc file itself is handled by the parser
// package; this package only says where the rc file lives.
package config
