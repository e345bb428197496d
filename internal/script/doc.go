// Package script lets a Lua file implement the host commands of the
// command bar.
//
// The script talks to the command bar through the global cmdbar module:
//
//	cmdbar.command("open", function(args)
//	  cmdbar.info("opening " .. args)
//	end, { help = "Open a URL", arg = "required" })
//
//	cmdbar.special("/", function(text, final)
//	  if final then cmdbar.info("search " .. text) end
//	end)
//
//	cmdbar.on_mode(function(name) end)
//	cmdbar.on_setting(function(name, value) end)
//
// Host functions: info, warning, alert, error, execute, set_mode, mode,
// ask and input. ask and input take a callback receiving (answer, ok).
//
// Only the base, table, string and math libraries are opened, and file
// loading functions are removed. Every call into Lua is bounded by a
// timeout.
//
// An Engine is not safe for concurrent use; like the App it serves, it
// must be driven from the event loop goroutine.
package script
