// Package mode provides the modal state of the command bar.
//
// A Mode is one of a closed set of values:
//   - Normal: shortcuts are matched against the normal mapping table
//   - Command: the entry is shown and the command line is being typed
//   - Input: a non-blocking question waits for an answer
//   - BlockingInput: a question waits while the caller pumps the event loop
//   - Custom: a host-declared mode with its own mapping table
//
// Input and BlockingInput share the bindings of Command (see Mode.Mapping).
//
// # Registry
//
// The Registry maps short prefixes used by map/unmap commands to modes.
// The built-in prefixes are "n" for normal and "c" for command; custom
// modes are declared once when the registry is built:
//
//	reg, err := mode.NewRegistry(map[string]string{"f": "follow"})
//	modes, err := reg.ParsePrefixes("nf") // [normal follow]
//
// # Controller
//
// The Controller owns the active mode, the identifier of the command
// being typed (":" by default) and the shortcut buffer. Display updates
// go through the View interface and mode changes are reported to a
// Listener.
package mode
