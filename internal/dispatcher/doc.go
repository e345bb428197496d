// Package dispatcher applies typed commands to the command bar.
//
// Commands arrive already parsed, one batch at a time, and are applied in
// order:
//
//   - App runs a built-in action against the entry and completion view.
//   - Custom is forwarded verbatim to the host through notify.Sink.
//   - Map and Unmap resolve their mode prefix and change the mapping table.
//   - Set coerces the raw value through the settings collaborator, applies
//     it and emits a setting-changed event.
//
// An error in one command never aborts the rest of the batch. Errors are
// handed to the report.Reporter. A batch typed by the user returns the
// session to Normal mode once it has run; batches coming from shortcuts or
// configuration files leave the mode alone.
//
// The dispatcher is the only writer of the keymap.Table. The shortcut
// matcher reads it through Lookup.
package dispatcher
