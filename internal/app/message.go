package app

// Info shows an informational message that disappears after the message
// timeout.
func (a *App) Info(message string) {
	a.transient(MessageInfo, message)
}

// Warning shows a warning that disappears after the message timeout.
func (a *App) Warning(message string) {
	a.transient(MessageWarning, message)
}

// Alert shows an alert that disappears after the message timeout.
func (a *App) Alert(message string) {
	a.transient(MessageAlert, message)
}

// Error reports err on the status bar and in the log. It stays until the
// next reset.
func (a *App) Error(err error) {
	if err != nil {
		a.reporter.Report(err)
	}
}

// Message returns the message currently shown.
func (a *App) Message() string {
	return a.surfaces.Status.Message()
}

func (a *App) transient(kind MessageKind, message string) {
	a.surfaces.Status.SetMessage(kind, message)

	// A newer message must survive the timer of an older one.
	shown := message
	a.surfaces.Scheduler.AfterFunc(a.messageTimeout, func() {
		if a.surfaces.Status.Message() == shown {
			a.surfaces.Status.SetMessage(MessageNone, "")
		}
	})
}
