// Package terminal hosts the command bar in a terminal with tcell.
//
// A Host provides every surface an app.App needs: the line editor
// (Entry), the status bar, the completion view, the event loop and a
// scheduler. Scheduled functions are posted to the screen as interrupt
// events, so they always run on the goroutine stepping the loop.
//
//	screen, err := terminal.NewScreen()
//	host := terminal.NewHost(screen, nil)
//	bar, err := app.New(host.Surfaces(), sink, opts)
//	host.Bind(bar)
//	err = host.Run(ctx)
//
// Terminals do not report key releases; each press is followed by its
// release.
package terminal
