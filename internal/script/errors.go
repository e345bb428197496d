package script

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrNoHost is returned by host functions called before Bind.
	ErrNoHost = errors.New("script engine has no host")
)

// CallError is a failure of a Lua handler.
type CallError struct {
	// Handler names the handler, for example "command open".
	Handler string
	Err     error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Handler, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}
