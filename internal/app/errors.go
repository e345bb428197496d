package app

import "errors"

var (
	// ErrWindowClosed is returned by blocking questions when the window
	// closes before an answer arrives.
	ErrWindowClosed = errors.New("window closed")

	// ErrUnknownMode is returned by SetMode for a mode nobody declared.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrInvalidIdentifier is returned by New for a special command
	// identifier that is ':' or the zero rune.
	ErrInvalidIdentifier = errors.New("invalid special command identifier")

	// ErrMissingSurface is returned by New when Surfaces lacks a collaborator.
	ErrMissingSurface = errors.New("missing surface")

	errBlockingDialog = errors.New("blocking dialog needs BlockingCustomDialog")
)

// OperationError ties a failure to what the app was doing and on what,
// for example "load /home/me/.cmdbarrc: ...".
type OperationError struct {
	Op     string
	Target string
	Err    error
}

// NewOperationError wraps err.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	s := e.Op
	if e.Target != "" {
		s += " " + e.Target
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
