// Package report turns parse and dispatch errors into messages for the user.
//
// The Reporter only classifies and forwards. Display and logging are up
// to the Sink.
package report

import (
	"errors"
	"fmt"

	"github.com/dshills/cmdbar/internal/command"
)

// UserError carries the message shown to the user for an error.
type UserError struct {
	Message string
	Err     error
}

// NewUserError creates a UserError.
func NewUserError(message string, err error) *UserError {
	return &UserError{Message: message, Err: err}
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Sink receives the errors to surface.
type Sink interface {
	Error(err error)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(err error)

// Error implements Sink.
func (f SinkFunc) Error(err error) {
	f(err)
}

// Reporter classifies errors and hands them to a Sink.
type Reporter struct {
	sink Sink
}

// New creates a reporter writing to sink.
func New(sink Sink) *Reporter {
	return &Reporter{sink: sink}
}

// Classify returns the error to show for err, or nil when it must be
// suppressed. Parse errors become a *UserError wrapping the original.
// Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pe *command.ParseError
	if !errors.As(err, &pe) {
		return err
	}

	var message string
	switch pe.Kind {
	case command.MissingArgument:
		message = "Argument required"
	case command.NoCommand:
		return nil
	case command.Parse:
		message = fmt.Sprintf("Parse error: unexpected %s, expecting: %s", pe.Unexpected, pe.Expected)
	case command.UnknownCommand:
		message = fmt.Sprintf("Not a command: %s", pe.Unexpected)
	default:
		return err
	}
	return NewUserError(message, err)
}

// Report classifies err and forwards it to the sink.
func (r *Reporter) Report(err error) {
	if classified := Classify(err); classified != nil && r.sink != nil {
		r.sink.Error(classified)
	}
}

// ReportAll reports every error independently.
func (r *Reporter) ReportAll(errs []error) {
	for _, err := range errs {
		r.Report(err)
	}
}
