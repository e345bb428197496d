package command

import (
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	// MissingArgument means a command needs an argument that was not given.
	MissingArgument ErrorKind = iota
	// NoCommand means the line held no command at all.
	NoCommand
	// Parse means the line did not match the grammar.
	Parse
	// UnknownCommand means the command name is not known.
	UnknownCommand
)

func (k ErrorKind) String() string {
	switch k {
	case MissingArgument:
		return "missing argument"
	case NoCommand:
		return "no command"
	case Parse:
		return "parse"
	case UnknownCommand:
		return "unknown command"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ParseError is an error found while parsing one line.
type ParseError struct {
	Kind       ErrorKind
	Unexpected string // Offending text
	Expected   string // What the grammar wanted instead
	Line       int    // 1-based line number, 0 when unknown
	Err        error  // Underlying error
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case Parse:
		msg = fmt.Sprintf("unexpected %s, expecting %s", e.Unexpected, e.Expected)
	case UnknownCommand:
		msg = fmt.Sprintf("unknown command %s", e.Unexpected)
	default:
		msg = e.Kind.String()
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
