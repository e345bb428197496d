package config

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates the options file doesn't exist. Load still
	// returns the defaults alongside it.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat indicates an options file extension that is
	// neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidIdentifier indicates a special command identifier that is
	// not a single rune other than ':'.
	ErrInvalidIdentifier = errors.New("invalid special identifier")

	// ErrValidationFailed indicates a value fails validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError describes an invalid option.
type ValidationError struct {
	// Path is the dotted option path, for example "log.level".
	Path    string
	Message string
	Value   any
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns Err, or ErrValidationFailed when no cause is recorded.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidationFailed
}
