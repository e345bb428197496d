package mode

import "errors"

var (
	// ErrDuplicatePrefix indicates a custom mode tried to claim a taken prefix.
	ErrDuplicatePrefix = errors.New("duplicate mode prefix")

	// ErrInvalidName indicates an unusable custom mode name.
	ErrInvalidName = errors.New("invalid mode name")

	// ErrInvalidPrefix indicates an unusable mode prefix.
	ErrInvalidPrefix = errors.New("invalid mode prefix")

	// ErrUnknownPrefix indicates a prefix that no mode is registered under.
	ErrUnknownPrefix = errors.New("unknown mode prefix")
)
