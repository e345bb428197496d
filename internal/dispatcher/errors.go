package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/cmdbar/internal/input/mode"
)

// Dispatcher errors.
var (
	// ErrUnknownMode indicates a map or unmap command named an unregistered prefix.
	ErrUnknownMode = fmt.Errorf("dispatcher: %w", mode.ErrUnknownPrefix)

	// ErrUnknownCommand indicates a command type the dispatcher cannot route.
	ErrUnknownCommand = errors.New("dispatcher: unknown command type")

	// ErrNoSettings indicates a set command reached a dispatcher built
	// without a Settings collaborator.
	ErrNoSettings = errors.New("no settings")
)
