package command

import "errors"

// Command errors.
var (
	// ErrUnknownCommand indicates no command is registered under a name.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrDuplicateCommand indicates a name is already registered.
	ErrDuplicateCommand = errors.New("command: already registered")

	// ErrCommandDisabled indicates the command cannot run in the current state.
	ErrCommandDisabled = errors.New("command: disabled")

	// ErrInvalidArgs indicates missing or mistyped arguments.
	ErrInvalidArgs = errors.New("command: invalid arguments")
)
