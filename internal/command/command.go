package command

import (
	"fmt"

	"github.com/dshills/automath/internal/event"
)

// Well-known command names.
const (
	NameUndo = "undo"
	NameRedo = "redo"
	NameMath = "math"
)

// Args holds command arguments.
type Args map[string]any

// String returns a string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidArgs, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrInvalidArgs, key, v)
	}
	return s, nil
}

// Bool returns a bool argument, false when absent.
func (a Args) Bool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is %T, want bool", ErrInvalidArgs, key, v)
	}
	return b, nil
}

// ExecuteEvent is emitted right before a command runs.
type ExecuteEvent struct {
	Name string
	Args Args
}

// Command is a named, stateful editor action.
type Command interface {
	// Name returns the registry name.
	Name() string

	// IsEnabled reports whether the command can run now.
	IsEnabled() bool

	// Execute runs the command.
	Execute(args Args) error

	// OnExecute returns the emitter notified before each execution.
	OnExecute() *event.Emitter[ExecuteEvent]
}

// Base implements the name and notification parts of Command.
type Base struct {
	name      string
	onExecute *event.Emitter[ExecuteEvent]
}

// NewBase creates a Base for a command name.
func NewBase(name string) Base {
	return Base{name: name, onExecute: event.NewEmitter[ExecuteEvent]()}
}

// Name returns the command name.
func (b *Base) Name() string {
	return b.name
}

// OnExecute returns the emitter notified before each execution.
func (b *Base) OnExecute() *event.Emitter[ExecuteEvent] {
	return b.onExecute
}
