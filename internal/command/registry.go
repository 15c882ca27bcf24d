package command

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages commands by name.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command under its name.
func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name())
	}
	r.commands[cmd.Name()] = cmd
	return nil
}

// Unregister removes a command.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Has returns true if a command is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// IsEnabled reports whether the named command exists and is enabled.
func (r *Registry) IsEnabled(name string) bool {
	cmd, ok := r.Get(name)
	return ok && cmd.IsEnabled()
}

// Execute notifies the command's OnExecute listeners and runs it.
// Disabled commands are neither announced nor run.
func (r *Registry) Execute(name string, args Args) error {
	cmd, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if !cmd.IsEnabled() {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, name)
	}

	cmd.OnExecute().Emit(ExecuteEvent{Name: name, Args: args})

	if err := cmd.Execute(args); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

// List returns all registered command names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
