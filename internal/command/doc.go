// Package command provides the named editor commands and their registry.
//
// A Command reports whether it is enabled for the current document state
// and executes with loosely typed arguments. Before a command runs, the
// registry emits its OnExecute notification; listeners subscribed with a
// high priority observe the command before any other subscriber, which is
// how pending work is cancelled when the user undoes.
//
// Built-in commands:
//   - undo, redo: drive a history.History
//   - math: inserts a math node at the selection where the schema allows it
package command
