package command

import (
	"github.com/dshills/automath/internal/history"
	"github.com/dshills/automath/internal/model"
)

// UndoCommand reverts the last recorded change.
type UndoCommand struct {
	Base
	history *history.History
	doc     *model.Document
}

// NewUndoCommand creates the undo command.
func NewUndoCommand(h *history.History, doc *model.Document) *UndoCommand {
	return &UndoCommand{Base: NewBase(NameUndo), history: h, doc: doc}
}

// IsEnabled returns true while there is something to undo.
func (c *UndoCommand) IsEnabled() bool {
	return c.history.CanUndo()
}

// Execute undoes the last change.
func (c *UndoCommand) Execute(Args) error {
	return c.history.Undo(c.doc)
}

// RedoCommand re-applies the last undone change.
type RedoCommand struct {
	Base
	history *history.History
	doc     *model.Document
}

// NewRedoCommand creates the redo command.
func NewRedoCommand(h *history.History, doc *model.Document) *RedoCommand {
	return &RedoCommand{Base: NewBase(NameRedo), history: h, doc: doc}
}

// IsEnabled returns true while there is something to redo.
func (c *RedoCommand) IsEnabled() bool {
	return c.history.CanRedo()
}

// Execute redoes the last undone change.
func (c *RedoCommand) Execute(Args) error {
	return c.history.Redo(c.doc)
}
