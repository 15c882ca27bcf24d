package history

import (
	"errors"
	"fmt"

	"github.com/dshills/automath/internal/model"
)

// ErrNotUndone is returned when a batch command is redone before it was
// undone.
var ErrNotUndone = errors.New("command has not been undone")

// Command represents a recorded edit that can be undone and redone.
type Command interface {
	// Execute re-applies the command after it was undone.
	Execute(doc *model.Document) error

	// Undo reverses the command and returns an error if it fails.
	Undo(doc *model.Document) error

	// Description returns a human-readable description of the command.
	Description() string
}

// BatchCommand is a completed document batch.
type BatchCommand struct {
	batch  *model.Batch
	undone *model.Batch
}

// NewBatchCommand wraps a batch that has already been applied.
func NewBatchCommand(b *model.Batch) *BatchCommand {
	return &BatchCommand{batch: b}
}

// Batch returns the recorded batch.
func (c *BatchCommand) Batch() *model.Batch {
	return c.batch
}

// Undo applies the inverse of the batch and restores the selection the
// batch started with.
func (c *BatchCommand) Undo(doc *model.Document) error {
	err := doc.ChangeWithType(model.BatchUndo, func(w *model.Writer) error {
		if err := applyAll(w, c.batch.Inverse()); err != nil {
			return err
		}
		c.undone = w.Batch()
		return w.SetSelection(c.batch.SelectionBefore)
	})
	if err != nil {
		c.undone = nil
		return fmt.Errorf("undo %s: %w", c.Description(), err)
	}
	return nil
}

// Execute reverts the undo and restores the selection the batch ended
// with.
func (c *BatchCommand) Execute(doc *model.Document) error {
	if c.undone == nil {
		return ErrNotUndone
	}
	err := doc.ChangeWithType(model.BatchRedo, func(w *model.Writer) error {
		if err := applyAll(w, c.undone.Inverse()); err != nil {
			return err
		}
		return w.SetSelection(c.batch.SelectionAfter)
	})
	if err != nil {
		return fmt.Errorf("redo %s: %w", c.Description(), err)
	}
	c.undone = nil
	return nil
}

// Description returns a human-readable description.
func (c *BatchCommand) Description() string {
	if c.batch.Len() == 1 {
		return c.batch.Operations[0].String()
	}
	return fmt.Sprintf("%d operations", c.batch.Len())
}

func applyAll(w *model.Writer, ops []model.Operation) error {
	for _, op := range ops {
		if err := w.Apply(op); err != nil {
			return err
		}
	}
	return nil
}
