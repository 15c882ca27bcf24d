package model

// BatchType tells the undo history how to treat a batch.
type BatchType uint8

const (
	// BatchDefault is an ordinary user edit recorded for undo.
	BatchDefault BatchType = iota

	// BatchUndo reverts a previous batch.
	BatchUndo

	// BatchRedo re-applies an undone batch.
	BatchRedo

	// BatchTransparent is applied without being recorded.
	BatchTransparent
)

// String returns the batch type name.
func (t BatchType) String() string {
	switch t {
	case BatchDefault:
		return "default"
	case BatchUndo:
		return "undo"
	case BatchRedo:
		return "redo"
	case BatchTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Batch groups the operations of one outermost change.
type Batch struct {
	Type BatchType

	// Operations lists the applied operations in order.
	Operations []Operation

	// SelectionBefore and SelectionAfter are the document selection at the
	// start and at the end of the change.
	SelectionBefore Range
	SelectionAfter  Range

	inverses []Operation
}

// IsUndoable returns true if the batch should be recorded for undo.
func (b *Batch) IsUndoable() bool {
	return b.Type == BatchDefault
}

// Len returns the number of operations.
func (b *Batch) Len() int {
	return len(b.Operations)
}

// Inverse returns the operations that revert the batch, in the order
// they must be applied.
func (b *Batch) Inverse() []Operation {
	ops := make([]Operation, len(b.inverses))
	for i := range b.inverses {
		ops[i] = b.inverses[len(b.inverses)-1-i]
	}
	return ops
}

func (b *Batch) record(op, inverse Operation) {
	b.Operations = append(b.Operations, op)
	b.inverses = append(b.inverses, inverse)
}

// ChangeEvent is emitted once an outermost change that modified content
// has completed.
type ChangeEvent struct {
	Batch   *Batch
	Version uint64
}
