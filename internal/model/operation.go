package model

import "fmt"

// OpType identifies the kind of an operation.
type OpType uint8

const (
	// OpInsert inserts new items at a position.
	OpInsert OpType = iota

	// OpMove moves a flat range of items to another position, possibly in
	// another root. Removal is a move into the graveyard.
	OpMove
)

// String returns the operation type name.
func (t OpType) String() string {
	switch t {
	case OpInsert:
		return "insert"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Operation is a single primitive mutation.
type Operation struct {
	Type OpType

	// Position and Items describe an insert.
	Position Position
	Items    []Item

	// Source and Target describe a move. Target is expressed in the
	// document as it is before the move.
	Source Range
	Target Position
}

// String returns a human-readable description of the operation.
func (op Operation) String() string {
	switch op.Type {
	case OpInsert:
		return fmt.Sprintf("insert %d items at %s", len(op.Items), op.Position)
	case OpMove:
		return fmt.Sprintf("move %s to %s", op.Source, op.Target)
	default:
		return "unknown operation"
	}
}

// IsRemove returns true for moves into the graveyard.
func (op Operation) IsRemove() bool {
	return op.Type == OpMove && op.Target.Root == GraveyardRoot && op.Source.Root() != GraveyardRoot
}

// apply performs op on the document and returns the operation that
// reverts it.
func (d *Document) apply(op Operation) (Operation, error) {
	switch op.Type {
	case OpInsert:
		return d.applyInsert(op)
	case OpMove:
		return d.applyMove(op)
	default:
		return Operation{}, fmt.Errorf("apply %s: unsupported operation", op.Type)
	}
}

func (d *Document) applyInsert(op Operation) (Operation, error) {
	rt, err := d.rootAt(op.Position)
	if err != nil {
		return Operation{}, err
	}
	n := len(op.Items)
	rt.insert(op.Position.Offset, op.Items)
	d.markers.transformInsert(op.Position, n)

	inserted := Range{Start: op.Position, End: Position{Root: op.Position.Root, Offset: op.Position.Offset + n}}
	return Operation{
		Type:   OpMove,
		Source: inserted,
		Target: d.graveyardEnd(),
	}, nil
}

func (d *Document) applyMove(op Operation) (Operation, error) {
	src := op.Source
	if !src.Valid() {
		return Operation{}, fmt.Errorf("move %s: %w", src, ErrRangeInvalid)
	}
	from, err := d.rootAt(src.Start)
	if err != nil {
		return Operation{}, err
	}
	if src.Start.Offset < 0 || src.End.Offset > len(from.items) {
		return Operation{}, fmt.Errorf("move %s: %w", src, ErrPositionInvalid)
	}
	to, err := d.rootAt(op.Target)
	if err != nil {
		return Operation{}, err
	}
	sameRoot := src.Root() == op.Target.Root
	if sameRoot && op.Target.Offset > src.Start.Offset && op.Target.Offset < src.End.Offset {
		return Operation{}, fmt.Errorf("move %s into itself: %w", src, ErrRangeInvalid)
	}

	n := src.Len()
	dst := op.Target
	if dst.Root == GraveyardRoot && !sameRoot {
		// Removed content is always appended to the holding area.
		dst.Offset = len(to.items)
	}
	if dst.Offset < 0 || dst.Offset > len(to.items) {
		return Operation{}, fmt.Errorf("move to %s: %w", dst, ErrPositionInvalid)
	}
	if sameRoot && dst.Offset >= src.End.Offset {
		dst.Offset -= n
	}
	// Position the content leaves behind, expressed after the move.
	hole := src.Start
	if sameRoot && dst.Offset <= src.Start.Offset {
		hole.Offset += n
	}

	if n > 0 && !(sameRoot && dst.Offset == src.Start.Offset) {
		vacate := src.Root() == GraveyardRoot && !sameRoot
		moved := from.remove(src.Start.Offset, src.End.Offset)
		if vacate {
			from.insert(src.Start.Offset, tombstones(n))
		}
		to.insert(dst.Offset, moved)
		d.markers.transformMove(src, dst, vacate)
	}

	return Operation{
		Type:   OpMove,
		Source: Range{Start: dst, End: Position{Root: dst.Root, Offset: dst.Offset + n}},
		Target: hole,
	}, nil
}
