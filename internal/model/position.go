package model

import "fmt"

// Root names.
const (
	// MainRoot is the live document tree.
	MainRoot = "main"

	// GraveyardRoot is the holding area for removed content.
	GraveyardRoot = "$graveyard"
)

// Position is an offset between two items of a root.
type Position struct {
	Root   string
	Offset int
}

// Pos returns a position in the main root.
func Pos(offset int) Position {
	return Position{Root: MainRoot, Offset: offset}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Root, p.Offset)
}

// Compare returns -1, 0 or 1. Positions in different roots compare by
// root name so the result is stable, not meaningful.
func (p Position) Compare(other Position) int {
	if p.Root != other.Root {
		if p.Root < other.Root {
			return -1
		}
		return 1
	}
	switch {
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// Range is a span between two positions of the same root.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range in the main root.
func NewRange(start, end int) Range {
	return Range{Start: Pos(start), End: Pos(end)}
}

// Collapsed returns a zero-length range at p.
func Collapsed(p Position) Range {
	return Range{Start: p, End: p}
}

// IsCollapsed returns true if the range is empty.
func (r Range) IsCollapsed() bool {
	return r.Start == r.End
}

// Valid returns true if both ends share a root and Start <= End.
func (r Range) Valid() bool {
	return r.Start.Root == r.End.Root && r.Start.Offset <= r.End.Offset
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

// Root returns the root both ends belong to.
func (r Range) Root() string {
	return r.Start.Root
}

// Contains returns true if p lies within [Start, End].
func (r Range) Contains(p Position) bool {
	return p.Root == r.Start.Root && p.Offset >= r.Start.Offset && p.Offset <= r.End.Offset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	if r.Start.Root == r.End.Root {
		return fmt.Sprintf("%s:[%d,%d]", r.Start.Root, r.Start.Offset, r.End.Offset)
	}
	return fmt.Sprintf("[%s,%s]", r.Start, r.End)
}

// Stickiness decides how a marker re-anchors when content is inserted
// exactly at it or moved away from beside it.
type Stickiness uint8

const (
	// StickToNone keeps the marker between its neighbours; content inserted
	// at the marker ends up before it.
	StickToNone Stickiness = iota

	// StickToPrevious binds the marker to the item before it. Content
	// inserted at the marker ends up after it.
	StickToPrevious

	// StickToNext binds the marker to the item after it. Content inserted
	// at the marker ends up before it.
	StickToNext
)

// String returns the stickiness name.
func (s Stickiness) String() string {
	switch s {
	case StickToNone:
		return "toNone"
	case StickToPrevious:
		return "toPrevious"
	case StickToNext:
		return "toNext"
	default:
		return "unknown"
	}
}
