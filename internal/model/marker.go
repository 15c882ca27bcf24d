package model

// MarkerID is a stable handle to a live position.
type MarkerID uint64

// NoMarker is the zero handle; it never resolves.
const NoMarker MarkerID = 0

// marker is an arena slot.
type marker struct {
	pos    Position
	stick  Stickiness
	pinned bool // never carried along with moved content
}

// Markers is the arena of live positions of one document.
// Every operation applied to the document is reported to the arena,
// which re-anchors all live markers in place.
type Markers struct {
	next MarkerID
	live map[MarkerID]*marker
}

func newMarkers() *Markers {
	return &Markers{live: make(map[MarkerID]*marker)}
}

// Create adds a marker at pos.
func (m *Markers) Create(pos Position, stick Stickiness) MarkerID {
	return m.create(pos, stick, false)
}

func (m *Markers) create(pos Position, stick Stickiness, pinned bool) MarkerID {
	m.next++
	m.live[m.next] = &marker{pos: pos, stick: stick, pinned: pinned}
	return m.next
}

// Release detaches a marker. Releasing twice is a no-op.
func (m *Markers) Release(id MarkerID) bool {
	if _, ok := m.live[id]; !ok {
		return false
	}
	delete(m.live, id)
	return true
}

// Position resolves a marker.
func (m *Markers) Position(id MarkerID) (Position, bool) {
	mk, ok := m.live[id]
	if !ok {
		return Position{}, false
	}
	return mk.pos, true
}

// Stickiness returns the stickiness a marker was created with.
func (m *Markers) Stickiness(id MarkerID) (Stickiness, bool) {
	mk, ok := m.live[id]
	if !ok {
		return StickToNone, false
	}
	return mk.stick, true
}

// Len returns the number of live markers.
func (m *Markers) Len() int {
	return len(m.live)
}

// set moves a marker, used for the selection.
func (m *Markers) set(id MarkerID, pos Position) {
	if mk, ok := m.live[id]; ok {
		mk.pos = pos
	}
}

// transformInsert re-anchors markers after n items were inserted at at.
func (m *Markers) transformInsert(at Position, n int) {
	if n == 0 {
		return
	}
	for _, mk := range m.live {
		mk.pos = insertShift(mk.pos, mk.stick, at, n)
	}
}

// transformMove re-anchors markers after the items of src were moved so
// that they now start at dst (dst expressed after the removal). With
// vacate the source root kept its length and nothing behind src shifts.
func (m *Markers) transformMove(src Range, dst Position, vacate bool) {
	n := src.Len()
	if n == 0 {
		return
	}
	for _, mk := range m.live {
		if !mk.pinned && movesWith(mk.pos, mk.stick, src) {
			mk.pos = Position{Root: dst.Root, Offset: dst.Offset + mk.pos.Offset - src.Start.Offset}
			continue
		}
		p := mk.pos
		if !vacate && p.Root == src.Root() && p.Offset > src.Start.Offset {
			if p.Offset >= src.End.Offset {
				p.Offset -= n
			} else {
				p.Offset = src.Start.Offset
			}
		}
		mk.pos = insertShift(p, mk.stick, dst, n)
	}
}

// insertShift applies an insertion of n items at at to p.
func insertShift(p Position, stick Stickiness, at Position, n int) Position {
	if p.Root != at.Root {
		return p
	}
	if p.Offset > at.Offset || (p.Offset == at.Offset && stick != StickToPrevious) {
		p.Offset += n
	}
	return p
}

// movesWith reports whether a marker at p travels with the moved range.
func movesWith(p Position, stick Stickiness, src Range) bool {
	if p.Root != src.Root() {
		return false
	}
	switch {
	case p.Offset > src.Start.Offset && p.Offset < src.End.Offset:
		return true
	case p.Offset == src.Start.Offset:
		return stick == StickToNext
	case p.Offset == src.End.Offset:
		return stick == StickToPrevious
	default:
		return false
	}
}
