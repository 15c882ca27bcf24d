package model

import (
	"strings"

	"github.com/dshills/automath/internal/event"
)

// root is one linear item sequence.
type root struct {
	name  string
	items []Item
}

func (r *root) insert(at int, items []Item) {
	r.items = append(r.items, make([]Item, len(items))...)
	copy(r.items[at+len(items):], r.items[at:])
	copy(r.items[at:], items)
}

func (r *root) remove(start, end int) []Item {
	removed := make([]Item, end-start)
	copy(removed, r.items[start:end])
	r.items = append(r.items[:start], r.items[end:]...)
	return removed
}

// Document is a rich-text document with live markers and batched,
// revertible changes. It is not safe for concurrent use; callers
// serialize access through the editor loop.
type Document struct {
	roots   map[string]*root
	markers *Markers
	schema  *Schema

	// Selection ends, kept as pinned markers.
	selAnchor MarkerID
	selFocus  MarkerID

	batch   *Batch
	version uint64

	onChange *event.Emitter[ChangeEvent]
}

// Option configures a Document during creation.
type Option func(*Document)

// WithSchema sets the document schema.
func WithSchema(s *Schema) Option {
	return func(d *Document) {
		if s != nil {
			d.schema = s
		}
	}
}

// WithContent sets the initial content of the main root. The content is
// not recorded as a change.
func WithContent(frag Fragment) Option {
	return func(d *Document) {
		d.roots[MainRoot].items = append([]Item(nil), frag...)
	}
}

// New creates a document holding one empty paragraph, with the
// selection collapsed inside it.
func New(opts ...Option) *Document {
	d := &Document{
		roots: map[string]*root{
			MainRoot:      {name: MainRoot, items: ParagraphFragment("")},
			GraveyardRoot: {name: GraveyardRoot},
		},
		markers:  newMarkers(),
		schema:   DefaultSchema(),
		onChange: event.NewEmitter[ChangeEvent](),
	}

	for _, opt := range opts {
		opt(d)
	}

	caret := d.endOfContent()
	d.selAnchor = d.markers.create(caret, StickToNone, true)
	d.selFocus = d.markers.create(caret, StickToNone, true)
	return d
}

// endOfContent returns the last position where text may be typed.
func (d *Document) endOfContent() Position {
	items := d.roots[MainRoot].items
	n := len(items)
	if n > 0 && items[n-1].Kind == ItemClose {
		return Pos(n - 1)
	}
	return Pos(n)
}

// Schema returns the document schema.
func (d *Document) Schema() *Schema {
	return d.schema
}

// OnChange returns the emitter notified after each outermost change that
// modified content.
func (d *Document) OnChange() *event.Emitter[ChangeEvent] {
	return d.onChange
}

// Version returns a counter incremented by every content change.
func (d *Document) Version() uint64 {
	return d.version
}

// Len returns the number of items in a root.
func (d *Document) Len(rootName string) int {
	rt, ok := d.roots[rootName]
	if !ok {
		return 0
	}
	return len(rt.items)
}

// Items returns a copy of a root's items.
func (d *Document) Items(rootName string) []Item {
	rt, ok := d.roots[rootName]
	if !ok {
		return nil
	}
	return append([]Item(nil), rt.items...)
}

// Text walks r and concatenates its text items, ignoring element
// boundaries. Invalid ranges yield "".
func (d *Document) Text(r Range) string {
	if err := d.checkRange(r); err != nil {
		return ""
	}
	var sb strings.Builder
	for _, it := range d.roots[r.Root()].items[r.Start.Offset:r.End.Offset] {
		if it.Kind == ItemText {
			sb.WriteRune(it.Rune)
		}
	}
	return sb.String()
}

// PlainText returns the text of the main root with one line per block.
func (d *Document) PlainText() string {
	var sb strings.Builder
	depth := 0
	for _, it := range d.roots[MainRoot].items {
		switch it.Kind {
		case ItemText:
			sb.WriteRune(it.Rune)
		case ItemOpen:
			depth++
		case ItemClose:
			depth--
			if depth == 0 {
				sb.WriteByte('\n')
			}
		case ItemObject:
			sb.WriteString("<" + it.Element.Name + ">")
		}
	}
	return sb.String()
}

// ItemAt returns the item directly after p.
func (d *Document) ItemAt(p Position) (Item, bool) {
	rt, ok := d.roots[p.Root]
	if !ok || p.Offset < 0 || p.Offset >= len(rt.items) {
		return Item{}, false
	}
	return rt.items[p.Offset], true
}

// ContainerAt returns the element enclosing p, or nil at root level.
func (d *Document) ContainerAt(p Position) *Element {
	rt, ok := d.roots[p.Root]
	if !ok || p.Offset <= 0 || p.Offset > len(rt.items) {
		return nil
	}
	depth := 0
	for i := p.Offset - 1; i >= 0; i-- {
		switch rt.items[i].Kind {
		case ItemClose:
			depth++
		case ItemOpen:
			if depth == 0 {
				return rt.items[i].Element
			}
			depth--
		}
	}
	return nil
}

// IsHoldingArea reports whether rootName is the graveyard.
func (d *Document) IsHoldingArea(rootName string) bool {
	return rootName == GraveyardRoot
}

// Selection returns the document selection, ordered so Start <= End.
func (d *Document) Selection() Range {
	a, _ := d.markers.Position(d.selAnchor)
	f, _ := d.markers.Position(d.selFocus)
	if f.Compare(a) < 0 {
		return Range{Start: f, End: a}
	}
	return Range{Start: a, End: f}
}

// DefaultInsertionPoint returns where content goes when no explicit
// position is given.
func (d *Document) DefaultInsertionPoint() Position {
	return d.Selection().Start
}

// CreateMarker adds a live marker at p.
func (d *Document) CreateMarker(p Position, stick Stickiness) MarkerID {
	return d.markers.Create(p, stick)
}

// ReleaseMarker detaches a marker. Releasing twice is a no-op.
func (d *Document) ReleaseMarker(id MarkerID) {
	if id == d.selAnchor || id == d.selFocus {
		return
	}
	d.markers.Release(id)
}

// MarkerPosition resolves a marker.
func (d *Document) MarkerPosition(id MarkerID) (Position, bool) {
	return d.markers.Position(id)
}

// MarkerStickiness returns the stickiness of a live marker.
func (d *Document) MarkerStickiness(id MarkerID) (Stickiness, bool) {
	return d.markers.Stickiness(id)
}

// MarkerCount returns the number of live markers, including the two
// selection markers.
func (d *Document) MarkerCount() int {
	return d.markers.Len()
}

// Change runs fn as one atomic change. Nested calls join the outermost
// change. If fn returns an error from the outermost call, every
// operation of the batch is reverted and the error is returned.
func (d *Document) Change(fn func(w *Writer) error) error {
	return d.ChangeWithType(BatchDefault, fn)
}

// ChangeWithType is Change with an explicit batch type. The type only
// applies when this call is the outermost change.
func (d *Document) ChangeWithType(t BatchType, fn func(w *Writer) error) error {
	if d.batch != nil {
		return fn(&Writer{doc: d, batch: d.batch})
	}

	b := &Batch{Type: t, SelectionBefore: d.Selection()}
	d.batch = b
	err := fn(&Writer{doc: d, batch: b})
	d.batch = nil

	if err != nil {
		d.rollback(b)
		return err
	}

	b.SelectionAfter = d.Selection()
	if b.Len() == 0 {
		return nil
	}
	d.version++
	d.onChange.Emit(ChangeEvent{Batch: b, Version: d.version})
	return nil
}

// rollback reverts every operation of b and restores the selection.
func (d *Document) rollback(b *Batch) {
	for _, inv := range b.Inverse() {
		_, _ = d.apply(inv)
	}
	d.setSelection(b.SelectionBefore)
}

func (d *Document) setSelection(r Range) {
	d.markers.set(d.selAnchor, r.Start)
	d.markers.set(d.selFocus, r.End)
}

func (d *Document) rootAt(p Position) (*root, error) {
	rt, ok := d.roots[p.Root]
	if !ok {
		return nil, ErrRootNotFound
	}
	if p.Offset < 0 || p.Offset > len(rt.items) {
		return nil, ErrPositionInvalid
	}
	return rt, nil
}

func (d *Document) checkRange(r Range) error {
	if !r.Valid() {
		return ErrRangeInvalid
	}
	if _, err := d.rootAt(r.Start); err != nil {
		return err
	}
	_, err := d.rootAt(r.End)
	return err
}

func (d *Document) graveyardEnd() Position {
	return Position{Root: GraveyardRoot, Offset: len(d.roots[GraveyardRoot].items)}
}
