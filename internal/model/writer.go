package model

import "fmt"

// Writer performs mutations inside a Document.Change callback.
// A Writer must not be retained after the callback returns.
type Writer struct {
	doc   *Document
	batch *Batch
}

// Document returns the document being changed.
func (w *Writer) Document() *Document {
	return w.doc
}

// Batch returns the batch the writer records into.
func (w *Writer) Batch() *Batch {
	return w.batch
}

// Apply performs a primitive operation and records it in the batch.
func (w *Writer) Apply(op Operation) error {
	if w.doc.batch != w.batch {
		return ErrNotInChange
	}
	inv, err := w.doc.apply(op)
	if err != nil {
		return err
	}
	w.batch.record(op, inv)
	return nil
}

// InsertText inserts text at p. The container at p must allow text.
func (w *Writer) InsertText(text string, p Position) error {
	if text == "" {
		return nil
	}
	if _, err := w.doc.rootAt(p); err != nil {
		return fmt.Errorf("insert text at %s: %w", p, err)
	}
	if p.Root == MainRoot && !w.doc.schema.AllowsText(w.doc.ContainerAt(p)) {
		return fmt.Errorf("insert text at %s: %w", p, ErrSchemaViolation)
	}
	return w.Apply(Operation{Type: OpInsert, Position: p, Items: TextFragment(text)})
}

// InsertElement inserts an object element, or an empty block element, at
// p and returns the range it occupies.
func (w *Writer) InsertElement(el *Element, p Position) (Range, error) {
	var frag Fragment
	if w.doc.schema.IsObject(el.Name) {
		frag = ObjectFragment(el)
	} else {
		frag = BlockFragment(el, nil)
	}
	if p.Root == MainRoot && !w.doc.schema.AllowsItem(w.doc.ContainerAt(p), frag[0]) {
		return Range{}, fmt.Errorf("insert %s at %s: %w", el.Name, p, ErrSchemaViolation)
	}
	return w.insertItems(frag, p)
}

// InsertFragment inserts frag at p without schema checks.
func (w *Writer) InsertFragment(frag Fragment, p Position) (Range, error) {
	return w.insertItems(frag, p)
}

func (w *Writer) insertItems(items []Item, p Position) (Range, error) {
	if err := w.Apply(Operation{Type: OpInsert, Position: p, Items: append([]Item(nil), items...)}); err != nil {
		return Range{}, fmt.Errorf("insert at %s: %w", p, err)
	}
	return Range{Start: p, End: Position{Root: p.Root, Offset: p.Offset + len(items)}}, nil
}

// InsertContent inserts frag the way pasted or programmatic content is
// inserted. With a nil at the content goes to the selection, replacing a
// non-collapsed selection. Blocks inserted inside a text container split
// it; inline content at root level is wrapped in a new paragraph. The
// returned range covers the inserted items.
func (w *Writer) InsertContent(frag Fragment, at *Position) (Range, error) {
	var p Position
	if at != nil {
		p = *at
	} else {
		p = w.doc.DefaultInsertionPoint()
		if sel := w.doc.Selection(); !sel.IsCollapsed() {
			if err := w.Remove(sel); err != nil {
				return Range{}, err
			}
		}
	}
	if _, err := w.doc.rootAt(p); err != nil {
		return Range{}, fmt.Errorf("insert content at %s: %w", p, err)
	}
	if len(frag) == 0 {
		return Collapsed(p), nil
	}

	items, err := w.layoutContent(frag, w.doc.ContainerAt(p))
	if err != nil {
		return Range{}, fmt.Errorf("insert content at %s: %w", p, err)
	}
	return w.insertItems(items, p)
}

// layoutContent adapts frag to be inserted into container.
func (w *Writer) layoutContent(frag Fragment, container *Element) ([]Item, error) {
	schema := w.doc.schema
	blocks := frag.Blocks()

	if container == nil {
		var items []Item
		for _, b := range blocks {
			el := b.Container
			if el == nil {
				el = NewElement(ElementParagraph, nil)
			}
			if !schema.IsBlock(el.Name) || !schema.AllowsInline(el, b.Inline) {
				return nil, ErrSchemaViolation
			}
			items = append(items, BlockFragment(el, b.Inline)...)
		}
		return items, nil
	}

	if len(blocks) == 1 {
		if !schema.AllowsInline(container, blocks[0].Inline) {
			return nil, ErrSchemaViolation
		}
		return blocks[0].Inline, nil
	}

	first, last := blocks[0], blocks[len(blocks)-1]
	lastEl := last.Container
	if lastEl == nil {
		lastEl = NewElement(container.Name, container.Attrs)
	}
	if !schema.AllowsInline(container, first.Inline) || !schema.AllowsInline(lastEl, last.Inline) {
		return nil, ErrSchemaViolation
	}

	items := append([]Item(nil), first.Inline...)
	items = append(items, Item{Kind: ItemClose})
	for _, b := range blocks[1 : len(blocks)-1] {
		el := b.Container
		if el == nil {
			el = NewElement(ElementParagraph, nil)
		}
		items = append(items, BlockFragment(el, b.Inline)...)
	}
	items = append(items, Item{Kind: ItemOpen, Element: lastEl})
	items = append(items, last.Inline...)
	return items, nil
}

// Remove moves the content of r into the graveyard. Container tokens
// whose partner lies outside r are kept, so the tree stays balanced.
// Removing content that is already in the graveyard is a no-op.
func (w *Writer) Remove(r Range) error {
	if err := w.doc.checkRange(r); err != nil {
		return fmt.Errorf("remove %s: %w", r, err)
	}
	if r.Root() == GraveyardRoot || r.IsCollapsed() {
		return nil
	}

	runs := flatRuns(w.doc.roots[r.Root()].items, r.Start.Offset, r.End.Offset)
	for i := len(runs) - 1; i >= 0; i-- {
		src := Range{
			Start: Position{Root: r.Root(), Offset: runs[i][0]},
			End:   Position{Root: r.Root(), Offset: runs[i][1]},
		}
		if err := w.Apply(Operation{Type: OpMove, Source: src, Target: w.doc.graveyardEnd()}); err != nil {
			return fmt.Errorf("remove %s: %w", r, err)
		}
	}
	return nil
}

// Move moves the balanced content of r to p.
func (w *Writer) Move(r Range, p Position) error {
	if err := w.doc.checkRange(r); err != nil {
		return fmt.Errorf("move %s: %w", r, err)
	}
	runs := flatRuns(w.doc.roots[r.Root()].items, r.Start.Offset, r.End.Offset)
	if r.Len() > 0 && (len(runs) != 1 || runs[0][0] != r.Start.Offset || runs[0][1] != r.End.Offset) {
		return fmt.Errorf("move %s: %w", r, ErrRangeNotFlat)
	}
	return w.Apply(Operation{Type: OpMove, Source: r, Target: p})
}

// SetSelection sets the document selection. Both ends must be in the
// main root.
func (w *Writer) SetSelection(r Range) error {
	if r.Start.Root != MainRoot || r.End.Root != MainRoot {
		return fmt.Errorf("set selection %s: %w", r, ErrRangeInvalid)
	}
	if err := w.doc.checkRange(Range{Start: r.Start, End: r.Start}); err != nil {
		return fmt.Errorf("set selection %s: %w", r, err)
	}
	if err := w.doc.checkRange(Range{Start: r.End, End: r.End}); err != nil {
		return fmt.Errorf("set selection %s: %w", r, err)
	}
	w.doc.setSelection(r)
	return nil
}

// SetSelectionOn selects the single item directly after p, typically an
// object element.
func (w *Writer) SetSelectionOn(p Position) error {
	return w.SetSelection(Range{Start: p, End: Position{Root: p.Root, Offset: p.Offset + 1}})
}

// flatRuns returns the maximal [start, end) runs of items within
// [start, end) that can be detached without unbalancing the tree.
func flatRuns(items []Item, start, end int) [][2]int {
	var runs [][2]int
	runStart := -1
	for i := start; i < end; i++ {
		ok := true
		switch items[i].Kind {
		case ItemOpen:
			c := matchClose(items, i)
			ok = c >= 0 && c < end
		case ItemClose:
			o := matchOpen(items, i)
			ok = o >= start
		}
		if ok {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			runs = append(runs, [2]int{runStart, i})
			runStart = -1
		}
	}
	if runStart >= 0 {
		runs = append(runs, [2]int{runStart, end})
	}
	return runs
}
