package automath

import "github.com/dshills/automath/internal/model"

// TrackedRange is a live span between two markers. Its text is read
// fresh on every scan.
type TrackedRange struct {
	Left  model.MarkerID
	Right model.MarkerID
}

// Tracker creates and resolves tracked ranges.
type Tracker struct {
	doc Document
}

// NewTracker creates a tracker for doc.
func NewTracker(doc Document) *Tracker {
	return &Tracker{doc: doc}
}

// Capture tracks r. Content inserted exactly at either end is taken into
// the range: the start sticks to the previous item and the end to the
// next one. Capturing a collapsed selection right before a paste
// therefore yields the range of the pasted content.
func (t *Tracker) Capture(r model.Range) TrackedRange {
	return TrackedRange{
		Left:  t.doc.CreateMarker(r.Start, model.StickToPrevious),
		Right: t.doc.CreateMarker(r.End, model.StickToNext),
	}
}

// Derive copies the current extent of tr into a new range that does not
// grow when content is inserted at its ends.
func (t *Tracker) Derive(tr TrackedRange) (TrackedRange, bool) {
	r, ok := t.Resolve(tr)
	if !ok {
		return TrackedRange{}, false
	}
	return TrackedRange{
		Left:  t.doc.CreateMarker(r.Start, model.StickToNext),
		Right: t.doc.CreateMarker(r.End, model.StickToPrevious),
	}, true
}

// Release detaches both markers. Releasing twice is a no-op.
func (t *Tracker) Release(tr TrackedRange) {
	t.doc.ReleaseMarker(tr.Left)
	t.doc.ReleaseMarker(tr.Right)
}

// Resolve returns the current range of tr. It fails when a marker was
// released, the ends live in different roots, or the end moved before
// the start.
func (t *Tracker) Resolve(tr TrackedRange) (model.Range, bool) {
	start, ok := t.doc.MarkerPosition(tr.Left)
	if !ok {
		return model.Range{}, false
	}
	end, ok := t.doc.MarkerPosition(tr.Right)
	if !ok {
		return model.Range{}, false
	}
	r := model.Range{Start: start, End: end}
	if !r.Valid() {
		return model.Range{}, false
	}
	return r, true
}

// ScanText returns the text between the markers in document order,
// ignoring element boundaries.
func (t *Tracker) ScanText(tr TrackedRange) string {
	r, ok := t.Resolve(tr)
	if !ok {
		return ""
	}
	return t.doc.Text(r)
}
