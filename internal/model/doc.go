// Package model implements the in-memory rich document the paste
// conversion engine operates on.
//
// A document holds named roots. The live tree is [MainRoot]; content
// removed from it is moved into the holding area [GraveyardRoot], where it
// stays available for undo. Each root is a linear sequence of items:
// text runes, open/close tokens of container elements (paragraph,
// heading, codeBlock) and single-item object elements (mathtex).
// A [Position] is an offset between two items of a root.
//
// # Changes
//
// All mutations go through [Document.Change]:
//
//	err := doc.Change(func(w *model.Writer) error {
//	    if err := w.Remove(r); err != nil {
//	        return err
//	    }
//	    _, err := w.InsertContent(model.ObjectFragment(el), nil)
//	    return err
//	})
//
// Nested Change calls join the outermost one. Listeners registered on
// [Document.OnChange] are notified once, after the outermost change
// completes, so no intermediate state is observable. A change whose
// callback returns an error is rolled back.
//
// # Markers
//
// Markers are live positions stored in an arena and addressed by
// [MarkerID]. Every operation transforms every live marker according to
// its [Stickiness]. Markers must be released when no longer needed.
package model
