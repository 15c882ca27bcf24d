package automath

import (
	"fmt"

	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/model"
)

// insertion replaces the pasted text of a conversion by a math node.
type insertion struct {
	doc     Document
	tracker *Tracker
}

// run performs the replacement as one change:
//  1. the target range, resolved now, is removed
//  2. the node goes to the snapshot marker, or to the selection when the
//     marker ended up in the holding area
//  3. the selection is placed on the new node
func (ins *insertion) run(p *PendingConversion) error {
	err := ins.doc.Change(func(w *model.Writer) error {
		if r, ok := ins.tracker.Resolve(p.Target); ok {
			if err := w.Remove(r); err != nil {
				return err
			}
		}

		var at *model.Position
		if pos, ok := ins.doc.MarkerPosition(p.InsertAt); ok && !ins.doc.IsHoldingArea(pos.Root) {
			at = &pos
		}

		el := command.NewMathElement(p.Match.Equation, p.Match.Display, string(p.Match.OutputType))
		r, err := w.InsertContent(model.ObjectFragment(el), at)
		if err != nil {
			return err
		}

		pos, ok := findElement(w.Document(), r, el)
		if !ok {
			return fmt.Errorf("math node not found in %s", r)
		}
		return w.SetSelectionOn(pos)
	})
	if err != nil {
		return fmt.Errorf("insert math: %w", err)
	}
	return nil
}

// findElement returns the position of el within r.
func findElement(doc *model.Document, r model.Range, el *model.Element) (model.Position, bool) {
	for off := r.Start.Offset; off < r.End.Offset; off++ {
		p := model.Position{Root: r.Root(), Offset: off}
		if it, ok := doc.ItemAt(p); ok && it.Element == el {
			return p, true
		}
	}
	return model.Position{}, false
}
