package automath

import "github.com/dshills/automath/internal/model"

// Document is the subset of the document model the plugin drives.
type Document interface {
	Selection() model.Range
	CreateMarker(p model.Position, stick model.Stickiness) model.MarkerID
	ReleaseMarker(id model.MarkerID)
	MarkerPosition(id model.MarkerID) (model.Position, bool)
	Text(r model.Range) string
	Change(fn func(w *model.Writer) error) error
	IsHoldingArea(root string) bool
}

// Commands reports command availability.
type Commands interface {
	IsEnabled(name string) bool
}
