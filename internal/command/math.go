package command

import (
	"github.com/dshills/automath/internal/model"
)

// Math node attribute names.
const (
	AttrEquation = "equation"
	AttrDisplay  = "display"
	AttrType     = "type"
)

// NewMathElement builds a math node.
func NewMathElement(equation string, display bool, outputType string) *model.Element {
	return model.NewElement(model.ElementMath, map[string]any{
		AttrEquation: equation,
		AttrDisplay:  display,
		AttrType:     outputType,
	})
}

// MathCommand inserts a math node at the selection.
type MathCommand struct {
	Base
	doc *model.Document

	// DefaultType is used when no "type" argument is given.
	DefaultType string
}

// NewMathCommand creates the math command.
func NewMathCommand(doc *model.Document, defaultType string) *MathCommand {
	return &MathCommand{Base: NewBase(NameMath), doc: doc, DefaultType: defaultType}
}

// IsEnabled returns true when the schema allows a math node at the start
// of the selection.
func (c *MathCommand) IsEnabled() bool {
	sel := c.doc.Selection()
	math := model.Item{Kind: model.ItemObject, Element: model.NewElement(model.ElementMath, nil)}
	return c.doc.Schema().AllowsItem(c.doc.ContainerAt(sel.Start), math)
}

// Execute replaces the selection with a math node built from the
// "equation", "display" and "type" arguments and selects the node.
func (c *MathCommand) Execute(args Args) error {
	equation, err := args.String(AttrEquation)
	if err != nil {
		return err
	}
	display, err := args.Bool(AttrDisplay)
	if err != nil {
		return err
	}
	outputType := c.DefaultType
	if _, ok := args[AttrType]; ok {
		if outputType, err = args.String(AttrType); err != nil {
			return err
		}
	}

	el := NewMathElement(equation, display, outputType)
	return c.doc.Change(func(w *model.Writer) error {
		sel := w.Document().Selection()
		if !sel.IsCollapsed() {
			if err := w.Remove(sel); err != nil {
				return err
			}
		}
		r, err := w.InsertElement(el, sel.Start)
		if err != nil {
			return err
		}
		return w.SetSelectionOn(r.Start)
	})
}
