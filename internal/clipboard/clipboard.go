package clipboard

import (
	"fmt"

	"github.com/dshills/automath/internal/event"
	"github.com/dshills/automath/internal/logging"
	"github.com/dshills/automath/internal/model"
)

// InputTransformation is emitted after pasted data has been converted
// and before it is inserted. Listeners may replace Content.
type InputTransformation struct {
	Data    *DataTransfer
	Content model.Fragment

	// Selection is the document selection at the moment of the paste,
	// which is where the content will go.
	Selection model.Range
}

// Clipboard inserts pasted data into a document.
type Clipboard struct {
	doc      *model.Document
	markdown *markdownConverter
	logger   *logging.Logger

	onInput *event.Emitter[*InputTransformation]
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Clipboard) {
		c.logger = logging.OrDiscard(l).Named("clipboard")
	}
}

// New creates a clipboard bound to doc.
func New(doc *model.Document, opts ...Option) *Clipboard {
	c := &Clipboard{
		doc:      doc,
		markdown: newMarkdownConverter(),
		logger:   logging.Discard,
		onInput:  event.NewEmitter[*InputTransformation](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InputTransformation returns the emitter notified before pasted content
// is inserted.
func (c *Clipboard) InputTransformation() *event.Emitter[*InputTransformation] {
	return c.onInput
}

// Convert turns a data transfer into a fragment. Markdown is preferred
// over plain text.
func (c *Clipboard) Convert(dt *DataTransfer) model.Fragment {
	if s, ok := dt.GetData(MIMEMarkdown); ok {
		return c.markdown.convert(s)
	}
	if s, ok := dt.GetData(MIMEPlain); ok {
		return plainToFragment(s)
	}
	return nil
}

// Paste converts dt and inserts it at the selection, replacing a
// non-collapsed selection. It returns the range of the inserted items.
func (c *Clipboard) Paste(dt *DataTransfer) (model.Range, error) {
	frag := c.Convert(dt)
	if len(frag) == 0 {
		return model.Range{}, ErrNoContent
	}

	input := &InputTransformation{
		Data:      dt,
		Content:   frag,
		Selection: c.doc.Selection(),
	}
	c.onInput.Emit(input)
	if len(input.Content) == 0 {
		return model.Range{}, ErrNoContent
	}

	var inserted model.Range
	err := c.doc.Change(func(w *model.Writer) error {
		r, err := w.InsertContent(input.Content, nil)
		if err != nil {
			return err
		}
		inserted = r
		return w.SetSelection(model.Collapsed(r.End))
	})
	if err != nil {
		c.logger.Warn("paste rejected: %v", err)
		return model.Range{}, fmt.Errorf("paste: %w", err)
	}

	c.logger.Debug("pasted %d items at %s", inserted.Len(), inserted.Start)
	return inserted, nil
}
