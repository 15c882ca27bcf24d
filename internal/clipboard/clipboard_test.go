package clipboard

import (
	"errors"
	"testing"

	"github.com/dshills/automath/internal/model"
)

func newDoc(text string, caret int) *model.Document {
	doc := model.New(model.WithContent(model.ParagraphFragment(text)))
	_ = doc.Change(func(w *model.Writer) error {
		return w.SetSelection(model.NewRange(caret, caret))
	})
	return doc
}

func TestDataTransfer(t *testing.T) {
	dt := NewDataTransfer()
	dt.SetData(MIMEPlain, "a")
	dt.SetData(MIMEMarkdown, "b")

	if s, ok := dt.GetData(MIMEPlain); !ok || s != "a" {
		t.Errorf("GetData(plain) = %q, %v", s, ok)
	}
	if _, ok := dt.GetData("text/html"); ok {
		t.Error("GetData(html) ok = true, want false")
	}
	types := dt.Types()
	if len(types) != 2 || types[0] != MIMEMarkdown || types[1] != MIMEPlain {
		t.Errorf("Types() = %v", types)
	}
}

func TestClipboard_PastePlainText(t *testing.T) {
	doc := newDoc("Hello", 3)
	c := New(doc)

	var seen *InputTransformation
	var textAtEmit string
	c.InputTransformation().Subscribe(func(in *InputTransformation) {
		seen = in
		textAtEmit = doc.PlainText()
	})

	r, err := c.Paste(PlainText("XY"))
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}

	if got := doc.PlainText(); got != "HeXYllo\n" {
		t.Errorf("PlainText() = %q, want %q", got, "HeXYllo\n")
	}
	if r != model.NewRange(3, 5) {
		t.Errorf("Paste() range = %v, want %v", r, model.NewRange(3, 5))
	}
	if sel := doc.Selection(); sel != model.NewRange(5, 5) {
		t.Errorf("Selection() = %v, want caret after paste", sel)
	}
	if seen == nil {
		t.Fatal("InputTransformation not emitted")
	}
	if seen.Selection != model.NewRange(3, 3) {
		t.Errorf("event selection = %v, want %v", seen.Selection, model.NewRange(3, 3))
	}
	if textAtEmit != "Hello\n" {
		t.Errorf("document at emit = %q, want content not yet inserted", textAtEmit)
	}
}

func TestClipboard_PasteMarkdownPreferred(t *testing.T) {
	doc := newDoc("ab", 2)
	c := New(doc)

	dt := NewDataTransfer()
	dt.SetData(MIMEPlain, "plain")
	dt.SetData(MIMEMarkdown, "# md")

	if _, err := c.Paste(dt); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := doc.PlainText(); got != "amdb\n" {
		t.Errorf("PlainText() = %q, want %q", got, "amdb\n")
	}
}

func TestClipboard_PasteMultipleBlocks(t *testing.T) {
	doc := newDoc("ab", 2)
	c := New(doc)

	if _, err := c.Paste(PlainText("one\n\ntwo")); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := doc.PlainText(); got != "aone\ntwob\n" {
		t.Errorf("PlainText() = %q, want %q", got, "aone\ntwob\n")
	}
}

func TestClipboard_PasteReplacesSelection(t *testing.T) {
	doc := model.New(model.WithContent(model.ParagraphFragment("Hello")))
	_ = doc.Change(func(w *model.Writer) error { return w.SetSelection(model.NewRange(2, 5)) })

	if _, err := New(doc).Paste(PlainText("ipp")); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := doc.PlainText(); got != "Hippo\n" {
		t.Errorf("PlainText() = %q, want Hippo", got)
	}
}

func TestClipboard_PasteNoContent(t *testing.T) {
	tests := []struct {
		name string
		dt   *DataTransfer
		drop bool
	}{
		{"empty transfer", NewDataTransfer(), false},
		{"blank text", PlainText("\n\n"), false},
		{"listener drops content", PlainText("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc("ab", 2)
			c := New(doc)
			if tt.drop {
				c.InputTransformation().Subscribe(func(in *InputTransformation) { in.Content = nil })
			}

			if _, err := c.Paste(tt.dt); !errors.Is(err, ErrNoContent) {
				t.Errorf("Paste() error = %v, want ErrNoContent", err)
			}
			if doc.Version() != 0 {
				t.Errorf("Version() = %d, want 0", doc.Version())
			}
		})
	}
}

func TestClipboard_PasteSchemaViolation(t *testing.T) {
	code := model.BlockFragment(model.NewElement(model.ElementCodeBlock, nil), model.TextFragment("x"))
	doc := model.New(model.WithContent(code))
	c := New(doc)
	c.InputTransformation().Subscribe(func(in *InputTransformation) {
		in.Content = model.ObjectFragment(model.NewElement(model.ElementMath, nil))
	})

	if _, err := c.Paste(PlainText("m")); !errors.Is(err, model.ErrSchemaViolation) {
		t.Errorf("Paste() error = %v, want ErrSchemaViolation", err)
	}
	if got := doc.PlainText(); got != "x\n" {
		t.Errorf("PlainText() = %q, want unchanged", got)
	}
}
