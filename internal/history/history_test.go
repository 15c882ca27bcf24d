package history

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/automath/internal/model"
)

// Helper to create a tracked document holding one paragraph.
func newTestDocument(text string) (*model.Document, *History) {
	doc := model.New(model.WithContent(model.ParagraphFragment(text)))
	h := New(100)
	h.Track(doc)
	return doc, h
}

func mainText(doc *model.Document) string {
	return doc.Text(model.NewRange(0, doc.Len(model.MainRoot)))
}

func insert(t *testing.T, doc *model.Document, text string, offset int) {
	t.Helper()
	err := doc.Change(func(w *model.Writer) error {
		if err := w.InsertText(text, model.Pos(offset)); err != nil {
			return err
		}
		return w.SetSelection(model.NewRange(offset+len(text), offset+len(text)))
	})
	if err != nil {
		t.Fatalf("insert %q: %v", text, err)
	}
}

func remove(t *testing.T, doc *model.Document, start, end int) {
	t.Helper()
	if err := doc.Change(func(w *model.Writer) error { return w.Remove(model.NewRange(start, end)) }); err != nil {
		t.Fatalf("remove [%d,%d): %v", start, end, err)
	}
}

func TestHistoryTrackAndUndo(t *testing.T) {
	doc, h := newTestDocument("Hello")

	insert(t, doc, " World", 6)
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}

	if err := h.Undo(doc); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := mainText(doc); got != "Hello" {
		t.Errorf("text = %q, want Hello", got)
	}
	if sel := doc.Selection(); sel != model.NewRange(6, 6) {
		t.Errorf("Selection() = %v, want %v", sel, model.NewRange(6, 6))
	}
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("counts = %d/%d, want 0/1", h.UndoCount(), h.RedoCount())
	}
}

func TestHistoryRedo(t *testing.T) {
	doc, h := newTestDocument("Hello")

	insert(t, doc, "!", 6)
	_ = h.Undo(doc)

	if err := h.Redo(doc); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if got := mainText(doc); got != "Hello!" {
		t.Errorf("text = %q, want Hello!", got)
	}
	if sel := doc.Selection(); sel != model.NewRange(7, 7) {
		t.Errorf("Selection() = %v, want %v", sel, model.NewRange(7, 7))
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", h.UndoCount())
	}
}

func TestHistoryUndoRedoSequence(t *testing.T) {
	doc, h := newTestDocument("abc")

	remove(t, doc, 1, 2) // "bc"
	insert(t, doc, "xy", 2)
	remove(t, doc, 2, 4) // "bc" again

	states := []string{"abc", "bc", "bxyc"}
	final := mainText(doc)

	for i := len(states) - 1; i >= 0; i-- {
		if err := h.Undo(doc); err != nil {
			t.Fatalf("Undo() #%d error = %v", i, err)
		}
		if got := mainText(doc); got != states[i] {
			t.Errorf("after undo #%d text = %q, want %q", i, got, states[i])
		}
	}

	for i := 1; i < len(states); i++ {
		if err := h.Redo(doc); err != nil {
			t.Fatalf("Redo() #%d error = %v", i, err)
		}
		if got := mainText(doc); got != states[i] {
			t.Errorf("after redo #%d text = %q, want %q", i, got, states[i])
		}
	}
	if err := h.Redo(doc); err != nil {
		t.Fatalf("final Redo() error = %v", err)
	}
	if got := mainText(doc); got != final {
		t.Errorf("after full redo text = %q, want %q", got, final)
	}
}

func TestHistoryRedoClearedOnPush(t *testing.T) {
	doc, h := newTestDocument("Hello")

	insert(t, doc, "a", 1)
	_ = h.Undo(doc)
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}

	insert(t, doc, "b", 1)
	if h.CanRedo() {
		t.Error("redo stack should be cleared after a new change")
	}
}

func TestHistoryIgnoresUndoAndTransparentBatches(t *testing.T) {
	doc, h := newTestDocument("Hello")

	_ = doc.ChangeWithType(model.BatchTransparent, func(w *model.Writer) error {
		return w.InsertText("x", model.Pos(1))
	})
	if h.UndoCount() != 0 {
		t.Errorf("transparent batch recorded, UndoCount() = %d", h.UndoCount())
	}

	insert(t, doc, "y", 1)
	_ = h.Undo(doc)
	if h.UndoCount() != 0 {
		t.Errorf("undo batch recorded, UndoCount() = %d", h.UndoCount())
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	doc := model.New(model.WithContent(model.ParagraphFragment("")))
	h := New(3)
	h.Track(doc)

	for i := 0; i < 5; i++ {
		insert(t, doc, "a", 1)
	}

	if h.UndoCount() != 3 {
		t.Errorf("UndoCount() = %d, want 3", h.UndoCount())
	}

	h.SetMaxEntries(1)
	if h.UndoCount() != 1 || h.MaxEntries() != 1 {
		t.Errorf("after SetMaxEntries(1): count %d, max %d", h.UndoCount(), h.MaxEntries())
	}

	h.SetMaxEntries(0)
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries() = %d, want %d", h.MaxEntries(), DefaultMaxEntries)
	}
}

func TestHistoryErrors(t *testing.T) {
	doc, h := newTestDocument("")

	if err := h.Undo(doc); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if err := h.Redo(doc); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestBatchCommandExecuteBeforeUndo(t *testing.T) {
	doc := model.New()
	cmd := NewBatchCommand(&model.Batch{})

	if err := cmd.Execute(doc); !errors.Is(err, ErrNotUndone) {
		t.Errorf("Execute() error = %v, want ErrNotUndone", err)
	}
}

func TestHistoryClear(t *testing.T) {
	doc, h := newTestDocument("")
	insert(t, doc, "a", 1)
	insert(t, doc, "b", 2)
	_ = h.Undo(doc)

	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("history not cleared")
	}
}

func TestHistoryPeek(t *testing.T) {
	doc, h := newTestDocument("")
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return at }

	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo() ok = true on empty history")
	}
	insert(t, doc, "ab", 1)

	info, ok := h.PeekUndo()
	if !ok {
		t.Fatal("PeekUndo() ok = false")
	}
	if !info.Timestamp.Equal(at) || info.Operations != 1 || info.Description == "" {
		t.Errorf("PeekUndo() = %+v", info)
	}

	_ = h.Undo(doc)
	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo() ok = true after undo")
	}
	if redo, ok := h.PeekRedo(); !ok || redo != info {
		t.Errorf("PeekRedo() = %+v, %v, want %+v", redo, ok, info)
	}
}

type failingCommand struct{ undos int }

func (c *failingCommand) Execute(*model.Document) error { return errors.New("redo failed") }
func (c *failingCommand) Undo(*model.Document) error {
	c.undos++
	if c.undos == 1 {
		return errors.New("undo failed")
	}
	return nil
}
func (c *failingCommand) Description() string { return "failing" }

func TestHistoryFailedStepsStay(t *testing.T) {
	doc := model.New()
	h := New(10)
	cmd := &failingCommand{}
	h.Push(cmd)

	if err := h.Undo(doc); err == nil {
		t.Fatal("Undo() error = nil")
	}
	if h.UndoCount() != 1 || h.RedoCount() != 0 {
		t.Errorf("after failed undo: undo %d, redo %d", h.UndoCount(), h.RedoCount())
	}

	if err := h.Undo(doc); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if err := h.Redo(doc); err == nil {
		t.Fatal("Redo() error = nil")
	}
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("after failed redo: undo %d, redo %d", h.UndoCount(), h.RedoCount())
	}
}

func TestHistoryMarkersSurviveUndo(t *testing.T) {
	doc, h := newTestDocument("Hello")
	id := doc.CreateMarker(model.Pos(3), model.StickToNone)

	remove(t, doc, 2, 5)
	if err := h.Undo(doc); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}

	if p, ok := doc.MarkerPosition(id); !ok || p != model.Pos(3) {
		t.Errorf("marker = %v, want %v", p, model.Pos(3))
	}
}
