package editor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/automath/internal/automath"
	"github.com/dshills/automath/internal/clipboard"
	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/export"
	"github.com/dshills/automath/internal/schedule"
)

func newManualEditor(t *testing.T) (*Editor, *schedule.Manual) {
	t.Helper()
	clock := schedule.NewManual(time.Unix(0, 0))
	opts := DefaultOptions()
	opts.Scheduler = clock
	e := New(opts)
	t.Cleanup(func() { _ = e.Close() })
	return e, clock
}

func markdown(t *testing.T, e *Editor) string {
	t.Helper()
	out, err := e.Export(export.FormatMarkdown)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	return string(out)
}

func TestEditor_PasteConvertsEquation(t *testing.T) {
	e, clock := newManualEditor(t)

	if err := e.Type("Area: "); err != nil {
		t.Fatalf("Type() error = %v", err)
	}
	if err := e.Paste(clipboard.PlainText(`\(\pi r^2\)`)); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}

	st, _ := e.Status()
	if st.Pending != `\pi r^2` {
		t.Errorf("Status().Pending = %q, want %q", st.Pending, `\pi r^2`)
	}
	if got := markdown(t, e); got != "Area: \\\\(\\\\pi r^2\\\\)\n" {
		t.Errorf("markdown before commit = %q", got)
	}

	clock.Advance(config.DefaultDelay)

	want := "Area: <script type=\"math/tex\">\\pi r^2</script>\n"
	if got := markdown(t, e); got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
	st, _ = e.Status()
	if st.Pending != "" || st.UndoCount != 3 {
		t.Errorf("Status() = %s, want no pending and 3 undo steps", st)
	}
	// The conversion removes the source text and inserts the node.
	if st.LastEdit != "2 operations" {
		t.Errorf("Status().LastEdit = %q, want %q", st.LastEdit, "2 operations")
	}
}

func TestEditor_UndoCancelsConversion(t *testing.T) {
	e, clock := newManualEditor(t)

	var events []automath.ConversionEvent
	e.OnConversion(func(ev automath.ConversionEvent) { events = append(events, ev) })

	_ = e.Paste(clipboard.PlainText("$$x$$"))
	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	clock.Advance(time.Second)

	if got := markdown(t, e); got != "\n" {
		t.Errorf("markdown = %q, want empty paragraph", got)
	}
	if len(events) != 1 || events[0].Conversion.State() != automath.StateCancelled {
		t.Errorf("events = %+v, want one cancelled", events)
	}
	if err := e.Undo(); !errors.Is(err, command.ErrCommandDisabled) {
		t.Errorf("Undo() error = %v, want ErrCommandDisabled", err)
	}
}

func TestEditor_UndoRedoAfterCommit(t *testing.T) {
	e, clock := newManualEditor(t)

	_ = e.Paste(clipboard.PlainText("$$x$$"))
	clock.Advance(config.DefaultDelay)

	if err := e.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := markdown(t, e); got != "$$x$$\n" {
		t.Errorf("markdown after undo = %q", got)
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if got := markdown(t, e); !strings.Contains(got, "<script") {
		t.Errorf("markdown after redo = %q, want math", got)
	}
}

func TestEditor_SetMathOptions(t *testing.T) {
	e, clock := newManualEditor(t)

	opts := config.DefaultMathOptions()
	opts.OutputType = config.OutputSpan
	opts.Delay = time.Second
	if err := e.SetMathOptions(opts); err != nil {
		t.Fatalf("SetMathOptions() error = %v", err)
	}

	_ = e.Paste(clipboard.PlainText(`\[E=mc^2\]`))
	clock.Advance(config.DefaultDelay)
	if got := markdown(t, e); strings.Contains(got, "math-tex") {
		t.Fatal("converted before the configured delay")
	}
	clock.Advance(time.Second)

	if got := markdown(t, e); got != "<span class=\"math-tex\">\\[E=mc^2\\]</span>\n" {
		t.Errorf("markdown = %q", got)
	}
}

func TestEditor_MathCommandUsesDefaultType(t *testing.T) {
	e, _ := newManualEditor(t)

	opts := config.DefaultMathOptions()
	opts.OutputType = config.OutputSpan
	_ = e.SetMathOptions(opts)

	if err := e.Execute(command.NameMath, command.Args{command.AttrEquation: "y"}); err != nil {
		t.Fatalf("Execute(math) error = %v", err)
	}
	if got := markdown(t, e); got != "<span class=\"math-tex\">\\(y\\)</span>\n" {
		t.Errorf("markdown = %q", got)
	}
}

func TestEditor_PasteError(t *testing.T) {
	e, _ := newManualEditor(t)

	if err := e.Paste(clipboard.NewDataTransfer()); !errors.Is(err, clipboard.ErrNoContent) {
		t.Errorf("Paste() error = %v, want ErrNoContent", err)
	}
}

func TestEditor_Select(t *testing.T) {
	e, _ := newManualEditor(t)
	_ = e.Type("Hello")

	if err := e.Select(2, 5); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	_ = e.Type("ipp")
	if got := markdown(t, e); got != "Hippo\n" {
		t.Errorf("markdown = %q, want Hippo", got)
	}
	if err := e.Select(0, 99); err == nil {
		t.Error("Select() out of range error = nil")
	}
}

func TestEditor_Close(t *testing.T) {
	e, clock := newManualEditor(t)
	_ = e.Paste(clipboard.PlainText("$$x$$"))

	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if clock.Pending() != 0 {
		t.Errorf("armed timers = %d after Close", clock.Pending())
	}
	if err := e.Type("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Type() after Close error = %v, want ErrClosed", err)
	}
}

func TestEditor_LoopConvertsInRealTime(t *testing.T) {
	opts := DefaultOptions()
	opts.Math.Delay = 10 * time.Millisecond
	e := New(opts)
	defer e.Close()

	done := make(chan automath.ConversionEvent, 1)
	e.OnConversion(func(ev automath.ConversionEvent) { done <- ev })

	if err := e.Paste(clipboard.Markdown("$$a^2+b^2$$")); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}

	select {
	case ev := <-done:
		if ev.Conversion.State() != automath.StateCommitted || ev.Err != nil {
			t.Fatalf("event = %+v, want committed", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("conversion did not happen")
	}

	out, _ := e.Export(export.FormatText)
	if string(out) != "\\[a^2+b^2\\]\n" {
		t.Errorf("text = %q", out)
	}
}

func TestEditor_WaitReturnsAfterClose(t *testing.T) {
	e := New(DefaultOptions())
	_ = e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := e.Wait(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Wait() error = %v, want ErrClosed", err)
	}
}
