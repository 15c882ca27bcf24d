package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/automath/internal/automath"
	"github.com/dshills/automath/internal/clipboard"
	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/event"
	"github.com/dshills/automath/internal/export"
	"github.com/dshills/automath/internal/history"
	"github.com/dshills/automath/internal/logging"
	"github.com/dshills/automath/internal/model"
	"github.com/dshills/automath/internal/schedule"
)

// Options configures an Editor.
type Options struct {
	// Math configures equation detection.
	Math config.MathOptions

	// MaxUndo bounds the undo history. Zero selects the default.
	MaxUndo int

	// Logger receives session logs. Nil discards them.
	Logger *logging.Logger

	// Scheduler runs conversion timers. When nil the editor starts its
	// own loop and every call is executed on it.
	Scheduler schedule.Scheduler

	// Content is the initial document content.
	Content model.Fragment
}

// DefaultOptions returns the default editor options.
func DefaultOptions() Options {
	return Options{
		Math:    config.DefaultMathOptions(),
		MaxUndo: config.DefaultMaxEntries,
	}
}

// Editor is an editing session.
type Editor struct {
	id     uuid.UUID
	loop   *schedule.Loop
	logger *logging.Logger

	doc      *model.Document
	history  *history.History
	commands *command.Registry
	math     *command.MathCommand
	clip     *clipboard.Clipboard
	plugin   *automath.Plugin
	exporter *export.Exporter

	subs   []event.Subscription
	closed bool
}

// New creates an editor session.
func New(opts Options) *Editor {
	e := &Editor{id: uuid.New()}
	e.logger = logging.OrDiscard(opts.Logger).With("session", e.id.String()[:8])

	sched := opts.Scheduler
	if sched == nil {
		e.loop = schedule.NewLoop(schedule.DefaultQueueSize)
		sched = e.loop
	}

	var docOpts []model.Option
	if opts.Content != nil {
		docOpts = append(docOpts, model.WithContent(opts.Content))
	}
	e.doc = model.New(docOpts...)
	e.history = history.New(opts.MaxUndo)
	e.exporter = export.New()

	mathOpts := opts.Math
	if mathOpts.OutputType == "" {
		mathOpts.OutputType = config.OutputScript
	}

	e.commands = command.NewRegistry()
	undo := command.NewUndoCommand(e.history, e.doc)
	e.math = command.NewMathCommand(e.doc, string(mathOpts.OutputType))
	_ = e.commands.Register(undo)
	_ = e.commands.Register(command.NewRedoCommand(e.history, e.doc))
	_ = e.commands.Register(e.math)

	e.clip = clipboard.New(e.doc, clipboard.WithLogger(e.logger))
	e.plugin = automath.New(e.doc, e.commands, sched,
		automath.WithOptions(mathOpts),
		automath.WithLogger(e.logger),
	)

	e.bind(undo)
	return e
}

// bind connects the plugin callbacks to their notifications.
func (e *Editor) bind(undo *command.UndoCommand) {
	e.subs = append(e.subs,
		e.history.Track(e.doc),
		e.clip.InputTransformation().Subscribe(func(in *clipboard.InputTransformation) {
			e.plugin.OnPasteInserted(in.Selection)
		}),
		e.doc.OnChange().Subscribe(func(model.ChangeEvent) {
			e.plugin.OnDocumentSettled()
		}, event.WithPriority(event.PriorityHigh)),
		undo.OnExecute().Subscribe(func(command.ExecuteEvent) {
			e.plugin.OnUndoRequested()
		}, event.WithPriority(event.PriorityHigh)),
		e.plugin.OnConversion().Subscribe(e.logConversion, event.WithPriority(event.PriorityLow)),
	)
}

func (e *Editor) logConversion(ev automath.ConversionEvent) {
	c := ev.Conversion
	log := e.logger.With("conversion", c.ID)
	switch {
	case ev.Err != nil:
		log.Warn("conversion of %q failed: %v", c.Match.Equation, ev.Err)
	case c.State() == automath.StateCommitted:
		log.Info("converted %q", c.Match.Equation)
	default:
		log.Info("conversion of %q %s", c.Match.Equation, c.State())
	}
}

// ID returns the session id.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// do runs fn on the editor goroutine.
func (e *Editor) do(fn func() error) error {
	var err error
	run := func() {
		if e.closed {
			err = ErrClosed
			return
		}
		err = fn()
	}
	if e.loop == nil {
		run()
		return err
	}
	if lerr := e.loop.Do(run); lerr != nil {
		if errors.Is(lerr, schedule.ErrLoopClosed) {
			return ErrClosed
		}
		return lerr
	}
	return err
}

// OnConversion subscribes fn to conversion results. fn runs on the
// editor goroutine and must not call back into the editor.
func (e *Editor) OnConversion(fn func(automath.ConversionEvent)) event.Subscription {
	return e.plugin.OnConversion().Subscribe(fn)
}

// Paste inserts clipboard data at the selection.
func (e *Editor) Paste(dt *clipboard.DataTransfer) error {
	return e.do(func() error {
		if _, err := e.clip.Paste(dt); err != nil {
			e.plugin.OnPasteAborted()
			return err
		}
		return nil
	})
}

// Type inserts text at the selection as typed input.
func (e *Editor) Type(text string) error {
	return e.do(func() error {
		return e.doc.Change(func(w *model.Writer) error {
			r, err := w.InsertContent(model.TextFragment(text), nil)
			if err != nil {
				return err
			}
			return w.SetSelection(model.Collapsed(r.End))
		})
	})
}

// Select sets the selection to [start, end) in the main root.
func (e *Editor) Select(start, end int) error {
	return e.do(func() error {
		return e.doc.Change(func(w *model.Writer) error {
			return w.SetSelection(model.NewRange(start, end))
		})
	})
}

// Execute runs a registered command.
func (e *Editor) Execute(name string, args command.Args) error {
	return e.do(func() error {
		return e.commands.Execute(name, args)
	})
}

// Undo reverts the last change.
func (e *Editor) Undo() error {
	return e.Execute(command.NameUndo, nil)
}

// Redo re-applies the last undone change.
func (e *Editor) Redo() error {
	return e.Execute(command.NameRedo, nil)
}

// SetMathOptions replaces the math options. A pending conversion keeps
// the options it was scheduled with.
func (e *Editor) SetMathOptions(opts config.MathOptions) error {
	return e.do(func() error {
		if opts.OutputType == "" {
			opts.OutputType = config.OutputScript
		}
		e.plugin.SetOptions(opts)
		e.math.DefaultType = string(opts.OutputType)
		e.logger.Debug("math options updated: type=%s delay=%s delimiters=%d",
			opts.OutputType, opts.Delay, len(opts.Delimiters))
		return nil
	})
}

// SetMaxUndo changes the undo history bound.
func (e *Editor) SetMaxUndo(n int) error {
	return e.do(func() error {
		e.history.SetMaxEntries(n)
		return nil
	})
}

// Export renders the document.
func (e *Editor) Export(f export.Format) ([]byte, error) {
	var out []byte
	err := e.do(func() error {
		var err error
		out, err = e.exporter.Render(e.doc, f)
		return err
	})
	return out, err
}

// Status describes the session state.
type Status struct {
	Version   uint64
	Selection model.Range
	UndoCount int
	RedoCount int
	LastEdit  string
	Pending   string
}

// Status returns the session state.
func (e *Editor) Status() (Status, error) {
	var s Status
	err := e.do(func() error {
		s = Status{
			Version:   e.doc.Version(),
			Selection: e.doc.Selection(),
			UndoCount: e.history.UndoCount(),
			RedoCount: e.history.RedoCount(),
		}
		if info, ok := e.history.PeekUndo(); ok {
			s.LastEdit = info.Description
		}
		if p, ok := e.plugin.Pending(); ok {
			s.Pending = p.Match.Equation
		}
		return nil
	})
	return s, err
}

// String formats the status for display.
func (s Status) String() string {
	pending := "none"
	if s.Pending != "" {
		pending = fmt.Sprintf("%q", s.Pending)
	}
	return fmt.Sprintf("version=%d selection=%s undo=%d redo=%d pending=%s",
		s.Version, s.Selection, s.UndoCount, s.RedoCount, pending)
}

// Inspect runs fn with the document on the editor goroutine. fn must not
// keep the document.
func (e *Editor) Inspect(fn func(doc *model.Document)) error {
	return e.do(func() error {
		fn(e.doc)
		return nil
	})
}

// Close cancels any pending conversion, releases the plugin and stops the
// loop. Closing twice is a no-op.
func (e *Editor) Close() error {
	err := e.do(func() error {
		e.plugin.Destroy()
		for _, sub := range e.subs {
			sub.Cancel()
		}
		e.subs = nil
		e.closed = true
		return nil
	})
	if e.loop != nil {
		e.loop.Close()
	}
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// Wait blocks until ctx is done or the editor loop stops.
func (e *Editor) Wait(ctx context.Context) error {
	if e.loop == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.loop.Done():
		return ErrClosed
	}
}
