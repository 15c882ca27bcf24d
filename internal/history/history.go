package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/automath/internal/event"
	"github.com/dshills/automath/internal/model"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// OperationInfo describes a recorded command for display.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
	Operations  int // primitive operations, 0 if unknown
}

type entry struct {
	cmd Command
	at  time.Time
}

func (e entry) info() OperationInfo {
	info := OperationInfo{Description: e.cmd.Description(), Timestamp: e.at}
	if bc, ok := e.cmd.(*BatchCommand); ok {
		info.Operations = bc.batch.Len()
	}
	return info
}

// stack is a LIFO of entries. Trimming drops the oldest entries.
type stack []entry

func (s *stack) push(e entry) { *s = append(*s, e) }

func (s *stack) pop() (entry, bool) {
	if len(*s) == 0 {
		return entry{}, false
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e, true
}

func (s stack) peek() (entry, bool) {
	if len(s) == 0 {
		return entry{}, false
	}
	return s[len(s)-1], true
}

func (s *stack) trim(max int) {
	if excess := len(*s) - max; excess > 0 {
		*s = append(stack(nil), (*s)[excess:]...)
	}
}

// History keeps the undo and redo stacks of a document.
type History struct {
	mu         sync.Mutex
	undo       stack
	redo       stack
	maxEntries int
	now        func() time.Time
}

// New creates a history holding at most maxEntries undo steps. A
// non-positive limit selects DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries, now: time.Now}
}

// Track records every undoable batch of doc. The subscription runs at
// critical priority so the history is up to date before other listeners
// see the change.
func (h *History) Track(doc *model.Document) event.Subscription {
	return doc.OnChange().Subscribe(func(ev model.ChangeEvent) {
		if ev.Batch.IsUndoable() {
			h.Push(NewBatchCommand(ev.Batch))
		}
	}, event.WithPriority(event.PriorityCritical))
}

// Push records cmd as the newest undo step and drops the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undo.push(entry{cmd: cmd, at: h.now()})
	h.undo.trim(h.maxEntries)
	h.redo = nil
}

// Undo reverts the newest undo step. The lock is not held while the
// document changes, because listeners of that change may query the
// history. On failure the step stays on the undo stack.
func (h *History) Undo(doc *model.Document) error {
	e, ok := h.take(&h.undo)
	if !ok {
		return ErrNothingToUndo
	}
	if err := e.cmd.Undo(doc); err != nil {
		h.put(&h.undo, e)
		return err
	}
	h.put(&h.redo, e)
	return nil
}

// Redo re-applies the newest undone step.
func (h *History) Redo(doc *model.Document) error {
	e, ok := h.take(&h.redo)
	if !ok {
		return ErrNothingToRedo
	}
	if err := e.cmd.Execute(doc); err != nil {
		h.put(&h.redo, e)
		return err
	}
	h.put(&h.undo, e)
	return nil
}

func (h *History) take(s *stack) (entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.pop()
}

func (h *History) put(s *stack, e entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s.push(e)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.RedoCount() > 0
}

// UndoCount returns the number of undo steps.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the number of redo steps.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// PeekUndo describes the step Undo would revert.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.undo.peek()
	if !ok {
		return OperationInfo{}, false
	}
	return e.info(), true
}

// PeekRedo describes the step Redo would re-apply.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.redo.peek()
	if !ok {
		return OperationInfo{}, false
	}
	return e.info(), true
}

// Clear removes all undo and redo steps.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = nil
	h.redo = nil
}

// SetMaxEntries changes the undo limit, dropping the oldest steps that
// no longer fit.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxEntries = max
	h.undo.trim(max)
}

// MaxEntries returns the undo limit.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
