package automath

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/logging"
	"github.com/dshills/automath/internal/model"
	"github.com/dshills/automath/internal/schedule"
)

// ConversionState is the lifecycle state of a pending conversion.
type ConversionState uint8

const (
	// StateScheduled means the grace period is running.
	StateScheduled ConversionState = iota

	// StateCommitted means the conversion ran.
	StateCommitted

	// StateCancelled means the conversion was dropped before it ran.
	StateCancelled
)

// String returns the state name.
func (s ConversionState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PendingConversion is a scheduled replacement of pasted text by a math
// node.
type PendingConversion struct {
	ID          uuid.UUID
	InsertAt    model.MarkerID
	Target      TrackedRange
	Match       EquationMatch
	ScheduledAt time.Time

	state ConversionState
	timer schedule.Timer
}

// State returns the conversion state.
func (p *PendingConversion) State() ConversionState {
	return p.state
}

// Committer owns the single pending conversion slot.
type Committer struct {
	sched   schedule.Scheduler
	tracker *Tracker
	doc     Document
	delay   time.Duration
	now     func() time.Time
	logger  *logging.Logger

	// commit runs the insertion transaction.
	commit func(p *PendingConversion) error

	// settled is notified after a conversion reaches a terminal state.
	settled func(p *PendingConversion, err error)

	pending *PendingConversion
}

// NewCommitter creates a committer. A non-positive delay selects
// config.DefaultDelay.
func NewCommitter(doc Document, tracker *Tracker, sched schedule.Scheduler, delay time.Duration, commit func(*PendingConversion) error) *Committer {
	c := &Committer{
		sched:   sched,
		tracker: tracker,
		doc:     doc,
		now:     time.Now,
		logger:  logging.Discard,
		commit:  commit,
		settled: func(*PendingConversion, error) {},
	}
	c.SetDelay(delay)
	return c
}

// SetDelay changes the grace period of conversions scheduled later.
func (c *Committer) SetDelay(d time.Duration) {
	if d <= 0 {
		d = config.DefaultDelay
	}
	c.delay = d
}

// Delay returns the grace period.
func (c *Committer) Delay() time.Duration {
	return c.delay
}

// Schedule records a conversion and arms its timer. A conversion that is
// still pending is cancelled and replaced. The committer takes ownership
// of insertAt and target.
func (c *Committer) Schedule(insertAt model.MarkerID, payload EquationMatch, target TrackedRange) *PendingConversion {
	c.Cancel()

	p := &PendingConversion{
		ID:          uuid.New(),
		InsertAt:    insertAt,
		Target:      target,
		Match:       payload,
		ScheduledAt: c.now(),
		state:       StateScheduled,
	}
	c.pending = p
	p.timer = c.sched.AfterFunc(c.delay, func() { c.fire(p) })

	c.logger.With("conversion", p.ID).Debug("scheduled %q in %s", payload.Equation, c.delay)
	return p
}

// Cancel drops the pending conversion, if any, and releases its markers.
// It returns false when nothing was pending.
func (c *Committer) Cancel() bool {
	p := c.pending
	if p == nil {
		return false
	}
	c.pending = nil

	p.timer.Stop()
	p.state = StateCancelled
	c.release(p)

	c.logger.With("conversion", p.ID).Debug("cancelled")
	c.settled(p, nil)
	return true
}

// Pending returns the pending conversion.
func (c *Committer) Pending() (*PendingConversion, bool) {
	return c.pending, c.pending != nil
}

// Close cancels the pending conversion.
func (c *Committer) Close() {
	c.Cancel()
}

// fire runs when the grace period of p ends. A timer that outlived its
// conversion does nothing.
func (c *Committer) fire(p *PendingConversion) {
	if p.state != StateScheduled || c.pending != p {
		return
	}
	c.pending = nil
	p.state = StateCommitted

	err := c.commit(p)
	c.release(p)

	log := c.logger.With("conversion", p.ID)
	if err != nil {
		log.Warn("conversion failed: %v", err)
	} else {
		log.Debug("committed %q", p.Match.Equation)
	}
	c.settled(p, err)
}

func (c *Committer) release(p *PendingConversion) {
	c.doc.ReleaseMarker(p.InsertAt)
	c.tracker.Release(p.Target)
}
