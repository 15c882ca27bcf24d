package automath

import (
	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/event"
	"github.com/dshills/automath/internal/logging"
	"github.com/dshills/automath/internal/schedule"
)

// ConversionEvent reports a conversion reaching a terminal state.
type ConversionEvent struct {
	Conversion *PendingConversion

	// Err is set when the insertion transaction failed and was rolled back.
	Err error
}

// Plugin converts pasted equations into math nodes.
type Plugin struct {
	doc       Document
	cmds      Commands
	matcher   *Matcher
	tracker   *Tracker
	committer *Committer
	logger    *logging.Logger

	captures  []TrackedRange
	destroyed bool

	onConversion *event.Emitter[ConversionEvent]
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithOptions sets the math options.
func WithOptions(opts config.MathOptions) Option {
	return func(p *Plugin) {
		p.SetOptions(opts)
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Plugin) {
		p.logger = logging.OrDiscard(l).Named("automath")
		p.committer.logger = p.logger
	}
}

// New creates the plugin with the default math options.
func New(doc Document, cmds Commands, sched schedule.Scheduler, opts ...Option) *Plugin {
	defaults := config.DefaultMathOptions()
	p := &Plugin{
		doc:          doc,
		cmds:         cmds,
		matcher:      NewMatcher(defaults),
		tracker:      NewTracker(doc),
		logger:       logging.Discard,
		onConversion: event.NewEmitter[ConversionEvent](),
	}

	ins := &insertion{doc: doc, tracker: p.tracker}
	p.committer = NewCommitter(doc, p.tracker, sched, defaults.Delay, ins.run)
	p.committer.settled = func(c *PendingConversion, err error) {
		p.onConversion.Emit(ConversionEvent{Conversion: c, Err: err})
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetOptions replaces the math options. Conversions already scheduled
// keep their payload and delay.
func (p *Plugin) SetOptions(opts config.MathOptions) {
	p.matcher = NewMatcher(opts)
	p.committer.SetDelay(opts.Delay)
}

// OnConversion returns the emitter notified when a conversion commits,
// fails or is cancelled.
func (p *Plugin) OnConversion() *event.Emitter[ConversionEvent] {
	return p.onConversion
}

// Pending returns the conversion in its grace period, if any.
func (p *Plugin) Pending() (*PendingConversion, bool) {
	return p.committer.Pending()
}

// Destroy cancels the pending conversion and releases every marker the
// plugin holds. Callbacks invoked afterwards do nothing.
func (p *Plugin) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.OnPasteAborted()
	p.committer.Close()
}
