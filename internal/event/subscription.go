package event

import "sync/atomic"

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription represents an active listener registration.
type Subscription interface {
	// ID returns the subscription identifier, unique per emitter.
	ID() uint64

	// Priority returns the priority the subscription was registered with.
	Priority() Priority

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Pause temporarily stops delivery to this subscription.
	Pause()

	// Resume restarts delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription.
	Cancel()
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Once indicates the subscription should auto-cancel after the first event.
	Once bool
}

// DefaultSubscriptionConfig returns a default subscription configuration.
func DefaultSubscriptionConfig() SubscriptionConfig {
	return SubscriptionConfig{
		Priority: PriorityNormal,
	}
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// subscription is the internal implementation of Subscription.
type subscription[T any] struct {
	id      uint64
	handler Handler[T]
	config  SubscriptionConfig
	state   atomic.Int32
}

func newSubscription[T any](id uint64, h Handler[T], opts ...SubscriptionOption) *subscription[T] {
	config := DefaultSubscriptionConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &subscription[T]{
		id:      id,
		handler: h,
		config:  config,
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s
}

func (s *subscription[T]) ID() uint64 {
	return s.id
}

func (s *subscription[T]) Priority() Priority {
	return s.config.Priority
}

func (s *subscription[T]) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

func (s *subscription[T]) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

func (s *subscription[T]) IsCancelled() bool {
	return s.State() == SubscriptionStateCancelled
}

func (s *subscription[T]) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

func (s *subscription[T]) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

func (s *subscription[T]) Cancel() {
	s.state.Store(int32(SubscriptionStateCancelled))
}

// claim marks a once-subscription as consumed. It returns false if the
// subscription was not active, so a once handler runs at most one time
// even when an emit re-enters the emitter.
func (s *subscription[T]) claim() bool {
	if !s.config.Once {
		return s.IsActive()
	}
	return s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStateCancelled))
}
