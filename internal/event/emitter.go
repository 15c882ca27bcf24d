package event

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Emitter delivers typed notifications synchronously to its subscribers
// in priority order. Subscribers with equal priority run in registration
// order. Handlers may subscribe, cancel or emit again from inside a
// delivery; changes take effect for the next Emit.
type Emitter[T any] struct {
	mu     sync.Mutex
	subs   []*subscription[T]
	nextID uint64

	panicHandler PanicHandler

	emitted atomic.Uint64
	panics  atomic.Uint64
}

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterConfig)

type emitterConfig struct {
	panicHandler PanicHandler
}

// WithPanicHandler sets the handler invoked when a subscriber panics.
func WithPanicHandler(h PanicHandler) EmitterOption {
	return func(c *emitterConfig) {
		if h != nil {
			c.panicHandler = h
		}
	}
}

// NewEmitter creates a new emitter.
func NewEmitter[T any](opts ...EmitterOption) *Emitter[T] {
	config := emitterConfig{panicHandler: DefaultPanicHandler}
	for _, opt := range opts {
		opt(&config)
	}
	return &Emitter[T]{panicHandler: config.panicHandler}
}

// Subscribe registers fn and returns its subscription.
func (e *Emitter[T]) Subscribe(fn Handler[T], opts ...SubscriptionOption) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	sub := newSubscription(e.nextID, fn, opts...)

	e.subs = append(e.subs, sub)
	sort.SliceStable(e.subs, func(i, j int) bool {
		return e.subs[i].config.Priority < e.subs[j].config.Priority
	})
	return sub
}

// Emit delivers event to every active subscriber.
func (e *Emitter[T]) Emit(event T) {
	e.mu.Lock()
	e.pruneLocked()
	subs := make([]*subscription[T], len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	e.emitted.Add(1)

	for _, sub := range subs {
		if !sub.claim() {
			continue
		}
		e.deliver(sub, event)
	}
}

// deliver runs a single handler, isolating panics.
func (e *Emitter[T]) deliver(sub *subscription[T], event T) {
	defer func() {
		if r := recover(); r != nil {
			e.panics.Add(1)
			e.panicHandler(event, r)
		}
	}()
	sub.handler(event)
}

// Len returns the number of subscriptions that have not been cancelled.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, sub := range e.subs {
		if !sub.IsCancelled() {
			n++
		}
	}
	return n
}

// Clear cancels every subscription.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, sub := range e.subs {
		sub.Cancel()
	}
	e.subs = nil
}

// Stats returns the number of emitted events and recovered handler panics.
func (e *Emitter[T]) Stats() (emitted, panics uint64) {
	return e.emitted.Load(), e.panics.Load()
}

// pruneLocked drops cancelled subscriptions (must hold lock).
func (e *Emitter[T]) pruneLocked() {
	live := e.subs[:0]
	for _, sub := range e.subs {
		if !sub.IsCancelled() {
			live = append(live, sub)
		}
	}
	for i := len(live); i < len(e.subs); i++ {
		e.subs[i] = nil
	}
	e.subs = live
}
