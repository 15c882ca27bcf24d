package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopClosed is returned when work is submitted to a closed loop.
var ErrLoopClosed = errors.New("loop closed")

// DefaultQueueSize is the number of posted functions buffered by a loop.
const DefaultQueueSize = 256

// Loop executes functions sequentially on a dedicated goroutine.
//
// Thread-safety: Post, Do, AfterFunc and Close are safe for concurrent
// use. Do must not be called from a function running on the loop.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu     sync.RWMutex
	closed bool

	wg sync.WaitGroup
}

// NewLoop creates and starts a loop.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	l := &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for fn := range l.queue {
		fn()
	}
	close(l.done)
}

// Post queues fn and returns without waiting. It returns false if the
// loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false
	}
	l.queue <- fn
	return true
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(fn func()) error {
	return l.DoContext(context.Background(), fn)
}

// DoContext is Do with a context. If ctx ends before fn starts, fn is
// skipped and the context error returned; once fn started DoContext waits
// for it.
func (l *Loop) DoContext(ctx context.Context, fn func()) error {
	var state atomic.Int32 // 0 queued, 1 started, 2 abandoned
	finished := make(chan struct{})
	ok := l.Post(func() {
		defer close(finished)
		if ctx.Err() != nil || !state.CompareAndSwap(0, 1) {
			return
		}
		fn()
	})
	if !ok {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		if state.Load() != 1 {
			return ctx.Err()
		}
		return nil
	case <-ctx.Done():
		if state.CompareAndSwap(0, 2) {
			return ctx.Err()
		}
		<-finished
		return nil
	}
}

// AfterFunc arms a timer whose callback runs on the loop. Stopping the
// timer from the loop guarantees the callback does not run, even if the
// timer already expired and the callback is queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if lt.fire() {
				fn()
			}
		})
	})
	return lt
}

// Close stops accepting work, runs what is already queued and waits for
// the loop goroutine to exit. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.mu.Unlock()
	l.wg.Wait()
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// loopTimer states.
const (
	timerArmed int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) fire() bool {
	return t.state.CompareAndSwap(timerArmed, timerFired)
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerArmed, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
