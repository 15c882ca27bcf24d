package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLoopDoRunsInOrder(t *testing.T) {
	l := NewLoop(0)
	defer l.Close()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	if err := l.Do(func() { got = append(got, 99) }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	want := []int{0, 1, 2, 3, 4, 99}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLoopClosed(t *testing.T) {
	l := NewLoop(4)
	l.Close()
	l.Close() // idempotent

	if l.Post(func() {}) {
		t.Error("Post() on closed loop = true")
	}
	if err := l.Do(func() {}); !errors.Is(err, ErrLoopClosed) {
		t.Errorf("Do() error = %v, want ErrLoopClosed", err)
	}
	select {
	case <-l.Done():
	default:
		t.Error("Done() not closed after Close()")
	}
}

func TestLoopCloseDrainsQueue(t *testing.T) {
	l := NewLoop(16)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		l.Post(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	l.Close()

	if count != 10 {
		t.Errorf("count = %d, want 10", count)
	}
}

func TestLoopDoContextCancelled(t *testing.T) {
	l := NewLoop(4)
	defer l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := l.DoContext(ctx, func() { ran = true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("DoContext() error = %v, want context.Canceled", err)
	}
	_ = l.Do(func() {})
	if ran {
		t.Error("function ran despite cancelled context")
	}
}

func TestLoopAfterFuncRunsOnLoop(t *testing.T) {
	l := NewLoop(4)
	defer l.Close()

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopTimerStop(t *testing.T) {
	l := NewLoop(4)
	defer l.Close()

	var timer Timer
	ran := make(chan struct{}, 1)

	// Let the timer expire while the loop is busy, then stop it from the
	// loop before the queued callback gets its turn.
	_ = l.Do(func() {
		timer = l.AfterFunc(time.Millisecond, func() { ran <- struct{}{} })
		time.Sleep(20 * time.Millisecond)
		if !timer.Stop() {
			t.Error("Stop() = false, want true")
		}
	})
	_ = l.Do(func() {})

	select {
	case <-ran:
		t.Error("stopped timer fired")
	case <-time.After(20 * time.Millisecond):
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
}
