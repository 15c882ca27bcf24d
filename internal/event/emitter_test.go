package event

import (
	"reflect"
	"testing"
)

func TestEmitter_PriorityOrder(t *testing.T) {
	e := NewEmitter[string]()
	var order []string

	e.Subscribe(func(string) { order = append(order, "normal-1") })
	e.Subscribe(func(string) { order = append(order, "low") }, WithPriority(PriorityLow))
	e.Subscribe(func(string) { order = append(order, "high") }, WithPriority(PriorityHigh))
	e.Subscribe(func(string) { order = append(order, "normal-2") })
	e.Subscribe(func(string) { order = append(order, "critical") }, WithPriority(PriorityCritical))

	e.Emit("x")

	want := []string{"critical", "high", "normal-1", "normal-2", "low"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestEmitter_Once(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	sub := e.Subscribe(func(int) { calls++ }, WithOnce())

	e.Emit(1)
	e.Emit(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("State() = %v, want cancelled", sub.State())
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

func TestEmitter_OnceReentrant(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	e.Subscribe(func(v int) {
		calls++
		if v == 0 {
			e.Emit(1)
		}
	}, WithOnce())

	e.Emit(0)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestEmitter_CancelAndPause(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	sub := e.Subscribe(func(int) { calls++ })

	sub.Pause()
	e.Emit(1)
	if calls != 0 {
		t.Fatalf("paused subscription received event")
	}

	sub.Resume()
	e.Emit(2)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	sub.Cancel()
	e.Emit(3)
	if calls != 1 {
		t.Errorf("cancelled subscription received event")
	}

	// Resume must not revive a cancelled subscription
	sub.Resume()
	if sub.IsActive() {
		t.Error("cancelled subscription became active")
	}
}

func TestEmitter_SubscribeDuringEmit(t *testing.T) {
	e := NewEmitter[int]()
	late := 0
	e.Subscribe(func(int) {
		e.Subscribe(func(int) { late++ })
	}, WithOnce())

	e.Emit(1)
	if late != 0 {
		t.Errorf("subscriber added during emit ran in the same emit")
	}

	e.Emit(2)
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestEmitter_PanicIsolation(t *testing.T) {
	var recovered any
	e := NewEmitter[int](WithPanicHandler(func(_ any, r any) {
		recovered = r
	}))

	ran := false
	e.Subscribe(func(int) { panic("boom") }, WithPriority(PriorityHigh))
	e.Subscribe(func(int) { ran = true })

	e.Emit(1)

	if recovered != "boom" {
		t.Errorf("recovered = %v, want boom", recovered)
	}
	if !ran {
		t.Error("handler after panicking handler did not run")
	}
	if _, panics := e.Stats(); panics != 1 {
		t.Errorf("panics = %d, want 1", panics)
	}
}

func TestEmitter_Clear(t *testing.T) {
	e := NewEmitter[int]()
	calls := 0
	e.Subscribe(func(int) { calls++ })
	e.Subscribe(func(int) { calls++ })

	e.Clear()
	e.Emit(1)

	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	if emitted, _ := e.Stats(); emitted != 1 {
		t.Errorf("emitted = %d, want 1", emitted)
	}
}
