// Package event provides synchronous, priority-ordered notifications.
//
// Components expose an [Emitter] per notification kind and collaborators
// subscribe to it with an optional [Priority] and one-shot behavior:
//
//	settled := event.NewEmitter[model.ChangeEvent]()
//
//	// Run before ordinary listeners, only for the next notification.
//	settled.Subscribe(func(ev model.ChangeEvent) {
//	    // ...
//	}, event.WithPriority(event.PriorityHigh), event.WithOnce())
//
//	settled.Emit(ev)
//
// # Ordering
//
// Lower priority values run first. Subscribers with the same priority run
// in registration order. Delivery happens on the caller's goroutine; there
// is no queueing, so an Emit returns only after every handler has run.
//
// # Panics
//
// A panicking handler is recovered and reported to the emitter's
// [PanicHandler]; remaining handlers still run.
package event
