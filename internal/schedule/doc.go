// Package schedule provides the editor's single-threaded execution model.
//
// A Loop runs posted functions one at a time on its own goroutine. Timers
// created with Loop.AfterFunc fire on the loop, so every editor mutation
// and every timer callback is serialized without further locking.
//
// Manual is a Scheduler driven by an explicit clock, used in tests to
// make grace periods deterministic.
package schedule
