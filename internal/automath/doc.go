// Package automath converts pasted equations into math nodes.
//
// When content is pasted, the Plugin captures the paste target as a pair
// of live markers. Once the document settles, the text between them is
// matched against the configured delimiters. A match schedules a
// conversion that fires after a short grace period and replaces the
// pasted text with a mathtex node in one atomic change. Undoing before
// the grace period ends cancels the conversion; undoing after it reverts
// the node like any other edit.
//
// The plugin is driven through three callbacks, OnPasteInserted,
// OnDocumentSettled and OnUndoRequested, all of which must be invoked
// from the goroutine that owns the document. Timer callbacks are run by
// the injected schedule.Scheduler on that same goroutine.
package automath
