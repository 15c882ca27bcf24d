// Package history provides undo/redo for documents.
//
// Every content change of a model.Document is delivered as a Batch. The
// history records undoable batches as Commands on an undo stack; undoing
// one applies the batch's inverse operations as a single change of type
// model.BatchUndo and restores the selection the batch started with.
//
// # Recording
//
// Track subscribes a History to a document so each undoable batch is
// pushed automatically:
//
//	h := history.New(1000) // Max 1000 undo entries
//	sub := h.Track(doc)
//	defer sub.Cancel()
//
//	h.Undo(doc)
//	h.Redo(doc)
//
// Batches of type model.BatchUndo, model.BatchRedo and
// model.BatchTransparent are never recorded.
package history
