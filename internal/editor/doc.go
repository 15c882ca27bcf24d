// Package editor provides an editing session around one document.
//
// An Editor wires the document, undo history, commands, clipboard and the
// automath plugin together and serializes every call on one goroutine.
// By default that goroutine is a schedule.Loop owned by the editor; tests
// inject a schedule.Manual and call the editor directly.
package editor
