package editor

import "errors"

// Editor errors.
var (
	// ErrClosed indicates the editor was closed.
	ErrClosed = errors.New("editor: closed")
)
