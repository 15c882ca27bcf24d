package clipboard

import "errors"

// Clipboard errors.
var (
	// ErrNoContent indicates the data transfer produced nothing to insert.
	ErrNoContent = errors.New("clipboard: no content")
)
