package model

import "errors"

// Errors returned by model operations.
var (
	// ErrRootNotFound indicates a position refers to an unknown root.
	ErrRootNotFound = errors.New("root not found")

	// ErrPositionInvalid indicates an offset is outside its root.
	ErrPositionInvalid = errors.New("position out of range")

	// ErrRangeInvalid indicates a range spans two roots or has end < start.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrRangeNotFlat indicates a move range does not contain balanced content.
	ErrRangeNotFlat = errors.New("range is not flat")

	// ErrSchemaViolation indicates content is not allowed at the target position.
	ErrSchemaViolation = errors.New("content not allowed here")

	// ErrMarkerReleased indicates a marker handle has been released.
	ErrMarkerReleased = errors.New("marker released")

	// ErrNotInChange indicates a writer was used outside of Document.Change.
	ErrNotInChange = errors.New("writer used outside of a change")
)
