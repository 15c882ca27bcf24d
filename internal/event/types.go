package event

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for core model handlers that must run first,
	// such as the undo history recording a finished batch.
	PriorityCritical Priority = 0

	// PriorityHigh is for handlers that must observe a notification before
	// ordinary listeners react to it (paste conversion, undo interception).
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for logging and metrics handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler receives a typed notification.
type Handler[T any] func(event T)

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, recovered any)

// DefaultPanicHandler swallows the panic so that one misbehaving
// listener cannot break delivery to the others.
func DefaultPanicHandler(event any, recovered any) {}
