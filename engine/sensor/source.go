package sensor

import "context"

// Handler receives events in arrival order. It is called from the source's goroutine.
type Handler func(Event)

// Source produces orientation events.
type Source interface {
	// Run delivers events to handler until ctx is cancelled or the source is exhausted.
	// It returns nil on cancellation or normal end.
	Run(ctx context.Context, handler Handler) error
}
