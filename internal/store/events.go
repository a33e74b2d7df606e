package store

import "time"

// Event describes a committed dispatch.
// Minimal and stable: name + action tag and optional fields via key/values.
type Event struct {
	Name     string
	Action   string
	Changed  bool
	Duration time.Duration
	// State is the state after the dispatch. Publishers must treat it as read-only.
	State any
	// Fields carries extra key/values; dispatch events set "listeners" to
	// the number of listeners notified.
	Fields map[string]any
}

// EventPublisher receives events from a store. Implementations should be
// lightweight and non-blocking; Publish must not panic and must not dispatch.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
