package bus

import (
	"mlft/internal/model"
	"mlft/internal/model/enum"
)

// Event is a queued intent against one order.
type Event struct {
	Kind    enum.EventKind
	OrderID model.OrderID
}

// Queue holds pending events in arrival order until the next resolution pass
// drains it. It is not safe for concurrent use.
type Queue struct {
	events []Event
	spare  []Event
}

// NewQueue allocates a queue with the given initial capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{
		events: make([]Event, 0, capacity),
		spare:  make([]Event, 0, capacity),
	}
}

// Publish appends an event.
func (q *Queue) Publish(e Event) {
	q.events = append(q.events, e)
}

// Drain returns every queued event and leaves the queue empty. The returned
// slice is only valid until the next call to Drain.
func (q *Queue) Drain() []Event {
	drained := q.events
	q.events = q.spare[:0]
	q.spare = drained
	return drained
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
