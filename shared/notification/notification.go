// Package notification carries transient user-facing messages from the
// controllers to whatever presents them. The HTTP layer drains a request's
// Queue into the "notifications" field of the response envelope.
package notification

import "sync"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Notification struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Sink receives notifications. Implementations must be safe for concurrent use.
type Sink interface {
	Notify(kind Kind, title, description string)
}

// Queue is a FIFO Sink. Notifications are never deduplicated.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

func NewQueue() *Queue {
	return &Queue{}
}

// Notify implements Sink.
func (q *Queue) Notify(kind Kind, title, description string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, Notification{Kind: kind, Title: title, Description: description})
}

// Drain returns the queued notifications in arrival order and empties the queue.
// The result is never nil.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil

	if items == nil {
		return []Notification{}
	}

	return items
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

type discard struct{}

func (discard) Notify(Kind, string, string) {}

// Discard drops every notification.
var Discard Sink = discard{}
