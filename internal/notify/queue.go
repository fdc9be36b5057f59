// Package notify is a single-slot, in-memory relay for user-visible
// confirmations. Nothing here is persisted.
package notify

import "sync"

// Queue holds at most one pending message. Posting replaces any message
// that has not been consumed yet.
type Queue struct {
	mu      sync.Mutex
	pending string
	ok      bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Post replaces the pending message.
func (q *Queue) Post(msg string) {
	q.mu.Lock()
	q.pending, q.ok = msg, true
	q.mu.Unlock()
}

// Pending returns the pending message without consuming it.
func (q *Queue) Pending() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending, q.ok
}

// Consume returns the pending message and clears the slot.
func (q *Queue) Consume() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	msg, ok := q.pending, q.ok
	q.pending, q.ok = "", false
	return msg, ok
}

// Dismiss drops the pending message.
func (q *Queue) Dismiss() {
	q.mu.Lock()
	q.pending, q.ok = "", false
	q.mu.Unlock()
}
