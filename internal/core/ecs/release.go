package ecs

import "time"

// Releaser is the part of a Pool the deferred release queue needs.
type Releaser interface {
	Release(id EntityID) bool
}

type pendingRelease struct {
	pool Releaser
	id   EntityID
	due  time.Duration
}

// ReleaseQueue holds pool releases that must wait for a cosmetic window (death
// animations, fade-outs) before the slot is reused. Flushed by the cleanup
// system at the end of each tick.
type ReleaseQueue struct {
	pending []pendingRelease
}

func NewReleaseQueue() *ReleaseQueue {
	return &ReleaseQueue{pending: make([]pendingRelease, 0, 64)}
}

// Schedule queues a release of id from pool once the clock reaches due.
func (q *ReleaseQueue) Schedule(pool Releaser, id EntityID, due time.Duration) {
	q.pending = append(q.pending, pendingRelease{pool: pool, id: id, due: due})
}

// Flush releases every entry that is due at now and keeps the rest in order.
// Returns the number of instances actually released.
func (q *ReleaseQueue) Flush(now time.Duration) int {
	released := 0
	kept := q.pending[:0]
	for _, p := range q.pending {
		if p.due > now {
			kept = append(kept, p)
			continue
		}
		if p.pool.Release(p.id) {
			released++
		}
	}
	clear(q.pending[len(kept):])
	q.pending = kept
	return released
}

// Len returns the number of releases still waiting.
func (q *ReleaseQueue) Len() int { return len(q.pending) }
