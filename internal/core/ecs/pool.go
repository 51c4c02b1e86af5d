package ecs

// Pool is a generic reusable-object allocator. Instances are created lazily on
// the first miss for a slot and are never freed afterwards; Release resets the
// instance and returns its slot to the free list. Pointers handed out by
// Acquire and Get stay valid for the whole session.
//
// Not safe for concurrent use (game loop goroutine only).
type Pool[T any] struct {
	slots   slotTable
	items   []*T
	newFn   func() *T
	resetFn func(*T)
	created int
}

// NewPool creates a pool. newFn builds a dormant instance on a pool miss and
// resetFn (optional) returns an instance to its dormant state on release.
func NewPool[T any](capacity int, newFn func() *T, resetFn func(*T)) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{
		slots:   newSlotTable(capacity),
		items:   make([]*T, 0, capacity),
		newFn:   newFn,
		resetFn: resetFn,
	}
}

// Acquire returns a previously released instance when one is free, otherwise
// constructs a new one.
func (p *Pool[T]) Acquire() (EntityID, *T) {
	id, fresh := p.slots.create()
	if fresh {
		p.items = append(p.items, p.newFn())
		p.created++
	}
	return id, p.items[id.Index()]
}

// Release resets the instance and frees its slot. Releasing an instance that is
// not currently active (already released, or a stale ID) is a no-op and
// returns false.
func (p *Pool[T]) Release(id EntityID) bool {
	if !p.slots.alive(id) {
		return false
	}
	if p.resetFn != nil {
		p.resetFn(p.items[id.Index()])
	}
	return p.slots.destroy(id)
}

// ReleaseAll releases every active instance.
func (p *Pool[T]) ReleaseAll() {
	for i := range p.items {
		idx := uint32(i)
		if p.slots.live[idx] {
			p.Release(NewEntityID(idx, p.slots.generations[idx]))
		}
	}
}

// Get returns the instance for an active ID.
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	if !p.slots.alive(id) {
		return nil, false
	}
	return p.items[id.Index()], true
}

// Active reports whether id names a live instance.
func (p *Pool[T]) Active(id EntityID) bool { return p.slots.alive(id) }

// ActiveCount returns the number of live instances.
func (p *Pool[T]) ActiveCount() int { return p.slots.liveCount }

// Allocated returns how many instances the pool has ever constructed.
func (p *Pool[T]) Allocated() int { return p.created }

// Each calls fn for every active instance in slot order. The active flag is
// re-checked per slot, so fn may release any instance (including the current
// one) while iterating. Instances acquired during iteration may or may not be
// visited. Returning false from fn stops the iteration.
func (p *Pool[T]) Each(fn func(EntityID, *T) bool) {
	n := len(p.items)
	for i := 0; i < n; i++ {
		idx := uint32(i)
		if !p.slots.live[idx] {
			continue
		}
		if !fn(NewEntityID(idx, p.slots.generations[idx]), p.items[i]) {
			return
		}
	}
}

// Snapshot appends the IDs of all active instances to dst and returns it.
func (p *Pool[T]) Snapshot(dst []EntityID) []EntityID {
	for i := range p.items {
		idx := uint32(i)
		if p.slots.live[idx] {
			dst = append(dst, NewEntityID(idx, p.slots.generations[idx]))
		}
	}
	return dst
}
