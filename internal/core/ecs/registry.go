package ecs

// Releasable is implemented by every Pool so the Registry can account for and
// bulk-release live instances without knowing their element types.
type Releasable interface {
	ReleaseAll()
	ActiveCount() int
	Allocated() int
}

// Registry tracks all pools owned by a session.
type Registry struct {
	pools []Releasable
}

func NewRegistry() *Registry {
	return &Registry{
		pools: make([]Releasable, 0, 16),
	}
}

// Register adds a pool to the registry.
func (r *Registry) Register(p Releasable) {
	r.pools = append(r.pools, p)
}

// Unregister drops a pool from the registry (its owner was discarded).
func (r *Registry) Unregister(p Releasable) {
	for i, q := range r.pools {
		if q == p {
			r.pools = append(r.pools[:i], r.pools[i+1:]...)
			return
		}
	}
}

// ReleaseAll releases every live instance in every registered pool.
func (r *Registry) ReleaseAll() {
	for _, p := range r.pools {
		p.ReleaseAll()
	}
}

// Stats returns the live and constructed instance totals across all pools.
func (r *Registry) Stats() (active, allocated int) {
	for _, p := range r.pools {
		active += p.ActiveCount()
		allocated += p.Allocated()
	}
	return active, allocated
}
