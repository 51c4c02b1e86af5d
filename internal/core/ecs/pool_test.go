package ecs

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

type dummy struct {
	x     float64
	tag   string
	reset int
}

func newDummyPool() *Pool[dummy] {
	return NewPool[dummy](4, nil, func(d *dummy) {
		d.x, d.tag = 0, ""
		d.reset++
	})
}

func TestPoolReusesReleasedInstances(t *testing.T) {
	p := newDummyPool()
	id1, d1 := p.Acquire()
	d1.x, d1.tag = 5, "bat"
	if !p.Release(id1) {
		t.Fatal("Release() of a live instance = false")
	}
	id2, d2 := p.Acquire()
	if d2 != d1 {
		t.Error("Acquire() did not reuse the released instance")
	}
	if d2.x != 0 || d2.tag != "" || d2.reset != 1 {
		t.Errorf("reused instance not reset: %+v", *d2)
	}
	if id2 == id1 {
		t.Error("reused slot kept the old generation")
	}
	if p.Allocated() != 1 {
		t.Errorf("Allocated() = %d, want 1", p.Allocated())
	}
}

func TestPoolReleaseMisuseIsNoop(t *testing.T) {
	p := newDummyPool()
	id, _ := p.Acquire()
	p.Release(id)

	tests := []struct {
		name string
		id   EntityID
	}{
		{"double release", id},
		{"zero id", 0},
		{"never allocated", NewEntityID(99, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p.Release(tt.id) {
				t.Errorf("Release(%v) = true, want false", tt.id)
			}
			if p.ActiveCount() != 0 {
				t.Errorf("ActiveCount() = %d, want 0", p.ActiveCount())
			}
		})
	}

	id2, _ := p.Acquire()
	if p.Release(id) {
		t.Error("stale id released the slot's new occupant")
	}
	if !p.Active(id2) {
		t.Error("new occupant lost")
	}
}

func TestPoolEachToleratesRelease(t *testing.T) {
	p := newDummyPool()
	var ids []EntityID
	for i := 0; i < 6; i++ {
		id, d := p.Acquire()
		d.x = float64(i)
		ids = append(ids, id)
	}
	visited := 0
	p.Each(func(id EntityID, d *dummy) bool {
		visited++
		x := d.x
		p.Release(id)
		if x == 1 {
			p.Release(ids[2]) // a later slot disappears mid-iteration
		}
		return true
	})
	if visited != 5 {
		t.Errorf("visited %d instances, want 5", visited)
	}
	if p.ActiveCount() != 0 {
		t.Errorf("ActiveCount() = %d, want 0", p.ActiveCount())
	}
}

// TestPoolActiveCountProperty checks ActiveCount against a model under random
// acquire/release sequences, including stale and double releases.
func TestPoolActiveCountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := newDummyPool()
		live := map[EntityID]bool{}
		var dead []EntityID

		t.Repeat(map[string]func(*rapid.T){
			"acquire": func(t *rapid.T) {
				id, _ := p.Acquire()
				if live[id] {
					t.Fatalf("Acquire() returned live id %v", id)
				}
				live[id] = true
			},
			"release": func(t *rapid.T) {
				if len(live) == 0 {
					t.Skip("nothing live")
				}
				ids := make([]EntityID, 0, len(live))
				for id := range live {
					ids = append(ids, id)
				}
				id := rapid.SampledFrom(sortIDs(ids)).Draw(t, "id")
				if !p.Release(id) {
					t.Fatalf("Release(%v) of a live id = false", id)
				}
				delete(live, id)
				dead = append(dead, id)
			},
			"release stale": func(t *rapid.T) {
				if len(dead) == 0 {
					t.Skip("nothing released")
				}
				id := rapid.SampledFrom(dead).Draw(t, "id")
				if p.Release(id) {
					t.Fatalf("Release(%v) of a stale id = true", id)
				}
			},
			"": func(t *rapid.T) {
				if p.ActiveCount() != len(live) {
					t.Fatalf("ActiveCount() = %d, model %d", p.ActiveCount(), len(live))
				}
				if p.Allocated() < p.ActiveCount() {
					t.Fatalf("Allocated() %d < ActiveCount() %d", p.Allocated(), p.ActiveCount())
				}
			},
		})
	})
}

func sortIDs(ids []EntityID) []EntityID {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func TestReleaseQueueWaitsForDue(t *testing.T) {
	p := newDummyPool()
	a, _ := p.Acquire()
	b, _ := p.Acquire()
	q := NewReleaseQueue()
	q.Schedule(p, a, 100*time.Millisecond)
	q.Schedule(p, b, 300*time.Millisecond)
	q.Schedule(p, a, 100*time.Millisecond) // duplicate is harmless

	if n := q.Flush(50 * time.Millisecond); n != 0 {
		t.Errorf("Flush(50ms) released %d", n)
	}
	if n := q.Flush(100 * time.Millisecond); n != 1 {
		t.Errorf("Flush(100ms) released %d, want 1", n)
	}
	if q.Len() != 1 || !p.Active(b) {
		t.Fatalf("Len() = %d, b active = %v", q.Len(), p.Active(b))
	}
	q.Flush(time.Second)
	if q.Len() != 0 || p.ActiveCount() != 0 {
		t.Errorf("Len() = %d, ActiveCount() = %d after final flush", q.Len(), p.ActiveCount())
	}
}

func TestRegistryStatsAndReleaseAll(t *testing.T) {
	a, b := newDummyPool(), NewPool[int](2, nil, nil)
	r := NewRegistry()
	r.Register(a)
	r.Register(b)
	a.Acquire()
	a.Acquire()
	b.Acquire()
	if active, allocated := r.Stats(); active != 3 || allocated != 3 {
		t.Fatalf("Stats() = %d, %d, want 3, 3", active, allocated)
	}
	r.Unregister(b)
	r.ReleaseAll()
	if a.ActiveCount() != 0 || b.ActiveCount() != 1 {
		t.Errorf("after ReleaseAll: a=%d b=%d", a.ActiveCount(), b.ActiveCount())
	}
}
