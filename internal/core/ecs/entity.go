package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on release to invalidate stale refs.
// Generations start at 1 so the zero ID never names a live slot.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// slotTable manages slot allocation with generational indices and a free list.
type slotTable struct {
	generations []uint32
	live        []bool
	freeList    []uint32
	nextIndex   uint32
	liveCount   int
}

func newSlotTable(capacity int) slotTable {
	return slotTable{
		generations: make([]uint32, 0, capacity),
		live:        make([]bool, 0, capacity),
		freeList:    make([]uint32, 0, capacity/4+1),
	}
}

// create returns a free slot ID and whether the slot is brand new.
func (t *slotTable) create() (EntityID, bool) {
	t.liveCount++
	if len(t.freeList) > 0 {
		idx := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.live[idx] = true
		return NewEntityID(idx, t.generations[idx]), false
	}
	idx := t.nextIndex
	t.nextIndex++
	t.generations = append(t.generations, 1)
	t.live = append(t.live, true)
	return NewEntityID(idx, 1), true
}

func (t *slotTable) alive(id EntityID) bool {
	idx := id.Index()
	if idx >= t.nextIndex {
		return false
	}
	return t.live[idx] && t.generations[idx] == id.Generation()
}

// destroy frees the slot. Returns false for stale or already-free IDs.
func (t *slotTable) destroy(id EntityID) bool {
	if !t.alive(id) {
		return false
	}
	idx := id.Index()
	t.generations[idx]++
	t.live[idx] = false
	t.freeList = append(t.freeList, idx)
	t.liveCount--
	return true
}
