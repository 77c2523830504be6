// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// arena is a growable, contiguous pool of node records with O(1) allocate
// and free via a LIFO free list: external IDs index positions in
// arena.nodes, not memory addresses, so they survive the reallocation
// done in grow. Callers that
// hold a *node across a call that can allocate (findOrAdd, grow) must
// reacquire it afterward; the kernel never does, working purely in terms
// of IDs and only dereferencing through arena.at just before use.
//
// Slot 0 is never allocated (ID 0 is the null sentinel); slot 1 is the
// permanent terminal node.
type arena struct {
	nodes           []node
	freeHead        uint32 // first free slot, 0 if none
	freeCount       int
	maxNodes        int // hard ceiling (0 = unbounded)
	maxNodeIncrease int
	produced        int // total nodes ever produced, for stats

	// ignoreCeiling lets a reordering pass grow past maxNodes rather than
	// fail partway through an exchange it cannot back out of; set by
	// Manager.Reorder for the duration of the sweep.
	ignoreCeiling bool
}

func newArena(size int, maxNodes, maxNodeIncrease int) *arena {
	a := &arena{
		maxNodes:        maxNodes,
		maxNodeIncrease: maxNodeIncrease,
	}
	a.nodes = make([]node, size)
	a.initFreeList(0)
	// slot 1 is the terminal; give it a non-null lo so it never looks free
	// and pin its refcount so GC never reclaims it.
	a.nodes[1] = node{index: _MaxVar, hi: One, lo: One, refs: _MaxRefCount}
	a.freeHead = 2
	a.freeCount = size - 2
	return a
}

// initFreeList threads nodes[from:] into a LIFO free list terminated by 0.
// Slot 0 is skipped so it is never handed out.
func (a *arena) initFreeList(from int) {
	if from < 2 {
		from = 2
	}
	for k := from; k < len(a.nodes); k++ {
		a.nodes[k] = node{next: int32(k + 1)}
	}
	if len(a.nodes) > 0 {
		a.nodes[len(a.nodes)-1].next = 0
	}
}

func (a *arena) at(slot uint32) *node {
	return &a.nodes[slot]
}

func (a *arena) total() int {
	return len(a.nodes)
}

// allocate pulls a slot from the free list, growing the arena first if it
// is empty and growth is still permitted. It returns slot 0 (invalid) on
// exhaustion; the caller must treat that as the null-ID failure case and
// propagate it upward so the outermost public entry point can force a
// collection and retry once.
func (a *arena) allocate() uint32 {
	if a.freeHead == 0 {
		if !a.grow() {
			return 0
		}
	}
	if a.freeHead == 0 {
		return 0
	}
	slot := a.freeHead
	a.freeHead = uint32(a.nodes[slot].next)
	a.freeCount--
	a.produced++
	return slot
}

func (a *arena) free(slot uint32) {
	a.nodes[slot] = node{next: int32(a.freeHead)}
	a.freeHead = slot
	a.freeCount++
}

// grow doubles the arena, capped by maxNodeIncrease and maxNodes. It
// returns false if the arena is already at its ceiling.
func (a *arena) grow() bool {
	oldSize := len(a.nodes)
	ceiling := a.maxNodes > 0 && !a.ignoreCeiling
	if ceiling && oldSize >= a.maxNodes {
		return false
	}
	newSize := oldSize * 2
	if a.maxNodeIncrease > 0 && newSize > oldSize+a.maxNodeIncrease {
		newSize = oldSize + a.maxNodeIncrease
	}
	if ceiling && newSize > a.maxNodes {
		newSize = a.maxNodes
	}
	if newSize <= oldSize {
		if a.ignoreCeiling {
			newSize = oldSize + oldSize/2 + 8
		} else {
			return false
		}
	}
	grown := make([]node, newSize)
	copy(grown, a.nodes)
	a.nodes = grown
	a.initFreeList(oldSize)
	a.freeHead = uint32(oldSize)
	a.freeCount += newSize - oldSize
	return true
}
