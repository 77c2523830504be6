// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// uniqueTable is the per-level hash table used to guarantee structural
// canonicity: for a given level there is exactly one live node for any
// (hi, lo) pair. heads[i] is the slot of the first node in chain i, or 0
// (no slot 0 is ever live) if the chain is empty; node.next threads the
// rest of the chain.
type uniqueTable struct {
	heads     []uint32
	count     int  // number of live nodes hashed into this table
	processed bool // scratch flag used by a reordering pass (reorder.go)
}

func newUniqueTable(size int) *uniqueTable {
	return &uniqueTable{heads: make([]uint32, nextPow2(size))}
}

func (t *uniqueTable) mask() uint64 {
	return uint64(len(t.heads) - 1)
}

func (t *uniqueTable) chain(hi, lo ID) uint64 {
	return hashNode(0, hi, lo) & t.mask()
}

// grow doubles the table (shifting the mask up by one bit per doubling
// of node count) and rehashes every live node into the new chains.
func (t *uniqueTable) growTo(newSize int, a *arena) {
	newSize = nextPow2(newSize)
	if newSize <= len(t.heads) {
		return
	}
	old := t.heads
	t.heads = make([]uint32, newSize)
	mask := t.mask()
	for _, head := range old {
		for s := head; s != 0; {
			n := a.at(s)
			next := uint32(n.next)
			h := hashNode(0, n.hi, n.lo) & mask
			n.next = int32(t.heads[h])
			t.heads[h] = s
			s = next
		}
	}
}

// overloaded reports whether the average chain length has grown past 1,
// the trigger for resizing the table.
func (t *uniqueTable) overloaded() bool {
	return t.count > len(t.heads)
}

// numNodes reports how many live nodes are currently hashed into t.
func (t *uniqueTable) numNodes() int { return t.count }

// drain empties t, returning the slots of every node that was live in it.
// The nodes themselves are untouched (their next field is stale until
// rehash puts them back into some chain); used by reorder.go's exchange to
// pull an entire level out of the table before reshaping it.
func (t *uniqueTable) drain(a *arena) []uint32 {
	slots := make([]uint32, 0, t.count)
	for i, head := range t.heads {
		for s := head; s != 0; {
			n := a.at(s)
			slots = append(slots, s)
			s = uint32(n.next)
		}
		t.heads[i] = 0
	}
	t.count = 0
	return slots
}

// rehash inserts an already-populated node (index/hi/lo already set to
// their final values) back into t's chains, recomputing its hash bucket.
func (t *uniqueTable) rehash(a *arena, slot uint32) {
	n := a.at(slot)
	h := t.chain(n.hi, n.lo)
	n.next = int32(t.heads[h])
	t.heads[h] = slot
	t.count++
}

// makeUnique finds or adds the canonical node for (index, hi, lo):
// normalize the complement (if hi would be negative, invert both
// children and remember to invert the returned edge), short-circuit
// reduced nodes, and otherwise walk the level's chain before allocating.
//
// On arena exhaustion it forces one synchronous GC (unless GC is locked)
// and retries the allocation exactly once; if that still fails it
// returns null and lets it propagate up through the kernel.
func (m *Manager) makeUnique(index int32, hi, lo ID) ID {
	if hi == lo {
		return hi
	}
	comp := hi.isComplement()
	if comp {
		hi = hi.Not()
		lo = lo.Not()
	}

	t := m.levels[index]
	h := t.chain(hi, lo)
	for s := t.heads[h]; s != 0; {
		n := m.a.at(s)
		if n.index == index && n.hi == hi && n.lo == lo {
			m.cstat.uniqueHit++
			return makeID(s, comp)
		}
		s = uint32(n.next)
	}
	m.cstat.uniqueMiss++

	slot := m.a.allocate()
	if slot == 0 {
		if m.gcLock == 0 {
			m.gc(true)
			slot = m.a.allocate()
		}
		if slot == 0 {
			m.seterror("%s", errMemory)
			return null
		}
		h = t.chain(hi, lo)
	}
	n := m.a.at(slot)
	n.index = index
	n.hi = hi
	n.lo = lo
	n.refs = 0
	n.marks = 0
	n.next = int32(t.heads[h])
	t.heads[h] = slot
	t.count++
	if t.overloaded() {
		t.growTo(len(t.heads)*4, m.a)
	}
	return makeID(slot, comp)
}
