// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// gc runs one mark-and-sweep collection: nodes reachable from the
// refstack (transient results a recursion has not yet linked into a
// caller) or from a slot with a positive external reference count are
// kept; everything else is returned to the arena's free list. Every
// unique-table chain is rebuilt from the surviving nodes and every
// computed cache is invalidated, in the shape of dalzilio-rudd/gc.go's
// gbc, simplified because a node record here already carries
// index/hi/lo directly instead of a separate hash field.
//
// gc is a no-op while gcLock is held (compose.go and the reordering
// engine hold it across recursions that must not see the arena reshaped
// underneath them).
func (m *Manager) gc(force bool) {
	if m.gcLock > 0 {
		return
	}
	if !force && m.a.total()-m.a.freeCount < m.gcTrigger {
		return
	}

	for _, id := range m.refstack {
		m.markRec(id)
	}
	total := uint32(m.a.total())
	for slot := uint32(2); slot < total; slot++ {
		n := m.a.at(slot)
		if !n.free() && n.refs > 0 {
			m.markRec(makeID(slot, false))
		}
	}

	for _, t := range m.levels[1:] {
		for i := range t.heads {
			t.heads[i] = 0
		}
		t.count = 0
	}

	m.a.freeHead = 0
	m.a.freeCount = 0
	// total-2 downto 0 in signed arithmetic, offset by 2, so the unsigned
	// slot index never has to go below 2 and wrap around.
	for i := int(total) - 2; i >= 0; i-- {
		slot := uint32(i) + 2
		n := m.a.at(slot)
		if n.marked(markGC) && !n.free() {
			n.clearMark(markGC)
			t := m.levels[n.index]
			h := t.chain(n.hi, n.lo)
			n.next = int32(t.heads[h])
			t.heads[h] = slot
			t.count++
			continue
		}
		m.a.free(slot)
	}

	m.andCache.reset()
	m.xorCache.reset()
	m.restrictCache.reset()
	m.iteCache.reset()
	m.andExistsCache.reset()

	m.gcHistory = append(m.gcHistory, gcPoint{total: m.a.total(), free: m.a.freeCount})
}

func (m *Manager) markRec(id ID) {
	if id.isConstant() {
		return
	}
	n := m.a.at(id.slot())
	if n.marked(markGC) {
		return
	}
	n.setMark(markGC)
	m.markRec(n.hi)
	m.markRec(n.lo)
}

// GC forces an immediate collection regardless of the free-node
// threshold and returns the number of slots reclaimed. It fails
// (returning -1) while a lockGC/unlockGC section is open.
func (m *Manager) GC() int {
	if m.gcLock > 0 {
		m.seterror("garbage collection is locked")
		return -1
	}
	before := m.a.freeCount
	m.gc(true)
	return m.a.freeCount - before
}

// LockGC prevents garbage collection from running until a matching
// UnlockGC. Calls nest: GC only resumes once every lock has been
// released. Used around recursions (compose, reordering) that hold
// bare node indices across steps that must not see the arena or unique
// tables reshaped underneath them.
func (m *Manager) LockGC() { m.gcLock++ }

// UnlockGC releases one level of a LockGC nesting.
func (m *Manager) UnlockGC() {
	if m.gcLock > 0 {
		m.gcLock--
	}
}
