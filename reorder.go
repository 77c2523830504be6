// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// Rudell sifting, grounded on BddImpl::reorder/sift_udu/sift_dud/exchange/
// demote/swapCofactors/promote and the total-reference-count bookkeeping
// (saveXRefs/calcTRefs/restoreXRefs) in the original C++ core's
// BddImplMem.cc. dalzilio-rudd has no reordering at all; the adjacent-swap mechanics
// below are otherwise a direct port of that algorithm onto this package's
// arena/uniqueTable/ID types, working through the exported high/low/index
// accessors instead of raw pointer arithmetic.
//
// Sifting temporarily repurposes node.refs to mean "total references,
// internal and external" rather than "external references only": every
// external reference is snapshotted and zeroed by saveXRefs before the
// sweep starts, then every node's true total is rebuilt by calcTRefs, and
// the original external counts are restored once every level has been
// tried. Between those two calls refs must not be read by anything except
// the reordering machinery itself, which is why the whole pass runs under
// LockGC: nothing else may run a collection (or another reorder) while
// the field means something different than usual.

// Reorder runs one sifting pass, trying every variable in turn as a
// candidate to move to a better level, and returns the number of nodes
// reclaimed (startSize - endSize; negative if the arena grew instead).
func (m *Manager) Reorder(verbose bool) int {
	m.gc(true)
	m.LockGC()
	m.reordering = true
	m.a.ignoreCeiling = true
	defer func() { m.a.ignoreCeiling = false }()
	startSize := m.NodesAllocd()

	saved := m.saveXRefs()
	for slot := range saved {
		m.calcTRefs(makeID(slot, false))
	}
	for _, t := range m.levels[1:] {
		t.processed = false
	}

	for {
		idx := m.nextSiftVar()
		if idx == 0 {
			break
		}
		m.levels[idx].processed = true
		if idx < int32(m.varCount)/2+1 {
			m.siftUpDownUp(idx)
		} else {
			m.siftDownUpDown(idx)
		}
	}
	m.rebuildVar2Index()

	m.restoreXRefs(saved)
	m.reordering = false
	m.UnlockGC()

	m.andCache.reset()
	m.xorCache.reset()
	m.restrictCache.reset()
	m.iteCache.reset()
	m.andExistsCache.reset()

	if verbose {
		m.gcHistory = append(m.gcHistory, gcPoint{total: m.a.total(), free: m.a.freeCount})
	}
	return startSize - m.NodesAllocd()
}

// nextSiftVar picks the unprocessed level with the most live nodes, the
// same greedy order BddImpl::getNextBddVar uses; it returns 0 once every
// level has been tried.
func (m *Manager) nextSiftVar() int32 {
	var best int32
	worst := 0
	for lvl := int32(1); lvl <= int32(m.varCount); lvl++ {
		t := m.levels[lvl]
		if !t.processed && t.numNodes() > worst {
			worst = t.numNodes()
			best = lvl
		}
	}
	return best
}

func (m *Manager) rebuildVar2Index() {
	for lvl := int32(1); lvl <= int32(m.varCount); lvl++ {
		m.var2index[m.index2var[lvl]] = lvl
	}
}

// maxSiftSize bounds how far a single variable's sweep may grow the arena
// before it must turn back: one and a half times its size when the sweep
// started, capped by the Manager's own node ceiling.
func (m *Manager) maxSiftSize(startSz int) int {
	sz := startSz + startSz/2
	if m.cfg.maxNodes > 0 && sz > m.cfg.maxNodes {
		sz = m.cfg.maxNodes
	}
	return sz
}

// siftUpDownUp moves the variable at level index all the way up to level 1
// (exchanging one level at a time), then all the way down past its
// starting point to the bottom, tracking the cumulative node-count delta
// at every position, and finally returns it to whichever position gave
// the best (most negative) cumulative delta.
func (m *Manager) siftUpDownUp(index int32) {
	startSz := m.NodesAllocd()
	maxSz := m.maxSiftSize(startSz)

	jdx := index
	for jdx > 1 && m.NodesAllocd() < maxSz {
		jdx--
		m.exchange(jdx)
	}

	delta := m.exchange(jdx)
	jdx++
	var best int
	var bestIndex int32
	if delta < 0 {
		best = delta
		bestIndex = jdx
	} else {
		best = 0
		bestIndex = jdx - 1
	}

	for jdx < int32(m.varCount) && m.NodesAllocd() < maxSz {
		d := m.exchange(jdx)
		jdx++
		delta += d
		if delta < best {
			best = delta
			bestIndex = jdx
		}
	}

	for bestIndex < jdx {
		jdx--
		m.exchange(jdx)
	}
}

// siftDownUpDown is the mirror sweep: down to the bottom first, then all
// the way up past the starting point, settling on the best position found.
func (m *Manager) siftDownUpDown(index int32) {
	startSz := m.NodesAllocd()
	maxSz := m.maxSiftSize(startSz)

	jdx := index
	for jdx < int32(m.varCount) && m.NodesAllocd() < maxSz {
		m.exchange(jdx)
		jdx++
	}

	jdx--
	delta := m.exchange(jdx)
	var best int
	var bestIndex int32
	if delta < 0 {
		best = delta
		bestIndex = jdx
	} else {
		best = 0
		bestIndex = jdx + 1
	}

	for jdx > 1 && m.NodesAllocd() < maxSz {
		jdx--
		d := m.exchange(jdx)
		delta += d
		if delta <= best {
			best = delta
			bestIndex = jdx
		}
	}

	for bestIndex > jdx {
		m.exchange(jdx)
		jdx++
	}
}

// exchange swaps the variables sitting at levels index and index+1,
// rebuilding every node that referenced either level, and returns the
// resulting change in total node count for the pair. The three steps
// (demote, swapCofactors, promote) must run in exactly this order: demote
// moves untouched nodes down before swapCofactors starts rewriting the
// level they vacated, and promote only sees what swapCofactors left
// behind.
func (m *Manager) exchange(index int32) int {
	m.index2var[index], m.index2var[index+1] = m.index2var[index+1], m.index2var[index]

	tbl1 := m.levels[index]
	tbl2 := m.levels[index+1]
	startSz := tbl1.numNodes() + tbl2.numNodes()

	x1 := tbl1.drain(m.a)
	x2 := tbl2.drain(m.a)
	tbl1.processed, tbl2.processed = tbl2.processed, tbl1.processed

	m.demote(x1, index)
	m.swapCofactors(x1, index)
	m.promote(x2, index)

	endSz := tbl1.numNodes() + tbl2.numNodes()
	return endSz - startSz
}

// demote pushes every node of x1 (formerly at index) down to index+1 if
// both of its children already live below index+1: such a node's own
// cofactors do not depend on the variable being swapped in above it, so
// it can move down for free without going through swapCofactors.
func (m *Manager) demote(x1 []uint32, index int32) {
	tbl2 := m.levels[index+1]
	for _, f := range x1 {
		n := m.a.at(f)
		if m.index(n.hi) > index+1 && m.index(n.lo) > index+1 {
			n.index = index + 1
			tbl2.rehash(m.a, f)
		}
	}
}

// splitChild returns f's own (hi, lo) cofactors if f sits at index+1, or
// (f, f) unchanged otherwise — the "does this child depend on the
// variable being swapped in" test swapCofactors needs for both of a
// node's edges.
func (m *Manager) splitChild(f ID, index int32) (ID, ID) {
	if f.isConstant() || m.index(f) != index+1 {
		return f, f
	}
	return m.high(f), m.low(f)
}

// swapCofactors rebuilds every node of x1 that demote left behind (still
// sitting at index): each such node's grandchildren are recombined under
// the swapped variable order. A call to makeUnique can grow the arena and
// invalidate any *node pointer taken before it, so n is reacquired after
// each one.
func (m *Manager) swapCofactors(x1 []uint32, index int32) {
	tbl1 := m.levels[index]
	for _, f := range x1 {
		n := m.a.at(f)
		if n.index != index {
			continue // demoted already
		}
		f1, f0 := n.hi, n.lo
		m.decTRefs(f1)
		m.decTRefs(f0)

		f11, f10 := m.splitChild(f1, index)
		f01, f00 := m.splitChild(f0, index)

		var newHi ID
		if f11 != f01 {
			newHi = m.makeUnique(index+1, f11, f01)
			n = m.a.at(f)
		} else {
			newHi = f11
		}
		m.incTRefs(newHi)
		n.hi = newHi

		var newLo ID
		if f10 != f00 {
			newLo = m.makeUnique(index+1, f10, f00)
			n = m.a.at(f)
		} else {
			newLo = f10
		}
		m.incTRefs(newLo)
		n.lo = newLo

		tbl1.rehash(m.a, f)
	}
}

// promote reinserts every node of x2 (formerly at index+1) at index if it
// is still referenced; anything swapCofactors and demote left with no
// remaining reference is freed instead of being carried forward.
func (m *Manager) promote(x2 []uint32, index int32) {
	tbl1 := m.levels[index]
	for _, f := range x2 {
		n := m.a.at(f)
		if n.refs > 0 {
			n.index = index
			tbl1.rehash(m.a, f)
		} else {
			m.a.free(f)
		}
	}
}

// calcTRefs walks f's DAG once (guarded by the first-visit test refs==0,
// meaningful only because saveXRefs has already zeroed every count) and
// turns it into a true total-reference count: children are visited before
// a node's own count is incremented, so a shared subDAG is only recursed
// into the first time any of its parents reaches it.
func (m *Manager) calcTRefs(f ID) {
	if f.isConstant() {
		return
	}
	n := m.a.at(f.slot())
	if n.refs == 0 {
		m.calcTRefs(n.hi)
		m.calcTRefs(n.lo)
	}
	n.refs++
}

// decTRefs drops f's total-reference count by one, recursing into its
// children only once the count reaches zero — the point at which f itself
// stops holding its children alive.
func (m *Manager) decTRefs(f ID) {
	if f.isConstant() {
		return
	}
	n := m.a.at(f.slot())
	n.refs--
	if n.refs == 0 {
		m.decTRefs(n.hi)
		m.decTRefs(n.lo)
	}
}

// incTRefs is decTRefs's inverse, used by swapCofactors to record the new
// edges it just created.
func (m *Manager) incTRefs(f ID) {
	if f.isConstant() {
		return
	}
	n := m.a.at(f.slot())
	if n.refs == 0 {
		m.incTRefs(n.hi)
		m.incTRefs(n.lo)
	}
	n.refs++
}

// saveXRefs snapshots the external reference count of every live node and
// zeroes it in place, so calcTRefs can rebuild the field as a total
// (internal + external) count without the two meanings colliding.
func (m *Manager) saveXRefs() map[uint32]int32 {
	saved := make(map[uint32]int32)
	for _, t := range m.levels[1:] {
		for _, head := range t.heads {
			for s := head; s != 0; {
				n := m.a.at(s)
				if n.refs > 0 {
					saved[s] = n.refs
					n.refs = 0
				}
				s = uint32(n.next)
			}
		}
	}
	return saved
}

// restoreXRefs undoes saveXRefs, replacing the total-reference counts
// sifting produced with the external-only counts saved before it started
// (zero for a node that had none).
func (m *Manager) restoreXRefs(saved map[uint32]int32) {
	for _, t := range m.levels[1:] {
		for _, head := range t.heads {
			for s := head; s != 0; {
				n := m.a.at(s)
				n.refs = saved[s]
				s = uint32(n.next)
			}
		}
	}
}
