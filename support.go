// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// Support, SupportCube, CubeFactor and OneCube analyze the shape of a
// single function rather than combine two of them; they are grounded on
// BddImpl::supportVec/supportCubeRec/cubeFactor/oneCube in the original
// C++ core; dalzilio-rudd's Scanset/Makeset only round-trip a
// caller-supplied variable list, they don't derive one from a node's
// own shape.

// Support returns the external variable identifiers f depends on, in
// increasing level order.
func (m *Manager) Support(f ID) []int {
	seen := make([]bool, m.varCount+1)
	m.supportRec(f, seen)
	m.unmarkRec(f)
	vars := make([]int, 0, len(seen))
	for lvl := int32(1); lvl <= int32(m.varCount); lvl++ {
		if seen[lvl] {
			vars = append(vars, m.index2var[lvl])
		}
	}
	return vars
}

func (m *Manager) supportRec(f ID, seen []bool) {
	if f.isConstant() {
		return
	}
	n := m.a.at(f.slot())
	if n.marked(markVisit) {
		return
	}
	n.setMark(markVisit)
	seen[n.index] = true
	m.supportRec(n.hi, seen)
	m.supportRec(n.lo, seen)
}

// SupportCube returns the product of the positive literals of every
// variable f depends on, built bottom-up exactly as
// BddImpl::supportCubeRec does: mark f, recurse into both cofactors,
// AND their cubes together, then prepend f's own variable.
func (m *Manager) SupportCube(f ID) ID {
	r := m.supportCubeRec(f)
	m.unmarkRec(f)
	return r
}

func (m *Manager) supportCubeRec(f ID) ID {
	if f.isConstant() {
		return One
	}
	n := m.a.at(f.slot())
	if n.marked(markVisit) {
		return One
	}
	n.setMark(markVisit)
	s1 := m.supportCubeRec(m.high(f))
	if s1 == null {
		return null
	}
	s0 := m.supportCubeRec(m.low(f))
	if s0 == null {
		return null
	}
	r := m.and_(s1, s0)
	if r == null {
		return null
	}
	return m.makeUnique(n.index, r, Zero)
}

// unateness classifies a set of subfunctions with respect to their
// (shared, top) variable, following BddImpl::getUnateness.
type unateness int

const (
	unatePos unateness = iota
	unateNeg
	unateBinate
)

// fnSet is the Go analogue of BddImpl's FnSet (an unordered_set<BDD>):
// deduplication by ID is all it needs to provide.
type fnSet map[ID]bool

func (m *Manager) getUnateness(idx int32, fns fnSet) unateness {
	isPos, isNeg := true, true
	for f := range fns {
		if f.isOne() {
			return unateBinate
		}
		if f.isZero() {
			continue
		}
		if m.index(f) != idx {
			return unateBinate
		}
		if !m.low(f).isZero() {
			isPos = false
		}
		if !m.high(f).isZero() {
			isNeg = false
		}
	}
	switch {
	case isPos:
		return unatePos
	case isNeg:
		return unateNeg
	default:
		return unateBinate
	}
}

// expandFnSet replaces every member of fns rooted at idx by its two
// cofactors, letting deeper levels see the full set of fragments that
// can appear once idx has been consumed.
func (m *Manager) expandFnSet(idx int32, fns fnSet) fnSet {
	next := make(fnSet, len(fns))
	for f := range fns {
		if !f.isConstant() && m.index(f) == idx {
			next[m.high(f)] = true
			next[m.low(f)] = true
		} else {
			next[f] = true
		}
	}
	return next
}

// CubeFactor returns the largest cube dividing f: for each variable in
// f's support, from the top down, positive- or negative-unate
// variables are multiplied into the result; a binate variable is
// skipped (never consumed into a literal — see the recursive step,
// which still advances past it) because a binate variable cannot
// belong to any cube dividing f.
func (m *Manager) CubeFactor(f ID) ID {
	if f.isConstant() {
		return f
	}
	support := m.Support(f)
	indices := make([]int32, len(support))
	for i, v := range support {
		indices[i] = m.var2index[v]
	}
	return m.cubeFactorRec(indices, 0, fnSet{f: true})
}

func (m *Manager) cubeFactorRec(indices []int32, pos int, fns fnSet) ID {
	if pos >= len(indices) {
		return One
	}
	idx := indices[pos]
	u := m.getUnateness(idx, fns)
	next := m.expandFnSet(idx, fns)
	rtn := m.cubeFactorRec(indices, pos+1, next)
	if rtn == null {
		return null
	}
	switch u {
	case unatePos:
		return m.makeUnique(idx, rtn, Zero)
	case unateNeg:
		return m.makeUnique(idx, Zero, rtn)
	default:
		return rtn
	}
}

// OneCube returns a satisfying cube of f, or Zero if f is unsatisfiable,
// following BddImpl::oneCube: descend the hi branch first, and only
// fall back to lo if hi turns out to be unsatisfiable.
func (m *Manager) OneCube(f ID) ID {
	return m.retryOnNull(func() ID { return m.oneCube(f) })
}

func (m *Manager) oneCube(f ID) ID {
	if f.isConstant() {
		return f
	}
	x := m.index(f)
	hi := m.oneCube(m.high(f))
	if hi == null {
		return null
	}
	if hi.isZero() {
		lo := m.oneCube(m.low(f))
		if lo == null {
			return null
		}
		return m.makeUnique(x, Zero, lo)
	}
	return m.makeUnique(x, hi, Zero)
}
