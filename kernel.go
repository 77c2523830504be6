// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// The Boolean kernel: cofactor recursion over the shared variable order,
// memoized in the five computed caches (cache.go). Every primitive here
// is unexported and can return null on allocation failure; null
// propagates straight up through the recursion instead of being checked
// at every call site, the same shape as dalzilio-rudd/operations.go's
// ite_/apprec, adapted here for complement edges instead of plain-node
// truth-table dispatch.
//
// Every exported entry point (And, Or, ..., Ite, Restrict, AndExists) is
// a thin wrapper that runs the recursion once and, if it comes back
// null and GC is not already locked, forces one collection and retries
// exactly once before giving up.

// Operator names one of the seven two-operand Boolean connectives
// reachable through Apply.
type Operator uint8

const (
	OpAnd Operator = iota
	OpOr
	OpXor
	OpNand
	OpNor
	OpXnor
	OpImplies
)

func notID(id ID) ID {
	if id == null {
		return null
	}
	return id.Not()
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int32) int32 {
	return min32(min32(a, b), c)
}

// hiCofactor/loCofactor return f's cofactor with respect to the variable
// at level i: f itself if f does not depend on that variable (its own
// index is strictly greater, by the ordering invariant), otherwise the
// corresponding child, folding in f's complement bit.
func (m *Manager) hiCofactor(f ID, i int32) ID {
	if m.index(f) == i {
		return m.high(f)
	}
	return f
}

func (m *Manager) loCofactor(f ID, i int32) ID {
	if m.index(f) == i {
		return m.low(f)
	}
	return f
}

// retryOnNull runs op once; if it fails (null) and GC is not held by an
// outer caller, it forces a collection and tries exactly once more.
func (m *Manager) retryOnNull(op func() ID) ID {
	r := op()
	if r == null && m.gcLock == 0 {
		m.gc(true)
		r = op()
	}
	return r
}

// and_ is the AND primitive.
func (m *Manager) and_(f, g ID) ID {
	switch {
	case f == One:
		return g
	case g == One:
		return f
	case f == Zero, g == Zero:
		return Zero
	case f == g:
		return f
	case f == g.Not():
		return Zero
	}
	if f > g {
		f, g = g, f
	}
	if r, ok := m.andCache.lookup(f, g); ok {
		m.cstat.opHit++
		return r
	}
	m.cstat.opMiss++

	i := min32(m.index(f), m.index(g))
	hi := m.pushref(m.and_(m.hiCofactor(f, i), m.hiCofactor(g, i)))
	lo := m.pushref(m.and_(m.loCofactor(f, i), m.loCofactor(g, i)))
	m.popref(2)
	if hi == null || lo == null {
		return null
	}
	r := m.makeUnique(i, hi, lo)
	if r != null {
		m.andCache.insert(f, g, r)
	}
	return r
}

// or_ is AND under De Morgan, used internally (restrict_'s care-set
// reduction, andExists_'s quantified combine) where the retry policy of
// the public Or would be premature.
func (m *Manager) or_(f, g ID) ID {
	return notID(m.and_(f.Not(), g.Not()))
}

// xor_ is the XOR primitive. Complement is stripped from both
// operands before the cache lookup (XOR(f,g) = XOR(¬f,¬g)) and restored
// on the result, which the AND cache cannot do since AND has no such
// symmetry.
func (m *Manager) xor_(f, g ID) ID {
	switch {
	case f == One:
		return notID(g)
	case g == One:
		return notID(f)
	case f == Zero:
		return g
	case g == Zero:
		return f
	case f == g:
		return Zero
	case f == g.Not():
		return One
	}

	comp := false
	if f.isComplement() {
		f = f.Not()
		comp = !comp
	}
	if g.isComplement() {
		g = g.Not()
		comp = !comp
	}
	if f > g {
		f, g = g, f
	}

	if r, ok := m.xorCache.lookup(f, g); ok {
		m.cstat.opHit++
		if comp {
			return r.Not()
		}
		return r
	}
	m.cstat.opMiss++

	i := min32(m.index(f), m.index(g))
	hi := m.pushref(m.xor_(m.hiCofactor(f, i), m.hiCofactor(g, i)))
	lo := m.pushref(m.xor_(m.loCofactor(f, i), m.loCofactor(g, i)))
	m.popref(2)
	if hi == null || lo == null {
		return null
	}
	r := m.makeUnique(i, hi, lo)
	if r == null {
		return null
	}
	m.xorCache.insert(f, g, r)
	if comp {
		return r.Not()
	}
	return r
}

// ite_ is the ITE primitive.
func (m *Manager) ite_(f, g, h ID) ID {
	switch {
	case f == One:
		return g
	case f == Zero:
		return h
	}
	if f == g {
		g = One
	} else if f == g.Not() {
		g = Zero
	}
	if f == h {
		h = Zero
	} else if f == h.Not() {
		h = One
	}
	switch {
	case g == h:
		return g
	case g == One && h == Zero:
		return f
	case g == Zero && h == One:
		return notID(f)
	}

	comp := false
	switch {
	case g == One && m.index(h) < m.index(f):
		f, h = h, f
	case h == Zero && m.index(g) < m.index(f):
		f, g = g, f
	case h == One:
		g = g.Not()
		h = Zero
		comp = !comp
		if m.index(g) < m.index(f) {
			f, g = g, f
		}
	case g == Zero:
		h = h.Not()
		g = One
		comp = !comp
		if m.index(h) < m.index(f) {
			f, h = h, f
		}
	case g == h.Not() && m.index(f) > m.index(g):
		f, g, h = g, f, f.Not()
	}

	if f.isComplement() {
		f = f.Not()
		g, h = h, g
	}
	if g.isComplement() {
		g = g.Not()
		h = h.Not()
		comp = !comp
	}
	if g == h {
		if comp {
			return notID(g)
		}
		return g
	}

	if r, ok := m.iteCache.lookup(f, g, h); ok {
		m.cstat.opHit++
		if comp {
			return notID(r)
		}
		return r
	}
	m.cstat.opMiss++

	i := min3(m.index(f), m.index(g), m.index(h))
	fhi, ghi, hhi := m.hiCofactor(f, i), m.hiCofactor(g, i), m.hiCofactor(h, i)
	flo, glo, hlo := m.loCofactor(f, i), m.loCofactor(g, i), m.loCofactor(h, i)
	hi := m.pushref(m.ite_(fhi, ghi, hhi))
	lo := m.pushref(m.ite_(flo, glo, hlo))
	m.popref(2)
	if hi == null || lo == null {
		return null
	}
	r := m.makeUnique(i, hi, lo)
	if r == null {
		return null
	}
	m.iteCache.insert(f, g, h, r)
	if comp {
		return r.Not()
	}
	return r
}

// restrict_ is the generalized cofactor.
func (m *Manager) restrict_(f, c ID) ID {
	switch {
	case c == One:
		return f
	case f.isConstant():
		return f
	case f == c:
		return One
	case f == c.Not():
		return Zero
	}

	i := m.index(f)
	for c != One && m.index(c) < i {
		c = m.or_(m.high(c), m.low(c))
		if c == null {
			return null
		}
	}
	if c == One {
		return f
	}

	fhi, flo := m.high(f), m.low(f)
	chi, clo := m.hiCofactor(c, i), m.loCofactor(c, i)

	// chi/clo only decide whether one branch of c is dead; the recursive
	// calls themselves carry the shared, not-yet-cofactored c, since c is
	// a general care function and its hi/lo cofactors are not equivalent
	// to c itself except when c happens to be a cube.
	switch {
	case chi == Zero:
		return m.restrict_(flo, c)
	case clo == Zero:
		return m.restrict_(fhi, c)
	}

	if r, ok := m.restrictCache.lookup(f, c); ok {
		m.cstat.opHit++
		return r
	}
	m.cstat.opMiss++

	hi := m.pushref(m.restrict_(fhi, c))
	lo := m.pushref(m.restrict_(flo, c))
	m.popref(2)
	if hi == null || lo == null {
		return null
	}
	r := m.makeUnique(i, hi, lo)
	if r != null {
		m.restrictCache.insert(f, c, r)
	}
	return r
}

// andExists_ is the relational product ∃vars(c).(f ∧ g), c a
// positive-literal cube.
func (m *Manager) andExists_(f, g, c ID) ID {
	switch {
	case c == One:
		return m.and_(f, g)
	case f == Zero, g == Zero:
		return Zero
	case f == g.Not():
		return Zero
	}

	i := min32(m.index(f), m.index(g))
	for c != One && m.index(c) < i {
		c = m.high(c)
	}
	quantified := c != One && m.index(c) == i

	if f > g {
		f, g = g, f
	}
	if r, ok := m.andExistsCache.lookup(f, g, c); ok {
		m.cstat.opHit++
		return r
	}
	m.cstat.opMiss++

	flo, glo := m.loCofactor(f, i), m.loCofactor(g, i)
	lo := m.pushref(m.andExists_(flo, glo, c))
	if quantified && lo == One {
		m.popref(1)
		m.andExistsCache.insert(f, g, c, One)
		return One
	}

	fhi, ghi := m.hiCofactor(f, i), m.hiCofactor(g, i)
	hi := m.pushref(m.andExists_(fhi, ghi, c))
	m.popref(2)
	if hi == null || lo == null {
		return null
	}

	var r ID
	if quantified {
		r = m.or_(hi, lo)
	} else {
		r = m.makeUnique(i, hi, lo)
	}
	if r != null {
		m.andExistsCache.insert(f, g, c, r)
	}
	return r
}

// Compose replaces the variable currently sitting at level level by g
// inside f, following the ite(g, restrict(f,x), restrict(f,¬x))
// identity. GC is locked for the duration since the two
// restrict results are transient, unreferenced by anything but the
// refstack, until ite_ links them into its own result.
func (m *Manager) Compose(f ID, level int32, g ID) ID {
	m.LockGC()
	defer m.UnlockGC()
	x := m.literalAt(level)
	fx := m.pushref(m.restrict_(f, x))
	fnx := m.pushref(m.restrict_(f, x.Not()))
	r := m.ite_(g, fx, fnx)
	m.popref(2)
	return r
}

// And, Or, Xor, Nand, Nor, Xnor, Implies are the seven two-operand
// connectives, each expressed via and_/xor_ and wrapped in the
// outermost null-then-retry policy.
func (m *Manager) And(f, g ID) ID {
	return m.retryOnNull(func() ID { return m.and_(f, g) })
}

func (m *Manager) Or(f, g ID) ID {
	return m.retryOnNull(func() ID { return m.or_(f, g) })
}

func (m *Manager) Xor(f, g ID) ID {
	return m.retryOnNull(func() ID { return m.xor_(f, g) })
}

func (m *Manager) Nand(f, g ID) ID {
	return m.retryOnNull(func() ID { return notID(m.and_(f, g)) })
}

func (m *Manager) Nor(f, g ID) ID {
	return m.retryOnNull(func() ID { return m.and_(f.Not(), g.Not()) })
}

func (m *Manager) Xnor(f, g ID) ID {
	return m.retryOnNull(func() ID { return notID(m.xor_(f, g)) })
}

func (m *Manager) Implies(f, g ID) ID {
	return m.retryOnNull(func() ID { return notID(m.and_(f, g.Not())) })
}

// Apply dispatches to one of the seven connectives above by name; it
// exists to give callers a uniform, table-driven entry point (used by
// the fnset and DNF-extraction code, which iterate over covers).
func (m *Manager) Apply(f, g ID, op Operator) ID {
	switch op {
	case OpAnd:
		return m.And(f, g)
	case OpOr:
		return m.Or(f, g)
	case OpXor:
		return m.Xor(f, g)
	case OpNand:
		return m.Nand(f, g)
	case OpNor:
		return m.Nor(f, g)
	case OpXnor:
		return m.Xnor(f, g)
	case OpImplies:
		return m.Implies(f, g)
	}
	m.seterror("unknown operator %d", op)
	if _DEBUG {
		panic(m.Error())
	}
	return null
}

// Ite is the exported if-then-else entry point.
func (m *Manager) Ite(f, g, h ID) ID {
	return m.retryOnNull(func() ID { return m.ite_(f, g, h) })
}

// Restrict is the exported generalized-cofactor entry point.
func (m *Manager) Restrict(f, c ID) ID {
	return m.retryOnNull(func() ID { return m.restrict_(f, c) })
}

// AndExists is the exported relational-product entry point.
func (m *Manager) AndExists(f, g, c ID) ID {
	return m.retryOnNull(func() ID { return m.andExists_(f, g, c) })
}

// Covers reports whether every minterm of f is also a minterm of g,
// i.e. f ⇒ g. Used by Handle's <= operator.
func (m *Manager) Covers(f, g ID) bool {
	return m.Implies(f, g) == One
}
