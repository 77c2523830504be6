// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "fmt"

// Manager owns the node arena, the per-level unique tables, the five
// computed caches, the two constant nodes, and the bookkeeping needed to
// drive garbage collection and reordering. It is the sole point of
// mutation for every BDD it manages; Handle (handle.go) is a thin,
// reference-counted view over one of its nodes.
type Manager struct {
	status

	numVars  int // presizing hint given at construction
	varCount int // number of variables actually declared so far

	a      *arena
	levels []*uniqueTable // levels[1..varCount], levels[0] unused; grows on demand

	var2index map[int]int32
	index2var []int // index2var[1..varCount]; index2var[0] unused

	andCache        *cache2
	xorCache        *cache2
	restrictCache   *cache2
	iteCache        *cache3
	andExistsCache  *cache3

	refstack []ID // transient nodes pinned against GC during a recursion

	gcLock     int
	reordering bool
	gcTrigger  int
	cfg        *config

	gcHistory []gcPoint
	cstat     cacheStat
}

// gcPoint is a snapshot of arena occupancy taken at each collection, kept
// for Stats() and for post-hoc debugging.
type gcPoint struct {
	total, free int
}

// cacheStat tallies hit/miss counts across all five computed caches, in
// the spirit of dalzilio-rudd/cache.go's cacheStat.
type cacheStat struct {
	uniqueHit, uniqueMiss int
	opHit, opMiss         int
}

// New builds a Manager with the given fixed number of variables. Variable
// levels run 1..numVars, level 1 nearest the root. Options configure
// arena and cache sizing; see config.go.
func New(numVars int, opts ...Option) (*Manager, error) {
	if numVars < 1 || int32(numVars) > _MaxVar {
		return nil, fmt.Errorf("bad number of variables (%d)", numVars)
	}
	cfg := defaultConfig(numVars)
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{
		numVars: numVars,
		cfg:     cfg,
	}
	m.a = newArena(cfg.nodeSize, cfg.maxNodes, cfg.maxNodeIncrease)
	m.gcTrigger = cfg.nodeSize - cfg.nodeSize*cfg.minFreeNodes/100

	// levels/index2var/var2index grow lazily as variables are declared:
	// numVars only presizes these structures, it does not fix the set of
	// external variable identifiers, which are caller-chosen positive
	// integers and may be sparse (e.g. 10, 20, 30, ...) rather than a
	// dense [0..numVars) range.
	m.levels = make([]*uniqueTable, 1, numVars+1)
	m.index2var = make([]int, 1, numVars+1)
	m.var2index = make(map[int]int32, numVars)

	cacheSize := nextPow2(cfg.cacheSize)
	m.andCache = newCache2(cacheSize)
	m.xorCache = newCache2(cacheSize)
	m.restrictCache = newCache2(cacheSize)
	m.iteCache = newCache3(cacheSize)
	m.andExistsCache = newCache3(cacheSize)

	m.refstack = make([]ID, 0, 4*numVars+8)
	return m, nil
}

// One returns the constant true.
func (m *Manager) One() ID { return One }

// Zero returns the constant false.
func (m *Manager) Zero() ID { return Zero }

// declareVar returns the level assigned to external variable v, creating
// a fresh level (appended below every existing one, i.e. nearer the
// leaves) the first time v is seen. Unlike a scheme that pre-declares
// every variable up front (dalzilio-rudd's setVarnum), declaration here
// happens on first use because external variable identifiers are
// caller-chosen positive integers, not required to be dense.
func (m *Manager) declareVar(v int) int32 {
	if level, ok := m.var2index[v]; ok {
		return level
	}
	m.varCount++
	level := int32(m.varCount)
	m.var2index[v] = level
	m.index2var = append(m.index2var, v)
	m.levels = append(m.levels, newUniqueTable(4))
	return level
}

// constIndex is the sentinel level shared by both halves of the terminal
// node: fixed for the Manager's lifetime and always strictly greater than
// any real variable level, so the ordering invariant "index(hi) > index"
// holds trivially for constants regardless of how many variables are
// later declared.
func (m *Manager) constIndex() int32 { return _MaxVar }

// literalAt builds (or finds) the positive-literal node for the variable
// currently sitting at level i.
func (m *Manager) literalAt(level int32) ID {
	return m.makeUnique(level, One, Zero)
}

// Literal returns the ID for the positive occurrence of external variable
// v, declaring v (assigning it the next level) the first time it is used.
// v must be a positive integer; a caller passing v <= 0 has a bug, so this
// records a sticky error and, in a debug build, panics outright instead of
// quietly fabricating a variable for it.
func (m *Manager) Literal(v int) ID {
	if v <= 0 {
		m.seterror("invalid variable identifier %d: must be positive", v)
		if _DEBUG {
			panic(m.Error())
		}
		return Zero
	}
	return m.literalAt(m.declareVar(v))
}

// NLiteral returns the ID for the negative occurrence of external
// variable v.
func (m *Manager) NLiteral(v int) ID {
	return m.Literal(v).Not()
}

// ithLiteral returns the ID for the positive literal of the variable
// currently sitting at level i (1-based). Levels move under reordering;
// this function always reflects the current placement. It does not
// declare a new variable: i must already be in [1..varCount].
func (m *Manager) ithLiteral(i int32) ID {
	return m.literalAt(i)
}

// index returns the level of node id, or constIndex for a constant.
func (m *Manager) index(id ID) int32 {
	return m.a.at(id.slot()).index
}

// high/low return the then/else cofactor of id, folding in id's own
// complement bit as described in doc.go: a complemented edge to a node
// denotes the negation of that node's own Shannon expansion.
func (m *Manager) high(id ID) ID {
	n := m.a.at(id.slot())
	if id.isComplement() {
		return n.hi.Not()
	}
	return n.hi
}

func (m *Manager) low(id ID) ID {
	n := m.a.at(id.slot())
	if id.isComplement() {
		return n.lo.Not()
	}
	return n.lo
}

// refs returns the external reference count of id's underlying slot.
func (m *Manager) refs(id ID) int32 {
	return m.a.at(id.slot()).refs
}

// incRef/decRef bump/drop the reference count of id's underlying slot.
// The terminal is created with refs already at _MaxRefCount and decRef
// leaves a saturated count untouched, so it can never reach zero;
// ordinary literal nodes carry a normal count and are collected like any
// other node once nothing external references them.
func (m *Manager) incRef(id ID) {
	n := m.a.at(id.slot())
	if n.refs < _MaxRefCount {
		n.refs++
	}
}

func (m *Manager) decRef(id ID) {
	n := m.a.at(id.slot())
	if n.refs > 0 && n.refs < _MaxRefCount {
		n.refs--
	}
}

// pushref/popref manage the recursion-local refstack that protects
// transient results (built but not yet linked into a caller's node) from
// being reclaimed if a nested call triggers GC, the refstack idiom of
// dalzilio-rudd/gc.go's pushref/popref.
func (m *Manager) pushref(id ID) ID {
	m.refstack = append(m.refstack, id)
	return id
}

func (m *Manager) popref(k int) {
	m.refstack = m.refstack[:len(m.refstack)-k]
}

// NumVars returns the fixed number of variables of the Manager.
func (m *Manager) NumVars() int { return m.numVars }

// NodesAllocd returns the total number of arena slots currently in use
// (allocated, not on the free list).
func (m *Manager) NodesAllocd() int {
	return m.a.total() - m.a.freeCount
}

// VarsCreated returns the number of variables actually declared so far,
// which may be less than NumVars if not every presized variable has been
// referenced yet.
func (m *Manager) VarsCreated() int { return m.varCount }

// CheckMem verifies the arena's basic memory-conservation invariant:
// allocated + free == total, required to hold after every public
// operation (spec property 10).
func (m *Manager) CheckMem() bool {
	return m.NodesAllocd()+m.a.freeCount == m.a.total()
}

// CountNodes returns the number of distinct nodes reachable from id,
// excluding the constants.
func (m *Manager) CountNodes(id ID) int {
	n := m.countRec(id)
	m.unmarkRec(id)
	return n
}

func (m *Manager) countRec(id ID) int {
	if id.isConstant() {
		return 0
	}
	nd := m.a.at(id.slot())
	if nd.marked(markVisit) {
		return 0
	}
	nd.setMark(markVisit)
	return 1 + m.countRec(nd.hi) + m.countRec(nd.lo)
}

func (m *Manager) unmarkRec(id ID) {
	if id.isConstant() {
		return
	}
	nd := m.a.at(id.slot())
	if !nd.marked(markVisit) {
		return
	}
	nd.clearMark(markVisit)
	m.unmarkRec(nd.hi)
	m.unmarkRec(nd.lo)
}

// Stats returns a human-readable report of arena occupancy, in the
// stdio.go idiom.
func (m *Manager) Stats() string {
	total := m.a.total()
	free := m.a.freeCount
	used := total - free
	r := float64(free) / float64(total) * 100
	return fmt.Sprintf(
		"Vars:       %d\nAllocated:  %d\nUsed:       %d (%.3g%%)\nFree:       %d (%.3g%%)\nProduced:   %d\n# of GC:    %d",
		m.varCount, total, used, 100-r, free, r, m.a.produced, len(m.gcHistory))
}

// CacheStats returns hit/miss counters for the computed caches.
func (m *Manager) CacheStats() string {
	return fmt.Sprintf("Operator Hits: %d\nOperator Miss: %d\nUnique Hits:   %d\nUnique Miss:   %d",
		m.cstat.opHit, m.cstat.opMiss, m.cstat.uniqueHit, m.cstat.uniqueMiss)
}
