// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// BddFnSet maintains a deduplicated set of Handles: two Handles that
// denote the same node insert as one entry, since canonicity makes node
// identity the same thing as function equality. Grounded on
// original_source/src/Bdd.h's BddFnSet / Bdd.cc's BddFnSet::insert et
// al.; dalzilio-rudd's Set is a bitset over external variable numbers,
// not a set of nodes, so it serves a different purpose.
type BddFnSet struct {
	m   *Manager
	fns map[ID]Handle
}

// NewBddFnSet returns an empty set bound to m.
func NewBddFnSet(m *Manager) *BddFnSet {
	return &BddFnSet{m: m, fns: make(map[ID]Handle)}
}

// Insert adds f to the set, returning false if an equal function was
// already present.
func (s *BddFnSet) Insert(f Handle) bool {
	if !f.Valid() {
		return false
	}
	id := f.id()
	if _, ok := s.fns[id]; ok {
		return false
	}
	s.fns[id] = f
	return true
}

// Erase removes f from the set, returning true if it was present.
func (s *BddFnSet) Erase(f Handle) bool {
	if !f.Valid() {
		return false
	}
	id := f.id()
	if _, ok := s.fns[id]; !ok {
		return false
	}
	delete(s.fns, id)
	return true
}

// Clear empties the set.
func (s *BddFnSet) Clear() {
	s.fns = make(map[ID]Handle)
}

// Size returns the number of distinct functions in the set.
func (s *BddFnSet) Size() int { return len(s.fns) }

// Top returns the positive literal of the topmost (lowest-level) variable
// among every non-constant member, or Zero if the set is empty or every
// member is constant.
func (s *BddFnSet) Top() Handle {
	if s.m == nil {
		return Handle{}
	}
	best := int32(-1)
	for id := range s.fns {
		if id.isConstant() {
			continue
		}
		lvl := s.m.index(id)
		if best == -1 || lvl < best {
			best = lvl
		}
	}
	if best == -1 {
		return s.m.ZeroHandle()
	}
	return s.m.wrap(s.m.ithLiteral(best))
}

// Restrict returns a new set holding the generalized cofactor of every
// member by lit.
func (s *BddFnSet) Restrict(lit Handle) *BddFnSet {
	rtn := NewBddFnSet(s.m)
	for _, f := range s.fns {
		rtn.Insert(f.Restrict(lit))
	}
	return rtn
}

// Eliminate returns a new set holding both cofactors of every member with
// respect to lit's variable, dropping the variable itself from the
// result.
func (s *BddFnSet) Eliminate(lit Handle) *BddFnSet {
	rtn := NewBddFnSet(s.m)
	for _, f := range s.fns {
		rtn.Insert(f.Restrict(lit))
		rtn.Insert(f.Restrict(lit.Not()))
	}
	return rtn
}
