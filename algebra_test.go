// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

// newTestManager builds a Manager sized for the small tests in this file
// and its siblings, in the New(numVars, options...)-style
// helper-constructor idiom used throughout this package's tests.
func newTestManager(t *testing.T, numVars int) *Manager {
	t.Helper()
	m, err := New(numVars, Nodesize(512), CacheSize(256))
	if err != nil {
		t.Fatalf("New(%d): %v", numVars, err)
	}
	return m
}

func TestCanonicity(t *testing.T) {
	m := newTestManager(t, 4)
	a := m.Var(1)
	b := m.Var(2)

	f1 := a.And(b)
	f2 := b.And(a)
	if !f1.Equal(f2) {
		t.Errorf("a&b and b&a should be the same node, got %v and %v", f1.id(), f2.id())
	}

	g1 := a.Or(b).Not()
	g2 := a.Not().And(b.Not())
	if !g1.Equal(g2) {
		t.Errorf("De Morgan should collapse to the same node: %v vs %v", g1.id(), g2.id())
	}
}

func TestOrderingInvariant(t *testing.T) {
	m := newTestManager(t, 6)
	f := m.Var(1).And(m.Var(3)).Or(m.Var(2).And(m.Var(5)))
	seen := make(map[uint32]bool)
	var walk func(id ID)
	walk = func(id ID) {
		if id.isConstant() || seen[id.slot()] {
			return
		}
		seen[id.slot()] = true
		n := m.a.at(id.slot())
		if !n.hi.isConstant() && m.index(n.hi) <= n.index {
			t.Errorf("hi child at level %d does not increase (level %d)", n.index, m.index(n.hi))
		}
		if !n.lo.isConstant() && m.index(n.lo) <= n.index {
			t.Errorf("lo child at level %d does not increase (level %d)", n.index, m.index(n.lo))
		}
		walk(n.hi)
		walk(n.lo)
	}
	walk(f.id())
}

func TestAlgebraicLaws(t *testing.T) {
	m := newTestManager(t, 5)
	a, b, c := m.Var(1), m.Var(2), m.Var(3)

	if !a.And(b).Equal(b.And(a)) {
		t.Error("AND not commutative")
	}
	if !a.Or(b).Equal(b.Or(a)) {
		t.Error("OR not commutative")
	}
	if !a.Xor(b).Equal(b.Xor(a)) {
		t.Error("XOR not commutative")
	}
	if !a.And(b).And(c).Equal(a.And(b.And(c))) {
		t.Error("AND not associative")
	}
	if !a.And(b.Or(c)).Equal(a.And(b).Or(a.And(c))) {
		t.Error("AND does not distribute over OR")
	}
	if !a.Or(b).Not().Equal(a.Not().And(b.Not())) {
		t.Error("De Morgan (AND side) failed")
	}
	if !a.And(b).Not().Equal(a.Not().Or(b.Not())) {
		t.Error("De Morgan (OR side) failed")
	}
	if !a.And(a.Not()).IsZero() {
		t.Error("f & !f should be 0")
	}
	if !a.Or(a.Not()).IsOne() {
		t.Error("f | !f should be 1")
	}
	if !a.Xor(a).IsZero() {
		t.Error("f ^ f should be 0")
	}
	if !a.Xor(a.Not()).IsOne() {
		t.Error("f ^ !f should be 1")
	}
}
