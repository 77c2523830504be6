// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

func TestRestrictIdentity(t *testing.T) {
	m := newTestManager(t, 4)
	a, b, c := m.Var(1), m.Var(2), m.Var(3)

	f := a.And(b).Or(c)
	if !f.Restrict(m.OneHandle()).Equal(f) {
		t.Error("restrict(f, 1) should be f")
	}

	// restrict(f, a) should agree with the positive cofactor of f on a.
	cofactor := b.Or(c) // f with a forced to 1: (1&b)|c = b|c
	if !f.Restrict(a).Equal(cofactor) {
		t.Errorf("restrict(f, a) should equal the positive cofactor: got %v want %v", f.Restrict(a).id(), cofactor.id())
	}
}

// TestRestrictGeneralCareSet checks the defining soundness property of the
// generalized cofactor, c => (f <=> restrict(f,c)), against a care set that
// is not a cube (a single literal's hi/lo cofactors always collapse onto
// the same shared value, which hides a recursion bug that only shows up
// once c genuinely depends on more than one variable at the split point).
func TestRestrictGeneralCareSet(t *testing.T) {
	m := newTestManager(t, 4)
	w, x, y, z := m.Var(1), m.Var(2), m.Var(3), m.Var(4)

	f := w.And(y).Or(x.And(z.Not()))
	c := w.Or(x)

	g := f.Restrict(c)
	agree := c.Implies(f.Xnor(g))
	if !agree.IsOne() {
		t.Errorf("restrict(f,c) should agree with f wherever c holds: c=>(f<=>g) = %v, want the tautology", agree.id())
	}
}

func TestComposeIdentity(t *testing.T) {
	m := newTestManager(t, 4)
	a, b := m.Var(1), m.Var(2)
	f := a.And(b).Or(a.Not())

	if !f.Compose(1, a).Equal(f) {
		t.Error("compose(f, x, x) should be f")
	}

	// Substituting x1 by b should be the same as building the formula with
	// b directly in place of a.
	want := b.And(b).Or(b.Not())
	if !f.Compose(1, b).Equal(want) {
		t.Error("compose(f, x, g) should agree with direct substitution")
	}
}

// TestAndExistsIdentity checks andExists against the definition ∃vars(c).
// (f ∧ g), computed the slow way via apply(AND) followed by iterated
// existential quantification over the two variables of c.
func TestAndExistsIdentity(t *testing.T) {
	m := newTestManager(t, 7)
	a, b, c, d, e, f, g := m.Var(1), m.Var(2), m.Var(3), m.Var(4), m.Var(5), m.Var(6), m.Var(7)

	g1 := e.Xnor(a.And(b))
	g2 := f.Xnor(c.Or(e))
	g3 := g.Xnor(d.And(f))

	cube := e.And(f)

	lhs := g1.And(g2).AndExists(g3, cube)
	rhs := g1.AndExists(g2.And(g3), cube)
	if !lhs.Equal(rhs) {
		t.Errorf("andExists should be associative in its and-operand: %v vs %v", lhs.id(), rhs.id())
	}

	slow := g1.And(g2).And(g3)
	slow = quantifyOut(m, slow, e)
	slow = quantifyOut(m, slow, f)
	if !lhs.Equal(slow) {
		t.Errorf("andExists(f,g,c) should equal apply(AND) + iterated quantification: %v vs %v", lhs.id(), slow.id())
	}

	want := g.Xnor(d.And(c.Or(a.And(b))))
	if !lhs.Equal(want) {
		t.Errorf("andExists result should equal (g <=> d.(c+a.b)): %v vs %v", lhs.id(), want.id())
	}
}

// quantifyOut existentially quantifies h over a single-variable literal v,
// via the textbook identity ∃v.h = h|v=0 + h|v=1.
func quantifyOut(m *Manager, h, v Handle) Handle {
	return h.Restrict(v).Or(h.Restrict(v.Not()))
}

func TestCoversAndEqual(t *testing.T) {
	m := newTestManager(t, 3)
	a, b := m.Var(1), m.Var(2)

	f := a.And(b)
	g := a
	if !f.Covers(g) {
		t.Error("a&b should imply a")
	}
	if g.Covers(f) {
		t.Error("a should not imply a&b")
	}
	if !f.Equal(f) {
		t.Error("a node should equal itself")
	}
}
