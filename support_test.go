// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

func TestSupportOrder(t *testing.T) {
	m := newTestManager(t, 5)
	a, c, e := m.Var(1), m.Var(3), m.Var(5)
	f := a.And(c).Or(e)

	got := m.Support(f.id())
	want := []int{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("Support: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Support: got %v want %v", got, want)
		}
	}
}

// TestCubeFactor is scenario S2: f = (a+b).!c.(d+e).f.(g+h) on vars 1..8;
// cubeFactor(f) should be !c.f (the largest cube dividing f).
func TestCubeFactor(t *testing.T) {
	m := newTestManager(t, 8)
	a, b, c, d, e, ff, g, h := m.Var(1), m.Var(2), m.Var(3), m.Var(4), m.Var(5), m.Var(6), m.Var(7), m.Var(8)

	f := a.Or(b).And(c.Not()).And(d.Or(e)).And(ff).And(g.Or(h))
	got := m.CubeFactor(f.id())
	want := c.Not().And(ff)
	if got != want.id() {
		t.Errorf("cubeFactor(f): got %v want !c.f (%v)", got, want.id())
	}
}

// TestCubeFactorSoundness checks property 7: cubeFactor(f) <= supportCube(f)
// and f/cubeFactor(f) shares no variable with cubeFactor(f).
func TestCubeFactorSoundness(t *testing.T) {
	m := newTestManager(t, 6)
	a, b, c, d, e, f := m.Var(1), m.Var(2), m.Var(3), m.Var(4), m.Var(5), m.Var(6)

	fn := a.And(b.Or(c)).And(d).Xor(e.And(f))
	cf := m.wrap(m.CubeFactor(fn.id()))
	sc := m.wrap(m.SupportCube(fn.id()))
	if !cf.Covers(sc) {
		t.Errorf("cubeFactor(f) should imply supportCube(f)")
	}

	residue := fn.Restrict(cf)
	cfVars := m.Support(cf.id())
	resVars := m.Support(residue.id())
	inBoth := make(map[int]bool)
	for _, v := range cfVars {
		inBoth[v] = true
	}
	for _, v := range resVars {
		if inBoth[v] {
			t.Errorf("f/cubeFactor(f) still depends on variable %d, shared with cubeFactor(f)", v)
		}
	}
}

// TestOneCube is scenario S3: f = (!a+!b).(c+d) on vars 1..4; oneCube(f)
// must be a satisfying cube of f.
func TestOneCube(t *testing.T) {
	m := newTestManager(t, 4)
	a, b, c, d := m.Var(1), m.Var(2), m.Var(3), m.Var(4)

	f := a.Not().Or(b.Not()).And(c.Or(d))
	cube := m.wrap(m.OneCube(f.id()))
	if cube.IsZero() {
		t.Fatal("oneCube should find a satisfying cube of a satisfiable function")
	}
	if !cube.Covers(f) {
		t.Errorf("oneCube(f) should imply f: cube=%v f=%v", cube.id(), f.id())
	}
}
