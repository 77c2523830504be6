// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

func TestMemoryConservation(t *testing.T) {
	m := newTestManager(t, 6)
	a, b, c := m.Var(1), m.Var(2), m.Var(3)
	_ = a.And(b).Or(c).Xor(a)
	if !m.CheckMem() {
		t.Error("allocated + free should equal total after a public operation")
	}
	m.GC()
	if !m.CheckMem() {
		t.Error("allocated + free should equal total after a forced GC")
	}
}

func TestGCPreservesSemantics(t *testing.T) {
	m := newTestManager(t, 6)
	a, b, c := m.Var(1), m.Var(2), m.Var(3)

	f := a.And(b).Or(c)
	before := f.id()

	// Build and discard a large number of transient intermediates so the
	// collector has real garbage to reclaim.
	for i := 0; i < 200; i++ {
		_ = a.Xor(b).And(c).Or(a.Not())
	}

	freed := m.GC()
	if freed < 0 {
		t.Fatalf("GC reported failure (locked?): %d", freed)
	}
	if f.id() != before {
		t.Error("a live Handle's ID must not change across a collection")
	}
	if !m.CheckMem() {
		t.Error("memory conservation violated after GC")
	}
}

func TestGCLockPreventsCollection(t *testing.T) {
	m := newTestManager(t, 4)
	m.LockGC()
	defer m.UnlockGC()
	if m.GC() != -1 {
		t.Error("GC should refuse to run while locked")
	}
}
