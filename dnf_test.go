// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

func TestExtractDNFRoundTrip(t *testing.T) {
	m := newTestManager(t, 5)
	a, b, c, d, e := m.Var(1), m.Var(2), m.Var(3), m.Var(4), m.Var(5)

	f := a.And(b).Or(c.And(d.Or(e))).Xor(a.And(e))

	dnf := m.ExtractDNF(f.id())
	if len(dnf) == 0 {
		t.Fatal("ExtractDNF of a non-constant function returned an empty cover")
	}
	rebuilt := m.wrap(m.Dnf2BDD(dnf))
	if !rebuilt.Equal(f) {
		t.Errorf("Dnf2BDD(ExtractDNF(f)) should reconstruct f exactly")
	}
}

func TestExtractDNFConstants(t *testing.T) {
	m := newTestManager(t, 2)
	if dnf := m.ExtractDNF(Zero); dnf != nil {
		t.Errorf("ExtractDNF(0) should be the empty cover, got %v", dnf)
	}
	dnf := m.ExtractDNF(One)
	if len(dnf) != 1 || len(dnf[0]) != 0 {
		t.Errorf("ExtractDNF(1) should be a single empty term, got %v", dnf)
	}
}
