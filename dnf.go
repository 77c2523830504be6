// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// Minato-Morreale irredundant DNF extraction, grounded on
// extractDnfPair/combineDnf/dnf2Bdd/term2Bdd in the original C++ core's
// BddUtils.cc — S. Minato, "Fast Generation of Prime-Irredundant Covers
// from Binary Decision Diagrams," IEICE Trans. Fundamentals, Vol.
// E76-A, No. 6, pp. 967-973, June 1993. dalzilio-rudd has no equivalent.

// Interval represents an incompletely specified function [Min, Max]: a
// function f is a valid implementation of the interval iff Min ≤ f ≤
// Max. A fully specified function f is the degenerate interval [f, f].
type Interval struct {
	Min, Max ID
}

// NewInterval builds the degenerate interval for a fully specified
// function.
func NewInterval(f ID) Interval { return Interval{Min: f, Max: f} }

func (m *Manager) topLevel(iv Interval) int32 {
	return min32(m.index(iv.Min), m.index(iv.Max))
}

// Term is a product of literals, one entry per variable: a positive
// external variable identifier for the positive literal, its negation
// for the negative literal.
type Term []int

// Dnf is a sum of Terms: a disjunctive-normal-form cover.
type Dnf []Term

// ExtractDNF returns an irredundant prime cover of f.
func (m *Manager) ExtractDNF(f ID) Dnf {
	_, dnf := m.extractDnfPair(Interval{Min: f, Max: f})
	return dnf
}

// ExtractDNFInterval is the interval-accepting form, letting a caller
// supply a don't-care set directly instead of a fully specified
// function.
func (m *Manager) ExtractDNFInterval(iv Interval) Dnf {
	_, dnf := m.extractDnfPair(iv)
	return dnf
}

func (m *Manager) extractDnfPair(f Interval) (ID, Dnf) {
	if f.Min.isZero() {
		return f.Min, nil
	}
	if f.Max.isOne() {
		return f.Max, Dnf{Term{}}
	}

	i := m.topLevel(f)
	x := m.ithLiteral(i)

	f0 := Interval{Min: m.loCofactor(f.Min, i), Max: m.loCofactor(f.Max, i)}
	f1 := Interval{Min: m.hiCofactor(f.Min, i), Max: m.hiCofactor(f.Max, i)}

	fp0 := Interval{Min: m.and_(f0.Min, f1.Max.Not()), Max: f0.Max}
	fp1 := Interval{Min: m.and_(f1.Min, f0.Max.Not()), Max: f1.Max}

	g0, dnf0 := m.extractDnfPair(fp0)
	g1, dnf1 := m.extractDnfPair(fp1)

	fpp0 := Interval{Min: m.and_(f0.Min, g0.Not()), Max: f0.Max}
	fpp1 := Interval{Min: m.and_(f1.Min, g1.Not()), Max: f1.Max}
	fStar := Interval{Min: m.or_(fpp0.Min, fpp1.Min), Max: m.and_(fpp0.Max, fpp1.Max)}

	g2, dnf2 := m.extractDnfPair(fStar)

	g := m.or_(m.or_(m.and_(x.Not(), g0), m.and_(x, g1)), g2)
	dnf := m.combineDnf(m.index2var[i], dnf0, dnf1, dnf2)
	return g, dnf
}

// combineDnf merges the three sub-covers of extractDnfPair's recursive
// step: d0 (the x=0 branch) gets ¬v appended to every term, d1 (x=1)
// gets v appended, d2 (the shared residue) is carried unchanged.
func (m *Manager) combineDnf(v int, d0, d1, d2 Dnf) Dnf {
	rtn := make(Dnf, 0, len(d0)+len(d1)+len(d2))
	for _, term := range d0 {
		rtn = append(rtn, append(append(Term{}, term...), -v))
	}
	for _, term := range d1 {
		rtn = append(rtn, append(append(Term{}, term...), v))
	}
	rtn = append(rtn, d2...)
	return rtn
}

// Dnf2BDD reconstructs the function represented by a cover, the
// inverse of ExtractDNF; used to verify a cover against the function it
// was extracted from.
func (m *Manager) Dnf2BDD(dnf Dnf) ID {
	sum := Zero
	for _, term := range dnf {
		sum = m.or_(sum, m.term2BDD(term))
	}
	return sum
}

func (m *Manager) term2BDD(term Term) ID {
	prod := One
	for _, lit := range term {
		if lit < 0 {
			prod = m.and_(prod, m.NLiteral(-lit))
		} else {
			prod = m.and_(prod, m.Literal(lit))
		}
	}
	return prod
}
