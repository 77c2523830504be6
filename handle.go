// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "runtime"

// Handle is an external, reference-counted view of a single BDD node. It
// is the type callers build formulas with instead of touching a
// Manager's internal ID space directly.
//
// Go has no copy constructors, so a Handle cannot increment a reference
// count on every assignment the way original_source/src/Bdd.h's C++
// value type does on every copy. Instead a Handle carries a pointer to
// a small heap object (ref) that owns exactly one increment of the
// underlying node's refcount, released by a runtime.SetFinalizer the
// first time that object becomes unreachable — the same trick
// dalzilio-rudd/bkernel.go's retnode uses for its Node type. Copying a
// Handle copies the pointer, so every copy shares the same fate: the
// node stays referenced as long as any copy is reachable, and is
// released once none are.
//
// The zero Handle is invalid: it has no Manager and denotes nothing.
type Handle struct {
	m   *Manager
	ref *handleRef
}

type handleRef struct {
	id ID
}

// wrap builds a new Handle over id, bumping its refcount and arranging
// for the matching decrement when the Handle (and every copy of it) is
// no longer reachable. id must not be null.
func (m *Manager) wrap(id ID) Handle {
	if id == null {
		return Handle{}
	}
	m.incRef(id)
	r := &handleRef{id: id}
	runtime.SetFinalizer(r, func(r *handleRef) {
		m.decRef(r.id)
	})
	return Handle{m: m, ref: r}
}

// Valid reports whether h denotes a real node.
func (h Handle) Valid() bool { return h.m != nil && h.ref != nil }

func (h Handle) id() ID {
	if h.ref == nil {
		return null
	}
	return h.ref.id
}

// Manager returns the Manager h was built from, or nil for an invalid
// Handle.
func (h Handle) Manager() *Manager { return h.m }

// OneHandle and ZeroHandle build the constant Handles of a Manager. (One
// and Zero, on Manager, return the bare internal ID; these wrap it.)
func (m *Manager) OneHandle() Handle  { return m.wrap(m.One()) }
func (m *Manager) ZeroHandle() Handle { return m.wrap(m.Zero()) }

// Var builds the Handle for the positive literal of external variable
// v, declaring v if this is its first use.
func (m *Manager) Var(v int) Handle { return m.wrap(m.Literal(v)) }

// Not returns ¬h. It never touches the arena: negation is a bit on the
// edge, not a new node, so this is the Go analogue of the source
// package's free `~f` operator.
func (h Handle) Not() Handle {
	if !h.Valid() {
		return h
	}
	return h.m.wrap(h.id().Not())
}

func (h Handle) apply(g Handle, op Operator) Handle {
	if !h.Valid() || !g.Valid() || h.m != g.m {
		return Handle{}
	}
	return h.m.wrap(h.m.Apply(h.id(), g.id(), op))
}

// And, Or, Xor, Nand, Nor, Xnor, Implies are the algebraic connectives,
// the named-method equivalent of the source package's operator
// overloads (`*`, `+`, `^`, ...) — Go has no operator overloading, so
// each gets a verb instead.
func (h Handle) And(g Handle) Handle     { return h.apply(g, OpAnd) }
func (h Handle) Or(g Handle) Handle      { return h.apply(g, OpOr) }
func (h Handle) Xor(g Handle) Handle     { return h.apply(g, OpXor) }
func (h Handle) Nand(g Handle) Handle    { return h.apply(g, OpNand) }
func (h Handle) Nor(g Handle) Handle     { return h.apply(g, OpNor) }
func (h Handle) Xnor(g Handle) Handle    { return h.apply(g, OpXnor) }
func (h Handle) Implies(g Handle) Handle { return h.apply(g, OpImplies) }

// Ite computes h·then + ¬h·els.
func (h Handle) Ite(then, els Handle) Handle {
	if !h.Valid() || !then.Valid() || !els.Valid() {
		return Handle{}
	}
	return h.m.wrap(h.m.Ite(h.id(), then.id(), els.id()))
}

// Restrict is the generalized cofactor of h by the care set c, the
// named equivalent of the source package's `/` operator.
func (h Handle) Restrict(c Handle) Handle {
	if !h.Valid() || !c.Valid() || h.m != c.m {
		return Handle{}
	}
	return h.m.wrap(h.m.Restrict(h.id(), c.id()))
}

// AndExists computes ∃vars(c).(h ∧ g).
func (h Handle) AndExists(g, c Handle) Handle {
	if !h.Valid() || !g.Valid() || !c.Valid() {
		return Handle{}
	}
	return h.m.wrap(h.m.AndExists(h.id(), g.id(), c.id()))
}

// Compose replaces variable v inside h by g.
func (h Handle) Compose(v int, g Handle) Handle {
	if !h.Valid() || !g.Valid() || h.m != g.m {
		return Handle{}
	}
	level := h.m.declareVar(v)
	return h.m.wrap(h.m.Compose(h.id(), level, g.id()))
}

// Covers reports whether h implies g (every minterm of h is a minterm
// of g), the named equivalent of `<=`.
func (h Handle) Covers(g Handle) bool {
	return h.Valid() && g.Valid() && h.m == g.m && h.m.Covers(h.id(), g.id())
}

// Equal reports whether h and g denote the same node of the same
// Manager, the named equivalent of `==`. Because of canonicity this is
// also Boolean-function equality.
func (h Handle) Equal(g Handle) bool {
	return h.m == g.m && h.id() == g.id()
}

func (h Handle) IsOne() bool      { return h.Valid() && h.id().isOne() }
func (h Handle) IsZero() bool     { return h.Valid() && h.id().isZero() }
func (h Handle) IsConstant() bool { return h.Valid() && h.id().isConstant() }

// CountNodes returns the number of distinct nodes in h's DAG.
func (h Handle) CountNodes() int {
	if !h.Valid() {
		return 0
	}
	return h.m.CountNodes(h.id())
}
