// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// node is the fixed-size record stored in the arena for every BDD node,
// live or free: index is the variable level (constants use constIndex, a
// sentinel strictly greater than every real level so the ordering
// invariant "index(hi) > index" holds trivially for them); hi and lo are
// child edges (hi is always stored positive, per the complement-edge
// normalization rule); next is a free-list link when the slot is free and
// a unique-table hash-chain link when it is live; refs is the external
// reference count; marks is transient scratch used by traversals
// (mark-and-sweep in gc.go, visited-flags in support.go/countNodes).
type node struct {
	index int32
	hi, lo ID
	next  int32
	refs  int32
	marks uint8
}

// mark bit assignments. Bit 0 is reserved for the garbage collector; other
// traversals (countNodes, support, print) use bit 1 and must clear it
// before returning, since marks and refs serve different purposes and
// must not be confused with each other.
const (
	markGC     uint8 = 1 << 0
	markVisit  uint8 = 1 << 1
)

func (n *node) marked(bit uint8) bool { return n.marks&bit != 0 }
func (n *node) setMark(bit uint8)     { n.marks |= bit }
func (n *node) clearMark(bit uint8)   { n.marks &^= bit }

// free reports whether the slot holding this record is on the free list.
// A free slot always has lo == null; no live node ever has a null lo
// child (constants are their own low edge, non-constants always cofactor
// to a real node, and null is not a valid ID for either).
func (n *node) free() bool {
	return n.lo == null
}
