// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

// _MinFreeNodes is the minimal percentage of nodes that must remain free
// after a garbage collection before we resize the arena instead.
const _MinFreeNodes int = 20

// _MaxVar is the maximal number of variables (and hence levels) supported.
// Level 0 is unused; levels [1..numVars] are live; numVars+1 marks the
// constants. We keep well under int32 range so hashing and the (level <<
// bits) tricks used during reordering never overflow.
const _MaxVar int32 = 0x0FFFFFFF

// _MaxRefCount is the ceiling on a node's reference count, and the
// pinned value given to the terminal node so it is never collected.
// Ordinary nodes, including literals, are refcounted normally: a
// literal with no live Handle is just as reclaimable as any other node.
const _MaxRefCount int32 = 0x3FFFFFFF

// _DefaultMaxNodeIncrease bounds arena growth per resize to roughly a
// million nodes by default.
const _DefaultMaxNodeIncrease int = 1 << 20
