// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package abide implements a Reduced-Ordered Binary Decision Diagram (ROBDD)
engine: Boolean functions over a fixed set of variables are represented as
shared, complement-edged directed acyclic graphs, canonical up to the
choice of variable order.

Basics

A Manager owns a fixed number of variables, declared when it is built with
New, each variable occupying a level in the interval [1..NumVars], where
level 1 is nearest the root. Operations over the Manager return a Handle, a
small reference-counted value that owns a node in the Manager's arena.
Handles for the same Manager compare equal (==) exactly when they denote
the same Boolean function: canonicity is the whole point of hash-consing.

Complement edges

Negation is a bit on an edge, not a distinct node: (~f) never allocates.
The manager enforces that the high edge of every stored node is positive
and folds any needed complement into the parent edge, so structural
equality of (index, hi, lo) triples reduces Boolean equality to Go's own
identity comparison. See node.go and id.go for the encoding.

Memory management

Handles participate in Go's own garbage collector: constructing or copying
a Handle bumps the reference count on its underlying node, and Go's
finalizer machinery drops it again when the last Handle disappears. Nodes
that are unreachable from any externally referenced Handle, but still
occupy arena slots (typically leftovers of an intermediate computation),
are reclaimed by the Manager's own mark-and-sweep collector, run
synchronously whenever the arena grows past its trigger or on an explicit
call to GC. See gc.go.

Reordering

A Manager can improve its own node count by permuting the variable order
in place, using Rudell's sifting algorithm: each variable is moved,
one adjacent swap at a time, to the position that locally minimizes
the number of allocated nodes. Handle values and the Boolean functions
they denote survive reordering; the raw variable levels they were built
against do not. See reorder.go.

Concurrency

The engine is single-threaded and cooperative: no call blocks, and
concurrent use of one Manager from multiple goroutines is undefined.
Distinct Managers may be driven from distinct goroutines without
synchronization between them.
*/
package abide
