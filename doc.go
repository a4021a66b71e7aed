// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package dd implements a shared decision-diagram manager supporting Reduced
Ordered Binary Decision Diagrams (BDD) with complement edges, Algebraic
Decision Diagrams (ADD, numeric leaves) and Zero-suppressed Decision Diagrams
(ZDD), all living in the graph owned by one Manager value.

Basics

A Manager is created with New, fixing the number of BDD/ADD variables and
ZDD variables up front (either count may be zero, and more can be added
later with Reserve/ReserveZ). Every operator is a method on *Manager and
returns a Handle: a stable reference into the manager's node arena. The
low bit of a Handle carries the BDD complement edge; ADD and ZDD handles
never set it, so Not is a constant-time XOR rather than an allocation.

Two node families share the manager: BDD/ADD nodes live in one arena with
one unique table (they can only ever be combined through AddIte/Compose,
never through Apply, since an ADD handle is never complemented), and ZDD
nodes live in a second, entirely separate arena with its own level order.

Lifecycle

Nodes are reference counted. AddRef/DelRef adjust a handle's external
reference count; a node whose count reaches zero is not reclaimed
immediately but queued on a death row, and only actually recycled by the
next garbage collection pass (GC), which also runs automatically when the
arena has no free slot left for a new node. A Manager
is not safe for concurrent mutation: there is no internal locking, and every
operator assumes exclusive access for its duration.

Reordering

A Manager can reduce the size of its live diagrams by changing the variable
order in place, through Sift (a converging sifting pass) or WindowPermute (an
exhaustive small-window permutation search). Both are built from the same
adjacent-level swap primitive and can be invoked directly; Sift is also
triggered automatically once the live node count grows past a dynamic
threshold.

Automatic memory management

The library is written in pure Go. The manager handles arena growth and
garbage collection directly; the Go runtime's own garbage collector plays no
role beyond reclaiming the arena's backing slices when a Manager itself
becomes unreachable.
*/
package dd
