// Package triangles - the waiting room W: an age-ordered buffer shielding
// the most recent edges from random eviction.
//
// Two implementations back the two regimes:
//
//   - fifoRing (insertion-only): a fixed circular buffer. The regime never
//     removes by key, so a bare ring gives O(1) rotate with zero per-edge
//     bookkeeping.
//   - trackedFIFO (fully-dynamic): deletions must remove arbitrary members
//     in O(1) while "oldest" stays well-defined, so the room is a linked
//     list in arrival order plus an id→element index. The counting algebra
//     depends on true age order; a hash set's iteration order would not do.
package triangles

import (
	"container/list"

	"github.com/katalvlaran/tristream/core"
)

// fifoRing is the insertion-regime waiting room: a circular buffer of
// exactly maxSize slots. Slots fill once via Append; afterwards Rotate
// replaces the oldest entry in place.
type fifoRing struct {
	slots []core.Edge
	head  int // index of the oldest entry once the ring is full
	size  int // number of filled slots, ≤ len(slots)
}

// newFIFORing returns an empty ring of the given capacity.
func newFIFORing(maxSize int64) *fifoRing {
	return &fifoRing{slots: make([]core.Edge, maxSize)}
}

// Len returns the number of edges currently held.
func (r *fifoRing) Len() int { return r.size }

// Full reports whether every slot is occupied.
func (r *fifoRing) Full() bool { return r.size == len(r.slots) }

// Append stores e as the newest entry. The ring must not be full.
//
// Complexity: O(1).
func (r *fifoRing) Append(e core.Edge) {
	r.slots[r.size] = e
	r.size++
}

// Rotate replaces the oldest entry with e and returns the displaced edge.
// The ring must be full.
//
// Complexity: O(1).
func (r *fifoRing) Rotate(e core.Edge) core.Edge {
	oldest := r.slots[r.head]
	r.slots[r.head] = e
	r.head++
	if r.head == len(r.slots) {
		r.head = 0
	}

	return oldest
}

// trackedFIFO is the dynamic-regime waiting room: arrival-ordered list plus
// an id→element index for O(1) removal by key.
type trackedFIFO struct {
	order *list.List                     // front = oldest, back = newest
	index map[core.EdgeID]*list.Element  // edge id → list element
}

// newTrackedFIFO returns an empty room sized for maxSize edges.
func newTrackedFIFO(maxSize int64) *trackedFIFO {
	return &trackedFIFO{
		order: list.New(),
		index: make(map[core.EdgeID]*list.Element, maxSize),
	}
}

// Len returns the number of edges currently held.
func (w *trackedFIFO) Len() int { return w.order.Len() }

// Add appends e as the newest entry. The caller keeps the room within its
// cap by popping the oldest first when full.
//
// Complexity: O(1).
func (w *trackedFIFO) Add(e core.Edge) {
	w.index[e.ID()] = w.order.PushBack(e)
}

// PopOldest removes and returns the earliest-inserted edge.
// The room must be non-empty.
//
// Complexity: O(1).
func (w *trackedFIFO) PopOldest() core.Edge {
	front := w.order.Front()
	e := front.Value.(core.Edge)
	w.order.Remove(front)
	delete(w.index, e.ID())

	return e
}

// Remove deletes e by identity, reporting whether it was present.
//
// Complexity: O(1).
func (w *trackedFIFO) Remove(e core.Edge) bool {
	el, ok := w.index[e.ID()]
	if !ok {
		return false
	}
	w.order.Remove(el)
	delete(w.index, e.ID())

	return true
}
