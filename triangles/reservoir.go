// Package triangles - the reservoir S: a uniform random sample of the
// light-edge stream with O(1) removal by identity.
//
// The slot array alone would force an O(S) scan to delete a specific edge
// (the fully-dynamic regime does exactly that on reservoir deletions), so
// an id→slot index rides alongside; every mutation updates both together,
// and the invariant “slots[index[id]].ID() == id” is what the estimators'
// desync checks verify.
package triangles

import "github.com/katalvlaran/tristream/core"

// reservoir is the slotted uniform sample.
type reservoir struct {
	slots []core.Edge         // fixed backing array of capacity S
	index map[core.EdgeID]int // edge id → occupied slot
	size  int                 // occupied prefix length, ≤ len(slots)
}

// newReservoir returns an empty reservoir of the given capacity.
func newReservoir(maxSize int64) *reservoir {
	return &reservoir{
		slots: make([]core.Edge, maxSize),
		index: make(map[core.EdgeID]int, maxSize),
	}
}

// Len returns the current occupancy.
func (r *reservoir) Len() int { return r.size }

// Full reports whether every slot is occupied.
func (r *reservoir) Full() bool { return r.size == len(r.slots) }

// At returns the edge in slot idx. idx must be < Len.
func (r *reservoir) At(idx int) core.Edge { return r.slots[idx] }

// Append stores e in the first free slot. The reservoir must not be full.
//
// Complexity: O(1).
func (r *reservoir) Append(e core.Edge) {
	r.slots[r.size] = e
	r.index[e.ID()] = r.size
	r.size++
}

// ReplaceAt overwrites slot idx with e and returns the evicted edge.
// idx must address an occupied slot.
//
// Complexity: O(1).
func (r *reservoir) ReplaceAt(idx int, e core.Edge) core.Edge {
	victim := r.slots[idx]
	delete(r.index, victim.ID())
	r.slots[idx] = e
	r.index[e.ID()] = idx

	return victim
}

// Remove deletes e by identity via swap-remove: the last occupied slot
// moves into e's slot and the occupancy shrinks by one. Reports whether e
// was present.
//
// Complexity: O(1).
func (r *reservoir) Remove(e core.Edge) bool {
	idx, ok := r.index[e.ID()]
	if !ok {
		return false
	}

	r.size--
	last := r.slots[r.size]
	r.slots[idx] = last
	r.index[last.ID()] = idx
	delete(r.index, e.ID())

	return true
}

// Contains reports whether e currently occupies a slot.
func (r *reservoir) Contains(e core.Edge) bool {
	_, ok := r.index[e.ID()]

	return ok
}
