// Package triangles - bounded min-heap over predicted heaviness (the heavy
// set H).
//
// The heap keeps at most cap live entries ordered by heaviness ascending
// (in the fully-dynamic regime tombstones come on top of those), so the
// currently-lightest heavy edge is always at the top, ready to be displaced
// by a heavier candidate. Unknown heaviness (−1) sorts below every known
// score. Ties at the top are broken by the caller with a fair coin.
//
// In the fully-dynamic regime deletions may remove an edge from H without
// touching the heap; the heap then carries a tombstone until a PeekMin
// caller discards stale tops against the authoritative membership set.
// This trades O(H) deletion-time search for an amortized-O(log H) skip.
package triangles

import (
	"container/heap"

	"github.com/katalvlaran/tristream/core"
)

// heavyEdge pairs a retained edge with the heaviness recorded at admission.
type heavyEdge struct {
	edge      core.Edge // canonical endpoints
	heaviness int       // oracle score at admission; −1 = unknown
}

// heavyPQ is a min-heap of heavyEdge ordered by heaviness ascending.
// It implements container/heap.Interface; boundedHeap wraps it with a
// capacity. The “lazy tombstone” discipline mirrors the stale-entry
// skipping used by lazy-decrease-key priority queues.
type heavyPQ []heavyEdge

// Len returns the number of items in the heap.
func (pq heavyPQ) Len() int { return len(pq) }

// Less defines the comparison: smaller heaviness → higher priority.
func (pq heavyPQ) Less(i, j int) bool { return pq[i].heaviness < pq[j].heaviness }

// Swap swaps two elements in the heap.
func (pq heavyPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
// Called by heap.Push; x must be of type heavyEdge.
func (pq *heavyPQ) Push(x interface{}) { *pq = append(*pq, x.(heavyEdge)) }

// Pop removes and returns the lightest element from the heap.
// Called by heap.Pop.
func (pq *heavyPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// boundedHeap is the heavy set's priority queue with a frozen capacity.
// Capacity is enforced by callers: the insertion estimator checks Full
// before pushing, the dynamic estimator bounds its live members with its
// own counter (heap entries, tombstones included, may then exceed the
// capacity).
type boundedHeap struct {
	pq      heavyPQ
	maxSize int
}

// newBoundedHeap returns an empty heap with the given capacity.
func newBoundedHeap(maxSize int64) *boundedHeap {
	return &boundedHeap{pq: make(heavyPQ, 0, maxSize), maxSize: int(maxSize)}
}

// Len returns the number of entries currently stored, tombstones included.
func (h *boundedHeap) Len() int { return h.pq.Len() }

// Full reports whether the entry count has reached capacity. Only
// meaningful while the heap carries no tombstones (insertion regime); the
// dynamic regime tracks live membership separately.
func (h *boundedHeap) Full() bool { return h.pq.Len() >= h.maxSize }

// Push inserts (e, heaviness).
//
// Complexity: O(log H).
func (h *boundedHeap) Push(e core.Edge, heaviness int) {
	heap.Push(&h.pq, heavyEdge{edge: e, heaviness: heaviness})
}

// PeekMin returns the lightest entry without removing it.
// The heap must be non-empty.
//
// Complexity: O(1).
func (h *boundedHeap) PeekMin() heavyEdge { return h.pq[0] }

// PopMin removes and returns the lightest entry.
// The heap must be non-empty.
//
// Complexity: O(log H).
func (h *boundedHeap) PopMin() heavyEdge { return heap.Pop(&h.pq).(heavyEdge) }
