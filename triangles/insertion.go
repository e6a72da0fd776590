// Package triangles - the insertion-only estimator.
//
// Event order per arriving edge (u,v):
//
//  1. countTriangles — enumerate the wedges (u,w,v) closed through the
//     retained subgraph and credit each with its bias-corrected weight,
//     BEFORE the edge is placed.
//  2. sampleEdge — route the edge through the partition state machine
//     (fill H → fill S → fill W → steady) and evict if needed.
//  3. add the edge to the retained subgraph with the det flag chosen in 2.
//
// The phases never reverse: caps are monotone bounds and in this
// regime partitions only grow until saturated.
package triangles

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/tristream/core"
	"github.com/katalvlaran/tristream/oracle"
)

// Estimator estimates global and per-node triangle counts over an
// insertion-only edge stream, retaining at most k edges.
//
// Not safe for concurrent use; see the package documentation.
type Estimator struct {
	opts options
	caps caps
	rng  *rand.Rand

	sub *core.Subgraph

	waiting   *fifoRing
	heavy     *boundedHeap
	reservoir *reservoir

	// slCur counts light-stream positions. While the reservoir is filling
	// it equals the occupancy; in steady state it keeps growing and serves
	// as the sampling denominator n_L.
	slCur int64

	events int64 // t: number of events processed

	global float64
	local  map[int64]float64
}

// New constructs an insertion-only Estimator with the given random seed,
// memory budget k, and partition parameters α, β. The partition caps
// W = ⌊k·α⌋, H = ⌊(k−W)·β⌋, S = k−W−H are computed once and frozen.
//
// Returns ErrBadBudget, ErrBadAlpha, ErrBadBeta, or ErrBadPartition on
// invalid configuration.
func New(seed, k int64, alpha, beta float64, opts ...Option) (*Estimator, error) {
	c, err := splitBudget(k, alpha, beta)
	if err != nil {
		return nil, err
	}

	est := &Estimator{
		caps:      c,
		rng:       rngFromSeed(seed),
		sub:       core.NewSubgraph(k),
		waiting:   newFIFORing(c.w),
		heavy:     newBoundedHeap(c.h),
		reservoir: newReservoir(c.s),
		local:     make(map[int64]float64),
	}
	for _, opt := range opts {
		opt(&est.opts)
	}

	return est, nil
}

// ProcessEdge ingests the insertion event (u, v). The endpoints must be
// distinct ids in [0, core.MaxNodeID); duplicates of a retained edge
// violate the stream contract and degrade estimation quality silently.
//
// Complexity: O(min(deg u, deg v) + log H) expected per event.
func (est *Estimator) ProcessEdge(u, v int64) error {
	e, err := core.NewEdge(u, v)
	if err != nil {
		return err
	}

	est.countTriangles(e)
	det := est.sampleEdge(e)
	est.sub.Add(e, det)
	est.events++

	return nil
}

// countTriangles enumerates wedges closed by e through the retained
// subgraph and applies the inverse-probability corrections.
//
// Let n_L = slCur. A discovered triangle contributes:
//
//	1                                if n_L ≤ S (no subsampling yet)
//	n_L/S                            if exactly one existing edge is light
//	(n_L/S)·((n_L−1)/(S−1))          if both existing edges are light
//
// The increment lands on the global counter and the local counters of all
// three vertices.
func (est *Estimator) countTriangles(e core.Edge) {
	uNeighs := est.sub.Neighbours(e.U)
	if len(uNeighs) == 0 {
		return
	}
	vNeighs := est.sub.Neighbours(e.V)
	if len(vNeighs) == 0 {
		return
	}

	u, v := e.U, e.V
	if len(uNeighs) > len(vNeighs) {
		u, v = v, u
		uNeighs, vNeighs = vNeighs, uNeighs
	}

	var cum float64
	for w, wuDet := range uNeighs {
		if w == v {
			continue
		}
		vwDet, closes := vNeighs[w]
		if !closes {
			continue
		}

		// Triangle {u, v, w} discovered.
		increment := 1.0
		if est.slCur > est.caps.s {
			nL := float64(est.slCur)
			sCap := float64(est.caps.s)
			switch {
			case !vwDet && !wuDet:
				increment = (nL / sCap) * (nL - 1.0) / (sCap - 1.0)
			case !vwDet || !wuDet:
				increment = nL / sCap
			}
		}

		cum += increment
		est.local[w] += increment
	}

	if cum > 0 {
		est.global += cum
		est.local[u] += cum
		est.local[v] += cum
	}
}

// sampleEdge routes e through the partition state machine and returns the
// det flag the subgraph entry must carry.
func (est *Estimator) sampleEdge(e core.Edge) bool {
	// Phase A: the heavy set is still filling. Every edge is heavy for now;
	// admission order sorts itself out once displacement starts.
	if !est.heavy.Full() {
		est.heavy.Push(e, est.opts.heaviness(e.U, e.V))

		return true
	}

	// Phase B: H is full, the reservoir is still filling. The arriving edge
	// duels the lightest heavy; the loser of the duel takes the free slot.
	if !est.reservoir.Full() {
		candidate := e
		det := false
		if h := est.opts.heaviness(e.U, e.V); h > oracle.HeavinessUnknown {
			if demoted, swapped := est.promote(e, h); swapped {
				candidate = demoted
				det = true
			}
		}
		est.reservoir.Append(candidate)
		est.slCur++

		return det
	}

	// Phase B': reservoir full too, the waiting room still has room.
	if !est.waiting.Full() {
		est.waiting.Append(e)

		return true
	}

	// Phase C (steady): e displaces the oldest waiting-room edge, which
	// becomes the candidate for the light pipeline after its own shot at
	// the heavy set.
	est.slCur++
	candidate := est.waiting.Rotate(e)
	if h := est.opts.heaviness(candidate.U, candidate.V); h > oracle.HeavinessUnknown {
		if demoted, swapped := est.promote(candidate, h); swapped {
			candidate = demoted
		}
	}

	// Reservoir sampling over the light stream: accept with p = S/n_L.
	if est.rng.Float64() < float64(est.caps.s)/float64(est.slCur) {
		est.sub.SetDet(candidate, false)
		victimIdx := est.rng.Intn(est.reservoir.Len())
		victim := est.reservoir.ReplaceAt(victimIdx, candidate)
		est.sub.Remove(victim)
	} else {
		est.sub.Remove(candidate)
	}

	return true
}

// promote compares candidate (with known heaviness h) against the lightest
// heavy edge. On a win — strictly heavier, or equally heavy and a fair coin
// lands under ½ — the lightest is demoted (det flipped to light in the
// subgraph) and the candidate takes its place in H. Returns the demoted
// edge and whether a swap happened.
func (est *Estimator) promote(candidate core.Edge, h int) (core.Edge, bool) {
	if est.heavy.Len() == 0 {
		return core.Edge{}, false
	}

	lightest := est.heavy.PeekMin()
	if h < lightest.heaviness {
		return core.Edge{}, false
	}
	if h == lightest.heaviness && est.rng.Float64() >= 0.5 {
		return core.Edge{}, false
	}

	est.heavy.PopMin()
	est.heavy.Push(candidate, h)
	est.sub.SetDet(lightest.edge, false)

	return lightest.edge, true
}

// GlobalTriangles returns the current global triangle estimate.
func (est *Estimator) GlobalTriangles() float64 { return est.global }

// LocalTriangles returns the triangle estimate for node v, 0 for nodes
// never seen in a counted wedge.
func (est *Estimator) LocalTriangles(v int64) float64 { return est.local[v] }

// LocalNodes returns the ids of all nodes holding a local estimate,
// sorted ascending for deterministic enumeration.
func (est *Estimator) LocalNodes() []int64 {
	out := make([]int64, 0, len(est.local))
	for v := range est.local {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Nodes returns the ids of the nodes currently holding retained edges,
// sorted ascending.
func (est *Estimator) Nodes() []int64 { return est.sub.Nodes() }

// NumNodes returns the number of nodes in the retained subgraph.
func (est *Estimator) NumNodes() int64 { return est.sub.NumNodes() }

// NumEdges returns the number of retained edges.
func (est *Estimator) NumEdges() int64 { return est.sub.NumEdges() }

// EdgesProcessed returns t, the number of events ingested so far.
func (est *Estimator) EdgesProcessed() int64 { return est.events }
