// Package triangles - the fully-dynamic estimator.
//
// Deletions complicate the insertion pipeline in two ways:
//
//   - The heavy set loses members out of band, so the heap carries
//     tombstones and a membership set (heavyLive) is authoritative.
//   - The reservoir's sampling probability can no longer be S/n: deleted
//     light edges are tracked as "good" (never retained) and "bad"
//     (retained in S) deletion counters, and while either is non-zero an
//     aged-out candidate is admitted with probability d_b/(d_g+d_b),
//     paying the counters back toward zero. This keeps the light sample
//     uniform over the surviving light stream.
//
// The raw global counter is allowed to go negative between a deletion and
// the insertions that rebalance it; only the public read clips at zero.
// Clipping internally would bias every subsequent update.
package triangles

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/tristream/core"
	"github.com/katalvlaran/tristream/oracle"
)

// Sign of a dynamic stream event.
const (
	// SignInsert marks an edge insertion.
	SignInsert = 1

	// SignDelete marks an edge deletion.
	SignDelete = -1
)

// DynamicEstimator estimates the global triangle count over a fully-dynamic
// edge stream (insertions and deletions), retaining at most k edges.
//
// Per-node estimates are not maintained in this regime.
// Not safe for concurrent use; see the package documentation.
type DynamicEstimator struct {
	opts options
	caps caps
	rng  *rand.Rand

	sub *core.Subgraph

	waiting   *trackedFIFO
	heavy     *boundedHeap
	heavyLive map[core.EdgeID]struct{} // authoritative H membership; heap may hold tombstones
	heavyCur  int64                    // |H| excluding tombstones
	reservoir *reservoir

	ell int64 // ℓ: light-stream positions (aged-out edges), net of deletions
	dg  int64 // good deletions awaiting compensation
	db  int64 // bad deletions awaiting compensation

	events        int64 // t: number of events processed
	lastTimestamp int64 // advisory timestamp of the latest event

	global float64 // raw signed estimate; clipped only on read
}

// NewDynamic constructs a fully-dynamic DynamicEstimator with the given
// random seed, memory budget k, and partition parameters α, β. Caps are
// derived exactly as for New and frozen.
//
// Returns ErrBadBudget, ErrBadAlpha, ErrBadBeta, or ErrBadPartition on
// invalid configuration.
func NewDynamic(seed, k int64, alpha, beta float64, opts ...Option) (*DynamicEstimator, error) {
	c, err := splitBudget(k, alpha, beta)
	if err != nil {
		return nil, err
	}

	est := &DynamicEstimator{
		caps:      c,
		rng:       rngFromSeed(seed),
		sub:       core.NewSubgraph(k),
		waiting:   newTrackedFIFO(c.w),
		heavy:     newBoundedHeap(c.h),
		heavyLive: make(map[core.EdgeID]struct{}, c.h),
		reservoir: newReservoir(c.s),
	}
	for _, opt := range opts {
		opt(&est.opts)
	}

	return est, nil
}

// ProcessEdge ingests the event (u, v, ts, sign). sign ≥ 0 inserts the
// edge, sign < 0 deletes it. ts is recorded but not logically used.
// Deleting an edge that was never inserted is legal and classified as a
// good deletion.
//
// Complexity: O(min(deg u, deg v) + log H) expected per event.
func (est *DynamicEstimator) ProcessEdge(u, v, ts int64, sign int) error {
	e, err := core.NewEdge(u, v)
	if err != nil {
		return err
	}

	est.lastTimestamp = ts
	est.events++

	est.countTriangles(e, sign)
	if sign >= 0 {
		if err = est.sampleEdge(e); err != nil {
			return err
		}
		est.sub.Add(e, true)

		return nil
	}

	return est.deleteEdge(e)
}

// countTriangles enumerates wedges closed by e and applies the signed,
// bias-corrected increments to the global counter. The denominator of the
// correction is n_L = ℓ + d_g + d_b: the effective light-stream size
// including positions whose deletion is not yet compensated.
func (est *DynamicEstimator) countTriangles(e core.Edge, sign int) {
	uNeighs := est.sub.Neighbours(e.U)
	if len(uNeighs) == 0 {
		return
	}
	vNeighs := est.sub.Neighbours(e.V)
	if len(vNeighs) == 0 {
		return
	}

	if len(uNeighs) > len(vNeighs) {
		uNeighs, vNeighs = vNeighs, uNeighs
	}

	nL := est.ell + est.dg + est.db

	var cum float64
	for w, wuDet := range uNeighs {
		if w == e.U || w == e.V {
			continue
		}
		vwDet, closes := vNeighs[w]
		if !closes {
			continue
		}

		increment := 1.0
		if nL > est.caps.s {
			fl := float64(nL)
			sCap := float64(est.caps.s)
			switch {
			case !vwDet && !wuDet:
				increment = (fl / sCap) * (fl - 1.0) / (sCap - 1.0)
			case !vwDet || !wuDet:
				increment = fl / sCap
			}
		}

		cum += increment
	}

	if cum > 0 {
		if sign < 0 {
			cum = -cum
		}
		est.global += cum
	}
}

// sampleEdge routes an inserted edge through the partition state machine:
// fill H → fill W → steady. The reservoir fills only through the light
// pipeline (edges aging out of W), never directly.
func (est *DynamicEstimator) sampleEdge(e core.Edge) error {
	// Phase A: heavy set still has live capacity (initial fill, or slots
	// freed by deletions).
	if est.heavyCur < est.caps.h {
		est.heavy.Push(e, est.opts.heaviness(e.U, e.V))
		est.heavyLive[e.ID()] = struct{}{}
		est.heavyCur++

		return nil
	}

	// Phase B: waiting room below cap (initial fill or post-deletion).
	if est.waiting.Len() < int(est.caps.w) {
		est.waiting.Add(e)

		return nil
	}

	// Steady: e enters the room, the oldest ages out into the light
	// pipeline and duels the lightest live heavy edge on the way.
	est.ell++
	candidate := est.waiting.PopOldest()
	est.waiting.Add(e)

	if h := est.opts.heaviness(candidate.U, candidate.V); h > oracle.HeavinessUnknown {
		if demoted, swapped := est.promote(candidate, h); swapped {
			candidate = demoted
		}
	}

	// Light pipeline: while deletions are uncompensated the candidate pays
	// them back; otherwise standard reservoir sampling with p = S/ℓ.
	if est.dg+est.db == 0 {
		if !est.reservoir.Full() {
			est.reservoir.Append(candidate)
			est.sub.SetDet(candidate, false)

			return nil
		}

		if est.rng.Float64() < float64(est.caps.s)/float64(est.ell) {
			est.sub.SetDet(candidate, false)
			victimIdx := est.rng.Intn(est.reservoir.Len())
			victim := est.reservoir.ReplaceAt(victimIdx, candidate)
			if !est.sub.Remove(victim) {
				return fmt.Errorf("%w: evicted edge (%d,%d) missing from subgraph", ErrIndexDesync, victim.U, victim.V)
			}
		} else if !est.sub.Remove(candidate) {
			return fmt.Errorf("%w: dropped candidate (%d,%d) missing from subgraph", ErrIndexDesync, candidate.U, candidate.V)
		}

		return nil
	}

	if est.rng.Float64() < float64(est.db)/float64(est.db+est.dg) {
		est.reservoir.Append(candidate)
		est.sub.SetDet(candidate, false)
		est.db--
	} else {
		est.sub.Remove(candidate)
		est.dg--
	}

	return nil
}

// promote compares candidate (with known heaviness h) against the lightest
// LIVE heavy edge, discarding heap tombstones on the way down. On a win the
// lightest leaves H (membership and counter stay consistent; its subgraph
// flag flips only if the candidate later enters the reservoir) and the
// candidate takes its place. Returns the demoted edge and whether a swap
// happened.
func (est *DynamicEstimator) promote(candidate core.Edge, h int) (core.Edge, bool) {
	// Discard stale tops until a live entry (or nothing) remains.
	for est.heavy.Len() > 0 {
		if _, live := est.heavyLive[est.heavy.PeekMin().edge.ID()]; live {
			break
		}
		est.heavy.PopMin()
	}
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
	delete(est.heavyLive, lightest.edge.ID())
	est.heavy.Push(candidate, h)
	est.heavyLive[candidate.ID()] = struct{}{}

	return lightest.edge, true
}

// deleteEdge routes a deletion event after counting. The subgraph's det
// flag (or the edge's absence) decides the partition bookkeeping.
func (est *DynamicEstimator) deleteEdge(e core.Edge) error {
	det, retained := est.sub.Delete(e)

	if est.reservoir.Contains(e) && !retained {
		return fmt.Errorf("%w: deleted edge (%d,%d) indexed but not retained", ErrIndexDesync, e.U, e.V)
	}

	if !retained {
		// Good deletion: the edge was sampled away (or never aged in);
		// the light stream shrinks and the debt is recorded.
		est.dg++
		est.ell--

		return nil
	}

	if det {
		// Deterministic edge: waiting room first, else the heavy set
		// (heap entry becomes a tombstone).
		if !est.waiting.Remove(e) {
			delete(est.heavyLive, e.ID())
			est.heavyCur--
		}

		return nil
	}

	// Bad deletion: the edge sat in the reservoir.
	est.db++
	est.ell--
	if !est.reservoir.Remove(e) {
		return fmt.Errorf("%w: reservoir edge (%d,%d) missing from index", ErrIndexDesync, e.U, e.V)
	}

	return nil
}

// GlobalTriangles returns the current global estimate, clipped at zero.
// The raw counter may be transiently negative after deletions; the clip
// happens only at this reporting boundary.
func (est *DynamicEstimator) GlobalTriangles() float64 {
	if est.global < 0 {
		return 0
	}

	return est.global
}

// Nodes returns the ids of the nodes currently holding retained edges,
// sorted ascending.
func (est *DynamicEstimator) Nodes() []int64 { return est.sub.Nodes() }

// NumNodes returns the number of nodes in the retained subgraph.
func (est *DynamicEstimator) NumNodes() int64 { return est.sub.NumNodes() }

// NumEdges returns the number of retained edges.
func (est *DynamicEstimator) NumEdges() int64 { return est.sub.NumEdges() }

// EdgesProcessed returns t, the number of events ingested so far.
func (est *DynamicEstimator) EdgesProcessed() int64 { return est.events }

// LastTimestamp returns the advisory timestamp of the latest event.
func (est *DynamicEstimator) LastTimestamp() int64 { return est.lastTimestamp }
