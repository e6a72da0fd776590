// In-package test exports: controlled windows onto estimator internals so
// the black-box tests can verify the structural invariants without
// widening the public API.
package triangles

import (
	"fmt"

	"github.com/katalvlaran/tristream/core"
)

// Caps returns the frozen partition capacities (W, H, S).
func (est *Estimator) Caps() (w, h, s int64) { return est.caps.w, est.caps.h, est.caps.s }

// PartitionSizes returns the current occupancy of (W, H, S).
func (est *Estimator) PartitionSizes() (w, h, s int) {
	return est.waiting.Len(), est.heavy.Len(), est.reservoir.Len()
}

// HeapMin returns the lightest heavy entry.
func (est *Estimator) HeapMin() (e core.Edge, heaviness int) {
	top := est.heavy.PeekMin()

	return top.edge, top.heaviness
}

// WaitingContains reports whether {u,v} currently sits in the waiting room.
func (est *Estimator) WaitingContains(u, v int64) bool {
	e, err := core.NewEdge(u, v)
	if err != nil {
		return false
	}
	for i := 0; i < est.waiting.size; i++ {
		if est.waiting.slots[i] == e {
			return true
		}
	}

	return false
}

// ReservoirEdges returns the reservoir's current contents.
func (est *Estimator) ReservoirEdges() []core.Edge {
	out := make([]core.Edge, est.reservoir.Len())
	copy(out, est.reservoir.slots[:est.reservoir.Len()])

	return out
}

// CheckInvariants cross-checks partitions, subgraph flags, and the
// reservoir index; it returns the first violation found.
func (est *Estimator) CheckInvariants() error {
	if int64(est.waiting.Len()) > est.caps.w || int64(est.heavy.Len()) > est.caps.h || int64(est.reservoir.Len()) > est.caps.s {
		return fmt.Errorf("partition over cap: |W|=%d |H|=%d |S|=%d caps=(%d,%d,%d)",
			est.waiting.Len(), est.heavy.Len(), est.reservoir.Len(), est.caps.w, est.caps.h, est.caps.s)
	}

	det := make(map[core.EdgeID]bool)
	for i := 0; i < est.waiting.size; i++ {
		det[est.waiting.slots[i].ID()] = true
	}
	for _, he := range est.heavy.pq {
		det[he.edge.ID()] = true
	}
	if err := checkHeapMin(est.heavy); err != nil {
		return err
	}
	for i := 0; i < est.reservoir.size; i++ {
		id := est.reservoir.slots[i].ID()
		if det[id] {
			return fmt.Errorf("edge %d in reservoir and in a deterministic partition", id)
		}
		det[id] = false
	}

	return checkAgainstSubgraph(est.sub, det, est.reservoir)
}

// checkHeapMin verifies the top entry is no heavier than any stored entry.
// Used by the insertion regime only: with tombstones the lightest stored
// entry may legitimately be stale.
func checkHeapMin(h *boundedHeap) error {
	if h.Len() == 0 {
		return nil
	}
	top := h.PeekMin()
	for _, he := range h.pq {
		if he.heaviness < top.heaviness {
			return fmt.Errorf("heap top %d heavier than entry %d", top.heaviness, he.heaviness)
		}
	}

	return nil
}

// Counters returns (ℓ, d_g, d_b).
func (est *DynamicEstimator) Counters() (ell, dg, db int64) { return est.ell, est.dg, est.db }

// RawGlobal returns the unclipped global counter.
func (est *DynamicEstimator) RawGlobal() float64 { return est.global }

// PartitionSizes returns the current occupancy of (W, H, S); H counts live
// members only, not heap tombstones.
func (est *DynamicEstimator) PartitionSizes() (w, h, s int) {
	return est.waiting.Len(), int(est.heavyCur), est.reservoir.Len()
}

// ReservoirEdges returns the reservoir's current contents.
func (est *DynamicEstimator) ReservoirEdges() []core.Edge {
	out := make([]core.Edge, est.reservoir.Len())
	copy(out, est.reservoir.slots[:est.reservoir.Len()])

	return out
}

// CheckInvariants cross-checks partitions, subgraph flags, the heap live
// set, and the reservoir index; it returns the first violation found.
func (est *DynamicEstimator) CheckInvariants() error {
	if int64(est.waiting.Len()) > est.caps.w || est.heavyCur > est.caps.h || int64(est.reservoir.Len()) > est.caps.s {
		return fmt.Errorf("partition over cap: |W|=%d |H|=%d |S|=%d caps=(%d,%d,%d)",
			est.waiting.Len(), est.heavyCur, est.reservoir.Len(), est.caps.w, est.caps.h, est.caps.s)
	}
	if est.dg < 0 || est.db < 0 {
		return fmt.Errorf("negative deletion counters: d_g=%d d_b=%d", est.dg, est.db)
	}
	if int64(len(est.heavyLive)) != est.heavyCur {
		return fmt.Errorf("heavy live set size %d != heavyCur %d", len(est.heavyLive), est.heavyCur)
	}

	det := make(map[core.EdgeID]bool)
	for el := est.waiting.order.Front(); el != nil; el = el.Next() {
		det[el.Value.(core.Edge).ID()] = true
	}
	for id := range est.heavyLive {
		det[id] = true
	}
	for i := 0; i < est.reservoir.size; i++ {
		id := est.reservoir.slots[i].ID()
		if det[id] {
			return fmt.Errorf("edge %d in reservoir and in a deterministic partition", id)
		}
		det[id] = false
	}

	return checkAgainstSubgraph(est.sub, det, est.reservoir)
}

// checkAgainstSubgraph verifies that the subgraph's edges and det flags
// coincide exactly with partition membership, and that the reservoir's
// id→slot index points at the slots actually holding those edges.
func checkAgainstSubgraph(sub *core.Subgraph, det map[core.EdgeID]bool, res *reservoir) error {
	var retained int64
	for _, u := range sub.Nodes() {
		for v, flag := range sub.Neighbours(u) {
			if u > v {
				continue // visit each undirected edge once
			}
			retained++
			e := core.Edge{U: u, V: v}
			want, tracked := det[e.ID()]
			if !tracked {
				return fmt.Errorf("subgraph edge (%d,%d) not in any partition", u, v)
			}
			if want != flag {
				return fmt.Errorf("subgraph edge (%d,%d) det=%v, partition says %v", u, v, flag, want)
			}
			if mirror, ok := sub.Neighbours(v)[u]; !ok || mirror != flag {
				return fmt.Errorf("subgraph edge (%d,%d) mirrored det disagrees", u, v)
			}
		}
	}
	if retained != sub.NumEdges() {
		return fmt.Errorf("subgraph counts %d edges, enumeration found %d", sub.NumEdges(), retained)
	}

	for id, idx := range res.index {
		if idx < 0 || idx >= res.size {
			return fmt.Errorf("reservoir index %d out of bounds for edge %d", idx, id)
		}
		if res.slots[idx].ID() != id {
			return fmt.Errorf("reservoir slot %d holds %d, index expects %d", idx, res.slots[idx].ID(), id)
		}
	}
	if len(res.index) != res.size {
		return fmt.Errorf("reservoir index has %d entries, occupancy is %d", len(res.index), res.size)
	}

	return nil
}
