// This file implements the retained Subgraph: the adjacency structure
// holding every edge currently kept by a streaming estimator, annotated
// with the per-edge det flag.
package core

import "sort"

// Subgraph is the undirected adjacency of the retained edge sample.
//
// For each node it stores the set of current neighbours; per neighbour it
// stores the det flag — true iff the edge is retained deterministically
// (waiting room or heavy set), false iff it sits in the reservoir. The two
// mirrored entries of an edge always carry the same flag.
//
// A node whose neighbour map becomes empty is erased from the outer map,
// so NumNodes and Nodes enumerate only nodes with at least one retained
// edge.
type Subgraph struct {
	adj      map[int64]map[int64]bool // node → neighbour → det
	numEdges int64
}

// NewSubgraph returns an empty Subgraph. capHint sizes the outer map and
// may be 0.
//
// Complexity: O(1).
func NewSubgraph(capHint int64) *Subgraph {
	return &Subgraph{adj: make(map[int64]map[int64]bool, capHint)}
}

// Add inserts edge e with the given det flag. The caller guarantees e is
// not already present (duplicate filtering is a stream-level contract).
//
// Complexity: O(1) expected.
func (s *Subgraph) Add(e Edge, det bool) {
	s.numEdges++
	s.neighbourMap(e.U)[e.V] = det
	s.neighbourMap(e.V)[e.U] = det
}

// SetDet rewrites the det flag on both directions of an existing edge.
// Used on promotion (reservoir → heavy) and demotion (heavy → reservoir).
//
// Complexity: O(1) expected.
func (s *Subgraph) SetDet(e Edge, det bool) {
	if nu, ok := s.adj[e.U]; ok {
		if _, ok = nu[e.V]; ok {
			nu[e.V] = det
			s.adj[e.V][e.U] = det
		}
	}
}

// Remove deletes edge e from the adjacency. Returns false when e was not
// present (in which case nothing is mutated).
//
// Complexity: O(1) expected.
func (s *Subgraph) Remove(e Edge) bool {
	nu, ok := s.adj[e.U]
	if !ok {
		return false
	}
	if _, ok = nu[e.V]; !ok {
		return false
	}

	s.numEdges--
	delete(nu, e.V)
	if len(nu) == 0 {
		delete(s.adj, e.U)
	}

	nv := s.adj[e.V]
	delete(nv, e.U)
	if len(nv) == 0 {
		delete(s.adj, e.V)
	}

	return true
}

// Delete removes edge e and reports its det flag at removal time.
// ok is false (and det meaningless) when e was not retained — the caller
// classifies that case as a good deletion.
//
// Complexity: O(1) expected.
func (s *Subgraph) Delete(e Edge) (det, ok bool) {
	nu, found := s.adj[e.U]
	if !found {
		return false, false
	}
	det, found = nu[e.V]
	if !found {
		return false, false
	}

	s.Remove(e)

	return det, true
}

// Det reports the det flag of edge e and whether e is retained.
//
// Complexity: O(1) expected.
func (s *Subgraph) Det(e Edge) (det, ok bool) {
	nu, found := s.adj[e.U]
	if !found {
		return false, false
	}
	det, ok = nu[e.V]

	return det, ok
}

// Neighbours returns the neighbour→det map of node v, or nil when v has no
// retained edges. The returned map is a live read-only view: callers must
// not mutate it and must not hold it across Subgraph mutations.
//
// Complexity: O(1).
func (s *Subgraph) Neighbours(v int64) map[int64]bool {
	return s.adj[v]
}

// Degree returns the number of retained edges incident to v.
//
// Complexity: O(1).
func (s *Subgraph) Degree(v int64) int {
	return len(s.adj[v])
}

// NumNodes returns the number of nodes with at least one retained edge.
//
// Complexity: O(1).
func (s *Subgraph) NumNodes() int64 {
	return int64(len(s.adj))
}

// NumEdges returns the number of retained edges.
//
// Complexity: O(1).
func (s *Subgraph) NumEdges() int64 {
	return s.numEdges
}

// Nodes returns the ids of all nodes with retained edges, sorted ascending
// for deterministic enumeration.
//
// Complexity: O(n log n) where n = NumNodes.
func (s *Subgraph) Nodes() []int64 {
	out := make([]int64, 0, len(s.adj))
	for v := range s.adj {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// neighbourMap returns v's neighbour map, allocating it on first use.
func (s *Subgraph) neighbourMap(v int64) map[int64]bool {
	nv, ok := s.adj[v]
	if !ok {
		nv = make(map[int64]bool)
		s.adj[v] = nv
	}

	return nv
}
