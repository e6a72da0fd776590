// Package oracle - predictor shapes.
package oracle

import "github.com/katalvlaran/tristream/core"

// HeavinessUnknown is the sentinel returned when a predictor has no score
// for an edge. It is distinct from 0: a known-zero edge is predicted
// light, an unknown edge is simply off the predictor's map.
const HeavinessUnknown = -1

// Oracle predicts the heaviness (expected triangle participation) of an
// edge. Implementations return HeavinessUnknown on a miss and never
// return other negative values.
type Oracle interface {
	// Heaviness returns the predicted score for the undirected edge
	// {u, v}, or HeavinessUnknown.
	Heaviness(u, v int64) int
}

// EdgeMap is the edge-keyed predictor: packed canonical edge id → score.
type EdgeMap map[core.EdgeID]int

// Heaviness implements Oracle by direct lookup of the canonical edge id.
// Invalid pairs (self-loops, out-of-range ids) miss.
//
// Complexity: O(1) expected.
func (m EdgeMap) Heaviness(u, v int64) int {
	e, err := core.NewEdge(u, v)
	if err != nil {
		return HeavinessUnknown
	}
	if h, ok := m[e.ID()]; ok {
		return h
	}

	return HeavinessUnknown
}

// NodeMap is the node-keyed predictor: node id → score.
type NodeMap map[int64]int

// Heaviness implements Oracle as the minimum of the two endpoint scores;
// a miss on either endpoint is a miss for the edge.
//
// Complexity: O(1) expected.
func (m NodeMap) Heaviness(u, v int64) int {
	hu, ok := m[u]
	if !ok {
		return HeavinessUnknown
	}
	hv, ok := m[v]
	if !ok {
		return HeavinessUnknown
	}
	if hu < hv {
		return hu
	}

	return hv
}
