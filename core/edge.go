// This file declares the Edge value type, the packed EdgeID scheme, and the
// sentinel errors guarding both.
package core

import "errors"

// MaxNodeID bounds the node-id universe so that EdgeID packing stays
// injective: with ids in [0, MaxNodeID) the pair (lo, hi) maps to
// MaxNodeID·lo + hi without collisions inside a uint64.
const MaxNodeID int64 = 100_000_000

// Sentinel errors for edge construction.
var (
	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("core: self-loop is not a valid edge")

	// ErrNodeIDRange indicates a node id outside [0, MaxNodeID).
	ErrNodeIDRange = errors.New("core: node id out of range")
)

// Edge is an undirected edge in canonical form: U < V always holds for
// edges produced by NewEdge. Because the representation is canonical,
// Edge values are directly comparable and usable as map keys.
type Edge struct {
	// U is the smaller endpoint id.
	U int64

	// V is the larger endpoint id.
	V int64
}

// EdgeID is the packed identifier of a canonical Edge: MaxNodeID·U + V.
// It is the map key used by edge oracles, the reservoir slot index, and
// the dynamic waiting room.
type EdgeID uint64

// NewEdge returns the canonical Edge for the unordered pair {u, v}.
// Returns ErrSelfLoop when u == v and ErrNodeIDRange when either id is
// negative or ≥ MaxNodeID.
//
// Complexity: O(1).
func NewEdge(u, v int64) (Edge, error) {
	if u == v {
		return Edge{}, ErrSelfLoop
	}
	if u < 0 || u >= MaxNodeID || v < 0 || v >= MaxNodeID {
		return Edge{}, ErrNodeIDRange
	}
	if u > v {
		u, v = v, u
	}

	return Edge{U: u, V: v}, nil
}

// ID returns the packed identifier of e. The receiver must be canonical
// (as produced by NewEdge); the packing is then injective.
//
// Complexity: O(1).
func (e Edge) ID() EdgeID {
	return EdgeID(uint64(MaxNodeID)*uint64(e.U) + uint64(e.V))
}

// EdgeFromID unpacks a packed identifier back into its canonical Edge.
// Inverse of Edge.ID for ids produced by it.
//
// Complexity: O(1).
func EdgeFromID(id EdgeID) Edge {
	return Edge{
		U: int64(uint64(id) / uint64(MaxNodeID)),
		V: int64(uint64(id) % uint64(MaxNodeID)),
	}
}
