// Package core provides the primitive types shared by every tristream
// component: canonical undirected edges over integer node identifiers,
// compact packed edge identifiers, and the retained Subgraph — the bounded
// adjacency structure the streaming estimators sample into.
//
// Overview:
//
//   - Edge is an unordered pair of distinct node ids, stored in canonical
//     (lo, hi) order so that identity is structural: two Edge values compare
//     equal iff they denote the same undirected edge.
//   - EdgeID packs a canonical Edge into a single uint64
//     (MaxNodeID·lo + hi), giving map keys that are cheap to hash and
//     stable across the whole module (oracles, reservoir index, waiting
//     room bookkeeping all share the one scheme).
//   - Subgraph is an adjacency map annotated with a per-edge boolean
//     "det" flag: true for edges retained deterministically (waiting room
//     or heavy set), false for edges subject to random eviction (reservoir).
//     Both endpoint entries always agree on the flag.
//
// Subgraph is deliberately minimal: it has no notion of weights, directions,
// or traversal. It exists to answer two questions fast — "who neighbours v,
// and is the edge to each neighbour deterministic?" — which is exactly what
// wedge enumeration during triangle counting needs.
//
// Error handling (sentinel):
//
//   - ErrSelfLoop      if an edge's endpoints coincide.
//   - ErrNodeIDRange   if a node id falls outside [0, MaxNodeID).
//
// Thread safety: none. A Subgraph is owned by exactly one estimator
// instance and mutated synchronously; concurrent streams require
// independent instances.
package core
