// Package oracle provides the heaviness predictors that bias the streaming
// estimators toward retaining triangle-heavy edges, plus the file loaders
// and ground-truth builders that produce them.
//
// A predictor answers one question: "how many triangles is this edge
// likely to participate in?" — as a ranking, not a probability. Two
// concrete shapes exist:
//
//   - EdgeMap — keyed by packed edge id; a miss returns HeavinessUnknown.
//   - NodeMap — keyed by node id; an edge scores the MINIMUM of its
//     endpoint scores (the lighter endpoint bounds how many triangles the
//     edge can close), a miss on either endpoint returns HeavinessUnknown.
//
// Builders derive predictors from a replay of the insertion stream:
//
//   - BuildEdgeExact        — exact per-edge triangle counts.
//   - BuildEdgeExactNoWR    — exact counts minus the triangles a waiting
//     room of the given size would have caught anyway, scoring only the
//     heaviness the heavy set itself must cover.
//   - BuildNodeDegree       — node occurrence counts (degree with
//     multiplicity); the cheap one-pass predictor.
//
// Each builder retains only the top fraction of entries by score; the
// estimators treat the missing tail as unknown.
//
// Error handling (sentinel):
//
//   - ErrBadRetain on a retain fraction outside (0,1].
//   - ErrBadLine (wrapped with the line number) on malformed oracle files.
//
// Oracles are read-only after construction; the estimators never mutate
// them, so one oracle may back any number of estimator instances.
package oracle
