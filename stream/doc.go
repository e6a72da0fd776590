// Package stream models edge-event streams and the file formats they
// travel in: parsing insertion-only and fully-dynamic streams, normalizing
// raw datasets into the canonical on-disk form, and merging graph
// snapshots into a fully-dynamic stream.
//
// File formats:
//
//   - Insertion stream: one event per line, "u v t", space-separated,
//     timestamps ascending.
//   - Dynamic stream: one event per line, "u v t s" with s ∈ {+, -}.
//     Any sign token other than "-" is read as an insertion.
//
// Preprocessing (Preprocess / WritePreprocessed) turns an arbitrary raw
// edge list into the canonical insertion format: self-loops dropped,
// duplicate undirected edges emitted once (at their last occurrence),
// endpoints in canonical order, timestamps renumbered 1..m.
//
// Snapshot merging (MergeSnapshots) derives a fully-dynamic stream from a
// time-ordered sequence of graph snapshots: edges appearing in a later
// snapshot become timed insertions, edges vanishing become deletions with
// uniformly-random timestamps inside the snapshot's window. The random
// timestamps come from a caller-seeded generator, so a merge is
// reproducible end to end.
//
// Error handling (sentinel):
//
//   - ErrBadLine      on a malformed stream line (wrapped with the line number).
//   - ErrNoSnapshots  when a merge finds no snapshot files to read.
//
// The package does no estimation; it feeds packages triangles and exact.
package stream
