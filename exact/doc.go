// Package exact provides the exact reference triangle counters for both
// stream regimes.
//
// The exact counters hold the whole graph in memory — they are the ground
// truth the streaming estimators are measured against, and the substrate
// the oracle builders derive per-edge heaviness from. They share the
// estimators' counting geometry (enumerate the smaller neighbourhood,
// probe the larger) but apply no sampling and no corrections.
//
// Count handles insertion-only streams, skipping self-loops and duplicate
// edges. CountDynamic handles fully-dynamic streams, applying signed
// increments and tracking the maximum number of concurrently-present
// edges, which bounds the memory any competing approach would need.
//
// Both functions stream from an io.Reader in one pass and accept an
// optional zerolog progress logger.
package exact
