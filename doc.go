// Package tristream estimates triangle counts over massive graph streams
// within a fixed memory budget, guided by heaviness predictions.
//
// 🚀 What is tristream?
//
//	A streaming triangle-counting toolkit built around one idea: if a
//	predictor can guess which edges participate in many triangles, the
//	sampler should hold on to those deterministically and spend its random
//	sample only on the rest.
//
// The module is organized into small, composable packages:
//
//	core/      — canonical edges, packed edge ids, the retained subgraph
//	triangles/ — the estimators: insertion-only and fully-dynamic
//	oracle/    — heaviness predictors: shapes, file formats, builders
//	stream/    — event model, readers, preprocessing, snapshot merging
//	exact/     — exact reference counters (ground truth)
//	cmd/       — the tristream CLI tying the pipeline together
//
// Quick sketch of the retained-edge layout inside an estimator:
//
//	    newest ──▶ [ waiting room │ heavy set │ reservoir ] ──▶ evicted
//	               FIFO, size ⌊kα⌋  top-H by     uniform over
//	                               heaviness    the light stream
//
// Every estimate is reproducible: a seed fixes every random draw, so equal
// seed plus equal stream means bit-for-bit equal results.
//
// Start with package triangles for the estimators, or run
// `go run ./cmd/tristream help` for the end-to-end pipeline.
package tristream
