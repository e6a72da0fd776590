// Package oracle - ground-truth predictor builders.
//
// All three builders replay the insertion stream once. The edge builders
// maintain the exact graph and attribute every discovered triangle to its
// three edges; the node builder only tallies endpoint occurrences. The
// top `retain` fraction of entries (by score) survives into the predictor;
// everything below the cut is deliberately forgotten so the predictor's
// memory footprint is tunable independently of the graph.
package oracle

import (
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/tristream/core"
	"github.com/katalvlaran/tristream/stream"
)

// progressEvery is the interval, in events, between progress logs.
const progressEvery = 3_000_000

// Option configures a builder pass.
type Option func(*config)

type config struct {
	logger zerolog.Logger
}

// WithLogger installs a progress logger (default: no output).
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}

// BuildEdgeExact derives the exact edge predictor from an insertion
// stream: each edge's score is the number of triangles it participates in
// over the final graph. Only the top retain fraction of edges is kept.
//
// Complexity: O(Σ min(deg u, deg v)) time, O(n + m) space.
func BuildEdgeExact(r io.Reader, retain float64, opts ...Option) (EdgeMap, error) {
	if retain <= 0 || retain > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadRetain, retain)
	}
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	adj := make(map[int64]map[int64]struct{})
	scores := make(map[core.EdgeID]int)

	var nline int64
	var totalT int64
	err := stream.ReadInsertions(r, func(ev stream.Event) error {
		nline++
		e, err := core.NewEdge(ev.U, ev.V)
		if err != nil {
			return nil // self-loops contribute nothing
		}
		if _, dup := adj[e.U][e.V]; dup {
			return nil
		}
		addAdj(adj, e.U, e.V)

		common := creditTriangles(adj, scores, e, nil)
		scores[e.ID()] = common
		totalT += int64(common)

		if nline%progressEvery == 0 {
			cfg.logger.Info().Int64("events", nline).Int64("triangles", totalT).Msg("building edge oracle")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg.logger.Info().
		Int64("triangles", totalT).
		Int("entries", len(scores)).
		Msg("edge oracle built")

	return truncateEdgeScores(scores, retain), nil
}

// BuildEdgeExactNoWR derives the waiting-room-aware edge predictor: the
// exact score minus the triangles whose closing edge arrived within the
// last wrSize events (a waiting room of that size retains those edges
// deterministically, so the heavy set need not spend slots on them).
//
// Complexity: O(Σ min(deg u, deg v)) time, O(n + m) space.
func BuildEdgeExactNoWR(r io.Reader, retain float64, wrSize int64, opts ...Option) (EdgeMap, error) {
	if retain <= 0 || retain > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadRetain, retain)
	}
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	adj := make(map[int64]map[int64]struct{})
	scores := make(map[core.EdgeID]int)
	wrScores := make(map[core.EdgeID]int)
	arrival := make(map[core.EdgeID]int64)

	var nline int64
	var totalT int64
	err := stream.ReadInsertions(r, func(ev stream.Event) error {
		nline++
		e, err := core.NewEdge(ev.U, ev.V)
		if err != nil {
			return nil
		}
		if _, dup := adj[e.U][e.V]; dup {
			return nil
		}

		arrival[e.ID()] = nline
		addAdj(adj, e.U, e.V)

		common := creditTriangles(adj, scores, e, func(id core.EdgeID) {
			if nline-arrival[id] < wrSize {
				wrScores[id]++
			}
		})
		scores[e.ID()] = common
		wrScores[e.ID()] = 0
		totalT += int64(common)

		if nline%progressEvery == 0 {
			cfg.logger.Info().Int64("events", nline).Int64("triangles", totalT).Msg("building noWR edge oracle")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for id := range scores {
		scores[id] -= wrScores[id]
	}
	cfg.logger.Info().
		Int64("triangles", totalT).
		Int("entries", len(scores)).
		Msg("noWR edge oracle built")

	return truncateEdgeScores(scores, retain), nil
}

// BuildNodeDegree derives the node predictor: occurrence counts per node
// over the raw stream (duplicates included — repeated edges signal hub
// activity). Only the top retain fraction of nodes is kept.
//
// Complexity: O(events) time, O(n) space.
func BuildNodeDegree(r io.Reader, retain float64, opts ...Option) (NodeMap, error) {
	if retain <= 0 || retain > 1 {
		return nil, fmt.Errorf("%w: %v", ErrBadRetain, retain)
	}
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	counts := make(NodeMap)

	var nline int64
	err := stream.ReadInsertions(r, func(ev stream.Event) error {
		nline++
		if ev.U == ev.V {
			return nil
		}
		counts[ev.U]++
		counts[ev.V]++

		if nline%progressEvery == 0 {
			cfg.logger.Info().Int64("events", nline).Msg("building node oracle")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg.logger.Info().Int("entries", len(counts)).Msg("node oracle built")

	return truncateNodeScores(counts, retain), nil
}

// creditTriangles scans the smaller neighbourhood of the just-added edge e
// and, for every common neighbour w, credits the two existing edges of the
// triangle. onCredit (may be nil) observes each credited edge id — the
// noWR builder uses it to tally waiting-room-covered triangles. Returns
// the number of triangles e closes.
func creditTriangles(adj map[int64]map[int64]struct{}, scores map[core.EdgeID]int, e core.Edge, onCredit func(core.EdgeID)) int {
	nMin, nMax := e.U, e.V
	if len(adj[nMin]) > len(adj[nMax]) {
		nMin, nMax = nMax, nMin
	}

	var common int
	for w := range adj[nMin] {
		if w == nMax {
			continue
		}
		if _, ok := adj[nMax][w]; !ok {
			continue
		}

		common++
		first := packPair(nMin, w)
		second := packPair(w, nMax)
		scores[first]++
		scores[second]++
		if onCredit != nil {
			onCredit(first)
			onCredit(second)
		}
	}

	return common
}

// packPair returns the packed id of the undirected pair {a, b}; both ids
// are already range-checked by the callers.
func packPair(a, b int64) core.EdgeID {
	if a > b {
		a, b = b, a
	}

	return core.Edge{U: a, V: b}.ID()
}

// addAdj inserts the undirected edge (u, v) into adj.
func addAdj(adj map[int64]map[int64]struct{}, u, v int64) {
	if adj[u] == nil {
		adj[u] = make(map[int64]struct{})
	}
	if adj[v] == nil {
		adj[v] = make(map[int64]struct{})
	}
	adj[u][v] = struct{}{}
	adj[v][u] = struct{}{}
}

// truncateEdgeScores keeps the top retain fraction of entries by score
// (ties broken by id for determinism).
func truncateEdgeScores(scores map[core.EdgeID]int, retain float64) EdgeMap {
	type entry struct {
		id core.EdgeID
		h  int
	}
	entries := make([]entry, 0, len(scores))
	for id, h := range scores {
		entries = append(entries, entry{id: id, h: h})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].h != entries[j].h {
			return entries[i].h > entries[j].h
		}

		return entries[i].id < entries[j].id
	})

	stop := int(retain * float64(len(entries)))
	out := make(EdgeMap, stop)
	for i := 0; i < stop; i++ {
		out[entries[i].id] = entries[i].h
	}

	return out
}

// truncateNodeScores keeps the top retain fraction of nodes by score
// (ties broken by id for determinism).
func truncateNodeScores(counts NodeMap, retain float64) NodeMap {
	type entry struct {
		node int64
		s    int
	}
	entries := make([]entry, 0, len(counts))
	for v, s := range counts {
		entries = append(entries, entry{node: v, s: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].s != entries[j].s {
			return entries[i].s > entries[j].s
		}

		return entries[i].node < entries[j].node
	})

	stop := int(retain * float64(len(entries)))
	out := make(NodeMap, stop)
	for i := 0; i < stop; i++ {
		out[entries[i].node] = entries[i].s
	}

	return out
}
