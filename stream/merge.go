// Package stream - fully-dynamic stream derivation from graph snapshots.
//
// Given a time-ordered sequence of snapshot edge lists G1, G2, …, the
// merged stream starts as all of G1's edges inserted, then for each later
// snapshot Gi adds the edges in Gi \ G(i−1) as insertions (timestamped by
// their arrival inside the snapshot) and the edges in G(i−1) \ Gi as
// deletions at uniformly-random timestamps inside Gi's window. Sorting by
// timestamp yields a stream whose prefix states interpolate the snapshots.
package stream

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/tristream/core"
)

// MergeOption configures a MergeSnapshots call.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	delimiter string
	skip      int64
	seed      int64
	logger    zerolog.Logger
}

// WithMergeDelimiter sets the snapshot files' field delimiter (default:
// any run of whitespace).
func WithMergeDelimiter(d string) MergeOption {
	return func(cfg *mergeConfig) { cfg.delimiter = d }
}

// WithMergeSkip skips the first n lines of every snapshot file.
func WithMergeSkip(n int64) MergeOption {
	return func(cfg *mergeConfig) { cfg.skip = n }
}

// WithMergeSeed seeds the generator drawing deletion timestamps.
// Seed 0 maps to a fixed default, so merges are reproducible by default.
func WithMergeSeed(seed int64) MergeOption {
	return func(cfg *mergeConfig) { cfg.seed = seed }
}

// WithMergeLogger installs a progress logger (default: no output).
func WithMergeLogger(l zerolog.Logger) MergeOption {
	return func(cfg *mergeConfig) { cfg.logger = l }
}

// MergeSnapshots reads up to n ".txt" snapshot files from dir (sorted by
// name) and derives the fully-dynamic event stream described in the file
// header. Returns ErrNoSnapshots when dir holds no snapshot files.
//
// Complexity: O(total edges · log(total events)).
func MergeSnapshots(dir string, n int, opts ...MergeOption) ([]Event, error) {
	cfg := mergeConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	seed := cfg.seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	files, err := snapshotFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) > n {
		files = files[:n]
	}

	var out []Event
	additions := make(map[core.Edge]int64) // edge → absolute insertion timestamp

	var current int64 // absolute timestamp reached so far
	for i, path := range files {
		cfg.logger.Info().Int("snapshot", i+1).Str("file", path).Msg("merging snapshot")

		snap, maxT, err := readSnapshot(path, cfg)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			// First snapshot: the stream opens with G1 inserted wholesale.
			for e, t := range snap {
				out = append(out, Event{U: e.U, V: e.V, T: t, Sign: Insert})
				additions[e] = t
			}
			current = maxT

			continue
		}

		// Edges appearing in this snapshot: timed insertions.
		for e, t := range snap {
			if _, known := additions[e]; known {
				continue
			}
			abs := current + t
			out = append(out, Event{U: e.U, V: e.V, T: abs, Sign: Insert})
			additions[e] = abs
		}

		// Edges vanishing since the previous state: deletions at random
		// timestamps inside this snapshot's window.
		for e := range additions {
			if _, still := snap[e]; still {
				continue
			}
			abs := current + 1 + rng.Int63n(maxT)
			out = append(out, Event{U: e.U, V: e.V, T: abs, Sign: Delete})
			delete(additions, e)
		}

		current += maxT
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].T != out[j].T {
			return out[i].T < out[j].T
		}
		// Deterministic order among same-timestamp events.
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		if out[i].V != out[j].V {
			return out[i].V < out[j].V
		}

		return out[i].Sign > out[j].Sign
	})

	cfg.logger.Info().Int("events", len(out)).Msg("merged fully-dynamic stream")

	return out, nil
}

// snapshotFiles lists dir's .txt files sorted by name.
func snapshotFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshots, dir)
	}
	sort.Strings(files)

	return files, nil
}

// readSnapshot normalizes one snapshot file: self-loops dropped, duplicate
// edges keep their first arrival rank, timestamps are 0-based arrival
// ranks local to the snapshot. Returns the edge→rank map and the rank
// ceiling (number of distinct edges).
func readSnapshot(path string, cfg mergeConfig) (map[core.Edge]int64, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	snap := make(map[core.Edge]int64)

	var nline, t int64
	for sc.Scan() {
		nline++
		if nline <= cfg.skip {
			continue
		}

		u, v, err := splitPair(sc.Text(), cfg.delimiter)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s line %d: %v", ErrBadLine, path, nline, err)
		}
		if u == v {
			continue
		}
		e, err := core.NewEdge(u, v)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s line %d: %v", ErrBadLine, path, nline, err)
		}

		if _, dup := snap[e]; dup {
			continue
		}
		snap[e] = t
		t++
	}
	if err = sc.Err(); err != nil {
		return nil, 0, err
	}
	if t == 0 {
		t = 1 // empty snapshot: keep the deletion window non-degenerate
	}

	return snap, t, nil
}
