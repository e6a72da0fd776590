// Package stream - dataset normalization.
//
// Raw public edge lists arrive with self-loops, duplicate edges, arbitrary
// delimiters, and header lines. Preprocess reduces them to the canonical
// insertion format the estimators assume: each undirected edge once,
// canonical endpoint order, timestamps renumbered to arrival rank.
package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/tristream/core"
)

// progressEvery is the interval, in input lines, between progress logs.
const progressEvery = 3_000_000

// Stats summarizes a preprocessing pass.
type Stats struct {
	Lines int64 // raw lines consumed (after skipping)
	Nodes int64 // distinct endpoint ids among kept edges
	Edges int64 // distinct undirected edges kept
}

// PreprocessOption configures a Preprocess call.
type PreprocessOption func(*preprocessConfig)

type preprocessConfig struct {
	delimiter string
	skip      int64
	logger    zerolog.Logger
}

// WithDelimiter sets the field delimiter of the raw file (default: any
// run of whitespace).
func WithDelimiter(d string) PreprocessOption {
	return func(cfg *preprocessConfig) { cfg.delimiter = d }
}

// WithSkip skips the first n lines of the raw file (headers, comments).
func WithSkip(n int64) PreprocessOption {
	return func(cfg *preprocessConfig) { cfg.skip = n }
}

// WithLogger installs a progress logger (default: no output).
func WithLogger(l zerolog.Logger) PreprocessOption {
	return func(cfg *preprocessConfig) { cfg.logger = l }
}

// Preprocess reads a raw edge list and returns the canonical insertion
// stream: self-loops dropped, each undirected edge exactly once, ordered
// by last occurrence, timestamps renumbered 1..m.
//
// Duplicates keep the timestamp of their LAST occurrence: re-listing an
// edge moves it later in the normalized stream, matching how repeated
// interactions refresh an edge's recency in the underlying graph.
//
// Complexity: O(lines + m log m) time, O(n + m) space.
func Preprocess(r io.Reader, opts ...PreprocessOption) ([]Event, Stats, error) {
	cfg := preprocessConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	lastSeen := make(map[core.Edge]int64)

	var stats Stats
	var nline, t int64
	nodes := make(map[int64]struct{})

	for sc.Scan() {
		nline++
		if nline <= cfg.skip {
			continue
		}

		u, v, err := splitPair(sc.Text(), cfg.delimiter)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("%w: line %d: %v", ErrBadLine, nline, err)
		}
		stats.Lines++

		if u == v {
			continue
		}
		e, err := core.NewEdge(u, v)
		if err != nil {
			return nil, Stats{}, fmt.Errorf("%w: line %d: %v", ErrBadLine, nline, err)
		}

		t++
		if _, dup := lastSeen[e]; !dup {
			nodes[e.U] = struct{}{}
			nodes[e.V] = struct{}{}
		}
		lastSeen[e] = t

		if nline%progressEvery == 0 {
			cfg.logger.Info().Int64("lines", nline).Msg("preprocessing")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, Stats{}, err
	}

	// Order by last occurrence, then renumber 1..m.
	events := make([]Event, 0, len(lastSeen))
	for e, seen := range lastSeen {
		events = append(events, Event{U: e.U, V: e.V, T: seen, Sign: Insert})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].T < events[j].T })
	for i := range events {
		events[i].T = int64(i + 1)
	}

	stats.Nodes = int64(len(nodes))
	stats.Edges = int64(len(events))
	cfg.logger.Info().
		Int64("nodes", stats.Nodes).
		Int64("edges", stats.Edges).
		Msg("preprocessed dataset")

	return events, stats, nil
}

// WritePreprocessed renders events in the canonical "u v t" format and
// installs the file atomically at path.
func WritePreprocessed(path string, events []Event) error {
	var buf bytes.Buffer
	for _, ev := range events {
		buf.WriteString(strconv.FormatInt(ev.U, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(ev.V, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(ev.T, 10))
		buf.WriteByte('\n')
	}

	return atomic.WriteFile(path, &buf)
}

// WriteDynamic renders events in the "u v t s" format and installs the
// file atomically at path.
func WriteDynamic(path string, events []Event) error {
	var buf bytes.Buffer
	for _, ev := range events {
		buf.WriteString(strconv.FormatInt(ev.U, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(ev.V, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(ev.T, 10))
		buf.WriteByte(' ')
		buf.WriteString(ev.Sign.String())
		buf.WriteByte('\n')
	}

	return atomic.WriteFile(path, &buf)
}

// splitPair extracts the first two integer fields of a raw line using the
// configured delimiter ("" = any whitespace). Extra fields are ignored.
func splitPair(line, delimiter string) (int64, int64, error) {
	line = strings.TrimSpace(line)

	var fields []string
	if delimiter == "" || delimiter == " " {
		fields = strings.Fields(line)
	} else {
		fields = strings.Split(line, delimiter)
	}
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("want at least 2 fields, got %d", len(fields))
	}

	u, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return u, v, nil
}
