// Package oracle - predictor file formats.
//
// Edge oracle files carry "u v heaviness" per line; node oracle files
// carry "node score". Builders write entries sorted by descending score —
// loaders do not require that order, but it keeps truncated files useful
// (the head of the file is always the heaviest prefix).
package oracle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/katalvlaran/tristream/core"
)

// Sentinel errors for oracle files and builders.
var (
	// ErrBadLine indicates an oracle file line that does not parse.
	ErrBadLine = errors.New("oracle: malformed oracle line")

	// ErrBadRetain indicates a retain fraction outside (0,1].
	ErrBadRetain = errors.New("oracle: retain fraction must lie in (0,1]")
)

// maxLineBytes bounds the scanner buffer for oracle files.
const maxLineBytes = 1 << 16

// LoadEdgeMap reads an edge-keyed predictor from r, skipping the first
// skip lines. Duplicate edges keep the last score read.
//
// Complexity: O(lines).
func LoadEdgeMap(r io.Reader, skip int64) (EdgeMap, error) {
	out := make(EdgeMap)
	err := scanLines(r, skip, func(line int64, fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("%w: line %d: want \"u v heaviness\"", ErrBadLine, line)
		}
		u, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		v, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		h, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		e, err := core.NewEdge(u, v)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		out[e.ID()] = h

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// LoadNodeMap reads a node-keyed predictor from r, skipping the first
// skip lines. Duplicate nodes keep the last score read.
//
// Complexity: O(lines).
func LoadNodeMap(r io.Reader, skip int64) (NodeMap, error) {
	out := make(NodeMap)
	err := scanLines(r, skip, func(line int64, fields []string) error {
		if len(fields) < 2 {
			return fmt.Errorf("%w: line %d: want \"node score\"", ErrBadLine, line)
		}
		v, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		s, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrBadLine, line, err)
		}
		out[v] = s

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// WriteEdgeMap renders m sorted by descending score (ties by edge id) and
// installs the file atomically at path.
func WriteEdgeMap(path string, m EdgeMap) error {
	type entry struct {
		id core.EdgeID
		h  int
	}
	entries := make([]entry, 0, len(m))
	for id, h := range m {
		entries = append(entries, entry{id: id, h: h})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].h != entries[j].h {
			return entries[i].h > entries[j].h
		}

		return entries[i].id < entries[j].id
	})

	var buf bytes.Buffer
	for _, en := range entries {
		e := core.EdgeFromID(en.id)
		buf.WriteString(strconv.FormatInt(e.U, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatInt(e.V, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(en.h))
		buf.WriteByte('\n')
	}

	return atomic.WriteFile(path, &buf)
}

// WriteNodeMap renders m sorted by descending score (ties by node id) and
// installs the file atomically at path.
func WriteNodeMap(path string, m NodeMap) error {
	type entry struct {
		node int64
		s    int
	}
	entries := make([]entry, 0, len(m))
	for v, s := range m {
		entries = append(entries, entry{node: v, s: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].s != entries[j].s {
			return entries[i].s > entries[j].s
		}

		return entries[i].node < entries[j].node
	})

	var buf bytes.Buffer
	for _, en := range entries {
		buf.WriteString(strconv.FormatInt(en.node, 10))
		buf.WriteByte(' ')
		buf.WriteString(strconv.Itoa(en.s))
		buf.WriteByte('\n')
	}

	return atomic.WriteFile(path, &buf)
}

// scanLines feeds whitespace-split fields of every non-blank line past the
// skip count to fn.
func scanLines(r io.Reader, skip int64, fn func(line int64, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var line int64
	for sc.Scan() {
		line++
		if line <= skip {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}

	return sc.Err()
}
