// Package stream_test contains unit tests for snapshot merging.
package stream_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tristream/stream"
)

// writeSnapshot drops a snapshot file into dir.
func writeSnapshot(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestMergeSnapshots_AddsAndDeletes(t *testing.T) {
	dir := t.TempDir()
	// G1: {1,2}, {2,3}. G2: {1,2}, {1,3} — so {2,3} is deleted, {1,3} added.
	writeSnapshot(t, dir, "01.txt", "1 2\n2 3\n")
	writeSnapshot(t, dir, "02.txt", "1 2\n1 3\n")

	events, err := stream.MergeSnapshots(dir, 2, stream.WithMergeSeed(5))
	require.NoError(t, err)

	var inserts, deletes int
	balance := map[[2]int64]int{}
	for _, ev := range events {
		u, v := ev.U, ev.V
		if u > v {
			u, v = v, u
		}
		if ev.Sign == stream.Delete {
			deletes++
			balance[[2]int64{u, v}]--
		} else {
			inserts++
			balance[[2]int64{u, v}]++
		}
	}

	assert.Equal(t, 3, inserts, "G1's two edges plus the new {1,3}")
	assert.Equal(t, 1, deletes, "{2,3} vanished in G2")
	assert.Equal(t, 0, balance[[2]int64{2, 3}], "deleted edge nets to zero")
	assert.Equal(t, 1, balance[[2]int64{1, 2}])
	assert.Equal(t, 1, balance[[2]int64{1, 3}])

	// Timestamps are non-decreasing after the final sort.
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].T, events[i].T)
	}
}

func TestMergeSnapshots_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "a.txt", "1 2\n2 3\n3 4\n")
	writeSnapshot(t, dir, "b.txt", "1 2\n4 5\n")
	writeSnapshot(t, dir, "c.txt", "4 5\n")

	first, err := stream.MergeSnapshots(dir, 3, stream.WithMergeSeed(9))
	require.NoError(t, err)
	second, err := stream.MergeSnapshots(dir, 3, stream.WithMergeSeed(9))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed must reproduce the merge")
}

func TestMergeSnapshots_Empty(t *testing.T) {
	dir := t.TempDir()
	_, err := stream.MergeSnapshots(dir, 3)
	assert.ErrorIs(t, err, stream.ErrNoSnapshots)
}
