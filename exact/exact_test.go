// Package exact_test contains unit tests for the reference counters.
package exact_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tristream/exact"
)

// insertionStream renders edges as a canonical "u v t" stream.
func insertionStream(edges [][2]int64) string {
	var sb strings.Builder
	for i, e := range edges {
		fmt.Fprintf(&sb, "%d %d %d\n", e[0], e[1], i+1)
	}

	return sb.String()
}

func TestCount_Triangle(t *testing.T) {
	res, err := exact.Count(strings.NewReader("1 2 1\n2 3 2\n1 3 3\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Triangles)
	assert.Equal(t, int64(3), res.Nodes)
	assert.Equal(t, int64(3), res.Edges)
}

func TestCount_SkipsLoopsAndDuplicates(t *testing.T) {
	res, err := exact.Count(strings.NewReader("1 1 1\n1 2 2\n1 2 3\n2 3 4\n1 3 5\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Triangles)
	assert.Equal(t, int64(3), res.Edges, "self-loop and duplicate do not count")
}

func TestCount_CompleteGraph(t *testing.T) {
	// K10: C(10,3) = 120 triangles on 45 edges.
	var edges [][2]int64
	for u := int64(0); u < 10; u++ {
		for v := u + 1; v < 10; v++ {
			edges = append(edges, [2]int64{u, v})
		}
	}
	res, err := exact.Count(strings.NewReader(insertionStream(edges)))
	require.NoError(t, err)
	assert.Equal(t, int64(120), res.Triangles)
	assert.Equal(t, int64(45), res.Edges)
	assert.Equal(t, int64(10), res.Nodes)
}

func TestCountDynamic_DeletionCancels(t *testing.T) {
	input := "1 2 1 +\n2 3 2 +\n1 3 3 +\n1 3 4 -\n"
	res, err := exact.CountDynamic(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Triangles)
	assert.Equal(t, int64(2), res.EdgesEnd)
	assert.Equal(t, int64(3), res.UniqueEdges)
	assert.Equal(t, int64(3), res.MaxEdges)
	assert.Equal(t, int64(3), res.MaxEdgesAt)
}

func TestCountDynamic_ReinsertionRecounts(t *testing.T) {
	input := strings.Join([]string{
		"1 2 1 +",
		"2 3 2 +",
		"1 3 3 +", // +1 triangle
		"1 3 4 -", // −1
		"1 3 5 +", // +1 again
	}, "\n")
	res, err := exact.CountDynamic(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Triangles)
	assert.Equal(t, int64(3), res.EdgesEnd)
}

func TestCountDynamic_DeleteAbsentEdge(t *testing.T) {
	res, err := exact.CountDynamic(strings.NewReader("1 2 1 +\n5 6 2 -\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Triangles)
	assert.Equal(t, int64(1), res.EdgesEnd)
	assert.Equal(t, int64(2), res.UniqueEdges)
}
