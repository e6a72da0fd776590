// Package oracle_test contains unit tests for the predictor builders.
package oracle_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tristream/oracle"
)

// k5Stream renders the complete graph K5 as an insertion stream: every
// edge participates in exactly 3 triangles.
func k5Stream() string {
	var sb strings.Builder
	t := 0
	for u := int64(0); u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			t++
			fmt.Fprintf(&sb, "%d %d %d\n", u, v, t)
		}
	}

	return sb.String()
}

func TestBuildEdgeExact_CompleteGraph(t *testing.T) {
	m, err := oracle.BuildEdgeExact(strings.NewReader(k5Stream()), 1.0)
	require.NoError(t, err)
	require.Len(t, m, 10, "retain=1 keeps every edge")

	for u := int64(0); u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			assert.Equalf(t, 3, m.Heaviness(u, v), "edge (%d,%d) sits in 3 triangles of K5", u, v)
		}
	}
}

func TestBuildEdgeExact_RetainTruncates(t *testing.T) {
	// Triangle {1,2,3} plus a pendant edge {3,4}: scores 1,1,1,0.
	input := "1 2 1\n2 3 2\n1 3 3\n3 4 4\n"
	m, err := oracle.BuildEdgeExact(strings.NewReader(input), 0.5)
	require.NoError(t, err)
	require.Len(t, m, 2, "retain=0.5 keeps the top half")
	assert.Equal(t, oracle.HeavinessUnknown, m.Heaviness(3, 4), "the light tail is forgotten")
}

func TestBuildEdgeExact_BadRetain(t *testing.T) {
	_, err := oracle.BuildEdgeExact(strings.NewReader(""), 0)
	assert.ErrorIs(t, err, oracle.ErrBadRetain)
	_, err = oracle.BuildEdgeExact(strings.NewReader(""), 1.5)
	assert.ErrorIs(t, err, oracle.ErrBadRetain)
}

func TestBuildEdgeExactNoWR_DiscountsFreshTriangles(t *testing.T) {
	// The triangle closes immediately: with a waiting room as large as the
	// stream, every triangle is covered by the room and all scores drop
	// to zero; with wrSize=1 nothing is covered and scores match the
	// plain exact builder.
	input := "1 2 1\n2 3 2\n1 3 3\n"

	covered, err := oracle.BuildEdgeExactNoWR(strings.NewReader(input), 1.0, 100)
	require.NoError(t, err)
	for _, pair := range [][2]int64{{1, 2}, {2, 3}, {1, 3}} {
		assert.Equal(t, 0, covered.Heaviness(pair[0], pair[1]))
	}

	uncovered, err := oracle.BuildEdgeExactNoWR(strings.NewReader(input), 1.0, 1)
	require.NoError(t, err)
	plain, err := oracle.BuildEdgeExact(strings.NewReader(input), 1.0)
	require.NoError(t, err)
	for _, pair := range [][2]int64{{1, 2}, {2, 3}, {1, 3}} {
		assert.Equal(t,
			plain.Heaviness(pair[0], pair[1]),
			uncovered.Heaviness(pair[0], pair[1]),
			"wrSize=1 discounts nothing")
	}
}

func TestBuildNodeDegree_CountsOccurrences(t *testing.T) {
	// Nodes 1 and 2 appear 3 times each (duplicates included), 3/4 once.
	input := "1 2 1\n1 3 2\n1 2 3\n2 4 4\n"
	m, err := oracle.BuildNodeDegree(strings.NewReader(input), 1.0)
	require.NoError(t, err)

	assert.Equal(t, oracle.NodeMap{1: 3, 2: 3, 3: 1, 4: 1}, m)
}
