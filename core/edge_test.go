// Package core_test contains unit tests for the Edge value type and the
// packed EdgeID scheme.
package core_test

import (
	"testing"

	"github.com/katalvlaran/tristream/core"
)

// TestNewEdge_Canonical verifies that endpoints are stored in (lo, hi)
// order regardless of argument order, and that the two orderings produce
// structurally equal values.
func TestNewEdge_Canonical(t *testing.T) {
	a, err := core.NewEdge(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := core.NewEdge(3, 7)
	if err != nil {
		t.Fatal(err)
	}

	if a.U != 3 || a.V != 7 {
		t.Errorf("NewEdge(7,3) = (%d,%d); want (3,7)", a.U, a.V)
	}
	if a != b {
		t.Errorf("NewEdge(7,3) != NewEdge(3,7): %v vs %v", a, b)
	}
	if a.ID() != b.ID() {
		t.Errorf("IDs differ for the same undirected edge: %d vs %d", a.ID(), b.ID())
	}
}

// TestNewEdge_Errors verifies rejection of self-loops and out-of-range ids.
func TestNewEdge_Errors(t *testing.T) {
	cases := []struct {
		name string
		u, v int64
		err  error
	}{
		{"SelfLoop", 5, 5, core.ErrSelfLoop},
		{"NegativeU", -1, 2, core.ErrNodeIDRange},
		{"NegativeV", 2, -1, core.ErrNodeIDRange},
		{"TooLarge", core.MaxNodeID, 1, core.ErrNodeIDRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := core.NewEdge(tc.u, tc.v); err != tc.err {
				t.Errorf("NewEdge(%d,%d) error = %v; want %v", tc.u, tc.v, err, tc.err)
			}
		})
	}
}

// TestEdgeID_Injective spot-checks that close pairs never collide under
// the MaxNodeID-based packing.
func TestEdgeID_Injective(t *testing.T) {
	seen := make(map[core.EdgeID][2]int64)
	pairs := [][2]int64{{0, 1}, {1, 2}, {0, 2}, {1, core.MaxNodeID - 1}, {2, 3}, {0, core.MaxNodeID - 1}}
	for _, p := range pairs {
		e, err := core.NewEdge(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		if prev, dup := seen[e.ID()]; dup {
			t.Fatalf("EdgeID collision: %v and %v both map to %d", prev, p, e.ID())
		}
		seen[e.ID()] = p
	}
}
