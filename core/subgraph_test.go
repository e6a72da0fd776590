// Package core_test contains unit tests for the retained Subgraph.
package core_test

import (
	"testing"

	"github.com/katalvlaran/tristream/core"
)

func mustEdge(t *testing.T, u, v int64) core.Edge {
	t.Helper()
	e, err := core.NewEdge(u, v)
	if err != nil {
		t.Fatal(err)
	}

	return e
}

// TestSubgraph_AddRemove verifies edge counting, mirrored adjacency, and
// erasure of empty outer entries.
func TestSubgraph_AddRemove(t *testing.T) {
	s := core.NewSubgraph(0)
	e12 := mustEdge(t, 1, 2)
	e23 := mustEdge(t, 2, 3)

	s.Add(e12, true)
	s.Add(e23, false)

	if got := s.NumEdges(); got != 2 {
		t.Fatalf("NumEdges = %d; want 2", got)
	}
	if got := s.NumNodes(); got != 3 {
		t.Fatalf("NumNodes = %d; want 3", got)
	}
	if got := s.Degree(2); got != 2 {
		t.Errorf("Degree(2) = %d; want 2", got)
	}

	// Both directions must agree on det.
	if det := s.Neighbours(1)[2]; !det {
		t.Errorf("det(1→2) = false; want true")
	}
	if det := s.Neighbours(2)[1]; !det {
		t.Errorf("det(2→1) = false; want true")
	}

	if !s.Remove(e12) {
		t.Fatal("Remove(e12) = false; want true")
	}
	if s.Remove(e12) {
		t.Fatal("second Remove(e12) = true; want false")
	}
	// Node 1 lost its only edge and must disappear.
	if got := s.NumNodes(); got != 2 {
		t.Errorf("NumNodes after removal = %d; want 2", got)
	}
	if s.Neighbours(1) != nil {
		t.Errorf("Neighbours(1) non-nil after last edge removed")
	}
}

// TestSubgraph_SetDet verifies that promotion/demotion rewrites both
// mirrored entries.
func TestSubgraph_SetDet(t *testing.T) {
	s := core.NewSubgraph(0)
	e := mustEdge(t, 4, 9)
	s.Add(e, true)

	s.SetDet(e, false)
	if det, ok := s.Det(e); !ok || det {
		t.Fatalf("Det after demotion = (%v,%v); want (false,true)", det, ok)
	}
	if s.Neighbours(9)[4] {
		t.Errorf("mirrored entry 9→4 still det after SetDet(false)")
	}

	// SetDet on an absent edge is a no-op.
	s.SetDet(mustEdge(t, 1, 2), true)
	if _, ok := s.Det(mustEdge(t, 1, 2)); ok {
		t.Errorf("SetDet materialized an absent edge")
	}
}

// TestSubgraph_Delete verifies det reporting on deletion and the
// not-retained case.
func TestSubgraph_Delete(t *testing.T) {
	s := core.NewSubgraph(0)
	light := mustEdge(t, 1, 2)
	heavy := mustEdge(t, 2, 3)
	s.Add(light, false)
	s.Add(heavy, true)

	if det, ok := s.Delete(light); !ok || det {
		t.Fatalf("Delete(light) = (%v,%v); want (false,true)", det, ok)
	}
	if det, ok := s.Delete(heavy); !ok || !det {
		t.Fatalf("Delete(heavy) = (%v,%v); want (true,true)", det, ok)
	}
	if _, ok := s.Delete(heavy); ok {
		t.Fatal("Delete of an absent edge reported ok")
	}
	if got := s.NumEdges(); got != 0 {
		t.Errorf("NumEdges = %d; want 0", got)
	}
}

// TestSubgraph_DegreeSum checks the handshake identity:
// the sum of degrees equals twice the retained edge count.
func TestSubgraph_DegreeSum(t *testing.T) {
	s := core.NewSubgraph(0)
	edges := [][2]int64{{1, 2}, {2, 3}, {1, 3}, {3, 4}, {4, 5}}
	for i, p := range edges {
		s.Add(mustEdge(t, p[0], p[1]), i%2 == 0)
	}

	var sum int64
	for _, v := range s.Nodes() {
		sum += int64(s.Degree(v))
	}
	if sum != 2*s.NumEdges() {
		t.Errorf("degree sum = %d; want %d", sum, 2*s.NumEdges())
	}
}
