// In-package tests for the bounded heaviness heap.
package triangles

import (
	"testing"

	"github.com/katalvlaran/tristream/core"
)

func edge(u, v int64) core.Edge {
	if u > v {
		u, v = v, u
	}

	return core.Edge{U: u, V: v}
}

// TestBoundedHeap_MinOrder verifies ascending extraction by heaviness,
// with unknown (−1) surfacing first.
func TestBoundedHeap_MinOrder(t *testing.T) {
	h := newBoundedHeap(8)
	h.Push(edge(1, 2), 10)
	h.Push(edge(2, 3), -1)
	h.Push(edge(3, 4), 5)
	h.Push(edge(4, 5), 7)

	want := []int{-1, 5, 7, 10}
	for i, expected := range want {
		if got := h.PeekMin().heaviness; got != expected {
			t.Fatalf("peek %d = %d; want %d", i, got, expected)
		}
		if got := h.PopMin().heaviness; got != expected {
			t.Fatalf("pop %d = %d; want %d", i, got, expected)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("Len after draining = %d; want 0", h.Len())
	}
}

// TestBoundedHeap_PeekTracksMin interleaves pushes and pops and checks the
// top is always the global minimum of the live contents.
func TestBoundedHeap_PeekTracksMin(t *testing.T) {
	h := newBoundedHeap(16)
	scores := []int{9, 3, 11, 3, 0, 27, 14}
	for i, s := range scores {
		h.Push(edge(int64(i), int64(i+100)), s)
	}

	if got := h.PeekMin().heaviness; got != 0 {
		t.Fatalf("PeekMin = %d; want 0", got)
	}
	h.PopMin() // 0
	if got := h.PeekMin().heaviness; got != 3 {
		t.Fatalf("PeekMin after one pop = %d; want 3", got)
	}
	h.Push(edge(50, 60), 1)
	if got := h.PeekMin().heaviness; got != 1 {
		t.Fatalf("PeekMin after pushing 1 = %d; want 1", got)
	}
}
