package graph

import "testing"

func TestAddNodeAddEdge(t *testing.T) {
	g := New()
	a := g.AddNode(43.69, -79.32)
	b := g.AddNode(43.70, -79.30)
	if err := g.AddEdge(1, a, b, 10.0); err != nil {
		t.Fatalf("add edge: %v", err)
	}
	neighbors := g.Neighbors(a)
	if len(neighbors) != 1 || neighbors[0].Index != b || neighbors[0].Weight != 10.0 {
		t.Fatalf("unexpected neighbors: %+v", neighbors)
	}
}

func TestAddEdgeOutOfRange(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0)
	if err := g.AddEdge(1, a, 5, 1.0); err != ErrNodeOutOfRange {
		t.Fatalf("expected ErrNodeOutOfRange, got %v", err)
	}
	if err := g.AddEdge(2, 5, a, 1.0); err != ErrNodeOutOfRange {
		t.Fatalf("expected ErrNodeOutOfRange, got %v", err)
	}
}

func TestUpdateEdgeWeight(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0)
	b := g.AddNode(1, 1)
	_ = g.AddEdge(7, a, b, 5.0)
	g.UpdateEdgeWeight(7, 99.0)
	neighbors := g.Neighbors(a)
	if neighbors[0].Weight != 99.0 {
		t.Fatalf("expected weight 99.0, got %v", neighbors[0].Weight)
	}
}

func TestUpdateEdgeWeightMissingIsNoop(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0)
	b := g.AddNode(1, 1)
	_ = g.AddEdge(1, a, b, 5.0)
	g.UpdateEdgeWeight(999, 1.0) // no panic, no effect
	neighbors := g.Neighbors(a)
	if neighbors[0].Weight != 5.0 {
		t.Fatalf("expected weight unchanged at 5.0, got %v", neighbors[0].Weight)
	}
}

func TestNeighborsSnapshotIsolated(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0)
	b := g.AddNode(1, 1)
	_ = g.AddEdge(1, a, b, 5.0)
	neighbors := g.Neighbors(a)
	neighbors[0].Weight = 1234 // mutating the returned slice must not affect the graph
	again := g.Neighbors(a)
	if again[0].Weight != 5.0 {
		t.Fatalf("expected graph weight unaffected by caller mutation, got %v", again[0].Weight)
	}
}

func TestEdgesBetweenFirstMatchOrdering(t *testing.T) {
	g := New()
	a := g.AddNode(0, 0)
	b := g.AddNode(1, 1)
	_ = g.AddEdge(1, a, b, 5.0)
	_ = g.AddEdge(2, a, b, 7.0)
	edges := g.EdgesBetween(a, b)
	if len(edges) != 2 || edges[0].ID != 1 || edges[1].ID != 2 {
		t.Fatalf("unexpected edges: %+v", edges)
	}
}
