package routing

import (
	"testing"

	"matchd/internal/graph"
)

func buildSquareGraph() *graph.Graph {
	g := graph.New()
	a := g.AddNode(43.00, -79.00) // origin
	b := g.AddNode(43.00, -78.99) // east of a (increasing longitude)
	c := g.AddNode(43.01, -79.00) // north of a
	_ = g.AddEdge(1, a, b, 10)
	_ = g.AddEdge(2, a, c, 10)
	return g
}

func TestRouteSnapsAndComputesCost(t *testing.T) {
	g := buildSquareGraph()
	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	cost := e.Route(43.00, -79.00, 43.00, -78.99)
	if cost != 10 {
		t.Fatalf("expected cost 10, got %v", cost)
	}
}

func TestRouteEmptyGraphReturnsNegativeOne(t *testing.T) {
	g := graph.New()
	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	cost := e.Route(0, 0, 1, 1)
	if cost != -1.0 {
		t.Fatalf("expected -1, got %v", cost)
	}
}

func TestUpdateEdgeByIDOutOfRangeIsNoop(t *testing.T) {
	g := buildSquareGraph()
	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	e.UpdateEdgeByID(999, 1.0) // no-op, no panic
	cost := e.Route(43.00, -79.00, 43.00, -78.99)
	if cost != 10 {
		t.Fatalf("expected unaffected cost 10, got %v", cost)
	}
}

func TestUpdateEdgeByEndpointsAffectsRoute(t *testing.T) {
	g := buildSquareGraph()
	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	e.UpdateEdgeByEndpoints(0, 1, 999.0)
	cost := e.Route(43.00, -79.00, 43.00, -78.99)
	if cost != 999.0 {
		t.Fatalf("expected updated cost 999, got %v", cost)
	}
}

func TestDirectionPredicate(t *testing.T) {
	cases := []struct {
		dlat, dlon float64
		dir        Direction
		want       bool
	}{
		{1, 0, DirN, true},
		{-1, 0, DirN, false},
		{0, 1, DirE, true},
		{1, 1, DirNE, true},
		{1, -1, DirNE, false},
		{0, 0, DirN, false}, // zero-vector edge never matches a specific direction
		{0, 0, DirBOTH, true},
		{5, 5, DirNONE, false},
	}
	for _, c := range cases {
		got := matchesDirection(0, 0, c.dlat, c.dlon, c.dir)
		if got != c.want {
			t.Errorf("matchesDirection(dlat=%v, dlon=%v, dir=%v) = %v, want %v", c.dlat, c.dlon, c.dir, got, c.want)
		}
	}
}

func TestUpdateEdgeByCoordinateDirectionFiltered(t *testing.T) {
	g := buildSquareGraph()
	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	// at node a, both edges are equally near; only the eastward edge (a->b) should match DirE
	e.UpdateEdgeByCoordinate(43.00, -79.00, 500.0, DirE)
	eastCost := e.Route(43.00, -79.00, 43.00, -78.99)
	northCost := e.Route(43.00, -79.00, 43.01, -79.00)
	if eastCost != 500.0 {
		t.Fatalf("expected eastward edge updated to 500, got %v", eastCost)
	}
	if northCost == 500.0 {
		t.Fatalf("expected northward edge unaffected, got %v", northCost)
	}
}

func TestDynamicRerouteRaisesRouteCost(t *testing.T) {
	g := graph.New()
	a := g.AddNode(43.00, -79.00)
	mid := g.AddNode(43.00, -79.01)
	b := g.AddNode(43.00, -79.02)
	_ = g.AddEdge(1, a, mid, 10)
	_ = g.AddEdge(2, mid, b, 10)

	e := New(g, DefaultConfig(), NewMemoryRouteCache())
	d0 := e.Route(43.00, -79.00, 43.00, -79.02)

	e.UpdateEdgeByCoordinate(43.00, -79.01, 999.0, DirBOTH)
	d1 := e.Route(43.00, -79.00, 43.00, -79.02)

	if !(d1 > d0) {
		t.Fatalf("expected detour cost increase: d0=%v d1=%v", d0, d1)
	}
}
