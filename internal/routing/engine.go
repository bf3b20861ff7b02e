// README: Routing engine — nearest-node/edge snapping, route cost, edge updates.
package routing

import (
	"errors"
	"math"

	"matchd/internal/graph"
)

// ErrUnreachable is available to callers that distinguish "no path" from a
// hard failure. Engine.Route never returns it: it returns -1 when an
// endpoint cannot snap and +Inf when the goal is unreachable.
var ErrUnreachable = errors.New("routing: goal unreachable")

// Direction is a cardinal/ordinal filter for UpdateEdgeByCoordinate.
type Direction int

const (
	DirBOTH Direction = iota
	DirNONE
	DirN
	DirS
	DirE
	DirW
	DirNE
	DirNW
	DirSE
	DirSW
)

// ParseDirection maps a direction token to a Direction, defaulting to BOTH
// for anything unrecognized.
func ParseDirection(s string) Direction {
	switch s {
	case "N", "n":
		return DirN
	case "S", "s":
		return DirS
	case "E", "e":
		return DirE
	case "W", "w":
		return DirW
	case "NE", "ne":
		return DirNE
	case "NW", "nw":
		return DirNW
	case "SE", "se":
		return DirSE
	case "SW", "sw":
		return DirSW
	case "NONE", "none":
		return DirNONE
	default:
		return DirBOTH
	}
}

// matchesDirection tests whether an edge with dlat = to.lat - from.lat,
// dlon = to.lon - from.lon falls within dir: N requires dlat > 0, E
// requires dlon > 0, diagonals require both, and a zero-vector edge never
// matches a specific direction.
func matchesDirection(fromLat, fromLon, toLat, toLon float64, dir Direction) bool {
	if dir == DirBOTH {
		return true
	}
	dlat := toLat - fromLat
	dlon := toLon - fromLon
	if dir == DirNONE {
		return false
	}
	if dlat == 0 && dlon == 0 {
		return false
	}
	switch dir {
	case DirN:
		return dlat > 0
	case DirS:
		return dlat < 0
	case DirE:
		return dlon > 0
	case DirW:
		return dlon < 0
	case DirNE:
		return dlat > 0 && dlon > 0
	case DirNW:
		return dlat > 0 && dlon < 0
	case DirSE:
		return dlat < 0 && dlon > 0
	case DirSW:
		return dlat < 0 && dlon < 0
	default:
		return false
	}
}

// Config tunes the routing engine's numeric behavior.
type Config struct {
	// MaxSpeedMetersPerSecond scales the A* heuristic; see astar.go.
	MaxSpeedMetersPerSecond float64
	// EdgeTieToleranceMeters: when multiple edges are within this distance
	// of the minimum in UpdateEdgeByCoordinate, all of them are updated.
	EdgeTieToleranceMeters float64
}

// DefaultConfig returns the engine's recommended tuning.
func DefaultConfig() Config {
	return Config{
		MaxSpeedMetersPerSecond: DefaultMaxSpeedMetersPerSecond,
		EdgeTieToleranceMeters:  1.0,
	}
}

// Engine wraps a road Graph and exposes route-cost and edge-update
// operations.
type Engine struct {
	graph *graph.Graph
	cfg   Config
	cache routeCache
}

// New wraps g with the given tuning. cache may be nil, in which case route
// costs are not cached.
func New(g *graph.Graph, cfg Config, cache routeCache) *Engine {
	if cache == nil {
		cache = noopCache{}
	}
	return &Engine{graph: g, cfg: cfg, cache: cache}
}

// Graph exposes the underlying graph, e.g. for graph-snapshot persistence.
func (e *Engine) Graph() *graph.Graph { return e.graph }

func (e *Engine) findNearestNode(lat, lon float64) int {
	best := math.Inf(1)
	bestIdx := -1
	nodes := e.graph.Nodes()
	for i, n := range nodes {
		d := haversineMeters(lat, lon, n.Lat, n.Lon)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	return bestIdx
}

// nearestEdges returns the ids of the edge(s) nearest to (lat, lon),
// filtered by dir, with ties within cfg.EdgeTieToleranceMeters all
// returned so a caller can update every tied edge.
func (e *Engine) nearestEdges(lat, lon float64, dir Direction) []int {
	edges := e.graph.Edges()
	nodes := e.graph.Nodes()

	type scored struct {
		id   int
		dist float64
	}
	var candidates []scored
	best := math.Inf(1)

	for _, edge := range edges {
		from, to := nodes[edge.From], nodes[edge.To]
		if !matchesDirection(from.Lat, from.Lon, to.Lat, to.Lon, dir) {
			continue
		}
		d := pointToSegmentDistanceMeters(lat, lon, from.Lat, from.Lon, to.Lat, to.Lon)
		if d < best {
			best = d
		}
		candidates = append(candidates, scored{id: edge.ID, dist: d})
	}

	var result []int
	for _, c := range candidates {
		if c.dist <= best+e.cfg.EdgeTieToleranceMeters {
			result = append(result, c.id)
		}
	}
	return result
}

// Route snaps both endpoints to their nearest node by great-circle distance
// and runs A*. Returns -1 if either endpoint cannot snap (empty graph).
func (e *Engine) Route(lat1, lon1, lat2, lon2 float64) float64 {
	start := e.findNearestNode(lat1, lon1)
	goal := e.findNearestNode(lat2, lon2)
	if start < 0 || goal < 0 {
		return -1.0
	}

	if cost, ok := e.cache.Get(start, goal); ok {
		return cost
	}

	result := ShortestPath(e.graph, start, goal, e.cfg.MaxSpeedMetersPerSecond)
	e.cache.Put(start, goal, result.Cost)
	return result.Cost
}

// UpdateEdgeByID updates a single edge directly.
func (e *Engine) UpdateEdgeByID(id int, weight float64) {
	e.graph.UpdateEdgeWeight(id, weight)
	e.cache.InvalidateAll()
}

// UpdateEdgeByEndpoints updates the first directed edge matching from->to.
// Parallel edges between the same pair of nodes are rare enough that
// first-match is the documented behavior; see DESIGN.md.
func (e *Engine) UpdateEdgeByEndpoints(from, to int, weight float64) {
	matches := e.graph.EdgesBetween(from, to)
	if len(matches) == 0 {
		return
	}
	e.graph.UpdateEdgeWeight(matches[0].ID, weight)
	e.cache.InvalidateAll()
}

// UpdateEdgeByCoordinate finds the nearest edge(s) to (lat, lon) by
// perpendicular point-to-segment distance, filtered by dir, and updates
// all of the tied-nearest matches.
func (e *Engine) UpdateEdgeByCoordinate(lat, lon, weight float64, dir Direction) {
	ids := e.nearestEdges(lat, lon, dir)
	for _, id := range ids {
		e.graph.UpdateEdgeWeight(id, weight)
	}
	if len(ids) > 0 {
		e.cache.InvalidateAll()
	}
}
