// README: Pure geographic computation helpers shared by astar.go and engine.go.
package routing

import "math"

// earthRadiusMeters matches the constant used throughout the original
// routing core (graph.cpp, astar.cpp, router.cpp).
const earthRadiusMeters = 6371000.0

// haversineMeters returns the great-circle distance in meters between two
// points given in decimal degrees.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180.0
	rlon1 := lon1 * math.Pi / 180.0
	rlat2 := lat2 * math.Pi / 180.0
	rlon2 := lon2 * math.Pi / 180.0

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineMeters is the exported form of haversineMeters, for callers
// outside this package that need a dependency-free distance estimate
// (e.g. the matching engine's great-circle fallback when no routing
// engine is configured).
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return haversineMeters(lat1, lon1, lat2, lon2)
}

type vec2 struct{ x, y float64 }

// toLocalXY projects lat/lon to a local equirectangular plane centered on
// refLat, in meters. Used for point-to-segment distance queries where true
// great-circle accuracy is unnecessary at road-segment scale.
func toLocalXY(lat, lon, refLat float64) vec2 {
	x := lon * math.Pi / 180.0 * earthRadiusMeters * math.Cos(refLat*math.Pi/180.0)
	y := lat * math.Pi / 180.0 * earthRadiusMeters
	return vec2{x: x, y: y}
}

// pointToSegmentDistanceMeters returns the perpendicular distance from point
// p to the segment [a,b], all given as lat/lon, via a local equirectangular
// projection centered on p's latitude.
func pointToSegmentDistanceMeters(plat, plon, alat, alon, blat, blon float64) float64 {
	p := toLocalXY(plat, plon, plat)
	a := toLocalXY(alat, alon, plat)
	b := toLocalXY(blat, blon, plat)

	ab := vec2{x: b.x - a.x, y: b.y - a.y}
	ap := vec2{x: p.x - a.x, y: p.y - a.y}

	ab2 := ab.x*ab.x + ab.y*ab.y
	if ab2 == 0 {
		dx, dy := p.x-a.x, p.y-a.y
		return math.Hypot(dx, dy)
	}

	t := (ap.x*ab.x + ap.y*ab.y) / ab2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	c := vec2{x: a.x + t*ab.x, y: a.y + t*ab.y}
	return math.Hypot(p.x-c.x, p.y-c.y)
}
