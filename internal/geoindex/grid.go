// README: Hexagonal spatial grid used to bucket drivers by location. No H3
// binding was found anywhere in the retrieved corpus, so this is a small
// pure-Go axial hex grid; see DESIGN.md for why a hand-rolled grid was
// chosen over a library dependency.
package geoindex

import "math"

// DefaultCellWidthMeters is the recommended tuning for urban density: a
// driver search ring of 1 covers roughly a 900m-wide neighborhood.
const DefaultCellWidthMeters = 300.0

const metersPerDegreeLat = 111320.0

// CellID is an opaque handle for a hex cell: an axial (q, r) coordinate
// pair packed into 64 bits.
type CellID uint64

func encodeCell(q, r int) CellID {
	return CellID(uint64(uint32(int32(q)))<<32 | uint64(uint32(int32(r))))
}

func decodeCell(c CellID) (q, r int) {
	q = int(int32(uint32(uint64(c) >> 32)))
	r = int(int32(uint32(uint64(c))))
	return q, r
}

// Grid projects lat/lon onto a flat-top hexagonal tiling. Longitude is
// scaled using a fixed reference latitude rather than each point's own
// latitude, so the tiling stays regular across a single metro-scale
// deployment region; it is not suited to a global grid.
type Grid struct {
	refLat float64
	size   float64 // hex size: center to corner, meters
}

// NewGrid builds a Grid whose cells are approximately cellWidthMeters wide,
// with longitude scaled relative to refLat (decimal degrees).
func NewGrid(cellWidthMeters, refLat float64) Grid {
	if cellWidthMeters <= 0 {
		cellWidthMeters = DefaultCellWidthMeters
	}
	return Grid{refLat: refLat, size: cellWidthMeters / math.Sqrt(3)}
}

// DefaultGrid returns a Grid tuned to DefaultCellWidthMeters, centered on
// refLat.
func DefaultGrid(refLat float64) Grid {
	return NewGrid(DefaultCellWidthMeters, refLat)
}

func (g Grid) project(lat, lon float64) (x, y float64) {
	metersPerDegreeLon := metersPerDegreeLat * math.Cos(g.refLat*math.Pi/180)
	return lon * metersPerDegreeLon, lat * metersPerDegreeLat
}

// CellOf returns the cell containing (lat, lon).
func (g Grid) CellOf(lat, lon float64) CellID {
	x, y := g.project(lat, lon)
	qf := (2.0 / 3.0 * x) / g.size
	rf := (-1.0/3.0*x + math.Sqrt(3)/3.0*y) / g.size
	q, r := axialRound(qf, rf)
	return encodeCell(q, r)
}

func axialRound(qf, rf float64) (int, int) {
	xf, zf := qf, rf
	yf := -xf - zf
	rx, ry, rz := math.Round(xf), math.Round(yf), math.Round(zf)

	dx, dy, dz := math.Abs(rx-xf), math.Abs(ry-yf), math.Abs(rz-zf)
	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return int(rx), int(rz)
}

func hexDistance(q1, r1, q2, r2 int) int {
	return (abs(q1-q2) + abs(q1+r1-q2-r2) + abs(r1-r2)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Ring returns the cell itself plus every cell within k hex-steps (a
// filled disk, not just the boundary ring) — matching the "cell
// containing loc plus all cells within ring hexagonal steps" search
// semantics used by the driver index.
func (g Grid) Ring(center CellID, k int) []CellID {
	if k < 0 {
		k = 0
	}
	cq, cr := decodeCell(center)
	cells := make([]CellID, 0, 3*k*(k+1)+1)
	for dq := -k; dq <= k; dq++ {
		for dr := -k; dr <= k; dr++ {
			q, r := cq+dq, cr+dr
			if hexDistance(cq, cr, q, r) <= k {
				cells = append(cells, encodeCell(q, r))
			}
		}
	}
	return cells
}
