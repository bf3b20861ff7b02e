package geoindex

import (
	"sync"

	"matchd/internal/types"
)

// Index maps hex cells to the set of driver ids currently located there.
// Callers that already hold a coarser lock (the matching engine's
// registry mutex) may still call Index's methods safely; the internal
// mutex only protects the cell map itself.
type Index struct {
	mu    sync.Mutex
	grid  Grid
	cells map[CellID]map[types.ID]struct{}
}

// New returns an empty Index over grid.
func New(grid Grid) *Index {
	return &Index{grid: grid, cells: make(map[CellID]map[types.ID]struct{})}
}

// Insert places driverID into the cell containing loc.
func (ix *Index) Insert(driverID types.ID, loc types.Point) {
	cell := ix.grid.CellOf(loc.Lat, loc.Lon)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	bucket, ok := ix.cells[cell]
	if !ok {
		bucket = make(map[types.ID]struct{})
		ix.cells[cell] = bucket
	}
	bucket[driverID] = struct{}{}
}

// Remove drops driverID from the cell containing loc. A no-op if the
// driver was never inserted there.
func (ix *Index) Remove(driverID types.ID, loc types.Point) {
	cell := ix.grid.CellOf(loc.Lat, loc.Lon)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	bucket, ok := ix.cells[cell]
	if !ok {
		return
	}
	delete(bucket, driverID)
	if len(bucket) == 0 {
		delete(ix.cells, cell)
	}
}

// NeighborsOf returns every driver id in the cell containing loc plus all
// cells within ring hex-steps of it, deduplicated.
func (ix *Index) NeighborsOf(loc types.Point, ring int) []types.ID {
	center := ix.grid.CellOf(loc.Lat, loc.Lon)
	area := ix.grid.Ring(center, ring)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	seen := make(map[types.ID]struct{})
	var out []types.ID
	for _, cell := range area {
		for id := range ix.cells[cell] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// CellOf exposes the grid's cell-of computation for callers that need to
// reason about cell identity directly (e.g. invariant checks in tests).
func (ix *Index) CellOf(loc types.Point) CellID {
	return ix.grid.CellOf(loc.Lat, loc.Lon)
}
