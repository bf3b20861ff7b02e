// README: A* shortest path over the road graph, haversine heuristic.
package routing

import (
	"container/heap"
	"math"

	"matchd/internal/graph"
)

// DefaultMaxSpeedMetersPerSecond scales the haversine heuristic down from
// meters to a time estimate. Edge weights are expected traversal seconds,
// but haversine is a meters quantity; dividing by a global max speed
// (~33 m/s, ~120 km/h) keeps the heuristic from overestimating true cost
// as long as no edge implies a faster speed than that maximum.
const DefaultMaxSpeedMetersPerSecond = 33.0

// Result is the output of ShortestPath: the node-index path from start to
// goal inclusive, and the summed edge weight along it. On an unreachable
// goal, Cost is +Inf and Path is empty.
type Result struct {
	Path []int
	Cost float64
}

// pqEntry is a candidate expansion. Entries become stale when a better
// g-cost for the same node is later discovered; stale entries are detected
// and skipped lazily on pop rather than removed from the heap, avoiding a
// decrease-key operation on the underlying heap.
type pqEntry struct {
	index  int
	gCost  float64
	fCost  float64
	parent int
}

type priorityQueue []*pqEntry

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].fCost != pq[j].fCost {
		return pq[i].fCost < pq[j].fCost
	}
	return i < j // equal fCost: the lower heap slot wins; slots are not insertion order, so equal-fCost entries pop in no defined order
}
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*pqEntry)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs A* from startIdx to goalIdx over g, using the haversine
// great-circle distance (scaled by maxSpeed) as the heuristic.
func ShortestPath(g *graph.Graph, startIdx, goalIdx int, maxSpeed float64) Result {
	n := g.NumNodes()
	if startIdx < 0 || startIdx >= n || goalIdx < 0 || goalIdx >= n {
		return Result{Cost: math.Inf(1)}
	}
	if maxSpeed <= 0 {
		maxSpeed = DefaultMaxSpeedMetersPerSecond
	}

	gScore := make([]float64, n)
	parent := make([]int, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		parent[i] = -1
	}

	goalLoc := g.NodeLocation(goalIdx)
	heuristic := func(idx int) float64 {
		loc := g.NodeLocation(idx)
		return haversineMeters(loc.Lat, loc.Lon, goalLoc.Lat, goalLoc.Lon) / maxSpeed
	}

	gScore[startIdx] = 0
	open := &priorityQueue{{index: startIdx, gCost: 0, fCost: heuristic(startIdx), parent: -1}}
	heap.Init(open)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pqEntry)
		if closed[current.index] {
			continue // stale entry: a better path to this node was already settled
		}
		if current.gCost > gScore[current.index] {
			continue // stale entry: superseded by a cheaper path discovered later
		}
		closed[current.index] = true
		parent[current.index] = current.parent

		if current.index == goalIdx {
			break
		}

		for _, nb := range g.Neighbors(current.index) {
			if closed[nb.Index] {
				continue
			}
			tentative := current.gCost + nb.Weight
			if tentative < gScore[nb.Index] {
				gScore[nb.Index] = tentative
				heap.Push(open, &pqEntry{
					index:  nb.Index,
					gCost:  tentative,
					fCost:  tentative + heuristic(nb.Index),
					parent: current.index,
				})
			}
		}
	}

	if math.IsInf(gScore[goalIdx], 1) {
		return Result{Cost: math.Inf(1)}
	}

	var path []int
	for cur := goalIdx; cur != -1; cur = parent[cur] {
		path = append(path, cur)
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Result{Path: path, Cost: gScore[goalIdx]}
}
