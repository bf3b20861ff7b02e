// README: Matching worker pool and the timeout worker. A worker dequeues
// a rider id, scores nearby OPEN drivers, and fans the offer out to the
// cheapest K of them; fan-out is an explicit over-provision — the first
// driver to accept wins, the rest discover the rider is gone on their
// next accept attempt.
package matching

import (
	"math"
	"sort"
	"time"

	"matchd/internal/routing"
	"matchd/internal/types"
)

func (e *Engine) matchWorker() {
	defer e.wg.Done()
	for {
		select {
		case <-e.stopCh:
			return
		case riderID := <-e.queue:
			e.processRider(riderID)
		}
	}
}

func (e *Engine) timeoutWorker() {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.TimeoutScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			e.scanTimeouts()
		}
	}
}

func (e *Engine) scanTimeouts() {
	now := time.Now()
	e.mu.Lock()
	var expired []types.ID
	for id, r := range e.riders {
		if r.State == StateOpen && now.Sub(r.PostTime) > e.cfg.RiderTimeout {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		r := e.riders[id]
		r.State = StateTimeout
		e.scrubRiderLocked(id, r)
		delete(e.riders, id)
	}
	e.mu.Unlock()
}

type candidate struct {
	driverID types.ID
	cost     float64
}

// processRider implements the matching worker protocol: it is a no-op if
// the rider is no longer OPEN (e.g. cancelled or timed out before its
// turn in the queue came up).
func (e *Engine) processRider(riderID types.ID) {
	e.mu.Lock()
	r, ok := e.riders[riderID]
	if !ok || r.State != StateOpen {
		e.mu.Unlock()
		return
	}
	loc := r.Loc
	bid := r.Bid
	candidateIDs := e.index.NeighborsOf(loc, e.cfg.CandidateRing)

	var candidates []candidate
	for _, driverID := range candidateIDs {
		d, ok := e.drivers[driverID]
		if !ok || d.State != StateOpen {
			continue
		}
		if d.Ask.Amount > bid.Amount {
			continue
		}
		candidates = append(candidates, candidate{driverID: driverID, cost: e.costTo(loc, d.Loc)})
	}
	e.mu.Unlock()

	var scored []candidate
	for _, c := range candidates {
		if c.cost < 0 || math.IsInf(c.cost, 0) {
			continue
		}
		scored = append(scored, c)
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].cost < scored[j].cost })
	if len(scored) > e.cfg.OffersPerRider {
		scored = scored[:e.cfg.OffersPerRider]
	}
	if len(scored) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok = e.riders[riderID]
	if !ok || r.State != StateOpen {
		return
	}
	for _, c := range scored {
		d, ok := e.drivers[c.driverID]
		if !ok || d.State != StateOpen {
			continue
		}
		d.Inbox[riderID] = struct{}{}
		r.PendingDrivers[c.driverID] = struct{}{}
	}
}

// costTo scores a rider-driver pair. With no routing engine configured it
// falls back to great-circle distance, which is monotone with travel time
// for ranking purposes even though it isn't a true time estimate.
func (e *Engine) costTo(from, to types.Point) float64 {
	if e.router != nil {
		return e.router.Route(from.Lat, from.Lon, to.Lat, to.Lon)
	}
	return routing.HaversineMeters(from.Lat, from.Lon, to.Lat, to.Lon)
}
