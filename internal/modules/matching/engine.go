// README: Matching engine — rider/driver registries, spatial index, and
// the atomic driver_accept transition. Coarse-lock design: a single mutex
// guards the registries and the spatial index together, giving every
// aggregate a single source of truth under CAS-like contention.
package matching

import (
	"errors"
	"sync"
	"time"

	"matchd/internal/geoindex"
	"matchd/internal/types"
)

var (
	ErrDuplicateID     = errors.New("matching: id already present")
	ErrUnknownID       = errors.New("matching: unknown id")
	ErrNotOpen         = errors.New("matching: principal is not open")
	ErrNoOffer         = errors.New("matching: rider is not in driver's inbox")
	ErrPriceViolation  = errors.New("matching: ask exceeds bid")
	ErrNotRunning      = errors.New("matching: engine is not running")
	ErrAlreadyRunning  = errors.New("matching: engine is already running")
)

// RouteCoster is the subset of routing.Engine the matching engine depends
// on. A nil RouteCoster falls back to great-circle distance.
type RouteCoster interface {
	Route(lat1, lon1, lat2, lon2 float64) float64
}

// Engine is the matching engine. Exactly one of Start/Stop may be
// in-flight at a time; callers serialize lifecycle calls themselves.
type Engine struct {
	mu      sync.Mutex
	riders  map[types.ID]*Rider
	drivers map[types.ID]*Driver
	index   *geoindex.Index

	cfg    Config
	router RouteCoster

	queue  chan types.ID
	stopCh chan struct{}
	wg     sync.WaitGroup

	running bool

	events    chan MatchEvent
	publisher eventPublisher
}

// New builds an Engine. grid sizes the spatial index; router may be nil,
// in which case candidate costs fall back to great-circle distance.
// publisher may be nil, in which case match events are only delivered on
// the Events() channel.
func New(cfg Config, grid geoindex.Grid, router RouteCoster, publisher eventPublisher) *Engine {
	if cfg.Workers <= 0 {
		cfg = DefaultConfig()
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Engine{
		riders:    make(map[types.ID]*Rider),
		drivers:   make(map[types.ID]*Driver),
		index:     geoindex.New(grid),
		cfg:       cfg,
		router:    router,
		queue:     make(chan types.ID, cfg.QueueCapacity),
		events:    make(chan MatchEvent, cfg.QueueCapacity),
		publisher: publisher,
	}
}

// Events returns the channel every successful driver_accept publishes to.
// Sends are non-blocking: once its buffer is full, further events are
// dropped from this channel (the publisher still receives every event).
func (e *Engine) Events() <-chan MatchEvent { return e.events }

// Start launches the matching worker pool and the timeout worker.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	for i := 0; i < e.cfg.Workers; i++ {
		e.wg.Add(1)
		go e.matchWorker()
	}
	e.wg.Add(1)
	go e.timeoutWorker()
	return nil
}

// Stop signals every worker to exit and waits for them to drain. After
// Stop returns, public mutating calls are rejected with ErrNotRunning.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	e.mu.Unlock()

	e.wg.Wait()
}

// AddRider registers a rider and enqueues it for matching.
func (e *Engine) AddRider(id types.ID, bid types.Money, loc types.Point) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	if _, exists := e.riders[id]; exists {
		e.mu.Unlock()
		return ErrDuplicateID
	}
	e.riders[id] = &Rider{
		ID:             id,
		Bid:            bid,
		Loc:            loc,
		State:          StateOpen,
		PostTime:       time.Now(),
		PendingDrivers: make(map[types.ID]struct{}),
	}
	e.mu.Unlock()

	select {
	case e.queue <- id:
	case <-e.stopCh:
	}
	return nil
}

// AddDriver registers a driver and inserts it into the spatial index.
func (e *Engine) AddDriver(id types.ID, ask types.Money, loc types.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return ErrNotRunning
	}
	if _, exists := e.drivers[id]; exists {
		return ErrDuplicateID
	}
	e.drivers[id] = &Driver{
		ID:    id,
		Ask:   ask,
		Loc:   loc,
		State: StateOpen,
		Inbox: make(map[types.ID]struct{}),
	}
	e.index.Insert(id, loc)
	return nil
}

// DriverAccept is the atomic two-party transition described by the
// engine's matching protocol: both locate-and-verify and the MATCHED
// transition happen under a single critical section.
func (e *Engine) DriverAccept(driverID, riderID types.ID) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}

	d, ok := e.drivers[driverID]
	if !ok {
		e.mu.Unlock()
		return ErrUnknownID
	}
	r, ok := e.riders[riderID]
	if !ok {
		e.mu.Unlock()
		return ErrUnknownID
	}
	if _, offered := d.Inbox[riderID]; !offered {
		e.mu.Unlock()
		return ErrNoOffer
	}
	if d.State != StateOpen || r.State != StateOpen {
		e.mu.Unlock()
		return ErrNotOpen
	}
	if d.Ask.Amount > r.Bid.Amount {
		e.mu.Unlock()
		return ErrPriceViolation
	}

	d.State = StateMatched
	r.State = StateMatched
	matchedAt := time.Now()

	e.index.Remove(driverID, d.Loc)
	for otherDriverID := range r.PendingDrivers {
		if otherDriverID == driverID {
			continue
		}
		if other, ok := e.drivers[otherDriverID]; ok {
			delete(other.Inbox, riderID)
		}
	}
	delete(e.drivers, driverID)
	delete(e.riders, riderID)
	e.mu.Unlock()

	evt := MatchEvent{DriverID: driverID, RiderID: riderID, MatchedAt: matchedAt}
	e.publisher.Publish(evt)
	select {
	case e.events <- evt:
	default:
	}
	return nil
}

// DriverCancel transitions an OPEN driver to CANCELLED and scrubs it from
// the spatial index. Riders that still list this driver in their
// pending set self-heal lazily on their next inspection.
func (e *Engine) DriverCancel(driverID types.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return ErrNotRunning
	}
	d, ok := e.drivers[driverID]
	if !ok {
		return ErrUnknownID
	}
	if d.State != StateOpen {
		return ErrNotOpen
	}
	d.State = StateCancelled
	e.index.Remove(driverID, d.Loc)
	delete(e.drivers, driverID)
	return nil
}

// RiderCancel transitions an OPEN rider to CANCELLED and scrubs it from
// every driver inbox it was offered to.
func (e *Engine) RiderCancel(riderID types.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return ErrNotRunning
	}
	r, ok := e.riders[riderID]
	if !ok {
		return ErrUnknownID
	}
	if r.State != StateOpen {
		return ErrNotOpen
	}
	r.State = StateCancelled
	e.scrubRiderLocked(riderID, r)
	delete(e.riders, riderID)
	return nil
}

// scrubRiderLocked removes riderID from every driver inbox listed in its
// pending set. Callers must hold e.mu.
func (e *Engine) scrubRiderLocked(riderID types.ID, r *Rider) {
	for driverID := range r.PendingDrivers {
		if d, ok := e.drivers[driverID]; ok {
			delete(d.Inbox, riderID)
		}
	}
}
