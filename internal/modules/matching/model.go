// README: Rider/Driver aggregates and the matching engine's tuning.
package matching

import (
	"time"

	"matchd/internal/types"
)

// State is the lifecycle of a Rider or Driver. Both share the same shape:
// OPEN is the only non-terminal state.
type State int

const (
	StateOpen State = iota
	StateMatched
	StateCancelled
	StateTimeout
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateMatched:
		return "matched"
	case StateCancelled:
		return "cancelled"
	case StateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Rider is a ride request awaiting a driver.
type Rider struct {
	ID       types.ID
	Bid      types.Money
	Loc      types.Point
	State    State
	PostTime time.Time

	// PendingDrivers is the set of driver ids currently holding an offer
	// for this rider.
	PendingDrivers map[types.ID]struct{}
}

// Driver is a driver available to accept a ride.
type Driver struct {
	ID    types.ID
	Ask   types.Money
	Loc   types.Point
	State State

	// Inbox is the set of rider ids currently offering to this driver.
	Inbox map[types.ID]struct{}
}

// MatchEvent is emitted once per successful driver_accept.
type MatchEvent struct {
	DriverID  types.ID
	RiderID   types.ID
	MatchedAt time.Time
}

// Config tunes the matching engine. Field names mirror the tuning
// constants: K offers per rider, a rider timeout T, a candidate search
// ring, a timeout scan interval, and a matching worker pool size.
type Config struct {
	Workers             int
	OffersPerRider      int
	CandidateRing       int
	RiderTimeout        time.Duration
	TimeoutScanInterval time.Duration
	QueueCapacity       int
}

// DefaultConfig returns the recommended tuning.
func DefaultConfig() Config {
	return Config{
		Workers:             4,
		OffersPerRider:      5,
		CandidateRing:       1,
		RiderTimeout:        300 * time.Second,
		TimeoutScanInterval: time.Second,
		QueueCapacity:       4096,
	}
}
