// README: Concurrency tests for the driver_accept atomic transition (run
// with -race).
package matching

import (
	"sync"
	"testing"
	"time"

	"matchd/internal/geoindex"
	"matchd/internal/types"
)

// S4 - cancel races accept: exactly one of (cancel succeeds, accept
// rejects) or (accept succeeds, cancel is a no-op) must happen. Never
// both succeed.
func TestConcurrentAcceptVsRiderCancel(t *testing.T) {
	e := New(DefaultConfig(), geoindex.DefaultGrid(43.69), nil, nil)
	_ = e.Start()
	defer e.Stop()

	loc := types.Point{Lat: 43.69, Lon: -79.32}
	_ = e.AddDriver(1, money(10), loc)
	_ = e.AddRider(100, money(20), loc)
	time.Sleep(200 * time.Millisecond)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- e.DriverAccept(1, 100)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- e.RiderCancel(100)
	}()
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 success between accept and cancel, got %d", successes)
	}
}

// Every driver that contends for the same rider must produce exactly one
// winner; the rest must observe a rejection, never a second success.
func TestConcurrentAcceptSameRiderExactlyOneWinner(t *testing.T) {
	e := New(DefaultConfig(), geoindex.DefaultGrid(43.69), nil, nil)
	_ = e.Start()
	defer e.Stop()

	loc := types.Point{Lat: 43.69, Lon: -79.32}
	const numDrivers = 8
	for i := 0; i < numDrivers; i++ {
		_ = e.AddDriver(types.ID(i+1), money(5), loc)
	}
	_ = e.AddRider(100, money(50), loc)
	time.Sleep(200 * time.Millisecond)

	var wg sync.WaitGroup
	errs := make(chan error, numDrivers)
	for i := 0; i < numDrivers; i++ {
		driverID := types.ID(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.DriverAccept(driverID, 100)
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 winning driver, got %d", successes)
	}
}
