// README: Common value objects used across modules.
package types

import "fmt"

// ID is a caller-supplied identifier for a rider or driver.
type ID int64

func (id ID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}
