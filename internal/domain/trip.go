package domain

import "time"

// Trip is the persisted aggregate for one calculated trip: the requested
// locations, the driver's cycle usage at departure, and the route totals the
// schedule was generated from. The daily schedules themselves are stored as
// daily logs with duty-status rows and reconstructed on read.
type Trip struct {
	ID                string
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleUsed  float64
	TotalDistance     float64
	EstimatedDuration float64
	TotalDays         int
	RouteGeometry     []Coordinates
	CreatedAt         time.Time
}
