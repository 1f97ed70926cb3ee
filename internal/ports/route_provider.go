package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Route totals and geometry between an origin and a destination, possibly
// through via points. Distances are statute miles and durations hours, the
// units the trip scheduler consumes.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64
	FuelStops     int
	Geometry      []domain.Coordinates
	AverageSpeed  float64
}

// Contract for resolving a trip's route distance and duration. The scheduler
// itself never calls this; callers resolve the route first and hand the
// scheduler plain numbers.
type RouteProvider interface {
	// Return route totals for origin -> via... -> destination.
	CalculateRoute(ctx context.Context, origin string, destination string, via []string) (RouteResult, error)
}
