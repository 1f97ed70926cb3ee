package routing

import (
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"math"
)

// Assumed highway average when estimating duration without routing data.
const fallbackAverageMPH = 50

// EstimateRoute approximates route totals by summing great-circle leg
// distances and assuming a 50 mph average speed. Used when the directions
// API is unavailable; the geometry degrades to straight lines between stops.
func EstimateRoute(path []domain.Coordinates) ports.RouteResult {
	var miles float64
	for i := 0; i < len(path)-1; i++ {
		miles += path[i].MilesTo(path[i+1])
	}

	hours := miles / fallbackAverageMPH

	return ports.RouteResult{
		DistanceMiles: round2(miles),
		DurationHours: round2(hours),
		FuelStops:     int(math.Ceil(miles / milesPerFuelStop)),
		Geometry:      path,
		AverageSpeed:  fallbackAverageMPH,
	}
}
