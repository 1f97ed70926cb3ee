package services

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/ports"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTripRequest marks validation failures the HTTP layer should map
// to a 400 response.
var ErrInvalidTripRequest = errors.New("invalid trip request")

type CalculateTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	DepartAt         time.Time
}

// CalculateTripResult bundles the persisted trip with the route totals and
// the generated daily schedules.
type CalculateTripResult struct {
	Trip      *domain.Trip
	Route     ports.RouteResult
	Schedules []domain.DailySchedule
}

// CalculateTrip resolves the route for current -> pickup -> dropoff, runs
// the HOS scheduler over its totals, and persists the trip with its daily
// schedules. The route provider is the only external input to the pure
// scheduling step.
func CalculateTrip(
	ctx context.Context,
	req CalculateTripRequest,
	repo ports.TripRepository,
	provider ports.RouteProvider,
) (*CalculateTripResult, error) {
	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		return nil, fmt.Errorf("%w: current, pickup and dropoff locations must be non-empty", ErrInvalidTripRequest)
	}
	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > hos.CycleLimit8Day {
		return nil, fmt.Errorf(
			"%w: current cycle used must be within [0, %g], got %g",
			ErrInvalidTripRequest, hos.CycleLimit8Day, req.CurrentCycleUsed,
		)
	}

	route, err := provider.CalculateRoute(ctx, current, dropoff, []string{pickup})
	if err != nil {
		return nil, fmt.Errorf("calculate trip: resolve route %q -> %q: %w", current, dropoff, err)
	}
	if route.DurationHours <= 0 {
		return nil, fmt.Errorf("calculate trip: route returned non-positive duration %g", route.DurationHours)
	}

	schedules, err := ScheduleTrip(route.DurationHours, route.DistanceMiles, req.CurrentCycleUsed, req.DepartAt)
	if err != nil {
		return nil, fmt.Errorf("calculate trip: %w", err)
	}

	trip := &domain.Trip{
		ID:                uuid.NewString(),
		CurrentLocation:   current,
		PickupLocation:    pickup,
		DropoffLocation:   dropoff,
		CurrentCycleUsed:  req.CurrentCycleUsed,
		TotalDistance:     route.DistanceMiles,
		EstimatedDuration: route.DurationHours,
		TotalDays:         len(schedules),
		RouteGeometry:     route.Geometry,
		CreatedAt:         time.Now().UTC(),
	}

	if err := repo.SaveTrip(ctx, trip, schedules); err != nil {
		return nil, fmt.Errorf("calculate trip: save trip %s: %w", trip.ID, err)
	}

	return &CalculateTripResult{
		Trip:      trip,
		Route:     route,
		Schedules: schedules,
	}, nil
}
