package ports

import (
	"context"
	"eld-trip-service/internal/domain"
)

// Port: a boundary for persisting trips with their computed daily schedules
// and reading them back. Implementations must store a trip and its schedules
// atomically.
type TripRepository interface {
	// Persist a trip and its daily schedules in one transaction.
	SaveTrip(ctx context.Context, trip *domain.Trip, schedules []domain.DailySchedule) error

	// Retrieve a single trip by ID; returns ErrTripNotFound when absent.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)

	// Retrieve all trips, most recently created first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)

	// Retrieve the stored daily schedules for a trip, ordered by day, with
	// their duty-status activities.
	ListDailySchedules(ctx context.Context, tripID string) ([]domain.DailySchedule, error)
}
