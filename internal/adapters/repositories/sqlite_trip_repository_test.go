package repositories

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"errors"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *SqliteTripRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	return NewSqliteTripRepository(db)
}

func testTrip(id string, createdAt time.Time) *domain.Trip {
	return &domain.Trip{
		ID:                id,
		CurrentLocation:   "Chicago, IL",
		PickupLocation:    "Indianapolis, IN",
		DropoffLocation:   "Atlanta, GA",
		CurrentCycleUsed:  10,
		TotalDistance:     1000,
		EstimatedDuration: 20,
		TotalDays:         2,
		RouteGeometry: []domain.Coordinates{
			{Lon: -87.63, Lat: 41.88},
			{Lon: -84.39, Lat: 33.75},
		},
		CreatedAt: createdAt,
	}
}

func testSchedules(start time.Time) []domain.DailySchedule {
	day1 := start.Truncate(24 * time.Hour)
	return []domain.DailySchedule{
		{
			DayNumber:         1,
			Date:              day1,
			TotalDrivingHours: 11,
			TotalOnDutyHours:  13.5,
			TotalOffDutyHours: 10.5,
			BreaksNeeded:      1,
			EstimatedDistance: 550,
			HOSCompliant:      true,
			Activities: []domain.Activity{
				{
					StartTime:     day1.Add(6 * time.Hour),
					EndTime:       day1.Add(6*time.Hour + 15*time.Minute),
					Status:        domain.StatusOnDuty,
					Description:   "Pre-trip inspection and vehicle check",
					Location:      "Terminal/Start Location",
					DurationHours: 0.25,
				},
				{
					StartTime:     day1.Add(6*time.Hour + 15*time.Minute),
					EndTime:       day1.Add(11*time.Hour + 45*time.Minute),
					Status:        domain.StatusDriving,
					Description:   "Driving segment 1",
					Location:      "Route - approx 0 miles",
					DurationHours: 5.5,
				},
			},
		},
		{
			DayNumber:         2,
			Date:              day1.AddDate(0, 0, 1),
			TotalDrivingHours: 12,
			TotalOnDutyHours:  14.5,
			TotalOffDutyHours: 9.5,
			BreaksNeeded:      1,
			EstimatedDistance: 450,
			HOSCompliant:      false,
			Violations: []string{
				"Daily driving limit exceeded: 12h > 11h",
				"Duty window exceeded: 14.5h > 14h",
			},
		},
	}
}

func TestSaveAndGetTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	trip := testTrip("trip-1", createdAt)

	if err := repo.SaveTrip(ctx, trip, testSchedules(createdAt)); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	got, err := repo.GetTrip(ctx, "trip-1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}

	if got.ID != trip.ID || got.DropoffLocation != trip.DropoffLocation {
		t.Fatalf("got trip %+v, want %+v", got, trip)
	}
	if got.TotalDistance != 1000 || got.EstimatedDuration != 20 || got.TotalDays != 2 {
		t.Fatalf("trip totals = (%g, %g, %d), want (1000, 20, 2)",
			got.TotalDistance, got.EstimatedDuration, got.TotalDays)
	}
	if len(got.RouteGeometry) != 2 || got.RouteGeometry[0].Lat != 41.88 {
		t.Fatalf("route geometry round trip failed: %+v", got.RouteGeometry)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, createdAt)
	}
}

func TestGetTripNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetTrip(context.Background(), "missing")
	if !errors.Is(err, ports.ErrTripNotFound) {
		t.Fatalf("err = %v, want ErrTripNotFound", err)
	}
}

func TestListTripsOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"older", "newer"} {
		trip := testTrip(id, base.Add(time.Duration(i)*time.Hour))
		if err := repo.SaveTrip(ctx, trip, nil); err != nil {
			t.Fatalf("SaveTrip %s: %v", id, err)
		}
	}

	trips, err := repo.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(trips))
	}
	if trips[0].ID != "newer" || trips[1].ID != "older" {
		t.Fatalf("order = [%s, %s], want [newer, older]", trips[0].ID, trips[1].ID)
	}
}

func TestListDailySchedulesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	trip := testTrip("trip-1", createdAt)
	saved := testSchedules(createdAt)

	if err := repo.SaveTrip(ctx, trip, saved); err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	got, err := repo.ListDailySchedules(ctx, "trip-1")
	if err != nil {
		t.Fatalf("ListDailySchedules: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d schedules, want 2", len(got))
	}

	if got[0].DayNumber != 1 || got[1].DayNumber != 2 {
		t.Fatalf("day numbers = %d, %d, want 1, 2", got[0].DayNumber, got[1].DayNumber)
	}
	if got[0].TotalDrivingHours != 11 || got[0].BreaksNeeded != 1 {
		t.Fatalf("day 1 = %+v, want 11h driving with 1 break", got[0])
	}
	if !got[0].HOSCompliant {
		t.Fatal("day 1 should be compliant")
	}
	if len(got[0].Violations) != 0 {
		t.Fatalf("day 1 violations = %v, want none", got[0].Violations)
	}
	if got[1].HOSCompliant {
		t.Fatal("day 2 should not be compliant")
	}
	if !reflect.DeepEqual(got[1].Violations, saved[1].Violations) {
		t.Fatalf("day 2 violations = %v, want %v", got[1].Violations, saved[1].Violations)
	}

	acts := got[0].Activities
	if len(acts) != 2 {
		t.Fatalf("day 1 has %d activities, want 2", len(acts))
	}
	if acts[0].Status != domain.StatusOnDuty || acts[1].Status != domain.StatusDriving {
		t.Fatalf("activity statuses = %s, %s", acts[0].Status, acts[1].Status)
	}
	if !acts[1].StartTime.Equal(saved[0].Activities[1].StartTime) {
		t.Fatalf("activity start = %v, want %v", acts[1].StartTime, saved[0].Activities[1].StartTime)
	}
	if len(got[1].Activities) != 0 {
		t.Fatalf("day 2 has %d activities, want 0", len(got[1].Activities))
	}
}
