package repositories

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// Persist a trip with its daily schedules and their duty-status activities
// in a single transaction.
func (s *PostgresTripRepository) SaveTrip(
	ctx context.Context,
	trip *domain.Trip,
	schedules []domain.DailySchedule,
) (err error) {
	defer obs.Time(ctx, "trips.repo.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("save trip: trip must be non-nil")
	}

	geometry, err := json.Marshal(trip.RouteGeometry)
	if err != nil {
		return fmt.Errorf("save trip: encode route geometry: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT INTO trips (
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		estimated_duration,
		total_days,
		route_geometry,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.ExecContext(ctx, insertTrip,
		trip.ID,
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		trip.TotalDistance,
		trip.EstimatedDuration,
		trip.TotalDays,
		geometry,
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip: insert trip %s: %w", trip.ID, err)
	}

	insertLog := `
	INSERT INTO daily_logs (
		trip_id,
		seq,
		day_number,
		log_date,
		total_driving_hours,
		total_on_duty_hours,
		total_off_duty_hours,
		breaks_needed,
		estimated_distance,
		hos_compliant,
		violations,
		is_restart_day
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING log_id;
	`

	insertStatus, err := tx.PrepareContext(ctx, `
	INSERT INTO duty_statuses (
		log_id,
		status,
		start_time,
		end_time,
		duration_hours,
		location,
		description
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("save trip: prepare duty status insert: %w", err)
	}
	defer insertStatus.Close()

	for seq, day := range schedules {
		violations, err := encodeViolations(day.Violations)
		if err != nil {
			return fmt.Errorf("save trip: encode violations seq=%d: %w", seq, err)
		}

		var logID int64
		err = tx.QueryRowContext(ctx, insertLog,
			trip.ID,
			seq,
			day.DayNumber,
			day.Date,
			day.TotalDrivingHours,
			day.TotalOnDutyHours,
			day.TotalOffDutyHours,
			day.BreaksNeeded,
			day.EstimatedDistance,
			day.HOSCompliant,
			violations,
			day.IsRestartDay,
		).Scan(&logID)
		if err != nil {
			return fmt.Errorf("save trip: insert daily log seq=%d: %w", seq, err)
		}

		for _, a := range day.Activities {
			_, err := insertStatus.ExecContext(ctx,
				logID,
				string(a.Status),
				a.StartTime,
				a.EndTime,
				a.DurationHours,
				a.Location,
				a.Description,
			)
			if err != nil {
				return fmt.Errorf("save trip: insert duty status seq=%d: %w", seq, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip: commit tx: %w", err)
	}

	return nil
}

// Retrieve a single trip by ID.
func (s *PostgresTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		estimated_duration,
		total_days,
		route_geometry,
		created_at
	FROM trips
	WHERE trip_id = $1;
	`
	trip, err := scanPGTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	return trip, nil
}

// Retrieve all trips, most recently created first.
func (s *PostgresTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_distance,
		estimated_duration,
		total_days,
		route_geometry,
		created_at
	FROM trips
	ORDER BY created_at DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanPGTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

// Retrieve a trip's stored daily schedules in generation order with their
// duty-status activities.
func (s *PostgresTripRepository) ListDailySchedules(ctx context.Context, tripID string) ([]domain.DailySchedule, error) {
	if s.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}

	logsQuery := `
	SELECT
		log_id,
		day_number,
		log_date,
		total_driving_hours,
		total_on_duty_hours,
		total_off_duty_hours,
		breaks_needed,
		estimated_distance,
		hos_compliant,
		violations,
		is_restart_day
	FROM daily_logs
	WHERE trip_id = $1
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, logsQuery, tripID)
	if err != nil {
		return nil, fmt.Errorf("list daily schedules: query daily_logs table: %w", err)
	}
	defer rows.Close()

	schedules := make([]domain.DailySchedule, 0, 8)
	logIDs := make([]int64, 0, 8)
	for rows.Next() {
		var (
			logID      int64
			day        domain.DailySchedule
			violations []byte
		)
		err := rows.Scan(
			&logID,
			&day.DayNumber,
			&day.Date,
			&day.TotalDrivingHours,
			&day.TotalOnDutyHours,
			&day.TotalOffDutyHours,
			&day.BreaksNeeded,
			&day.EstimatedDistance,
			&day.HOSCompliant,
			&violations,
			&day.IsRestartDay,
		)
		if err != nil {
			return nil, fmt.Errorf("list daily schedules: scan row: %w", err)
		}

		day.Violations, err = decodeViolations(violations)
		if err != nil {
			return nil, fmt.Errorf("list daily schedules: decode violations: %w", err)
		}

		schedules = append(schedules, day)
		logIDs = append(logIDs, logID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list daily schedules: row iteration: %w", err)
	}

	for i, logID := range logIDs {
		activities, err := s.listActivities(ctx, logID)
		if err != nil {
			return nil, fmt.Errorf("list daily schedules: log %d: %w", logID, err)
		}
		schedules[i].Activities = activities
	}

	return schedules, nil
}

func (s *PostgresTripRepository) listActivities(ctx context.Context, logID int64) ([]domain.Activity, error) {
	query := `
	SELECT
		status,
		start_time,
		end_time,
		duration_hours,
		location,
		description
	FROM duty_statuses
	WHERE log_id = $1
	ORDER BY start_time;
	`
	rows, err := s.DB.QueryContext(ctx, query, logID)
	if err != nil {
		return nil, fmt.Errorf("query duty_statuses table: %w", err)
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0, 8)
	for rows.Next() {
		var (
			a      domain.Activity
			status string
		)
		if err := rows.Scan(&status, &a.StartTime, &a.EndTime, &a.DurationHours, &a.Location, &a.Description); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		a.Status = domain.DutyStatus(status)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return activities, nil
}

func scanPGTrip(row rowScanner) (*domain.Trip, error) {
	var (
		trip     domain.Trip
		geometry []byte
	)
	err := row.Scan(
		&trip.ID,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleUsed,
		&trip.TotalDistance,
		&trip.EstimatedDuration,
		&trip.TotalDays,
		&geometry,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(geometry) > 0 && string(geometry) != "null" {
		if err := json.Unmarshal(geometry, &trip.RouteGeometry); err != nil {
			return nil, fmt.Errorf("decode route geometry: %w", err)
		}
	}

	return &trip, nil
}
