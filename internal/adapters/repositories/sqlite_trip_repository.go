package repositories

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const logDateLayout = "2006-01-02"

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Persist a trip with its daily schedules and their duty-status activities
// in a single transaction.
func (s *SqliteTripRepository) SaveTrip(
	ctx context.Context,
	trip *domain.Trip,
	schedules []domain.DailySchedule,
) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
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
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
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
		string(geometry),
		trip.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save trip: insert trip %s: %w", trip.ID, err)
	}

	insertLog, err := tx.PrepareContext(ctx, `
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
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save trip: prepare daily log insert: %w", err)
	}
	defer insertLog.Close()

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
	VALUES (?, ?, ?, ?, ?, ?, ?);
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

		res, err := insertLog.ExecContext(ctx,
			trip.ID,
			seq,
			day.DayNumber,
			day.Date.Format(logDateLayout),
			day.TotalDrivingHours,
			day.TotalOnDutyHours,
			day.TotalOffDutyHours,
			day.BreaksNeeded,
			day.EstimatedDistance,
			day.HOSCompliant,
			violations,
			day.IsRestartDay,
		)
		if err != nil {
			return fmt.Errorf("save trip: insert daily log seq=%d: %w", seq, err)
		}

		logID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("save trip: daily log id seq=%d: %w", seq, err)
		}

		for _, a := range day.Activities {
			_, err := insertStatus.ExecContext(ctx,
				logID,
				string(a.Status),
				a.StartTime.Format(time.RFC3339Nano),
				a.EndTime.Format(time.RFC3339Nano),
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
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
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
	WHERE trip_id = ?;
	`
	trip, err := scanTrip(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	return trip, nil
}

// Retrieve all trips, most recently created first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
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
		trip, err := scanTrip(rows)
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
func (s *SqliteTripRepository) ListDailySchedules(ctx context.Context, tripID string) ([]domain.DailySchedule, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
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
	WHERE trip_id = ?
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
			logDate    string
			violations string
		)
		err := rows.Scan(
			&logID,
			&day.DayNumber,
			&logDate,
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

		day.Date, err = time.Parse(logDateLayout, logDate)
		if err != nil {
			return nil, fmt.Errorf("list daily schedules: parse log date %q: %w", logDate, err)
		}

		day.Violations, err = decodeViolations([]byte(violations))
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

func (s *SqliteTripRepository) listActivities(ctx context.Context, logID int64) ([]domain.Activity, error) {
	query := `
	SELECT
		status,
		start_time,
		end_time,
		duration_hours,
		location,
		description
	FROM duty_statuses
	WHERE log_id = ?
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
			a          domain.Activity
			status     string
			start, end string
		)
		if err := rows.Scan(&status, &start, &end, &a.DurationHours, &a.Location, &a.Description); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		a.Status = domain.DutyStatus(status)
		if a.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, fmt.Errorf("parse start time %q: %w", start, err)
		}
		if a.EndTime, err = time.Parse(time.RFC3339Nano, end); err != nil {
			return nil, fmt.Errorf("parse end time %q: %w", end, err)
		}

		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return activities, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Violation strings are stored as a JSON array per daily log. A nil slice
// and an empty array mean the same thing on read.
func encodeViolations(violations []string) (string, error) {
	if len(violations) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(violations)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeViolations(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "[]" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var (
		trip      domain.Trip
		geometry  sql.NullString
		createdAt string
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
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if geometry.Valid && geometry.String != "" && geometry.String != "null" {
		if err := json.Unmarshal([]byte(geometry.String), &trip.RouteGeometry); err != nil {
			return nil, fmt.Errorf("decode route geometry: %w", err)
		}
	}

	trip.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return &trip, nil
}
