package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Statements are idempotent so the
// tool can run on every deploy.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS trips (
			trip_id TEXT PRIMARY KEY,
			current_location TEXT NOT NULL,
			pickup_location TEXT NOT NULL,
			dropoff_location TEXT NOT NULL,
			current_cycle_used DOUBLE PRECISION NOT NULL,
			total_distance DOUBLE PRECISION NOT NULL,
			estimated_duration DOUBLE PRECISION NOT NULL,
			total_days INTEGER NOT NULL,
			route_geometry JSONB,
			created_at TIMESTAMPTZ NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS daily_logs (
			log_id BIGSERIAL PRIMARY KEY,
			trip_id TEXT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			day_number INTEGER NOT NULL,
			log_date DATE NOT NULL,
			total_driving_hours DOUBLE PRECISION NOT NULL,
			total_on_duty_hours DOUBLE PRECISION NOT NULL,
			total_off_duty_hours DOUBLE PRECISION NOT NULL,
			breaks_needed INTEGER NOT NULL,
			estimated_distance DOUBLE PRECISION NOT NULL,
			hos_compliant BOOLEAN NOT NULL,
			violations JSONB NOT NULL DEFAULT '[]'::jsonb,
			is_restart_day BOOLEAN NOT NULL,
			UNIQUE (trip_id, seq)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS duty_statuses (
			status_id BIGSERIAL PRIMARY KEY,
			log_id BIGINT NOT NULL REFERENCES daily_logs(log_id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			location TEXT NOT NULL,
			description TEXT NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			address TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_duty_statuses_log_id
		ON duty_statuses(log_id);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
