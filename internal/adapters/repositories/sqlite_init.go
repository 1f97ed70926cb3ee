package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used REAL NOT NULL,
		total_distance REAL NOT NULL,
		estimated_duration REAL NOT NULL,
		total_days INTEGER NOT NULL,
		route_geometry TEXT,
		created_at TEXT NOT NULL
	);
	`

	createDailyLogsQuery := `
	CREATE TABLE IF NOT EXISTS daily_logs (
		log_id INTEGER PRIMARY KEY AUTOINCREMENT,
		trip_id TEXT NOT NULL REFERENCES trips(trip_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		day_number INTEGER NOT NULL,
		log_date TEXT NOT NULL,
		total_driving_hours REAL NOT NULL,
		total_on_duty_hours REAL NOT NULL,
		total_off_duty_hours REAL NOT NULL,
		breaks_needed INTEGER NOT NULL,
		estimated_distance REAL NOT NULL,
		hos_compliant INTEGER NOT NULL,
		violations TEXT NOT NULL DEFAULT '[]',
		is_restart_day INTEGER NOT NULL,
		UNIQUE (trip_id, seq)
	);
	`

	createDutyStatusesQuery := `
	CREATE TABLE IF NOT EXISTS duty_statuses (
		status_id INTEGER PRIMARY KEY AUTOINCREMENT,
		log_id INTEGER NOT NULL REFERENCES daily_logs(log_id) ON DELETE CASCADE,
		status TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_hours REAL NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_duty_statuses_log_id
    ON duty_statuses(log_id);
	`

	statements := []string{
		createTripsQuery,
		createDailyLogsQuery,
		createDutyStatusesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
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
