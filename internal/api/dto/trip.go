package dto

import "time"

type CalculateTripRequest struct {
	CurrentLocation  string     `json:"current_location"`
	PickupLocation   string     `json:"pickup_location"`
	DropoffLocation  string     `json:"dropoff_location"`
	CurrentCycleUsed float64    `json:"current_cycle_used"`
	DepartAt         *time.Time `json:"depart_at"`
}

type ActivityResponse struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	DurationHours float64   `json:"duration_hours"`
}

type DailyScheduleResponse struct {
	DayNumber         int                `json:"day_number"`
	Date              string             `json:"date"`
	TotalDrivingHours float64            `json:"total_driving_hours"`
	TotalOnDutyHours  float64            `json:"total_on_duty_hours"`
	TotalOffDutyHours float64            `json:"total_off_duty_hours"`
	BreaksNeeded      int                `json:"breaks_needed"`
	EstimatedDistance float64            `json:"estimated_distance"`
	Activities        []ActivityResponse `json:"activities"`
	HOSCompliant      bool               `json:"hos_compliant"`
	IsRestartDay      bool               `json:"is_restart_day"`
}

type TripResponse struct {
	TripID            string    `json:"trip_id"`
	CurrentLocation   string    `json:"current_location"`
	PickupLocation    string    `json:"pickup_location"`
	DropoffLocation   string    `json:"dropoff_location"`
	CurrentCycleUsed  float64   `json:"current_cycle_used"`
	TotalDistance     float64   `json:"total_distance"`
	EstimatedDuration float64   `json:"estimated_duration"`
	TotalDays         int       `json:"total_days"`
	CreatedAt         time.Time `json:"created_at"`
}

type RouteResponse struct {
	DistanceMiles float64     `json:"distance_miles"`
	DurationHours float64     `json:"duration_hours"`
	FuelStops     int         `json:"fuel_stops"`
	AverageSpeed  float64     `json:"average_speed"`
	Geometry      [][]float64 `json:"geometry"`
}

type CalculateTripResponse struct {
	Trip           TripResponse            `json:"trip"`
	Route          RouteResponse           `json:"route"`
	DailySchedules []DailyScheduleResponse `json:"daily_schedules"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

type TripLogsResponse struct {
	TripID         string                  `json:"trip_id"`
	DailySchedules []DailyScheduleResponse `json:"daily_schedules"`
	Compliance     ComplianceSummary       `json:"compliance"`
}

type ComplianceSummary struct {
	IsCompliant   bool     `json:"is_compliant"`
	CycleUsedEnd  float64  `json:"cycle_used_end"`
	ViolationDays []int    `json:"violation_days"`
	Violations    []string `json:"violations"`
}
