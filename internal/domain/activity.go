package domain

import "time"

// DutyStatus classifies a driver's activity for ELD log purposes.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "off_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
)

// Activity is one contiguous duty-status interval inside a day.
// Within a day activities are contiguous and non-overlapping in the order
// produced; an activity is owned exclusively by its DailySchedule.
type Activity struct {
	StartTime     time.Time
	EndTime       time.Time
	Status        DutyStatus
	Description   string
	Location      string
	DurationHours float64
}
