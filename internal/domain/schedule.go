package domain

import "time"

// DailySchedule is one calendar day of a computed trip schedule.
//
// Day numbers are 1..N sequential for driving days; 0 is reserved for
// 34-hour restart days. For non-restart days TotalOnDutyHours +
// TotalOffDutyHours always equals 24. A DailySchedule is immutable planning
// data once produced by the scheduler.
type DailySchedule struct {
	DayNumber         int
	Date              time.Time
	TotalDrivingHours float64
	TotalOnDutyHours  float64
	TotalOffDutyHours float64
	BreaksNeeded      int
	EstimatedDistance float64
	Activities        []Activity
	HOSCompliant      bool
	Violations        []string
	IsRestartDay      bool
}
