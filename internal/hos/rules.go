// Package hos implements the FMCSA Hours of Service limits for
// property-carrying vehicles (49 CFR Part 395, 70-hour/8-day rule) as pure
// functions over fixed constants.
package hos

import (
	"eld-trip-service/internal/domain"
	"fmt"
	"math"
)

// Property-carrying vehicle limits, in hours. These never change at runtime;
// every derived value below is a pure function of its inputs and these
// constants.
const (
	DailyDrivingLimit  = 11.0
	DutyWindowLimit    = 14.0
	CycleLimit7Day     = 60.0
	CycleLimit8Day     = 70.0
	MinBreakDuration   = 0.5
	BreakRequiredAfter = 8.0
	MinOffDuty         = 10.0
	RestartHours       = 34.0
)

// BreaksNeeded returns the number of required 30-minute breaks for the given
// driving hours, approximated at the day level: one break per 8 hours of
// driving accrued.
func BreaksNeeded(drivingHours float64) int {
	if drivingHours <= BreakRequiredAfter {
		return 0
	}
	return int(math.Floor(drivingHours / BreakRequiredAfter))
}

// IsDrivingAllowed reports whether driving additionalHours stays within the
// 70-hour/8-day cycle limit.
func IsDrivingAllowed(cycleUsed, additionalHours float64) bool {
	return cycleUsed+additionalHours <= CycleLimit8Day
}

// AvailableDrivingTime returns the hours remaining in the current 8-day
// cycle, clamped at zero.
func AvailableDrivingTime(cycleUsed float64) float64 {
	return math.Max(0, CycleLimit8Day-cycleUsed)
}

// NeedsRestart reports whether a 34-hour restart is required to reset the
// cycle.
func NeedsRestart(cycleUsed float64) bool {
	return cycleUsed >= CycleLimit8Day
}

// ValidateDailyActivities checks one day's activities against the daily
// driving and duty-window limits. It returns human-readable violation
// strings, empty when compliant. Violations are advisory data and never
// block schedule generation.
func ValidateDailyActivities(activities []domain.Activity) []string {
	var totalDriving, totalOnDuty float64

	for _, a := range activities {
		if a.Status == domain.StatusDriving {
			totalDriving += a.DurationHours
		}
		if a.Status == domain.StatusDriving || a.Status == domain.StatusOnDuty {
			totalOnDuty += a.DurationHours
		}
	}

	var violations []string
	if totalDriving > DailyDrivingLimit {
		violations = append(violations, fmt.Sprintf(
			"Daily driving limit exceeded: %gh > %gh", totalDriving, DailyDrivingLimit))
	}
	if totalOnDuty > DutyWindowLimit {
		violations = append(violations, fmt.Sprintf(
			"Duty window exceeded: %gh > %gh", totalOnDuty, DutyWindowLimit))
	}

	return violations
}
