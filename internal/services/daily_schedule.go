package services

import (
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"fmt"
	"time"
)

// Local anchor for the start of a driving day.
const dayStartHour = 6

type daySpec struct {
	dayNumber     int
	date          time.Time
	drivingHours  float64
	distanceMiles float64
	pickup        bool
	dropoff       bool
}

// buildDailySchedule constructs one driving day's activity timeline:
// pre-trip inspection, optional pickup, driving segments interleaved with
// 30-minute breaks, optional dropoff, post-trip inspection, and the off-duty
// rest period. Activities are contiguous from the 06:00 anchor.
func buildDailySchedule(s daySpec) domain.DailySchedule {
	breaks := hos.BreaksNeeded(s.drivingHours)

	// Day totals are derived, not tracked: driving plus break time, plus two
	// on-duty hours on a pickup/dropoff day.
	totalOnDuty := s.drivingHours + float64(breaks)*hos.MinBreakDuration
	if s.pickup || s.dropoff {
		totalOnDuty += 2
	}

	dayStart := startOfDay(s.date)
	current := dayStart.Add(dayStartHour * time.Hour)
	activities := make([]domain.Activity, 0, 2*breaks+6)

	current = appendActivity(&activities, current, 15*time.Minute, domain.StatusOnDuty,
		"Pre-trip inspection and vehicle check", "Terminal/Start Location")

	if s.pickup {
		current = appendActivity(&activities, current, time.Hour, domain.StatusOnDuty,
			"Loading and paperwork at pickup location", "Pickup Location")
	}

	segments := splitDrivingTime(s.drivingHours, breaks)
	for i, segment := range segments {
		current = appendActivity(&activities, current, hoursToDuration(segment), domain.StatusDriving,
			fmt.Sprintf("Driving segment %d", i+1),
			fmt.Sprintf("Route - approx %d miles", i*200))

		// Break between segments, never after the last one.
		if i < len(segments)-1 {
			current = appendActivity(&activities, current, 30*time.Minute, domain.StatusOffDuty,
				"30-minute break as required by HOS", "Rest area/truck stop")
		}
	}

	if s.dropoff {
		current = appendActivity(&activities, current, time.Hour, domain.StatusOnDuty,
			"Unloading and paperwork at destination", "Dropoff Location")
	}

	current = appendActivity(&activities, current, 15*time.Minute, domain.StatusOnDuty,
		"Post-trip inspection and documentation", "Destination/Terminal")

	// Off-duty rest: 10 hours, clamped to midnight when it would cross into
	// the next calendar day.
	offStart := current
	offEnd := offStart.Add(time.Duration(hos.MinOffDuty) * time.Hour)
	if nextMidnight := dayStart.AddDate(0, 0, 1); offEnd.After(nextMidnight) {
		offEnd = nextMidnight
	}
	activities = append(activities, domain.Activity{
		StartTime:     offStart,
		EndTime:       offEnd,
		Status:        domain.StatusOffDuty,
		Description:   "10-hour off-duty period as required by HOS",
		Location:      "Hotel/rest area",
		DurationHours: round2(offEnd.Sub(offStart).Hours()),
	})

	violations := hos.ValidateDailyActivities(activities)

	onDuty := round2(totalOnDuty)
	return domain.DailySchedule{
		DayNumber:         s.dayNumber,
		Date:              dayStart,
		TotalDrivingHours: round2(s.drivingHours),
		TotalOnDutyHours:  onDuty,
		TotalOffDutyHours: 24 - onDuty,
		BreaksNeeded:      breaks,
		EstimatedDistance: round2(s.distanceMiles),
		Activities:        activities,
		HOSCompliant:      len(violations) == 0,
		Violations:        violations,
	}
}

// buildRestartDay constructs the degenerate schedule for a 34-hour restart:
// day number 0, no driving, a single off-duty activity spanning the restart
// from midnight.
func buildRestartDay(date time.Time) domain.DailySchedule {
	dayStart := startOfDay(date)

	restart := domain.Activity{
		StartTime:     dayStart,
		EndTime:       dayStart.Add(time.Duration(hos.RestartHours) * time.Hour),
		Status:        domain.StatusOffDuty,
		Description:   "34-hour restart period to reset 70-hour cycle",
		Location:      "Home terminal/rest area",
		DurationHours: hos.RestartHours,
	}

	return domain.DailySchedule{
		DayNumber:         0,
		Date:              dayStart,
		TotalOffDutyHours: 24,
		Activities:        []domain.Activity{restart},
		HOSCompliant:      true,
		IsRestartDay:      true,
	}
}

// splitDrivingTime divides a day's driving into breaksNeeded+1 near-equal
// segments. Each share is rounded to two decimals; the rounding remainder is
// absorbed entirely by the last segment so the sum stays exact.
func splitDrivingTime(totalDriving float64, breaksNeeded int) []float64 {
	if breaksNeeded == 0 {
		return []float64{totalDriving}
	}

	count := breaksNeeded + 1
	base := round2(totalDriving / float64(count))

	segments := make([]float64, count)
	for i := range segments {
		segments[i] = base
	}
	segments[count-1] = round2(totalDriving - base*float64(count-1))

	return segments
}

func appendActivity(
	activities *[]domain.Activity,
	start time.Time,
	length time.Duration,
	status domain.DutyStatus,
	description string,
	location string,
) time.Time {
	end := start.Add(length)
	*activities = append(*activities, domain.Activity{
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		Description:   description,
		Location:      location,
		DurationHours: round2(length.Hours()),
	})
	return end
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
