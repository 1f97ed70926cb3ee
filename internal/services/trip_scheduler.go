package services

import (
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"fmt"
	"math"
	"time"
)

// durationTolerance guards float comparisons while the remaining driving
// duration is drained day by day.
const durationTolerance = 1e-9

// ScheduleTrip simulates a trip day by day and returns the ordered daily
// schedules that satisfy the HOS limits: restart days whenever the 70-hour
// cycle is exhausted, at most 11 driving hours per day, 30-minute breaks per
// 8 hours of driving, and a nightly off-duty rest.
//
// The computation is pure: startDate anchors the calendar explicitly, so
// identical inputs always produce identical output. Distance is apportioned
// against the original total duration each day, which keeps the hour-to-mile
// mapping stable across the whole trip.
func ScheduleTrip(
	totalDurationHours float64,
	totalDistanceMiles float64,
	cycleUsedAtStart float64,
	startDate time.Time,
) ([]domain.DailySchedule, error) {
	if totalDurationHours <= 0 {
		return nil, fmt.Errorf("schedule trip: total duration must be positive, got %g", totalDurationHours)
	}
	if totalDistanceMiles < 0 {
		return nil, fmt.Errorf("schedule trip: total distance must not be negative, got %g", totalDistanceMiles)
	}
	if cycleUsedAtStart < 0 || cycleUsedAtStart > hos.CycleLimit8Day {
		return nil, fmt.Errorf(
			"schedule trip: cycle used must be within [0, %g], got %g",
			hos.CycleLimit8Day, cycleUsedAtStart,
		)
	}

	// The estimate only bounds the loop; the simulation below is
	// authoritative for the actual day count. The slack covers estimate
	// undershoot from restart interleaving.
	maxDays := 2*estimateDaysNeeded(totalDurationHours, cycleUsedAtStart) + 2

	schedules := make([]domain.DailySchedule, 0, maxDays)
	remainingDuration := totalDurationHours
	currentCycle := cycleUsedAtStart
	currentDate := startDate
	drivingDays := 0

	for day := 0; day < maxDays && remainingDuration > durationTolerance; day++ {
		if hos.NeedsRestart(currentCycle) {
			schedules = append(schedules, buildRestartDay(currentDate))
			currentCycle = 0
			currentDate = currentDate.AddDate(0, 0, 1)
			continue
		}

		availableDriving := math.Min(hos.DailyDrivingLimit, hos.AvailableDrivingTime(currentCycle))
		if availableDriving <= 0 {
			schedules = append(schedules, buildRestartDay(currentDate))
			currentCycle = 0
			currentDate = currentDate.AddDate(0, 0, 1)
			availableDriving = hos.DailyDrivingLimit
		}

		dayDriving := math.Min(availableDriving, remainingDuration)
		dayDistance := (dayDriving / totalDurationHours) * totalDistanceMiles

		drivingDays++
		sched := buildDailySchedule(daySpec{
			dayNumber:     drivingDays,
			date:          currentDate,
			drivingHours:  dayDriving,
			distanceMiles: dayDistance,
			pickup:        drivingDays == 1,
			dropoff:       remainingDuration-dayDriving <= durationTolerance,
		})
		schedules = append(schedules, sched)

		remainingDuration -= dayDriving
		currentCycle += sched.TotalOnDutyHours
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	return schedules, nil
}

// estimateDaysNeeded computes an upper-bound day count for the simulation
// loop: restart days when the cycle is already exhausted, otherwise the
// driving days achievable at the effective daily rate, plus two days when a
// restart will become necessary mid-trip.
func estimateDaysNeeded(totalDurationHours, cycleUsed float64) int {
	if hos.NeedsRestart(cycleUsed) {
		// The 34-hour restart spans two calendar days before driving resumes.
		return 2 + int(math.Ceil(totalDurationHours/hos.DailyDrivingLimit))
	}

	effectiveDailyHours := math.Min(hos.DailyDrivingLimit, hos.AvailableDrivingTime(cycleUsed))
	if effectiveDailyHours <= 0 {
		return 1 + int(math.Ceil(totalDurationHours/hos.DailyDrivingLimit))
	}

	days := int(math.Ceil(totalDurationHours / effectiveDailyHours))
	if cycleUsed+totalDurationHours > hos.CycleLimit8Day {
		days += 2
	}

	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
