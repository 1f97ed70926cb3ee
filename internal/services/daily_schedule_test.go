package services

import (
	"eld-trip-service/internal/domain"
	"math"
	"testing"
	"time"
)

func TestSplitDrivingTimeNoBreaks(t *testing.T) {
	segments := splitDrivingTime(7.5, 0)
	if len(segments) != 1 || segments[0] != 7.5 {
		t.Fatalf("splitDrivingTime(7.5, 0) = %v, want [7.5]", segments)
	}
}

func TestSplitDrivingTimeEvenSplit(t *testing.T) {
	segments := splitDrivingTime(10, 1)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0] != 5 || segments[1] != 5 {
		t.Errorf("segments = %v, want [5 5]", segments)
	}
}

func TestSplitDrivingTimeRemainderInLastSegment(t *testing.T) {
	cases := []struct {
		total  float64
		breaks int
	}{
		{10, 2},
		{11, 1},
		{9.7, 2},
		{16.55, 2},
	}

	for _, c := range cases {
		segments := splitDrivingTime(c.total, c.breaks)
		if len(segments) != c.breaks+1 {
			t.Fatalf("splitDrivingTime(%g, %d): got %d segments", c.total, c.breaks, len(segments))
		}

		var sum float64
		for _, s := range segments {
			sum += s
		}
		if math.Abs(sum-c.total) > 0.005 {
			t.Errorf("splitDrivingTime(%g, %d): segments %v sum to %g", c.total, c.breaks, segments, sum)
		}

		// All but the last share are equal; the last absorbs the remainder.
		for i := 0; i < len(segments)-1; i++ {
			if segments[i] != segments[0] {
				t.Errorf("splitDrivingTime(%g, %d): segment %d = %g, want %g",
					c.total, c.breaks, i, segments[i], segments[0])
			}
		}
	}
}

func TestBuildDailyScheduleTimeline(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	day := buildDailySchedule(daySpec{
		dayNumber:     1,
		date:          date,
		drivingHours:  9,
		distanceMiles: 480,
		pickup:        true,
	})

	// pre-trip, pickup, drive, break, drive, post-trip, rest
	if len(day.Activities) != 7 {
		t.Fatalf("expected 7 activities, got %d", len(day.Activities))
	}

	first := day.Activities[0]
	wantStart := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	if !first.StartTime.Equal(wantStart) {
		t.Errorf("day starts %v, want %v", first.StartTime, wantStart)
	}
	if first.Status != domain.StatusOnDuty || first.DurationHours != 0.25 {
		t.Errorf("first activity = %s/%g, want on_duty/0.25", first.Status, first.DurationHours)
	}

	statuses := make([]domain.DutyStatus, 0, len(day.Activities))
	for _, a := range day.Activities {
		statuses = append(statuses, a.Status)
	}
	want := []domain.DutyStatus{
		domain.StatusOnDuty,  // pre-trip
		domain.StatusOnDuty,  // pickup
		domain.StatusDriving,
		domain.StatusOffDuty, // 30-minute break
		domain.StatusDriving,
		domain.StatusOnDuty,  // post-trip
		domain.StatusOffDuty, // rest
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("activity %d status = %s, want %s", i, statuses[i], want[i])
		}
	}

	// 9 driving + 0.5 break + 2 pickup/dropoff allowance.
	if day.TotalOnDutyHours != 11.5 {
		t.Errorf("on-duty = %g, want 11.5", day.TotalOnDutyHours)
	}
	if day.TotalOffDutyHours != 12.5 {
		t.Errorf("off-duty = %g, want 12.5", day.TotalOffDutyHours)
	}
}

func TestBuildRestartDay(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day := buildRestartDay(date)

	if !day.IsRestartDay || day.DayNumber != 0 {
		t.Fatalf("restart day = number %d, isRestart %v", day.DayNumber, day.IsRestartDay)
	}
	if day.TotalDrivingHours != 0 || day.TotalOnDutyHours != 0 || day.TotalOffDutyHours != 24 {
		t.Errorf("restart totals = %g/%g/%g, want 0/0/24",
			day.TotalDrivingHours, day.TotalOnDutyHours, day.TotalOffDutyHours)
	}

	a := day.Activities[0]
	if !a.StartTime.Equal(date) {
		t.Errorf("restart starts %v, want midnight %v", a.StartTime, date)
	}
	if !a.EndTime.Equal(date.Add(34 * time.Hour)) {
		t.Errorf("restart ends %v, want %v", a.EndTime, date.Add(34*time.Hour))
	}
	if !day.HOSCompliant {
		t.Error("restart day should be compliant")
	}
}
