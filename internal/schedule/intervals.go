package schedule

import "time"

// Default business-hour window used by the broad search and by
// BusinessWindow when callers pass no override.
const (
	DefaultBusinessStartHour = 9
	DefaultBusinessEndHour   = 18
)

// Overlaps reports whether the two intervals intersect. The comparison is
// strict: back-to-back intervals, where one ends exactly when the other
// starts, do not overlap. Both intervals are normalized to UTC before the
// comparison so inputs may carry any location.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	sa, ea := startA.UTC(), endA.UTC()
	sb, eb := startB.UTC(), endB.UTC()
	return sa.Before(eb) && sb.Before(ea)
}

// Slot is a duration-sized candidate window produced by slot generation.
type Slot struct {
	Start time.Time
	End   time.Time
}

// BusinessWindow returns the business-hour window for the calendar day of
// date, in date's location. startHour and endHour use 24-hour local time;
// pass the Default* constants for the standard 09:00–18:00 window.
func BusinessWindow(date time.Time, startHour, endHour int) (time.Time, time.Time) {
	y, m, d := date.Date()
	loc := date.Location()
	start := time.Date(y, m, d, startHour, 0, 0, 0, loc)
	end := time.Date(y, m, d, endHour, 0, 0, 0, loc)
	return start, end
}

// GenerateHourlySlots produces non-overlapping, contiguous duration-sized
// windows inside the business window of date. The cursor starts at
// startHour and advances by the duration; a slot is emitted only when it
// fits entirely before endHour, so there is never a partial trailing slot.
// For 60-minute durations this yields exactly the hour-boundary slots the
// name suggests.
func GenerateHourlySlots(date time.Time, startHour, endHour, durationMinutes int) []Slot {
	if durationMinutes <= 0 || endHour <= startHour {
		return nil
	}

	windowStart, windowEnd := BusinessWindow(date, startHour, endHour)
	duration := time.Duration(durationMinutes) * time.Minute

	var slots []Slot
	for cursor := windowStart; !cursor.Add(duration).After(windowEnd); cursor = cursor.Add(duration) {
		slots = append(slots, Slot{Start: cursor, End: cursor.Add(duration)})
	}
	return slots
}

// ShiftWindow moves a window by delta, preserving its duration.
func ShiftWindow(start, end time.Time, delta time.Duration) (time.Time, time.Time) {
	return start.Add(delta), end.Add(delta)
}

// isWeekend reports whether t falls on a Saturday or Sunday in its location.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// formatWindow renders an interval for human-readable conflict listings.
func formatWindow(start, end time.Time) string {
	return start.Format("2006-01-02 15:04") + " to " + end.Format("2006-01-02 15:04")
}
