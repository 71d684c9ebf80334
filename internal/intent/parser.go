package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type classifies what the user is asking the assistant to do.
type Type string

const (
	TypeScheduleMeeting   Type = "schedule-meeting"
	TypeCheckAvailability Type = "check-availability"
	TypeResolveConflict   Type = "resolve-conflict"
	TypeSuggestTimes      Type = "suggest-times"
	TypeCancelMeeting     Type = "cancel-meeting"
	TypeUnknown           Type = "unknown"
)

// Parsed is the structured result of running the extractor over free text.
// Zero values mean the corresponding entity was not found; the caller decides
// which entities are required for its operation.
type Parsed struct {
	Type      Type
	Attendees []string

	// DurationMinutes is the requested meeting length; 0 when absent.
	DurationMinutes int

	// Day is the resolved calendar day when the text carried a date hint
	// (today, tomorrow, a weekday name). Zero when absent.
	Day time.Time

	// StartHour and StartMinute hold a clock-time hint; StartHour is -1 when
	// no time was found.
	StartHour   int
	StartMinute int

	// Directive is the conflict resolution directive implied by the text
	// (offset, next-day, find-alternatives, force); empty when absent.
	Directive string
}

// HasTime reports whether a clock-time hint was extracted.
func (p Parsed) HasTime() bool {
	return p.StartHour >= 0
}

// Window turns the extracted day, time and duration hints into a concrete
// proposed window. The boolean is false when the hints are insufficient.
func (p Parsed) Window() (start, end time.Time, ok bool) {
	if p.Day.IsZero() || !p.HasTime() || p.DurationMinutes <= 0 {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(p.Day.Year(), p.Day.Month(), p.Day.Day(), p.StartHour, p.StartMinute, 0, 0, p.Day.Location())
	end = start.Add(time.Duration(p.DurationMinutes) * time.Minute)
	return start, end, true
}

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	minutesPattern  = regexp.MustCompile(`(?i)\b(\d+)\s*(?:minutes?|mins?)\b`)
	hoursPattern    = regexp.MustCompile(`(?i)\b(\d+(?:\.5)?)\s*(?:hours?|hrs?)\b`)
	clockPattern    = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	weekdayPattern  = regexp.MustCompile(`(?i)\b(?:on\s+|next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	tomorrowPattern = regexp.MustCompile(`(?i)\btomorrow\b`)
	todayPattern    = regexp.MustCompile(`(?i)\btoday\b`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parse extracts scheduling entities from free text. The reference time now
// anchors relative date expressions such as "tomorrow" or weekday names.
func Parse(text string, now time.Time) Parsed {
	parsed := Parsed{
		Type:      classify(text),
		StartHour: -1,
	}

	parsed.Attendees = emailPattern.FindAllString(text, -1)
	parsed.DurationMinutes = extractDuration(text)
	parsed.Day = extractDay(text, now)
	parsed.StartHour, parsed.StartMinute = extractClockTime(text)
	parsed.Directive = extractDirective(text)

	return parsed
}

func classify(text string) Type {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "cancel", "call off", "delete the meeting"):
		return TypeCancelMeeting
	case containsAny(lower, "suggest", "best time", "optimal time", "good time"):
		return TypeSuggestTimes
	case containsAny(lower, "reschedule", "resolve", "move the meeting", "push the meeting"):
		return TypeResolveConflict
	case containsAny(lower, "available", "availability", "free", "busy"):
		return TypeCheckAvailability
	case containsAny(lower, "schedule", "book", "set up", "arrange", "meeting with"):
		return TypeScheduleMeeting
	}
	return TypeUnknown
}

func extractDuration(text string) int {
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int(v * 60)
		}
	}
	return 0
}

func extractDay(text string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if tomorrowPattern.MatchString(text) {
		return today.AddDate(0, 0, 1)
	}
	if todayPattern.MatchString(text) {
		return today
	}
	if m := weekdayPattern.FindStringSubmatch(text); m != nil {
		target := weekdays[strings.ToLower(m[1])]
		day := today.AddDate(0, 0, 1)
		for day.Weekday() != target {
			day = day.AddDate(0, 0, 1)
		}
		return day
	}
	return time.Time{}
}

func extractClockTime(text string) (hour, minute int) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return -1, 0
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return -1, 0
	}
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return -1, 0
		}
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour, minute
}

func extractDirective(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "force", "book anyway", "book it anyway", "double-book"):
		return "force"
	case containsAny(lower, "alternative", "other time", "other options", "find a time", "find another"):
		return "find-alternatives"
	case tomorrowPattern.MatchString(lower) && containsAny(lower, "move", "push", "reschedule", "shift"):
		return "next-day"
	case containsAny(lower, "push", "move", "shift", "later", "delay"):
		return "offset"
	}
	return ""
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
