package schedule

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func window(hour, min, durationMinutes int) (time.Time, time.Time) {
	start := time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
	return start, start.Add(time.Duration(durationMinutes) * time.Minute)
}

func TestDetect_OverlappingEvent(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addEvent("a@x.com", "Design review", start.Add(30*time.Minute), end.Add(30*time.Minute))

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	if len(report.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, expected 1", len(report.Conflicts))
	}
	c := report.Conflicts[0]
	if c.Attendee != "a@x.com" || c.Kind != ConflictOverlappingMeeting || c.Detail != "Design review" {
		t.Errorf("unexpected conflict: %+v", c)
	}
}

func TestDetect_BackToBackEventIsNotAConflict(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addEvent("a@x.com", "Earlier meeting", start.Add(-time.Hour), start)
	provider.addEvent("a@x.com", "Later meeting", end, end.Add(time.Hour))

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if report.HasConflicts() {
		t.Errorf("back-to-back events should not conflict, got %v", report.Conflicts)
	}
}

func TestDetect_BusyStatusConflict(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addBusy("a@x.com", StatusTentative, start, end)

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	if len(report.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, expected 1", len(report.Conflicts))
	}
	if report.Conflicts[0].Kind != ConflictBusyStatus || report.Conflicts[0].Detail != "tentative" {
		t.Errorf("unexpected conflict: %+v", report.Conflicts[0])
	}
}

func TestDetect_OrderingIsDeterministic(t *testing.T) {
	// Per attendee: event conflicts before busy-status conflicts. Across
	// attendees: input order, regardless of goroutine completion order.
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addBusy("b@x.com", StatusBusy, start, end)
	provider.addEvent("b@x.com", "Standup", start, end)
	provider.addEvent("a@x.com", "1:1", start, end)

	detector := NewDetector(provider, nil)
	req := SchedulingRequest{
		Attendees:     []string{"b@x.com", "a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	}

	for i := 0; i < 20; i++ {
		report, err := detector.Detect(context.Background(), req)
		if err != nil {
			t.Fatalf("Detect() error: %v", err)
		}

		var got []string
		for _, c := range report.Conflicts {
			got = append(got, c.Attendee+"/"+string(c.Kind))
		}
		expected := []string{
			"b@x.com/overlapping-meeting",
			"b@x.com/busy-status",
			"a@x.com/overlapping-meeting",
		}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("iteration %d: conflict order = %v, expected %v", i, got, expected)
		}
	}
}

func TestDetect_AttendeeIsolation(t *testing.T) {
	// One broken attendee out of three must not abort detection.
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addEvent("a@x.com", "Planning", start, end)
	provider.breakAttendee("b@x.com")
	provider.addEvent("c@x.com", "Retro", start, end)

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"a@x.com", "b@x.com", "c@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	if len(report.Conflicts) != 2 {
		t.Fatalf("got %d conflicts, expected 2 (a and c)", len(report.Conflicts))
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("got %d warnings, expected 1", len(report.Warnings))
	}
	if report.Warnings[0].Attendee != "b@x.com" {
		t.Errorf("warning names %s, expected b@x.com", report.Warnings[0].Attendee)
	}

	var provErr *ProviderError
	if !errors.As(report.Warnings[0].Err, &provErr) {
		t.Errorf("warning error should be a *ProviderError, got %T", report.Warnings[0].Err)
	}
}

func TestDetect_NoConflictsForFreeAttendee(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"free@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if report.HasConflicts() || len(report.Warnings) != 0 {
		t.Errorf("expected a clean report, got %+v", report)
	}
}

func TestDetect_Idempotent(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addEvent("a@x.com", "Sync", start, end)
	provider.addBusy("a@x.com", StatusBusy, start, end)

	detector := NewDetector(provider, nil)
	req := SchedulingRequest{
		Attendees:     []string{"a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	}

	first, err := detector.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	second, err := detector.Detect(context.Background(), req)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	if !reflect.DeepEqual(first.Conflicts, second.Conflicts) {
		t.Errorf("detection is not idempotent: %v vs %v", first.Conflicts, second.Conflicts)
	}
}

func TestDetect_DuplicateAttendeesProduceDuplicateConflicts(t *testing.T) {
	provider := newFakeProvider()
	start, end := window(14, 0, 60)
	provider.addEvent("a@x.com", "Sync", start, end)

	detector := NewDetector(provider, nil)
	report, err := detector.Detect(context.Background(), SchedulingRequest{
		Attendees:     []string{"a@x.com", "a@x.com"},
		ProposedStart: start,
		ProposedEnd:   end,
	})
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if len(report.Conflicts) != 2 {
		t.Errorf("got %d conflicts, expected 2 (dedup is the caller's job)", len(report.Conflicts))
	}
}

func TestDetect_InvalidRequests(t *testing.T) {
	provider := newFakeProvider()
	detector := NewDetector(provider, nil)
	start, end := window(14, 0, 60)

	tests := []struct {
		name string
		req  SchedulingRequest
	}{
		{"no attendees", SchedulingRequest{ProposedStart: start, ProposedEnd: end}},
		{"empty attendee", SchedulingRequest{Attendees: []string{""}, ProposedStart: start, ProposedEnd: end}},
		{"end before start", SchedulingRequest{Attendees: []string{"a@x.com"}, ProposedStart: end, ProposedEnd: start}},
		{"zero duration", SchedulingRequest{Attendees: []string{"a@x.com"}, ProposedStart: start, ProposedEnd: start}},
		{"zero times", SchedulingRequest{Attendees: []string{"a@x.com"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := provider.calls
			_, err := detector.Detect(context.Background(), tt.req)

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected *RequestError, got %v", err)
			}
			if provider.calls != before {
				t.Error("invalid request must be rejected before any provider call")
			}
		})
	}
}
