package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/dayour/Teams-MCP/internal/schedule"
)

// EventSource is the subset of the Client used by the scheduling provider.
// It exists so tests can substitute a fake backend.
type EventSource interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]EventSummary, error)
	QueryFreeBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) ([]FreeBusyInfo, error)
}

// ScheduleProvider adapts a calendar client to the read-only provider
// interface consumed by the conflict detection engine. Attendee identifiers
// are used directly as calendar IDs, which matches how Google Workspace
// exposes user and resource calendars.
type ScheduleProvider struct {
	source EventSource
}

// NewScheduleProvider creates a provider backed by the given event source.
func NewScheduleProvider(source EventSource) *ScheduleProvider {
	return &ScheduleProvider{source: source}
}

// Events returns the attendee's events within the window. Cancelled events
// are dropped; they no longer block the calendar.
func (p *ScheduleProvider) Events(ctx context.Context, attendee string, windowStart, windowEnd time.Time) ([]schedule.Event, error) {
	summaries, err := p.source.ListEvents(ctx, attendee, windowStart, windowEnd, "")
	if err != nil {
		return nil, &schedule.ProviderError{Attendee: attendee, Op: "events", Err: err}
	}

	var events []schedule.Event
	for _, s := range summaries {
		if s.Status == "cancelled" {
			continue
		}
		events = append(events, schedule.Event{
			Start:   s.Start,
			End:     s.End,
			Subject: s.Summary,
		})
	}

	return events, nil
}

// FreeBusy returns the attendee's busy segments within the window. The
// Google freebusy endpoint only reports opaque busy ranges, so every segment
// carries StatusBusy; richer statuses come from the event stream instead.
func (p *ScheduleProvider) FreeBusy(ctx context.Context, attendee string, windowStart, windowEnd time.Time) ([]schedule.BusySegment, error) {
	infos, err := p.source.QueryFreeBusy(ctx, windowStart, windowEnd, []string{attendee})
	if err != nil {
		return nil, &schedule.ProviderError{Attendee: attendee, Op: "freebusy", Err: err}
	}

	var segments []schedule.BusySegment
	for _, info := range infos {
		if info.Calendar != attendee {
			continue
		}
		if len(info.Errors) > 0 {
			return nil, &schedule.ProviderError{
				Attendee: attendee,
				Op:       "freebusy",
				Err:      fmt.Errorf("calendar reported errors: %v", info.Errors),
			}
		}
		for _, busy := range info.Busy {
			segments = append(segments, schedule.BusySegment{
				Status: schedule.StatusBusy,
				Start:  busy.Start,
				End:    busy.End,
			})
		}
	}

	return segments, nil
}
