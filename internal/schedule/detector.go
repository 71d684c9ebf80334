package schedule

import (
	"context"
	"sync"

	"github.com/dayour/Teams-MCP/internal/logging"
)

// Detector finds collisions between a proposed meeting window and the
// existing commitments of each attendee.
type Detector struct {
	provider Provider
	logger   logging.Logger
}

// NewDetector creates a Detector reading calendar state through provider.
// If logger is nil, a default slog-backed logger is used.
func NewDetector(provider Provider, logger logging.Logger) *Detector {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Detector{provider: provider, logger: logger}
}

// attendeeResult holds the per-attendee outcome of the concurrent fan-out.
// Results are collected by index and flattened in request order so the
// final report is deterministic regardless of completion order.
type attendeeResult struct {
	conflicts []Conflict
	warning   *AttendeeWarning
}

// Detect returns every conflict between the request and current calendar
// state. Lookups fan out concurrently per attendee; a failed lookup skips
// that attendee and is surfaced as a warning rather than aborting detection,
// since partial information is better than none.
//
// Conflicts for a given attendee are reported with event conflicts first,
// then busy-status conflicts; across attendees the report follows the input
// attendee order. Only an invalid request produces a non-nil error.
func (d *Detector) Detect(ctx context.Context, req SchedulingRequest) (ConflictReport, error) {
	if err := req.Validate(); err != nil {
		return ConflictReport{}, err
	}

	results := make([]attendeeResult, len(req.Attendees))

	var wg sync.WaitGroup
	for i, attendee := range req.Attendees {
		wg.Add(1)
		go func(idx int, who string) {
			defer wg.Done()
			results[idx] = d.checkAttendee(ctx, req, who)
		}(i, attendee)
	}
	wg.Wait()

	var report ConflictReport
	for _, res := range results {
		report.Conflicts = append(report.Conflicts, res.conflicts...)
		if res.warning != nil {
			report.Warnings = append(report.Warnings, *res.warning)
		}
	}
	return report, nil
}

// checkAttendee gathers event and free/busy conflicts for one attendee.
func (d *Detector) checkAttendee(ctx context.Context, req SchedulingRequest, attendee string) attendeeResult {
	var res attendeeResult

	events, err := d.provider.Events(ctx, attendee, req.ProposedStart, req.ProposedEnd)
	if err != nil {
		d.logger.Warn("skipping attendee: event lookup failed",
			logging.KeyUserHash, logging.AnonymizeEmail(attendee),
			logging.KeyError, err.Error())
		res.warning = &AttendeeWarning{Attendee: attendee, Err: err}
		return res
	}

	for _, ev := range events {
		if Overlaps(req.ProposedStart, req.ProposedEnd, ev.Start, ev.End) {
			res.conflicts = append(res.conflicts, Conflict{
				Attendee: attendee,
				Kind:     ConflictOverlappingMeeting,
				Window:   formatWindow(ev.Start, ev.End),
				Detail:   ev.Subject,
			})
		}
	}

	segments, err := d.provider.FreeBusy(ctx, attendee, req.ProposedStart, req.ProposedEnd)
	if err != nil {
		d.logger.Warn("free/busy lookup failed, keeping event conflicts",
			logging.KeyUserHash, logging.AnonymizeEmail(attendee),
			logging.KeyError, err.Error())
		res.warning = &AttendeeWarning{Attendee: attendee, Err: err}
		return res
	}

	for _, seg := range segments {
		if seg.Status == StatusFree {
			continue
		}
		res.conflicts = append(res.conflicts, Conflict{
			Attendee: attendee,
			Kind:     ConflictBusyStatus,
			Window:   formatWindow(seg.Start, seg.End),
			Detail:   string(seg.Status),
		})
	}

	return res
}
