package schedule

import (
	"fmt"
	"time"
)

// SchedulingRequest describes a proposed meeting to be checked for conflicts.
// Requests are value objects constructed per call and must not be mutated
// after being passed to the engine.
type SchedulingRequest struct {
	// Attendees are the calendar identifiers (usually email addresses) whose
	// schedules are consulted. Order is preserved for conflict reporting;
	// duplicates produce duplicate conflicts, so callers should dedup first.
	Attendees []string

	// ProposedStart and ProposedEnd bound the requested meeting window.
	// Comparisons inside the engine are always performed in UTC.
	ProposedStart time.Time
	ProposedEnd   time.Time
}

// Duration returns the length of the proposed window.
func (r SchedulingRequest) Duration() time.Duration {
	return r.ProposedEnd.Sub(r.ProposedStart)
}

// Validate rejects malformed requests before any provider call is issued.
func (r SchedulingRequest) Validate() error {
	if len(r.Attendees) == 0 {
		return &RequestError{Reason: "at least one attendee is required"}
	}
	for _, a := range r.Attendees {
		if a == "" {
			return &RequestError{Reason: "attendee identifier must not be empty"}
		}
	}
	if r.ProposedStart.IsZero() || r.ProposedEnd.IsZero() {
		return &RequestError{Reason: "proposed start and end are required"}
	}
	if !r.ProposedEnd.After(r.ProposedStart) {
		return &RequestError{Reason: "proposed end must be after proposed start"}
	}
	return nil
}

// RequestError indicates a malformed SchedulingRequest. It is the only
// failure the engine propagates to callers as a hard error; provider
// failures are isolated per attendee instead.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid scheduling request: " + e.Reason
}

// ConflictKind distinguishes how a collision was detected.
type ConflictKind string

const (
	// ConflictOverlappingMeeting is a collision with a concrete calendar event.
	ConflictOverlappingMeeting ConflictKind = "overlapping-meeting"

	// ConflictBusyStatus is a collision reported by the free/busy service.
	// Event and free/busy data may disagree; both are surfaced.
	ConflictBusyStatus ConflictKind = "busy-status"
)

// Conflict is a detected collision between a proposed window and an
// attendee's existing commitment.
type Conflict struct {
	Attendee string
	Kind     ConflictKind

	// Window is a human-readable description of the colliding interval.
	Window string

	// Detail carries the event subject (for overlapping-meeting) or the
	// free/busy status label (for busy-status).
	Detail string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s %s (%s)", c.Attendee, c.Kind, c.Window, c.Detail)
}

// AttendeeWarning records an attendee whose calendar could not be checked.
// Detection continues for the remaining attendees; partial information is
// better than none for a best-effort scheduling assistant.
type AttendeeWarning struct {
	Attendee string
	Err      error
}

func (w AttendeeWarning) String() string {
	return fmt.Sprintf("could not verify availability for %s: %v", w.Attendee, w.Err)
}

// ConflictReport is the result of a detection pass. Conflicts appear in
// discovery order: per attendee in request order, event conflicts before
// busy-status conflicts.
type ConflictReport struct {
	Conflicts []Conflict
	Warnings  []AttendeeWarning
}

// HasConflicts reports whether any collision was found.
func (r ConflictReport) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// TimeSlotCandidate is a proposed alternative window.
//
// Confidence is a fixed presentation heuristic in [0,1], NOT a probability
// derived from data. It reflects which search tier produced the candidate
// and must not be over-trusted by callers.
type TimeSlotCandidate struct {
	Start time.Time
	End   time.Time

	Confidence float64

	// Verified is true when the engine re-checked the window and found zero
	// conflicts. Unverified candidates come from the fixed-offset fallback
	// tier and must be re-checked by the caller before booking.
	Verified bool
}

// OutcomeKind classifies the result of a resolution call.
type OutcomeKind string

const (
	OutcomeRescheduled         OutcomeKind = "rescheduled"
	OutcomeAlternativesOffered OutcomeKind = "alternatives-offered"
	OutcomeForced              OutcomeKind = "forced"
	OutcomeNoAlternativesFound OutcomeKind = "no-alternatives-found"
)

// ResolutionOutcome is the directive-driven result of resolving a
// conflicting request.
type ResolutionOutcome struct {
	Kind OutcomeKind

	// Rescheduled holds the single confirmed new window when Kind is
	// OutcomeRescheduled.
	Rescheduled *TimeSlotCandidate

	// Alternatives holds the ordered candidate list when Kind is
	// OutcomeAlternativesOffered, capped at the caller-specified maximum.
	Alternatives []TimeSlotCandidate
}

// Directive selects the resolution strategy for a conflicting request.
type Directive string

const (
	// DirectiveOffset shifts the window by a fixed delta and reschedules if
	// the shifted window is free.
	DirectiveOffset Directive = "offset"

	// DirectiveNextDay shifts the window to the same time on the literal
	// next calendar day. Weekends are NOT skipped; see Searcher.NextDay.
	DirectiveNextDay Directive = "next-day"

	// DirectiveFindAlternatives runs the broad multi-day search.
	DirectiveFindAlternatives Directive = "find-alternatives"

	// DirectiveForce books despite conflicts; no search is performed.
	DirectiveForce Directive = "force"
)

// ParseDirective maps a caller-supplied directive string to a Directive.
func ParseDirective(s string) (Directive, error) {
	switch Directive(s) {
	case DirectiveOffset, DirectiveNextDay, DirectiveFindAlternatives, DirectiveForce:
		return Directive(s), nil
	}
	return "", fmt.Errorf("unknown resolution directive %q (supported: offset, next-day, find-alternatives, force)", s)
}
