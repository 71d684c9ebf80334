package schedule

import (
	"context"
	"fmt"
	"time"
)

// Event is a calendar event as seen by the engine.
type Event struct {
	Start   time.Time
	End     time.Time
	Subject string
}

// FreeBusyStatus is the coarse availability signal reported by the
// free/busy service, independent of specific event details.
type FreeBusyStatus string

const (
	StatusFree        FreeBusyStatus = "free"
	StatusBusy        FreeBusyStatus = "busy"
	StatusTentative   FreeBusyStatus = "tentative"
	StatusOutOfOffice FreeBusyStatus = "outOfOffice"
)

// BusySegment is a free/busy interval for an attendee.
type BusySegment struct {
	Status FreeBusyStatus
	Start  time.Time
	End    time.Time
}

// Provider is the read-only calendar capability the engine consumes.
// Implementations query an external calendar backend; the engine never
// mutates calendar state through this interface.
//
// Both methods report transport or authorization failures as a
// *ProviderError so the detector can isolate the failing attendee and
// continue with the rest.
type Provider interface {
	// Events returns the attendee's events within [windowStart, windowEnd].
	Events(ctx context.Context, attendee string, windowStart, windowEnd time.Time) ([]Event, error)

	// FreeBusy returns the attendee's free/busy segments within the window.
	FreeBusy(ctx context.Context, attendee string, windowStart, windowEnd time.Time) ([]BusySegment, error)
}

// ProviderError wraps a failed calendar lookup for a single attendee.
type ProviderError struct {
	Attendee string
	Op       string // "events" or "freebusy"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("calendar provider %s lookup failed for %s: %v", e.Op, e.Attendee, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
