package schedule

import (
	"context"
	"errors"
	"sync"
	"time"
)

// errUnavailable stands in for a transport/auth failure in tests.
var errUnavailable = errors.New("service unavailable")

// fakeProvider is an in-memory Provider for engine tests. Events and busy
// segments are filtered to the queried window the way a real backend would.
type fakeProvider struct {
	mu     sync.Mutex
	events map[string][]Event
	busy   map[string][]BusySegment
	broken map[string]bool // attendees whose lookups fail
	calls  int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		events: make(map[string][]Event),
		busy:   make(map[string][]BusySegment),
		broken: make(map[string]bool),
	}
}

func (f *fakeProvider) addEvent(attendee, subject string, start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[attendee] = append(f.events[attendee], Event{Start: start, End: end, Subject: subject})
}

func (f *fakeProvider) addBusy(attendee string, status FreeBusyStatus, start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy[attendee] = append(f.busy[attendee], BusySegment{Status: status, Start: start, End: end})
}

func (f *fakeProvider) breakAttendee(attendee string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken[attendee] = true
}

func (f *fakeProvider) Events(_ context.Context, attendee string, windowStart, windowEnd time.Time) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.broken[attendee] {
		return nil, &ProviderError{Attendee: attendee, Op: "events", Err: errUnavailable}
	}
	var out []Event
	for _, ev := range f.events[attendee] {
		if Overlaps(windowStart, windowEnd, ev.Start, ev.End) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeProvider) FreeBusy(_ context.Context, attendee string, windowStart, windowEnd time.Time) ([]BusySegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.broken[attendee] {
		return nil, &ProviderError{Attendee: attendee, Op: "freebusy", Err: errUnavailable}
	}
	var out []BusySegment
	for _, seg := range f.busy[attendee] {
		if Overlaps(windowStart, windowEnd, seg.Start, seg.End) {
			out = append(out, seg)
		}
	}
	return out, nil
}
