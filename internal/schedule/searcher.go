package schedule

import (
	"context"
	"time"

	"github.com/dayour/Teams-MCP/internal/logging"
)

// Strategy selects the search behaviour of the Searcher.
type Strategy string

const (
	// StrategyOffset shifts the proposed window by a fixed delta.
	StrategyOffset Strategy = "offset"

	// StrategyNextDay shifts the window to the same time on the literal next
	// calendar day.
	StrategyNextDay Strategy = "next-day"

	// StrategyBroad scans hourly business-hour slots over a multi-day horizon.
	StrategyBroad Strategy = "broad"

	// StrategyPreferredHours probes a fixed list of preferred hours across
	// upcoming business days.
	StrategyPreferredHours Strategy = "preferred-hours"
)

// Search tuning. These mirror the product's fixed policy and are not
// configurable per request.
const (
	offsetPrimary = 60 * time.Minute

	broadHorizonDays = 7

	preferredHorizonDays     = 5
	preferredCandidateTarget = 3
)

// offsetFallbacks are the further-shifted deltas suggested when the primary
// offset window still conflicts. These suggestions are NOT verified.
var offsetFallbacks = []time.Duration{120 * time.Minute, 180 * time.Minute}

// preferredHours are probed in order within each business day.
var preferredHours = []int{10, 14, 16}

// Confidence buckets attached to candidates. Fixed presentation heuristics,
// not probabilities; see TimeSlotCandidate.
const (
	confidenceVerified   = 1.0
	confidencePreferred  = 0.9
	confidenceBroad      = 0.8
	confidenceUnverified = 0.5
)

// Searcher walks a bounded time/attendee space looking for conflict-free
// alternatives to a conflicting request.
type Searcher struct {
	detector *Detector
	logger   logging.Logger
}

// NewSearcher creates a Searcher that verifies candidate windows through
// detector. If logger is nil, a default slog-backed logger is used.
func NewSearcher(detector *Detector, logger logging.Logger) *Searcher {
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Searcher{detector: detector, logger: logger}
}

// FindAlternatives searches for alternative windows using the given
// strategy, returning at most maxResults candidates ordered best-first.
// An exhausted search space yields an empty slice, not an error; callers
// must branch on emptiness.
func (s *Searcher) FindAlternatives(ctx context.Context, req SchedulingRequest, strategy Strategy, maxResults int) ([]TimeSlotCandidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return nil, &RequestError{Reason: "maxResults must be positive"}
	}

	switch strategy {
	case StrategyOffset:
		return s.fixedOffset(ctx, req, maxResults)
	case StrategyNextDay:
		return s.nextDay(ctx, req, maxResults)
	case StrategyBroad:
		return s.broadSearch(ctx, req, maxResults)
	case StrategyPreferredHours:
		return s.preferredHours(ctx, req, maxResults)
	}
	return nil, &RequestError{Reason: "unknown search strategy " + string(strategy)}
}

// fixedOffset shifts the window by offsetPrimary. A conflict-free shifted
// window is returned as the sole, verified candidate. Otherwise up to
// maxResults further-shifted windows are suggested unverified; callers must
// re-check those before booking.
func (s *Searcher) fixedOffset(ctx context.Context, req SchedulingRequest, maxResults int) ([]TimeSlotCandidate, error) {
	start, end := ShiftWindow(req.ProposedStart, req.ProposedEnd, offsetPrimary)

	free, err := s.windowIsFree(ctx, req, start, end)
	if err != nil {
		return nil, err
	}
	if free {
		return []TimeSlotCandidate{{Start: start, End: end, Confidence: confidenceVerified, Verified: true}}, nil
	}

	candidates := make([]TimeSlotCandidate, 0, len(offsetFallbacks))
	for _, delta := range offsetFallbacks {
		if len(candidates) >= maxResults {
			break
		}
		fs, fe := ShiftWindow(req.ProposedStart, req.ProposedEnd, delta)
		candidates = append(candidates, TimeSlotCandidate{
			Start:      fs,
			End:        fe,
			Confidence: confidenceUnverified,
			Verified:   false,
		})
	}
	return candidates, nil
}

// nextDay shifts the window to the same time of day on the literal next
// calendar day. Weekends are deliberately NOT skipped: the product's
// "tomorrow" behaviour checks the literal next day even when it lands on a
// Saturday, unlike the preferred-hours heuristic which does skip weekends.
// If the next-day window still conflicts, the broad search takes over.
func (s *Searcher) nextDay(ctx context.Context, req SchedulingRequest, maxResults int) ([]TimeSlotCandidate, error) {
	start := req.ProposedStart.AddDate(0, 0, 1)
	end := req.ProposedEnd.AddDate(0, 0, 1)

	free, err := s.windowIsFree(ctx, req, start, end)
	if err != nil {
		return nil, err
	}
	if free {
		return []TimeSlotCandidate{{Start: start, End: end, Confidence: confidenceVerified, Verified: true}}, nil
	}

	s.logger.Debug("next-day window conflicts, escalating to broad search")
	return s.broadSearch(ctx, req, maxResults)
}

// broadSearch iterates day offsets 0..6 from the proposed day, probing
// hourly slots within business hours and collecting every verified
// zero-conflict window until maxResults candidates are found. Candidates
// come back in chronological order, which doubles as the confidence
// ranking: earlier simply means surfaced first.
//
// The search honours ctx cancellation; on cancellation the candidates
// confirmed so far are returned rather than failing outright.
func (s *Searcher) broadSearch(ctx context.Context, req SchedulingRequest, maxResults int) ([]TimeSlotCandidate, error) {
	durationMinutes := int(req.Duration() / time.Minute)

	var candidates []TimeSlotCandidate
	for dayOffset := 0; dayOffset < broadHorizonDays; dayOffset++ {
		day := req.ProposedStart.AddDate(0, 0, dayOffset)
		for _, slot := range GenerateHourlySlots(day, DefaultBusinessStartHour, DefaultBusinessEndHour, durationMinutes) {
			if ctx.Err() != nil {
				s.logger.Warn("broad search cancelled, returning partial results",
					"confirmed", len(candidates))
				return candidates, nil
			}

			free, err := s.windowIsFree(ctx, req, slot.Start, slot.End)
			if err != nil {
				return nil, err
			}
			if !free {
				continue
			}

			candidates = append(candidates, TimeSlotCandidate{
				Start:      slot.Start,
				End:        slot.End,
				Confidence: confidenceBroad,
				Verified:   true,
			})
			if len(candidates) >= maxResults {
				return candidates, nil
			}
		}
	}
	return candidates, nil
}

// preferredHours probes the fixed preferred start hours across the next
// five calendar days, skipping weekends, and stops once three verified
// candidates are found. Used for proactive "suggest a good time" queries
// without an explicit conflicting request.
func (s *Searcher) preferredHours(ctx context.Context, req SchedulingRequest, maxResults int) ([]TimeSlotCandidate, error) {
	duration := req.Duration()
	target := preferredCandidateTarget
	if maxResults < target {
		target = maxResults
	}

	var candidates []TimeSlotCandidate
	for dayOffset := 0; dayOffset < preferredHorizonDays; dayOffset++ {
		day := req.ProposedStart.AddDate(0, 0, dayOffset)
		if isWeekend(day) {
			continue
		}
		for _, hour := range preferredHours {
			if ctx.Err() != nil {
				return candidates, nil
			}

			y, m, d := day.Date()
			start := time.Date(y, m, d, hour, 0, 0, 0, day.Location())
			end := start.Add(duration)

			free, err := s.windowIsFree(ctx, req, start, end)
			if err != nil {
				return nil, err
			}
			if !free {
				continue
			}

			candidates = append(candidates, TimeSlotCandidate{
				Start:      start,
				End:        end,
				Confidence: confidencePreferred,
				Verified:   true,
			})
			if len(candidates) >= target {
				return candidates, nil
			}
		}
	}
	return candidates, nil
}

// windowIsFree re-runs conflict detection for the request's attendees over
// a candidate window. A window only counts as free when the detector
// reports zero conflicts.
func (s *Searcher) windowIsFree(ctx context.Context, req SchedulingRequest, start, end time.Time) (bool, error) {
	probe := SchedulingRequest{
		Attendees:     req.Attendees,
		ProposedStart: start,
		ProposedEnd:   end,
	}
	report, err := s.detector.Detect(ctx, probe)
	if err != nil {
		return false, err
	}
	return !report.HasConflicts(), nil
}
