// Package schedule implements the conflict detection and alternative-time-slot
// resolution engine at the heart of the scheduling assistant.
//
// Given a proposed meeting window and a set of attendees, the engine determines
// whether the proposal collides with existing commitments (concrete calendar
// events as well as free/busy signals) and, when it does, searches a bounded
// time horizon for conflict-free alternatives ranked by a simple confidence
// heuristic.
//
// The engine reads calendar state exclusively through the Provider interface
// and never mutates it. All entities produced here (Conflict, TimeSlotCandidate,
// ResolutionOutcome) are request-scoped value objects; nothing outlives a
// single call.
//
// Example usage:
//
//	detector := schedule.NewDetector(provider, logger)
//	report, err := detector.Detect(ctx, req)
//	if err != nil {
//	    return err // invalid request
//	}
//	if report.HasConflicts() {
//	    resolver := schedule.NewResolver(schedule.NewSearcher(detector, logger))
//	    outcome, err := resolver.Resolve(ctx, schedule.DirectiveFindAlternatives, req)
//	    ...
//	}
package schedule
