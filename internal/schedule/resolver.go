package schedule

import (
	"context"
)

// Result caps used when the caller does not control the candidate count
// directly: next-day escalation offers 3, the broad search offers 5.
const (
	nextDayFallbackResults     = 3
	findAlternativesMaxResults = 5
)

// Resolver maps a resolution directive to a search strategy and shapes the
// outcome. It holds no state between calls: every invocation is a pure
// function of (directive, request, current calendar state).
type Resolver struct {
	searcher *Searcher
}

// NewResolver creates a Resolver that searches through searcher.
func NewResolver(searcher *Searcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// Resolve applies the directive to the conflicting request.
//
//   - offset: reschedule to the +60 minute window when free, otherwise offer
//     the unverified further-shifted suggestions.
//   - next-day: reschedule to the literal next calendar day when free,
//     otherwise offer up to 3 broad-search candidates.
//   - find-alternatives: offer up to 5 broad-search candidates.
//   - force: book despite conflicts; no search is performed.
func (r *Resolver) Resolve(ctx context.Context, directive Directive, req SchedulingRequest) (ResolutionOutcome, error) {
	if err := req.Validate(); err != nil {
		return ResolutionOutcome{}, err
	}

	switch directive {
	case DirectiveOffset:
		candidates, err := r.searcher.FindAlternatives(ctx, req, StrategyOffset, len(offsetFallbacks))
		if err != nil {
			return ResolutionOutcome{}, err
		}
		return outcomeFromCandidates(candidates), nil

	case DirectiveNextDay:
		candidates, err := r.searcher.FindAlternatives(ctx, req, StrategyNextDay, nextDayFallbackResults)
		if err != nil {
			return ResolutionOutcome{}, err
		}
		return outcomeFromCandidates(candidates), nil

	case DirectiveFindAlternatives:
		candidates, err := r.searcher.FindAlternatives(ctx, req, StrategyBroad, findAlternativesMaxResults)
		if err != nil {
			return ResolutionOutcome{}, err
		}
		if len(candidates) == 0 {
			return ResolutionOutcome{Kind: OutcomeNoAlternativesFound}, nil
		}
		return ResolutionOutcome{Kind: OutcomeAlternativesOffered, Alternatives: candidates}, nil

	case DirectiveForce:
		return ResolutionOutcome{Kind: OutcomeForced}, nil
	}

	return ResolutionOutcome{}, &RequestError{Reason: "unknown resolution directive " + string(directive)}
}

// outcomeFromCandidates implements the shared success/fallback split of the
// offset and next-day directives: a single verified candidate means the
// meeting was rescheduled; anything else is an offer of alternatives, or an
// explicit no-alternatives outcome when even the fallback came up empty.
func outcomeFromCandidates(candidates []TimeSlotCandidate) ResolutionOutcome {
	// A broad-search escalation can also yield a single verified candidate;
	// only the primary shifted window (confidenceVerified) counts as a
	// confirmed reschedule.
	if len(candidates) == 1 && candidates[0].Verified && candidates[0].Confidence == confidenceVerified {
		c := candidates[0]
		return ResolutionOutcome{Kind: OutcomeRescheduled, Rescheduled: &c}
	}
	if len(candidates) == 0 {
		return ResolutionOutcome{Kind: OutcomeNoAlternativesFound}
	}
	return ResolutionOutcome{Kind: OutcomeAlternativesOffered, Alternatives: candidates}
}
