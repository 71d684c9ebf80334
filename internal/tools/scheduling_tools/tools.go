package scheduling_tools

import (
	"fmt"
	"strings"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dayour/Teams-MCP/internal/calendar"
	"github.com/dayour/Teams-MCP/internal/google"
	"github.com/dayour/Teams-MCP/internal/schedule"
	"github.com/dayour/Teams-MCP/internal/server"
)

// RegisterSchedulingTools registers all scheduling tools with the MCP server.
// Write operations (meeting_schedule, meeting_update, meeting_cancel) are
// only registered when readOnly is false.
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerAvailabilityTools(s, sc); err != nil {
		return fmt.Errorf("failed to register availability tools: %w", err)
	}
	if err := registerConflictTools(s, sc); err != nil {
		return fmt.Errorf("failed to register conflict tools: %w", err)
	}
	if err := registerIntentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register intent tools: %w", err)
	}
	if !readOnly {
		if err := registerMeetingTools(s, sc); err != nil {
			return fmt.Errorf("failed to register meeting tools: %w", err)
		}
	}
	return nil
}

// getCalendarClient retrieves or creates a calendar client for the account.
func getCalendarClient(account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		if !calendar.HasTokenForAccount(account) {
			return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
		}
		return nil, fmt.Errorf("failed to create Calendar client for account %s", account)
	}
	return client, nil
}

// getDetector returns the conflict detector for the account.
func getDetector(account string, sc *server.ServerContext) (*schedule.Detector, error) {
	detector := sc.DetectorForAccount(account)
	if detector == nil {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}
	return detector, nil
}

// getResolver returns the resolution engine for the account.
func getResolver(account string, sc *server.ServerContext) (*schedule.Resolver, error) {
	resolver := sc.ResolverForAccount(account)
	if resolver == nil {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}
	return resolver, nil
}

// parseAttendees splits a comma-separated attendee list, trimming whitespace
// and dropping empty entries.
func parseAttendees(attendeesStr string) []string {
	parts := strings.Split(attendeesStr, ",")
	attendees := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			attendees = append(attendees, p)
		}
	}
	return attendees
}

// requireTimeArg parses a required RFC3339 time argument.
func requireTimeArg(args map[string]interface{}, name string) (time.Time, error) {
	val, ok := args[name].(string)
	if !ok || val == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (expected RFC3339): %v", name, err)
	}
	return t, nil
}

// formatConflictReport renders a conflict report for tool output.
func formatConflictReport(report schedule.ConflictReport) string {
	var sb strings.Builder

	if !report.HasConflicts() {
		sb.WriteString("No conflicts detected.\n")
	} else {
		fmt.Fprintf(&sb, "Found %d conflict(s):\n", len(report.Conflicts))
		for i, c := range report.Conflicts {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, c.String())
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w.String())
		}
	}

	return sb.String()
}

// formatCandidates renders alternative time slot candidates for tool output.
func formatCandidates(candidates []schedule.TimeSlotCandidate) string {
	var sb strings.Builder
	for i, c := range candidates {
		verified := "unverified - re-check before booking"
		if c.Verified {
			verified = "verified free"
		}
		fmt.Fprintf(&sb, "%d. %s to %s (%s, confidence %.1f)\n",
			i+1,
			c.Start.Format("Mon, Jan 2 at 15:04 MST"),
			c.End.Format("15:04 MST"),
			verified,
			c.Confidence)
	}
	return sb.String()
}

// formatOutcome renders a resolution outcome for tool output.
func formatOutcome(outcome schedule.ResolutionOutcome) string {
	var sb strings.Builder

	switch outcome.Kind {
	case schedule.OutcomeRescheduled:
		c := outcome.Rescheduled
		fmt.Fprintf(&sb, "Rescheduled to %s - %s (verified free).\n",
			c.Start.Format("Mon, Jan 2 at 15:04 MST"),
			c.End.Format("15:04 MST"))
	case schedule.OutcomeAlternativesOffered:
		fmt.Fprintf(&sb, "Offering %d alternative time slot(s):\n\n", len(outcome.Alternatives))
		sb.WriteString(formatCandidates(outcome.Alternatives))
	case schedule.OutcomeForced:
		sb.WriteString("Booking forced despite conflicts.\n")
	case schedule.OutcomeNoAlternativesFound:
		sb.WriteString("No alternative time slots found. Try a different day or a shorter duration.\n")
	}

	return sb.String()
}
