package scheduling_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dayour/Teams-MCP/internal/calendar"
	"github.com/dayour/Teams-MCP/internal/instrumentation"
	"github.com/dayour/Teams-MCP/internal/schedule"
	"github.com/dayour/Teams-MCP/internal/server"
	"github.com/dayour/Teams-MCP/internal/tools/common"
)

// registerMeetingTools registers the meeting lifecycle tools. These perform
// write operations against the calendar and are gated behind read-only mode.
func registerMeetingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	scheduleTool := mcp.NewTool("meeting_schedule",
		mcp.WithDescription("Schedule a meeting after checking all attendees for conflicts. When conflicts are found, an optional resolution directive controls what happens: offset (shift by one hour), next-day (same time tomorrow), find-alternatives (propose other slots), or force (book anyway)."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Meeting title"),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Meeting start time (RFC3339 format, e.g., '2025-01-15T14:00:00Z')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Meeting end time (RFC3339 format)"),
		),
		mcp.WithString("description",
			mcp.Description("Meeting description"),
		),
		mcp.WithString("location",
			mcp.Description("Meeting location (free text or a room calendar ID)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("IANA time zone for the event (e.g., 'Europe/Berlin')"),
		),
		mcp.WithString("directive",
			mcp.Description("Conflict resolution directive: offset, next-day, find-alternatives, or force. Without a directive, conflicts abort the booking and are reported."),
		),
		mcp.WithBoolean("createMeetLink",
			mcp.Description("Attach a Google Meet conference to the event (default: false)"),
		),
	)

	s.AddTool(scheduleTool, common.InstrumentedToolHandlerWithOperation("meeting_schedule", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMeetingSchedule(ctx, request, sc)
		}))

	updateTool := mcp.NewTool("meeting_update",
		mcp.WithDescription("Update an existing meeting. Only the provided fields are changed."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("ID of the event to update"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar containing the event (default: 'primary')"),
		),
		mcp.WithString("summary",
			mcp.Description("New meeting title"),
		),
		mcp.WithString("description",
			mcp.Description("New meeting description"),
		),
		mcp.WithString("location",
			mcp.Description("New meeting location"),
		),
		mcp.WithString("start",
			mcp.Description("New start time (RFC3339 format)"),
		),
		mcp.WithString("end",
			mcp.Description("New end time (RFC3339 format)"),
		),
		mcp.WithString("attendees",
			mcp.Description("Replacement comma-separated attendee list"),
		),
	)

	s.AddTool(updateTool, common.InstrumentedToolHandlerWithOperation("meeting_update", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMeetingUpdate(ctx, request, sc)
		}))

	cancelTool := mcp.NewTool("meeting_cancel",
		mcp.WithDescription("Cancel a meeting by deleting it from the calendar."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default')"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("ID of the event to cancel"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar containing the event (default: 'primary')"),
		),
	)

	s.AddTool(cancelTool, common.InstrumentedToolHandlerWithOperation("meeting_cancel", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMeetingCancel(ctx, request, sc)
		}))

	return nil
}

func handleMeetingSchedule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	attendeesStr, ok := args["attendees"].(string)
	if !ok || attendeesStr == "" {
		return mcp.NewToolResultError("attendees is required"), nil
	}
	attendees := parseAttendees(attendeesStr)

	start, err := requireTimeArg(args, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := requireTimeArg(args, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := schedule.SchedulingRequest{
		Attendees:     attendees,
		ProposedStart: start,
		ProposedEnd:   end,
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detector, err := getDetector(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := detector.Detect(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conflict check failed: %v", err)), nil
	}
	recordConflictCheck(ctx, sc, report)

	bookStart, bookEnd := start, end
	var preamble string

	if report.HasConflicts() {
		directiveStr, _ := args["directive"].(string)
		if directiveStr == "" {
			result := "Not booked: the proposed time has conflicts.\n\n" + formatConflictReport(report) +
				"\nPass a directive (offset, next-day, find-alternatives, force) to resolve."
			return mcp.NewToolResultText(result), nil
		}

		directive, err := schedule.ParseDirective(directiveStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resolver, err := getResolver(account, sc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		outcome, err := resolver.Resolve(ctx, directive, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("resolution failed: %v", err)), nil
		}
		recordResolution(ctx, sc, directive, outcome)

		switch outcome.Kind {
		case schedule.OutcomeRescheduled:
			bookStart = outcome.Rescheduled.Start
			bookEnd = outcome.Rescheduled.End
			preamble = fmt.Sprintf("Original time had %d conflict(s); rescheduled per %q directive.\n\n",
				len(report.Conflicts), directive)
		case schedule.OutcomeForced:
			preamble = fmt.Sprintf("Booking forced despite %d conflict(s).\n\n", len(report.Conflicts))
		default:
			result := "Not booked.\n\n" + formatConflictReport(report) + "\n" + formatOutcome(outcome)
			return mcp.NewToolResultText(result), nil
		}
	}

	client, err := getCalendarClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := calendar.EventInput{
		Summary:   summary,
		Start:     bookStart,
		End:       bookEnd,
		Attendees: attendees,
	}
	if description, ok := args["description"].(string); ok {
		input.Description = description
	}
	if location, ok := args["location"].(string); ok {
		input.Location = location
	}
	if timeZone, ok := args["timeZone"].(string); ok {
		input.TimeZone = timeZone
	}
	if createMeetLink, ok := args["createMeetLink"].(bool); ok {
		input.UseDefaultConferenceData = createMeetLink
	}

	event, err := client.CreateEvent(ctx, "primary", input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create event: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(preamble)
	fmt.Fprintf(&sb, "Meeting booked: %s\n", event.Summary)
	fmt.Fprintf(&sb, "  ID: %s\n", event.ID)
	fmt.Fprintf(&sb, "  When: %s to %s\n",
		event.Start.Format("Mon, Jan 2 2006 at 15:04 MST"),
		event.End.Format("15:04 MST"))
	fmt.Fprintf(&sb, "  Attendees: %s\n", strings.Join(attendees, ", "))
	if event.MeetLink != "" {
		fmt.Fprintf(&sb, "  Meet link: %s\n", event.MeetLink)
	}
	if len(report.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w.String())
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleMeetingUpdate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	calendarID := "primary"
	if calendarVal, ok := args["calendarId"].(string); ok && calendarVal != "" {
		calendarID = calendarVal
	}

	var input calendar.EventInput
	if summary, ok := args["summary"].(string); ok {
		input.Summary = summary
	}
	if description, ok := args["description"].(string); ok {
		input.Description = description
	}
	if location, ok := args["location"].(string); ok {
		input.Location = location
	}
	if startStr, ok := args["start"].(string); ok && startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start format (expected RFC3339): %v", err)), nil
		}
		input.Start = start
	}
	if endStr, ok := args["end"].(string); ok && endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end format (expected RFC3339): %v", err)), nil
		}
		input.End = end
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		input.Attendees = parseAttendees(attendeesStr)
	}

	client, err := getCalendarClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.UpdateEvent(ctx, calendarID, eventID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update event: %v", err)), nil
	}

	result := fmt.Sprintf("Meeting updated: %s\n  When: %s to %s\n",
		event.Summary,
		event.Start.Format("Mon, Jan 2 2006 at 15:04 MST"),
		event.End.Format("15:04 MST"))
	return mcp.NewToolResultText(result), nil
}

func handleMeetingCancel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	calendarID := "primary"
	if calendarVal, ok := args["calendarId"].(string); ok && calendarVal != "" {
		calendarID = calendarVal
	}

	client, err := getCalendarClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteEvent(ctx, calendarID, eventID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Meeting %s cancelled.", eventID)), nil
}

// recordConflictCheck records the result of a detection pass when metrics
// are configured.
func recordConflictCheck(ctx context.Context, sc *server.ServerContext, report schedule.ConflictReport) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}
	result := instrumentation.ResultClear
	if report.HasConflicts() {
		result = instrumentation.ResultConflict
	}
	metrics.RecordConflictCheck(ctx, result)
}

// recordResolution records a resolution outcome when metrics are configured.
func recordResolution(ctx context.Context, sc *server.ServerContext, directive schedule.Directive, outcome schedule.ResolutionOutcome) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}
	metrics.RecordResolution(ctx, string(directive), string(outcome.Kind))
}
