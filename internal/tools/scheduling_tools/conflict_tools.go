package scheduling_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dayour/Teams-MCP/internal/schedule"
	"github.com/dayour/Teams-MCP/internal/server"
	"github.com/dayour/Teams-MCP/internal/tools/common"
)

// registerConflictTools registers the conflict detection and resolution tools.
func registerConflictTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	detectTool := mcp.NewTool("conflicts_detect",
		mcp.WithDescription("Check a proposed meeting window against all attendees' calendars and report every conflict. Attendees whose calendars cannot be read produce warnings, not failures."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Proposed meeting start time (RFC3339 format)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Proposed meeting end time (RFC3339 format)"),
		),
	)

	s.AddTool(detectTool, common.InstrumentedToolHandler("conflicts_detect", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleConflictsDetect(ctx, request, sc)
		}))

	resolveTool := mcp.NewTool("conflicts_resolve",
		mcp.WithDescription("Resolve a conflicting meeting window per a directive: offset (shift by one hour), next-day (same time tomorrow), find-alternatives (broad multi-day search), or force (accept the conflicts). Returns the new window or alternative candidates; nothing is booked."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default')"),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Conflicting meeting start time (RFC3339 format)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Conflicting meeting end time (RFC3339 format)"),
		),
		mcp.WithString("directive",
			mcp.Required(),
			mcp.Description("Resolution directive: offset, next-day, find-alternatives, or force"),
		),
	)

	s.AddTool(resolveTool, common.InstrumentedToolHandler("conflicts_resolve", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleConflictsResolve(ctx, request, sc)
		}))

	suggestTool := mcp.NewTool("meeting_suggest_times",
		mcp.WithDescription("Suggest meeting times for a set of attendees. Strategies: preferred-hours (default; 10:00, 14:00, 16:00 on upcoming business days), broad (hourly business slots over the next week), offset, next-day."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default')"),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Required(),
			mcp.Description("Meeting duration in minutes"),
		),
		mcp.WithString("start",
			mcp.Description("Anchor time for the search (RFC3339 format; default: now, rounded up to the next hour)"),
		),
		mcp.WithString("strategy",
			mcp.Description("Search strategy: preferred-hours (default), broad, offset, or next-day"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of suggestions to return (default: 3)"),
		),
	)

	s.AddTool(suggestTool, common.InstrumentedToolHandler("meeting_suggest_times", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMeetingSuggestTimes(ctx, request, sc)
		}))

	return nil
}

// schedulingRequestFromArgs builds a validated SchedulingRequest from the
// attendees/start/end arguments shared by the conflict tools.
func schedulingRequestFromArgs(args map[string]interface{}) (schedule.SchedulingRequest, error) {
	attendeesStr, ok := args["attendees"].(string)
	if !ok || attendeesStr == "" {
		return schedule.SchedulingRequest{}, fmt.Errorf("attendees is required")
	}

	start, err := requireTimeArg(args, "start")
	if err != nil {
		return schedule.SchedulingRequest{}, err
	}
	end, err := requireTimeArg(args, "end")
	if err != nil {
		return schedule.SchedulingRequest{}, err
	}

	req := schedule.SchedulingRequest{
		Attendees:     parseAttendees(attendeesStr),
		ProposedStart: start,
		ProposedEnd:   end,
	}
	if err := req.Validate(); err != nil {
		return schedule.SchedulingRequest{}, err
	}
	return req, nil
}

func handleConflictsDetect(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	req, err := schedulingRequestFromArgs(args)
	if err != nil {
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

	header := fmt.Sprintf("Conflict check for %s to %s (%d attendee(s)):\n\n",
		req.ProposedStart.Format("Mon, Jan 2 at 15:04 MST"),
		req.ProposedEnd.Format("15:04 MST"),
		len(req.Attendees))

	return mcp.NewToolResultText(header + formatConflictReport(report)), nil
}

func handleConflictsResolve(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	req, err := schedulingRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	directiveStr, ok := args["directive"].(string)
	if !ok || directiveStr == "" {
		return mcp.NewToolResultError("directive is required"), nil
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

	header := fmt.Sprintf("Resolution (%s directive) for %s to %s:\n\n",
		directive,
		req.ProposedStart.Format("Mon, Jan 2 at 15:04 MST"),
		req.ProposedEnd.Format("15:04 MST"))

	return mcp.NewToolResultText(header + formatOutcome(outcome)), nil
}

func handleMeetingSuggestTimes(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	attendeesStr, ok := args["attendees"].(string)
	if !ok || attendeesStr == "" {
		return mcp.NewToolResultError("attendees is required"), nil
	}
	attendees := parseAttendees(attendeesStr)

	durationMinutes, ok := args["durationMinutes"].(float64)
	if !ok || durationMinutes <= 0 {
		return mcp.NewToolResultError("durationMinutes is required and must be positive"), nil
	}
	duration := time.Duration(durationMinutes) * time.Minute

	// Anchor defaults to now, rounded up to the next full hour so the first
	// suggested day still has usable business slots.
	anchor := time.Now().UTC().Truncate(time.Hour).Add(time.Hour)
	if startStr, ok := args["start"].(string); ok && startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start format (expected RFC3339): %v", err)), nil
		}
		anchor = parsed
	}

	strategy := schedule.StrategyPreferredHours
	if strategyStr, ok := args["strategy"].(string); ok && strategyStr != "" {
		switch schedule.Strategy(strategyStr) {
		case schedule.StrategyPreferredHours, schedule.StrategyBroad, schedule.StrategyOffset, schedule.StrategyNextDay:
			strategy = schedule.Strategy(strategyStr)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown strategy %q (supported: preferred-hours, broad, offset, next-day)", strategyStr)), nil
		}
	}

	maxResults := 3
	if maxResultsVal, ok := args["maxResults"].(float64); ok && maxResultsVal > 0 {
		maxResults = int(maxResultsVal)
	}

	req := schedule.SchedulingRequest{
		Attendees:     attendees,
		ProposedStart: anchor,
		ProposedEnd:   anchor.Add(duration),
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	searcher := sc.SearcherForAccount(account)
	if searcher == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no calendar access for account %q", account)), nil
	}

	searchStart := time.Now()
	candidates, err := searcher.FindAlternatives(ctx, req, strategy, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordCandidateSearch(ctx, string(strategy), time.Since(searchStart))
	}

	if len(candidates) == 0 {
		return mcp.NewToolResultText("No suitable time slots found for the specified attendees and duration."), nil
	}

	header := fmt.Sprintf("Found %d suggested time(s) for a %d minute meeting (%s strategy):\n\n",
		len(candidates), int(durationMinutes), strategy)
	return mcp.NewToolResultText(header + formatCandidates(candidates)), nil
}
