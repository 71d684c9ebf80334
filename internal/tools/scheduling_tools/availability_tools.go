package scheduling_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dayour/Teams-MCP/internal/instrumentation"
	"github.com/dayour/Teams-MCP/internal/server"
	"github.com/dayour/Teams-MCP/internal/tools/common"
)

// registerAvailabilityTools registers the read-only availability tools.
func registerAvailabilityTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	availabilityTool := mcp.NewTool("availability_check",
		mcp.WithDescription("Check free/busy availability for one or more attendees in a time range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses or calendar IDs"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2025-01-15T09:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format)"),
		),
	)

	s.AddTool(availabilityTool, common.InstrumentedToolHandlerWithOperation("availability_check", instrumentation.OperationFreeBusy, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAvailabilityCheck(ctx, request, sc)
		}))

	roomsTool := mcp.NewTool("rooms_find",
		mcp.WithDescription("List bookable meeting rooms from the resource directory, optionally filtered to rooms free in a given window"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default')"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Window start for an availability check (RFC3339 format). Requires timeMax."),
		),
		mcp.WithString("timeMax",
			mcp.Description("Window end for an availability check (RFC3339 format). Requires timeMin."),
		),
	)

	s.AddTool(roomsTool, common.InstrumentedToolHandlerWithOperation("rooms_find", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRoomsFind(ctx, request, sc)
		}))

	return nil
}

func handleAvailabilityCheck(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	attendeesStr, ok := args["attendees"].(string)
	if !ok || attendeesStr == "" {
		return mcp.NewToolResultError("attendees is required"), nil
	}
	attendees := parseAttendees(attendeesStr)

	timeMin, err := requireTimeArg(args, "timeMin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeMax, err := requireTimeArg(args, "timeMax")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !timeMax.After(timeMin) {
		return mcp.NewToolResultError("timeMax must be after timeMin"), nil
	}

	client, err := getCalendarClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	freeBusyInfos, err := client.QueryFreeBusy(ctx, timeMin, timeMax, attendees)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to query free/busy: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Availability for %d attendee(s) from %s to %s:\n\n",
		len(freeBusyInfos),
		timeMin.Format("2006-01-02 15:04"),
		timeMax.Format("2006-01-02 15:04"))

	for _, info := range freeBusyInfos {
		fmt.Fprintf(&sb, "%s\n", info.Calendar)

		if len(info.Errors) > 0 {
			fmt.Fprintf(&sb, "  Errors: %s\n", strings.Join(info.Errors, ", "))
		}

		if len(info.Busy) == 0 {
			sb.WriteString("  FREE for the entire range\n")
		} else {
			fmt.Fprintf(&sb, "  Busy periods: %d\n", len(info.Busy))
			for i, busy := range info.Busy {
				fmt.Fprintf(&sb, "  %d. %s to %s\n",
					i+1,
					busy.Start.Format("2006-01-02 15:04"),
					busy.End.Format("2006-01-02 15:04"))
			}
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleRoomsFind(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	client, err := getCalendarClient(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rooms, err := client.FindRooms(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list rooms: %v", err)), nil
	}

	if len(rooms) == 0 {
		return mcp.NewToolResultText("No meeting rooms found in the resource directory."), nil
	}

	// Optional availability filter
	timeMinStr, hasMin := args["timeMin"].(string)
	timeMaxStr, hasMax := args["timeMax"].(string)
	checkAvailability := hasMin && timeMinStr != "" && hasMax && timeMaxStr != ""

	busyRooms := make(map[string]bool)
	if checkAvailability {
		timeMin, err := requireTimeArg(args, "timeMin")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		timeMax, err := requireTimeArg(args, "timeMax")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		roomIDs := make([]string, len(rooms))
		for i, room := range rooms {
			roomIDs[i] = room.ID
		}

		freeBusyInfos, err := client.QueryFreeBusy(ctx, timeMin, timeMax, roomIDs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to check room availability: %v", err)), nil
		}
		for _, info := range freeBusyInfos {
			if len(info.Busy) > 0 {
				busyRooms[info.Calendar] = true
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d meeting room(s):\n\n", len(rooms))
	for i, room := range rooms {
		fmt.Fprintf(&sb, "%d. %s\n   ID: %s\n", i+1, room.Name, room.ID)
		if room.Details != "" {
			fmt.Fprintf(&sb, "   %s\n", room.Details)
		}
		if checkAvailability {
			if busyRooms[room.ID] {
				sb.WriteString("   BUSY in the requested window\n")
			} else {
				sb.WriteString("   FREE in the requested window\n")
			}
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
