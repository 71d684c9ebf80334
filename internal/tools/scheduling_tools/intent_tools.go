package scheduling_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dayour/Teams-MCP/internal/intent"
	"github.com/dayour/Teams-MCP/internal/server"
	"github.com/dayour/Teams-MCP/internal/tools/common"
)

// parsedIntentOutput is the JSON shape returned by the intent_parse tool.
type parsedIntentOutput struct {
	Type            string   `json:"type"`
	Attendees       []string `json:"attendees,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Day             string   `json:"day,omitempty"`
	StartTime       string   `json:"startTime,omitempty"`
	Directive       string   `json:"directive,omitempty"`

	// WindowStart/WindowEnd are the fully resolved meeting window when the
	// text contained enough information (day, clock time, and duration).
	WindowStart string `json:"windowStart,omitempty"`
	WindowEnd   string `json:"windowEnd,omitempty"`
}

// registerIntentTools registers the natural-language intent parsing tool.
func registerIntentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	parseTool := mcp.NewTool("intent_parse",
		mcp.WithDescription("Parse a natural-language scheduling request into structured fields: intent type, attendee emails, duration, day, clock time, and resolution directive. Returns JSON. No calendar access is performed."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The scheduling request text, e.g. 'schedule a 30 minute meeting with jane@example.com tomorrow at 2pm'"),
		),
		mcp.WithString("now",
			mcp.Description("Reference time for relative dates like 'tomorrow' (RFC3339 format; default: current time)"),
		),
	)

	s.AddTool(parseTool, common.InstrumentedToolHandler("intent_parse", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleIntentParse(ctx, request)
		}))

	return nil
}

func handleIntentParse(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	now := time.Now().UTC()
	if nowStr, ok := args["now"].(string); ok && nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid now format (expected RFC3339): %v", err)), nil
		}
		now = parsed
	}

	parsed := intent.Parse(text, now)

	output := parsedIntentOutput{
		Type:            string(parsed.Type),
		Attendees:       parsed.Attendees,
		DurationMinutes: parsed.DurationMinutes,
		Directive:       parsed.Directive,
	}
	if !parsed.Day.IsZero() {
		output.Day = parsed.Day.Format("2006-01-02")
	}
	if parsed.HasTime() {
		output.StartTime = fmt.Sprintf("%02d:%02d", parsed.StartHour, parsed.StartMinute)
	}
	if start, end, ok := parsed.Window(); ok {
		output.WindowStart = start.Format(time.RFC3339)
		output.WindowEnd = end.Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
