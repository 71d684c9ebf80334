// Package scheduling_tools provides the MCP tools of the scheduling
// assistant: meeting lifecycle (schedule, update, cancel), availability and
// room lookup, conflict detection and directive-driven resolution, time
// suggestions, and natural-language intent parsing.
//
// All handlers return tool errors via mcp.NewToolResultError rather than Go
// errors, so clients always receive a structured response. Write operations
// are only registered when the server runs with write mode enabled.
package scheduling_tools
