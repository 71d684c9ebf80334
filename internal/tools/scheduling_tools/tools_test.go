package scheduling_tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dayour/Teams-MCP/internal/schedule"
)

func TestParseAttendees(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single attendee",
			input:    "alice@example.com",
			expected: []string{"alice@example.com"},
		},
		{
			name:     "multiple with whitespace",
			input:    "alice@example.com, bob@example.com ,carol@example.com",
			expected: []string{"alice@example.com", "bob@example.com", "carol@example.com"},
		},
		{
			name:     "empty entries dropped",
			input:    "alice@example.com,,  ,bob@example.com",
			expected: []string{"alice@example.com", "bob@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAttendees(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("parseAttendees() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("attendee[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRequireTimeArg(t *testing.T) {
	args := map[string]interface{}{
		"start": "2025-03-12T14:00:00Z",
		"bad":   "not-a-time",
	}

	start, err := requireTimeArg(args, "start")
	if err != nil {
		t.Fatalf("requireTimeArg(start) error = %v", err)
	}
	want := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}

	if _, err := requireTimeArg(args, "bad"); err == nil {
		t.Error("expected error for invalid time format")
	}
	if _, err := requireTimeArg(args, "missing"); err == nil {
		t.Error("expected error for missing argument")
	}
}

func TestSchedulingRequestFromArgs(t *testing.T) {
	args := map[string]interface{}{
		"attendees": "alice@example.com, bob@example.com",
		"start":     "2025-03-12T14:00:00Z",
		"end":       "2025-03-12T15:00:00Z",
	}

	req, err := schedulingRequestFromArgs(args)
	if err != nil {
		t.Fatalf("schedulingRequestFromArgs() error = %v", err)
	}
	if len(req.Attendees) != 2 {
		t.Errorf("got %d attendees, want 2", len(req.Attendees))
	}
	if req.Duration() != time.Hour {
		t.Errorf("duration = %v, want 1h", req.Duration())
	}
}

func TestSchedulingRequestFromArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing attendees",
			args: map[string]interface{}{
				"start": "2025-03-12T14:00:00Z",
				"end":   "2025-03-12T15:00:00Z",
			},
		},
		{
			name: "end before start",
			args: map[string]interface{}{
				"attendees": "alice@example.com",
				"start":     "2025-03-12T15:00:00Z",
				"end":       "2025-03-12T14:00:00Z",
			},
		},
		{
			name: "bad start format",
			args: map[string]interface{}{
				"attendees": "alice@example.com",
				"start":     "tomorrow",
				"end":       "2025-03-12T15:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := schedulingRequestFromArgs(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFormatConflictReport(t *testing.T) {
	report := schedule.ConflictReport{
		Conflicts: []schedule.Conflict{
			{
				Attendee: "alice@example.com",
				Kind:     schedule.ConflictOverlappingMeeting,
				Window:   "14:00 - 15:00",
				Detail:   "Sprint review",
			},
		},
		Warnings: []schedule.AttendeeWarning{
			{Attendee: "bob@example.com", Err: context.DeadlineExceeded},
		},
	}

	out := formatConflictReport(report)
	if !strings.Contains(out, "Found 1 conflict(s)") {
		t.Errorf("missing conflict count in output:\n%s", out)
	}
	if !strings.Contains(out, "alice@example.com") {
		t.Errorf("missing attendee in output:\n%s", out)
	}
	if !strings.Contains(out, "bob@example.com") {
		t.Errorf("missing warning attendee in output:\n%s", out)
	}
}

func TestFormatConflictReport_Clear(t *testing.T) {
	out := formatConflictReport(schedule.ConflictReport{})
	if !strings.Contains(out, "No conflicts detected") {
		t.Errorf("unexpected output for clear report:\n%s", out)
	}
}

func TestFormatOutcome(t *testing.T) {
	start := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	rescheduled := schedule.TimeSlotCandidate{
		Start:      start,
		End:        start.Add(time.Hour),
		Confidence: 1.0,
		Verified:   true,
	}

	tests := []struct {
		name     string
		outcome  schedule.ResolutionOutcome
		contains string
	}{
		{
			name:     "rescheduled",
			outcome:  schedule.ResolutionOutcome{Kind: schedule.OutcomeRescheduled, Rescheduled: &rescheduled},
			contains: "Rescheduled to",
		},
		{
			name: "alternatives offered",
			outcome: schedule.ResolutionOutcome{
				Kind:         schedule.OutcomeAlternativesOffered,
				Alternatives: []schedule.TimeSlotCandidate{rescheduled},
			},
			contains: "Offering 1 alternative",
		},
		{
			name:     "forced",
			outcome:  schedule.ResolutionOutcome{Kind: schedule.OutcomeForced},
			contains: "forced despite conflicts",
		},
		{
			name:     "no alternatives",
			outcome:  schedule.ResolutionOutcome{Kind: schedule.OutcomeNoAlternativesFound},
			contains: "No alternative time slots found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatOutcome(tt.outcome)
			if !strings.Contains(out, tt.contains) {
				t.Errorf("formatOutcome() = %q, want it to contain %q", out, tt.contains)
			}
		})
	}
}

func TestFormatCandidates_VerificationLabels(t *testing.T) {
	start := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	candidates := []schedule.TimeSlotCandidate{
		{Start: start, End: start.Add(time.Hour), Confidence: 0.8, Verified: true},
		{Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), Confidence: 0.5, Verified: false},
	}

	out := formatCandidates(candidates)
	if !strings.Contains(out, "verified free") {
		t.Errorf("missing verified label:\n%s", out)
	}
	if !strings.Contains(out, "re-check before booking") {
		t.Errorf("missing unverified label:\n%s", out)
	}
}

func TestHandleIntentParse(t *testing.T) {
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "intent_parse",
			Arguments: map[string]interface{}{
				"text": "schedule a 30 minute meeting with jane@example.com tomorrow at 2pm",
				"now":  "2025-03-12T09:00:00Z",
			},
		},
	}

	result, err := handleIntentParse(context.Background(), request)
	if err != nil {
		t.Fatalf("handleIntentParse() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}

	text := resultText(t, result)
	var output parsedIntentOutput
	if err := json.Unmarshal([]byte(text), &output); err != nil {
		t.Fatalf("failed to decode output %q: %v", text, err)
	}

	if output.Type != "schedule-meeting" {
		t.Errorf("type = %q, want schedule-meeting", output.Type)
	}
	if len(output.Attendees) != 1 || output.Attendees[0] != "jane@example.com" {
		t.Errorf("attendees = %v, want [jane@example.com]", output.Attendees)
	}
	if output.DurationMinutes != 30 {
		t.Errorf("durationMinutes = %d, want 30", output.DurationMinutes)
	}
	if output.Day != "2025-03-13" {
		t.Errorf("day = %q, want 2025-03-13", output.Day)
	}
	if output.StartTime != "14:00" {
		t.Errorf("startTime = %q, want 14:00", output.StartTime)
	}
	if output.WindowStart == "" || output.WindowEnd == "" {
		t.Error("expected a resolved window for a fully specified request")
	}
}

func TestHandleIntentParse_MissingText(t *testing.T) {
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "intent_parse",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handleIntentParse(context.Background(), request)
	if err != nil {
		t.Fatalf("handleIntentParse() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing text")
	}
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	textContent, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return textContent.Text
}
