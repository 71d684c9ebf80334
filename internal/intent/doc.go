// Package intent extracts structured scheduling entities from free text.
//
// Conversational clients send user utterances such as "schedule a 30 minute
// meeting with jane@example.com tomorrow at 2pm". This package turns those
// into attendee lists, durations, day and clock-time hints and a conflict
// resolution directive using regular expression matching. It deliberately
// stops short of full natural language understanding; anything the patterns
// do not recognize is left as a zero value for the caller to handle.
package intent
