// Package logging provides structured logging utilities for the scheduling
// assistant.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (attendee email anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for dependency injection
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "schedule.detect")
//	logger.Info("conflict detection finished",
//	    logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("attendee skipped",
//	    logging.UserHash(attendee))
//
// # Security Considerations
//
// Attendee emails are hashed before logging to prevent PII leakage while
// still allowing correlation across log entries.
package logging
