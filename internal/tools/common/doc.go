// Package common provides shared helpers for MCP tool implementations:
// account extraction from request arguments and instrumentation wrappers
// for tool handlers.
package common
