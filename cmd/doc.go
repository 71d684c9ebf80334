// Package cmd implements the command-line interface for teams-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server providing scheduling tools for AI assistants
//   - auth: Authorize access to a Google account (url, save, status subcommands)
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
