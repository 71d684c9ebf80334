package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the teams-mcp application
var rootCmd = &cobra.Command{
	Use:   "teams-mcp",
	Short: "Scheduling assistant MCP server with conflict resolution",
	Long: `teams-mcp is a scheduling assistant exposed as an MCP (Model Context
Protocol) server. It lets AI assistants schedule, update, and cancel
meetings, check multi-attendee availability, find meeting rooms, detect
scheduling conflicts, and propose alternative time slots.

It can run as:
  - An MCP server over stdio (default) or streamable HTTP
  - A CLI for the Google OAuth token setup (auth command)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "teams-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
