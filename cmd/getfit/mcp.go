// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for assistant integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/getfit/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout, so logs go to stderr or the
configured log file.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "getfit": {
        "command": "getfit",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_entry             Record a daily entry
  list_entries          List recent entries
  get_home              Progress overview
  get_progress          One user's daily series
  get_meal_plan         Weekly meal plan
  update_meal_plan_day  Change one meal slot
  get_grocery_prompt    Grocery-list prompt for the meal plan
  get_workout_plan      A user's weekly workout plan

AVAILABLE RESOURCES:

  getfit://home         Progress overview
  getfit://today        Today's entries
  getfit://meal-plan    Weekly meal plan`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
