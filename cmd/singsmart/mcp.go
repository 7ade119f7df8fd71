// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/singsmart/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout, so logs go to stderr.

AVAILABLE TOOLS:

  create_user            Create a singer profile
  get_dashboard          Recent exercises and weekly stats
  list_exercises         Current phase exercises
  get_phase              Phase detail and completion
  record_exercise        Record a completed exercise
  recommend_songs        Songs for the singer's range
  record_voice_analysis  Store a voice analysis
  record_performance     Store a stage performance
  get_routine            This week's routine
  reset_progress         Back to phase 1

AVAILABLE RESOURCES:

  singsmart://phases     Phase definitions
  singsmart://dashboard  First singer's dashboard
  singsmart://catalog    Exercise and song library`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
