// ABOUTME: Root Cobra command for the singsmart CLI.
// ABOUTME: Loads config and opens storage, logging, and the coach service via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/config"
	"github.com/harperreed/singsmart/internal/logger"
	"github.com/harperreed/singsmart/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
	svc  *coach.Service
	log  *logger.Logger

	flagBackend string
	flagDataDir string
	flagUser    string
	flagVerbose bool
)

// loggingCommands always log, whatever --verbose says.
var loggingCommands = map[string]bool{"serve": true, "mcp": true}

var rootCmd = &cobra.Command{
	Use:   "singsmart",
	Short: "Vocal training coach",
	Long: `Singsmart is a vocal training backend: a three-phase, twelve-week program
of exercises, song recommendations, and progress tracking.

THE PROGRAM:

  Phase 1  Foundation                weeks 1-4    pitch, tone, breathing
  Phase 2  Technique & Expression    weeks 5-8    range, style, expression
  Phase 3  Performance & Confidence  weeks 9-12   stage presence, songs

  Complete every exercise in a phase with an average score of 70 or more
  to unlock the next one.

QUICK START:

  $ singsmart onboard "Ada" --level beginner --range alto
  $ singsmart practice lip --simulate     # Record an exercise by name
  $ singsmart status                      # Dashboard summary
  $ singsmart phases                      # Phase progress
  $ singsmart serve                       # Start the HTTP API

STORAGE:

  The default backend keeps everything in memory for the life of the process,
  which suits 'serve'. Use --backend sqlite (or "backend": "sqlite" in
  ~/.config/singsmart/config.json) to keep data between runs in
  ~/.local/share/singsmart/singsmart.db.

MCP INTEGRATION:

  Run 'singsmart mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "singsmart": { "command": "singsmart", "args": ["mcp", "--backend", "sqlite"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if repo != nil {
			_ = repo.Close()
			repo = nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log = logger.Nop()
		if flagVerbose || loggingCommands[cmd.Name()] {
			log, err = logger.New(cfg.GetLogMode())
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		svc = coach.New(repo, cfg.CoachOptions(), log)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			log.Sync()
		}
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: memory or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "singer ID (default: first singer)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log to stderr")
}
