// ABOUTME: CLI command for running the HTTP API and background jobs.
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/singsmart/internal/api"
	"github.com/harperreed/singsmart/internal/scheduler"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST API server and the daily streak check.

ENDPOINTS:

  GET   /api/user              Active singer
  POST  /api/users             Onboard a singer
  PATCH /api/user              Update the active singer
  POST  /api/reset-progress    Back to phase 1
  GET   /api/dashboard         Recent exercises and weekly stats
  GET   /api/exercises         Current phase exercises
  GET   /api/phases            Phase definitions
  GET   /api/phase/:id         Phase detail and completion
  POST  /api/exercise-progress Record an exercise
  GET   /api/routine           This week's routine
  GET   /api/songs             Song library and recommendations
  GET   /api/backing-track     Backing track for genre, bpm, key
  POST  /api/voice-analysis    Store a voice analysis
  GET   /api/voice-analyses    Voice analysis history
  POST  /api/performances      Store a stage performance
  GET   /api/performances      Performance history
  GET   /healthz               Liveness

  Send X-User-ID to act as a specific singer; otherwise the first singer is used.

EXAMPLES:

  singsmart serve                       # Listen on the configured address
  singsmart serve --addr :8080          # Override the address
  singsmart serve --backend sqlite      # Persist to disk`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GetLogMode() == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}
		addr := cfg.GetAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		router := api.NewRouter(api.RouterConfig{
			Handler:     api.NewHandler(svc, log),
			Logger:      log,
			CORSOrigins: cfg.CORSOrigins,
		})

		jobs := scheduler.New(svc, nil, log)
		if err := jobs.Start(cfg.StreakCheck); err != nil {
			return err
		}
		defer jobs.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return api.NewServer(addr, router, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
