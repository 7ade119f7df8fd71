// ABOUTME: CLI command for resetting a singer's progress.
// ABOUTME: Requires --yes since the exercise history cannot be recovered.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the singer to phase 1",
	Long: `Reset the active singer to phase 1, week 1 and delete all exercise progress.
Practice minutes and streak go back to zero.

CAUTION:

  This permanently deletes exercise progress. There is no undo.
  Pass --yes to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return fmt.Errorf("refusing to reset without --yes")
		}
		u, err := svc.ResetProgress(flagUser)
		if err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		color.Yellow("✗ Reset %s to phase %d, week %d", u.Name, u.CurrentPhase, u.CurrentWeek)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "confirm the reset")
	rootCmd.AddCommand(resetCmd)
}
