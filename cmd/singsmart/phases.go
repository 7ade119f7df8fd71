// ABOUTME: CLI command listing the training phases.
// ABOUTME: Shows completion per phase when a singer exists.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/singsmart/internal/storage"
	"github.com/spf13/cobra"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Show training phases and progress",
	Long: `Show the three training phases, their unlock criteria, and the active
singer's completion of each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := svc.ActiveUser(flagUser)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for _, p := range svc.Phases() {
			marker := " "
			if u != nil && u.CurrentPhase == p.ID {
				marker = color.GreenString("▶")
			}
			bold.Printf("%s Phase %d: %s", marker, p.ID, p.Name)
			fmt.Printf("  %s\n", faint.Sprintf("weeks %s", p.Weeks))

			if u != nil {
				view, err := svc.Phase(u.ID.String(), p.ID)
				if err != nil {
					return err
				}
				fmt.Printf("  %s %3.0f%%  %d/%d exercises\n",
					progressBar(view.PhaseProgress, 20), view.PhaseProgress,
					len(view.CompletedIDs), len(view.Exercises))
			}
			fmt.Printf("  %s\n", faint.Sprint(p.UnlockCriteria))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(phasesCmd)
}
