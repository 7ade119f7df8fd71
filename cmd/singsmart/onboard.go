// ABOUTME: CLI command for creating a singer profile.
// ABOUTME: Validation happens in the coach service.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/spf13/cobra"
)

var (
	onboardLevel string
	onboardRange string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <name>",
	Short: "Create a singer profile",
	Long: `Create a singer profile and start the program.

EXAMPLES:

  singsmart onboard "Ada" --level beginner
  singsmart onboard "Grace" --level advanced --range soprano`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := coach.NewUser{Name: args[0], ExperienceLevel: onboardLevel}
		if onboardRange != "" {
			in.VocalRange = &onboardRange
		}
		u, err := svc.CreateUser(in)
		if err != nil {
			return fmt.Errorf("failed to create singer: %w", err)
		}

		color.Green("✓ Welcome, %s", u.Name)
		fmt.Printf("  %s phase %d, week %d\n",
			color.New(color.Faint).Sprint(u.ID.String()[:8]), u.CurrentPhase, u.CurrentWeek)
		return nil
	},
}

func init() {
	onboardCmd.Flags().StringVarP(&onboardLevel, "level", "l", "beginner", "experience level: beginner, intermediate, advanced")
	onboardCmd.Flags().StringVarP(&onboardRange, "range", "r", "", "vocal range: soprano, alto, tenor, baritone, bass")
	rootCmd.AddCommand(onboardCmd)
}
