// ABOUTME: CLI command showing the singer's dashboard.
// ABOUTME: Prints profile, weekly stats, and recent exercises.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the singer's dashboard",
	Long: `Show the active singer's profile, this week's stats, and recent exercises.

EXAMPLES:

  singsmart status
  singsmart status --user 3f2a...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := svc.Dashboard(flagUser)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		u := d.User

		bold.Printf("%s\n", u.Name)
		fmt.Printf("  Phase %d, week %d  %s\n", u.CurrentPhase, u.CurrentWeek, faint.Sprint(u.ExperienceLevel))
		fmt.Printf("  Streak %d days  Total %d min\n", u.Streak, u.TotalPracticeMinutes)
		fmt.Println()

		s := d.WeeklyStats
		bold.Println("This week")
		fmt.Printf("  %s %d/%d min\n", progressBar(percent(s.PracticeMinutes, s.GoalMinutes), 20), s.PracticeMinutes, s.GoalMinutes)
		fmt.Printf("  %d exercises, average score %.1f\n", s.ExercisesCompleted, s.AverageScore)
		fmt.Println()

		if len(d.RecentExercises) == 0 {
			fmt.Println("No exercises yet.")
			return nil
		}
		bold.Println("Recent")
		for _, a := range d.RecentExercises {
			when := ""
			if a.Progress.CompletedAt != nil {
				when = a.Progress.CompletedAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("  %s %s score %s\n",
				faint.Sprint(when),
				padRight(truncate(a.Exercise.Name, 28), 28),
				formatScore(a.Progress.OverallScore))
		}
		return nil
	},
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
