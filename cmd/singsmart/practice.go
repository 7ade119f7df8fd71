// ABOUTME: CLI command for recording a practiced exercise.
// ABOUTME: Scores come from flags or from the simulated analyzer.
package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/feedback"
	"github.com/harperreed/singsmart/internal/models"
	"github.com/spf13/cobra"
)

var (
	practicePitch     float64
	practiceTone      float64
	practiceBreathing float64
	practiceOverall   float64
	practiceFeedback  string
	practiceSimulate  bool
)

var practiceCmd = &cobra.Command{
	Use:     "practice <exercise>",
	Aliases: []string{"p"},
	Short:   "Record a practiced exercise",
	Long: `Record a completed exercise for the active singer.

The exercise can be given as an ID prefix or part of its name. Scores are
optional and range from 0 to 100. With --simulate, scores and feedback come
from the built-in analyzer.

EXAMPLES:

  singsmart practice "lip trill" --overall 82
  singsmart practice 1c9e --pitch 75 --tone 80 --breathing 70 --overall 76
  singsmart practice humming --simulate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := svc.Catalog()
		if err != nil {
			return err
		}
		ex, err := findExercise(catalog.Exercises, args[0])
		if err != nil {
			return err
		}

		sub := coach.ExerciseSubmission{ExerciseID: ex.ID}
		flags := cmd.Flags()
		if practiceSimulate {
			a := feedback.Analyze(rand.New(rand.NewSource(time.Now().UnixNano())))
			sub.PitchScore = &a.PitchAccuracy
			sub.ToneScore = &a.ToneStability
			sub.BreathingScore = &a.BreathingConsistency
			sub.OverallScore = &a.OverallRating
			note := strings.Join(a.Suggestions, " ")
			sub.Feedback = &note
		} else {
			if flags.Changed("pitch") {
				sub.PitchScore = &practicePitch
			}
			if flags.Changed("tone") {
				sub.ToneScore = &practiceTone
			}
			if flags.Changed("breathing") {
				sub.BreathingScore = &practiceBreathing
			}
			if flags.Changed("overall") {
				sub.OverallScore = &practiceOverall
			}
			if practiceFeedback != "" {
				sub.Feedback = &practiceFeedback
			}
		}

		before, err := svc.ActiveUser(flagUser)
		if err != nil {
			return fmt.Errorf("failed to find singer: %w", err)
		}
		p, created, err := svc.RecordExercise(before.ID.String(), sub)
		if err != nil {
			return fmt.Errorf("failed to record exercise: %w", err)
		}

		if created {
			color.Green("✓ Completed %s", ex.Name)
		} else {
			color.Green("✓ Updated %s", ex.Name)
		}
		fmt.Printf("  pitch %s  tone %s  breathing %s  overall %s\n",
			formatScore(p.PitchScore), formatScore(p.ToneScore),
			formatScore(p.BreathingScore), formatScore(p.OverallScore))
		if p.Feedback != nil && *p.Feedback != "" {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(*p.Feedback))
		}

		after, err := svc.ActiveUser(before.ID.String())
		if err != nil {
			return err
		}
		if after.CurrentPhase > before.CurrentPhase {
			color.Cyan("★ Phase %d unlocked", after.CurrentPhase)
		}
		return nil
	},
}

// findExercise matches an ID prefix first, then a case-insensitive name substring.
func findExercise(exercises []*models.Exercise, query string) (*models.Exercise, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("exercise is required")
	}

	var matches []*models.Exercise
	for _, e := range exercises {
		if strings.HasPrefix(e.ID.String(), q) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		for _, e := range exercises {
			if strings.Contains(strings.ToLower(e.Name), q) {
				matches = append(matches, e)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no exercise matches %q", query)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return nil, fmt.Errorf("%q matches several exercises: %s", query, strings.Join(names, ", "))
	}
}

func init() {
	practiceCmd.Flags().Float64Var(&practicePitch, "pitch", 0, "pitch score (0-100)")
	practiceCmd.Flags().Float64Var(&practiceTone, "tone", 0, "tone score (0-100)")
	practiceCmd.Flags().Float64Var(&practiceBreathing, "breathing", 0, "breathing score (0-100)")
	practiceCmd.Flags().Float64Var(&practiceOverall, "overall", 0, "overall score (0-100)")
	practiceCmd.Flags().StringVarP(&practiceFeedback, "feedback", "f", "", "feedback notes")
	practiceCmd.Flags().BoolVar(&practiceSimulate, "simulate", false, "generate scores with the analyzer")
	rootCmd.AddCommand(practiceCmd)
}
