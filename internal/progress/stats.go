// ABOUTME: Read-only aggregates over a user's exercise progress.
// ABOUTME: Weekly stats, recent activity, and phase completion percentage.
package progress

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// DefaultGoalMinutes is the weekly practice goal when none is configured.
const DefaultGoalMinutes = 60

// DefaultRecentLimit is how many completions the dashboard shows.
const DefaultRecentLimit = 5

// WeeklyStats summarizes completed practice in a reporting window.
type WeeklyStats struct {
	PracticeMinutes    int     `json:"practiceMinutes"`
	ExercisesCompleted int     `json:"exercisesCompleted"`
	AverageScore       float64 `json:"averageScore"`
	GoalMinutes        int     `json:"goalMinutes"`
}

// Activity pairs a completion with the exercise it refers to.
type Activity struct {
	Exercise *models.Exercise         `json:"exercise"`
	Progress *models.ExerciseProgress `json:"progress"`
}

func index(exercises []*models.Exercise) map[uuid.UUID]*models.Exercise {
	m := make(map[uuid.UUID]*models.Exercise, len(exercises))
	for _, e := range exercises {
		m[e.ID] = e
	}
	return m
}

// inWindow reports whether p was completed within window of now.
// A zero window covers all time.
func inWindow(p *models.ExerciseProgress, window time.Duration, now time.Time) bool {
	if window <= 0 {
		return true
	}
	if p.CompletedAt == nil {
		return false
	}
	return !p.CompletedAt.Before(now.Add(-window))
}

// Stats computes WeeklyStats for rows completed within window of now.
// Rows referencing unknown exercises count toward the total but add no minutes.
func Stats(rows []*models.ExerciseProgress, exercises []*models.Exercise, window time.Duration, now time.Time, goal int) WeeklyStats {
	if goal <= 0 {
		goal = DefaultGoalMinutes
	}
	byID := index(exercises)
	stats := WeeklyStats{GoalMinutes: goal}

	var sum float64
	var scored int
	for _, p := range rows {
		if !p.Completed || !inWindow(p, window, now) {
			continue
		}
		stats.ExercisesCompleted++
		if e, ok := byID[p.ExerciseID]; ok {
			stats.PracticeMinutes += e.DurationMinutes
		}
		if p.OverallScore != nil {
			sum += *p.OverallScore
			scored++
		}
	}
	if scored > 0 {
		stats.AverageScore = sum / float64(scored)
	}
	return stats
}

// Recent returns up to limit completions, newest first, paired with their exercise.
// Completions whose exercise no longer exists are dropped.
func Recent(rows []*models.ExerciseProgress, exercises []*models.Exercise, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var done []*models.ExerciseProgress
	for _, p := range rows {
		if p.Completed {
			done = append(done, p)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return completedAt(done[i]).After(completedAt(done[j]))
	})
	if len(done) > limit {
		done = done[:limit]
	}

	byID := index(exercises)
	out := []Activity{}
	for _, p := range done {
		e, ok := byID[p.ExerciseID]
		if !ok {
			continue
		}
		out = append(out, Activity{Exercise: e, Progress: p})
	}
	return out
}

func completedAt(p *models.ExerciseProgress) time.Time {
	if p.CompletedAt == nil {
		return time.Time{}
	}
	return *p.CompletedAt
}

// CompletedIDs returns the exercise IDs with a completed row, in row order.
func CompletedIDs(rows []*models.ExerciseProgress) []uuid.UUID {
	ids := []uuid.UUID{}
	for _, p := range rows {
		if p.Completed {
			ids = append(ids, p.ExerciseID)
		}
	}
	return ids
}

// CompletedInPhase returns the completed rows whose exercise belongs to phaseExercises.
func CompletedInPhase(rows []*models.ExerciseProgress, phaseExercises []*models.Exercise) []*models.ExerciseProgress {
	inPhase := index(phaseExercises)
	var out []*models.ExerciseProgress
	for _, p := range rows {
		if _, ok := inPhase[p.ExerciseID]; ok && p.Completed {
			out = append(out, p)
		}
	}
	return out
}

// PhaseCompletion returns the percentage of phaseExercises the user has completed.
// It is 0 for an empty phase.
func PhaseCompletion(rows []*models.ExerciseProgress, phaseExercises []*models.Exercise) float64 {
	if len(phaseExercises) == 0 {
		return 0
	}
	done := len(CompletedInPhase(rows, phaseExercises))
	return float64(done) / float64(len(phaseExercises)) * 100
}
