// ABOUTME: Phase advancement rule: graduate when a phase is fully completed at 70% or better.
// ABOUTME: Pure decision function; the caller persists the transition.
package progress

import (
	"github.com/harperreed/singsmart/internal/models"
)

// Decision is the outcome of evaluating a user for advancement.
type Decision struct {
	Advance      bool    `json:"advance"`
	Phase        int     `json:"phase"`
	Week         int     `json:"week"`
	Completed    int     `json:"completed"`
	Total        int     `json:"total"`
	AverageScore float64 `json:"averageScore"`
}

// Evaluate decides whether user graduates from their current phase.
// phaseExercises must be the exercises of user.CurrentPhase. A missing overall
// score counts as 0 in the average.
func Evaluate(user *models.User, phaseExercises []*models.Exercise, rows []*models.ExerciseProgress) Decision {
	d := Decision{
		Phase: user.CurrentPhase,
		Week:  user.CurrentWeek,
		Total: len(phaseExercises),
	}

	done := CompletedInPhase(rows, phaseExercises)
	d.Completed = len(done)
	if d.Completed > 0 {
		var sum float64
		for _, p := range done {
			if p.OverallScore != nil {
				sum += *p.OverallScore
			}
		}
		d.AverageScore = sum / float64(d.Completed)
	}

	if user.CurrentPhase >= models.FinalPhase || d.Total == 0 {
		return d
	}
	if d.Completed < d.Total || d.AverageScore < models.AdvanceThreshold {
		return d
	}

	d.Advance = true
	d.Phase = user.CurrentPhase + 1
	d.Week = user.CurrentPhase*models.WeeksPerPhase + 1
	return d
}
