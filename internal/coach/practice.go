// ABOUTME: Exercise completion flow: progress upsert, minutes, streak, routine credit, advancement.
// ABOUTME: Also manages the weekly practice routine.
package coach

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
	"github.com/harperreed/singsmart/internal/progress"
	"github.com/harperreed/singsmart/internal/storage"
)

// ExerciseSubmission is one graded attempt at an exercise.
type ExerciseSubmission struct {
	ExerciseID     uuid.UUID `json:"exerciseId" validate:"required"`
	PitchScore     *float64  `json:"pitchScore" validate:"omitempty,min=0,max=100"`
	ToneScore      *float64  `json:"toneScore" validate:"omitempty,min=0,max=100"`
	BreathingScore *float64  `json:"breathingScore" validate:"omitempty,min=0,max=100"`
	OverallScore   *float64  `json:"overallScore" validate:"omitempty,min=0,max=100"`
	Feedback       *string   `json:"feedback"`
}

func (sub ExerciseSubmission) scores() models.Scores {
	return models.Scores{
		Pitch:     sub.PitchScore,
		Tone:      sub.ToneScore,
		Breathing: sub.BreathingScore,
		Overall:   sub.OverallScore,
		Feedback:  sub.Feedback,
	}
}

// RecordExercise stores a completion for the active user. The first completion
// of an exercise creates its progress row and may advance the user's phase;
// later ones overwrite the row. created reports which branch ran.
//
// An exercise missing from the catalog still gets its row but earns no
// minutes or routine credit.
func (s *Service) RecordExercise(userID string, sub ExerciseSubmission) (p *models.ExerciseProgress, created bool, err error) {
	if err := checkStruct(sub); err != nil {
		return nil, false, err
	}
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, false, err
	}
	exercise, err := s.repo.GetExercise(sub.ExerciseID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		exercise = nil
	case err != nil:
		return nil, false, err
	}

	defer s.locks.lock(u.ID)()

	// Fresh read under the lock.
	u, err = s.repo.GetUser(u.ID)
	if err != nil {
		return nil, false, err
	}
	now := s.opts.Now()

	existing, err := s.repo.GetProgressByExercise(u.ID, sub.ExerciseID)
	switch {
	case err == nil:
		p, err = s.repo.UpdateProgress(existing.ID, models.CompletionPatch(now, sub.scores()))
		if err != nil {
			return nil, false, fmt.Errorf("update progress: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		p = models.NewExerciseProgress(u.ID, sub.ExerciseID).Complete(now, sub.scores())
		if err := s.repo.CreateProgress(p); err != nil {
			return nil, false, fmt.Errorf("create progress: %w", err)
		}
		created = true
	default:
		return nil, false, err
	}

	creditMinutes := exercise != nil && (created || s.opts.MinutesPolicy == MinutesEveryCompletion)
	if err := s.recordPractice(u, exercise, now, creditMinutes); err != nil {
		return nil, false, err
	}

	log := s.log.With("user_id", u.ID, "exercise_id", sub.ExerciseID)
	if exercise == nil {
		log.Warn("exercise not in catalog", "created", created)
	} else {
		log.Info("exercise recorded", "created", created, "credited", creditMinutes)
	}

	if created {
		if err := s.advance(u.ID); err != nil {
			return nil, false, err
		}
	}
	return p, created, nil
}

// recordPractice updates minutes, streak, and routine credit after a completion.
// exercise is nil when the catalog has no such exercise; creditMinutes is then false.
func (s *Service) recordPractice(u *models.User, exercise *models.Exercise, now time.Time, creditMinutes bool) error {
	streak := nextStreak(u.Streak, u.LastPracticedAt, now)
	patch := models.UserPatch{
		Streak:          &streak,
		LastPracticedAt: &now,
	}
	if creditMinutes {
		total := u.TotalPracticeMinutes + exercise.DurationMinutes
		patch.TotalPracticeMinutes = &total
	}
	if _, err := s.repo.UpdateUser(u.ID, patch); err != nil {
		return fmt.Errorf("update practice totals: %w", err)
	}

	if !creditMinutes {
		return nil
	}
	routine, err := s.repo.GetRoutine(u.ID, u.CurrentWeek)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get routine: %w", err)
	}
	if !routine.Includes(exercise.ID) {
		return nil
	}
	done := routine.CompletedMinutes + exercise.DurationMinutes
	if _, err := s.repo.UpdateRoutine(routine.ID, models.RoutinePatch{CompletedMinutes: &done}); err != nil {
		return fmt.Errorf("credit routine: %w", err)
	}
	return nil
}

// advance evaluates the user against their current phase and persists a graduation.
func (s *Service) advance(userID uuid.UUID) error {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		return err
	}
	if u.CurrentPhase >= models.FinalPhase {
		return nil
	}
	phaseExercises, err := s.repo.ListExercisesByPhase(u.CurrentPhase)
	if err != nil {
		return fmt.Errorf("list phase exercises: %w", err)
	}
	rows, err := s.repo.ListProgress(u.ID)
	if err != nil {
		return fmt.Errorf("list progress: %w", err)
	}

	d := progress.Evaluate(u, phaseExercises, rows)
	if !d.Advance {
		return nil
	}
	if _, err := s.repo.UpdateUser(u.ID, models.UserPatch{CurrentPhase: &d.Phase, CurrentWeek: &d.Week}); err != nil {
		return fmt.Errorf("advance phase: %w", err)
	}
	s.log.Info("phase advanced", "user_id", u.ID, "phase", d.Phase, "week", d.Week,
		"average_score", d.AverageScore)
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// nextStreak returns the streak after practicing at now.
func nextStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	prev := last.In(now.Location())
	switch {
	case sameDay(prev, now):
		if current == 0 {
			return 1
		}
		return current
	case sameDay(prev, now.AddDate(0, 0, -1)):
		return current + 1
	default:
		return 1
	}
}

// streakExpired reports whether a streak last extended at last is broken at now.
func streakExpired(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	prev := last.In(now.Location())
	return !sameDay(prev, now) && !sameDay(prev, now.AddDate(0, 0, -1))
}

// Routine returns the practice routine for the user's current week, creating it
// from the current phase's exercises on first access.
func (s *Service) Routine(userID string) (*models.PracticeRoutine, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}

	defer s.locks.lock(u.ID)()

	routine, err := s.repo.GetRoutine(u.ID, u.CurrentWeek)
	if err == nil {
		return routine, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	exercises, err := s.repo.ListExercisesByPhase(u.CurrentPhase)
	if err != nil {
		return nil, fmt.Errorf("list phase exercises: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}
	routine = models.NewPracticeRoutine(u.ID, u.CurrentWeek, s.opts.WeeklyGoalMinutes, ids)
	if err := s.repo.CreateRoutine(routine); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	s.log.Debug("routine planned", "user_id", u.ID, "week", u.CurrentWeek, "exercises", len(ids))
	return routine, nil
}
