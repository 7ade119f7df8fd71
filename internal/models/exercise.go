// ABOUTME: Exercise catalog model and ExerciseProgress completion records.
// ABOUTME: Progress rows hold per-attempt scores and are unique per user and exercise.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups exercises by purpose.
type Category string

const (
	CategoryWarmup      Category = "warmup"
	CategoryTechnique   Category = "technique"
	CategoryPerformance Category = "performance"
)

// Difficulty is shared by exercises and songs.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Exercise is an immutable catalog entry.
type Exercise struct {
	ID              uuid.UUID  `json:"id" yaml:"id"`
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description" yaml:"description"`
	Phase           int        `json:"phase" yaml:"phase"`
	Category        Category   `json:"category" yaml:"category"`
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty"`
	DurationMinutes int        `json:"durationMinutes" yaml:"duration_minutes"`
	Instructions    string     `json:"instructions" yaml:"instructions"`
}

// ExerciseProgress records a user's completion of one exercise.
type ExerciseProgress struct {
	ID             uuid.UUID  `json:"id" yaml:"id"`
	UserID         uuid.UUID  `json:"userId" yaml:"user_id"`
	ExerciseID     uuid.UUID  `json:"exerciseId" yaml:"exercise_id"`
	Completed      bool       `json:"completed" yaml:"completed"`
	PitchScore     *float64   `json:"pitchScore" yaml:"pitch_score,omitempty"`
	ToneScore      *float64   `json:"toneScore" yaml:"tone_score,omitempty"`
	BreathingScore *float64   `json:"breathingScore" yaml:"breathing_score,omitempty"`
	OverallScore   *float64   `json:"overallScore" yaml:"overall_score,omitempty"`
	CompletedAt    *time.Time `json:"completedAt" yaml:"completed_at,omitempty"`
	Feedback       *string    `json:"feedback" yaml:"feedback,omitempty"`
}

// NewExerciseProgress creates an incomplete progress row with no scores.
func NewExerciseProgress(userID, exerciseID uuid.UUID) *ExerciseProgress {
	return &ExerciseProgress{
		ID:         uuid.New(),
		UserID:     userID,
		ExerciseID: exerciseID,
	}
}

// Complete marks the row completed at t with the given scores.
func (p *ExerciseProgress) Complete(t time.Time, s Scores) *ExerciseProgress {
	CompletionPatch(t, s).Apply(p)
	return p
}

// Clone returns a deep copy of the progress row.
func (p *ExerciseProgress) Clone() *ExerciseProgress {
	c := *p
	c.PitchScore = cloneFloat(p.PitchScore)
	c.ToneScore = cloneFloat(p.ToneScore)
	c.BreathingScore = cloneFloat(p.BreathingScore)
	c.OverallScore = cloneFloat(p.OverallScore)
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		c.CompletedAt = &t
	}
	if p.Feedback != nil {
		f := *p.Feedback
		c.Feedback = &f
	}
	return &c
}

// Scores is one graded attempt at an exercise. Nil scores mean scoring was skipped.
type Scores struct {
	Pitch     *float64
	Tone      *float64
	Breathing *float64
	Overall   *float64
	Feedback  *string
}

// ProgressPatch carries a partial progress update. Nil fields are left untouched.
// Attempt replaces all four scores and the feedback as a unit, including with nil.
type ProgressPatch struct {
	Completed   *bool
	CompletedAt *time.Time
	Attempt     *Scores
}

// CompletionPatch builds the patch written when an exercise is completed again.
func CompletionPatch(t time.Time, s Scores) ProgressPatch {
	done := true
	return ProgressPatch{
		Completed:   &done,
		CompletedAt: &t,
		Attempt:     &s,
	}
}

// Apply merges the patch into p.
func (pp ProgressPatch) Apply(p *ExerciseProgress) {
	if pp.Completed != nil {
		p.Completed = *pp.Completed
	}
	if pp.CompletedAt != nil {
		t := *pp.CompletedAt
		p.CompletedAt = &t
	}
	if pp.Attempt != nil {
		p.PitchScore = cloneFloat(pp.Attempt.Pitch)
		p.ToneScore = cloneFloat(pp.Attempt.Tone)
		p.BreathingScore = cloneFloat(pp.Attempt.Breathing)
		p.OverallScore = cloneFloat(pp.Attempt.Overall)
		p.Feedback = nil
		if pp.Attempt.Feedback != nil {
			f := *pp.Attempt.Feedback
			p.Feedback = &f
		}
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
