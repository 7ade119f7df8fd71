// ABOUTME: Append-only history models: voice analyses and performances.
// ABOUTME: Also defines the Song catalog entry and weekly PracticeRoutine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// VoiceAnalysis is one scored recording. Never updated after insert.
type VoiceAnalysis struct {
	ID                   uuid.UUID `json:"id" yaml:"id"`
	UserID               uuid.UUID `json:"userId" yaml:"user_id"`
	PitchAccuracy        float64   `json:"pitchAccuracy" yaml:"pitch_accuracy"`
	ToneStability        float64   `json:"toneStability" yaml:"tone_stability"`
	BreathingConsistency float64   `json:"breathingConsistency" yaml:"breathing_consistency"`
	OverallRating        float64   `json:"overallRating" yaml:"overall_rating"`
	Suggestions          []string  `json:"suggestions" yaml:"suggestions"`
	AnalyzedAt           time.Time `json:"analyzedAt" yaml:"analyzed_at"`
}

// NewVoiceAnalysis creates an analysis for userID stamped with the current time.
func NewVoiceAnalysis(userID uuid.UUID, pitch, tone, breathing, overall float64) *VoiceAnalysis {
	return &VoiceAnalysis{
		ID:                   uuid.New(),
		UserID:               userID,
		PitchAccuracy:        pitch,
		ToneStability:        tone,
		BreathingConsistency: breathing,
		OverallRating:        overall,
		Suggestions:          []string{},
		AnalyzedAt:           time.Now(),
	}
}

// WithSuggestions sets the suggestion list.
func (a *VoiceAnalysis) WithSuggestions(s []string) *VoiceAnalysis {
	a.Suggestions = append([]string{}, s...)
	return a
}

// Clone returns a deep copy of the analysis.
func (a *VoiceAnalysis) Clone() *VoiceAnalysis {
	c := *a
	c.Suggestions = append([]string{}, a.Suggestions...)
	return &c
}

// Song is an immutable catalog entry used for recommendations.
type Song struct {
	ID         uuid.UUID  `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Artist     string     `json:"artist" yaml:"artist"`
	Genre      string     `json:"genre" yaml:"genre"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	VocalRange string     `json:"vocalRange" yaml:"vocal_range"`
	BPM        int        `json:"bpm" yaml:"bpm"`
	Key        string     `json:"key" yaml:"key"`
}

// Performance is one virtual stage run. Never updated after insert.
type Performance struct {
	ID                uuid.UUID  `json:"id" yaml:"id"`
	UserID            uuid.UUID  `json:"userId" yaml:"user_id"`
	SongID            *uuid.UUID `json:"songId" yaml:"song_id,omitempty"`
	AudienceReactions []string   `json:"audienceReactions" yaml:"audience_reactions,omitempty"`
	PerformanceScore  *float64   `json:"performanceScore" yaml:"performance_score,omitempty"`
	StageEffects      []string   `json:"stageEffects" yaml:"stage_effects,omitempty"`
	PerformedAt       time.Time  `json:"performedAt" yaml:"performed_at"`
}

// NewPerformance creates a performance for userID stamped with the current time.
func NewPerformance(userID uuid.UUID) *Performance {
	return &Performance{
		ID:          uuid.New(),
		UserID:      userID,
		PerformedAt: time.Now(),
	}
}

// Clone returns a deep copy of the performance.
func (p *Performance) Clone() *Performance {
	c := *p
	if p.SongID != nil {
		id := *p.SongID
		c.SongID = &id
	}
	if p.AudienceReactions != nil {
		c.AudienceReactions = append([]string{}, p.AudienceReactions...)
	}
	if p.StageEffects != nil {
		c.StageEffects = append([]string{}, p.StageEffects...)
	}
	c.PerformanceScore = cloneFloat(p.PerformanceScore)
	return &c
}

// PracticeRoutine is the plan for one program week. One per user and week.
type PracticeRoutine struct {
	ID               uuid.UUID   `json:"id" yaml:"id"`
	UserID           uuid.UUID   `json:"userId" yaml:"user_id"`
	Week             int         `json:"week" yaml:"week"`
	ExerciseIDs      []uuid.UUID `json:"exerciseIds" yaml:"exercise_ids"`
	GoalMinutes      int         `json:"goalMinutes" yaml:"goal_minutes"`
	CompletedMinutes int         `json:"completedMinutes" yaml:"completed_minutes"`
}

// NewPracticeRoutine creates an empty routine for the given week.
func NewPracticeRoutine(userID uuid.UUID, week, goalMinutes int, exerciseIDs []uuid.UUID) *PracticeRoutine {
	return &PracticeRoutine{
		ID:          uuid.New(),
		UserID:      userID,
		Week:        week,
		ExerciseIDs: append([]uuid.UUID{}, exerciseIDs...),
		GoalMinutes: goalMinutes,
	}
}

// Includes reports whether the routine plans exerciseID.
func (r *PracticeRoutine) Includes(exerciseID uuid.UUID) bool {
	for _, id := range r.ExerciseIDs {
		if id == exerciseID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the routine.
func (r *PracticeRoutine) Clone() *PracticeRoutine {
	c := *r
	c.ExerciseIDs = append([]uuid.UUID{}, r.ExerciseIDs...)
	return &c
}

// RoutinePatch carries a partial routine update. Nil fields are left untouched.
type RoutinePatch struct {
	ExerciseIDs      []uuid.UUID
	GoalMinutes      *int
	CompletedMinutes *int
}

// Apply merges the patch into r.
func (p RoutinePatch) Apply(r *PracticeRoutine) {
	if p.ExerciseIDs != nil {
		r.ExerciseIDs = append([]uuid.UUID{}, p.ExerciseIDs...)
	}
	if p.GoalMinutes != nil {
		r.GoalMinutes = *p.GoalMinutes
	}
	if p.CompletedMinutes != nil {
		r.CompletedMinutes = *p.CompletedMinutes
	}
}
