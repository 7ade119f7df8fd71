// ABOUTME: Append-only history: voice analyses and virtual stage performances.
// ABOUTME: Missing suggestions and audience reactions are filled from the feedback package.
package coach

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/feedback"
	"github.com/harperreed/singsmart/internal/models"
)

// VoiceAnalysisInput is a scored recording to store.
type VoiceAnalysisInput struct {
	PitchAccuracy        float64  `json:"pitchAccuracy" validate:"min=0,max=100"`
	ToneStability        float64  `json:"toneStability" validate:"min=0,max=100"`
	BreathingConsistency float64  `json:"breathingConsistency" validate:"min=0,max=100"`
	OverallRating        float64  `json:"overallRating" validate:"min=0,max=100"`
	Suggestions          []string `json:"suggestions"`
}

// RecordVoiceAnalysis stores an analysis for the active user.
func (s *Service) RecordVoiceAnalysis(userID string, in VoiceAnalysisInput) (*models.VoiceAnalysis, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}

	suggestions := in.Suggestions
	if len(suggestions) == 0 {
		suggestions = feedback.Suggestions(in.PitchAccuracy, in.ToneStability, in.BreathingConsistency)
	}
	a := models.NewVoiceAnalysis(u.ID, in.PitchAccuracy, in.ToneStability, in.BreathingConsistency, in.OverallRating).
		WithSuggestions(suggestions)
	a.AnalyzedAt = s.opts.Now()

	if err := s.repo.CreateVoiceAnalysis(a); err != nil {
		return nil, fmt.Errorf("create voice analysis: %w", err)
	}
	s.log.Debug("voice analysis recorded", "user_id", u.ID, "overall", in.OverallRating)
	return a, nil
}

// VoiceAnalyses lists the active user's analyses, oldest first.
func (s *Service) VoiceAnalyses(userID string) ([]*models.VoiceAnalysis, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListVoiceAnalyses(u.ID)
	if err != nil {
		return nil, fmt.Errorf("list voice analyses: %w", err)
	}
	if list == nil {
		list = []*models.VoiceAnalysis{}
	}
	return list, nil
}

// PerformanceInput is one virtual stage run to store.
type PerformanceInput struct {
	SongID            *uuid.UUID `json:"songId"`
	AudienceReactions []string   `json:"audienceReactions"`
	PerformanceScore  *float64   `json:"performanceScore" validate:"omitempty,min=0,max=100"`
	StageEffects      []string   `json:"stageEffects"`
}

// RecordPerformance stores a performance for the active user. The song, when
// given, must exist.
func (s *Service) RecordPerformance(userID string, in PerformanceInput) (*models.Performance, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}
	if in.SongID != nil {
		if _, err := s.repo.GetSong(*in.SongID); err != nil {
			return nil, err
		}
	}

	p := models.NewPerformance(u.ID)
	p.PerformedAt = s.opts.Now()
	p.SongID = in.SongID
	p.PerformanceScore = in.PerformanceScore
	p.StageEffects = in.StageEffects
	p.AudienceReactions = in.AudienceReactions
	if len(p.AudienceReactions) == 0 && in.PerformanceScore != nil {
		p.AudienceReactions = feedback.AudienceReaction(*in.PerformanceScore).Reactions
	}

	if err := s.repo.CreatePerformance(p); err != nil {
		return nil, fmt.Errorf("create performance: %w", err)
	}
	s.log.Debug("performance recorded", "user_id", u.ID)
	return p, nil
}

// Performances lists the active user's performances, oldest first.
func (s *Service) Performances(userID string) ([]*models.Performance, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListPerformances(u.ID)
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	if list == nil {
		list = []*models.Performance{}
	}
	return list, nil
}

type trackRequest struct {
	BPM int `json:"bpm" validate:"min=0,max=300"`
}

// BackingTrack describes a practice track for genre at bpm in key.
func (s *Service) BackingTrack(genre string, bpm int, key string) (feedback.Track, error) {
	if err := checkStruct(trackRequest{BPM: bpm}); err != nil {
		return feedback.Track{}, err
	}
	return feedback.BackingTrack(genre, bpm, key), nil
}
