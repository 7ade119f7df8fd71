// ABOUTME: MCP tool implementations for vocal training.
// ABOUTME: Covers onboarding, practice recording, progress views, and history.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/singsmart/internal/coach"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_user",
		Description: "Create a singer profile and start their training program",
	}, s.handleCreateUser)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the singer's profile, recent exercises, and weekly stats",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List exercises for the singer's current phase and which are completed",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_phase",
		Description: "Get exercises and completion percentage for one training phase",
	}, s.handleGetPhase)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_exercise",
		Description: "Record a completed exercise with optional scores (0-100)",
	}, s.handleRecordExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend_songs",
		Description: "List songs recommended for the singer's vocal range",
	}, s.handleRecommendSongs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_voice_analysis",
		Description: "Store a voice analysis; suggestions are generated when omitted",
	}, s.handleRecordVoiceAnalysis)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_performance",
		Description: "Store a virtual stage performance",
	}, s.handleRecordPerformance)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_routine",
		Description: "Get this week's practice routine",
	}, s.handleGetRoutine)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_progress",
		Description: "Reset the singer to phase 1 and clear all exercise progress",
	}, s.handleResetProgress)
}

// Tool input/output types

type userInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Singer ID; defaults to the first singer"`
}

type createUserInput struct {
	Name            string `json:"name" jsonschema:"Singer's name"`
	ExperienceLevel string `json:"experience_level" jsonschema:"beginner, intermediate, or advanced"`
	VocalRange      string `json:"vocal_range,omitempty" jsonschema:"soprano, alto, tenor, baritone, or bass"`
}

type userOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentPhase int    `json:"current_phase"`
	CurrentWeek  int    `json:"current_week"`
	Message      string `json:"message"`
}

type getPhaseInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"Singer ID; defaults to the first singer"`
	Phase  int    `json:"phase" jsonschema:"Phase number (1-3)"`
}

type recordExerciseInput struct {
	UserID         string   `json:"user_id,omitempty" jsonschema:"Singer ID; defaults to the first singer"`
	ExerciseID     string   `json:"exercise_id" jsonschema:"Exercise ID"`
	PitchScore     *float64 `json:"pitch_score,omitempty" jsonschema:"Pitch score 0-100"`
	ToneScore      *float64 `json:"tone_score,omitempty" jsonschema:"Tone score 0-100"`
	BreathingScore *float64 `json:"breathing_score,omitempty" jsonschema:"Breathing score 0-100"`
	OverallScore   *float64 `json:"overall_score,omitempty" jsonschema:"Overall score 0-100"`
	Feedback       string   `json:"feedback,omitempty" jsonschema:"Coach feedback"`
}

type recordExerciseOutput struct {
	ID           string `json:"id"`
	ExerciseID   string `json:"exercise_id"`
	FirstTime    bool   `json:"first_time"`
	CurrentPhase int    `json:"current_phase"`
	Message      string `json:"message"`
}

type voiceAnalysisInput struct {
	UserID               string   `json:"user_id,omitempty" jsonschema:"Singer ID; defaults to the first singer"`
	PitchAccuracy        float64  `json:"pitch_accuracy" jsonschema:"Pitch accuracy 0-100"`
	ToneStability        float64  `json:"tone_stability" jsonschema:"Tone stability 0-100"`
	BreathingConsistency float64  `json:"breathing_consistency" jsonschema:"Breathing consistency 0-100"`
	OverallRating        float64  `json:"overall_rating" jsonschema:"Overall rating 0-100"`
	Suggestions          []string `json:"suggestions,omitempty" jsonschema:"Improvement suggestions"`
}

type performanceInput struct {
	UserID            string   `json:"user_id,omitempty" jsonschema:"Singer ID; defaults to the first singer"`
	SongID            string   `json:"song_id,omitempty" jsonschema:"Song ID"`
	PerformanceScore  *float64 `json:"performance_score,omitempty" jsonschema:"Performance score 0-100"`
	AudienceReactions []string `json:"audience_reactions,omitempty" jsonschema:"Audience reactions"`
	StageEffects      []string `json:"stage_effects,omitempty" jsonschema:"Stage effects used"`
}

type historyOutput struct {
	ID      string   `json:"id"`
	Notes   []string `json:"notes,omitempty"`
	Message string   `json:"message"`
}

// Tool handlers

func (s *Server) handleCreateUser(ctx context.Context, req *mcp.CallToolRequest, input createUserInput) (*mcp.CallToolResult, userOutput, error) {
	in := coach.NewUser{Name: input.Name, ExperienceLevel: input.ExperienceLevel}
	if input.VocalRange != "" {
		in.VocalRange = &input.VocalRange
	}
	u, err := s.svc.CreateUser(in)
	if err != nil {
		return nil, userOutput{}, fmt.Errorf("failed to create user: %w", err)
	}

	return nil, userOutput{
		ID:           u.ID.String(),
		Name:         u.Name,
		CurrentPhase: u.CurrentPhase,
		CurrentWeek:  u.CurrentWeek,
		Message:      fmt.Sprintf("Created %s in phase %d, week %d", u.Name, u.CurrentPhase, u.CurrentWeek),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	d, err := s.svc.Dashboard(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return nil, d, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	list, err := s.svc.Exercises(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return nil, list, nil
}

func (s *Server) handleGetPhase(ctx context.Context, req *mcp.CallToolRequest, input getPhaseInput) (*mcp.CallToolResult, any, error) {
	view, err := s.svc.Phase(input.UserID, input.Phase)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load phase %d: %w", input.Phase, err)
	}
	return nil, view, nil
}

func (s *Server) handleRecordExercise(ctx context.Context, req *mcp.CallToolRequest, input recordExerciseInput) (*mcp.CallToolResult, recordExerciseOutput, error) {
	exerciseID, err := coach.ParseID("exercise_id", input.ExerciseID)
	if err != nil {
		return nil, recordExerciseOutput{}, fmt.Errorf("invalid exercise_id: %w", err)
	}

	sub := coach.ExerciseSubmission{
		ExerciseID:     exerciseID,
		PitchScore:     input.PitchScore,
		ToneScore:      input.ToneScore,
		BreathingScore: input.BreathingScore,
		OverallScore:   input.OverallScore,
	}
	if input.Feedback != "" {
		sub.Feedback = &input.Feedback
	}

	p, created, err := s.svc.RecordExercise(input.UserID, sub)
	if err != nil {
		return nil, recordExerciseOutput{}, fmt.Errorf("failed to record exercise: %w", err)
	}
	u, err := s.svc.ActiveUser(p.UserID.String())
	if err != nil {
		return nil, recordExerciseOutput{}, fmt.Errorf("failed to reload user: %w", err)
	}

	verb := "Updated"
	if created {
		verb = "Completed"
	}
	return nil, recordExerciseOutput{
		ID:           p.ID.String(),
		ExerciseID:   p.ExerciseID.String(),
		FirstTime:    created,
		CurrentPhase: u.CurrentPhase,
		Message:      fmt.Sprintf("%s exercise %s (phase %d)", verb, p.ExerciseID.String()[:8], u.CurrentPhase),
	}, nil
}

func (s *Server) handleRecommendSongs(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	list, err := s.svc.Songs(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list songs: %w", err)
	}
	if len(list.RecommendedSongs) == 0 {
		return nil, map[string]interface{}{"message": "No songs found."}, nil
	}
	return nil, list.RecommendedSongs, nil
}

func (s *Server) handleRecordVoiceAnalysis(ctx context.Context, req *mcp.CallToolRequest, input voiceAnalysisInput) (*mcp.CallToolResult, historyOutput, error) {
	a, err := s.svc.RecordVoiceAnalysis(input.UserID, coach.VoiceAnalysisInput{
		PitchAccuracy:        input.PitchAccuracy,
		ToneStability:        input.ToneStability,
		BreathingConsistency: input.BreathingConsistency,
		OverallRating:        input.OverallRating,
		Suggestions:          input.Suggestions,
	})
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to record voice analysis: %w", err)
	}
	return nil, historyOutput{
		ID:      a.ID.String(),
		Notes:   a.Suggestions,
		Message: fmt.Sprintf("Recorded voice analysis (overall %.0f)", a.OverallRating),
	}, nil
}

func (s *Server) handleRecordPerformance(ctx context.Context, req *mcp.CallToolRequest, input performanceInput) (*mcp.CallToolResult, historyOutput, error) {
	in := coach.PerformanceInput{
		PerformanceScore:  input.PerformanceScore,
		AudienceReactions: input.AudienceReactions,
		StageEffects:      input.StageEffects,
	}
	if input.SongID != "" {
		id, err := coach.ParseID("song_id", input.SongID)
		if err != nil {
			return nil, historyOutput{}, fmt.Errorf("invalid song_id: %w", err)
		}
		in.SongID = &id
	}

	p, err := s.svc.RecordPerformance(input.UserID, in)
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to record performance: %w", err)
	}
	return nil, historyOutput{
		ID:      p.ID.String(),
		Notes:   p.AudienceReactions,
		Message: "Recorded performance",
	}, nil
}

func (s *Server) handleGetRoutine(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	r, err := s.svc.Routine(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load routine: %w", err)
	}
	return nil, r, nil
}

func (s *Server) handleResetProgress(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, userOutput, error) {
	u, err := s.svc.ResetProgress(input.UserID)
	if err != nil {
		return nil, userOutput{}, fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil, userOutput{
		ID:           u.ID.String(),
		Name:         u.Name,
		CurrentPhase: u.CurrentPhase,
		CurrentWeek:  u.CurrentWeek,
		Message:      fmt.Sprintf("Reset %s to phase 1", u.Name),
	}, nil
}
