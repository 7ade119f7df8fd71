// ABOUTME: HTTP handlers for the /api routes, one per endpoint.
// ABOUTME: Handlers bind and validate input, call the coach service, and write JSON.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/logger"
	"github.com/harperreed/singsmart/internal/models"
)

// Handler serves the API routes.
type Handler struct {
	svc *coach.Service
	log *logger.Logger
}

// NewHandler creates a Handler. A nil log discards output.
func NewHandler(svc *coach.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log}
}

func activeUserID(c *gin.Context) string {
	return c.GetHeader(UserHeader)
}

// Health answers liveness checks.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GetUser handles GET /api/user.
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.svc.ActiveUser(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// CreateUser handles POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req coach.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	u, err := h.svc.CreateUser(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUser handles PATCH /api/user.
func (h *Handler) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.respondBindError(c, err)
		return
	}
	u, err := h.svc.UpdateUser(activeUserID(c), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ResetProgress handles POST /api/reset-progress.
func (h *Handler) ResetProgress(c *gin.Context) {
	u, err := h.svc.ResetProgress(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Dashboard handles GET /api/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Exercises handles GET /api/exercises.
func (h *Handler) Exercises(c *gin.Context) {
	list, err := h.svc.Exercises(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Phase handles GET /api/phase/:id.
func (h *Handler) Phase(c *gin.Context) {
	phase, err := coach.ParsePhase(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	view, err := h.svc.Phase(activeUserID(c), phase)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Phases handles GET /api/phases.
func (h *Handler) Phases(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Phases())
}

type exerciseProgressRequest struct {
	ExerciseID     string   `json:"exerciseId"`
	PitchScore     *float64 `json:"pitchScore"`
	ToneScore      *float64 `json:"toneScore"`
	BreathingScore *float64 `json:"breathingScore"`
	OverallScore   *float64 `json:"overallScore"`
	Feedback       *string  `json:"feedback"`
}

// RecordExercise handles POST /api/exercise-progress. It answers 201 for a
// first completion and 200 when an existing row was overwritten.
func (h *Handler) RecordExercise(c *gin.Context) {
	var req exerciseProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	exerciseID, err := coach.ParseID("exerciseId", req.ExerciseID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	p, created, err := h.svc.RecordExercise(activeUserID(c), coach.ExerciseSubmission{
		ExerciseID:     exerciseID,
		PitchScore:     req.PitchScore,
		ToneScore:      req.ToneScore,
		BreathingScore: req.BreathingScore,
		OverallScore:   req.OverallScore,
		Feedback:       req.Feedback,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

// Songs handles GET /api/songs.
func (h *Handler) Songs(c *gin.Context) {
	list, err := h.svc.Songs(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type voiceAnalysisRequest struct {
	PitchAccuracy        *float64 `json:"pitchAccuracy" binding:"required"`
	ToneStability        *float64 `json:"toneStability" binding:"required"`
	BreathingConsistency *float64 `json:"breathingConsistency" binding:"required"`
	OverallRating        *float64 `json:"overallRating" binding:"required"`
	Suggestions          []string `json:"suggestions"`
}

// RecordVoiceAnalysis handles POST /api/voice-analysis.
func (h *Handler) RecordVoiceAnalysis(c *gin.Context) {
	var req voiceAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	a, err := h.svc.RecordVoiceAnalysis(activeUserID(c), coach.VoiceAnalysisInput{
		PitchAccuracy:        *req.PitchAccuracy,
		ToneStability:        *req.ToneStability,
		BreathingConsistency: *req.BreathingConsistency,
		OverallRating:        *req.OverallRating,
		Suggestions:          req.Suggestions,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// VoiceAnalyses handles GET /api/voice-analyses.
func (h *Handler) VoiceAnalyses(c *gin.Context) {
	list, err := h.svc.VoiceAnalyses(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type performanceRequest struct {
	SongID            *string  `json:"songId"`
	AudienceReactions []string `json:"audienceReactions"`
	PerformanceScore  *float64 `json:"performanceScore"`
	StageEffects      []string `json:"stageEffects"`
}

// RecordPerformance handles POST /api/performances.
func (h *Handler) RecordPerformance(c *gin.Context) {
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}
	in := coach.PerformanceInput{
		AudienceReactions: req.AudienceReactions,
		PerformanceScore:  req.PerformanceScore,
		StageEffects:      req.StageEffects,
	}
	if req.SongID != nil && *req.SongID != "" {
		id, err := coach.ParseID("songId", *req.SongID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		in.SongID = &id
	}
	p, err := h.svc.RecordPerformance(activeUserID(c), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Performances handles GET /api/performances.
func (h *Handler) Performances(c *gin.Context) {
	list, err := h.svc.Performances(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Routine handles GET /api/routine.
func (h *Handler) Routine(c *gin.Context) {
	r, err := h.svc.Routine(activeUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

type backingTrackQuery struct {
	Genre string `form:"genre"`
	BPM   int    `form:"bpm"`
	Key   string `form:"key"`
}

// BackingTrack handles GET /api/backing-track.
func (h *Handler) BackingTrack(c *gin.Context) {
	var q backingTrackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondBindError(c, err)
		return
	}
	track, err := h.svc.BackingTrack(q.Genre, q.BPM, q.Key)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}
