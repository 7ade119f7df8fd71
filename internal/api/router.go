// ABOUTME: Gin router wiring for the HTTP API.
// ABOUTME: Binding validation reports JSON field names rather than Go field names.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/logger"
)

// RouterConfig holds what the router needs.
type RouterConfig struct {
	Handler     *Handler
	Logger      *logger.Logger
	CORSOrigins []string
}

// NewRouter builds the engine with middleware and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	h := cfg.Handler
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/user", h.GetUser)
		api.POST("/users", h.CreateUser)
		api.PATCH("/user", h.UpdateUser)
		api.POST("/reset-progress", h.ResetProgress)

		api.GET("/dashboard", h.Dashboard)
		api.GET("/exercises", h.Exercises)
		api.GET("/phases", h.Phases)
		api.GET("/phase/:id", h.Phase)
		api.POST("/exercise-progress", h.RecordExercise)
		api.GET("/routine", h.Routine)

		api.GET("/songs", h.Songs)
		api.GET("/backing-track", h.BackingTrack)
		api.POST("/voice-analysis", h.RecordVoiceAnalysis)
		api.GET("/voice-analyses", h.VoiceAnalyses)
		api.POST("/performances", h.RecordPerformance)
		api.GET("/performances", h.Performances)
	}

	return r
}

func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(coach.JSONFieldName)
}
