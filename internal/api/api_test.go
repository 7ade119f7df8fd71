// ABOUTME: HTTP tests for the API routes using httptest and gin test mode.
// ABOUTME: Each test runs against a freshly seeded in-memory store.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/coach"
	"github.com/harperreed/singsmart/internal/models"
	"github.com/harperreed/singsmart/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *gin.Engine
	repo   *storage.MemoryStore
}

func newTestAPI(t *testing.T, opts coach.Options) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := storage.NewMemoryStore()
	require.NoError(t, storage.Seed(repo))

	if opts.Now == nil {
		clock := time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
		opts.Now = func() time.Time { return clock }
	}
	svc := coach.New(repo, opts, nil)
	router := NewRouter(RouterConfig{
		Handler:     NewHandler(svc, nil),
		CORSOrigins: []string{"http://localhost:5173"},
	})
	return &testAPI{router: router, repo: repo}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testAPI) createUser(t *testing.T, body map[string]interface{}) models.User {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.User](t, w)
}

func (a *testAPI) phaseExercises(t *testing.T, phase int) []*models.Exercise {
	t.Helper()
	list, err := a.repo.ListExercisesByPhase(phase)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list
}

func fields(body ErrorBody) []string {
	out := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		out = append(out, e.Field)
	}
	return out
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	w := a.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestUserNotFoundBeforeOnboarding(t *testing.T) {
	a := newTestAPI(t, coach.Options{})

	for _, path := range []string{"/api/user", "/api/dashboard", "/api/phase/1", "/api/routine"} {
		w := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.NotEmpty(t, decode[ErrorBody](t, w).Message, path)
	}
	w := a.do(t, http.MethodPost, "/api/reset-progress", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndGetUser(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	created := a.createUser(t, map[string]interface{}{
		"name": "Ada", "experienceLevel": "beginner", "vocalRange": "alto",
	})
	assert.Equal(t, 1, created.CurrentPhase)
	assert.Equal(t, 1, created.CurrentWeek)

	w := a.do(t, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.User](t, w)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.VocalRange)
	assert.Equal(t, models.RangeAlto, *got.VocalRange)
}

func TestCreateUserValidation(t *testing.T) {
	a := newTestAPI(t, coach.Options{})

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing name", map[string]interface{}{"experienceLevel": "beginner"}, "name"},
		{"bad level", map[string]interface{}{"name": "Ada", "experienceLevel": "expert"}, "experienceLevel"},
		{"bad range", map[string]interface{}{"name": "Ada", "experienceLevel": "beginner", "vocalRange": "falsetto"}, "vocalRange"},
		{"wrong type", `{"name": 7, "experienceLevel": "beginner"}`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/users", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, fields(decode[ErrorBody](t, w)), tt.field)
		})
	}

	w := a.do(t, http.MethodPost, "/api/users", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUser(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})

	w := a.do(t, http.MethodPatch, "/api/user", map[string]interface{}{"vocalRange": "Tenor", "streak": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	u := decode[models.User](t, w)
	require.NotNil(t, u.VocalRange)
	assert.Equal(t, models.RangeTenor, *u.VocalRange)
	assert.Equal(t, 4, u.Streak)
	assert.Equal(t, "Ada", u.Name)

	w = a.do(t, http.MethodPatch, "/api/user", map[string]interface{}{"currentPhase": 7})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserClearsVocalRange(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner", "vocalRange": "tenor"})

	w := a.do(t, http.MethodPatch, "/api/user", `{"streak": 2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, decode[models.User](t, w).VocalRange)

	w = a.do(t, http.MethodPatch, "/api/user", `{"vocalRange": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	u := decode[models.User](t, w)
	assert.Nil(t, u.VocalRange)
	assert.Equal(t, 2, u.Streak)

	w = a.do(t, http.MethodGet, "/api/songs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, song := range decode[coach.SongList](t, w).RecommendedSongs {
		assert.Equal(t, models.DifficultyEasy, song.Difficulty)
	}
}

func TestActiveUserHeader(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	second := a.createUser(t, map[string]interface{}{"name": "Grace", "experienceLevel": "advanced"})

	w := a.do(t, http.MethodGet, "/api/user", nil, UserHeader, second.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Grace", decode[models.User](t, w).Name)

	w = a.do(t, http.MethodGet, "/api/user", nil, UserHeader, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(t, http.MethodGet, "/api/user", nil, UserHeader, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExerciseProgressCreateThenUpdate(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	ex := a.phaseExercises(t, 1)[0]

	body := map[string]interface{}{"exerciseId": ex.ID, "overallScore": 80, "pitchScore": 75}
	w := a.do(t, http.MethodPost, "/api/exercise-progress", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.ExerciseProgress](t, w)
	assert.True(t, first.Completed)

	body["overallScore"] = 90
	w = a.do(t, http.MethodPost, "/api/exercise-progress", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[models.ExerciseProgress](t, w)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.OverallScore)
	assert.Equal(t, 90.0, *second.OverallScore)

	w = a.do(t, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[coach.ExerciseList](t, w)
	assert.Equal(t, []uuid.UUID{ex.ID}, list.CompletedIDs)

	w = a.do(t, http.MethodGet, "/api/user", nil)
	assert.Equal(t, 2*ex.DurationMinutes, decode[models.User](t, w).TotalPracticeMinutes)
}

func TestExerciseProgressValidation(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	ex := a.phaseExercises(t, 1)[0]

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		field  string
	}{
		{"missing exercise", map[string]interface{}{"overallScore": 80}, http.StatusBadRequest, "exerciseId"},
		{"bad exercise id", map[string]interface{}{"exerciseId": "nope"}, http.StatusBadRequest, "exerciseId"},
		{"score above range", map[string]interface{}{"exerciseId": ex.ID, "toneScore": 101}, http.StatusBadRequest, "toneScore"},
		{"score below range", map[string]interface{}{"exerciseId": ex.ID, "overallScore": -1}, http.StatusBadRequest, "overallScore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, http.MethodPost, "/api/exercise-progress", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.field != "" {
				assert.Contains(t, fields(decode[ErrorBody](t, w)), tt.field)
			}
		})
	}
}

func TestExerciseProgressUppercaseID(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	ex := a.phaseExercises(t, 1)[0]

	w := a.do(t, http.MethodPost, "/api/exercise-progress",
		map[string]interface{}{"exerciseId": strings.ToUpper(ex.ID.String()), "overallScore": 80})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, ex.ID, decode[models.ExerciseProgress](t, w).ExerciseID)
}

func TestExerciseProgressUnknownExercise(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	missing := uuid.New()

	w := a.do(t, http.MethodPost, "/api/exercise-progress",
		map[string]interface{}{"exerciseId": missing, "overallScore": 80})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, missing, decode[models.ExerciseProgress](t, w).ExerciseID)

	w = a.do(t, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[models.User](t, w).TotalPracticeMinutes)

	w = a.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	d := decode[coach.Dashboard](t, w)
	assert.Empty(t, d.RecentExercises)
	assert.Equal(t, 0, d.WeeklyStats.PracticeMinutes)

	w = a.do(t, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[coach.ExerciseList](t, w).CompletedIDs, missing)
}

func TestAdvancementThroughAPI(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})

	for _, ex := range a.phaseExercises(t, 1) {
		w := a.do(t, http.MethodPost, "/api/exercise-progress",
			map[string]interface{}{"exerciseId": ex.ID, "overallScore": 85})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := a.do(t, http.MethodGet, "/api/user", nil)
	u := decode[models.User](t, w)
	assert.Equal(t, 2, u.CurrentPhase)
	assert.Equal(t, 5, u.CurrentWeek)

	w = a.do(t, http.MethodGet, "/api/phase/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, decode[coach.PhaseView](t, w).PhaseProgress)
}

func TestResetProgress(t *testing.T) {
	a := newTestAPI(t, coach.Options{NewUserPhase: 3})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "advanced"})
	ex := a.phaseExercises(t, 3)[0]
	w := a.do(t, http.MethodPost, "/api/exercise-progress", map[string]interface{}{"exerciseId": ex.ID, "overallScore": 95})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/reset-progress", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	u := decode[models.User](t, w)
	assert.Equal(t, 1, u.CurrentPhase)
	assert.Equal(t, 1, u.CurrentWeek)
	assert.Equal(t, 0, u.TotalPracticeMinutes)
	assert.Equal(t, 0, u.Streak)

	w = a.do(t, http.MethodGet, "/api/phase/1", nil)
	view := decode[coach.PhaseView](t, w)
	assert.Equal(t, 0.0, view.PhaseProgress)
	assert.Empty(t, view.CompletedIDs)
}

func TestPhaseRoute(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/phase/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/phase/4", nil).Code)

	w := a.do(t, http.MethodGet, "/api/phase/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[coach.PhaseView](t, w)
	assert.Len(t, view.Exercises, len(a.phaseExercises(t, 2)))
	assert.NotNil(t, view.CompletedIDs)

	w = a.do(t, http.MethodGet, "/api/phases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Phase](t, w), 3)
}

func TestDashboardShape(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	ex := a.phaseExercises(t, 1)[0]
	a.do(t, http.MethodPost, "/api/exercise-progress", map[string]interface{}{"exerciseId": ex.ID, "overallScore": 70})

	w := a.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "user")
	assert.Contains(t, raw, "recentExercises")

	var stats map[string]float64
	require.NoError(t, json.Unmarshal(raw["weeklyStats"], &stats))
	assert.Equal(t, float64(ex.DurationMinutes), stats["practiceMinutes"])
	assert.Equal(t, 1.0, stats["exercisesCompleted"])
	assert.Equal(t, 70.0, stats["averageScore"])
	assert.Equal(t, 60.0, stats["goalMinutes"])
}

func TestSongsWithoutUser(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	w := a.do(t, http.MethodGet, "/api/songs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[coach.SongList](t, w)
	assert.NotEmpty(t, list.Songs)
	assert.Len(t, list.RecommendedSongs, 4)
	for _, s := range list.RecommendedSongs {
		assert.Equal(t, models.DifficultyEasy, s.Difficulty)
	}
}

func TestVoiceAnalysis(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})

	w := a.do(t, http.MethodPost, "/api/voice-analysis", map[string]interface{}{
		"pitchAccuracy": 60, "toneStability": 90, "breathingConsistency": 0, "overallRating": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decode[models.VoiceAnalysis](t, w).Suggestions)

	w = a.do(t, http.MethodPost, "/api/voice-analysis", map[string]interface{}{"pitchAccuracy": 60})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, fields(decode[ErrorBody](t, w)), "toneStability")

	w = a.do(t, http.MethodGet, "/api/voice-analyses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.VoiceAnalysis](t, w), 1)
}

func TestPerformances(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})
	songs, err := a.repo.ListSongs()
	require.NoError(t, err)

	w := a.do(t, http.MethodPost, "/api/performances", map[string]interface{}{
		"songId": songs[0].ID, "performanceScore": 92,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[models.Performance](t, w)
	assert.NotEmpty(t, p.AudienceReactions)

	w = a.do(t, http.MethodPost, "/api/performances", map[string]interface{}{})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/performances", map[string]interface{}{"songId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodGet, "/api/performances", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Performance](t, w), 2)
}

func TestRoutineAndBackingTrack(t *testing.T) {
	a := newTestAPI(t, coach.Options{})
	a.createUser(t, map[string]interface{}{"name": "Ada", "experienceLevel": "beginner"})

	w := a.do(t, http.MethodGet, "/api/routine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	r := decode[models.PracticeRoutine](t, w)
	assert.Equal(t, 1, r.Week)
	assert.Len(t, r.ExerciseIDs, len(a.phaseExercises(t, 1)))

	w = a.do(t, http.MethodGet, "/api/backing-track?genre=jazz&bpm=90&key=F", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Jazz Practice Track")

	w = a.do(t, http.MethodGet, "/api/backing-track?bpm=fast", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	a := newTestAPI(t, coach.Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/user", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", UserHeader)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardDropsCredentials(t *testing.T) {
	cfg := corsConfig([]string{"*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig(nil)
	assert.Equal(t, DefaultCORSOrigins, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestNotFoundMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("first user: %w", storage.ErrNotFound), "first user not found"},
		{fmt.Errorf("phase 4: %w", storage.ErrNotFound), "phase 4 not found"},
		{storage.ErrNotFound, "Not found"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, notFoundMessage(tt.err))
	}
}
