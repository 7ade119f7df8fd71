// ABOUTME: In-memory Repository implementation, the default backend.
// ABOUTME: Keeps insertion order per collection and returns defensive copies.
package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// table is one keyed collection that remembers insertion order.
type table[T any] struct {
	rows  map[uuid.UUID]*T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*T)}
}

func (t *table[T]) put(id uuid.UUID, v *T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id uuid.UUID) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// filter returns rows matching keep, in insertion order.
func (t *table[T]) filter(keep func(*T) bool) []*T {
	var out []*T
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// deleteWhere removes rows matching drop and returns how many were removed.
func (t *table[T]) deleteWhere(drop func(*T) bool) int {
	kept := t.order[:0]
	removed := 0
	for _, id := range t.order {
		if drop(t.rows[id]) {
			delete(t.rows, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed
}

// MemoryStore holds all collections in process memory. Data resets on restart.
type MemoryStore struct {
	mu           sync.RWMutex
	users        *table[models.User]
	exercises    *table[models.Exercise]
	progress     *table[models.ExerciseProgress]
	analyses     *table[models.VoiceAnalysis]
	songs        *table[models.Song]
	routines     *table[models.PracticeRoutine]
	performances *table[models.Performance]
}

// Compile-time check that MemoryStore implements Repository.
var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        newTable[models.User](),
		exercises:    newTable[models.Exercise](),
		progress:     newTable[models.ExerciseProgress](),
		analyses:     newTable[models.VoiceAnalysis](),
		songs:        newTable[models.Song](),
		routines:     newTable[models.PracticeRoutine](),
		performances: newTable[models.Performance](),
	}
}

// Close releases resources. For MemoryStore this is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// CreateUser stores a new user.
func (s *MemoryStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&u.ID)
	if _, exists := s.users.get(u.ID); exists {
		return fmt.Errorf("create user: duplicate id %s", u.ID)
	}
	s.users.put(u.ID, u.Clone())
	return nil
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u.Clone(), nil
}

// FirstUser retrieves the earliest-created user.
func (s *MemoryStore) FirstUser() (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.users.order) == 0 {
		return nil, fmt.Errorf("first user: %w", ErrNotFound)
	}
	u, _ := s.users.get(s.users.order[0])
	return u.Clone(), nil
}

// ListUsers retrieves all users in creation order.
func (s *MemoryStore) ListUsers() ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.User
	for _, u := range s.users.filter(nil) {
		out = append(out, u.Clone())
	}
	return out, nil
}

// UpdateUser merges patch into the stored user.
func (s *MemoryStore) UpdateUser(id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("update user %s: %w", id, ErrNotFound)
	}
	updated := u.Clone()
	patch.Apply(updated)
	s.users.put(id, updated)
	return updated.Clone(), nil
}

// ResetUserProgress returns the user to phase 1 and deletes their progress rows.
func (s *MemoryStore) ResetUserProgress(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.get(id)
	if !ok {
		return nil, fmt.Errorf("reset user %s: %w", id, ErrNotFound)
	}
	reset := u.Clone()
	resetUser(reset)
	s.users.put(id, reset)

	s.progress.deleteWhere(func(p *models.ExerciseProgress) bool {
		return p.UserID == id
	})
	return reset.Clone(), nil
}

// resetUser clears the phase position and accumulators of u.
func resetUser(u *models.User) {
	u.CurrentPhase = models.FirstPhase
	u.CurrentWeek = models.FirstWeekOfPhase(models.FirstPhase)
	u.TotalPracticeMinutes = 0
	u.Streak = 0
	u.LastPracticedAt = nil
}

// CreateExercise stores a new catalog exercise.
func (s *MemoryStore) CreateExercise(e *models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&e.ID)
	c := *e
	s.exercises.put(e.ID, &c)
	return nil
}

// GetExercise retrieves an exercise by ID.
func (s *MemoryStore) GetExercise(id uuid.UUID) (*models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.exercises.get(id)
	if !ok {
		return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	c := *e
	return &c, nil
}

// ListExercises retrieves the whole catalog.
func (s *MemoryStore) ListExercises() ([]*models.Exercise, error) {
	return s.listExercises(nil), nil
}

// ListExercisesByPhase retrieves the exercises of one phase.
func (s *MemoryStore) ListExercisesByPhase(phase int) ([]*models.Exercise, error) {
	return s.listExercises(func(e *models.Exercise) bool { return e.Phase == phase }), nil
}

func (s *MemoryStore) listExercises(keep func(*models.Exercise) bool) []*models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Exercise
	for _, e := range s.exercises.filter(keep) {
		c := *e
		out = append(out, &c)
	}
	return out
}

// CreateProgress stores a new progress row.
func (s *MemoryStore) CreateProgress(p *models.ExerciseProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&p.ID)
	s.progress.put(p.ID, p.Clone())
	return nil
}

// GetProgress retrieves a progress row by ID.
func (s *MemoryStore) GetProgress(id uuid.UUID) (*models.ExerciseProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.progress.get(id)
	if !ok {
		return nil, fmt.Errorf("progress %s: %w", id, ErrNotFound)
	}
	return p.Clone(), nil
}

// GetProgressByExercise retrieves the user's row for one exercise.
func (s *MemoryStore) GetProgressByExercise(userID, exerciseID uuid.UUID) (*models.ExerciseProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.progress.filter(func(p *models.ExerciseProgress) bool {
		return p.UserID == userID && p.ExerciseID == exerciseID
	})
	if len(rows) == 0 {
		return nil, fmt.Errorf("progress for exercise %s: %w", exerciseID, ErrNotFound)
	}
	return rows[0].Clone(), nil
}

// ListProgress retrieves all progress rows of a user.
func (s *MemoryStore) ListProgress(userID uuid.UUID) ([]*models.ExerciseProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.ExerciseProgress
	for _, p := range s.progress.filter(func(p *models.ExerciseProgress) bool { return p.UserID == userID }) {
		out = append(out, p.Clone())
	}
	return out, nil
}

// UpdateProgress merges patch into the stored progress row.
func (s *MemoryStore) UpdateProgress(id uuid.UUID, patch models.ProgressPatch) (*models.ExerciseProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress.get(id)
	if !ok {
		return nil, fmt.Errorf("update progress %s: %w", id, ErrNotFound)
	}
	updated := p.Clone()
	patch.Apply(updated)
	s.progress.put(id, updated)
	return updated.Clone(), nil
}

// CreateVoiceAnalysis appends a voice analysis.
func (s *MemoryStore) CreateVoiceAnalysis(a *models.VoiceAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&a.ID)
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
	s.analyses.put(a.ID, a.Clone())
	return nil
}

// ListVoiceAnalyses retrieves a user's analyses in insertion order.
func (s *MemoryStore) ListVoiceAnalyses(userID uuid.UUID) ([]*models.VoiceAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.VoiceAnalysis
	for _, a := range s.analyses.filter(func(a *models.VoiceAnalysis) bool { return a.UserID == userID }) {
		out = append(out, a.Clone())
	}
	return out, nil
}

// CreateSong stores a new catalog song.
func (s *MemoryStore) CreateSong(song *models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&song.ID)
	c := *song
	s.songs.put(song.ID, &c)
	return nil
}

// GetSong retrieves a song by ID.
func (s *MemoryStore) GetSong(id uuid.UUID) (*models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	song, ok := s.songs.get(id)
	if !ok {
		return nil, fmt.Errorf("song %s: %w", id, ErrNotFound)
	}
	c := *song
	return &c, nil
}

// ListSongs retrieves the whole song catalog.
func (s *MemoryStore) ListSongs() ([]*models.Song, error) {
	return s.listSongs(nil), nil
}

// ListSongsByVocalRange retrieves songs for a vocal range, ignoring case.
func (s *MemoryStore) ListSongsByVocalRange(vocalRange string) ([]*models.Song, error) {
	return s.listSongs(func(song *models.Song) bool {
		return strings.EqualFold(song.VocalRange, vocalRange)
	}), nil
}

func (s *MemoryStore) listSongs(keep func(*models.Song) bool) []*models.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Song
	for _, song := range s.songs.filter(keep) {
		c := *song
		out = append(out, &c)
	}
	return out
}

// CreateRoutine stores a routine. Only one routine may exist per user and week.
func (s *MemoryStore) CreateRoutine(r *models.PracticeRoutine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.routines.filter(func(x *models.PracticeRoutine) bool {
		return x.UserID == r.UserID && x.Week == r.Week
	})
	if len(existing) > 0 {
		return fmt.Errorf("create routine: week %d already planned", r.Week)
	}
	ensureID(&r.ID)
	s.routines.put(r.ID, r.Clone())
	return nil
}

// GetRoutine retrieves the user's routine for a week.
func (s *MemoryStore) GetRoutine(userID uuid.UUID, week int) (*models.PracticeRoutine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.routines.filter(func(r *models.PracticeRoutine) bool {
		return r.UserID == userID && r.Week == week
	})
	if len(rows) == 0 {
		return nil, fmt.Errorf("routine for week %d: %w", week, ErrNotFound)
	}
	return rows[0].Clone(), nil
}

// UpdateRoutine merges patch into the stored routine.
func (s *MemoryStore) UpdateRoutine(id uuid.UUID, patch models.RoutinePatch) (*models.PracticeRoutine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.routines.get(id)
	if !ok {
		return nil, fmt.Errorf("update routine %s: %w", id, ErrNotFound)
	}
	updated := r.Clone()
	patch.Apply(updated)
	s.routines.put(id, updated)
	return updated.Clone(), nil
}

// CreatePerformance appends a performance.
func (s *MemoryStore) CreatePerformance(p *models.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ensureID(&p.ID)
	s.performances.put(p.ID, p.Clone())
	return nil
}

// ListPerformances retrieves a user's performances in insertion order.
func (s *MemoryStore) ListPerformances(userID uuid.UUID) ([]*models.Performance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Performance
	for _, p := range s.performances.filter(func(p *models.Performance) bool { return p.UserID == userID }) {
		out = append(out, p.Clone())
	}
	return out, nil
}
