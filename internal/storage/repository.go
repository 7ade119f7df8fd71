// ABOUTME: Repository interface for singsmart data storage.
// ABOUTME: Defines contract for users, catalog, progress, and history CRUD operations.
package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// ErrNotFound is returned (wrapped) by point lookups and updates of missing records.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for singsmart data.
// Every entity returned is a copy; mutating it does not change stored state.
type Repository interface {
	// User operations
	CreateUser(u *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	FirstUser() (*models.User, error)
	ListUsers() ([]*models.User, error)
	UpdateUser(id uuid.UUID, patch models.UserPatch) (*models.User, error)
	ResetUserProgress(id uuid.UUID) (*models.User, error)

	// Exercise catalog operations
	CreateExercise(e *models.Exercise) error
	GetExercise(id uuid.UUID) (*models.Exercise, error)
	ListExercises() ([]*models.Exercise, error)
	ListExercisesByPhase(phase int) ([]*models.Exercise, error)

	// Exercise progress operations
	CreateProgress(p *models.ExerciseProgress) error
	GetProgress(id uuid.UUID) (*models.ExerciseProgress, error)
	GetProgressByExercise(userID, exerciseID uuid.UUID) (*models.ExerciseProgress, error)
	ListProgress(userID uuid.UUID) ([]*models.ExerciseProgress, error)
	UpdateProgress(id uuid.UUID, patch models.ProgressPatch) (*models.ExerciseProgress, error)

	// Voice analysis operations
	CreateVoiceAnalysis(a *models.VoiceAnalysis) error
	ListVoiceAnalyses(userID uuid.UUID) ([]*models.VoiceAnalysis, error)

	// Song catalog operations
	CreateSong(s *models.Song) error
	GetSong(id uuid.UUID) (*models.Song, error)
	ListSongs() ([]*models.Song, error)
	ListSongsByVocalRange(vocalRange string) ([]*models.Song, error)

	// Practice routine operations
	CreateRoutine(r *models.PracticeRoutine) error
	GetRoutine(userID uuid.UUID, week int) (*models.PracticeRoutine, error)
	UpdateRoutine(id uuid.UUID, patch models.RoutinePatch) (*models.PracticeRoutine, error)

	// Performance operations
	CreatePerformance(p *models.Performance) error
	ListPerformances(userID uuid.UUID) ([]*models.Performance, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
