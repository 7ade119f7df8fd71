// ABOUTME: Read-only views: dashboard, phase exercises, phase detail, and song recommendations.
// ABOUTME: Views tolerate a missing user where the app can render without one.
package coach

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
	"github.com/harperreed/singsmart/internal/progress"
	"github.com/harperreed/singsmart/internal/storage"
)

// recommendLimit caps fallback song recommendations.
const recommendLimit = 4

// Dashboard is the home screen summary.
type Dashboard struct {
	User            *models.User         `json:"user"`
	RecentExercises []progress.Activity  `json:"recentExercises"`
	WeeklyStats     progress.WeeklyStats `json:"weeklyStats"`
}

// Dashboard summarizes the user's recent practice.
func (s *Service) Dashboard(userID string) (*Dashboard, error) {
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListProgress(u.ID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	exercises, err := s.repo.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	return &Dashboard{
		User:            u,
		RecentExercises: progress.Recent(rows, exercises, progress.DefaultRecentLimit),
		WeeklyStats:     progress.Stats(rows, exercises, s.opts.StatsWindow, s.opts.Now(), s.opts.WeeklyGoalMinutes),
	}, nil
}

// ExerciseList is the practice screen's exercise set.
type ExerciseList struct {
	Exercises    []*models.Exercise `json:"exercises"`
	CompletedIDs []uuid.UUID        `json:"completedIds"`
}

// Exercises lists the exercises of the user's current phase and every exercise
// they have completed. With no users yet, phase 1 is listed.
func (s *Service) Exercises(userID string) (*ExerciseList, error) {
	phase := models.FirstPhase
	completed := []uuid.UUID{}

	u, err := s.ActiveUser(userID)
	switch {
	case err == nil:
		phase = u.CurrentPhase
		rows, err := s.repo.ListProgress(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list progress: %w", err)
		}
		completed = progress.CompletedIDs(rows)
	case userID == "" && errors.Is(err, storage.ErrNotFound):
	default:
		return nil, err
	}

	exercises, err := s.repo.ListExercisesByPhase(phase)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	return &ExerciseList{Exercises: exercises, CompletedIDs: completed}, nil
}

// PhaseView is the detail screen for one phase.
type PhaseView struct {
	User          *models.User       `json:"user"`
	Exercises     []*models.Exercise `json:"exercises"`
	CompletedIDs  []uuid.UUID        `json:"completedIds"`
	PhaseProgress float64            `json:"phaseProgress"`
}

// ParsePhase converts a path segment to a phase number.
func ParsePhase(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Fields: map[string]string{"id": "must be a phase number"}}
	}
	if !models.IsValidPhase(n) {
		return 0, fmt.Errorf("phase %d: %w", n, storage.ErrNotFound)
	}
	return n, nil
}

// Phase shows the user's completion of one phase. completedIds lists only the
// phase's exercises.
func (s *Service) Phase(userID string, phase int) (*PhaseView, error) {
	if _, ok := models.GetPhase(phase); !ok {
		return nil, fmt.Errorf("phase %d: %w", phase, storage.ErrNotFound)
	}
	u, err := s.ActiveUser(userID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.repo.ListExercisesByPhase(phase)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	rows, err := s.repo.ListProgress(u.ID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	return &PhaseView{
		User:          u,
		Exercises:     exercises,
		CompletedIDs:  progress.CompletedIDs(progress.CompletedInPhase(rows, exercises)),
		PhaseProgress: progress.PhaseCompletion(rows, exercises),
	}, nil
}

// Phases returns the static phase definitions.
func (s *Service) Phases() []models.Phase {
	return append([]models.Phase(nil), models.Phases...)
}

// SongList is the song library with recommendations for the user.
type SongList struct {
	Songs            []*models.Song `json:"songs"`
	RecommendedSongs []*models.Song `json:"recommendedSongs"`
}

// Songs lists the catalog and recommends songs for the user's vocal range.
// Without a range, the first easy songs are recommended; with a range that
// matches nothing, the first catalog songs are.
func (s *Service) Songs(userID string) (*SongList, error) {
	var u *models.User
	found, err := s.ActiveUser(userID)
	switch {
	case err == nil:
		u = found
	case userID == "" && errors.Is(err, storage.ErrNotFound):
	default:
		return nil, err
	}

	all, err := s.repo.ListSongs()
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	if all == nil {
		all = []*models.Song{}
	}

	var recommended []*models.Song
	if u != nil && u.VocalRange != nil {
		recommended, err = s.repo.ListSongsByVocalRange(string(*u.VocalRange))
		if err != nil {
			return nil, fmt.Errorf("list songs by range: %w", err)
		}
		if len(recommended) == 0 {
			recommended = firstN(all, recommendLimit)
		}
	} else {
		var easy []*models.Song
		for _, song := range all {
			if song.Difficulty == models.DifficultyEasy {
				easy = append(easy, song)
			}
		}
		recommended = firstN(easy, recommendLimit)
	}
	if recommended == nil {
		recommended = []*models.Song{}
	}
	return &SongList{Songs: all, RecommendedSongs: recommended}, nil
}

func firstN(songs []*models.Song, n int) []*models.Song {
	if len(songs) > n {
		return songs[:n]
	}
	return songs
}

// Catalog is the full exercise and song library.
type Catalog struct {
	Exercises []*models.Exercise `json:"exercises"`
	Songs     []*models.Song     `json:"songs"`
}

// Catalog lists every exercise and song.
func (s *Service) Catalog() (*Catalog, error) {
	exercises, err := s.repo.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	songs, err := s.repo.ListSongs()
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	if songs == nil {
		songs = []*models.Song{}
	}
	return &Catalog{Exercises: exercises, Songs: songs}, nil
}
