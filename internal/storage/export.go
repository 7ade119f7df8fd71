// ABOUTME: Export and import functionality for singsmart data.
// ABOUTME: Supports JSON (backup/restore) and YAML (human-readable) formats.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/singsmart/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion identifies the export file layout.
const ExportVersion = "1.0"

// ExportData represents the full export format for singsmart data.
type ExportData struct {
	Version      string                     `json:"version" yaml:"version"`
	ExportedAt   time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool         string                     `json:"tool" yaml:"tool"`
	Users        []*models.User             `json:"users" yaml:"users"`
	Exercises    []*models.Exercise         `json:"exercises" yaml:"exercises"`
	Songs        []*models.Song             `json:"songs" yaml:"songs"`
	Progress     []*models.ExerciseProgress `json:"progress" yaml:"progress"`
	Analyses     []*models.VoiceAnalysis    `json:"voice_analyses" yaml:"voice_analyses"`
	Performances []*models.Performance      `json:"performances" yaml:"performances"`
	Routines     []*models.PracticeRoutine  `json:"routines,omitempty" yaml:"routines,omitempty"`
}

// collectAll gathers every record reachable through r.
// Routines are only exported for each user's current week.
func collectAll(r Repository) (*ExportData, error) {
	users, err := r.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	exercises, err := r.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	songs, err := r.ListSongs()
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "singsmart",
		Users:      users,
		Exercises:  exercises,
		Songs:      songs,
	}

	for _, u := range users {
		progress, err := r.ListProgress(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list progress: %w", err)
		}
		data.Progress = append(data.Progress, progress...)

		analyses, err := r.ListVoiceAnalyses(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list voice analyses: %w", err)
		}
		data.Analyses = append(data.Analyses, analyses...)

		performances, err := r.ListPerformances(u.ID)
		if err != nil {
			return nil, fmt.Errorf("list performances: %w", err)
		}
		data.Performances = append(data.Performances, performances...)

		routine, err := r.GetRoutine(u.ID, u.CurrentWeek)
		switch {
		case err == nil:
			data.Routines = append(data.Routines, routine)
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("get routine: %w", err)
		}
	}

	return data, nil
}

// restoreAll writes data into r. Catalog entries already present are skipped,
// so importing into a seeded store does not duplicate the catalog.
func restoreAll(r Repository, data *ExportData) error {
	for _, e := range data.Exercises {
		if _, err := r.GetExercise(e.ID); err == nil {
			continue
		}
		if err := r.CreateExercise(e); err != nil {
			return fmt.Errorf("import exercise: %w", err)
		}
	}
	for _, s := range data.Songs {
		if _, err := r.GetSong(s.ID); err == nil {
			continue
		}
		if err := r.CreateSong(s); err != nil {
			return fmt.Errorf("import song: %w", err)
		}
	}
	for _, u := range data.Users {
		if err := r.CreateUser(u); err != nil {
			return fmt.Errorf("import user: %w", err)
		}
	}
	for _, p := range data.Progress {
		if err := r.CreateProgress(p); err != nil {
			return fmt.Errorf("import progress: %w", err)
		}
	}
	for _, a := range data.Analyses {
		if err := r.CreateVoiceAnalysis(a); err != nil {
			return fmt.Errorf("import voice analysis: %w", err)
		}
	}
	for _, p := range data.Performances {
		if err := r.CreatePerformance(p); err != nil {
			return fmt.Errorf("import performance: %w", err)
		}
	}
	for _, rt := range data.Routines {
		if err := r.CreateRoutine(rt); err != nil {
			return fmt.Errorf("import routine: %w", err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (s *MemoryStore) GetAllData() (*ExportData, error) {
	return collectAll(s)
}

// ImportData imports data from an export file.
func (s *MemoryStore) ImportData(data *ExportData) error {
	return restoreAll(s, data)
}

// ExportJSON exports all data in r as indented JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data in r as YAML.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes into r.
func ImportJSON(r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if data.Version != "" && data.Version != ExportVersion {
		return fmt.Errorf("unsupported export version %q", data.Version)
	}
	return r.ImportData(&data)
}
