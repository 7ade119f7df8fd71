// ABOUTME: Exercise and Song catalog operations for SQLite storage.
// ABOUTME: Catalog rows are written at seed time and read-only afterwards.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

const exerciseColumns = `id, name, description, phase, category, difficulty, duration_minutes, instructions`

// CreateExercise stores a new catalog exercise.
func (d *DB) CreateExercise(e *models.Exercise) error {
	ensureID(&e.ID)
	query := `INSERT INTO exercises (` + exerciseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		e.ID.String(),
		e.Name,
		e.Description,
		e.Phase,
		string(e.Category),
		string(e.Difficulty),
		e.DurationMinutes,
		e.Instructions,
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by ID.
func (d *DB) GetExercise(id uuid.UUID) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`
	e, err := scanExercise(d.db.QueryRow(query, id.String()))
	if err != nil {
		return nil, fmt.Errorf("exercise %s: %w", id, err)
	}
	return e, nil
}

// ListExercises retrieves the whole catalog.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	return d.queryExercises(`SELECT ` + exerciseColumns + ` FROM exercises ORDER BY rowid ASC`)
}

// ListExercisesByPhase retrieves the exercises of one phase.
func (d *DB) ListExercisesByPhase(phase int) ([]*models.Exercise, error) {
	return d.queryExercises(`SELECT `+exerciseColumns+` FROM exercises WHERE phase = ? ORDER BY rowid ASC`, phase)
}

func (d *DB) queryExercises(query string, args ...any) ([]*models.Exercise, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, category, difficulty string

	err := row.Scan(&idStr, &e.Name, &e.Description, &e.Phase, &category, &difficulty,
		&e.DurationMinutes, &e.Instructions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.Category = models.Category(category)
	e.Difficulty = models.Difficulty(difficulty)
	return &e, nil
}

const songColumns = `id, title, artist, genre, difficulty, vocal_range, bpm, song_key`

// CreateSong stores a new catalog song.
func (d *DB) CreateSong(s *models.Song) error {
	ensureID(&s.ID)
	query := `INSERT INTO songs (` + songColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		s.ID.String(),
		s.Title,
		s.Artist,
		s.Genre,
		string(s.Difficulty),
		s.VocalRange,
		s.BPM,
		s.Key,
	)
	if err != nil {
		return fmt.Errorf("create song: %w", err)
	}
	return nil
}

// GetSong retrieves a song by ID.
func (d *DB) GetSong(id uuid.UUID) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ?`
	s, err := scanSong(d.db.QueryRow(query, id.String()))
	if err != nil {
		return nil, fmt.Errorf("song %s: %w", id, err)
	}
	return s, nil
}

// ListSongs retrieves the whole song catalog.
func (d *DB) ListSongs() ([]*models.Song, error) {
	return d.querySongs(`SELECT ` + songColumns + ` FROM songs ORDER BY rowid ASC`)
}

// ListSongsByVocalRange retrieves songs for a vocal range, ignoring case.
func (d *DB) ListSongsByVocalRange(vocalRange string) ([]*models.Song, error) {
	return d.querySongs(`SELECT `+songColumns+` FROM songs WHERE LOWER(vocal_range) = LOWER(?) ORDER BY rowid ASC`, vocalRange)
}

func (d *DB) querySongs(query string, args ...any) ([]*models.Song, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func scanSong(row rowScanner) (*models.Song, error) {
	var s models.Song
	var idStr, difficulty string

	err := row.Scan(&idStr, &s.Title, &s.Artist, &s.Genre, &difficulty, &s.VocalRange, &s.BPM, &s.Key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan song: %w", err)
	}

	s.ID, _ = uuid.Parse(idStr)
	s.Difficulty = models.Difficulty(difficulty)
	return &s, nil
}
