// ABOUTME: ExerciseProgress CRUD operations for SQLite storage.
// ABOUTME: One row per user and exercise; re-attempts update the row in place.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

const progressColumns = `id, user_id, exercise_id, completed, pitch_score, tone_score,
	breathing_score, overall_score, completed_at, feedback`

// CreateProgress stores a new progress row.
func (d *DB) CreateProgress(p *models.ExerciseProgress) error {
	ensureID(&p.ID)
	query := `INSERT INTO exercise_progress (` + progressColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		p.ID.String(),
		p.UserID.String(),
		p.ExerciseID.String(),
		boolToInt(p.Completed),
		nullFloat(p.PitchScore),
		nullFloat(p.ToneScore),
		nullFloat(p.BreathingScore),
		nullFloat(p.OverallScore),
		nullTime(p.CompletedAt),
		nullString(p.Feedback),
	)
	if err != nil {
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}

// GetProgress retrieves a progress row by ID.
func (d *DB) GetProgress(id uuid.UUID) (*models.ExerciseProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM exercise_progress WHERE id = ?`
	p, err := scanProgress(d.db.QueryRow(query, id.String()))
	if err != nil {
		return nil, fmt.Errorf("progress %s: %w", id, err)
	}
	return p, nil
}

// GetProgressByExercise retrieves the user's row for one exercise.
func (d *DB) GetProgressByExercise(userID, exerciseID uuid.UUID) (*models.ExerciseProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM exercise_progress WHERE user_id = ? AND exercise_id = ?`
	p, err := scanProgress(d.db.QueryRow(query, userID.String(), exerciseID.String()))
	if err != nil {
		return nil, fmt.Errorf("progress for exercise %s: %w", exerciseID, err)
	}
	return p, nil
}

// ListProgress retrieves all progress rows of a user.
func (d *DB) ListProgress(userID uuid.UUID) ([]*models.ExerciseProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM exercise_progress WHERE user_id = ? ORDER BY rowid ASC`
	rows, err := d.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []*models.ExerciseProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProgress merges patch into the stored progress row.
func (d *DB) UpdateProgress(id uuid.UUID, patch models.ProgressPatch) (*models.ExerciseProgress, error) {
	p, err := d.GetProgress(id)
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	patch.Apply(p)

	query := `
		UPDATE exercise_progress SET completed = ?, pitch_score = ?, tone_score = ?,
			breathing_score = ?, overall_score = ?, completed_at = ?, feedback = ?
		WHERE id = ?
	`
	_, err = d.db.Exec(query,
		boolToInt(p.Completed),
		nullFloat(p.PitchScore),
		nullFloat(p.ToneScore),
		nullFloat(p.BreathingScore),
		nullFloat(p.OverallScore),
		nullTime(p.CompletedAt),
		nullString(p.Feedback),
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanProgress(row rowScanner) (*models.ExerciseProgress, error) {
	var p models.ExerciseProgress
	var idStr, userStr, exerciseStr string
	var completed int
	var pitch, tone, breathing, overall sql.NullFloat64
	var completedAt, feedback sql.NullString

	err := row.Scan(&idStr, &userStr, &exerciseStr, &completed, &pitch, &tone, &breathing, &overall,
		&completedAt, &feedback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}

	p.ID, _ = uuid.Parse(idStr)
	p.UserID, _ = uuid.Parse(userStr)
	p.ExerciseID, _ = uuid.Parse(exerciseStr)
	p.Completed = completed != 0
	p.PitchScore = floatPtr(pitch)
	p.ToneScore = floatPtr(tone)
	p.BreathingScore = floatPtr(breathing)
	p.OverallScore = floatPtr(overall)
	p.CompletedAt = timePtr(completedAt)
	p.Feedback = stringPtr(feedback)

	return &p, nil
}
