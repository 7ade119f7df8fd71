// ABOUTME: Voice analysis, performance, and practice routine operations for SQLite storage.
// ABOUTME: List-valued columns are stored as JSON text.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// CreateVoiceAnalysis appends a voice analysis.
func (d *DB) CreateVoiceAnalysis(a *models.VoiceAnalysis) error {
	ensureID(&a.ID)
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
	suggestions, err := encodeList(a.Suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}

	query := `
		INSERT INTO voice_analyses (id, user_id, pitch_accuracy, tone_stability,
			breathing_consistency, overall_rating, suggestions, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		a.ID.String(),
		a.UserID.String(),
		a.PitchAccuracy,
		a.ToneStability,
		a.BreathingConsistency,
		a.OverallRating,
		suggestions.String,
		formatTime(a.AnalyzedAt),
	)
	if err != nil {
		return fmt.Errorf("create voice analysis: %w", err)
	}
	return nil
}

// ListVoiceAnalyses retrieves a user's analyses in insertion order.
func (d *DB) ListVoiceAnalyses(userID uuid.UUID) ([]*models.VoiceAnalysis, error) {
	query := `
		SELECT id, user_id, pitch_accuracy, tone_stability, breathing_consistency,
			overall_rating, suggestions, analyzed_at
		FROM voice_analyses WHERE user_id = ? ORDER BY rowid ASC
	`
	rows, err := d.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list voice analyses: %w", err)
	}
	defer rows.Close()

	var out []*models.VoiceAnalysis
	for rows.Next() {
		var a models.VoiceAnalysis
		var idStr, userStr, analyzedAt string
		var suggestions sql.NullString
		if err := rows.Scan(&idStr, &userStr, &a.PitchAccuracy, &a.ToneStability,
			&a.BreathingConsistency, &a.OverallRating, &suggestions, &analyzedAt); err != nil {
			return nil, fmt.Errorf("scan voice analysis: %w", err)
		}
		a.ID, _ = uuid.Parse(idStr)
		a.UserID, _ = uuid.Parse(userStr)
		a.AnalyzedAt = parseTime(analyzedAt)
		if a.Suggestions, err = decodeList[string](suggestions); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		if a.Suggestions == nil {
			a.Suggestions = []string{}
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// CreatePerformance appends a performance.
func (d *DB) CreatePerformance(p *models.Performance) error {
	ensureID(&p.ID)
	reactions, err := encodeList(p.AudienceReactions)
	if err != nil {
		return fmt.Errorf("encode reactions: %w", err)
	}
	effects, err := encodeList(p.StageEffects)
	if err != nil {
		return fmt.Errorf("encode stage effects: %w", err)
	}

	var songID sql.NullString
	if p.SongID != nil {
		songID = sql.NullString{String: p.SongID.String(), Valid: true}
	}

	query := `
		INSERT INTO performances (id, user_id, song_id, audience_reactions, performance_score,
			stage_effects, performed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		p.ID.String(),
		p.UserID.String(),
		songID,
		reactions,
		nullFloat(p.PerformanceScore),
		effects,
		formatTime(p.PerformedAt),
	)
	if err != nil {
		return fmt.Errorf("create performance: %w", err)
	}
	return nil
}

// ListPerformances retrieves a user's performances in insertion order.
func (d *DB) ListPerformances(userID uuid.UUID) ([]*models.Performance, error) {
	query := `
		SELECT id, user_id, song_id, audience_reactions, performance_score, stage_effects, performed_at
		FROM performances WHERE user_id = ? ORDER BY rowid ASC
	`
	rows, err := d.db.Query(query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}
	defer rows.Close()

	var out []*models.Performance
	for rows.Next() {
		var p models.Performance
		var idStr, userStr, performedAt string
		var songID, reactions, effects sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&idStr, &userStr, &songID, &reactions, &score, &effects, &performedAt); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		p.ID, _ = uuid.Parse(idStr)
		p.UserID, _ = uuid.Parse(userStr)
		if songID.Valid {
			if id, err := uuid.Parse(songID.String); err == nil {
				p.SongID = &id
			}
		}
		p.PerformanceScore = floatPtr(score)
		p.PerformedAt = parseTime(performedAt)
		if p.AudienceReactions, err = decodeList[string](reactions); err != nil {
			return nil, fmt.Errorf("decode reactions: %w", err)
		}
		if p.StageEffects, err = decodeList[string](effects); err != nil {
			return nil, fmt.Errorf("decode stage effects: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// CreateRoutine stores a routine. Only one routine may exist per user and week.
func (d *DB) CreateRoutine(r *models.PracticeRoutine) error {
	ensureID(&r.ID)
	if r.ExerciseIDs == nil {
		r.ExerciseIDs = []uuid.UUID{}
	}
	ids, err := encodeList(r.ExerciseIDs)
	if err != nil {
		return fmt.Errorf("encode exercise ids: %w", err)
	}

	query := `
		INSERT INTO practice_routines (id, user_id, week, exercise_ids, goal_minutes, completed_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		r.ID.String(),
		r.UserID.String(),
		r.Week,
		ids.String,
		r.GoalMinutes,
		r.CompletedMinutes,
	)
	if err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	return nil
}

// GetRoutine retrieves the user's routine for a week.
func (d *DB) GetRoutine(userID uuid.UUID, week int) (*models.PracticeRoutine, error) {
	query := `
		SELECT id, user_id, week, exercise_ids, goal_minutes, completed_minutes
		FROM practice_routines WHERE user_id = ? AND week = ?
	`
	r, err := scanRoutine(d.db.QueryRow(query, userID.String(), week))
	if err != nil {
		return nil, fmt.Errorf("routine for week %d: %w", week, err)
	}
	return r, nil
}

// UpdateRoutine merges patch into the stored routine.
func (d *DB) UpdateRoutine(id uuid.UUID, patch models.RoutinePatch) (*models.PracticeRoutine, error) {
	query := `
		SELECT id, user_id, week, exercise_ids, goal_minutes, completed_minutes
		FROM practice_routines WHERE id = ?
	`
	r, err := scanRoutine(d.db.QueryRow(query, id.String()))
	if err != nil {
		return nil, fmt.Errorf("update routine %s: %w", id, err)
	}
	patch.Apply(r)

	ids, err := encodeList(r.ExerciseIDs)
	if err != nil {
		return nil, fmt.Errorf("encode exercise ids: %w", err)
	}
	_, err = d.db.Exec(
		`UPDATE practice_routines SET exercise_ids = ?, goal_minutes = ?, completed_minutes = ? WHERE id = ?`,
		ids.String, r.GoalMinutes, r.CompletedMinutes, id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update routine: %w", err)
	}
	return r, nil
}

func scanRoutine(row rowScanner) (*models.PracticeRoutine, error) {
	var r models.PracticeRoutine
	var idStr, userStr string
	var ids sql.NullString

	err := row.Scan(&idStr, &userStr, &r.Week, &ids, &r.GoalMinutes, &r.CompletedMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan routine: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.UserID, _ = uuid.Parse(userStr)
	if r.ExerciseIDs, err = decodeList[uuid.UUID](ids); err != nil {
		return nil, fmt.Errorf("decode exercise ids: %w", err)
	}
	if r.ExerciseIDs == nil {
		r.ExerciseIDs = []uuid.UUID{}
	}
	return &r, nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectAll(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return restoreAll(d, data)
}
