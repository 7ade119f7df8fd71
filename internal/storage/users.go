// ABOUTME: User CRUD operations for SQLite storage.
// ABOUTME: Implements Repository methods for users including progress reset.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const userColumns = `id, name, experience_level, vocal_range, current_phase, current_week,
	total_practice_minutes, streak, last_practiced_at, created_at`

// CreateUser stores a new user in the database.
func (d *DB) CreateUser(u *models.User) error {
	ensureID(&u.ID)
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		u.ID.String(),
		u.Name,
		string(u.ExperienceLevel),
		nullRange(u.VocalRange),
		u.CurrentPhase,
		u.CurrentWeek,
		u.TotalPracticeMinutes,
		u.Streak,
		nullTime(u.LastPracticedAt),
		formatTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (d *DB) GetUser(id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	u, err := scanUser(d.db.QueryRow(query, id.String()))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

// FirstUser retrieves the earliest-created user.
func (d *DB) FirstUser() (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY rowid ASC LIMIT 1`
	u, err := scanUser(d.db.QueryRow(query))
	if err != nil {
		return nil, fmt.Errorf("first user: %w", err)
	}
	return u, nil
}

// ListUsers retrieves all users in creation order.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser merges patch into the stored user.
func (d *DB) UpdateUser(id uuid.UUID, patch models.UserPatch) (*models.User, error) {
	u, err := d.GetUser(id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	patch.Apply(u)
	if err := d.writeUser(d.db, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetUserProgress returns the user to phase 1 and deletes their progress rows.
func (d *DB) ResetUserProgress(id uuid.UUID) (*models.User, error) {
	u, err := d.GetUser(id)
	if err != nil {
		return nil, fmt.Errorf("reset user: %w", err)
	}
	resetUser(u)

	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := d.writeUser(tx, u); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM exercise_progress WHERE user_id = ?`, id.String()); err != nil {
		return nil, fmt.Errorf("delete progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reset: %w", err)
	}
	return u, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// writeUser overwrites every mutable column of u.
func (d *DB) writeUser(x execer, u *models.User) error {
	query := `
		UPDATE users SET name = ?, experience_level = ?, vocal_range = ?, current_phase = ?,
			current_week = ?, total_practice_minutes = ?, streak = ?, last_practiced_at = ?
		WHERE id = ?
	`
	_, err := x.Exec(query,
		u.Name,
		string(u.ExperienceLevel),
		nullRange(u.VocalRange),
		u.CurrentPhase,
		u.CurrentWeek,
		u.TotalPracticeMinutes,
		u.Streak,
		nullTime(u.LastPracticedAt),
		u.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

func nullRange(r *models.VocalRange) sql.NullString {
	if r == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*r), Valid: true}
}

// scanUser scans a single row into a User struct.
func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var idStr, level, createdAt string
	var vocalRange, lastPracticed sql.NullString

	err := row.Scan(&idStr, &u.Name, &level, &vocalRange, &u.CurrentPhase, &u.CurrentWeek,
		&u.TotalPracticeMinutes, &u.Streak, &lastPracticed, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(idStr)
	u.ExperienceLevel = models.ExperienceLevel(level)
	if vocalRange.Valid {
		r := models.VocalRange(vocalRange.String)
		u.VocalRange = &r
	}
	u.LastPracticedAt = timePtr(lastPracticed)
	u.CreatedAt = parseTime(createdAt)

	return &u, nil
}
