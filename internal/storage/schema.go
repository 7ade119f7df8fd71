// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for users, catalog, progress, analyses, performances, routines.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		experience_level TEXT NOT NULL,
		vocal_range TEXT,
		current_phase INTEGER NOT NULL DEFAULT 1,
		current_week INTEGER NOT NULL DEFAULT 1,
		total_practice_minutes INTEGER NOT NULL DEFAULT 0,
		streak INTEGER NOT NULL DEFAULT 0,
		last_practiced_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		phase INTEGER NOT NULL,
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		instructions TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_progress (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		pitch_score REAL,
		tone_score REAL,
		breathing_score REAL,
		overall_score REAL,
		completed_at TEXT,
		feedback TEXT,
		UNIQUE (user_id, exercise_id)
	);

	CREATE TABLE IF NOT EXISTS voice_analyses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		pitch_accuracy REAL NOT NULL,
		tone_stability REAL NOT NULL,
		breathing_consistency REAL NOT NULL,
		overall_rating REAL NOT NULL,
		suggestions TEXT NOT NULL,
		analyzed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		genre TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		vocal_range TEXT NOT NULL,
		bpm INTEGER NOT NULL,
		song_key TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS practice_routines (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		week INTEGER NOT NULL,
		exercise_ids TEXT NOT NULL,
		goal_minutes INTEGER NOT NULL,
		completed_minutes INTEGER NOT NULL DEFAULT 0,
		UNIQUE (user_id, week)
	);

	CREATE TABLE IF NOT EXISTS performances (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		song_id TEXT,
		audience_reactions TEXT,
		performance_score REAL,
		stage_effects TEXT,
		performed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_phase ON exercises(phase);
	CREATE INDEX IF NOT EXISTS idx_progress_user ON exercise_progress(user_id);
	CREATE INDEX IF NOT EXISTS idx_analyses_user ON voice_analyses(user_id);
	CREATE INDEX IF NOT EXISTS idx_performances_user ON performances(user_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
