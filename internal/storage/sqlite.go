package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

var _ Backend = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		expanded, err := ExpandHome(dbPath)
		if err != nil {
			return nil, err
		}
		dbPath = expanded

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// HighScore returns the stored best for the given game.
// Returns 0 if the game has no high score yet.
func (s *Store) HighScore(gameID string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM high_scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// SubmitScore stores max(previous, score) for the game and returns the
// resulting best. A lower score never overwrites a higher one.
func (s *Store) SubmitScore(gameID string, score int) (int, error) {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			updated_at = CASE WHEN excluded.score > score THEN excluded.updated_at ELSE updated_at END,
			score = MAX(score, excluded.score)`,
		gameID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save high score: %w", err)
	}

	return s.HighScore(gameID)
}

// RecordRun saves a completed run. A missing ID is filled with a new uuid.
func (s *Store) RecordRun(run RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, game_id, score, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.GameID, run.Score, run.Won, run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// TopRuns retrieves the best N runs for the given game.
// Results are ordered by score descending.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, won, duration_ms, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Score, &r.Won, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *Store) GameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(SUM(won), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.RunsCount, &stats.AvgScore, &stats.Wins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	best, err := s.HighScore(gameID)
	if err != nil {
		return nil, err
	}
	stats.HighScore = best

	return stats, nil
}

// ClearGame deletes the high score and run history of a game.
func (s *Store) ClearGame(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM high_scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
