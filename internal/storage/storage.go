// Package storage persists per-game high scores and run history.
// The SQLite store uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies; the memory store and the fallback wrapper keep the game
// playable when the database cannot be used.
package storage

import (
	"time"
)

// HighScores keeps one best score per game. The stored value never
// decreases.
type HighScores interface {
	// HighScore returns the stored best for a game, 0 if none.
	HighScore(gameID string) (int, error)
	// SubmitScore stores max(previous, score) and returns the new best.
	SubmitScore(gameID string, score int) (int, error)
}

// RunLog records completed runs.
type RunLog interface {
	RecordRun(run RunRecord) error
}

// Backend is a complete score store.
type Backend interface {
	HighScores
	RunLog
	TopRuns(gameID string, limit int) ([]RunRecord, error)
	GameStats(gameID string) (*GameStats, error)
	Close() error
}

// RunRecord describes one completed run.
type RunRecord struct {
	ID        string // uuid
	GameID    string
	Score     int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	Wins       int
	LastPlayed time.Time
}
