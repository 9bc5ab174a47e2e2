package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps scores for the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	best map[string]int
	runs map[string][]RunRecord
}

var _ Backend = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		best: make(map[string]int),
		runs: make(map[string][]RunRecord),
	}
}

// HighScore returns the best score recorded in memory.
func (m *MemoryStore) HighScore(gameID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.best[gameID], nil
}

// SubmitScore keeps max(previous, score).
func (m *MemoryStore) SubmitScore(gameID string, score int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best[gameID] {
		m.best[gameID] = score
	}
	return m.best[gameID], nil
}

// RecordRun appends a run to the in-memory history.
func (m *MemoryStore) RecordRun(run RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.GameID] = append(m.runs[run.GameID], run)
	return nil
}

// TopRuns returns the best runs ordered by score descending.
func (m *MemoryStore) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	m.mu.RLock()
	runs := append([]RunRecord(nil), m.runs[gameID]...)
	m.mu.RUnlock()

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Score > runs[j].Score
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GameStats aggregates the in-memory history.
func (m *MemoryStore) GameStats(gameID string) (*GameStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &GameStats{GameID: gameID, HighScore: m.best[gameID]}
	total := 0
	for _, r := range m.runs[gameID] {
		stats.RunsCount++
		total += r.Score
		if r.Won {
			stats.Wins++
		}
		if r.CreatedAt.After(stats.LastPlayed) {
			stats.LastPlayed = r.CreatedAt
		}
	}
	if stats.RunsCount > 0 {
		stats.AvgScore = float64(total) / float64(stats.RunsCount)
	}
	return stats, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
