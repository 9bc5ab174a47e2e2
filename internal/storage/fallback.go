package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Fallback wraps a primary backend and silently degrades to memory when
// the primary fails. Its methods never return an error.
type Fallback struct {
	mu       sync.Mutex
	primary  Backend
	mem      *MemoryStore
	degraded bool
	logger   *log.Logger
}

var _ Backend = (*Fallback)(nil)

// NewFallback wraps primary. A nil primary starts in memory-only mode.
func NewFallback(primary Backend, logger *log.Logger) *Fallback {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fallback{
		primary:  primary,
		mem:      NewMemoryStore(),
		degraded: primary == nil,
		logger:   logger,
	}
}

// OpenFallback opens the SQLite store at path and wraps it. If the
// database cannot be opened the store starts in memory-only mode.
func OpenFallback(path string, logger *log.Logger) *Fallback {
	store, err := Open(path)
	if err != nil {
		if logger != nil {
			logger.Warn("scores database unavailable, keeping scores in memory", "path", path, "error", err)
		}
		return NewFallback(nil, logger)
	}
	return NewFallback(store, logger)
}

// Degraded reports whether the store is running from memory.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

// active returns the primary backend, or nil once degraded.
func (f *Fallback) active() Backend {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.degraded {
		return nil
	}
	return f.primary
}

// degrade switches to memory after a primary failure. Only the first
// failure is logged.
func (f *Fallback) degrade(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.degraded {
		return
	}
	f.degraded = true
	f.logger.Warn("scores database failed, continuing in memory", "op", op, "error", err)
}

// HighScore returns the larger of the primary and in-memory values.
func (f *Fallback) HighScore(gameID string) (int, error) {
	memBest, _ := f.mem.HighScore(gameID)
	if p := f.active(); p != nil {
		best, err := p.HighScore(gameID)
		if err == nil {
			return max(best, memBest), nil
		}
		f.degrade("high_score", err)
	}
	return memBest, nil
}

// SubmitScore records the score in memory and, while healthy, in the
// primary. The result is never lower than either stored value.
func (f *Fallback) SubmitScore(gameID string, score int) (int, error) {
	memBest, _ := f.mem.SubmitScore(gameID, score)
	if p := f.active(); p != nil {
		best, err := p.SubmitScore(gameID, score)
		if err == nil {
			// Keep memory in step so a later degradation loses nothing
			f.mem.SubmitScore(gameID, best) //nolint:errcheck // memory store never fails
			return max(best, memBest), nil
		}
		f.degrade("submit_score", err)
	}
	return memBest, nil
}

// RecordRun records the run in the active backend.
func (f *Fallback) RecordRun(run RunRecord) error {
	if p := f.active(); p != nil {
		err := p.RecordRun(run)
		if err == nil {
			return nil
		}
		f.degrade("record_run", err)
	}
	return f.mem.RecordRun(run)
}

// TopRuns reads from the active backend.
func (f *Fallback) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if p := f.active(); p != nil {
		runs, err := p.TopRuns(gameID, limit)
		if err == nil {
			return runs, nil
		}
		f.degrade("top_runs", err)
	}
	return f.mem.TopRuns(gameID, limit)
}

// GameStats reads from the active backend.
func (f *Fallback) GameStats(gameID string) (*GameStats, error) {
	if p := f.active(); p != nil {
		stats, err := p.GameStats(gameID)
		if err == nil {
			return stats, nil
		}
		f.degrade("game_stats", err)
	}
	return f.mem.GameStats(gameID)
}

// Close closes the primary backend. Errors are logged, not returned.
func (f *Fallback) Close() error {
	f.mu.Lock()
	p := f.primary
	f.primary = nil
	f.degraded = true
	f.mu.Unlock()

	if p != nil {
		if err := p.Close(); err != nil {
			f.logger.Warn("closing scores database", "error", err)
		}
	}
	return nil
}
