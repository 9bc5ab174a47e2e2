package storage

import (
	"errors"
	"testing"
)

// brokenBackend fails every call, like a database on a full or read-only disk.
type brokenBackend struct {
	calls int
}

var errBroken = errors.New("disk I/O error")

func (b *brokenBackend) HighScore(string) (int, error) { b.calls++; return 0, errBroken }
func (b *brokenBackend) SubmitScore(string, int) (int, error) {
	b.calls++
	return 0, errBroken
}
func (b *brokenBackend) RecordRun(RunRecord) error { b.calls++; return errBroken }
func (b *brokenBackend) TopRuns(string, int) ([]RunRecord, error) {
	b.calls++
	return nil, errBroken
}
func (b *brokenBackend) GameStats(string) (*GameStats, error) { b.calls++; return nil, errBroken }
func (b *brokenBackend) Close() error                         { return nil }

func TestFallbackDegradesSilently(t *testing.T) {
	broken := &brokenBackend{}
	f := NewFallback(broken, nil)

	best, err := f.SubmitScore("snake", 40)
	if err != nil {
		t.Fatalf("SubmitScore() returned error %v, expected silent degradation", err)
	}
	if best != 40 {
		t.Errorf("SubmitScore() = %d, expected 40", best)
	}
	if !f.Degraded() {
		t.Error("store should report degraded after a failure")
	}

	callsAfterFailure := broken.calls
	if best, _ := f.SubmitScore("snake", 10); best != 40 {
		t.Errorf("in-memory best decreased to %d", best)
	}
	if high, err := f.HighScore("snake"); err != nil || high != 40 {
		t.Errorf("HighScore() = %d, %v; expected 40, nil", high, err)
	}
	if broken.calls != callsAfterFailure {
		t.Error("degraded store should stop calling the primary")
	}

	if err := f.RecordRun(RunRecord{GameID: "snake", Score: 40}); err != nil {
		t.Errorf("RecordRun() = %v, expected nil", err)
	}
	if runs, err := f.TopRuns("snake", 5); err != nil || len(runs) != 1 {
		t.Errorf("TopRuns() = %v, %v; expected one in-memory run", runs, err)
	}
}

func TestFallbackWithoutPrimary(t *testing.T) {
	f := NewFallback(nil, nil)
	if !f.Degraded() {
		t.Error("nil primary should start degraded")
	}
	if best, err := f.SubmitScore("flappy", 3); err != nil || best != 3 {
		t.Errorf("SubmitScore() = %d, %v", best, err)
	}
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	f := NewFallback(store, nil)
	defer f.Close()

	f.SubmitScore("invaders", 500) //nolint:errcheck
	if f.Degraded() {
		t.Fatal("healthy primary should not degrade")
	}
	if high, _ := store.HighScore("invaders"); high != 500 {
		t.Errorf("primary high score = %d, expected 500", high)
	}
}

func TestMemoryStoreMonotonic(t *testing.T) {
	m := NewMemoryStore()
	prev := 0
	for _, s := range []int{5, 3, 9, 0, 9, 12, 1} {
		best, _ := m.SubmitScore("g", s)
		if best < prev {
			t.Fatalf("best decreased from %d to %d", prev, best)
		}
		if best != max(prev, s) {
			t.Errorf("SubmitScore(%d) = %d, expected %d", s, best, max(prev, s))
		}
		prev = best
	}
}
