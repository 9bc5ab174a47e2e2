package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func board(s string) Board {
	var b Board
	for i, r := range s {
		switch r {
		case 'X':
			b[i] = X
		case 'O':
			b[i] = O
		}
	}
	return b
}

func TestBestMove(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		expected int
	}{
		{"win beats block", "OO.XX....", 2},
		{"block", "XX.......", 2},
		{"win on diagonal", "O...O....", 8},
		{"take centre", "X........", 4},
		{"side when centre and corners are taken", "XOX.X.OXO", 3},
		{"full board", "XOXXOOOXX", -1},
	}

	for _, tc := range tests {
		if got := BestMove(board(tc.board), O, X, nil); got != tc.expected {
			t.Errorf("%s: BestMove(%q) = %d, expected %d", tc.name, tc.board, got, tc.expected)
		}
	}
}

func TestBestMoveRandomCorner(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := board("....X....")

	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		got := BestMove(b, O, X, rng)
		if got != 0 && got != 2 && got != 6 && got != 8 {
			t.Fatalf("expected a corner, got %d", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Errorf("corner choice is not random: %v", seen)
	}
}

func TestWinnerAndFull(t *testing.T) {
	b := board("XXXOO....")
	m, line, ok := b.Winner()
	if !ok || m != X || line != [3]int{0, 1, 2} {
		t.Errorf("Winner() = %v %v %v", m, line, ok)
	}

	b = board("XOXXOOOXX")
	if _, _, ok := b.Winner(); ok {
		t.Error("drawn board has no winner")
	}
	if !b.Full() {
		t.Error("board should be full")
	}
	if X.Other() != O || O.Other() != X {
		t.Error("Other() mismatch")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tc := range tests {
		if got := NormalizeAngle(tc.in); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestSteer(t *testing.T) {
	p := DefaultSteerParams
	pos := core.Vec{X: 0, Y: 0}

	// Facing +x, target straight ahead, next continues straight
	s := Steer(pos, 0, core.Vec{X: 100, Y: 0}, core.Vec{X: 200, Y: 0}, p)
	if s.Turn != 0 || s.TargetSpeed != p.Cruise {
		t.Errorf("straight: %+v", s)
	}

	// Target to the +y side: turn positive and bounded
	s = Steer(pos, 0, core.Vec{X: 0, Y: 100}, core.Vec{X: 0, Y: 200}, p)
	if s.Turn != p.TurnRate {
		t.Errorf("turn = %v, expected %v", s.Turn, p.TurnRate)
	}

	// Target to the -y side
	s = Steer(pos, 0, core.Vec{X: 0, Y: -100}, core.Vec{X: 0, Y: -200}, p)
	if s.Turn != -p.TurnRate {
		t.Errorf("turn = %v, expected %v", s.Turn, -p.TurnRate)
	}

	// Small error is corrected exactly
	s = Steer(pos, 0.01, core.Vec{X: 100, Y: 0}, core.Vec{X: 200, Y: 0}, p)
	if math.Abs(s.Turn+0.01) > 1e-9 {
		t.Errorf("small correction = %v, expected -0.01", s.Turn)
	}

	// Hairpin after the target: slow down
	s = Steer(pos, 0, core.Vec{X: 100, Y: 0}, core.Vec{X: 0, Y: 10}, p)
	if s.TargetSpeed != p.Slow {
		t.Errorf("hairpin speed = %v, expected %v", s.TargetSpeed, p.Slow)
	}
}

func TestApproachAndTrackPaddle(t *testing.T) {
	if got := Approach(0, 10, 0.1); got != 1 {
		t.Errorf("Approach() = %v, expected 1", got)
	}

	tests := []struct {
		center, target, expected float64
	}{
		{100, 200, 2.5},
		{200, 100, -2.5},
		{100, 105, 0},
		{100, 95, 0},
	}
	for _, tc := range tests {
		if got := TrackPaddle(tc.center, tc.target, 2.5, 10); got != tc.expected {
			t.Errorf("TrackPaddle(%v, %v) = %v, expected %v", tc.center, tc.target, got, tc.expected)
		}
	}
}
