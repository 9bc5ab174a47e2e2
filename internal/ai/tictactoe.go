// Package ai holds the computer opponents' heuristics. Everything here is a
// pure function of its inputs plus an optional random source.
package ai

import "math/rand"

// Mark is a tic-tac-toe square value.
type Mark byte

const (
	Empty Mark = 0
	X     Mark = 'X'
	O     Mark = 'O'
)

// Other returns the opposing mark.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (m Mark) String() string {
	if m == Empty {
		return " "
	}
	return string(rune(m))
}

// Board is a 3x3 board in row-major order.
type Board [9]Mark

// WinLines are the eight winning lines.
var WinLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

var (
	corners = []int{0, 2, 6, 8}
	sides   = []int{1, 3, 5, 7}
)

const center = 4

// Winner returns the mark that owns a complete line, and the line.
func (b Board) Winner() (Mark, [3]int, bool) {
	for _, line := range WinLines {
		m := b[line[0]]
		if m != Empty && m == b[line[1]] && m == b[line[2]] {
			return m, line, true
		}
	}
	return Empty, [3]int{}, false
}

// Full reports whether no square is empty.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// Free returns the empty squares in index order.
func (b Board) Free() []int {
	free := make([]int, 0, 9)
	for i, m := range b {
		if m == Empty {
			free = append(free, i)
		}
	}
	return free
}

// completing returns the square that would give m a full line, or -1.
func (b Board) completing(m Mark) int {
	for _, line := range WinLines {
		count, gap := 0, -1
		for _, i := range line {
			switch b[i] {
			case m:
				count++
			case Empty:
				gap = i
			}
		}
		if count == 2 && gap >= 0 {
			return gap
		}
	}
	return -1
}

// BestMove picks a square for me using ordered rules: win, block the
// opponent, take the centre, a random free corner, a random free side.
// Returns -1 when the board is full. A nil rng picks the first candidate.
func BestMove(b Board, me, opponent Mark, rng *rand.Rand) int {
	if i := b.completing(me); i >= 0 {
		return i
	}
	if i := b.completing(opponent); i >= 0 {
		return i
	}
	if b[center] == Empty {
		return center
	}
	if i := pickFree(b, corners, rng); i >= 0 {
		return i
	}
	if i := pickFree(b, sides, rng); i >= 0 {
		return i
	}
	if free := b.Free(); len(free) > 0 {
		return free[0]
	}
	return -1
}

func pickFree(b Board, candidates []int, rng *rand.Rand) int {
	var free []int
	for _, i := range candidates {
		if b[i] == Empty {
			free = append(free, i)
		}
	}
	switch {
	case len(free) == 0:
		return -1
	case rng == nil:
		return free[0]
	}
	return free[rng.Intn(len(free))]
}
