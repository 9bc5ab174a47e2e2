// Package tictactoe implements tic-tac-toe against the computer.
// The player is X and moves first; the computer answers as O after a
// short pause.
package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/ai"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Board geometry in logical units.
const (
	CellSize = 100.0
	Width    = 3 * CellSize
	Height   = 3 * CellSize
)

// ThinkMs is how long the computer waits before answering.
const ThinkMs = 600

// Game implements tic-tac-toe game logic.
type Game struct {
	rng      *rand.Rand
	board    ai.Board
	cursor   int
	thinking float64 // ms until the computer moves, 0 when it is the player's turn
	winner   ai.Mark
	line     [3]int
	over     bool
}

// New creates a new tic-tac-toe game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tictactoe"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tic-Tac-Toe"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "arrows and enter, or click a square"
}

// Unscored marks tic-tac-toe as a match without a high score.
func (g *Game) Unscored() {}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Reset clears the board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.board = ai.Board{}
	g.cursor = 4
	g.thinking = 0
	g.winner = ai.Empty
	g.line = [3]int{}
	g.over = false
}

// Step handles the player's move and the computer's delayed reply.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.over {
		return core.StepResult{State: g.State()}
	}

	if g.thinking > 0 {
		g.thinking -= dt * core.FrameMillis
		if g.thinking <= 0 {
			g.thinking = 0
			if i := ai.BestMove(g.board, ai.O, ai.X, g.rng); i >= 0 {
				g.place(i, ai.O)
			}
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if sq, ok := g.selected(in); ok && g.board[sq] == ai.Empty {
		g.place(sq, ai.X)
		if !g.over {
			g.thinking = ThinkMs
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	row, col := g.cursor/3, g.cursor%3
	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	}
	g.cursor = core.Clamp(row, 0, 2)*3 + core.Clamp(col, 0, 2)
}

// selected returns the square chosen this frame by click or confirm.
func (g *Game) selected(in core.InputFrame) (int, bool) {
	if p := in.Pointer; p.Clicked && p.Valid {
		if p.X < 0 || p.Y < 0 || p.X >= Width || p.Y >= Height {
			return 0, false
		}
		sq := int(p.Y/CellSize)*3 + int(p.X/CellSize)
		g.cursor = sq
		return sq, true
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		return g.cursor, true
	}
	return 0, false
}

// place marks a square and checks for the end of the game.
func (g *Game) place(sq int, m ai.Mark) {
	g.board[sq] = m
	if w, line, ok := g.board.Winner(); ok {
		g.winner, g.line, g.over = w, line, true
		return
	}
	if g.board.Full() {
		g.over = true
	}
}

func cellCenter(sq int) core.Vec {
	return core.Vec{X: (float64(sq%3) + 0.5) * CellSize, Y: (float64(sq/3) + 0.5) * CellSize}
}

// Render draws the board.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	if !g.over && g.thinking == 0 {
		c := cellCenter(g.cursor)
		dst.FillRect(core.RectAround(c.X, c.Y, CellSize, CellSize).Inset(6), '·', core.ColorGray)
	}

	for i := 1; i < 3; i++ {
		d := float64(i) * CellSize
		dst.Line(core.Vec{X: d, Y: 0}, core.Vec{X: d, Y: Height}, '│', core.ColorWhite)
		dst.Line(core.Vec{X: 0, Y: d}, core.Vec{X: Width, Y: d}, '─', core.ColorWhite)
	}

	for sq, m := range g.board {
		c := cellCenter(sq)
		switch m {
		case ai.X:
			r := CellSize * 0.3
			dst.Line(core.Vec{X: c.X - r, Y: c.Y - r}, core.Vec{X: c.X + r, Y: c.Y + r}, '╲', core.ColorBrightCyan)
			dst.Line(core.Vec{X: c.X + r, Y: c.Y - r}, core.Vec{X: c.X - r, Y: c.Y + r}, '╱', core.ColorBrightCyan)
		case ai.O:
			dst.FillCircle(core.Circle{X: c.X, Y: c.Y, R: CellSize * 0.32}, 'O', core.ColorBrightMagenta)
			dst.FillCircle(core.Circle{X: c.X, Y: c.Y, R: CellSize * 0.2}, ' ', core.ColorDefault)
		}
	}

	if g.winner != ai.Empty {
		dst.Line(cellCenter(g.line[0]), cellCenter(g.line[2]), '█', core.ColorBrightYellow)
	}

	dst.HUD(0, "Tic-Tac-Toe  "+g.status(), core.ColorBrightWhite)
}

func (g *Game) status() string {
	switch {
	case g.winner == ai.X:
		return "You win!"
	case g.winner == ai.O:
		return "Computer wins"
	case g.over:
		return "Draw"
	case g.thinking > 0:
		return "Computer is thinking..."
	}
	return fmt.Sprintf("Your move (%s)", ai.X)
}

// Board returns a copy of the board.
func (g *Game) Board() ai.Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.over,
		Won:      g.winner == ai.X,
	}
}

// Register the game with the registry
func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}
