// Package memory implements a pairs-matching card game.
package memory

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Layout in logical units.
const (
	Cols     = 4
	Rows     = 3
	CardSize = 100.0
	Width    = Cols * CardSize
	Height   = Rows * CardSize
)

// Pairs is the number of distinct card faces.
const Pairs = Cols * Rows / 2

// RevealMs is how long two flipped cards stay face up.
const RevealMs = 1000

// Face is one card picture.
type Face struct {
	Name  string
	Glyph rune
	Color core.Color
}

// Faces are the six card pictures.
var Faces = [Pairs]Face{
	{"dev", '⌘', core.ColorBrightBlue},
	{"design", '✎', core.ColorMagenta},
	{"mkt", '✦', core.ColorBrightMagenta},
	{"ai", '☻', core.ColorBrightGreen},
	{"users", '♟', core.ColorBrightCyan},
	{"target", '◎', core.ColorBrightYellow},
}

// Game implements the memory game logic.
type Game struct {
	rng     *rand.Rand
	deck    [Cols * Rows]int // Face index per slot
	flipped []int            // Face-up unmatched slots, at most two
	matched [Pairs]bool
	moves   int
	reveal  float64 // ms until a flipped pair turns back
	cursor  int
	won     bool
}

// New creates a new memory game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Memory"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "arrows and enter, or click a card"
}

// Unscored marks memory as a puzzle without a high score.
func (g *Game) Unscored() {}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Reset deals a freshly shuffled deck.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	for i := range g.deck {
		g.deck[i] = i / 2
	}
	// Fisher-Yates
	for i := len(g.deck) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	}
	g.flipped = g.flipped[:0]
	g.matched = [Pairs]bool{}
	g.moves = 0
	g.reveal = 0
	g.cursor = 0
	g.won = false
}

// Step handles card picks and turns a revealed pair back after RevealMs.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.won {
		return core.StepResult{State: g.State()}
	}

	if g.reveal > 0 {
		g.reveal -= dt * core.FrameMillis
		if g.reveal <= 0 {
			g.reveal = 0
			g.flipped = g.flipped[:0]
		}
	}

	g.moveCursor(in)
	if slot, ok := g.selected(in); ok {
		g.flip(slot)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	row, col := g.cursor/Cols, g.cursor%Cols
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
	g.cursor = core.Clamp(row, 0, Rows-1)*Cols + core.Clamp(col, 0, Cols-1)
}

func (g *Game) selected(in core.InputFrame) (int, bool) {
	if p := in.Pointer; p.Clicked && p.Valid {
		if p.X < 0 || p.Y < 0 || p.X >= Width || p.Y >= Height {
			return 0, false
		}
		g.cursor = int(p.Y/CardSize)*Cols + int(p.X/CardSize)
		return g.cursor, true
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		return g.cursor, true
	}
	return 0, false
}

// flip turns a card face up. Picks are locked while a pair is showing.
func (g *Game) flip(slot int) {
	if len(g.flipped) == 2 || slices.Contains(g.flipped, slot) || g.matched[g.deck[slot]] {
		return
	}
	if len(g.flipped) == 0 {
		g.moves++
	}
	g.flipped = append(g.flipped, slot)
	if len(g.flipped) < 2 {
		return
	}

	if a, b := g.deck[g.flipped[0]], g.deck[g.flipped[1]]; a == b {
		g.matched[a] = true
	}
	g.reveal = RevealMs
	g.won = !slices.Contains(g.matched[:], false)
}

// FaceUp reports whether the card in slot is showing.
func (g *Game) FaceUp(slot int) bool {
	return g.matched[g.deck[slot]] || slices.Contains(g.flipped, slot)
}

// Render draws the card grid.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	for slot, face := range g.deck {
		x := float64(slot%Cols) * CardSize
		y := float64(slot/Cols) * CardSize
		card := core.NewRect(x, y, CardSize, CardSize).Inset(8)

		switch {
		case g.matched[face]:
			dst.FillRect(card, ' ', core.ColorDefault)
			dst.Dot(card.Center().X, card.Center().Y, Faces[face].Glyph, core.ColorGray)
		case g.FaceUp(slot):
			dst.FillRect(card, '▒', Faces[face].Color)
			dst.Dot(card.Center().X, card.Center().Y, Faces[face].Glyph, core.ColorBrightWhite)
		default:
			dst.FillRect(card, '▓', core.ColorBlue)
		}
		if slot == g.cursor && !g.won {
			dst.Dot(card.X, card.Y, '▶', core.ColorBrightYellow)
		}
	}

	found := 0
	for _, m := range g.matched {
		if m {
			found++
		}
	}
	dst.HUD(0, fmt.Sprintf("Memory  Moves: %d  Pairs: %d/%d", g.moves, found, Pairs), core.ColorBrightWhite)
}

// Moves returns the number of pairs attempted.
func (g *Game) Moves() int {
	return g.moves
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.moves,
		GameOver: g.won,
		Won:      g.won,
	}
}

// Register the game with the registry
func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}
