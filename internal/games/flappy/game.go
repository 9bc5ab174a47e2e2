// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 600.0
	Height = 500.0
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	BodyChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg        config.FlappyConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	playerY   float64      // Bird top edge
	playerVel float64      // Vertical velocity, negative is up
	pipes     *PipeManager // Obstacle manager
	score     int          // Pipes passed
	gameOver  bool
	frames    float64 // Nominal frames since start
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "space, up or click to flap"
}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadFlappy(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.preset = config.ParsePreset(difficulty)
	g.configured = true
	return nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		g.cfg = config.Must(config.LoadFlappy(""))
		g.configured = true
	}
	g.cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.playerY = Height / 2
	g.playerVel = 0
	g.score = 0
	g.gameOver = false
	g.frames = 0

	if g.pipes == nil {
		g.pipes = NewPipeManager(rc.Seed, Width, Height, &g.cfg, g.difficulty)
	} else {
		g.pipes.UpdateConfig(&g.cfg, g.difficulty)
		g.pipes.Reset(rc.Seed)
	}
}

// flapped reports whether the input asks for a flap this step.
func flapped(in core.InputFrame) bool {
	return in.Has(core.ActionFire) || in.Has(core.ActionUp) || in.Has(core.ActionConfirm) || in.Pointer.Clicked
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.frames += dt
	phys := g.cfg.Physics

	if flapped(in) {
		g.playerVel = phys.JumpImpulse
	}

	g.playerVel = min(g.playerVel+phys.Gravity*dt, phys.MaxFallSpeed)
	g.playerY += g.playerVel * dt

	// The ceiling and the ground stop the bird without ending the run
	player := g.cfg.Player
	if g.playerY < 0 {
		g.playerY = 0
		g.playerVel = 0
	}
	if g.playerY+player.Height > Height {
		g.playerY = Height - player.Height
		g.playerVel = 0
	}

	g.score += g.pipes.Update(player.X, g.score, g.frames, dt)

	if g.pipes.CheckCollision(g.hitbox()) {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// hitbox returns the bird's collision rectangle, shrunk by the padding.
func (g *Game) hitbox() core.Rect {
	p := g.cfg.Player
	return core.NewRect(p.X, g.playerY, p.Width, p.Height).Inset(p.HitboxPadding)
}

// Render draws the current game state to the canvas.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	w := g.cfg.Obstacles.PipeWidth
	for _, p := range g.pipes.Pipes() {
		top := p.TopRect(w)
		bottom := p.BottomRect(w, Height)
		dst.FillRect(top, PipeChar, core.ColorGreen)
		dst.FillRect(bottom, PipeChar, core.ColorGreen)
		// Caps sit on the edges of the gap
		dst.Line(core.Vec{X: p.X, Y: top.Bottom() - 1}, core.Vec{X: p.X + w, Y: top.Bottom() - 1}, PipeCapTop, core.ColorBrightGreen)
		dst.Line(core.Vec{X: p.X, Y: bottom.Y}, core.Vec{X: p.X + w, Y: bottom.Y}, PipeCapBottom, core.ColorBrightGreen)
	}

	pl := g.cfg.Player
	dst.FillRect(core.NewRect(pl.X, g.playerY, pl.Width, pl.Height), BodyChar, core.ColorBrightYellow)
	dst.Dot(pl.X+pl.Width-1, g.playerY, PlayerChar, core.ColorOrange)

	dst.HUD(0, fmt.Sprintf("Flappy Bird  Score: %d", g.score), core.ColorBrightWhite)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
