// Package pong implements Pong against a computer paddle.
// The player defends the bottom edge, the computer the top.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/ai"
	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 400.0
	Height = 600.0
)

// Visual characters for rendering
const (
	BallChar   = '●'
	PaddleChar = '█'
	NetChar    = '─'
)

// Ball is the ball state.
type Ball struct {
	X, Y   float64
	DX, DY float64
	R      float64
}

// Paddle is a paddle's left edge and row.
type Paddle struct {
	X, Y float64
	W, H float64
}

// Rect returns the paddle rectangle.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Center returns the horizontal center.
func (p Paddle) Center() float64 {
	return p.X + p.W/2
}

// Game implements Pong game logic.
type Game struct {
	cfg        config.PongConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	rng         *rand.Rand
	frames      float64
	ball        Ball
	player      Paddle
	cpu         Paddle
	playerScore int
	cpuScore    int
	gameOver    bool
	won         bool
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{}
}

// Register the game with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "left/right or drag the mouse"
}

// Unscored marks Pong as a match without a high score.
func (g *Game) Unscored() {}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadPong(path)
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
		g.cfg = config.Must(config.LoadPong(""))
		g.configured = true
	}
	cfg := g.cfg
	cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.frames = 0
	g.playerScore = 0
	g.cpuScore = 0
	g.gameOver = false
	g.won = false

	p := cfg.Paddles
	g.player = Paddle{X: Width/2 - p.Width/2, Y: p.PlayerY, W: p.Width, H: p.Height}
	g.cpu = Paddle{X: Width/2 - p.Width/2, Y: p.CPUY, W: p.Width, H: p.Height}
	g.ball = Ball{R: cfg.Ball.Radius}
	g.serve(1)
}

// serve puts the ball in the centre moving toward dir (+1 down, -1 up).
func (g *Game) serve(dir float64) {
	g.ball.X = Width / 2
	g.ball.Y = Height / 2
	g.ball.DY = g.cfg.Ball.ServeSpeed * dir

	side := 1.0
	if g.rng.Float64() > 0.5 {
		side = -1
	}
	g.ball.DX = side * (g.rng.Float64()*2 + 1)
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.frames += dt

	g.movePlayer(in, dt)
	g.moveCPU(dt)
	g.moveBall(dt)

	return core.StepResult{State: g.State()}
}

func (g *Game) movePlayer(in core.InputFrame, dt float64) {
	if in.Pointer.Valid && in.Pointer.Down {
		g.player.X = in.Pointer.X - g.player.W/2
	} else {
		g.player.X += in.Axis(core.ActionLeft, core.ActionRight) * g.cfg.Paddles.PlayerSpeed * dt
	}
	g.player.X = core.ClampF(g.player.X, 0, Width-g.player.W)
}

func (g *Game) moveCPU(dt float64) {
	speed := g.difficulty.Speed(g.cfg.CPU.Speed, g.playerScore, g.frames)
	g.cpu.X += ai.TrackPaddle(g.cpu.Center(), g.ball.X, speed, g.cfg.CPU.Deadzone) * dt
	g.cpu.X = core.ClampF(g.cpu.X, 0, Width-g.cpu.W)
}

func (g *Game) moveBall(dt float64) {
	b := &g.ball
	b.X += b.DX * dt
	b.Y += b.DY * dt

	// Side walls
	if b.X-b.R < 0 {
		b.X = b.R
		b.DX = math.Abs(b.DX)
	} else if b.X+b.R > Width {
		b.X = Width - b.R
		b.DX = -math.Abs(b.DX)
	}

	maxSpeed := g.cfg.Ball.MaxSpeed
	speedUp := func(dy float64) float64 {
		return math.Min(math.Abs(dy)*g.cfg.Ball.SpeedUp, maxSpeed)
	}

	// Paddles only bounce a ball moving toward them
	if b.DY > 0 && g.hits(g.player) {
		b.DY = -speedUp(b.DY)
		b.Y = g.player.Y - b.R
	}
	if b.DY < 0 && g.hits(g.cpu) {
		b.DY = speedUp(b.DY)
		b.Y = g.cpu.Y + g.cpu.H + b.R
	}

	switch {
	case b.Y+b.R > Height:
		g.cpuScore++
		g.serve(-1)
	case b.Y-b.R < 0:
		g.playerScore++
		g.serve(1)
	}

	win := g.cfg.Gameplay.WinScore
	if g.playerScore >= win || g.cpuScore >= win {
		g.gameOver = true
		g.won = g.playerScore >= win
	}
}

// hits reports whether the ball overlaps a paddle.
func (g *Game) hits(p Paddle) bool {
	b := g.ball
	return core.RectAround(b.X, b.Y, 2*b.R, 2*b.R).Intersects(p.Rect())
}

// Render draws the game to the canvas.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	dst.Line(core.Vec{X: 0, Y: Height / 2}, core.Vec{X: Width, Y: Height / 2}, NetChar, core.ColorGray)
	dst.FillRect(g.cpu.Rect(), PaddleChar, core.ColorBrightMagenta)
	dst.FillRect(g.player.Rect(), PaddleChar, core.ColorBrightCyan)
	dst.FillCircle(core.Circle{X: g.ball.X, Y: g.ball.Y, R: g.ball.R}, BallChar, core.ColorBrightWhite)

	dst.HUD(0, fmt.Sprintf("Pong  You %d : %d CPU", g.playerScore, g.cpuScore), core.ColorBrightWhite)
	dst.HUDRight(0, fmt.Sprintf("first to %d", g.cfg.Gameplay.WinScore), core.ColorGray)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.playerScore,
		GameOver: g.gameOver,
		Won:      g.won,
	}
}
