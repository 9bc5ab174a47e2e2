// Package invaders implements Space Invaders with an auto-firing cannon.
package invaders

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/games/fx"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 600.0
	Height = 700.0
)

// Visual characters for rendering
const (
	PlayerChar      = '▲'
	AlienChar       = '▓'
	BulletChar      = '│'
	AlienBulletChar = '┃'
)

// particleLife is the lifetime of explosion sparks in frames.
const particleLife = 40

// Outcome explains why a run ended.
type Outcome int

const (
	OutcomeNone    Outcome = iota
	OutcomeShot            // Player hit by an alien bullet
	OutcomeInvaded         // Formation reached the player row
	OutcomeCleared         // All aliens destroyed
)

// Game implements Space Invaders game logic.
type Game struct {
	cfg        config.InvadersConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	rng          *rand.Rand
	frames       float64
	player       core.Rect
	aliens       []core.Rect
	bullets      []core.Rect
	alienBullets []core.Rect
	particles    fx.Particles
	direction    float64 // +1 right, -1 left
	alienSpeed   float64
	fireTimer    float64 // ms until the next auto shot
	score        int
	outcome      Outcome
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "left/right or drag, fires automatically"
}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadInvaders(path)
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
		g.cfg = config.Must(config.LoadInvaders(""))
		g.configured = true
	}
	g.cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.frames = 0
	g.score = 0
	g.outcome = OutcomeNone
	g.direction = 1
	g.alienSpeed = g.cfg.Aliens.Speed
	g.fireTimer = 0
	g.bullets = g.bullets[:0]
	g.alienBullets = g.alienBullets[:0]
	g.particles.Reset()

	p := g.cfg.Player
	g.player = core.NewRect(Width/2-p.Width/2, Height-50, p.Width, p.Height)
	g.createAliens()
}

// createAliens lays out the formation row by row.
func (g *Game) createAliens() {
	a := g.cfg.Aliens
	g.aliens = g.aliens[:0]
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Cols; c++ {
			x := float64(c)*(a.Width+a.Padding) + a.OffsetX
			y := float64(r)*(a.Height+a.Padding) + a.OffsetY
			g.aliens = append(g.aliens, core.NewRect(x, y, a.Width, a.Height))
		}
	}
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	// Sparks keep flying after the run ends
	g.particles.Update(dt)
	if g.outcome != OutcomeNone {
		return core.StepResult{State: g.State()}
	}
	g.frames += dt

	g.movePlayer(in, dt)
	g.autoFire(dt)
	g.moveBullets(dt)
	g.moveAliens(dt)
	g.resolveHits()
	g.checkEnd()

	return core.StepResult{State: g.State()}
}

func (g *Game) movePlayer(in core.InputFrame, dt float64) {
	if in.Pointer.Valid && in.Pointer.Down {
		g.player.X = in.Pointer.X - g.player.W/2
	} else {
		g.player.X += in.Axis(core.ActionLeft, core.ActionRight) * g.cfg.Player.Speed * dt
	}
	g.player.X = core.ClampF(g.player.X, 0, Width-g.player.W)
}

// autoFire shoots from the cannon centre on a fixed interval.
func (g *Game) autoFire(dt float64) {
	g.fireTimer -= dt * core.FrameMillis
	if g.fireTimer > 0 {
		return
	}
	g.fireTimer += g.cfg.Player.FireIntervalMs
	b := g.cfg.Bullets
	g.bullets = append(g.bullets, core.NewRect(g.player.Center().X-b.Width/2, g.player.Y, b.Width, b.Height))
}

func (g *Game) moveBullets(dt float64) {
	b := g.cfg.Bullets
	for i := len(g.bullets) - 1; i >= 0; i-- {
		g.bullets[i].Y -= b.PlayerSpeed * dt
		if g.bullets[i].Bottom() < 0 {
			g.bullets = append(g.bullets[:i], g.bullets[i+1:]...)
		}
	}
	for i := len(g.alienBullets) - 1; i >= 0; i-- {
		g.alienBullets[i].Y += b.AlienSpeed * dt
		if g.alienBullets[i].Y > Height {
			g.alienBullets = append(g.alienBullets[:i], g.alienBullets[i+1:]...)
		}
	}
}

// moveAliens slides the formation, drops it on an edge and lets aliens fire.
func (g *Game) moveAliens(dt float64) {
	a := g.cfg.Aliens
	b := g.cfg.Bullets
	speed := g.difficulty.Speed(g.alienSpeed, g.score, g.frames)

	edge := false
	for i := range g.aliens {
		al := &g.aliens[i]
		al.X += g.direction * speed * dt
		if al.X <= 0 || al.X >= Width-al.W {
			edge = true
		}
		// Per-frame chance scaled to the step length
		if g.rng.Float64() < a.FireChance*dt {
			g.alienBullets = append(g.alienBullets, core.NewRect(al.Center().X-b.Width/2, al.Bottom(), b.Width, b.Height))
		}
	}

	if edge {
		g.direction = -g.direction
		for i := range g.aliens {
			g.aliens[i].Y += a.Drop
		}
	}
}

// resolveHits pairs bullets with aliens and alien bullets with the player.
func (g *Game) resolveHits() {
	for bi := len(g.bullets) - 1; bi >= 0; bi-- {
		for ai := len(g.aliens) - 1; ai >= 0; ai-- {
			if !g.bullets[bi].Intersects(g.aliens[ai]) {
				continue
			}
			c := g.aliens[ai].Center()
			g.particles.Scatter(g.rng, c.X, c.Y, g.cfg.Scoring.Particles, 5, particleLife, core.ColorBrightGreen)
			g.bullets = append(g.bullets[:bi], g.bullets[bi+1:]...)
			g.aliens = append(g.aliens[:ai], g.aliens[ai+1:]...)
			g.score += g.cfg.Scoring.Kill
			g.alienSpeed += g.cfg.Aliens.SpeedPerKill
			break
		}
	}

	for i := len(g.alienBullets) - 1; i >= 0; i-- {
		if g.alienBullets[i].Intersects(g.player) {
			c := g.player.Center()
			g.particles.Scatter(g.rng, c.X, c.Y, g.cfg.Scoring.Particles, 5, particleLife, core.ColorBrightCyan)
			g.alienBullets = append(g.alienBullets[:i], g.alienBullets[i+1:]...)
			g.outcome = OutcomeShot
			return
		}
	}
}

func (g *Game) checkEnd() {
	if g.outcome != OutcomeNone {
		return
	}
	for _, al := range g.aliens {
		if al.Bottom() >= g.player.Y {
			g.outcome = OutcomeInvaded
			return
		}
	}
	if len(g.aliens) == 0 {
		g.outcome = OutcomeCleared
	}
}

// Render draws the current game state to the canvas.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	for _, al := range g.aliens {
		dst.FillRect(al, AlienChar, core.ColorBrightGreen)
	}
	for _, b := range g.bullets {
		dst.FillRect(b, BulletChar, core.ColorBrightWhite)
	}
	for _, b := range g.alienBullets {
		dst.FillRect(b, AlienBulletChar, core.ColorOrange)
	}
	if g.outcome != OutcomeShot {
		dst.FillRect(g.player, PlayerChar, core.ColorBrightCyan)
	}
	g.particles.Render(dst)

	dst.HUD(0, fmt.Sprintf("Invaders  Score: %d", g.score), core.ColorBrightWhite)
	dst.HUDRight(0, fmt.Sprintf("aliens %d", len(g.aliens)), core.ColorGray)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.outcome != OutcomeNone,
		Won:      g.outcome == OutcomeCleared,
	}
}

// Outcome returns why the run ended, or OutcomeNone while playing.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Register the game with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
