// Package racing implements a top-down circuit race against AI cars.
package racing

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/gameroom/internal/ai"
	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 800.0
	Height = 600.0
)

const carSize = 20

var carColors = []core.Color{core.ColorBrightMagenta, core.ColorBrightYellow, core.ColorOrange, core.ColorBrightGreen, core.ColorBrightBlue}

// headingGlyphs maps eight compass sectors, starting east, clockwise on screen.
var headingGlyphs = []rune("→↘↓↙←↖↑↗")

// Car is one racer.
type Car struct {
	Pos            core.Vec
	Heading        float64 // radians, atan2 convention with y down
	Speed          float64
	Player         bool
	Lap            int // Start-line crossings
	LastCheckpoint int
	Target         int // AI waypoint
	Finished       bool
	FinishTime     float64 // ms
	Color          core.Color
}

// progress orders cars still racing.
func (c Car) progress(nodes int) int {
	return c.Lap*nodes + c.LastCheckpoint
}

// Game implements the racing game logic.
type Game struct {
	cfg        config.RacingConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	track    Track
	clock    float64 // ms since the start
	frames   float64
	cars     []Car
	gameOver bool
}

// New creates a new racing game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "racing"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Neon Circuit"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "up to accelerate, down to brake, left/right to steer"
}

// Unscored marks racing as a race without a high score.
func (g *Game) Unscored() {}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadRacing(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.preset = config.ParsePreset(difficulty)
	g.configured = true
	return nil
}

// Reset puts all cars on the grid.
func (g *Game) Reset(rc core.RuntimeConfig) {
	if !g.configured {
		g.cfg = config.Must(config.LoadRacing(""))
		g.configured = true
	}
	g.cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.track = DefaultTrack(g.cfg.Track.Width)
	g.clock = 0
	g.frames = 0
	g.gameOver = false

	last := len(g.track.Nodes) - 1
	g.cars = g.cars[:0]
	g.cars = append(g.cars, Car{
		Pos:            core.Vec{X: 150, Y: 520},
		Heading:        -math.Pi / 2,
		Player:         true,
		LastCheckpoint: last,
		Color:          core.ColorBrightCyan,
	})
	for i := range g.cfg.AI.Opponents {
		// Two-wide grid behind the player
		slot := i + 1
		pos := core.Vec{X: 150 + 50*float64(slot/2), Y: 520}
		if slot%2 == 1 {
			pos.Y = 480
		}
		g.cars = append(g.cars, Car{
			Pos:            pos,
			Heading:        -math.Pi / 2,
			LastCheckpoint: last,
			Color:          carColors[i%len(carColors)],
		})
	}
}

// Step advances the race by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.clock += dt * core.FrameMillis
	g.frames += dt

	for i := range g.cars {
		c := &g.cars[i]
		if c.Player {
			g.drive(c, in, dt)
		} else {
			g.steerAI(c, dt)
		}
		g.physics(c, dt)
		g.checkpoint(c)
	}

	if g.player().Finished {
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

// drive applies the player's throttle and steering.
func (g *Game) drive(c *Car, in core.InputFrame, dt float64) {
	car := g.cfg.Car
	if in.IsHeld(core.ActionUp) {
		c.Speed += car.Accel * dt
	}
	if in.IsHeld(core.ActionDown) {
		c.Speed -= car.Brake * dt
	}

	turn := in.Axis(core.ActionLeft, core.ActionRight) * car.Turn
	if turn != 0 && c.Speed > 1 {
		c.Speed *= math.Pow(car.TurnFriction, dt)
	}
	if c.Speed != 0 {
		c.Heading += turn * (c.Speed / 4) * dt
	}
}

// steerAI follows the waypoints with ai.Steer.
func (g *Game) steerAI(c *Car, dt float64) {
	p := g.cfg.AI
	pace := g.difficulty.Speed(1, 0, g.frames)
	params := ai.SteerParams{
		TurnRate:  p.TurnRate * dt,
		SharpTurn: p.SharpTurn,
		Slow:      p.SlowSpeed * pace,
		Cruise:    p.CruiseSpeed * pace,
	}

	target := g.track.Node(c.Target)
	s := ai.Steer(c.Pos, c.Heading, target, g.track.Node(c.Target+1), params)
	c.Heading = ai.NormalizeAngle(c.Heading + s.Turn)
	c.Speed = ai.Approach(c.Speed, s.TargetSpeed, math.Min(1, p.Responsiveness*dt))

	if math.Hypot(target.X-c.Pos.X, target.Y-c.Pos.Y) < p.WaypointRadius {
		c.Target = (c.Target + 1) % len(g.track.Nodes)
	}
}

// physics applies friction, the off-track penalty and movement.
func (g *Game) physics(c *Car, dt float64) {
	c.Speed *= math.Pow(g.cfg.Car.Friction, dt)

	closest, dist := g.track.Closest(c.Pos)
	if dist > g.track.Width/2 {
		c.Speed *= math.Pow(g.cfg.Car.OffTrackDrag, dt)
		c.Pos = c.Pos.Add(core.Direction(c.Pos, closest).Scale(dt))
	}

	c.Pos.X += math.Cos(c.Heading) * c.Speed * dt
	c.Pos.Y += math.Sin(c.Heading) * c.Speed * dt
}

// checkpoint advances lap tracking when the car nears its next node.
func (g *Game) checkpoint(c *Car) {
	n := len(g.track.Nodes)
	next := (c.LastCheckpoint + 1) % n
	node := g.track.Node(next)
	if math.Hypot(node.X-c.Pos.X, node.Y-c.Pos.Y) >= g.cfg.Track.CheckpointRadius {
		return
	}

	if next == 0 && c.LastCheckpoint == n-1 {
		c.Lap++
		// The first crossing starts lap one
		if c.Lap > g.cfg.Track.Laps && !c.Finished {
			c.Finished = true
			c.FinishTime = g.clock
		}
	}
	c.LastCheckpoint = next
}

func (g *Game) player() *Car {
	return &g.cars[0]
}

// Standings returns the cars ranked by laps, then checkpoints, then finish time.
func (g *Game) Standings() []Car {
	n := len(g.track.Nodes)
	ranked := make([]Car, len(g.cars))
	copy(ranked, g.cars)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Finished != b.Finished {
			return a.Finished
		}
		if a.Finished {
			return a.FinishTime < b.FinishTime
		}
		return a.progress(n) > b.progress(n)
	})
	return ranked
}

// Position returns the player's place, starting at 1.
func (g *Game) Position() int {
	for i, c := range g.Standings() {
		if c.Player {
			return i + 1
		}
	}
	return len(g.cars)
}

// Render draws the circuit and the cars.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear(' ', core.ColorDefault)

	// Asphalt as a chain of discs along each segment
	half := g.track.Width / 2
	for i := range g.track.Nodes {
		a, b := g.track.Node(i), g.track.Node(i+1)
		steps := int(math.Ceil(core.Distance(a, b) / (half / 2)))
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(max(steps, 1))
			dst.FillCircle(core.Circle{X: core.Lerp(a.X, b.X, t), Y: core.Lerp(a.Y, b.Y, t), R: half}, '░', core.ColorGray)
		}
	}
	for i := range g.track.Nodes {
		dst.Line(g.track.Node(i), g.track.Node(i+1), '·', core.ColorWhite)
	}
	start := g.track.Node(0)
	dst.Line(core.Vec{X: start.X, Y: start.Y - half}, core.Vec{X: start.X, Y: start.Y + half}, '▚', core.ColorBrightWhite)

	for i := len(g.cars) - 1; i >= 0; i-- {
		c := g.cars[i]
		dst.FillRect(core.RectAround(c.Pos.X, c.Pos.Y, carSize, carSize), headingGlyph(c.Heading), c.Color)
	}

	p := g.player()
	lap := core.Clamp(p.Lap, 1, g.cfg.Track.Laps)
	dst.HUD(0, fmt.Sprintf("Racing  Lap %d/%d  Pos %d/%d", lap, g.cfg.Track.Laps, g.Position(), len(g.cars)), core.ColorBrightWhite)
	dst.HUDRight(0, fmt.Sprintf("%3.0f km/h  %s", math.Abs(p.Speed)*20, formatClock(g.clock)), core.ColorGray)
}

// headingGlyph picks an arrow for the heading.
func headingGlyph(h float64) rune {
	sector := int(math.Round(h/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return headingGlyphs[sector]
}

// formatClock renders ms as mm:ss.cc.
func formatClock(ms float64) string {
	total := int(ms / 10)
	return fmt.Sprintf("%02d:%02d.%02d", total/6000, total/100%60, total%100)
}

// State returns the current game state. The score is unused.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.gameOver,
		Won:      g.gameOver && g.Position() == 1,
	}
}

// Register the game with the registry
func init() {
	registry.Register("racing", func() registry.Game {
		return New()
	})
}
