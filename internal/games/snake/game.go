// Package snake implements the classic Snake on a fixed grid.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Game implements the Snake game.
type Game struct {
	cfg        config.SnakeConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	rng       *rand.Rand
	frames    float64 // Nominal frames since start
	score     int
	foodEaten int
	interval  float64 // Milliseconds per move
	moveTimer float64

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	food      Point

	gameOver bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "arrows or swipe to steer"
}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	c := g.config()
	return float64(c.Grid.Cols) * c.Grid.CellSize, float64(c.Grid.Rows) * c.Grid.CellSize
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadSnake(path)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.preset = config.ParsePreset(difficulty)
	g.configured = true
	return nil
}

func (g *Game) config() config.SnakeConfig {
	if !g.configured {
		g.cfg = config.Must(config.LoadSnake(""))
		g.configured = true
	}
	return g.cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg := g.config()
	cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.frames = 0
	g.score = 0
	g.foodEaten = 0
	g.interval = cfg.Speed.IntervalMs
	g.moveTimer = 0
	g.gameOver = false

	g.snake = []Point{{X: cfg.Grid.StartX, Y: cfg.Grid.StartY}}
	g.direction = DirUp
	g.nextDir = DirUp
	g.spawnFood()
}

// spawnFood places food at a random cell not covered by the snake.
func (g *Game) spawnFood() {
	var empty []Point
	for y := 0; y < g.cfg.Grid.Rows; y++ {
		for x := 0; x < g.cfg.Grid.Cols; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}

	if len(empty) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.frames += dt
	g.processInput(in)

	// Move on the timer; difficulty speeds the clock up
	speed := g.difficulty.Speed(1, g.score, g.frames)
	g.moveTimer += dt * core.FrameMillis * speed
	for g.moveTimer >= g.interval && !g.gameOver {
		g.moveTimer -= g.interval
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change from keys or a swipe.
func (g *Game) processInput(in core.InputFrame) {
	newDir := g.nextDir

	switch {
	case in.Has(core.ActionUp) || in.Swipe == core.SwipeUp:
		newDir = DirUp
	case in.Has(core.ActionDown) || in.Swipe == core.SwipeDown:
		newDir = DirDown
	case in.Has(core.ActionLeft) || in.Swipe == core.SwipeLeft:
		newDir = DirLeft
	case in.Has(core.ActionRight) || in.Swipe == core.SwipeRight:
		newDir = DirRight
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1+2)%4 == d2
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	g.direction = g.nextDir

	head := g.snake[0]
	switch g.direction {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= g.cfg.Grid.Cols || head.Y < 0 || head.Y >= g.cfg.Grid.Rows {
		g.gameOver = true
		return
	}

	eating := head == g.food

	// The tail moves away this step unless the snake grows
	checkLen := len(g.snake)
	if !eating {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == head {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{head}, g.snake...)
	if !eating {
		g.snake = g.snake[:len(g.snake)-1]
		return
	}

	g.score += g.cfg.Scoring.Food
	g.foodEaten++
	g.interval = max(g.cfg.Speed.MinIntervalMs, g.interval-g.cfg.Speed.StepPerFoodMs)
	g.spawnFood()
}

// cellRect returns the logical rectangle of a grid cell.
func (g *Game) cellRect(p Point) core.Rect {
	s := g.cfg.Grid.CellSize
	return core.NewRect(float64(p.X)*s, float64(p.Y)*s, s, s)
}

// Render draws the game to the canvas.
func (g *Game) Render(dst *core.Canvas) {
	dst.Clear('·', core.ColorGray)

	if g.food.X >= 0 {
		dst.FillRect(g.cellRect(g.food), '●', core.ColorBrightRed)
	}

	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			dst.FillRect(g.cellRect(g.snake[i]), '█', core.ColorBrightGreen)
		} else {
			dst.FillRect(g.cellRect(g.snake[i]), '▓', core.ColorGreen)
		}
	}

	dst.HUD(0, fmt.Sprintf("Snake  Score: %d  Length: %d", g.score, len(g.snake)), core.ColorBrightWhite)
	dst.HUDRight(0, fmt.Sprintf("%.0fms", g.interval), core.ColorGray)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
