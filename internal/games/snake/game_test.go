package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newGame(12345)
	g2 := newGame(12345)

	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionRight)
		case 60:
			input.Set(core.ActionDown)
		case 100:
			input.Swipe = core.SwipeLeft
		}

		g1.Step(input, 1)
		g2.Step(input, 1)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestInitialState(t *testing.T) {
	g := newGame(1)

	if len(g.snake) != 1 || g.snake[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("initial snake = %v, expected [{10 10}]", g.snake)
	}
	if g.direction != DirUp {
		t.Errorf("initial direction = %v, expected up", g.direction)
	}
	if w, h := g.Size(); w != 600 || h != 600 {
		t.Errorf("Size() = %vx%v, expected 600x600", w, h)
	}
}

func TestMovesOnInterval(t *testing.T) {
	g := newGame(1)
	g.food = Point{X: 0, Y: 0}

	// 200ms is 12 nominal frames
	for i := 0; i < 11; i++ {
		g.Step(core.NewInputFrame(), 1)
	}
	if g.snake[0].Y != 10 {
		t.Fatalf("moved early: head = %v", g.snake[0])
	}
	g.Step(core.NewInputFrame(), 1)
	g.Step(core.NewInputFrame(), 1)
	if g.snake[0] != (Point{X: 10, Y: 9}) {
		t.Errorf("head = %v, expected {10 9}", g.snake[0])
	}
}

// The snake moves on a timer, not on every Step. Priming the timer makes
// the next Step a move tick.
func TestRightEdgeEndsRunOnNextMove(t *testing.T) {
	g := newGame(1)
	g.snake = []Point{{X: 29, Y: 5}}
	g.direction, g.nextDir = DirRight, DirRight
	g.food = Point{X: 0, Y: 0}
	g.moveTimer = g.interval

	res := g.Step(core.NewInputFrame(), 1)
	if !res.State.GameOver {
		t.Error("leaving the right edge should end the run on the next move")
	}
}

func TestSelfCollision(t *testing.T) {
	g := newGame(1)
	// Head moving down into its own body
	g.snake = []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}}
	g.direction, g.nextDir = DirDown, DirDown
	g.food = Point{X: 0, Y: 0}
	g.moveTimer = g.interval

	if res := g.Step(core.NewInputFrame(), 1); !res.State.GameOver {
		t.Error("moving into the body should end the run")
	}
}

func TestTailChaseIsSafe(t *testing.T) {
	g := newGame(1)
	// Moving into the cell the tail leaves this step
	g.snake = []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	g.direction, g.nextDir = DirDown, DirDown
	g.food = Point{X: 0, Y: 0}
	g.moveTimer = g.interval

	if res := g.Step(core.NewInputFrame(), 1); res.State.GameOver {
		t.Error("following the tail should be safe")
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newGame(42)

	input := core.NewInputFrame()
	input.Set(core.ActionDown)
	g.Step(input, 1)
	if g.nextDir == DirDown {
		t.Error("should not allow immediate reversal from up to down")
	}

	input.Clear()
	input.Swipe = core.SwipeLeft
	g.Step(input, 1)
	if g.nextDir != DirLeft {
		t.Errorf("nextDir = %v, expected left", g.nextDir)
	}
}

func TestEatingGrowsAndSpeedsUp(t *testing.T) {
	g := newGame(7)
	g.food = Point{X: 10, Y: 9}
	g.moveTimer = g.interval

	g.Step(core.NewInputFrame(), 1)

	if g.score != 10 {
		t.Errorf("score = %d, expected 10", g.score)
	}
	if len(g.snake) != 2 {
		t.Errorf("length = %d, expected 2", len(g.snake))
	}
	if g.interval != 197 {
		t.Errorf("interval = %v, expected 197", g.interval)
	}
	if g.isSnakeAt(g.food) {
		t.Error("food respawned on the snake")
	}
}

func TestIntervalFloor(t *testing.T) {
	g := newGame(7)
	g.interval = 51
	g.food = Point{X: 10, Y: 9}
	g.moveTimer = g.interval

	g.Step(core.NewInputFrame(), 1)
	if g.interval != 50 {
		t.Errorf("interval = %v, expected floor 50", g.interval)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newGame(999)
	g.snake = []Point{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}}

	for i := 0; i < 100; i++ {
		g.spawnFood()
		if g.isSnakeAt(g.food) {
			t.Fatalf("food spawned on snake at %v", g.food)
		}
		if g.food.X < 0 || g.food.X >= 30 || g.food.Y < 0 || g.food.Y >= 30 {
			t.Fatalf("food out of bounds at %v", g.food)
		}
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	g := newGame(5)
	for i := 0; i < 500; i++ {
		g.Step(core.NewInputFrame(), 1)
	}

	g.Reset(core.RuntimeConfig{Seed: 5})
	fresh := newGame(5)
	if g.Snapshot() != fresh.Snapshot() {
		t.Errorf("restart left state behind:\n%+v\n%+v", g.Snapshot(), fresh.Snapshot())
	}
}

func TestConfigureBadPath(t *testing.T) {
	g := New()
	if err := g.Configure("/does/not/exist.yaml", ""); err == nil {
		t.Error("Configure() with a missing file should fail")
	}
}

func TestRender(t *testing.T) {
	g := newGame(3)
	screen := core.NewScreen(60, 32)
	canvas := core.NewCanvas(screen, 600, 600, 1)

	g.Render(canvas)

	if got := screen.Row(0); !strings.Contains(got, "Snake  Score: 0") {
		t.Errorf("HUD row = %q", got)
	}
}
