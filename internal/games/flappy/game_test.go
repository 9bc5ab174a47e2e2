package flappy

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g
}

func TestGameDeterminism(t *testing.T) {
	g1 := newGame(12345)
	g2 := newGame(12345)

	// Flap every 25 frames to stay airborne
	for i := 0; i < 2000; i++ {
		in := core.NewInputFrame()
		if i%25 == 0 {
			in.Set(core.ActionFire)
		}
		g1.Step(in, 1)
		g2.Step(in, 1)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestGravityAndFlap(t *testing.T) {
	g := newGame(1)
	g.Step(core.NewInputFrame(), 1)
	if math.Abs(g.playerVel-0.18) > 1e-9 || math.Abs(g.playerY-(Height/2+0.18)) > 1e-9 {
		t.Errorf("after fall: y=%v vel=%v", g.playerY, g.playerVel)
	}

	in := core.NewInputFrame()
	in.Pointer.Clicked = true
	g.Step(in, 1)
	if math.Abs(g.playerVel-(-5.82)) > 1e-9 {
		t.Errorf("after flap: vel=%v, expected -5.82", g.playerVel)
	}
}

func TestEdgesClampWithoutEndingRun(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		vel   float64
		wantY float64
	}{
		{"ceiling", 2, -6, 0},
		{"ground", Height - 25, 5, Height - 24},
	}

	for _, tc := range tests {
		g := newGame(1)
		g.playerY, g.playerVel = tc.y, tc.vel

		res := g.Step(core.NewInputFrame(), 1)

		if g.playerY != tc.wantY || g.playerVel != 0 {
			t.Errorf("%s: y=%v vel=%v, expected y=%v vel=0", tc.name, g.playerY, g.playerVel, tc.wantY)
		}
		if res.State.GameOver {
			t.Errorf("%s: run ended", tc.name)
		}
	}
}

func TestPipeSpawnInterval(t *testing.T) {
	g := newGame(3)
	in := core.NewInputFrame()

	g.Step(in, 1)
	if n := len(g.pipes.Pipes()); n != 1 {
		t.Fatalf("pipes after first step = %d, expected 1", n)
	}
	if x := g.pipes.Pipes()[0].X; x != Width-1.5 {
		t.Errorf("pipe x = %v, expected %v", x, Width-1.5)
	}

	for i := 1; i < 100; i++ {
		g.Step(in, 1)
	}
	if n := len(g.pipes.Pipes()); n != 1 {
		t.Errorf("pipes after 100 steps = %d, expected 1", n)
	}

	g.Step(in, 1)
	if n := len(g.pipes.Pipes()); n != 2 {
		t.Errorf("pipes after 101 steps = %d, expected 2", n)
	}
}

func TestGapPlacementStaysInMargins(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := NewPipeManager(42, Width, Height, &cfg, config.NewDifficultyManager(cfg.Difficulty))

	for i := 0; i < 500; i++ {
		pm.spawnPipe(0, 0)
	}
	for _, p := range pm.Pipes() {
		if p.GapY < 50 || p.GapY+p.GapHeight > Height-50 {
			t.Fatalf("gap [%v, %v] outside margins", p.GapY, p.GapY+p.GapHeight)
		}
	}
}

func TestGapShrinksWithScore(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := NewPipeManager(1, Width, Height, &cfg, config.NewDifficultyManager(cfg.Difficulty))

	pm.spawnPipe(0, 0)
	pm.spawnPipe(50, 0)

	pipes := pm.Pipes()
	if pipes[0].GapHeight != 240 || pipes[1].GapHeight != 160 {
		t.Errorf("gaps = %v, %v, expected 240, 160", pipes[0].GapHeight, pipes[1].GapHeight)
	}
}

func TestPassingPipeScores(t *testing.T) {
	g := newGame(1)
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: -2, GapY: 150, GapHeight: 240})

	res := g.Step(core.NewInputFrame(), 1)

	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if res.State.GameOver {
		t.Error("passing through the gap ended the run")
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g := newGame(1)
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 40, GapY: 400, GapHeight: 90})

	res := g.Step(core.NewInputFrame(), 1)
	if !res.State.GameOver {
		t.Fatal("hitting the top pipe should end the run")
	}

	// Finished games do not move
	before := g.Snapshot()
	g.Step(core.NewInputFrame(), 1)
	if g.Snapshot() != before {
		t.Error("state changed after game over")
	}
}

func TestHitboxPadding(t *testing.T) {
	g := newGame(1)
	// The pipe edge overlaps the sprite but not the padded hitbox
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 40, GapY: 253, GapHeight: 240})

	if res := g.Step(core.NewInputFrame(), 1); res.State.GameOver {
		t.Error("a touch inside the padding should not end the run")
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	g := newGame(9)
	for i := 0; i < 400; i++ {
		in := core.NewInputFrame()
		if i%20 == 0 {
			in.Set(core.ActionUp)
		}
		g.Step(in, 1)
	}
	g.Reset(core.RuntimeConfig{Seed: 9})

	if g.Snapshot() != newGame(9).Snapshot() {
		t.Error("restart left state behind")
	}
}

func TestRender(t *testing.T) {
	g := newGame(1)
	g.Step(core.NewInputFrame(), 1)

	screen := core.NewScreen(80, 24)
	g.Render(core.NewCanvas(screen, Width, Height, 1))

	if row := screen.Row(0); !strings.Contains(row, "Flappy Bird  Score: 0") {
		t.Errorf("HUD row = %q", row)
	}
}
