package racing

import (
	"math"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func newGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	return g
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTrackClosest(t *testing.T) {
	track := DefaultTrack(80)

	tests := []struct {
		name    string
		p       core.Vec
		point   core.Vec
		dist    float64
		onTrack bool
	}{
		{"below the start straight", core.Vec{X: 400, Y: 520}, core.Vec{X: 400, Y: 500}, 20, true},
		{"infield", core.Vec{X: 400, Y: 300}, core.Vec{X: 400, Y: 500}, 200, false},
		{"on a node", core.Vec{X: 700, Y: 150}, core.Vec{X: 700, Y: 150}, 0, true},
	}

	for _, tc := range tests {
		point, dist := track.Closest(tc.p)
		if !near(point.X, tc.point.X) || !near(point.Y, tc.point.Y) || !near(dist, tc.dist) {
			t.Errorf("%s: Closest() = %+v, %v; expected %+v, %v", tc.name, point, dist, tc.point, tc.dist)
		}
		if track.OnTrack(tc.p) != tc.onTrack {
			t.Errorf("%s: OnTrack() = %v", tc.name, !tc.onTrack)
		}
	}
}

func TestGrid(t *testing.T) {
	g := newGame()

	want := []core.Vec{{X: 150, Y: 520}, {X: 150, Y: 480}, {X: 200, Y: 520}, {X: 200, Y: 480}}
	if len(g.cars) != len(want) {
		t.Fatalf("cars = %d, expected %d", len(g.cars), len(want))
	}
	for i, c := range g.cars {
		if c.Pos != want[i] || c.Heading != -math.Pi/2 || c.LastCheckpoint != 7 {
			t.Errorf("car %d = %+v", i, c)
		}
		if c.Player != (i == 0) {
			t.Errorf("car %d player = %v", i, c.Player)
		}
	}
}

func TestFirstCrossingStartsLapOne(t *testing.T) {
	g := newGame()
	g.Step(core.NewInputFrame(), 1)

	for i, c := range g.cars {
		if c.Lap != 1 || c.LastCheckpoint != 0 {
			t.Errorf("car %d: lap %d checkpoint %d, expected 1 and 0", i, c.Lap, c.LastCheckpoint)
		}
	}
}

func TestPlayerThrottle(t *testing.T) {
	g := newGame()
	in := core.NewInputFrame()
	in.SetHeld(core.ActionUp)

	g.Step(in, 1)

	p := g.player()
	if !near(p.Speed, 0.12*0.98) {
		t.Errorf("speed = %v, expected %v", p.Speed, 0.12*0.98)
	}
	if !near(p.Pos.Y, 520-0.12*0.98) || math.Abs(p.Pos.X-150) > 1e-9 {
		t.Errorf("position = %+v, expected straight up", p.Pos)
	}
}

func TestPlayerSteering(t *testing.T) {
	t.Run("no turning while stopped", func(t *testing.T) {
		g := newGame()
		in := core.NewInputFrame()
		in.SetHeld(core.ActionRight)
		g.Step(in, 1)
		if h := g.player().Heading; h != -math.Pi/2 {
			t.Errorf("heading = %v, expected unchanged", h)
		}
	})

	t.Run("turn scales with speed", func(t *testing.T) {
		g := newGame()
		g.player().Speed = 2
		in := core.NewInputFrame()
		in.SetHeld(core.ActionRight)
		g.Step(in, 1)

		p := g.player()
		if want := -math.Pi/2 + 0.05*(1.98/4); !near(p.Heading, want) {
			t.Errorf("heading = %v, expected %v", p.Heading, want)
		}
		if want := 2 * 0.99 * 0.98; !near(p.Speed, want) {
			t.Errorf("speed = %v, expected %v with turning friction", p.Speed, want)
		}
	})
}

func TestOffTrackPushback(t *testing.T) {
	g := newGame()
	p := g.player()
	p.Pos = core.Vec{X: 400, Y: 300}
	p.Heading = 0
	p.Speed = 1

	g.Step(core.NewInputFrame(), 1)

	p = g.player()
	if !near(p.Speed, 0.98*0.9) {
		t.Errorf("speed = %v, expected %v", p.Speed, 0.98*0.9)
	}
	if !near(p.Pos.X, 400+0.98*0.9) || !near(p.Pos.Y, 301) {
		t.Errorf("position = %+v, expected pushed toward the start straight", p.Pos)
	}
}

func TestFinishEndsRace(t *testing.T) {
	g := newGame()
	g.Step(core.NewInputFrame(), 1)

	p := g.player()
	p.Lap = 3
	p.LastCheckpoint = 7
	p.Pos = core.Vec{X: 160, Y: 500}

	res := g.Step(core.NewInputFrame(), 1)

	if !g.player().Finished || !res.State.GameOver {
		t.Fatalf("player = %+v state = %+v, expected finished", *g.player(), res.State)
	}
	if !res.State.Won || g.Position() != 1 {
		t.Errorf("position = %d won = %v, expected a win", g.Position(), res.State.Won)
	}
}

func TestStandings(t *testing.T) {
	g := newGame()
	g.cars[0].Lap, g.cars[0].LastCheckpoint = 2, 3
	g.cars[1].Lap, g.cars[1].LastCheckpoint = 2, 5
	g.cars[2].Lap, g.cars[2].LastCheckpoint = 1, 7
	g.cars[3].Finished, g.cars[3].FinishTime = true, 1000

	got := g.Standings()

	order := []core.Color{g.cars[3].Color, g.cars[1].Color, g.cars[0].Color, g.cars[2].Color}
	for i, c := range got {
		if c.Color != order[i] {
			t.Errorf("place %d = %+v", i+1, c)
		}
	}
	if g.Position() != 3 {
		t.Errorf("Position() = %d, expected 3", g.Position())
	}
}

func TestAIFollowsTrack(t *testing.T) {
	g := newGame()
	for i := 0; i < 600; i++ {
		g.Step(core.NewInputFrame(), 1)
	}

	n := len(g.track.Nodes)
	for i, c := range g.cars[1:] {
		if c.progress(n) < n+2 {
			t.Errorf("AI car %d reached only checkpoint %d of lap %d", i+1, c.LastCheckpoint, c.Lap)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1, g2 := newGame(), newGame()
	for i := 0; i < 2000; i++ {
		in := core.NewInputFrame()
		in.SetHeld(core.ActionUp)
		if i%200 > 150 {
			in.SetHeld(core.ActionLeft)
		}
		g1.Step(in, 1)
		g2.Step(in, 1)
	}
	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	g := newGame()
	in := core.NewInputFrame()
	in.SetHeld(core.ActionUp)
	for i := 0; i < 500; i++ {
		g.Step(in, 1)
	}
	g.Reset(core.RuntimeConfig{Seed: 1})

	if g.Snapshot() != newGame().Snapshot() {
		t.Error("restart left state behind")
	}
}

func TestHeadingGlyphAndClock(t *testing.T) {
	glyphs := map[float64]rune{0: '→', math.Pi / 2: '↓', -math.Pi / 2: '↑', math.Pi: '←', -math.Pi: '←'}
	for h, want := range glyphs {
		if got := headingGlyph(h); got != want {
			t.Errorf("headingGlyph(%v) = %q, expected %q", h, got, want)
		}
	}
	if got := formatClock(65432); got != "01:05.43" {
		t.Errorf("formatClock() = %q", got)
	}
}
