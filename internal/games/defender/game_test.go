package defender

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed})
	return g
}

// parked is a distant boat that keeps the wave alive without interfering.
func parked() Enemy {
	return Enemy{Kind: KindBoat, X: 10, Y: 160, W: 60, H: 30, Scale: 0.1, Health: 3}
}

// isolated returns a game holding only the given enemies.
func isolated(enemies ...Enemy) *Game {
	g := newGame(1)
	g.enemies = append(g.enemies[:0], parked())
	g.enemies = append(g.enemies, enemies...)
	return g
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(99)
	g2 := newGame(99)
	inputs := rand.New(rand.NewSource(5))

	for i := 0; i < 3000; i++ {
		in := core.NewInputFrame()
		if inputs.Intn(3) == 0 {
			in.SetHeld(core.ActionFire)
		}
		in.Pointer = core.Pointer{X: inputs.Float64() * Width, Y: 150 + inputs.Float64()*300, Valid: true}
		g1.Step(in, 1)
		g2.Step(in, 1)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestFirstWave(t *testing.T) {
	g := newGame(3)

	if g.wave != 1 || len(g.enemies) != 5 {
		t.Fatalf("wave %d with %d enemies, expected wave 1 with 5", g.wave, len(g.enemies))
	}
	for _, e := range g.enemies {
		if e.Y < 130 || e.Y >= 170 || e.X < 0 || e.X >= Width {
			t.Errorf("enemy spawned at (%v, %v)", e.X, e.Y)
		}
		if (e.Kind == KindTank) != (e.Health == 5) {
			t.Errorf("%s has health %d", e.Kind, e.Health)
		}
	}
	if g.health != 100 || g.weapon != WeaponPistol {
		t.Errorf("health %d weapon %s", g.health, g.weapon)
	}
}

func TestPerspectiveScale(t *testing.T) {
	tests := []struct {
		y     float64
		scale float64
	}{
		{150, 0.1},
		{100, 0.1},
		{335, 0.85},
		{520, 1.6},
	}

	for _, tc := range tests {
		g := isolated(Enemy{Kind: KindBoat, X: 600, Y: tc.y, W: 60, H: 30, Health: 3})
		g.Step(core.NewInputFrame(), 1)
		if got := g.enemies[1].Scale; math.Abs(got-tc.scale) > 1e-9 {
			t.Errorf("scale at y=%v = %v, expected %v", tc.y, got, tc.scale)
		}
	}
}

func TestBarricadeDamage(t *testing.T) {
	tests := []struct {
		kind   Kind
		health int
	}{
		{KindBoat, 90},
		{KindTank, 80},
	}

	for _, tc := range tests {
		g := isolated(Enemy{Kind: tc.kind, X: 600, Y: 519.99, W: 50, H: 40, Health: 5, Speed: 1})
		g.Step(core.NewInputFrame(), 1)

		if g.health != tc.health {
			t.Errorf("%s: health = %d, expected %d", tc.kind, g.health, tc.health)
		}
		if len(g.enemies) != 1 {
			t.Errorf("%s: enemies = %d, expected the breacher removed", tc.kind, len(g.enemies))
		}
	}
}

func TestHealthClampsAtZero(t *testing.T) {
	g := isolated(Enemy{Kind: KindTank, X: 600, Y: 519.99, W: 50, H: 40, Health: 5, Speed: 1})
	g.health = 5

	res := g.Step(core.NewInputFrame(), 1)

	if g.health != 0 {
		t.Errorf("health = %d, expected 0", g.health)
	}
	if !res.State.GameOver {
		t.Error("run should end at zero health")
	}

	before := g.Snapshot()
	g.Step(core.NewInputFrame(), 1)
	if after := g.Snapshot(); after.Clock != before.Clock || after.Health != 0 {
		t.Error("simulation advanced after game over")
	}
}

func TestTerminalFrameStopsProcessing(t *testing.T) {
	breach := Enemy{Kind: KindTank, X: 600, Y: 519.99, W: 50, H: 40, Health: 5, Speed: 1}

	t.Run("no wave after the last breach", func(t *testing.T) {
		g := newGame(1)
		g.enemies = append(g.enemies[:0], breach)
		g.health = 5

		g.Step(core.NewInputFrame(), 1)

		if !g.gameOver || g.health != 0 {
			t.Fatalf("gameOver=%v health=%d", g.gameOver, g.health)
		}
		if g.wave != 1 || len(g.enemies) != 0 || g.weapon != WeaponPistol {
			t.Errorf("wave=%d enemies=%d weapon=%v after the terminal frame", g.wave, len(g.enemies), g.weapon)
		}
	})

	t.Run("no kill credited with the breach", func(t *testing.T) {
		boat := Enemy{Kind: KindBoat, X: 100, Y: 300, W: 60, H: 30, Scale: 1, Health: 1}
		g := isolated(breach, boat)
		g.health = 5
		g.bullets = append(g.bullets, Bullet{X: 102, Y: 301, Life: 10})

		g.Step(core.NewInputFrame(), 1)

		if !g.gameOver {
			t.Fatal("run should end on the breach")
		}
		if g.kills != 0 || g.State().Score != 0 {
			t.Errorf("kills = %d on the terminal frame, expected 0", g.kills)
		}
	})
}

func TestPistolFireRate(t *testing.T) {
	g := isolated()
	in := core.NewInputFrame()
	in.SetHeld(core.ActionFire)

	g.Step(in, 1)
	if len(g.bullets) != 1 {
		t.Fatalf("bullets = %d, expected 1", len(g.bullets))
	}
	b := g.bullets[0]
	if math.Abs(math.Hypot(b.VX, b.VY)-15) > 1e-9 {
		t.Errorf("bullet speed = %v, expected 15", math.Hypot(b.VX, b.VY))
	}

	for i := 1; i < 24; i++ {
		g.Step(in, 1)
	}
	if len(g.bullets) != 1 {
		t.Errorf("bullets after 24 frames = %d, expected 1", len(g.bullets))
	}
	for i := 24; i < 30; i++ {
		g.Step(in, 1)
	}
	if len(g.bullets) != 2 {
		t.Errorf("bullets after 30 frames = %d, expected 2", len(g.bullets))
	}
}

func TestAutoFireOnTarget(t *testing.T) {
	g := isolated(Enemy{Kind: KindBoat, X: 300, Y: 300, W: 60, H: 30, Scale: 1, Health: 3})
	in := core.NewInputFrame()
	in.Pointer = core.Pointer{X: 310, Y: 305, Valid: true}

	g.Step(in, 1)
	if len(g.bullets) != 1 {
		t.Errorf("bullets = %d, expected an automatic shot", len(g.bullets))
	}
}

func TestBulletDamagesEnemy(t *testing.T) {
	g := isolated(Enemy{Kind: KindBoat, X: 300, Y: 300, W: 60, H: 30, Health: 3})
	g.nextShot = math.MaxFloat64
	g.bullets = append(g.bullets, Bullet{X: 310, Y: 305, Life: 10})

	g.Step(core.NewInputFrame(), 1)

	if g.enemies[1].Health != 2 || len(g.bullets) != 0 || g.kills != 0 {
		t.Errorf("health %d bullets %d kills %d", g.enemies[1].Health, len(g.bullets), g.kills)
	}
}

func TestClearingWaveGrantsMachineGun(t *testing.T) {
	g := newGame(1)
	g.enemies = append(g.enemies[:0], Enemy{Kind: KindBoat, X: 300, Y: 300, W: 60, H: 30, Health: 1})
	g.nextShot = math.MaxFloat64
	g.bullets = append(g.bullets, Bullet{X: 310, Y: 305, Life: 10})

	g.Step(core.NewInputFrame(), 1)

	if g.kills != 1 || g.wave != 2 || len(g.enemies) != 7 {
		t.Fatalf("kills %d wave %d enemies %d", g.kills, g.wave, len(g.enemies))
	}
	if g.weapon != WeaponMachineGun {
		t.Fatalf("weapon = %s, expected machine gun", g.weapon)
	}
	if g.fireInterval() != 100 {
		t.Errorf("fire interval = %v, expected 100", g.fireInterval())
	}

	g.health = math.MaxInt32
	for i := 0; i < 601; i++ {
		g.Step(core.NewInputFrame(), 1)
	}
	if g.weapon != WeaponPistol {
		t.Errorf("weapon = %s after 10s, expected pistol", g.weapon)
	}
}

func TestTankLobsGrenade(t *testing.T) {
	g := isolated(Enemy{Kind: KindTank, X: 100, Y: 250, W: 50, H: 40, Health: 5})

	g.Step(core.NewInputFrame(), 1)

	if len(g.grenades) != 1 {
		t.Fatalf("grenades = %d, expected 1", len(g.grenades))
	}
	// Launched at (3, -2.3), then one frame of gravity
	gr := g.grenades[0]
	if gr.VX != 3 || math.Abs(gr.VY-(-2.15)) > 1e-9 {
		t.Errorf("grenade velocity (%v, %v), expected (3, -2.15)", gr.VX, gr.VY)
	}
	if next := g.enemies[1].NextShot; math.Abs(next-(g.clock+10000)) > 1e-9 {
		t.Errorf("next shot at %v, expected %v", next, g.clock+10000)
	}

	// Reloading
	g.Step(core.NewInputFrame(), 1)
	if len(g.grenades) != 1 {
		t.Errorf("grenades = %d, expected 1 while reloading", len(g.grenades))
	}
}

func TestGrenades(t *testing.T) {
	t.Run("shot down counts as a kill", func(t *testing.T) {
		g := isolated()
		g.nextShot = math.MaxFloat64
		g.grenades = append(g.grenades, Grenade{X: 400, Y: 300, Size: 15})
		g.bullets = append(g.bullets, Bullet{X: 400, Y: 305, Life: 10})

		g.Step(core.NewInputFrame(), 1)

		if g.kills != 1 || len(g.grenades) != 0 || len(g.bullets) != 0 {
			t.Errorf("kills %d grenades %d bullets %d", g.kills, len(g.grenades), len(g.bullets))
		}
	})

	t.Run("hits the barricade", func(t *testing.T) {
		g := isolated()
		g.grenades = append(g.grenades, Grenade{X: 400, Y: 519, VY: 5, Size: 15})

		g.Step(core.NewInputFrame(), 1)

		if g.health != 75 || len(g.grenades) != 0 {
			t.Errorf("health %d grenades %d", g.health, len(g.grenades))
		}
	})
}

func TestCrosshairControls(t *testing.T) {
	g := isolated()

	in := core.NewInputFrame()
	in.Pointer = core.Pointer{X: 123, Y: 234, Valid: true}
	g.Step(in, 1)
	if g.crosshair != (core.Vec{X: 123, Y: 234}) {
		t.Fatalf("crosshair = %+v, expected the pointer", g.crosshair)
	}

	// A still pointer leaves the arrows in charge
	in.SetHeld(core.ActionRight)
	g.Step(in, 1)
	if g.crosshair.X != 131 {
		t.Errorf("crosshair x = %v, expected 131", g.crosshair.X)
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	g := newGame(4)
	in := core.NewInputFrame()
	in.SetHeld(core.ActionFire)
	for i := 0; i < 1500; i++ {
		g.Step(in, 1)
	}
	g.Reset(core.RuntimeConfig{Seed: 4})

	if g.Snapshot() != newGame(4).Snapshot() {
		t.Error("restart left state behind")
	}
}
