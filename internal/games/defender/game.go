// Package defender implements Beach Defender, a pseudo-3D shooting gallery.
//
// Boats and tanks approach from the horizon and grow as they near the
// barricade. The player aims a crosshair and fires from a fixed muzzle
// behind the sandbags. Tanks lob grenades that can be shot down. The score
// is the number of kills.
package defender

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/games/fx"
	"github.com/vovakirdan/gameroom/internal/registry"
)

// Field size in logical units.
const (
	Width  = 800.0
	Height = 600.0
)

const (
	grenadeSize    = 15
	grenadeGravity = 0.15
	tankRange      = 50   // Depth below the horizon before tanks start lobbing
	firstShotMs    = 5000 // Max random delay before a tank's first grenade
	muzzleOffset   = 10
)

// Game implements Beach Defender game logic.
type Game struct {
	cfg        config.DefenderConfig
	preset     config.DifficultyPreset
	configured bool
	difficulty *config.DifficultyManager

	rng         *rand.Rand
	clock       float64 // ms since Reset
	frames      float64
	health      int
	kills       int
	wave        int
	crosshair   core.Vec
	lastPointer core.Pointer
	weapon      Weapon
	weaponUntil float64 // Clock ms when the machine gun runs out
	nextShot    float64 // Clock ms when the gun may fire again
	enemies     []Enemy
	grenades    []Grenade
	bullets     []Bullet
	particles   fx.Particles
	gameOver    bool
}

// New creates a new Beach Defender game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "defender"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Beach Defender"
}

// Controls returns the control hint.
func (g *Game) Controls() string {
	return "aim with mouse or arrows, hold click or space to shoot"
}

// Size returns the logical resolution.
func (g *Game) Size() (float64, float64) {
	return Width, Height
}

// Configure loads the config used from the next Reset.
func (g *Game) Configure(path, difficulty string) error {
	cfg, err := config.LoadDefender(path)
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
		g.cfg = config.Must(config.LoadDefender(""))
		g.configured = true
	}
	g.cfg.Difficulty.ApplyPreset(g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.clock = 0
	g.frames = 0
	g.health = g.cfg.Player.Health
	g.kills = 0
	g.wave = 0
	g.crosshair = core.Vec{X: Width / 2, Y: Height / 2}
	g.lastPointer = core.Pointer{}
	g.weapon = WeaponPistol
	g.weaponUntil = 0
	g.nextShot = 0
	g.enemies = g.enemies[:0]
	g.grenades = g.grenades[:0]
	g.bullets = g.bullets[:0]
	g.particles.Reset()
	g.gameOver = false

	g.spawnWave()
}

// spawnWave starts the next wave just below the horizon.
func (g *Game) spawnWave() {
	g.wave++
	w := g.cfg.Waves
	count := w.BaseCount + w.PerWave*g.wave
	for range count {
		e := Enemy{
			X:     g.rng.Float64() * Width,
			Y:     g.cfg.Field.HorizonY + g.rng.Float64()*40 - 20,
			Kind:  KindBoat,
			W:     60,
			H:     30,
			Scale: 1,
		}
		if g.rng.Float64() < w.TankChance {
			e.Kind, e.W, e.H = KindTank, 50, 40
		}
		e.Health = 3
		if e.Kind == KindTank {
			e.Health = 5
		}
		e.Speed = w.BaseSpeed + g.rng.Float64()*w.SpeedJitter + float64(g.wave)*w.SpeedPerWave
		e.NextShot = g.clock + g.rng.Float64()*firstShotMs
		g.enemies = append(g.enemies, e)
	}
}

// Step advances the game by dt nominal frames.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.particles.Update(dt)
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	g.clock += dt * core.FrameMillis
	g.frames += dt

	g.aim(in, dt)
	g.shoot(in)
	g.moveBullets(dt)
	g.moveEnemies(dt)
	if g.fallen() {
		return core.StepResult{State: g.State()}
	}
	g.moveGrenades(dt)
	if g.fallen() {
		return core.StepResult{State: g.State()}
	}
	g.resolveHits()

	if len(g.enemies) == 0 {
		g.weapon = WeaponMachineGun
		g.weaponUntil = g.clock + g.cfg.Weapons.MachineGunFor
		g.spawnWave()
	}
	return core.StepResult{State: g.State()}
}

// fallen ends the run once the barricade has no health left. Nothing
// else in the frame runs after that.
func (g *Game) fallen() bool {
	if g.health > 0 {
		return false
	}
	g.health = 0
	g.gameOver = true
	return true
}

// aim follows the pointer when it moves, otherwise the arrow keys.
func (g *Game) aim(in core.InputFrame, dt float64) {
	p := in.Pointer
	if p.Valid && (p.X != g.lastPointer.X || p.Y != g.lastPointer.Y || !g.lastPointer.Valid) {
		g.crosshair = core.Vec{X: p.X, Y: p.Y}
	} else {
		speed := g.cfg.Player.CrosshairSpeed * dt
		g.crosshair.X += in.Axis(core.ActionLeft, core.ActionRight) * speed
		g.crosshair.Y += in.Axis(core.ActionUp, core.ActionDown) * speed
	}
	g.lastPointer = p
	g.crosshair.X = core.ClampF(g.crosshair.X, 0, Width)
	g.crosshair.Y = core.ClampF(g.crosshair.Y, 0, Height)
}

// muzzle returns the fixed firing point behind the barricade.
func (g *Game) muzzle() core.Vec {
	return core.Vec{X: Width / 2, Y: g.cfg.Field.BarricadeY + muzzleOffset}
}

// onTarget reports whether the crosshair rests on an enemy.
func (g *Game) onTarget() bool {
	for _, e := range g.enemies {
		if e.Rect().Contains(g.crosshair.X, g.crosshair.Y) {
			return true
		}
	}
	return false
}

func (g *Game) fireInterval() float64 {
	if g.weapon == WeaponMachineGun {
		return g.cfg.Weapons.MachineGunMs
	}
	return g.cfg.Weapons.PistolMs
}

// shoot fires while the trigger is held or the crosshair is on an enemy.
func (g *Game) shoot(in core.InputFrame) {
	if g.weapon == WeaponMachineGun && g.clock >= g.weaponUntil {
		g.weapon = WeaponPistol
	}

	trigger := in.Pointer.Down || in.IsHeld(core.ActionFire)
	if !trigger && !g.onTarget() {
		return
	}
	if g.clock < g.nextShot {
		return
	}
	g.nextShot = g.clock + g.fireInterval()

	w := g.cfg.Weapons
	m := g.muzzle()
	dir := core.Direction(m, g.crosshair)
	g.bullets = append(g.bullets, Bullet{
		X:    m.X,
		Y:    m.Y,
		VX:   dir.X * w.BulletSpeed,
		VY:   dir.Y * w.BulletSpeed,
		Life: float64(w.BulletLife),
	})

	flash := m.Add(dir.Scale(30))
	g.particles.Radial(g.rng, flash.X, flash.Y, 3, 1, 6, 50, 80, core.ColorBrightYellow)
}

func (g *Game) moveBullets(dt float64) {
	for i := len(g.bullets) - 1; i >= 0; i-- {
		b := &g.bullets[i]
		b.X += b.VX * dt
		b.Y += b.VY * dt
		b.Life -= dt
		if b.Life <= 0 {
			g.bullets = append(g.bullets[:i], g.bullets[i+1:]...)
		}
	}
}

// moveEnemies advances enemies, scales them with depth and lets tanks lob.
func (g *Game) moveEnemies(dt float64) {
	f := g.cfg.Field
	pace := g.difficulty.Speed(1, g.kills, g.frames)

	for i := len(g.enemies) - 1; i >= 0; i-- {
		e := &g.enemies[i]
		e.Y += e.Speed * pace * dt
		progress := (e.Y - f.HorizonY) / (f.BarricadeY - f.HorizonY)
		e.Scale = core.PerspectiveScale(progress, 0.1, 1.6, 0.1)

		if e.Y > f.BarricadeY {
			dmg := g.cfg.Damage.Boat
			if e.Kind == KindTank {
				dmg = g.cfg.Damage.Tank
			}
			g.health -= dmg
			g.particles.Radial(g.rng, Width/2, f.BarricadeY, 50, 1, 6, 50, 80, core.ColorOrange)
			g.enemies = append(g.enemies[:i], g.enemies[i+1:]...)
			continue
		}

		if e.Kind == KindTank && g.clock > e.NextShot && e.Y > f.HorizonY+tankRange {
			e.NextShot = g.clock + g.cfg.Waves.GrenadeMs
			c := e.Rect().Center()
			g.grenades = append(g.grenades, Grenade{
				X:    c.X,
				Y:    c.Y,
				VX:   (Width/2 - e.X) / 100,
				VY:   (f.BarricadeY-e.Y)/100 - 5,
				Size: grenadeSize,
				Spin: (g.rng.Float64() - 0.5) * 0.2,
			})
		}
	}
}

func (g *Game) moveGrenades(dt float64) {
	b := g.cfg.Field.BarricadeY
	for i := len(g.grenades) - 1; i >= 0; i-- {
		gr := &g.grenades[i]
		gr.X += gr.VX * dt
		gr.Y += gr.VY * dt
		gr.VY += grenadeGravity * dt
		gr.Angle += gr.Spin * dt
		if gr.Y > b {
			g.health -= g.cfg.Damage.Grenade
			g.particles.Radial(g.rng, gr.X, b, 100, 1, 6, 50, 80, core.ColorOrange)
			g.grenades = append(g.grenades[:i], g.grenades[i+1:]...)
		}
	}
}

// resolveHits consumes each bullet on the first enemy or grenade it touches.
func (g *Game) resolveHits() {
bullets:
	for bi := len(g.bullets) - 1; bi >= 0; bi-- {
		b := g.bullets[bi]

		for ei := len(g.enemies) - 1; ei >= 0; ei-- {
			e := &g.enemies[ei]
			if !e.Rect().Contains(b.X, b.Y) {
				continue
			}
			g.bullets = append(g.bullets[:bi], g.bullets[bi+1:]...)
			e.Health--
			if e.Health <= 0 {
				c := e.Rect().Center()
				g.particles.Radial(g.rng, c.X, c.Y, 20, 1, 6, 50, 80, core.ColorOrange)
				g.enemies = append(g.enemies[:ei], g.enemies[ei+1:]...)
				g.kills++
			}
			continue bullets
		}

		for gi := len(g.grenades) - 1; gi >= 0; gi-- {
			gr := g.grenades[gi]
			if math.Hypot(b.X-gr.X, b.Y-gr.Y) >= gr.Size {
				continue
			}
			g.bullets = append(g.bullets[:bi], g.bullets[bi+1:]...)
			g.grenades = append(g.grenades[:gi], g.grenades[gi+1:]...)
			g.particles.Radial(g.rng, gr.X, gr.Y, 30, 1, 6, 50, 80, core.ColorBrightWhite)
			g.kills++
			continue bullets
		}
	}
}

// Render draws the beach back to front.
func (g *Game) Render(dst *core.Canvas) {
	f := g.cfg.Field
	dst.Clear(' ', core.ColorDefault)

	dst.FillRect(core.NewRect(0, 0, Width, f.HorizonY), ' ', core.ColorSky)
	dst.FillRect(core.NewRect(0, f.HorizonY, Width, f.SandY-f.HorizonY), '≈', core.ColorSea)
	dst.FillRect(core.NewRect(0, f.SandY, Width, Height-f.SandY), '░', core.ColorSand)
	for i := range 10 {
		dst.Line(core.Vec{X: Width / 2, Y: f.SandY}, core.Vec{X: float64(i) * Width / 9, Y: Height}, '·', core.ColorGray)
	}

	g.renderDepthSorted(dst)

	for x := -50.0; x < Width; x += 80 {
		dst.FillRect(core.NewRect(x, f.BarricadeY+10, 100, 40), '▒', core.ColorSand)
	}
	for x := -20.0; x < Width; x += 90 {
		dst.FillRect(core.NewRect(x, f.BarricadeY-10, 110, 40), '▓', core.ColorSand)
	}

	g.particles.Render(dst)
	for _, b := range g.bullets {
		dst.Dot(b.X, b.Y, '•', core.ColorBrightYellow)
	}
	dst.Dot(g.crosshair.X, g.crosshair.Y, '⊕', core.ColorBrightRed)

	dst.HUD(0, fmt.Sprintf("Defender  Kills: %d  Wave: %d", g.kills, g.wave), core.ColorBrightWhite)
	hpColor := core.ColorBrightGreen
	if g.health <= 30 {
		hpColor = core.ColorBrightRed
	}
	dst.HUDRight(0, fmt.Sprintf("%s  HP %d", g.weapon, g.health), hpColor)
}

// drawable is an enemy or grenade placed by depth.
type drawable struct {
	y    float64
	draw func()
}

// renderDepthSorted draws enemies and grenades far to near.
func (g *Game) renderDepthSorted(dst *core.Canvas) {
	items := make([]drawable, 0, len(g.enemies)+len(g.grenades))
	for _, e := range g.enemies {
		col := core.ColorBrightWhite
		if e.Kind == KindTank {
			col = core.ColorGreen
		}
		items = append(items, drawable{y: e.Y, draw: func() {
			dst.FillRect(e.Rect(), e.Kind.Glyph(), col)
		}})
	}
	for _, gr := range g.grenades {
		items = append(items, drawable{y: gr.Y, draw: func() {
			dst.FillCircle(core.Circle{X: gr.X, Y: gr.Y, R: gr.Size / 2}, '●', core.ColorBrightRed)
		}})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].y < items[j].y })
	for _, it := range items {
		it.draw()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.kills,
		GameOver: g.gameOver,
	}
}

// Register the game with the registry
func init() {
	registry.Register("defender", func() registry.Game {
		return New()
	})
}
